// Copyright © 2024 The d64 authors.

package d64

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRenameDisk(t *testing.T) {
	disk := newTestDisk(t)
	if got := disk.DiskName(); got != "NEW DISK" {
		t.Fatalf("DiskName() = %q, want %q", got, "NEW DISK")
	}
	disk.RenameDisk("RETRO GAMES")
	if got := disk.DiskName(); got != "RETRO GAMES" {
		t.Errorf("DiskName() after RenameDisk = %q, want %q", got, "RETRO GAMES")
	}
}

func TestExtractFileDefaultName(t *testing.T) {
	disk := newTestDisk(t)
	payload := bytes.Repeat([]byte{7}, 10)
	if err := disk.AddFile("GAME", TypePRG, payload, 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	name, err := disk.DefaultExtractName("GAME")
	if err != nil {
		t.Fatalf("DefaultExtractName: %v", err)
	}
	if name != "GAME.prg" {
		t.Errorf("DefaultExtractName() = %q, want %q", name, "GAME.prg")
	}

	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(old)

	if err := disk.ExtractFile("GAME", ""); err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "GAME.prg"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("extracted contents = %v, want %v", got, payload)
	}
}

func TestExtractFileDefaultNameRefusesDEL(t *testing.T) {
	disk := newTestDisk(t)
	if err := disk.AddFile("SCRATCH", TypeDEL, []byte{1}, 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if _, err := disk.DefaultExtractName("SCRATCH"); !IsArgument(err) {
		t.Errorf("DefaultExtractName error = %v, want Argument", err)
	}
	if err := disk.ExtractFile("SCRATCH", ""); !IsArgument(err) {
		t.Errorf("ExtractFile error = %v, want Argument", err)
	}
}
