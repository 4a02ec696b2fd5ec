// Copyright © 2024 The d64 authors.

package d64

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatDiskInitialState(t *testing.T) {
	geo := NewGeometry35()
	buf := NewBuffer(make([]byte, geo.Size()), geo)
	bam, err := FormatDisk(buf, "NEW DISK")
	if err != nil {
		t.Fatalf("FormatDisk: %v", err)
	}
	if bam.IsFree(DirTrack, BAMSector) {
		t.Errorf("(18,0) should be allocated after format")
	}
	if bam.IsFree(DirTrack, DirSector) {
		t.Errorf("(18,1) should be allocated after format")
	}
	dirSec, err := buf.ReadSector(DirTrack, DirSector)
	if err != nil {
		t.Fatalf("ReadSector: %v", err)
	}
	if dirSec[0] != 0 || dirSec[1] != 0xFF {
		t.Errorf("first directory sector link header = (%d,%d), want (0,0xFF)", dirSec[0], dirSec[1])
	}
	name := bam.DiskName()
	if string(trimPadded(name[:])) != "NEW DISK" {
		t.Errorf("disk name = %q, want %q", trimPadded(name[:]), "NEW DISK")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	geo := NewGeometry35()
	buf := NewBuffer(make([]byte, geo.Size()), geo)
	if _, err := FormatDisk(buf, "MY DISK"); err != nil {
		t.Fatalf("FormatDisk: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.d64")
	if err := SaveImage(buf, path); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	loaded, bam, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if loaded.Geometry().Tracks() != Tracks35 {
		t.Errorf("loaded Tracks() = %d, want %d", loaded.Geometry().Tracks(), Tracks35)
	}
	name := bam.DiskName()
	if string(trimPadded(name[:])) != "MY DISK" {
		t.Errorf("loaded disk name = %q, want %q", trimPadded(name[:]), "MY DISK")
	}
}

func TestLoadInvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.d64")
	if err := os.WriteFile(path, make([]byte, 12345), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := LoadImage(path); !IsInvalidImage(err) {
		t.Errorf("LoadImage error = %v, want InvalidImage", err)
	}
}

func TestLoadCorruptImageReformats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.d64")
	if err := os.WriteFile(path, make([]byte, Bytes35), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	buf, bam, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if buf.Geometry().Tracks() != Tracks35 {
		t.Fatalf("Tracks() = %d, want %d", buf.Geometry().Tracks(), Tracks35)
	}
	name := bam.DiskName()
	if string(trimPadded(name[:])) != defaultDiskName {
		t.Errorf("reformatted disk name = %q, want %q", trimPadded(name[:]), defaultDiskName)
	}
}
