// Copyright © 2024 The d64 authors.

package d64

import (
	"bytes"
	"testing"
)

func newTestDisk(t *testing.T) *Disk {
	t.Helper()
	disk, err := Format(false, "NEW DISK")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	return disk
}

func TestAddReadFile(t *testing.T) {
	disk := newTestDisk(t)
	payload := bytes.Repeat([]byte{0x42}, 66)
	if err := disk.AddFile("FILE1", TypePRG, payload, 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	entries, err := disk.Directory()
	if err != nil {
		t.Fatalf("Directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Directory() length = %d, want 1", len(entries))
	}
	if entries[0].Name != "FILE1" {
		t.Errorf("entry name = %q, want %q", entries[0].Name, "FILE1")
	}
	if entries[0].FileSize != 1 {
		t.Errorf("entry file size = %d, want 1", entries[0].FileSize)
	}
	got, err := disk.ReadFile("FILE1")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("ReadFile() = %d bytes, want %d matching bytes", len(got), len(payload))
	}
}

func TestAddFileDuplicateName(t *testing.T) {
	disk := newTestDisk(t)
	if err := disk.AddFile("FILE1", TypePRG, []byte{1}, 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	err := disk.AddFile("FILE1", TypePRG, []byte{2}, 0, false)
	if !IsAlreadyExists(err) {
		t.Errorf("second AddFile error = %v, want AlreadyExists", err)
	}
}

func TestAddFileValidation(t *testing.T) {
	disk := newTestDisk(t)
	if err := disk.AddFile("", TypePRG, []byte{1}, 0, false); !IsArgument(err) {
		t.Errorf("empty name error = %v, want Argument", err)
	}
	if err := disk.AddFile("FILE1", TypePRG, nil, 0, false); !IsArgument(err) {
		t.Errorf("empty payload error = %v, want Argument", err)
	}
}

func TestRemoveFileFreesChain(t *testing.T) {
	disk := newTestDisk(t)
	before := disk.FreeSectorCount()
	// 5000 bytes need 20 sectors: more than the 17 free on the
	// directory track, which is searched first but not counted by
	// FreeSectorCount, so the file spills onto counted tracks.
	if err := disk.AddFile("FILE1", TypePRG, bytes.Repeat([]byte{1}, 5000), 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if disk.FreeSectorCount() == before {
		t.Fatalf("FreeSectorCount() did not decrease after AddFile")
	}
	if err := disk.RemoveFile("FILE1"); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if got := disk.FreeSectorCount(); got != before {
		t.Errorf("FreeSectorCount() after RemoveFile = %d, want %d", got, before)
	}
	if _, err := disk.ReadFile("FILE1"); !IsNotFound(err) {
		t.Errorf("ReadFile after remove error = %v, want NotFound", err)
	}
}

func TestRemoveFileNotFound(t *testing.T) {
	disk := newTestDisk(t)
	if err := disk.RemoveFile("NOPE"); !IsNotFound(err) {
		t.Errorf("RemoveFile error = %v, want NotFound", err)
	}
}

func TestRenameFile(t *testing.T) {
	disk := newTestDisk(t)
	if err := disk.AddFile("OLD", TypePRG, []byte{1}, 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := disk.RenameFile("OLD", "NEW"); err != nil {
		t.Fatalf("RenameFile: %v", err)
	}
	if _, err := disk.dir.Find("OLD"); !IsNotFound(err) {
		t.Errorf("old name still found after rename")
	}
	if _, err := disk.dir.Find("NEW"); err != nil {
		t.Errorf("new name not found after rename: %v", err)
	}
}

func TestLockUnlock(t *testing.T) {
	disk := newTestDisk(t)
	if err := disk.AddFile("FILE1", TypePRG, []byte{1}, 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := disk.Lock("FILE1"); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	e, err := disk.dir.Find("FILE1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !e.Type.Locked() {
		t.Errorf("file should be locked")
	}
	if err := disk.Unlock("FILE1"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	e, _ = disk.dir.Find("FILE1")
	if e.Type.Locked() {
		t.Errorf("file should be unlocked")
	}
}

func addNamed(t *testing.T, disk *Disk, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := disk.AddFile(n, TypePRG, []byte{1}, 0, false); err != nil {
			t.Fatalf("AddFile(%q): %v", n, err)
		}
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestReorderByNamesNoChangeWhenAlreadyInOrder(t *testing.T) {
	disk := newTestDisk(t)
	addNamed(t, disk, "A", "B", "C")
	changed, err := disk.ReorderByNames([]string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("ReorderByNames: %v", err)
	}
	if changed {
		t.Errorf("ReorderByNames() reported a change when order was already correct")
	}
}

func TestReorderByNamesPutsNamedFirst(t *testing.T) {
	disk := newTestDisk(t)
	addNamed(t, disk, "A", "B", "C")
	changed, err := disk.ReorderByNames([]string{"C", "A"})
	if err != nil {
		t.Fatalf("ReorderByNames: %v", err)
	}
	if !changed {
		t.Fatalf("ReorderByNames() reported no change")
	}
	entries, err := disk.Directory()
	if err != nil {
		t.Fatalf("Directory: %v", err)
	}
	want := []string{"C", "A", "B"}
	got := names(entries)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, want %v", got, want)
			break
		}
	}
}

func TestMoveToFront(t *testing.T) {
	disk := newTestDisk(t)
	addNamed(t, disk, "A", "B", "C")
	changed, err := disk.MoveToFront("C")
	if err != nil {
		t.Fatalf("MoveToFront: %v", err)
	}
	if !changed {
		t.Fatalf("MoveToFront() reported no change")
	}
	entries, _ := disk.Directory()
	if got := names(entries); got[0] != "C" {
		t.Errorf("order = %v, want C first", got)
	}

	changed, err = disk.MoveToFront("C")
	if err != nil {
		t.Fatalf("MoveToFront: %v", err)
	}
	if changed {
		t.Errorf("MoveToFront() on already-first entry reported a change")
	}
}

func TestCompactTwiceIsIdempotent(t *testing.T) {
	disk := newTestDisk(t)
	addNamed(t, disk, "A", "B", "C")
	if err := disk.RemoveFile("B"); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if err := disk.CompactDirectory(); err != nil {
		t.Fatalf("CompactDirectory: %v", err)
	}
	after1 := append([]byte(nil), disk.buf.Bytes()...)
	if err := disk.CompactDirectory(); err != nil {
		t.Fatalf("second CompactDirectory: %v", err)
	}
	after2 := disk.buf.Bytes()
	if !bytes.Equal(after1, after2) {
		t.Errorf("compacting twice produced different buffers")
	}
}
