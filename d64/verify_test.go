// Copyright © 2024 The d64 authors.

package d64

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerifyFreshDiskIsClean(t *testing.T) {
	disk := newTestDisk(t)
	var log bytes.Buffer
	ok, err := disk.VerifyBAM(false, &log)
	if err != nil {
		t.Fatalf("VerifyBAM: %v", err)
	}
	if !ok {
		t.Errorf("VerifyBAM() = false on a fresh disk; log: %s", log.String())
	}
}

func TestVerifyAfterAddRemoveIsClean(t *testing.T) {
	disk := newTestDisk(t)
	if err := disk.AddFile("FILE1", TypePRG, bytes.Repeat([]byte{1}, 600), 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if err := disk.RemoveFile("FILE1"); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	var log bytes.Buffer
	ok, err := disk.VerifyBAM(false, &log)
	if err != nil {
		t.Fatalf("VerifyBAM: %v", err)
	}
	if !ok {
		t.Errorf("VerifyBAM() = false; log: %s", log.String())
	}
}

func TestVerifyDetectsIncorrectlyMarkedFree(t *testing.T) {
	disk := newTestDisk(t)
	if err := disk.AddFile("FILE1", TypePRG, []byte{1, 2, 3}, 0, false); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	e, err := disk.dir.Find("FILE1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	// Corrupt the BAM directly: mark the file's first sector free even
	// though the directory still reaches it.
	if _, err := disk.bam.Free(e.Start.Track, e.Start.Sector); err != nil {
		t.Fatalf("Free: %v", err)
	}

	var log bytes.Buffer
	ok, err := disk.VerifyBAM(false, &log)
	if err != nil {
		t.Fatalf("VerifyBAM: %v", err)
	}
	if ok {
		t.Fatalf("VerifyBAM() = true, want false after corrupting the BAM")
	}
	if !strings.Contains(log.String(), "incorrectly marked free") {
		t.Errorf("log missing expected finding: %s", log.String())
	}

	ok, err = disk.VerifyBAM(true, &log)
	if err != nil {
		t.Fatalf("VerifyBAM(fix=true): %v", err)
	}
	if ok {
		t.Fatalf("VerifyBAM(fix=true) returns the pre-fix result, want false (errors were found before fixing)")
	}
	if disk.bam.IsFree(e.Start.Track, e.Start.Sector) {
		t.Errorf("sector still marked free after fix")
	}

	log.Reset()
	ok, err = disk.VerifyBAM(false, &log)
	if err != nil {
		t.Fatalf("VerifyBAM after fix: %v", err)
	}
	if !ok {
		t.Errorf("VerifyBAM() after fix = false; log: %s", log.String())
	}
}

func TestVerifyDetectsIncorrectlyMarkedUsed(t *testing.T) {
	disk := newTestDisk(t)
	free := disk.FreeSectors()
	if len(free) == 0 {
		t.Fatalf("fresh disk has no free sectors")
	}
	ts := free[0]
	if _, err := disk.bam.Allocate(ts.Track, ts.Sector); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	var log bytes.Buffer
	ok, err := disk.VerifyBAM(true, &log)
	if err != nil {
		t.Fatalf("VerifyBAM: %v", err)
	}
	if ok {
		t.Fatalf("VerifyBAM() = true, want false")
	}
	if !strings.Contains(log.String(), "incorrectly marked used") {
		t.Errorf("log missing expected finding: %s", log.String())
	}
	if !disk.bam.IsFree(ts.Track, ts.Sector) {
		t.Errorf("sector still marked used after fix")
	}
}
