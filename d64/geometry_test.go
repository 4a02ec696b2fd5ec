// Copyright © 2024 The d64 authors.

package d64

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestGeometry35Size(t *testing.T) {
	g := NewGeometry35()
	if got, want := g.Size(), Bytes35; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
	if got, want := g.Tracks(), byte(Tracks35); got != want {
		t.Errorf("Tracks() = %d, want %d", got, want)
	}
}

func TestGeometry40Size(t *testing.T) {
	g := NewGeometry40()
	if got, want := g.Size(), Bytes40; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}

func TestSectorsPerTrackZones(t *testing.T) {
	g := NewGeometry35()
	cases := []struct {
		track byte
		want  byte
	}{
		{1, 21}, {17, 21}, {18, 19}, {24, 19}, {25, 18}, {30, 18}, {31, 17}, {35, 17},
	}
	for _, c := range cases {
		if got := g.SectorsPerTrack(c.track); got != c.want {
			t.Errorf("SectorsPerTrack(%d) = %d, want %d", c.track, got, c.want)
		}
	}
	if got := g.SectorsPerTrack(0); got != 0 {
		t.Errorf("SectorsPerTrack(0) = %d, want 0", got)
	}
	if got := g.SectorsPerTrack(36); got != 0 {
		t.Errorf("SectorsPerTrack(36) = %d, want 0 on a 35-track geometry", got)
	}
}

func TestOffsetBounds(t *testing.T) {
	g := NewGeometry35()
	if _, err := g.Offset(0, 0); !IsInvalidGeometry(err) {
		t.Errorf("Offset(0,0) error = %v, want InvalidGeometry", err)
	}
	if _, err := g.Offset(36, 0); !IsInvalidGeometry(err) {
		t.Errorf("Offset(36,0) error = %v, want InvalidGeometry", err)
	}
	if _, err := g.Offset(1, 21); !IsInvalidGeometry(err) {
		t.Errorf("Offset(1,21) error = %v, want InvalidGeometry (track 1 has 21 sectors, 0-20)", err)
	}
	off, err := g.Offset(18, 0)
	if err != nil {
		t.Fatalf("Offset(18,0) error = %v", err)
	}
	// Tracks 1-17 each have 21 sectors: 17*21*256.
	want := 17 * 21 * SectorSize
	if off != want {
		t.Errorf("Offset(18,0) = %d, want %d", off, want)
	}
}

func TestBufferByteRoundTrip(t *testing.T) {
	buf := NewBuffer(make([]byte, NewGeometry35().Size()), NewGeometry35())
	if err := buf.WriteByte(1, 0, 5, 0x42); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	v, ok := buf.ReadByte(1, 0, 5)
	if !ok || v != 0x42 {
		t.Errorf("ReadByte = (%d, %v), want (0x42, true)", v, ok)
	}
	if _, ok := buf.ReadByte(99, 0, 0); ok {
		t.Errorf("ReadByte on out-of-range track returned ok=true")
	}
}

func TestBufferSectorRoundTrip(t *testing.T) {
	buf := NewBuffer(make([]byte, NewGeometry35().Size()), NewGeometry35())
	var want [SectorSize]byte
	for i := range want {
		want[i] = byte(i)
	}
	if err := buf.WriteSector(18, 5, want[:]); err != nil {
		t.Fatalf("WriteSector: %v", err)
	}
	got, err := buf.ReadSector(18, 5)
	if err != nil {
		t.Fatalf("ReadSector: %v", err)
	}
	if string(got) != string(want[:]) {
		t.Errorf("sector round trip mismatch: %s", strings.Join(pretty.Diff(got, want[:]), "; "))
	}
	if err := buf.WriteSector(18, 5, []byte{1, 2, 3}); !IsArgument(err) {
		t.Errorf("WriteSector with wrong length error = %v, want Argument", err)
	}
}
