// Copyright © 2024 The d64 authors.

// geometry.go contains the fixed track/sector geometry tables for
// 35-track and 40-track (DolphinDOS extension) D64 images, and the
// bounds-checked byte-buffer accessors every other component in this
// package builds on.

package d64

// TrackSector is a pair of (track, sector) coordinates. Tracks are
// 1-based; sectors are 0-based.
type TrackSector struct {
	Track  byte
	Sector byte
}

const (
	// SectorSize is the size, in bytes, of every sector on a D64 image.
	SectorSize = 256

	// DirTrack is the track holding the BAM sector and the start of
	// the directory chain.
	DirTrack = 18
	// DirSector is the sector holding the first directory sector.
	DirSector = 1
	// BAMSector is the sector holding the Block Availability Map.
	BAMSector = 0

	// Tracks35 is the track count of a classic 1541 image.
	Tracks35 = 35
	// Tracks40 is the track count of a DolphinDOS-extended image.
	Tracks40 = 40

	// Bytes35 is the size, in bytes, of a 35-track image.
	Bytes35 = 683 * SectorSize
	// Bytes40 is the size, in bytes, of a 40-track image.
	Bytes40 = 768 * SectorSize

	// Interleave is the fixed sector-allocation skip distance. See
	// spec §4.2: preserved to keep images written by this library
	// indistinguishable from DOS-authored ones.
	Interleave = 10
)

// sectorsPerTrack35 gives the sector count for tracks 1-35 (index 0 is
// track 1).
var sectorsPerTrack35 = buildSectorsPerTrack(Tracks35)

// sectorsPerTrack40 gives the sector count for tracks 1-40 (index 0 is
// track 1). Tracks 36-40 use the same 17-sector zone as 31-35.
var sectorsPerTrack40 = buildSectorsPerTrack(Tracks40)

func buildSectorsPerTrack(tracks byte) []byte {
	out := make([]byte, tracks)
	for t := byte(1); t <= tracks; t++ {
		switch {
		case t <= 17:
			out[t-1] = 21
		case t <= 24:
			out[t-1] = 19
		case t <= 30:
			out[t-1] = 18
		default:
			out[t-1] = 17
		}
	}
	return out
}

// Geometry describes the fixed track/sector layout of one of the two
// supported disk types.
type Geometry struct {
	tracks          byte
	sectorsPerTrack []byte
	trackOffset     []int // prefix sum of byte offsets, indexed by track-1
}

// NewGeometry35 returns the classic 35-track geometry.
func NewGeometry35() Geometry {
	return newGeometry(Tracks35, sectorsPerTrack35)
}

// NewGeometry40 returns the 40-track DolphinDOS geometry.
func NewGeometry40() Geometry {
	return newGeometry(Tracks40, sectorsPerTrack40)
}

func newGeometry(tracks byte, sectorsPerTrack []byte) Geometry {
	offsets := make([]int, tracks)
	total := 0
	for i, n := range sectorsPerTrack {
		offsets[i] = total
		total += int(n) * SectorSize
	}
	return Geometry{tracks: tracks, sectorsPerTrack: sectorsPerTrack, trackOffset: offsets}
}

// Tracks returns the number of tracks in this geometry.
func (g Geometry) Tracks() byte {
	return g.tracks
}

// SectorsPerTrack returns the number of sectors on the given
// (1-based) track, or 0 if the track is out of range.
func (g Geometry) SectorsPerTrack(track byte) byte {
	if track < 1 || track > g.tracks {
		return 0
	}
	return g.sectorsPerTrack[track-1]
}

// Size returns the total size, in bytes, of an image with this
// geometry.
func (g Geometry) Size() int {
	if len(g.trackOffset) == 0 {
		return 0
	}
	last := g.tracks - 1
	return g.trackOffset[last] + int(g.sectorsPerTrack[last])*SectorSize
}

// Offset returns the byte offset of (track, sector) within an image
// buffer using this geometry. Tracks are 1-based; sectors are
// 0-based.
func (g Geometry) Offset(track, sector byte) (int, error) {
	if track < 1 || track > g.tracks {
		return 0, InvalidGeometryf("track %d out of range (1-%d)", track, g.tracks)
	}
	n := g.sectorsPerTrack[track-1]
	if sector >= n {
		return 0, InvalidGeometryf("sector %d out of range for track %d (0-%d)", sector, track, n-1)
	}
	return g.trackOffset[track-1] + int(sector)*SectorSize, nil
}

// Buffer wraps a raw image byte slice with geometry-aware,
// bounds-checked sector and byte access. It is the sole mediator
// between every other component and the underlying bytes: no other
// type in this package holds a second copy of on-disk state, beyond
// the per-track allocation cursor kept by the BAM manager.
type Buffer struct {
	data []byte
	geo  Geometry
}

// NewBuffer wraps data (which is retained, not copied) with the given
// geometry. The caller must ensure len(data) == geo.Size().
func NewBuffer(data []byte, geo Geometry) Buffer {
	return Buffer{data: data, geo: geo}
}

// Geometry returns the buffer's geometry.
func (b Buffer) Geometry() Geometry {
	return b.geo
}

// Bytes returns the raw underlying bytes. Callers that mutate the
// returned slice mutate the buffer.
func (b Buffer) Bytes() []byte {
	return b.data
}

// ReadByte reads a single byte at (track, sector, index). It returns
// ok=false rather than an error if the coordinate is out of range.
func (b Buffer) ReadByte(track, sector byte, index int) (value byte, ok bool) {
	off, err := b.geo.Offset(track, sector)
	if err != nil {
		return 0, false
	}
	if index < 0 || index >= SectorSize {
		return 0, false
	}
	return b.data[off+index], true
}

// WriteByte writes a single byte at (track, sector, index). It
// returns an InvalidGeometry error if the coordinate is out of range.
func (b Buffer) WriteByte(track, sector byte, index int, value byte) error {
	off, err := b.geo.Offset(track, sector)
	if err != nil {
		return err
	}
	if index < 0 || index >= SectorSize {
		return InvalidGeometryf("byte index %d out of range (0-%d)", index, SectorSize-1)
	}
	b.data[off+index] = value
	return nil
}

// ReadSector returns a copy of the 256 bytes of (track, sector).
func (b Buffer) ReadSector(track, sector byte) ([]byte, error) {
	off, err := b.geo.Offset(track, sector)
	if err != nil {
		return nil, err
	}
	out := make([]byte, SectorSize)
	copy(out, b.data[off:off+SectorSize])
	return out, nil
}

// WriteSector writes exactly 256 bytes to (track, sector).
func (b Buffer) WriteSector(track, sector byte, data []byte) error {
	if len(data) != SectorSize {
		return Argumentf("WriteSector expects exactly %d bytes; got %d", SectorSize, len(data))
	}
	off, err := b.geo.Offset(track, sector)
	if err != nil {
		return err
	}
	copy(b.data[off:off+SectorSize], data)
	return nil
}

// sectorView returns the mutable 256-byte slice for (track, sector),
// backed directly by the buffer, for components within this package
// that need to mutate in place without a copy round-trip.
func (b Buffer) sectorView(track, sector byte) ([]byte, error) {
	off, err := b.geo.Offset(track, sector)
	if err != nil {
		return nil, err
	}
	return b.data[off : off+SectorSize], nil
}
