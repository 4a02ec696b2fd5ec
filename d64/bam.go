// Copyright © 2024 The d64 authors.

// bam.go implements the Block Availability Map: the per-track free
// count plus 24-bit sector bitmap resident at (18,0), sector
// allocation/free, and the interleaved, track-priority next-sector
// search policy.

package d64

import (
	"fmt"
	"io"
)

const (
	bamOffDirTrack  = 0x00
	bamOffDirSector = 0x01
	bamOffDosVer    = 0x02
	bamOffReserved1 = 0x03
	bamOffTracks1   = 0x04 // 35 * 4 bytes, tracks 1-35
	bamOffDiskName  = 0x90 // 16 bytes
	bamOffPad1      = 0xA0 // 2 bytes, 0xA0 0xA0
	bamOffDiskID    = 0xA2 // 2 bytes
	bamOffPad2      = 0xA4 // 1 byte, 0xA0
	bamOffDosType   = 0xA5 // 2 bytes, '2','A'
	bamOffReserved2 = 0xA7 // 5 bytes
	bamOffTracks36  = 0xAC // 5 * 4 bytes, tracks 36-40

	diskNameLen = 16
	padByte     = 0xA0
	formatFill  = 0x01
)

// BAM mediates all reads and writes of the Block Availability Map
// sector, and owns the in-memory per-track allocation cursor used by
// the interleaved search policy (spec §3's "per-track last-sector
// cursor" — process-local, never persisted to the image).
type BAM struct {
	buf    Buffer
	cursor []int // index 0 unused; valid for 1..Tracks()

	// Logger receives "WARNING: ..." lines for non-fatal refusals
	// (freeing the BAM or first directory sector). Nil discards them.
	Logger io.Writer
}

// NewBAM returns a BAM manager over buf, with a freshly-initialized
// allocation cursor. Use this after loading or formatting an image;
// the cursor is never read from the image itself.
func NewBAM(buf Buffer) *BAM {
	tracks := buf.Geometry().Tracks()
	cursor := make([]int, int(tracks)+1)
	for i := range cursor {
		cursor[i] = 1
	}
	return &BAM{buf: buf, cursor: cursor}
}

func (bm *BAM) sector() []byte {
	v, err := bm.buf.sectorView(DirTrack, BAMSector)
	if err != nil {
		panic("d64: BAM sector out of range for this geometry: " + err.Error())
	}
	return v
}

// entryOffset returns the byte offset of track's 4-byte BAM entry
// (free count + 3-byte bitmap), and false if track has no BAM entry
// (out of range for this image's geometry).
func (bm *BAM) entryOffset(track byte) (int, bool) {
	switch {
	case track >= 1 && track <= 35:
		return bamOffTracks1 + int(track-1)*4, true
	case track >= 36 && track <= 40:
		return bamOffTracks36 + int(track-36)*4, true
	default:
		return 0, false
	}
}

func (bm *BAM) warnf(format string, args ...interface{}) {
	if bm.Logger == nil {
		return
	}
	fmt.Fprintf(bm.Logger, "WARNING: "+format+"\n", args...)
}

// IsFree returns true if (track, sector) is marked free in the
// bitmap. Out-of-range coordinates are reported as not free.
func (bm *BAM) IsFree(track, sector byte) bool {
	off, ok := bm.entryOffset(track)
	if !ok {
		return false
	}
	n := bm.buf.Geometry().SectorsPerTrack(track)
	if n == 0 || sector >= n {
		return false
	}
	bitmap := bm.sector()[off+1 : off+4]
	return bitmap[sector/8]&(1<<(sector%8)) != 0
}

// freeCountField returns the free-sector count byte stored for track.
func (bm *BAM) freeCountField(track byte) byte {
	off, ok := bm.entryOffset(track)
	if !ok {
		return 0
	}
	return bm.sector()[off]
}

func (bm *BAM) setFreeCountField(track byte, count byte) {
	off, ok := bm.entryOffset(track)
	if !ok {
		return
	}
	bm.sector()[off] = count
}

// Allocate marks (track, sector) as allocated. It returns false (no
// error) if the sector was already allocated; the BAM is unchanged in
// that case.
func (bm *BAM) Allocate(track, sector byte) (bool, error) {
	off, ok := bm.entryOffset(track)
	if !ok {
		return false, InvalidGeometryf("track %d has no BAM entry", track)
	}
	n := bm.buf.Geometry().SectorsPerTrack(track)
	if n == 0 || sector >= n {
		return false, InvalidGeometryf("sector %d out of range for track %d", sector, track)
	}
	sec := bm.sector()
	bitmap := sec[off+1 : off+4]
	mask := byte(1) << (sector % 8)
	idx := sector / 8
	if bitmap[idx]&mask == 0 {
		return false, nil // already allocated
	}
	bitmap[idx] &^= mask
	sec[off]--
	return true, nil
}

// Free marks (track, sector) as free. It returns false (no error) if
// the sector was already free. Freeing the BAM sector (18,0) or the
// first directory sector (18,1) is refused: it logs a warning via
// Logger (if set) and returns false, nil, per spec §7.
func (bm *BAM) Free(track, sector byte) (bool, error) {
	if track == DirTrack && (sector == BAMSector || sector == DirSector) {
		bm.warnf("refusing to free (%d,%d): reserved for BAM/directory", track, sector)
		return false, nil
	}
	off, ok := bm.entryOffset(track)
	if !ok {
		return false, InvalidGeometryf("track %d has no BAM entry", track)
	}
	n := bm.buf.Geometry().SectorsPerTrack(track)
	if n == 0 || sector >= n {
		return false, InvalidGeometryf("sector %d out of range for track %d", sector, track)
	}
	sec := bm.sector()
	bitmap := sec[off+1 : off+4]
	mask := byte(1) << (sector % 8)
	idx := sector / 8
	if bitmap[idx]&mask != 0 {
		return false, nil // already free
	}
	bitmap[idx] |= mask
	sec[off]++
	return true, nil
}

// FreeSectorCount returns the sum of the per-track free counts across
// every track except the directory track.
func (bm *BAM) FreeSectorCount() uint16 {
	var total uint16
	for t := byte(1); t <= bm.buf.Geometry().Tracks(); t++ {
		if t == DirTrack {
			continue
		}
		total += uint16(bm.freeCountField(t))
	}
	return total
}

// searchOrder returns the track-priority allocation search order:
// radiating outward from the directory track, alternating
// below/above, then (for 40-track images) the DolphinDOS extension
// tracks in ascending order. See spec §4.2.
func searchOrder(tracks byte) []byte {
	order := []byte{DirTrack}
	for r := byte(1); r <= 17; r++ {
		below := DirTrack - r
		above := DirTrack + r
		if below >= 1 {
			order = append(order, below)
		}
		if above <= 35 {
			order = append(order, above)
		}
	}
	for t := byte(36); t <= tracks; t++ {
		order = append(order, t)
	}
	return order
}

// FindAndAllocate allocates and returns any free sector, following
// the track-priority search order radiating from the directory track.
func (bm *BAM) FindAndAllocate() (track, sector byte, err error) {
	for _, t := range searchOrder(bm.buf.Geometry().Tracks()) {
		if s, ok := bm.FindAndAllocateOnTrack(t); ok {
			return t, s, nil
		}
	}
	return 0, 0, DiskFullf("no free sector available")
}

// FindAndAllocateOnTrack allocates a free sector on the given track,
// starting the search at (cursor+Interleave) mod sectorsPerTrack and
// scanning forward, wrapping once. It returns ok=false if the track
// has no free sector.
func (bm *BAM) FindAndAllocateOnTrack(track byte) (sector byte, ok bool) {
	n := bm.buf.Geometry().SectorsPerTrack(track)
	if n == 0 {
		return 0, false
	}
	start := (bm.cursor[track] + Interleave) % int(n)
	if start < 0 {
		start += int(n)
	}
	for i := 0; i < int(n); i++ {
		s := byte((start + i) % int(n))
		if bm.IsFree(track, s) {
			if allocated, _ := bm.Allocate(track, s); allocated {
				bm.cursor[track] = int(s)
				return s, true
			}
		}
	}
	return 0, false
}

// --- Disk name / ID / header fields ---

// DiskName returns the 16-byte, 0xA0-padded disk name field verbatim.
func (bm *BAM) DiskName() [diskNameLen]byte {
	var out [diskNameLen]byte
	copy(out[:], bm.sector()[bamOffDiskName:bamOffDiskName+diskNameLen])
	return out
}

// SetDiskName overwrites the disk name field, right-padding with
// 0xA0 to 16 bytes (truncating longer names).
func (bm *BAM) SetDiskName(name string) {
	setPaddedName(bm.sector()[bamOffDiskName:bamOffDiskName+diskNameLen], name)
}

// DiskID returns the 2-byte disk ID field verbatim.
func (bm *BAM) DiskID() [2]byte {
	var out [2]byte
	copy(out[:], bm.sector()[bamOffDiskID:bamOffDiskID+2])
	return out
}

// setPaddedName right-pads src into dst with 0xA0, truncating if src
// is longer than dst.
func setPaddedName(dst []byte, src string) {
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = padByte
	}
}

// trimPadded returns the leading bytes of b up to (not including) the
// first 0xA0 byte.
func trimPadded(b []byte) []byte {
	for i, c := range b {
		if c == padByte {
			return b[:i]
		}
	}
	return b
}
