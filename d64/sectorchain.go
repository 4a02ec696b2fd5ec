// Copyright © 2024 The d64 authors.

// sectorchain.go implements the sector-chain codec: reading and
// writing a file's data as a linked list of sectors, where each
// sector's first two bytes are either a (next-track, next-sector)
// link, or, on the terminal sector, (0, used-bytes+1).

package d64

import "io"

const maxChainPayloadPerSector = SectorSize - 2 // 254

// WriteChain streams payload into the sector chain starting at
// start, which the caller must already have allocated. It allocates
// additional sectors from bam as needed and returns every (track,
// sector) pair it wrote to, in chain order.
//
// If bam runs out of space mid-write, WriteChain returns the sectors
// allocated to the chain so far (the last of which has not been
// written) along with a DiskFull error; those sectors remain
// allocated (spec §7: non-transactional).
func WriteChain(buf Buffer, bam *BAM, start TrackSector, payload []byte) ([]TrackSector, error) {
	chain := []TrackSector{start}
	cur := start
	remaining := payload

	for {
		if len(remaining) <= maxChainPayloadPerSector {
			sec, err := buf.sectorView(cur.Track, cur.Sector)
			if err != nil {
				return chain, err
			}
			sec[0] = 0
			sec[1] = byte(len(remaining) + 1)
			n := copy(sec[2:], remaining)
			for i := 2 + n; i < SectorSize; i++ {
				sec[i] = 0
			}
			return chain, nil
		}

		nextTrack, nextSector, err := bam.FindAndAllocate()
		if err != nil {
			return chain, err
		}
		sec, err := buf.sectorView(cur.Track, cur.Sector)
		if err != nil {
			return chain, err
		}
		sec[0] = nextTrack
		sec[1] = nextSector
		copy(sec[2:SectorSize], remaining[:maxChainPayloadPerSector])

		remaining = remaining[maxChainPayloadPerSector:]
		cur = TrackSector{Track: nextTrack, Sector: nextSector}
		chain = append(chain, cur)
	}
}

// ReadChain follows the sector chain starting at start and returns
// its decoded payload bytes.
func ReadChain(buf Buffer, start TrackSector) ([]byte, error) {
	var out []byte
	cur := start
	for {
		sec, err := buf.ReadSector(cur.Track, cur.Sector)
		if err != nil {
			return nil, err
		}
		nextTrack, nextSector := sec[0], sec[1]
		if nextTrack == 0 {
			used := int(nextSector) - 1
			if used < 0 {
				used = 0
			}
			if used > maxChainPayloadPerSector {
				used = maxChainPayloadPerSector
			}
			out = append(out, sec[2:2+used]...)
			return out, nil
		}
		out = append(out, sec[2:SectorSize]...)
		cur = TrackSector{Track: nextTrack, Sector: nextSector}
	}
}

// ChainSectors walks the sector chain starting at start and returns
// every (track, sector) coordinate in chain order, without decoding
// payload bytes. Used by Directory.RemoveFile and the integrity
// verifier's reachability scan.
func ChainSectors(buf Buffer, start TrackSector) ([]TrackSector, error) {
	var out []TrackSector
	cur := start
	for {
		out = append(out, cur)
		sec, err := buf.ReadSector(cur.Track, cur.Sector)
		if err != nil {
			return out, err
		}
		if sec[0] == 0 {
			return out, nil
		}
		cur = TrackSector{Track: sec[0], Sector: sec[1]}
	}
}

// ChainIterator walks a sector chain one block at a time, for callers
// that want to process a file's payload without materializing the
// whole thing up front. The zero value is not usable; construct one
// with NewChainIterator.
type ChainIterator struct {
	buf  Buffer
	next TrackSector
	done bool
}

// NewChainIterator returns an iterator over the sector chain starting
// at start.
func NewChainIterator(buf Buffer, start TrackSector) *ChainIterator {
	return &ChainIterator{buf: buf, next: start}
}

// Next returns the coordinate and decoded payload bytes of the next
// block in the chain. It returns io.EOF once the terminal block has
// already been returned.
func (it *ChainIterator) Next() (TrackSector, []byte, error) {
	if it.done {
		return TrackSector{}, nil, io.EOF
	}
	ts := it.next
	sec, err := it.buf.ReadSector(ts.Track, ts.Sector)
	if err != nil {
		return TrackSector{}, nil, err
	}
	if sec[0] == 0 {
		it.done = true
		used := int(sec[1]) - 1
		if used < 0 {
			used = 0
		}
		if used > maxChainPayloadPerSector {
			used = maxChainPayloadPerSector
		}
		return ts, sec[2 : 2+used], nil
	}
	it.next = TrackSector{Track: sec[0], Sector: sec[1]}
	return ts, sec[2:SectorSize], nil
}
