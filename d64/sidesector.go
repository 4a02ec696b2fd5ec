// Copyright © 2024 The d64 authors.

// sidesector.go implements the side-sector codec for relative (REL)
// files: building up to six side sectors that index up to 120 data
// sectors each, and parsing that index back into an ordered sector
// list.

package d64

const (
	maxSideSectors         = 6
	maxChainEntriesPerSide = 120

	sideOffBlock      = 2
	sideOffRecordSize = 3
	sideOffGroupTable = 4  // 6 * 2 bytes
	sideOffChainStart = 16 // up to 120 * 2 bytes, to byte 255
)

// BuildSideSectors lays out the side-sector group for a REL file
// whose data sectors (in order) are dataSectors, with the given
// record size. It allocates the side sectors themselves from bam and
// returns the coordinate of the first (canonical) side sector plus
// every side sector allocated, in group order.
//
// Returns RelTooLarge if dataSectors would need more than six side
// sectors, and InvalidRel if recordSize is outside [1, 254].
func BuildSideSectors(buf Buffer, bam *BAM, dataSectors []TrackSector, recordSize byte) (first TrackSector, group []TrackSector, err error) {
	if recordSize < 1 || recordSize > 254 {
		return TrackSector{}, nil, InvalidRelf("record length %d out of range [1,254]", recordSize)
	}

	numBlocks := (len(dataSectors) + maxChainEntriesPerSide - 1) / maxChainEntriesPerSide
	if numBlocks == 0 {
		numBlocks = 1
	}
	if numBlocks > maxSideSectors {
		return TrackSector{}, nil, RelTooLargef(
			"relative file needs %d side sectors to index %d data sectors; maximum is %d",
			numBlocks, len(dataSectors), maxSideSectors)
	}

	for i := 0; i < numBlocks; i++ {
		t, s, allocErr := bam.FindAndAllocate()
		if allocErr != nil {
			return TrackSector{}, group, allocErr
		}
		group = append(group, TrackSector{Track: t, Sector: s})
	}

	for i, ts := range group {
		sec, secErr := buf.sectorView(ts.Track, ts.Sector)
		if secErr != nil {
			return TrackSector{}, group, secErr
		}

		if i+1 < len(group) {
			next := group[i+1]
			sec[0] = next.Track
			sec[1] = next.Sector
		} else {
			count := blockChainCount(i, len(dataSectors))
			sec[0] = 0
			sec[1] = byte(sideOffChainStart + 2*count)
		}
		sec[sideOffBlock] = byte(i)
		sec[sideOffRecordSize] = recordSize

		for j := 0; j < maxSideSectors; j++ {
			off := sideOffGroupTable + j*2
			if j < len(group) {
				sec[off] = group[j].Track
				sec[off+1] = group[j].Sector
			} else {
				sec[off] = 0
				sec[off+1] = 0
			}
		}

		for k := sideOffChainStart; k < SectorSize; k += 2 {
			sec[k] = 0
			sec[k+1] = 0
		}
		start := i * maxChainEntriesPerSide
		end := start + maxChainEntriesPerSide
		if end > len(dataSectors) {
			end = len(dataSectors)
		}
		for idx := start; idx < end; idx++ {
			off := sideOffChainStart + (idx-start)*2
			sec[off] = dataSectors[idx].Track
			sec[off+1] = dataSectors[idx].Sector
		}
	}

	return group[0], group, nil
}

// blockChainCount returns how many chain entries block i holds, given
// a total of total data sectors split into maxChainEntriesPerSide-size
// blocks.
func blockChainCount(i, total int) int {
	n := total - i*maxChainEntriesPerSide
	if n < 0 {
		n = 0
	}
	if n > maxChainEntriesPerSide {
		n = maxChainEntriesPerSide
	}
	return n
}

// ParseSideSectors walks the side-sector chain starting at first and
// returns the concatenated, ordered list of data sectors it indexes.
func ParseSideSectors(buf Buffer, first TrackSector) ([]TrackSector, error) {
	var data []TrackSector
	cur := first
	for {
		sec, err := buf.ReadSector(cur.Track, cur.Sector)
		if err != nil {
			return nil, err
		}
		for k := sideOffChainStart; k < SectorSize; k += 2 {
			t := sec[k]
			if t == 0 {
				break
			}
			data = append(data, TrackSector{Track: t, Sector: sec[k+1]})
		}
		if sec[0] == 0 {
			return data, nil
		}
		cur = TrackSector{Track: sec[0], Sector: sec[1]}
	}
}

// SideSectorGroup returns every side sector in the group that first
// belongs to, read from the canonical group table stored in first
// itself (spec §3: "the same list is written into every side sector
// of the group — first is the canonical copy").
func SideSectorGroup(buf Buffer, first TrackSector) ([]TrackSector, error) {
	sec, err := buf.ReadSector(first.Track, first.Sector)
	if err != nil {
		return nil, err
	}
	var group []TrackSector
	for j := 0; j < maxSideSectors; j++ {
		off := sideOffGroupTable + j*2
		t := sec[off]
		if t == 0 {
			break
		}
		group = append(group, TrackSector{Track: t, Sector: sec[off+1]})
	}
	return group, nil
}
