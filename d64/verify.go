// Copyright © 2024 The d64 authors.

// verify.go implements the integrity verifier: it cross-checks the
// Block Availability Map against what's actually reachable by walking
// the directory, and optionally repairs mismatches.

package d64

import (
	"fmt"
	"io"
)

// usageMap tracks, per (track, sector), whether reachability analysis
// found the sector in use.
type usageMap map[TrackSector]bool

// buildUsageMap walks (18,0), the directory chain, every live
// entry's data chain, and for REL entries the side-sector group and
// every chain entry within every side sector.
func buildUsageMap(buf Buffer, dir *Directory) (usageMap, error) {
	used := usageMap{}
	used[TrackSector{Track: DirTrack, Sector: BAMSector}] = true

	err := dir.walk(func(ts TrackSector, sec []byte) bool {
		used[ts] = true
		return true
	})
	if err != nil {
		return nil, err
	}

	entries, err := dir.Entries()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		chain, err := ChainSectors(buf, e.Start)
		if err != nil {
			return nil, err
		}
		for _, ts := range chain {
			used[ts] = true
		}
		if e.Type.Code() == TypeREL {
			group, err := SideSectorGroup(buf, e.Side)
			if err != nil {
				return nil, err
			}
			for _, ts := range group {
				used[ts] = true
			}
			dataSectors, err := ParseSideSectors(buf, e.Side)
			if err != nil {
				return nil, err
			}
			for _, ts := range dataSectors {
				used[ts] = true
			}
		}
	}
	return used, nil
}

// VerifyBAM cross-checks the BAM against reachability computed from
// the directory. Findings are logged to w as "ERROR: ..." lines (or
// "FIXING: ..." when fix corrects them). It returns true iff no
// mismatches were found (equivalently, iff the disk was already
// consistent before any fix was applied).
func VerifyBAM(buf Buffer, bam *BAM, dir *Directory, fix bool, w io.Writer) (bool, error) {
	used, err := buildUsageMap(buf, dir)
	if err != nil {
		return false, err
	}

	logf := func(format string, a ...interface{}) {
		if w == nil {
			return
		}
		fmt.Fprintf(w, format+"\n", a...)
	}

	ok := true
	geo := buf.Geometry()
	for t := byte(1); t <= geo.Tracks(); t++ {
		n := geo.SectorsPerTrack(t)
		for s := byte(0); s < n; s++ {
			ts := TrackSector{Track: t, Sector: s}
			isUsed := used[ts]
			isFree := bam.IsFree(t, s)

			switch {
			case !isFree && !isUsed:
				ok = false
				logf("ERROR: (%d,%d) incorrectly marked used", t, s)
				if fix {
					logf("FIXING: marking (%d,%d) free", t, s)
					if _, err := bam.Free(t, s); err != nil {
						return false, err
					}
				}
			case isFree && isUsed:
				ok = false
				logf("ERROR: (%d,%d) incorrectly marked free", t, s)
				if fix {
					logf("FIXING: marking (%d,%d) used", t, s)
					if _, err := bam.Allocate(t, s); err != nil {
						return false, err
					}
				}
			}
		}
	}

	for t := byte(1); t <= geo.Tracks(); t++ {
		n := geo.SectorsPerTrack(t)
		var freeCount byte
		for s := byte(0); s < n; s++ {
			if bam.IsFree(t, s) {
				freeCount++
			}
		}
		recorded := bam.freeCountField(t)
		if recorded != freeCount {
			ok = false
			logf("ERROR: track %d free count is %d, should be %d", t, recorded, freeCount)
			if fix {
				logf("FIXING: track %d free count to %d", t, freeCount)
				bam.setFreeCountField(t, freeCount)
			}
		}
	}

	return ok, nil
}
