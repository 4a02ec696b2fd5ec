// Copyright © 2024 The d64 authors.

// image.go implements the image lifecycle: formatting a fresh image,
// loading one from a host file (with validation and automatic
// reformat-on-corruption), and saving one back out.

package d64

import (
	"os"

	"github.com/pkg/errors"
)

const (
	dosVersion   = 'A'
	dosTypeMajor = '2'
	dosTypeMinor = 'A'

	defaultDiskName = "NEW DISK"
)

// FormatDisk fills buf with the format-fill byte, initializes the BAM
// (disk name, blank disk ID, dos_type "2A"), marks every sector free,
// zeroes the first directory sector, and marks (18,0) and (18,1)
// allocated. It returns a freshly initialized BAM manager for buf.
func FormatDisk(buf Buffer, diskName string) (*BAM, error) {
	data := buf.Bytes()
	for i := range data {
		data[i] = formatFill
	}

	bam := NewBAM(buf)
	sec, err := buf.sectorView(DirTrack, BAMSector)
	if err != nil {
		return nil, err
	}
	sec[bamOffDirTrack] = DirTrack
	sec[bamOffDirSector] = DirSector
	sec[bamOffDosVer] = dosVersion
	sec[bamOffReserved1] = 0
	sec[bamOffDosType] = dosTypeMajor
	sec[bamOffDosType+1] = dosTypeMinor
	sec[bamOffPad1] = padByte
	sec[bamOffPad1+1] = padByte
	sec[bamOffPad2] = padByte
	for i := 0; i < 5; i++ {
		sec[bamOffReserved2+i] = 0
	}
	bam.SetDiskName(diskName)
	sec[bamOffDiskID] = padByte
	sec[bamOffDiskID+1] = padByte

	// The 40-track extension region and any unused tail beyond it are
	// zero on a real image, not format-fill; the per-track loop below
	// overwrites the portion a 40-track geometry actually uses.
	for i := bamOffTracks36; i < len(sec); i++ {
		sec[i] = 0
	}

	geo := buf.Geometry()
	for t := byte(1); t <= geo.Tracks(); t++ {
		off, ok := bam.entryOffset(t)
		if !ok {
			continue
		}
		n := geo.SectorsPerTrack(t)
		sec[off] = n
		// Set all 24 bits free, including the don't-care bits beyond
		// this track's actual sector count, matching authentic images.
		sec[off+1] = 0xFF
		sec[off+2] = 0xFF
		sec[off+3] = 0xFF
	}

	dirSec, err := buf.sectorView(DirTrack, DirSector)
	if err != nil {
		return nil, err
	}
	for i := range dirSec {
		dirSec[i] = 0
	}
	dirSec[0] = 0
	dirSec[1] = 0xFF

	if _, err := bam.Allocate(DirTrack, BAMSector); err != nil {
		return nil, err
	}
	if _, err := bam.Allocate(DirTrack, DirSector); err != nil {
		return nil, err
	}

	return bam, nil
}

// detectGeometry selects a geometry by host file size, per spec: 35-
// track images are 174848 bytes, 40-track DolphinDOS images are
// 196608 bytes; any other size is an InvalidImage error.
func detectGeometry(size int) (Geometry, error) {
	switch size {
	case Bytes35:
		return NewGeometry35(), nil
	case Bytes40:
		return NewGeometry40(), nil
	default:
		return Geometry{}, InvalidImagef("image size %d is neither a 35-track (%d) nor 40-track (%d) image", size, Bytes35, Bytes40)
	}
}

// validate checks the minimal structural invariants load() relies on:
// the BAM's recorded directory start must be (18,1), and the first
// directory sector's link header must point either into track 18 or
// be the terminal marker (0, 0xFF).
func validate(buf Buffer) bool {
	bamSec, err := buf.ReadSector(DirTrack, BAMSector)
	if err != nil {
		return false
	}
	if bamSec[bamOffDirTrack] != DirTrack || bamSec[bamOffDirSector] != DirSector {
		return false
	}
	dirSec, err := buf.ReadSector(DirTrack, DirSector)
	if err != nil {
		return false
	}
	if dirSec[0] == 0 {
		return dirSec[1] == 0xFF
	}
	return dirSec[0] == DirTrack
}

// LoadImage reads a D64 image from path, selecting 35- or 40-track
// geometry by file size. If the image fails structural validation, it
// is reformatted in place with the default disk name "NEW DISK"
// rather than returned unusable.
func LoadImage(path string) (Buffer, *BAM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Buffer{}, nil, errors.Wrapf(err, "reading image %q", path)
	}
	geo, err := detectGeometry(len(data))
	if err != nil {
		return Buffer{}, nil, err
	}
	buf := NewBuffer(data, geo)
	if !validate(buf) {
		bam, err := FormatDisk(buf, defaultDiskName)
		if err != nil {
			return Buffer{}, nil, errors.Wrap(err, "reformatting corrupt image")
		}
		return buf, bam, nil
	}
	return buf, NewBAM(buf), nil
}

// SaveImage writes buf's raw bytes to path.
func SaveImage(buf Buffer, path string) error {
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "writing image %q", path)
	}
	return nil
}
