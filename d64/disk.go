// Copyright © 2024 The d64 authors.

// disk.go is the public API façade: a single Disk type binding every
// operation in this package to stable, user-visible names.

package d64

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Disk is an in-memory D64 image, ready for the full set of format,
// catalog, file, and BAM operations. The zero Disk is not usable;
// construct one with Format or Load.
type Disk struct {
	buf Buffer
	bam *BAM
	dir *Directory
}

// Format returns a freshly formatted 35- or 40-track disk image with
// the given disk name.
func Format(tracks40 bool, diskName string) (*Disk, error) {
	var geo Geometry
	if tracks40 {
		geo = NewGeometry40()
	} else {
		geo = NewGeometry35()
	}
	buf := NewBuffer(make([]byte, geo.Size()), geo)
	bam, err := FormatDisk(buf, diskName)
	if err != nil {
		return nil, err
	}
	return &Disk{buf: buf, bam: bam, dir: NewDirectory(buf, bam)}, nil
}

// Load reads a D64 image from a host file.
func Load(path string) (*Disk, error) {
	buf, bam, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return &Disk{buf: buf, bam: bam, dir: NewDirectory(buf, bam)}, nil
}

// Save writes the image to a host file.
func (d *Disk) Save(path string) error {
	return SaveImage(d.buf, path)
}

// SetLogger directs BAM warning output (e.g. refusing to free a
// reserved sector) to w. Nil discards it.
func (d *Disk) SetLogger(w io.Writer) {
	d.bam.Logger = w
}

// RenameDisk overwrites the disk name field.
func (d *Disk) RenameDisk(name string) {
	d.bam.SetDiskName(name)
}

// DiskName returns the current disk name, trimmed of 0xA0 padding.
func (d *Disk) DiskName() string {
	raw := d.bam.DiskName()
	return string(trimPadded(raw[:]))
}

// AddFile creates a new file named name with the given type and
// payload. For REL files, recSize is the fixed record length; it is
// ignored for other types.
func (d *Disk) AddFile(name string, code TypeCode, payload []byte, recSize byte, locked bool) error {
	return d.dir.AddFile(name, code, payload, recSize, locked)
}

// ReadFile returns the decoded payload bytes of the named file's data
// chain.
func (d *Disk) ReadFile(name string) ([]byte, error) {
	e, err := d.dir.Find(name)
	if err != nil {
		return nil, err
	}
	return ReadChain(d.buf, e.Start)
}

// DefaultExtractName returns the host file name ExtractFile derives
// for name when no explicit destination is given: the entry's own
// name plus its type-derived suffix (.prg, .seq, .usr, .rel). Types
// with no defined suffix (DEL, or an unrecognized code) are refused
// with an Argument error.
func (d *Disk) DefaultExtractName(name string) (string, error) {
	e, err := d.dir.Find(name)
	if err != nil {
		return "", err
	}
	suffix, ok := e.Type.Code().Suffix()
	if !ok {
		return "", Argumentf("file %q has no extraction suffix for type %v", name, e.Type.Code())
	}
	return e.Name + suffix, nil
}

// ExtractFile writes the named file's payload to a host file at
// hostPath. If hostPath is empty, it is derived via DefaultExtractName.
func (d *Disk) ExtractFile(name, hostPath string) error {
	e, err := d.dir.Find(name)
	if err != nil {
		return err
	}
	if hostPath == "" {
		hostPath, err = d.DefaultExtractName(name)
		if err != nil {
			return err
		}
	}
	data, err := ReadChain(d.buf, e.Start)
	if err != nil {
		return err
	}
	return writeHostFile(hostPath, data)
}

// RemoveFile frees the named file's data chain and clears its
// directory slot. See Directory.RemoveFile for the REL side-sector
// caveat.
func (d *Disk) RemoveFile(name string) error {
	return d.dir.RemoveFile(name)
}

// RenameFile renames a file in place.
func (d *Disk) RenameFile(oldName, newName string) error {
	return d.dir.RenameFile(oldName, newName)
}

// Directory returns every live directory entry, in traversal order.
func (d *Disk) Directory() ([]Entry, error) {
	return d.dir.Entries()
}

// Lock sets the locked bit on a file.
func (d *Disk) Lock(name string) error { return d.dir.Lock(name) }

// Unlock clears the locked bit on a file.
func (d *Disk) Unlock(name string) error { return d.dir.Unlock(name) }

// MoveToFront moves a file to the first directory slot.
func (d *Disk) MoveToFront(name string) (bool, error) {
	return d.dir.MoveToFront(name)
}

// ReorderByNames reorders the directory, putting names first in the
// given order followed by everything else unchanged.
func (d *Disk) ReorderByNames(names []string) (bool, error) {
	return d.dir.ReorderByNames(names)
}

// ReorderByComparator stably reorders the directory with a custom
// less function.
func (d *Disk) ReorderByComparator(less func(a, b Entry) bool) (bool, error) {
	return d.dir.ReorderByComparator(less)
}

// ReorderByEntries reorders the directory to exactly match order.
func (d *Disk) ReorderByEntries(order []Entry) (bool, error) {
	return d.dir.ReorderByEntries(order)
}

// CompactDirectory repacks live entries from the start of the
// directory chain, freeing any directory sector that becomes empty.
func (d *Disk) CompactDirectory() error {
	return d.dir.Compact()
}

// VerifyBAM cross-checks the BAM against directory reachability,
// logging findings to w and optionally repairing them. It returns
// true iff no mismatch was found.
func (d *Disk) VerifyBAM(fix bool, w io.Writer) (bool, error) {
	return VerifyBAM(d.buf, d.bam, d.dir, fix, w)
}

// FreeSectorCount returns the number of free sectors, excluding the
// directory track.
func (d *Disk) FreeSectorCount() uint16 {
	return d.bam.FreeSectorCount()
}

// FreeSectors enumerates every sector currently marked free, in
// track/sector order. Useful for diagnostics and tests; not part of
// any hot path.
func (d *Disk) FreeSectors() []TrackSector {
	var out []TrackSector
	geo := d.buf.Geometry()
	for t := byte(1); t <= geo.Tracks(); t++ {
		n := geo.SectorsPerTrack(t)
		for s := byte(0); s < n; s++ {
			if d.bam.IsFree(t, s) {
				out = append(out, TrackSector{Track: t, Sector: s})
			}
		}
	}
	return out
}

// FindAndAllocateFreeSector allocates and returns any free sector,
// following the BAM's track-priority search order.
func (d *Disk) FindAndAllocateFreeSector() (TrackSector, error) {
	t, s, err := d.bam.FindAndAllocate()
	if err != nil {
		return TrackSector{}, err
	}
	return TrackSector{Track: t, Sector: s}, nil
}

// ReadSector returns a copy of a raw 256-byte sector.
func (d *Disk) ReadSector(track, sector byte) ([]byte, error) {
	return d.buf.ReadSector(track, sector)
}

// WriteSector overwrites a raw 256-byte sector.
func (d *Disk) WriteSector(track, sector byte, data []byte) error {
	return d.buf.WriteSector(track, sector, data)
}

// Interleave returns the fixed sector-allocation interleave distance.
func (d *Disk) Interleave() int {
	return Interleave
}

// Geometry returns the disk's track/sector geometry.
func (d *Disk) Geometry() Geometry {
	return d.buf.Geometry()
}

func writeHostFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %q", path)
	}
	return nil
}
