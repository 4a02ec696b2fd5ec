// Copyright © 2024 The d64 authors.

// directory.go implements the directory manager: a singly-linked
// chain of 256-byte directory sectors starting at (18,1), each
// holding eight fixed 30-byte slots.

package d64

import "sort"

const (
	dirEntrySize        = 30
	dirEntriesPerSector = 8

	entOffFileType = 0
	entOffStart    = 1 // 2 bytes
	entOffName     = 3 // 16 bytes
	entOffSide     = 19
	entOffRecSize  = 21
	entOffReserved = 22 // 4 bytes
	entOffReplace  = 26 // 2 bytes
	entOffFileSize = 28 // 2 bytes, little-endian

	nameLen = 16
)

// Entry is a directory entry read out of a directory slot, plus the
// (sector, index) handle needed to write it back.
type Entry struct {
	Type      FileType
	Start     TrackSector
	Name      string // trimmed, not 0xA0-padded
	Side      TrackSector // REL only
	RecSize   byte        // REL only
	Replace   TrackSector
	FileSize  uint16

	sector TrackSector
	index  int
}

// Directory mediates traversal and mutation of the directory chain.
type Directory struct {
	buf Buffer
	bam *BAM
}

// NewDirectory returns a directory manager bound to buf and bam.
func NewDirectory(buf Buffer, bam *BAM) *Directory {
	return &Directory{buf: buf, bam: bam}
}

// slotOffset returns the byte offset, within a directory sector, of
// slot index (0-7).
func slotOffset(index int) int {
	return 2 + index*dirEntrySize
}

func entryFromSlot(sec []byte, ts TrackSector, index int) Entry {
	off := slotOffset(index)
	slot := sec[off : off+dirEntrySize]
	return Entry{
		Type:     FileType(slot[entOffFileType]),
		Start:    TrackSector{Track: slot[entOffStart], Sector: slot[entOffStart+1]},
		Name:     string(trimPadded(slot[entOffName : entOffName+nameLen])),
		Side:     TrackSector{Track: slot[entOffSide], Sector: slot[entOffSide+1]},
		RecSize:  slot[entOffRecSize],
		Replace:  TrackSector{Track: slot[entOffReplace], Sector: slot[entOffReplace+1]},
		FileSize: uint16(slot[entOffFileSize]) | uint16(slot[entOffFileSize+1])<<8,
		sector:   ts,
		index:    index,
	}
}

func writeSlot(sec []byte, index int, e Entry) {
	off := slotOffset(index)
	slot := sec[off : off+dirEntrySize]
	slot[entOffFileType] = byte(e.Type)
	slot[entOffStart] = e.Start.Track
	slot[entOffStart+1] = e.Start.Sector
	setPaddedName(slot[entOffName:entOffName+nameLen], e.Name)
	slot[entOffSide] = e.Side.Track
	slot[entOffSide+1] = e.Side.Sector
	slot[entOffRecSize] = e.RecSize
	for i := 0; i < 4; i++ {
		slot[entOffReserved+i] = 0
	}
	slot[entOffReplace] = e.Replace.Track
	slot[entOffReplace+1] = e.Replace.Sector
	slot[entOffFileSize] = byte(e.FileSize)
	slot[entOffFileSize+1] = byte(e.FileSize >> 8)
}

// slotRef names one directory slot by its sector coordinate and
// in-sector index.
type slotRef struct {
	sector TrackSector
	index  int
}

// walk calls visit for every directory sector in chain order,
// starting at (DirTrack, DirSector). It stops (without error) once
// visit returns false.
func (d *Directory) walk(visit func(ts TrackSector, sec []byte) (keepGoing bool)) error {
	cur := TrackSector{Track: DirTrack, Sector: DirSector}
	for {
		sec, err := d.buf.sectorView(cur.Track, cur.Sector)
		if err != nil {
			return err
		}
		if !visit(cur, sec) {
			return nil
		}
		nextTrack, nextSector := sec[0], sec[1]
		if nextTrack == 0 {
			return nil
		}
		cur = TrackSector{Track: nextTrack, Sector: nextSector}
	}
}

// Entries returns every live directory entry, in traversal order.
func (d *Directory) Entries() ([]Entry, error) {
	var out []Entry
	err := d.walk(func(ts TrackSector, sec []byte) bool {
		for i := 0; i < dirEntriesPerSector; i++ {
			e := entryFromSlot(sec, ts, i)
			if e.Type.Closed() {
				out = append(out, e)
			}
		}
		return true
	})
	return out, err
}

// Find returns the live entry named name (trimmed comparison), or a
// NotFound error.
func (d *Directory) Find(name string) (Entry, error) {
	var found *Entry
	err := d.walk(func(ts TrackSector, sec []byte) bool {
		for i := 0; i < dirEntriesPerSector; i++ {
			e := entryFromSlot(sec, ts, i)
			if e.Type.Closed() && e.Name == name {
				found = &e
				return false
			}
		}
		return true
	})
	if err != nil {
		return Entry{}, err
	}
	if found == nil {
		return Entry{}, NotFoundf("file %q not found", name)
	}
	return *found, nil
}

// findOrCreateSlot scans the directory chain for a slot with the
// closed bit clear. If none exists, it allocates a new directory
// sector, links it from the chain's terminal sector, zeroes it, and
// returns its first slot.
func (d *Directory) findOrCreateSlot() (slotRef, error) {
	var found *slotRef
	var lastSector TrackSector
	err := d.walk(func(ts TrackSector, sec []byte) bool {
		lastSector = ts
		for i := 0; i < dirEntriesPerSector; i++ {
			if !FileType(sec[slotOffset(i)]).Closed() {
				found = &slotRef{sector: ts, index: i}
				return false
			}
		}
		return true
	})
	if err != nil {
		return slotRef{}, err
	}
	if found != nil {
		return *found, nil
	}

	newTrack, newSector, err := d.bam.FindAndAllocate()
	if err != nil {
		return slotRef{}, DiskFullf("directory full: %v", err)
	}
	lastSec, err := d.buf.sectorView(lastSector.Track, lastSector.Sector)
	if err != nil {
		return slotRef{}, err
	}
	lastSec[0] = newTrack
	lastSec[1] = newSector

	newSec, err := d.buf.sectorView(newTrack, newSector)
	if err != nil {
		return slotRef{}, err
	}
	for i := range newSec {
		newSec[i] = 0
	}
	newSec[0] = 0
	newSec[1] = 0xFF

	return slotRef{sector: TrackSector{Track: newTrack, Sector: newSector}, index: 0}, nil
}

// AddFile validates name and payload, allocates and writes the data
// (and, for REL files, the side-sector index), and records a new
// directory entry. locked is applied to the new entry's lock bit.
func (d *Directory) AddFile(name string, code TypeCode, payload []byte, recSize byte, locked bool) error {
	if len(trimPadded([]byte(name))) == 0 {
		return Argumentf("file name must not be empty")
	}
	if len(payload) == 0 {
		return Argumentf("file payload must not be empty")
	}
	if _, err := d.Find(name); err == nil {
		return AlreadyExistsf("file %q already exists", name)
	}

	startTrack, startSector, err := d.bam.FindAndAllocate()
	if err != nil {
		return err
	}
	start := TrackSector{Track: startTrack, Sector: startSector}

	chain, err := WriteChain(d.buf, d.bam, start, payload)
	if err != nil {
		return err
	}

	var side TrackSector
	var recLen byte
	if code == TypeREL {
		sideFirst, _, err := BuildSideSectors(d.buf, d.bam, chain, recSize)
		if err != nil {
			return err
		}
		side = sideFirst
		recLen = recSize
	}

	slot, err := d.findOrCreateSlot()
	if err != nil {
		return err
	}
	sec, err := d.buf.sectorView(slot.sector.Track, slot.sector.Sector)
	if err != nil {
		return err
	}
	entry := Entry{
		Type:     NewFileType(code, locked, true, false),
		Start:    start,
		Name:     name,
		Side:     side,
		RecSize:  recLen,
		Replace:  start,
		FileSize: uint16(len(chain)),
	}
	writeSlot(sec, slot.index, entry)
	return nil
}

// RemoveFile frees the data sector chain of the named file and clears
// its directory slot. For REL files, this does not free the side
// sectors: the spec documents this as a known limitation of the
// original implementation rather than something to silently repair.
// Run VerifyBAM with fix=true afterwards to reclaim orphaned side
// sectors via reachability analysis.
func (d *Directory) RemoveFile(name string) error {
	e, err := d.Find(name)
	if err != nil {
		return err
	}
	chain, err := ChainSectors(d.buf, e.Start)
	if err != nil {
		return err
	}
	for _, ts := range chain {
		if _, err := d.bam.Free(ts.Track, ts.Sector); err != nil {
			return err
		}
	}
	sec, err := d.buf.sectorView(e.sector.Track, e.sector.Sector)
	if err != nil {
		return err
	}
	off := slotOffset(e.index)
	for i := off; i < off+dirEntrySize; i++ {
		sec[i] = 0
	}
	return nil
}

// RenameFile overwrites the 16-byte name field of the named entry.
func (d *Directory) RenameFile(oldName, newName string) error {
	if len(trimPadded([]byte(newName))) == 0 {
		return Argumentf("new file name must not be empty")
	}
	e, err := d.Find(oldName)
	if err != nil {
		return err
	}
	if _, err := d.Find(newName); err == nil {
		return AlreadyExistsf("file %q already exists", newName)
	}
	sec, err := d.buf.sectorView(e.sector.Track, e.sector.Sector)
	if err != nil {
		return err
	}
	off := slotOffset(e.index)
	setPaddedName(sec[off+entOffName:off+entOffName+nameLen], newName)
	return nil
}

// setLocked sets or clears the locked bit on the named entry's
// file-type byte.
func (d *Directory) setLocked(name string, locked bool) error {
	e, err := d.Find(name)
	if err != nil {
		return err
	}
	sec, err := d.buf.sectorView(e.sector.Track, e.sector.Sector)
	if err != nil {
		return err
	}
	off := slotOffset(e.index)
	sec[off+entOffFileType] = byte(FileType(sec[off+entOffFileType]).WithLocked(locked))
	return nil
}

// Lock sets the locked bit on the named entry.
func (d *Directory) Lock(name string) error { return d.setLocked(name, true) }

// Unlock clears the locked bit on the named entry.
func (d *Directory) Unlock(name string) error { return d.setLocked(name, false) }

// rewriteEntries overwrites the directory chain, starting at
// (DirTrack, DirSector), with entries packed 8 per sector in the
// given order. It does not shrink the chain: trailing sectors beyond
// the needed count are cleared to empty slots but remain linked and
// allocated, matching compaction's separate, explicit role.
func (d *Directory) rewriteEntries(entries []Entry) error {
	i := 0
	return d.walk(func(ts TrackSector, sec []byte) bool {
		for slot := 0; slot < dirEntriesPerSector; slot++ {
			if i < len(entries) {
				writeSlot(sec, slot, entries[i])
				i++
			} else {
				off := slotOffset(slot)
				for k := off; k < off+dirEntrySize; k++ {
					sec[k] = 0
				}
			}
		}
		return true
	})
}

// sameOrder reports whether a and b name the same entries (by
// identity of sector+index) in the same order.
func sameOrder(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].sector != b[i].sector || a[i].index != b[i].index {
			return false
		}
	}
	return true
}

// ReorderByNames rewrites the directory so that the named files come
// first, in the given order, followed by all other live entries in
// their existing order. Unknown names are ignored. Returns true if
// the directory was actually rewritten.
func (d *Directory) ReorderByNames(names []string) (bool, error) {
	current, err := d.Entries()
	if err != nil {
		return false, err
	}
	byName := make(map[string]Entry, len(current))
	used := make(map[string]bool, len(current))
	for _, e := range current {
		byName[e.Name] = e
	}
	var next []Entry
	for _, n := range names {
		if e, ok := byName[n]; ok && !used[n] {
			next = append(next, e)
			used[n] = true
		}
	}
	for _, e := range current {
		if !used[e.Name] {
			next = append(next, e)
			used[e.Name] = true
		}
	}
	if sameOrder(current, next) {
		return false, nil
	}
	return true, d.rewriteEntries(next)
}

// ReorderByComparator stably sorts the live entries with less, and
// rewrites the directory if the resulting order differs.
func (d *Directory) ReorderByComparator(less func(a, b Entry) bool) (bool, error) {
	current, err := d.Entries()
	if err != nil {
		return false, err
	}
	next := make([]Entry, len(current))
	copy(next, current)
	sort.SliceStable(next, func(i, j int) bool { return less(next[i], next[j]) })
	if sameOrder(current, next) {
		return false, nil
	}
	return true, d.rewriteEntries(next)
}

// ReorderByEntries rewrites the directory in exactly the given entry
// order (which must be a permutation of the current live entries).
func (d *Directory) ReorderByEntries(order []Entry) (bool, error) {
	current, err := d.Entries()
	if err != nil {
		return false, err
	}
	if sameOrder(current, order) {
		return false, nil
	}
	return true, d.rewriteEntries(order)
}

// MoveToFront moves the named entry to the first slot position,
// preserving the relative order of the rest, and rewrites the
// directory.
func (d *Directory) MoveToFront(name string) (bool, error) {
	current, err := d.Entries()
	if err != nil {
		return false, err
	}
	idx := -1
	for i, e := range current {
		if e.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, NotFoundf("file %q not found", name)
	}
	if idx == 0 {
		return false, nil
	}
	next := make([]Entry, 0, len(current))
	next = append(next, current[idx])
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	return true, d.rewriteEntries(next)
}

// Compact collects all live entries in traversal order and rewrites
// the directory chain from (DirTrack, DirSector), packing 8 per
// sector, then frees any directory sector that becomes empty (except
// the first, which is never freed).
func (d *Directory) Compact() error {
	entries, err := d.Entries()
	if err != nil {
		return err
	}
	neededSectors := (len(entries) + dirEntriesPerSector - 1) / dirEntriesPerSector
	if neededSectors == 0 {
		neededSectors = 1
	}

	var chain []TrackSector
	err = d.walk(func(ts TrackSector, sec []byte) bool {
		chain = append(chain, ts)
		return true
	})
	if err != nil {
		return err
	}

	for i := 0; i < neededSectors; i++ {
		ts := chain[i]
		sec, err := d.buf.sectorView(ts.Track, ts.Sector)
		if err != nil {
			return err
		}
		for slot := 0; slot < dirEntriesPerSector; slot++ {
			idx := i*dirEntriesPerSector + slot
			if idx < len(entries) {
				writeSlot(sec, slot, entries[idx])
			} else {
				off := slotOffset(slot)
				for k := off; k < off+dirEntrySize; k++ {
					sec[k] = 0
				}
			}
		}
		if i+1 < neededSectors {
			next := chain[i+1]
			sec[0] = next.Track
			sec[1] = next.Sector
		} else {
			sec[0] = 0
			sec[1] = 0xFF
		}
	}

	for i := neededSectors; i < len(chain); i++ {
		ts := chain[i]
		if ts.Track == DirTrack && ts.Sector == DirSector {
			continue
		}
		if _, err := d.bam.Free(ts.Track, ts.Sector); err != nil {
			return err
		}
	}
	return nil
}
