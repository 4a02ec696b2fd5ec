// Copyright © 2024 The d64 authors.

// filetype.go contains the directory file-type byte: a bitfield
// packing a type code, a replace-in-progress flag, a locked flag, and
// a closed/in-use flag into a single byte, plus a small table-driven
// registry of type names and host-extension suffixes.

package d64

import "fmt"

// TypeCode is the four-bit file-type code stored in the low nibble of
// a directory entry's file-type byte.
type TypeCode byte

// The five file-type codes a D64 directory entry can hold.
const (
	TypeDEL TypeCode = 0
	TypeSEQ TypeCode = 1
	TypePRG TypeCode = 2
	TypeUSR TypeCode = 3
	TypeREL TypeCode = 4
)

// typeInfo holds the name and host-extraction suffix for a TypeCode.
type typeInfo struct {
	Code   TypeCode
	Name   string
	Suffix string // host file suffix used by ExtractFile
}

var typeInfos = []typeInfo{
	{TypeDEL, "DEL", ""},
	{TypeSEQ, "SEQ", ".seq"},
	{TypePRG, "PRG", ".prg"},
	{TypeUSR, "USR", ".usr"},
	{TypeREL, "REL", ".rel"},
}

// String returns the three-letter D64 type name (DEL, SEQ, PRG, USR,
// REL), or a numeric fallback for an out-of-range code.
func (t TypeCode) String() string {
	for _, info := range typeInfos {
		if info.Code == t {
			return info.Name
		}
	}
	return fmt.Sprintf("TYPE(%d)", byte(t))
}

// Suffix returns the host-file suffix used when extracting a file of
// this type, and false if the type has no defined suffix (DEL, or any
// unrecognized code).
func (t TypeCode) Suffix() (string, bool) {
	for _, info := range typeInfos {
		if info.Code == t {
			if info.Suffix == "" {
				return "", false
			}
			return info.Suffix, true
		}
	}
	return "", false
}

// FileType is the value object wrapping a directory entry's
// file-type byte. Bit layout (spec §3):
//
//	bits 0-3: TypeCode
//	bit 4:    unused
//	bit 5:    replace-in-progress
//	bit 6:    locked
//	bit 7:    closed (1 = valid entry, 0 = free/deleted slot)
type FileType byte

const (
	fileTypeCodeMask   = 0x0F
	fileTypeReplaceBit = 1 << 5
	fileTypeLockedBit  = 1 << 6
	fileTypeClosedBit  = 1 << 7
)

// NewFileType builds a FileType byte from its component fields.
func NewFileType(code TypeCode, locked, closed, replace bool) FileType {
	var b byte = byte(code) & fileTypeCodeMask
	if replace {
		b |= fileTypeReplaceBit
	}
	if locked {
		b |= fileTypeLockedBit
	}
	if closed {
		b |= fileTypeClosedBit
	}
	return FileType(b)
}

// Code returns the four-bit type code.
func (f FileType) Code() TypeCode {
	return TypeCode(byte(f) & fileTypeCodeMask)
}

// Locked returns whether the locked bit is set.
func (f FileType) Locked() bool {
	return byte(f)&fileTypeLockedBit != 0
}

// WithLocked returns a copy of f with the locked bit set or cleared.
func (f FileType) WithLocked(locked bool) FileType {
	if locked {
		return f | fileTypeLockedBit
	}
	return f &^ fileTypeLockedBit
}

// Replace returns whether the replace-in-progress bit is set.
func (f FileType) Replace() bool {
	return byte(f)&fileTypeReplaceBit != 0
}

// Closed returns whether the entry is closed/in-use. A directory slot
// with Closed()==false is treated as empty regardless of other bits
// (spec §3 invariant).
func (f FileType) Closed() bool {
	return byte(f)&fileTypeClosedBit != 0
}

// WithClosed returns a copy of f with the closed bit set or cleared.
func (f FileType) WithClosed(closed bool) FileType {
	if closed {
		return f | fileTypeClosedBit
	}
	return f &^ fileTypeClosedBit
}
