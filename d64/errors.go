// Copyright © 2024 The d64 authors.

// Package d64 implements reading, writing, and manipulating Commodore
// 1541/1571-compatible disk images ("D64" images) as in-memory byte
// buffers with an exact on-disk byte layout.
package d64

import (
	"errors"
	"fmt"
)

// Copy of errors.New, so callers don't need to import the stdlib
// errors package just to build a sentinel.
func New(text string) error {
	return errors.New(text)
}

// --------------------- Invalid geometry

// invalidGeometry is an error describing a track/sector coordinate
// outside the disk's geometry table.
type invalidGeometry string

// InvalidGeometryI is the tag interface used to mark InvalidGeometry errors.
type InvalidGeometryI interface {
	IsInvalidGeometry()
}

var _ InvalidGeometryI = invalidGeometry("test")

func (e invalidGeometry) Error() string { return string(e) }

func (e invalidGeometry) IsInvalidGeometry() {}

// InvalidGeometryf is fmt.Errorf for InvalidGeometry errors.
func InvalidGeometryf(format string, a ...interface{}) error {
	return invalidGeometry(fmt.Sprintf(format, a...))
}

// IsInvalidGeometry returns true if a given error is an InvalidGeometry error.
func IsInvalidGeometry(err error) bool {
	_, ok := err.(InvalidGeometryI)
	return ok
}

// --------------------- Invalid image

// invalidImage is an error describing an image that is the wrong size,
// or whose structure doesn't validate.
type invalidImage string

// InvalidImageI is the tag interface used to mark InvalidImage errors.
type InvalidImageI interface {
	IsInvalidImage()
}

var _ InvalidImageI = invalidImage("test")

func (e invalidImage) Error() string { return string(e) }

func (e invalidImage) IsInvalidImage() {}

// InvalidImagef is fmt.Errorf for InvalidImage errors.
func InvalidImagef(format string, a ...interface{}) error {
	return invalidImage(fmt.Sprintf(format, a...))
}

// IsInvalidImage returns true if a given error is an InvalidImage error.
func IsInvalidImage(err error) bool {
	_, ok := err.(InvalidImageI)
	return ok
}

// --------------------- Disk full

// diskFull is an error signaling that no free sector was available to
// satisfy an allocation.
type diskFull string

// DiskFullI is the tag interface used to mark DiskFull errors.
type DiskFullI interface {
	IsDiskFull()
}

var _ DiskFullI = diskFull("test")

func (e diskFull) Error() string { return string(e) }

func (e diskFull) IsDiskFull() {}

// DiskFullf is fmt.Errorf for DiskFull errors.
func DiskFullf(format string, a ...interface{}) error {
	return diskFull(fmt.Sprintf(format, a...))
}

// IsDiskFull returns true if a given error is a DiskFull error.
func IsDiskFull(err error) bool {
	_, ok := err.(DiskFullI)
	return ok
}

// --------------------- Not found

// notFound is an error returned when a filename can't be found in the
// directory.
type notFound string

// NotFoundI is the tag interface used to mark NotFound errors.
type NotFoundI interface {
	IsNotFound()
}

var _ NotFoundI = notFound("test")

func (e notFound) Error() string { return string(e) }

func (e notFound) IsNotFound() {}

// NotFoundf is fmt.Errorf for NotFound errors.
func NotFoundf(format string, a ...interface{}) error {
	return notFound(fmt.Sprintf(format, a...))
}

// IsNotFound returns true if a given error is a NotFound error.
func IsNotFound(err error) bool {
	_, ok := err.(NotFoundI)
	return ok
}

// --------------------- Already exists

// alreadyExists is an error returned when adding a file whose name is
// already present in the directory.
type alreadyExists string

// AlreadyExistsI is the tag interface used to mark AlreadyExists errors.
type AlreadyExistsI interface {
	IsAlreadyExists()
}

var _ AlreadyExistsI = alreadyExists("test")

func (e alreadyExists) Error() string { return string(e) }

func (e alreadyExists) IsAlreadyExists() {}

// AlreadyExistsf is fmt.Errorf for AlreadyExists errors.
func AlreadyExistsf(format string, a ...interface{}) error {
	return alreadyExists(fmt.Sprintf(format, a...))
}

// IsAlreadyExists returns true if a given error is an AlreadyExists error.
func IsAlreadyExists(err error) bool {
	_, ok := err.(AlreadyExistsI)
	return ok
}

// --------------------- REL too large

// relTooLarge is an error returned when a relative file would need
// more than six side sectors.
type relTooLarge string

// RelTooLargeI is the tag interface used to mark RelTooLarge errors.
type RelTooLargeI interface {
	IsRelTooLarge()
}

var _ RelTooLargeI = relTooLarge("test")

func (e relTooLarge) Error() string { return string(e) }

func (e relTooLarge) IsRelTooLarge() {}

// RelTooLargef is fmt.Errorf for RelTooLarge errors.
func RelTooLargef(format string, a ...interface{}) error {
	return relTooLarge(fmt.Sprintf(format, a...))
}

// IsRelTooLarge returns true if a given error is a RelTooLarge error.
func IsRelTooLarge(err error) bool {
	_, ok := err.(RelTooLargeI)
	return ok
}

// --------------------- Invalid REL

// invalidRel is an error returned when a REL record length is out of
// range, or a REL file's side sectors can't be found.
type invalidRel string

// InvalidRelI is the tag interface used to mark InvalidRel errors.
type InvalidRelI interface {
	IsInvalidRel()
}

var _ InvalidRelI = invalidRel("test")

func (e invalidRel) Error() string { return string(e) }

func (e invalidRel) IsInvalidRel() {}

// InvalidRelf is fmt.Errorf for InvalidRel errors.
func InvalidRelf(format string, a ...interface{}) error {
	return invalidRel(fmt.Sprintf(format, a...))
}

// IsInvalidRel returns true if a given error is an InvalidRel error.
func IsInvalidRel(err error) bool {
	_, ok := err.(InvalidRelI)
	return ok
}

// --------------------- Argument

// argument is an error returned for bad caller-supplied arguments:
// empty names, empty payloads, negative offsets, and the like.
type argument string

// ArgumentI is the tag interface used to mark Argument errors.
type ArgumentI interface {
	IsArgument()
}

var _ ArgumentI = argument("test")

func (e argument) Error() string { return string(e) }

func (e argument) IsArgument() {}

// Argumentf is fmt.Errorf for Argument errors.
func Argumentf(format string, a ...interface{}) error {
	return argument(fmt.Sprintf(format, a...))
}

// IsArgument returns true if a given error is an Argument error.
func IsArgument(err error) bool {
	_, ok := err.(ArgumentI)
	return ok
}
