/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the RLAD codec's error taxonomy (spec §7). Every
  error propagates to the top-level caller; nothing in this package
  swallows an error or attempts to resynchronize after a failure.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rlad

import "fmt"

// BadFormatError is raised when a file magic, tag or enumerated field
// fails validation.
type BadFormatError struct {
	Expected string
	Msg      string
}

func (e *BadFormatError) Error() string {
	return fmt.Sprintf("bad format (%s): %s", e.Expected, e.Msg)
}

func badFormat(expected, format string, args ...interface{}) error {
	return &BadFormatError{Expected: expected, Msg: fmt.Sprintf(format, args...)}
}

// IncompleteHeaderError is raised on a short read while parsing a stream
// or block header.
type IncompleteHeaderError struct {
	Type string
}

func (e *IncompleteHeaderError) Error() string {
	return fmt.Sprintf("incomplete header: %s", e.Type)
}

func incompleteHeader(typ string) error {
	return &IncompleteHeaderError{Type: typ}
}

// IncompleteDataError is raised on a short read while fetching a block
// payload or other bulk data.
type IncompleteDataError struct {
	Op            string
	BytesMissing  int
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("incomplete data (%s): missing %d bytes", e.Op, e.BytesMissing)
}

func incompleteData(op string, missing int) error {
	return &IncompleteDataError{Op: op, BytesMissing: missing}
}

// IncompleteFrameError is raised when a byte count is not divisible by
// the frame size at a boundary where wholeness is required.
type IncompleteFrameError struct {
	Enc       string
	Channels  int
	Remainder int
}

func (e *IncompleteFrameError) Error() string {
	return fmt.Sprintf("incomplete frame (%s, %d channels): %d bytes left over", e.Enc, e.Channels, e.Remainder)
}

func incompleteFrame(enc string, channels, remainder int) error {
	return &IncompleteFrameError{Enc: enc, Channels: channels, Remainder: remainder}
}

// UnsupportedFormatError is raised when a format discriminator is
// recognized but unimplemented.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Name)
}

func unsupportedFormat(name string) error {
	return &UnsupportedFormatError{Name: name}
}

// InvalidOperationError is raised on misuse of the codec API: no header
// set, wrong frame count, etc.
type InvalidOperationError struct {
	Msg string
}

func (e *InvalidOperationError) Error() string {
	return e.Msg
}

func invalidOperation(format string, args ...interface{}) error {
	return &InvalidOperationError{Msg: fmt.Sprintf(format, args...)}
}

// ArgumentOutOfRangeError is raised for structural out-of-range values,
// such as an invalid channel layout, a payload larger than the block
// limit, or a lossy delta outside the Full tier's range.
type ArgumentOutOfRangeError struct {
	Arg   string
	Value int
}

func (e *ArgumentOutOfRangeError) Error() string {
	return fmt.Sprintf("argument out of range: %s = %d", e.Arg, e.Value)
}

func argumentOutOfRange(arg string, value int) error {
	return &ArgumentOutOfRangeError{Arg: arg, Value: value}
}
