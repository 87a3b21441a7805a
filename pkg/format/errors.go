// Package format defines the error taxonomy shared by the RTT and NGP
// decoders.
package format

import (
	"errors"
	"fmt"
)

// Reason identifies why a buffer was rejected.
type Reason int

const (
	BadMagic Reason = iota + 1
	FilesizeMismatch
	UnknownCompression
	UnknownImageFormat
	KnownUnreversedFormat
	ReservedByte
	MipSizeMismatch
	BadRecordMagic
	MalformedDescriptor
	Truncated
)

var reasonNames = map[Reason]string{
	BadMagic:              "bad magic",
	FilesizeMismatch:      "filesize mismatch",
	UnknownCompression:    "unknown compression",
	UnknownImageFormat:    "unknown image format",
	KnownUnreversedFormat: "image format not yet reversed",
	ReservedByte:          "reserved byte set",
	MipSizeMismatch:       "mipmap count to filesize mismatch",
	BadRecordMagic:        "bad record magic",
	MalformedDescriptor:   "malformed descriptor",
	Truncated:             "truncated",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Sentinels for errors.Is. A *FormatError matches the sentinel of its Reason.
var (
	ErrBadMagic              = &FormatError{Reason: BadMagic}
	ErrFilesizeMismatch      = &FormatError{Reason: FilesizeMismatch}
	ErrUnknownCompression    = &FormatError{Reason: UnknownCompression}
	ErrUnknownImageFormat    = &FormatError{Reason: UnknownImageFormat}
	ErrKnownUnreversedFormat = &FormatError{Reason: KnownUnreversedFormat}
	ErrReservedByte          = &FormatError{Reason: ReservedByte}
	ErrMipSizeMismatch       = &FormatError{Reason: MipSizeMismatch}
	ErrBadRecordMagic        = &FormatError{Reason: BadRecordMagic}
	ErrMalformedDescriptor   = &FormatError{Reason: MalformedDescriptor}
	ErrTruncated             = &FormatError{Reason: Truncated}
)

// FormatError reports a validation failure at a byte offset.
type FormatError struct {
	Reason Reason
	Offset int
	Detail string
	Err    error
}

// Errorf builds a FormatError with a formatted detail message.
func Errorf(reason Reason, offset int, format string, args ...any) *FormatError {
	return &FormatError{Reason: reason, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds a FormatError around an underlying error, usually a range
// error from binio.
func Wrap(reason Reason, offset int, err error) *FormatError {
	return &FormatError{Reason: reason, Offset: offset, Err: err}
}

func (e *FormatError) Error() string {
	msg := e.Reason.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s (at 0x%x)", msg, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is matches any *FormatError with the same Reason.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

// ReasonOf returns the Reason of the first FormatError in err's chain.
func ReasonOf(err error) (Reason, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Reason, true
	}
	return 0, false
}
