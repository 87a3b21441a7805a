// Package binio provides bounds-checked fixed-width reads over an immutable
// byte buffer.
//
// NGP and VRAM files store every multi-byte integer big-endian, while RTT
// sizes and DDS headers are little-endian. Reader defaults to big-endian;
// use WithOrder to switch.
package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a read would cross the end of the buffer.
var ErrOutOfRange = errors.New("read out of range")

// RangeError describes a read that did not fit in the buffer.
type RangeError struct {
	Offset int
	Size   int
	Len    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("read %d bytes at 0x%x: buffer is 0x%x bytes", e.Size, e.Offset, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Reader reads integers at absolute offsets. It never mutates or retains
// more than the slice it was given.
type Reader struct {
	data  []byte
	order binary.ByteOrder
}

// NewReader returns a big-endian Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, order: binary.BigEndian}
}

// WithOrder returns a Reader over the same buffer using the given byte order.
func (r *Reader) WithOrder(order binary.ByteOrder) *Reader {
	return &Reader{data: r.data, order: order}
}

// Len returns the buffer length.
func (r *Reader) Len() int {
	return len(r.data)
}

// Bytes returns the underlying buffer.
func (r *Reader) Bytes() []byte {
	return r.data
}

// Check reports whether size bytes at off are inside the buffer.
func (r *Reader) Check(off, size int) error {
	if off < 0 || size < 0 || off > len(r.data)-size {
		return &RangeError{Offset: off, Size: size, Len: len(r.data)}
	}
	return nil
}

// Slice returns data[off:off+size] without copying.
func (r *Reader) Slice(off, size int) ([]byte, error) {
	if err := r.Check(off, size); err != nil {
		return nil, err
	}
	return r.data[off : off+size], nil
}

// U8 reads one byte.
func (r *Reader) U8(off int) (uint8, error) {
	if err := r.Check(off, 1); err != nil {
		return 0, err
	}
	return r.data[off], nil
}

// U16 reads an unsigned 16-bit integer.
func (r *Reader) U16(off int) (uint16, error) {
	if err := r.Check(off, 2); err != nil {
		return 0, err
	}
	return r.order.Uint16(r.data[off:]), nil
}

// I16 reads a signed 16-bit integer.
func (r *Reader) I16(off int) (int16, error) {
	v, err := r.U16(off)
	return int16(v), err
}

// U24 reads an unsigned 24-bit integer.
func (r *Reader) U24(off int) (uint32, error) {
	if err := r.Check(off, 3); err != nil {
		return 0, err
	}
	b := r.data[off : off+3]
	if r.order == binary.LittleEndian {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// U32 reads an unsigned 32-bit integer.
func (r *Reader) U32(off int) (uint32, error) {
	if err := r.Check(off, 4); err != nil {
		return 0, err
	}
	return r.order.Uint32(r.data[off:]), nil
}

// I32 reads a signed 32-bit integer.
func (r *Reader) I32(off int) (int32, error) {
	v, err := r.U32(off)
	return int32(v), err
}
