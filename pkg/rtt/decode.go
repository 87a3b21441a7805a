package rtt

import (
	"github.com/JMcKiern/warhawk-reversing/pkg/dds"
	"github.com/JMcKiern/warhawk-reversing/pkg/format"
	"github.com/JMcKiern/warhawk-reversing/pkg/texture"
)

// Result is a successfully converted texture.
type Result struct {
	// DDS is the converted file. It shares memory with the input buffer.
	DDS         []byte
	Header      Header
	PixelFormat texture.PixelFormat
	// Warnings lists the checks that failed in permissive mode.
	Warnings format.Warnings
}

type decoder struct {
	permissive bool
	header     dds.HeaderOptions
}

// Option configures Decode.
type Option func(*decoder)

// WithPermissive reports header problems as warnings instead of failing.
// A buffer shorter than the header is still rejected.
func WithPermissive(permissive bool) Option {
	return func(d *decoder) {
		d.permissive = permissive
	}
}

// WithHeaderOptions sets the optional DDS header flags.
func WithHeaderOptions(opts dds.HeaderOptions) Option {
	return func(d *decoder) {
		d.header = opts
	}
}

// Decode validates an RTT buffer and rewrites its first 0x80 bytes as a DDS
// header. The payload is left in place, so the returned Result.DDS is buf.
// On error buf is not modified.
func Decode(buf []byte, opts ...Option) (*Result, error) {
	d := &decoder{}
	for _, opt := range opts {
		opt(d)
	}

	if len(buf) < HeaderSize {
		return nil, format.Errorf(format.Truncated, 0, "need 0x%x header bytes, got 0x%x", HeaderSize, len(buf))
	}

	res := &Result{}
	res.Header.DecodeFrom(buf)

	pf, err := d.pixelFormat(&res.Header, len(buf), &res.Warnings)
	if err != nil {
		return nil, err
	}
	res.PixelFormat = pf

	dds.EncodeTo(buf, pf, d.header)
	res.DDS = buf
	return res, nil
}

// pixelFormat runs every header check in file order and derives the DDS
// pixel format. In permissive mode failures go to warnings.
func (d *decoder) pixelFormat(h *Header, size int, warnings *format.Warnings) (texture.PixelFormat, error) {
	check := func(reason format.Reason, offset int, msg string, args ...any) error {
		return warnings.Check(format.Errorf(reason, offset, msg, args...), d.permissive)
	}

	if h.Magic != Magic {
		if err := check(format.BadMagic, 0x00, "expected 0x%02x, got 0x%02x", Magic, h.Magic); err != nil {
			return texture.PixelFormat{}, err
		}
	}

	if h.FileSize() != size {
		if err := check(format.FilesizeMismatch, 0x01, "header says 0x%x, file is 0x%x", h.FileSize(), size); err != nil {
			return texture.PixelFormat{}, err
		}
	}

	kind := texture.ParseCompression(h.Compression)
	if kind == texture.Unknown {
		if err := check(format.UnknownCompression, 0x04, "code 0x%02x", h.Compression); err != nil {
			return texture.PixelFormat{}, err
		}
		kind = texture.Uncompressed
	}

	if h.Reserved0 != 0 {
		if err := check(format.ReservedByte, 0x05, "got 0x%02x", h.Reserved0); err != nil {
			return texture.PixelFormat{}, err
		}
	}

	imgFormat := texture.ParseImageFormat(h.ImageFormat)
	switch imgFormat {
	case texture.FormatStandard, texture.FormatAlphaMask:
	case texture.FormatUnreversed:
		if err := check(format.KnownUnreversedFormat, 0x06, "image format 0x%04x", h.ImageFormat); err != nil {
			return texture.PixelFormat{}, err
		}
	case texture.FormatUnknown:
		if err := check(format.UnknownImageFormat, 0x06, "tag 0x%04x", h.ImageFormat); err != nil {
			return texture.PixelFormat{}, err
		}
	}

	if h.Reserved1 != 0 {
		if err := check(format.ReservedByte, 0x0C, "got 0x%02x", h.Reserved1); err != nil {
			return texture.PixelFormat{}, err
		}
	}

	if !h.FamilyGuardOK() {
		if err := check(format.KnownUnreversedFormat, 0x0D, "defaultfog family (0x%02x, 0x%02x)", h.Guard0, h.Guard1); err != nil {
			return texture.PixelFormat{}, err
		}
	}

	pf := texture.NewPixelFormat(kind, imgFormat, h.Width, h.Height, h.MipCount)
	if want := pf.DataSize(); size-HeaderSize != want {
		if err := check(format.MipSizeMismatch, 0x0E, "%d mips need 0x%x payload bytes, got 0x%x", h.MipCount, want, size-HeaderSize); err != nil {
			return texture.PixelFormat{}, err
		}
	}

	return pf, nil
}
