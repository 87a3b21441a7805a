package format

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Run("IsMatchesReason", func(t *testing.T) {
		err := fmt.Errorf("decode: %w", Errorf(BadMagic, 0, "expected 0x80, got 0x44"))
		if !errors.Is(err, ErrBadMagic) {
			t.Error("expected errors.Is to match ErrBadMagic")
		}
		if errors.Is(err, ErrTruncated) {
			t.Error("unexpected match with ErrTruncated")
		}
	})

	t.Run("ReasonOf", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", Errorf(MipSizeMismatch, 0xE, "payload 8, expected 16"))
		r, ok := ReasonOf(err)
		if !ok || r != MipSizeMismatch {
			t.Errorf("got %v %v", r, ok)
		}
		if _, ok := ReasonOf(errors.New("plain")); ok {
			t.Error("expected no reason for plain error")
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		inner := errors.New("inner")
		err := Wrap(Truncated, 0x40, inner)
		if !errors.Is(err, inner) {
			t.Error("expected wrapped error to be reachable")
		}
	})

	t.Run("Message", func(t *testing.T) {
		err := Errorf(ReservedByte, 5, "got 0x01")
		want := "reserved byte set: got 0x01 (at 0x5)"
		if err.Error() != want {
			t.Errorf("got %q, want %q", err.Error(), want)
		}
	})
}

func TestWarnings(t *testing.T) {
	var w Warnings

	if err := w.Check(nil, false); err != nil {
		t.Errorf("nil check: %v", err)
	}
	if err := w.Check(Errorf(BadMagic, 0, ""), false); err == nil {
		t.Error("strict check should return the error")
	}
	if len(w) != 0 {
		t.Errorf("strict check recorded %d warnings", len(w))
	}
	if err := w.Check(Errorf(BadMagic, 0, ""), true); err != nil {
		t.Errorf("permissive check returned %v", err)
	}
	if !w.Has(BadMagic) || w.Has(Truncated) {
		t.Errorf("unexpected warnings: %v", w)
	}
}
