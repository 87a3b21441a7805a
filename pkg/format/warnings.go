package format

import "strings"

// Warnings collects failures that permissive decoding chose not to abort on.
type Warnings []*FormatError

// Check either returns err (strict) or records it and returns nil
// (permissive). A nil err is always a no-op.
func (w *Warnings) Check(err *FormatError, permissive bool) error {
	if err == nil {
		return nil
	}
	if !permissive {
		return err
	}
	*w = append(*w, err)
	return nil
}

// Has reports whether a warning with the given reason was recorded.
func (w Warnings) Has(reason Reason) bool {
	for _, e := range w {
		if e.Reason == reason {
			return true
		}
	}
	return false
}

func (w Warnings) String() string {
	parts := make([]string, len(w))
	for i, e := range w {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
