package binio

import (
	"strconv"
	"strings"
)

// ParseOffset parses a hex file offset, with or without a 0x prefix.
func ParseOffset(s string) (int, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
