package common

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseWork parses a cumulative work value given in decimal or as 0x prefixed hex.
// Work values routinely exceed 64 bits.
func ParseWork(val string) (*big.Int, error) {
	str := strings.TrimSpace(val)
	base := 10

	if rest, ok := strings.CutPrefix(strings.ToLower(str), "0x"); ok {
		str = rest
		base = 16
	}

	work, ok := new(big.Int).SetString(str, base)
	if !ok {
		return nil, fmt.Errorf("invalid work value %q", val)
	}
	if work.Sign() < 0 {
		return nil, fmt.Errorf("work value %q is negative", val)
	}

	return work, nil
}

const bytesInMB = 1024 * 1024

func BytesToMB(bytes uint64) uint64 {
	return bytes / bytesInMB
}

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
