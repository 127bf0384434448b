package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIndex converts a zero-based path index, rejecting negatives and garbage.
func ParseIndex(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid index %q", value)
	}
	return n, nil
}
