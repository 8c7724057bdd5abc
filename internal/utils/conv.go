package utils

import (
	"strconv"
	"strings"
)

// StringToInt converts string to int, returns 0 for empty or unparseable
// values. Dump attributes occasionally carry whitespace padding.
func StringToInt(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}
