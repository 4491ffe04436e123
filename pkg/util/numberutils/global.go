package numberutils

import (
	"strconv"
	"strings"
)

// ToBoolWithDefault parses "true"/"false"/"1"/"0" (case-insensitive).
// Blank or unparsable input yields defaultVal.
func ToBoolWithDefault(s string, defaultVal bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
		return b
	}
	return defaultVal
}
