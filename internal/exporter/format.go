package exporter

import (
	"strconv"
	"strings"
)

// formatFloat renders f with the fewest digits that parse back to the same
// value. Whole numbers keep a trailing ".0" so the column stays visibly decimal.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}
