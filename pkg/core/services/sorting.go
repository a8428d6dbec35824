package services

import (
	"strconv"
	"strings"
	"unicode"
)

// compareRoomNumbers orders room numbers by their digits ("9" < "10" < "A12"),
// falling back to string comparison when either has no digits
func compareRoomNumbers(a, b string) int {
	na, okA := roomNumberValue(a)
	nb, okB := roomNumberValue(b)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
	}
	return strings.Compare(a, b)
}

func roomNumberValue(s string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// containsFold reports whether substr appears in s, ignoring case
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
