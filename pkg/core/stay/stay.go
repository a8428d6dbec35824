// Package stay derives booking figures (nights, totals, occupancy) from
// entity data fetched from the backend.
package stay

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the date format used by the backend for all date fields
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a backend date or timestamp
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Nights returns the number of nights between check-in and check-out.
// Unparsable dates and non-positive spans give zero.
func Nights(checkIn, checkOut string) int {
	in, ok := ParseDate(checkIn)
	if !ok {
		return 0
	}
	out, ok := ParseDate(checkOut)
	if !ok {
		return 0
	}

	days := math.Ceil(out.Sub(in).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return int(days)
}

// Total returns nights x pricePerNight. Zero nights means an invalid booking, not a free stay.
func Total(checkIn, checkOut string, pricePerNight float64) float64 {
	return float64(Nights(checkIn, checkOut)) * pricePerNight
}

// ValidRange reports whether both dates parse and check-out is strictly after check-in
func ValidRange(checkIn, checkOut string) bool {
	in, ok := ParseDate(checkIn)
	if !ok {
		return false
	}
	out, ok := ParseDate(checkOut)
	if !ok {
		return false
	}
	return out.After(in)
}

// Quote is the price breakdown for a stay
type Quote struct {
	Nights        int
	PricePerNight float64
	Total         float64
}

// QuoteFor computes a Quote for the given dates and nightly price
func QuoteFor(checkIn, checkOut string, pricePerNight float64) Quote {
	nights := Nights(checkIn, checkOut)
	return Quote{
		Nights:        nights,
		PricePerNight: pricePerNight,
		Total:         float64(nights) * pricePerNight,
	}
}
