package stay

import (
	"fmt"
	"time"
)

// Window is an inclusive date range used to filter bookings for reports
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow parses start and end dates. End must not be before start.
func NewWindow(start, end string) (Window, error) {
	s, ok := ParseDate(start)
	if !ok {
		return Window{}, fmt.Errorf("invalid start date: %q", start)
	}
	e, ok := ParseDate(end)
	if !ok {
		return Window{}, fmt.Errorf("invalid end date: %q", end)
	}
	if e.Before(s) {
		return Window{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether a booking [checkIn, checkOut] overlaps the window.
// Touching a boundary counts as overlap. Unparsable bookings are excluded.
func (w Window) Contains(checkIn, checkOut string) bool {
	in, ok := ParseDate(checkIn)
	if !ok {
		return false
	}
	out, ok := ParseDate(checkOut)
	if !ok {
		return false
	}
	return !(out.Before(w.Start) || in.After(w.End))
}

func (w Window) String() string {
	return w.Start.Format(DateLayout) + " to " + w.End.Format(DateLayout)
}
