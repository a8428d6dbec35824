package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is a day name as stored in cleaning schedules (backend wire value)
type Weekday string

const (
	Monday    Weekday = "Понедельник"
	Tuesday   Weekday = "Вторник"
	Wednesday Weekday = "Среда"
	Thursday  Weekday = "Четверг"
	Friday    Weekday = "Пятница"
	Saturday  Weekday = "Суббота"
	Sunday    Weekday = "Воскресенье"
)

// Weekdays lists the days Monday first, matching the schedule grid columns
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayToTime = map[Weekday]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// Time converts the day name to a time.Weekday
func (w Weekday) Time() (time.Weekday, bool) {
	d, ok := weekdayToTime[w]
	return d, ok
}

func (w Weekday) IsValid() bool {
	_, ok := weekdayToTime[w]
	return ok
}

// WeekdayOf returns the day name for a time.Weekday
func WeekdayOf(d time.Weekday) Weekday {
	for name, wd := range weekdayToTime {
		if wd == d {
			return name
		}
	}
	return ""
}

// ParseWeekday accepts a backend day name, an English day name or abbreviation,
// or a number 1-7 (Monday = 1)
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("weekday is empty")
	}

	for _, w := range Weekdays {
		if strings.EqualFold(string(w), s) {
			return w, nil
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 7 {
			return "", fmt.Errorf("weekday number must be between 1 and 7, got %d", n)
		}
		return Weekdays[n-1], nil
	}

	lower := strings.ToLower(s)
	for _, w := range Weekdays {
		d := weekdayToTime[w]
		name := strings.ToLower(d.String())
		if lower == name || (len(lower) >= 3 && strings.HasPrefix(name, lower)) {
			return w, nil
		}
	}

	return "", fmt.Errorf("unknown weekday: %s", s)
}
