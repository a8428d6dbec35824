package cleaning

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/stay"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// ClosedDays is a set of dates (YYYY-MM-DD) on which no cleaning is planned
type ClosedDays map[string]bool

// ExpandClosedDays evaluates closed-day rrules between from and until (inclusive)
func ExpandClosedDays(rules []string, from, until time.Time) (ClosedDays, error) {
	closed := make(ClosedDays)
	start := truncateDay(from)
	end := truncateDay(until)

	for i, raw := range rules {
		rule, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse closed day rrule %d: %w", i, err)
		}
		rule.DTStart(start)
		for _, occurrence := range rule.Between(start, end, true) {
			closed[occurrence.Format(stay.DateLayout)] = true
		}
	}
	return closed, nil
}

// Occurrences returns the dates between from and until (inclusive) on which a
// weekly schedule entry falls, skipping closed days
func Occurrences(day model.Weekday, from, until time.Time, closed ClosedDays) ([]time.Time, error) {
	wd, ok := day.Time()
	if !ok {
		return nil, fmt.Errorf("unknown weekday: %q", day)
	}

	start := truncateDay(from)
	end := truncateDay(until)
	if end.Before(start) {
		return nil, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[wd]},
		Dtstart:   start,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly rule: %w", err)
	}

	var dates []time.Time
	for _, occurrence := range rule.Between(start, end, true) {
		if closed[occurrence.Format(stay.DateLayout)] {
			continue
		}
		dates = append(dates, occurrence)
	}
	return dates, nil
}

// PlanLogs builds one pending log per room on the schedule's floor per date,
// leaving out room/date pairs that already have a log
func PlanLogs(schedule model.CleaningSchedule, rooms []model.Room, existing []model.CleaningLog, dates []time.Time) []model.CleaningLog {
	have := make(map[string]bool, len(existing))
	for _, log := range existing {
		if date, ok := stay.ParseDate(log.CleaningDate); ok {
			have[logKey(log.RoomID, date)] = true
		}
	}

	var planned []model.CleaningLog
	for _, date := range dates {
		for _, room := range rooms {
			if room.Floor != schedule.Floor {
				continue
			}
			key := logKey(room.ID, date)
			if have[key] {
				continue
			}
			have[key] = true
			planned = append(planned, model.CleaningLog{
				RoomID:       room.ID,
				EmployeeID:   schedule.EmployeeID,
				CleaningDate: date.Format(stay.DateLayout),
				Status:       model.CleaningNotStarted,
				Floor:        room.Floor,
			})
		}
	}
	return planned
}

func logKey(roomID int, date time.Time) string {
	return fmt.Sprintf("%d|%s", roomID, date.Format(stay.DateLayout))
}
