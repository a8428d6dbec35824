package cleaning

import (
	"time"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/stay"
)

// OrphanedLogs returns the pending logs generated from a schedule entry that are
// dated after today. A log belongs to the entry when employee, floor and the
// weekday of its date all match. roomFloors resolves the floor for logs that
// do not carry one.
func OrphanedLogs(schedule model.CleaningSchedule, logs []model.CleaningLog, roomFloors map[int]int, today time.Time) []model.CleaningLog {
	day, ok := schedule.DayOfWeek.Time()
	if !ok {
		return nil
	}
	todayDate := truncateDay(today)

	var orphaned []model.CleaningLog
	for _, log := range logs {
		if log.EmployeeID != schedule.EmployeeID || !log.Status.IsPending() {
			continue
		}
		if floorOf(log, roomFloors) != schedule.Floor {
			continue
		}

		date, ok := stay.ParseDate(log.CleaningDate)
		if !ok {
			continue
		}
		date = truncateDay(date)
		if date.Weekday() != day || !date.After(todayDate) {
			continue
		}
		orphaned = append(orphaned, log)
	}
	return orphaned
}

func floorOf(log model.CleaningLog, roomFloors map[int]int) int {
	if log.Floor != 0 {
		return log.Floor
	}
	return roomFloors[log.RoomID]
}

// RoomFloors indexes room floors by room ID
func RoomFloors(rooms []model.Room) map[int]int {
	floors := make(map[int]int, len(rooms))
	for _, r := range rooms {
		floors[r.ID] = r.Floor
	}
	return floors
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
