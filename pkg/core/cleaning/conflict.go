// Package cleaning holds the rules for floor cleaning assignments: who may
// clean which floor on which weekday, and which dated logs belong to a schedule.
package cleaning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

// ErrScheduleConflict is wrapped by every ConflictError
var ErrScheduleConflict = errors.New("cleaning schedule conflict")

type ConflictKind string

const (
	// EmployeeBusy: the employee already cleans a different floor that weekday
	EmployeeBusy ConflictKind = "employee_busy"
	// FloorTaken: another employee already cleans the floor that weekday
	FloorTaken ConflictKind = "floor_taken"
	// Duplicate: the exact same assignment already exists
	Duplicate ConflictKind = "duplicate"
)

// ConflictError describes why an assignment was rejected
type ConflictError struct {
	Kind     ConflictKind
	Existing model.CleaningSchedule
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case EmployeeBusy:
		return fmt.Sprintf("employee %d already cleans floor %d on %s (schedule %d)",
			e.Existing.EmployeeID, e.Existing.Floor, e.Existing.DayOfWeek, e.Existing.ID)
	case FloorTaken:
		return fmt.Sprintf("floor %d is already assigned to employee %d on %s (schedule %d)",
			e.Existing.Floor, e.Existing.EmployeeID, e.Existing.DayOfWeek, e.Existing.ID)
	default:
		return fmt.Sprintf("employee %d is already assigned to floor %d on %s (schedule %d)",
			e.Existing.EmployeeID, e.Existing.Floor, e.Existing.DayOfWeek, e.Existing.ID)
	}
}

func (e *ConflictError) Unwrap() error {
	return ErrScheduleConflict
}

// CheckAssignment validates a new or edited assignment against the current schedule.
// replacingID is the schedule being edited in place (0 when creating); it is
// ignored by every check.
func CheckAssignment(existing []model.CleaningSchedule, candidate model.CleaningSchedule, replacingID int) error {
	for _, entry := range existing {
		if replacingID != 0 && entry.ID == replacingID {
			continue
		}
		if !sameDay(entry.DayOfWeek, candidate.DayOfWeek) {
			continue
		}

		sameEmployee := entry.EmployeeID == candidate.EmployeeID
		sameFloor := entry.Floor == candidate.Floor

		switch {
		case sameEmployee && sameFloor:
			return &ConflictError{Kind: Duplicate, Existing: entry}
		case sameEmployee:
			return &ConflictError{Kind: EmployeeBusy, Existing: entry}
		case sameFloor:
			return &ConflictError{Kind: FloorTaken, Existing: entry}
		}
	}
	return nil
}

func sameDay(a, b model.Weekday) bool {
	return strings.EqualFold(strings.TrimSpace(string(a)), strings.TrimSpace(string(b)))
}
