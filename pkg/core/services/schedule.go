package services

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

// DayScheduleStore defines the backend operations needed to show one weekday
type DayScheduleStore interface {
	ListCleaningSchedulesByDay(ctx context.Context, day model.Weekday) ([]model.CleaningSchedule, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)
}

// DayAssignment is one floor cleaned on the requested weekday
type DayAssignment struct {
	ScheduleID   int
	Floor        int
	EmployeeID   int
	EmployeeName string
}

// DaySchedule returns who cleans which floor on a weekday, ordered by floor.
// day accepts the same forms as model.ParseWeekday.
func DaySchedule(ctx context.Context, store DayScheduleStore, logger *zap.Logger, day string) (model.Weekday, []DayAssignment, error) {
	weekday, err := model.ParseWeekday(day)
	if err != nil {
		return "", nil, err
	}

	schedules, err := store.ListCleaningSchedulesByDay(ctx, weekday)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch cleaning schedules for %s: %w", weekday, err)
	}
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	names := employeeNames(employees)

	rows := make([]DayAssignment, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, DayAssignment{
			ScheduleID:   s.ID,
			Floor:        s.Floor,
			EmployeeID:   s.EmployeeID,
			EmployeeName: nameOr(names, s.EmployeeID),
		})
	}
	slices.SortStableFunc(rows, func(a, b DayAssignment) int { return a.Floor - b.Floor })

	logger.Debug("Day schedule loaded", zap.String("day", string(weekday)), zap.Int("assignments", len(rows)))
	return weekday, rows, nil
}

// EmployeeScheduleStore defines the backend operations needed for an employee card
type EmployeeScheduleStore interface {
	GetEmployee(ctx context.Context, id int) (*model.Employee, error)
	ListEmployeeCleaningSchedules(ctx context.Context, employeeID int) ([]model.CleaningSchedule, error)
}

// EmployeeDetail is an employee with their weekly floors, Monday first
type EmployeeDetail struct {
	Employee  model.Employee
	Schedules []model.CleaningSchedule
}

func GetEmployeeDetail(ctx context.Context, store EmployeeScheduleStore, logger *zap.Logger, id int) (*EmployeeDetail, error) {
	employee, err := store.GetEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee %d: %w", id, err)
	}
	schedules, err := store.ListEmployeeCleaningSchedules(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaning schedules of employee %d: %w", id, err)
	}

	slices.SortStableFunc(schedules, func(a, b model.CleaningSchedule) int {
		if d := weekdayIndex(a.DayOfWeek) - weekdayIndex(b.DayOfWeek); d != 0 {
			return d
		}
		return a.Floor - b.Floor
	})

	logger.Debug("Employee detail loaded", zap.Int("employee_id", id), zap.Int("schedules", len(schedules)))
	return &EmployeeDetail{Employee: *employee, Schedules: schedules}, nil
}

// weekdayIndex orders weekdays Monday first; unknown days sort last
func weekdayIndex(day model.Weekday) int {
	if i := slices.Index(model.Weekdays, day); i >= 0 {
		return i
	}
	return len(model.Weekdays)
}

func employeeNames(employees []model.Employee) map[int]string {
	names := make(map[int]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.ShortName()
	}
	return names
}

func nameOr(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}
