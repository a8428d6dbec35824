package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/cleaning"
	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/stay"
)

// CleaningStore defines the backend operations needed to manage floor cleaning
type CleaningStore interface {
	ListCleaningSchedules(ctx context.Context) ([]model.CleaningSchedule, error)
	GetCleaningSchedule(ctx context.Context, id int) (*model.CleaningScheduleWithDetails, error)
	CreateCleaningSchedule(ctx context.Context, input model.CleaningScheduleInput) (*model.CleaningSchedule, error)
	UpdateCleaningSchedule(ctx context.Context, id int, input model.CleaningScheduleInput) (*model.CleaningSchedule, error)
	DeleteCleaningSchedule(ctx context.Context, id int) error
	ListCleaningLogs(ctx context.Context) ([]model.CleaningLog, error)
	ListCleaningLogsByDate(ctx context.Context, date string) ([]model.CleaningLog, error)
	CreateCleaningLog(ctx context.Context, input model.CleaningLogInput) (*model.CleaningLog, error)
	DeleteCleaningLog(ctx context.Context, id int) error
	CompleteCleaningLog(ctx context.Context, id int) (*model.CleaningLog, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id int) (*model.Employee, error)
	ListRooms(ctx context.Context) ([]model.Room, error)
}

// GridCell is one weekday/floor slot of the cleaning grid. Empty slots have a zero ScheduleID.
type GridCell struct {
	ScheduleID   int
	EmployeeID   int
	EmployeeName string
}

// CleaningGrid is the weekly schedule as weekday rows and floor columns
type CleaningGrid struct {
	Floors []int
	Cells  map[model.Weekday]map[int]GridCell
}

// Cell returns the assignment for a weekday and floor
func (g CleaningGrid) Cell(day model.Weekday, floor int) GridCell {
	return g.Cells[day][floor]
}

// BuildCleaningGrid lays the schedule out by weekday and floor. Columns are the
// configured floors plus any floor that appears in the schedule.
func BuildCleaningGrid(ctx context.Context, store CleaningStore, logger *zap.Logger, floors []int) (*CleaningGrid, error) {
	schedules, err := store.ListCleaningSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaning schedules: %w", err)
	}

	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	names := employeeNames(employees)

	grid := &CleaningGrid{Cells: make(map[model.Weekday]map[int]GridCell, len(model.Weekdays))}
	for _, day := range model.Weekdays {
		grid.Cells[day] = make(map[int]GridCell)
	}

	floorSet := make(map[int]bool)
	for _, f := range floors {
		floorSet[f] = true
	}

	for _, s := range schedules {
		day, err := model.ParseWeekday(string(s.DayOfWeek))
		if err != nil {
			logger.Warn("Skipping schedule with unknown weekday",
				zap.Int("schedule_id", s.ID),
				zap.String("day_of_week", string(s.DayOfWeek)))
			continue
		}
		floorSet[s.Floor] = true

		grid.Cells[day][s.Floor] = GridCell{ScheduleID: s.ID, EmployeeID: s.EmployeeID, EmployeeName: nameOr(names, s.EmployeeID)}
	}

	for f := range floorSet {
		grid.Floors = append(grid.Floors, f)
	}
	slices.Sort(grid.Floors)
	return grid, nil
}

func prepareAssignment(ctx context.Context, store CleaningStore, input *model.CleaningScheduleInput, replacingID int) error {
	if err := validateInput(input); err != nil {
		return err
	}
	day, err := model.ParseWeekday(string(input.DayOfWeek))
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	input.DayOfWeek = day

	employee, err := store.GetEmployee(ctx, input.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to fetch employee %d: %w", input.EmployeeID, err)
	}
	if employee.Status == model.EmployeeDismissed {
		return fmt.Errorf("%w: %s", ErrEmployeeUnavailable, employee.FullName())
	}

	existing, err := store.ListCleaningSchedules(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch cleaning schedules: %w", err)
	}

	candidate := model.CleaningSchedule{EmployeeID: input.EmployeeID, Floor: input.Floor, DayOfWeek: input.DayOfWeek}
	return cleaning.CheckAssignment(existing, candidate, replacingID)
}

// AssignCleaning creates a schedule entry after checking it against the current schedule
func AssignCleaning(ctx context.Context, store CleaningStore, recorder ActivityRecorder, logger *zap.Logger, input model.CleaningScheduleInput) (*model.CleaningSchedule, error) {
	if err := prepareAssignment(ctx, store, &input, 0); err != nil {
		return nil, err
	}

	schedule, err := store.CreateCleaningSchedule(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaning schedule: %w", err)
	}

	logger.Info("Cleaning assigned",
		zap.Int("schedule_id", schedule.ID),
		zap.Int("employee_id", schedule.EmployeeID),
		zap.Int("floor", schedule.Floor),
		zap.String("day_of_week", string(schedule.DayOfWeek)))
	recordActivity(ctx, recorder, logger, "create", "cleaning_schedule", schedule.ID,
		fmt.Sprintf("employee %d, floor %d, %s", schedule.EmployeeID, schedule.Floor, schedule.DayOfWeek))
	return schedule, nil
}

// ReassignCleaning edits a schedule entry in place. The entry itself is
// ignored by the conflict check.
func ReassignCleaning(ctx context.Context, store CleaningStore, recorder ActivityRecorder, logger *zap.Logger, id int, input model.CleaningScheduleInput) (*model.CleaningSchedule, error) {
	if err := prepareAssignment(ctx, store, &input, id); err != nil {
		return nil, err
	}

	schedule, err := store.UpdateCleaningSchedule(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update cleaning schedule %d: %w", id, err)
	}

	logger.Info("Cleaning reassigned", zap.Int("schedule_id", id))
	recordActivity(ctx, recorder, logger, "update", "cleaning_schedule", id,
		fmt.Sprintf("employee %d, floor %d, %s", schedule.EmployeeID, schedule.Floor, schedule.DayOfWeek))
	return schedule, nil
}

// RemoveCleaningSchedule deletes a schedule entry and the pending future logs
// generated from it. It returns the number of logs removed. Log deletion
// failures are collected and returned after every log has been tried.
func RemoveCleaningSchedule(ctx context.Context, store CleaningStore, recorder ActivityRecorder, logger *zap.Logger, id int, today time.Time) (int, error) {
	schedule, err := store.GetCleaningSchedule(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch cleaning schedule %d: %w", id, err)
	}

	if err := store.DeleteCleaningSchedule(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to delete cleaning schedule %d: %w", id, err)
	}
	logger.Info("Cleaning schedule deleted", zap.Int("schedule_id", id))
	recordActivity(ctx, recorder, logger, "delete", "cleaning_schedule", id,
		fmt.Sprintf("employee %d, floor %d, %s", schedule.EmployeeID, schedule.Floor, schedule.DayOfWeek))

	logs, err := store.ListCleaningLogs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch cleaning logs: %w", err)
	}
	rooms, err := store.ListRooms(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	orphaned := cleaning.OrphanedLogs(schedule.CleaningSchedule, logs, cleaning.RoomFloors(rooms), today)

	var errs []error
	removed := 0
	for _, log := range orphaned {
		if err := store.DeleteCleaningLog(ctx, log.ID); err != nil {
			logger.Warn("Failed to delete cleaning log", zap.Int("log_id", log.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("log %d: %w", log.ID, err))
			continue
		}
		removed++
	}

	logger.Info("Removed future cleaning logs",
		zap.Int("schedule_id", id),
		zap.Int("removed", removed),
		zap.Int("failed", len(errs)))

	if len(errs) > 0 {
		return removed, fmt.Errorf("failed to delete %d cleaning logs: %w", len(errs), errors.Join(errs...))
	}
	return removed, nil
}

// CleaningLogRow is a log with room and employee resolved
type CleaningLogRow struct {
	model.CleaningLog
	RoomNumber   string
	Floor        int
	EmployeeName string
}

type cleaningDayStore interface {
	cleaningJoinStore
	ListCleaningLogsByDate(ctx context.Context, date string) ([]model.CleaningLog, error)
}

// CleaningLogsForDate returns the logs of one day ordered by floor and room number
func CleaningLogsForDate(ctx context.Context, store cleaningDayStore, logger *zap.Logger, date string) ([]CleaningLogRow, error) {
	day, ok := stay.ParseDate(date)
	if !ok {
		return nil, fmt.Errorf("invalid date: %q", date)
	}
	date = day.Format(stay.DateLayout)

	logs, err := store.ListCleaningLogsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaning logs for %s: %w", date, err)
	}
	return joinCleaningLogs(ctx, store, logs)
}

type cleaningJoinStore interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)
}

func joinCleaningLogs(ctx context.Context, store cleaningJoinStore, logs []model.CleaningLog) ([]CleaningLogRow, error) {
	rooms, err := store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	roomsByID := make(map[int]model.Room, len(rooms))
	for _, r := range rooms {
		roomsByID[r.ID] = r
	}
	employeesByID := make(map[int]model.Employee, len(employees))
	for _, e := range employees {
		employeesByID[e.ID] = e
	}

	rows := make([]CleaningLogRow, 0, len(logs))
	for _, log := range logs {
		row := CleaningLogRow{CleaningLog: log, Floor: log.Floor}
		if room, ok := roomsByID[log.RoomID]; ok {
			row.RoomNumber = room.RoomNumber
			row.Floor = room.Floor
		}
		if employee, ok := employeesByID[log.EmployeeID]; ok {
			row.EmployeeName = employee.ShortName()
		}
		rows = append(rows, row)
	}

	slices.SortStableFunc(rows, func(a, b CleaningLogRow) int {
		if a.Floor != b.Floor {
			return a.Floor - b.Floor
		}
		return compareRoomNumbers(a.RoomNumber, b.RoomNumber)
	})
	return rows, nil
}

// CleaningLogFinder defines the backend operations needed to look up cleaning logs
type CleaningLogFinder interface {
	cleaningDayStore
	ListRoomCleaningLogs(ctx context.Context, roomID int) ([]model.CleaningLog, error)
	ListEmployeeCleaningLogs(ctx context.Context, employeeID int) ([]model.CleaningLog, error)
}

// CleaningLogQuery selects cleaning logs. Zero fields are not filtered on;
// at least one must be set.
type CleaningLogQuery struct {
	Date       string
	RoomID     int
	EmployeeID int
}

// FindCleaningLogs returns the logs matching every set field of q. Logs of a
// single day are ordered by floor and room; longer histories latest day first.
func FindCleaningLogs(ctx context.Context, store CleaningLogFinder, logger *zap.Logger, q CleaningLogQuery) ([]CleaningLogRow, error) {
	if q.RoomID == 0 && q.EmployeeID == 0 {
		if q.Date == "" {
			return nil, fmt.Errorf("a date, room or employee is required")
		}
		return CleaningLogsForDate(ctx, store, logger, q.Date)
	}

	if q.Date != "" {
		day, ok := stay.ParseDate(q.Date)
		if !ok {
			return nil, fmt.Errorf("invalid date: %q", q.Date)
		}
		q.Date = day.Format(stay.DateLayout)
	}

	logger.Debug("Finding cleaning logs", zap.Any("query", q))

	var logs []model.CleaningLog
	var err error
	if q.RoomID != 0 {
		logs, err = store.ListRoomCleaningLogs(ctx, q.RoomID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch cleaning logs of room %d: %w", q.RoomID, err)
		}
	} else {
		logs, err = store.ListEmployeeCleaningLogs(ctx, q.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch cleaning logs of employee %d: %w", q.EmployeeID, err)
		}
	}

	logs = slices.DeleteFunc(logs, func(l model.CleaningLog) bool {
		if q.RoomID != 0 && l.RoomID != q.RoomID {
			return true
		}
		if q.EmployeeID != 0 && l.EmployeeID != q.EmployeeID {
			return true
		}
		if q.Date == "" {
			return false
		}
		day, ok := stay.ParseDate(l.CleaningDate)
		return !ok || day.Format(stay.DateLayout) != q.Date
	})

	rows, err := joinCleaningLogs(ctx, store, logs)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(rows, func(a, b CleaningLogRow) int {
		return strings.Compare(b.CleaningDate, a.CleaningDate)
	})
	return rows, nil
}

// CleaningLogEditor defines the backend operations needed to change a single log
type CleaningLogEditor interface {
	GetCleaningLog(ctx context.Context, id int) (*model.CleaningLogWithDetails, error)
	GetEmployee(ctx context.Context, id int) (*model.Employee, error)
	UpdateCleaningLog(ctx context.Context, id int, input model.CleaningLogInput) (*model.CleaningLog, error)
	UpdateCleaningLogStatus(ctx context.Context, id int, status model.CleaningLogStatus) (*model.CleaningLog, error)
}

// ReassignCleaningLog hands one pending log to another employee, e.g. to cover
// a sick day, without touching the weekly schedule.
func ReassignCleaningLog(ctx context.Context, store CleaningLogEditor, recorder ActivityRecorder, logger *zap.Logger, id, employeeID int) (*model.CleaningLog, error) {
	current, err := store.GetCleaningLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaning log %d: %w", id, err)
	}
	if !current.Status.IsPending() {
		return nil, fmt.Errorf("%w: log %d", ErrCleaningDone, id)
	}

	employee, err := store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee %d: %w", employeeID, err)
	}
	if employee.Status == model.EmployeeDismissed {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeUnavailable, employee.FullName())
	}

	input := model.CleaningLogInput{
		RoomID:       current.RoomID,
		EmployeeID:   employeeID,
		CleaningDate: current.CleaningDate,
		Status:       current.Status,
	}
	log, err := store.UpdateCleaningLog(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update cleaning log %d: %w", id, err)
	}

	logger.Info("Cleaning log reassigned",
		zap.Int("log_id", id),
		zap.Int("from_employee_id", current.EmployeeID),
		zap.Int("to_employee_id", employeeID))
	recordActivity(ctx, recorder, logger, "reassign", "cleaning_log", id,
		fmt.Sprintf("%s: employee %d -> %d", current.CleaningDate, current.EmployeeID, employeeID))
	return log, nil
}

// ReopenCleaning puts a completed log back to not started
func ReopenCleaning(ctx context.Context, store CleaningLogEditor, recorder ActivityRecorder, logger *zap.Logger, id int) (*model.CleaningLog, error) {
	log, err := store.UpdateCleaningLogStatus(ctx, id, model.CleaningNotStarted)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen cleaning log %d: %w", id, err)
	}

	logger.Info("Cleaning reopened", zap.Int("log_id", id))
	recordActivity(ctx, recorder, logger, "reopen", "cleaning_log", id, log.CleaningDate)
	return log, nil
}

// CompleteCleaning marks a cleaning log as done
func CompleteCleaning(ctx context.Context, store CleaningStore, recorder ActivityRecorder, logger *zap.Logger, id int) (*model.CleaningLog, error) {
	log, err := store.CompleteCleaningLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to complete cleaning log %d: %w", id, err)
	}

	logger.Info("Cleaning completed", zap.Int("log_id", id))
	recordActivity(ctx, recorder, logger, "complete", "cleaning_log", id, log.CleaningDate)
	return log, nil
}

// GenerateOptions controls log generation
type GenerateOptions struct {
	From       time.Time
	Until      time.Time
	ClosedDays []string // rrules of dates with no cleaning
	DryRun     bool
}

// GenerateResult reports what log generation did
type GenerateResult struct {
	Planned []model.CleaningLog
	Created int
	Failed  int
}

// GenerateCleaningLogs plans pending logs for every schedule entry between From
// and Until, skipping closed days and room/date pairs that already have a log.
// With DryRun nothing is created.
func GenerateCleaningLogs(ctx context.Context, store CleaningStore, recorder ActivityRecorder, logger *zap.Logger, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Until.Before(opts.From) {
		return nil, ErrInvalidDateRange
	}

	closed, err := cleaning.ExpandClosedDays(opts.ClosedDays, opts.From, opts.Until)
	if err != nil {
		return nil, err
	}

	schedules, err := store.ListCleaningSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaning schedules: %w", err)
	}
	rooms, err := store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	existing, err := store.ListCleaningLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaning logs: %w", err)
	}

	result := &GenerateResult{}
	for _, schedule := range schedules {
		dates, err := cleaning.Occurrences(schedule.DayOfWeek, opts.From, opts.Until, closed)
		if err != nil {
			logger.Warn("Skipping schedule", zap.Int("schedule_id", schedule.ID), zap.Error(err))
			continue
		}
		planned := cleaning.PlanLogs(schedule, rooms, existing, dates)
		existing = append(existing, planned...)
		result.Planned = append(result.Planned, planned...)
	}

	logger.Info("Cleaning logs planned",
		zap.Int("schedules", len(schedules)),
		zap.Int("closed_days", len(closed)),
		zap.Int("planned", len(result.Planned)),
		zap.Bool("dry_run", opts.DryRun))

	if opts.DryRun {
		return result, nil
	}

	for _, log := range result.Planned {
		_, err := store.CreateCleaningLog(ctx, model.CleaningLogInput{
			RoomID:       log.RoomID,
			EmployeeID:   log.EmployeeID,
			CleaningDate: log.CleaningDate,
			Status:       log.Status,
		})
		if err != nil {
			logger.Warn("Failed to create cleaning log",
				zap.Int("room_id", log.RoomID),
				zap.String("cleaning_date", log.CleaningDate),
				zap.Error(err))
			result.Failed++
			continue
		}
		result.Created++
	}

	if result.Created > 0 {
		recordActivity(ctx, recorder, logger, "generate", "cleaning_log", 0,
			fmt.Sprintf("%d logs from %s to %s", result.Created,
				opts.From.Format(stay.DateLayout), opts.Until.Format(stay.DateLayout)))
	}
	if result.Failed > 0 {
		return result, fmt.Errorf("failed to create %d of %d cleaning logs", result.Failed, len(result.Planned))
	}
	return result, nil
}
