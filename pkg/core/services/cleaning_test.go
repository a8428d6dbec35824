package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/cleaning"
	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func cleaningFixture() *fakeBackend {
	backend := hotelFixture()
	backend.schedules = []model.CleaningSchedule{
		{ID: 1, EmployeeID: 1, Floor: 1, DayOfWeek: model.Monday},
		{ID: 2, EmployeeID: 2, Floor: 3, DayOfWeek: model.Tuesday},
	}
	return backend
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildCleaningGrid(t *testing.T) {
	backend := cleaningFixture()
	backend.schedules = append(backend.schedules, model.CleaningSchedule{ID: 3, EmployeeID: 1, Floor: 2, DayOfWeek: "Someday"})

	grid, err := BuildCleaningGrid(context.Background(), backend, zap.NewNop(), []int{2, 1})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, grid.Floors, "configured floors plus floors in the schedule")

	monday := grid.Cell(model.Monday, 1)
	assert.Equal(t, 1, monday.ScheduleID)
	assert.Equal(t, "Иванова М.", monday.EmployeeName)

	assert.Equal(t, "Кузнецов П.", grid.Cell(model.Tuesday, 3).EmployeeName)
	assert.Zero(t, grid.Cell(model.Sunday, 2).ScheduleID)
}

func TestAssignCleaning(t *testing.T) {
	backend := cleaningFixture()
	recorder := &mockRecorder{}

	schedule, err := AssignCleaning(context.Background(), backend, recorder, zap.NewNop(),
		model.CleaningScheduleInput{EmployeeID: 2, Floor: 2, DayOfWeek: "1"})
	require.NoError(t, err)

	assert.Equal(t, model.Monday, schedule.DayOfWeek)
	require.Len(t, backend.createdSchedules, 1)
	assert.Equal(t, model.Monday, backend.createdSchedules[0].DayOfWeek)
	assert.Len(t, recorder.entries, 1)
}

func TestAssignCleaning_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		input    model.CleaningScheduleInput
		wantErr  error
		wantKind cleaning.ConflictKind
	}{
		{
			name:     "employee already busy that day",
			input:    model.CleaningScheduleInput{EmployeeID: 1, Floor: 2, DayOfWeek: model.Monday},
			wantErr:  cleaning.ErrScheduleConflict,
			wantKind: cleaning.EmployeeBusy,
		},
		{
			name:     "floor already taken that day",
			input:    model.CleaningScheduleInput{EmployeeID: 2, Floor: 1, DayOfWeek: model.Monday},
			wantErr:  cleaning.ErrScheduleConflict,
			wantKind: cleaning.FloorTaken,
		},
		{
			name:    "dismissed employee",
			input:   model.CleaningScheduleInput{EmployeeID: 3, Floor: 5, DayOfWeek: model.Friday},
			wantErr: ErrEmployeeUnavailable,
		},
		{
			name:  "unknown weekday",
			input: model.CleaningScheduleInput{EmployeeID: 2, Floor: 5, DayOfWeek: "Funday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := cleaningFixture()
			_, err := AssignCleaning(context.Background(), backend, nil, zap.NewNop(), tt.input)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantKind != "" {
				var conflict *cleaning.ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, tt.wantKind, conflict.Kind)
			}
			assert.False(t, backend.called("CreateCleaningSchedule"))
		})
	}
}

func TestAssignCleaning_SameEmployeeAndFloorOnAnotherDay(t *testing.T) {
	backend := cleaningFixture()

	schedule, err := AssignCleaning(context.Background(), backend, nil, zap.NewNop(),
		model.CleaningScheduleInput{EmployeeID: 1, Floor: 1, DayOfWeek: model.Wednesday})
	require.NoError(t, err)

	assert.Equal(t, model.Wednesday, schedule.DayOfWeek)
	require.Len(t, backend.createdSchedules, 1)
	assert.Equal(t, 1, backend.createdSchedules[0].Floor)
}

func TestAssignCleaning_UnknownEmployee(t *testing.T) {
	_, err := AssignCleaning(context.Background(), cleaningFixture(), nil, zap.NewNop(),
		model.CleaningScheduleInput{EmployeeID: 42, Floor: 5, DayOfWeek: model.Friday})
	assert.Error(t, err)
}

func TestReassignCleaning_IgnoresItself(t *testing.T) {
	backend := cleaningFixture()

	_, err := ReassignCleaning(context.Background(), backend, nil, zap.NewNop(), 1,
		model.CleaningScheduleInput{EmployeeID: 1, Floor: 2, DayOfWeek: model.Monday})
	require.NoError(t, err)
	assert.Equal(t, 2, backend.updatedSchedules[1].Floor)

	_, err = ReassignCleaning(context.Background(), backend, nil, zap.NewNop(), 1,
		model.CleaningScheduleInput{EmployeeID: 1, Floor: 3, DayOfWeek: model.Tuesday})
	assert.ErrorIs(t, err, cleaning.ErrScheduleConflict)
}

func removalFixture() *fakeBackend {
	backend := cleaningFixture()
	backend.logs = []model.CleaningLog{
		{ID: 1, RoomID: 10, EmployeeID: 1, CleaningDate: "2023-10-23", Status: model.CleaningNotStarted},
		{ID: 2, RoomID: 11, EmployeeID: 1, CleaningDate: "2023-10-23", Status: model.CleaningCompleted},
		{ID: 3, RoomID: 10, EmployeeID: 1, CleaningDate: "2023-10-16", Status: model.CleaningNotStarted},
		{ID: 4, RoomID: 20, EmployeeID: 1, CleaningDate: "2023-10-23", Status: model.CleaningNotStarted},
		{ID: 5, RoomID: 10, EmployeeID: 1, CleaningDate: "2023-10-24", Status: model.CleaningNotStarted},
		{ID: 6, RoomID: 11, EmployeeID: 2, CleaningDate: "2023-10-30", Status: model.CleaningNotStarted},
		{ID: 7, RoomID: 11, EmployeeID: 1, CleaningDate: "2023-10-30", Status: model.CleaningNotStarted},
	}
	return backend
}

func TestRemoveCleaningSchedule_DeletesOnlyFuturePendingLogs(t *testing.T) {
	backend := removalFixture()
	recorder := &mockRecorder{}

	removed, err := RemoveCleaningSchedule(context.Background(), backend, recorder, zap.NewNop(), 1, date("2023-10-18"))
	require.NoError(t, err)

	assert.Equal(t, 2, removed)
	assert.ElementsMatch(t, []int{1, 7}, backend.deletedLogs)
	assert.Equal(t, []string{"delete cleaning_schedule 1"}, recorder.entries)
}

func TestRemoveCleaningSchedule_CollectsLogFailures(t *testing.T) {
	backend := removalFixture()
	backend.errs = map[string]error{"DeleteCleaningLog": errBackend}

	removed, err := RemoveCleaningSchedule(context.Background(), backend, nil, zap.NewNop(), 1, date("2023-10-18"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errBackend)
	assert.Zero(t, removed)
	assert.True(t, backend.called("DeleteCleaningSchedule"))
}

func TestRemoveCleaningSchedule_NotFound(t *testing.T) {
	backend := removalFixture()

	_, err := RemoveCleaningSchedule(context.Background(), backend, nil, zap.NewNop(), 99, date("2023-10-18"))
	require.Error(t, err)
	assert.False(t, backend.called("DeleteCleaningSchedule"))
}

func TestCleaningLogsForDate(t *testing.T) {
	backend := cleaningFixture()
	backend.logs = []model.CleaningLog{
		{ID: 1, RoomID: 20, EmployeeID: 2, CleaningDate: "2023-10-18", Status: model.CleaningNotStarted},
		{ID: 2, RoomID: 10, EmployeeID: 1, CleaningDate: "2023-10-18", Status: model.CleaningCompleted},
		{ID: 3, RoomID: 11, EmployeeID: 1, CleaningDate: "2023-10-19", Status: model.CleaningNotStarted},
	}

	rows, err := CleaningLogsForDate(context.Background(), backend, zap.NewNop(), "2023-10-18")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "101", rows[0].RoomNumber)
	assert.Equal(t, 1, rows[0].Floor)
	assert.Equal(t, "Иванова М.", rows[0].EmployeeName)
	assert.Equal(t, "201", rows[1].RoomNumber)
	assert.Equal(t, "Кузнецов П.", rows[1].EmployeeName)

	_, err = CleaningLogsForDate(context.Background(), backend, zap.NewNop(), "18/10/2023")
	assert.Error(t, err)
}

func TestCompleteCleaning(t *testing.T) {
	backend := cleaningFixture()
	backend.logs = []model.CleaningLog{{ID: 5, RoomID: 10, EmployeeID: 1, CleaningDate: "2023-10-18", Status: model.CleaningNotStarted}}
	recorder := &mockRecorder{}

	log, err := CompleteCleaning(context.Background(), backend, recorder, zap.NewNop(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.CleaningCompleted, log.Status)
	assert.Equal(t, []string{"complete cleaning_log 5"}, recorder.entries)
}

func historyLogsFixture() *fakeBackend {
	backend := cleaningFixture()
	backend.logs = []model.CleaningLog{
		{ID: 1, RoomID: 10, EmployeeID: 1, CleaningDate: "2023-10-16", Status: model.CleaningCompleted},
		{ID: 2, RoomID: 11, EmployeeID: 1, CleaningDate: "2023-10-16", Status: model.CleaningCompleted},
		{ID: 3, RoomID: 10, EmployeeID: 2, CleaningDate: "2023-10-23", Status: model.CleaningNotStarted},
		{ID: 4, RoomID: 10, EmployeeID: 1, CleaningDate: "2023-10-30", Status: model.CleaningNotStarted},
	}
	return backend
}

func TestFindCleaningLogs(t *testing.T) {
	tests := []struct {
		name     string
		query    CleaningLogQuery
		wantIDs  []int
		wantCall string
	}{
		{
			name:     "room history latest first",
			query:    CleaningLogQuery{RoomID: 10},
			wantIDs:  []int{4, 3, 1},
			wantCall: "ListRoomCleaningLogs",
		},
		{
			name:     "employee history",
			query:    CleaningLogQuery{EmployeeID: 1},
			wantIDs:  []int{4, 1, 2},
			wantCall: "ListEmployeeCleaningLogs",
		},
		{
			name:     "room and employee",
			query:    CleaningLogQuery{RoomID: 10, EmployeeID: 1},
			wantIDs:  []int{4, 1},
			wantCall: "ListRoomCleaningLogs",
		},
		{
			name:     "employee on one day",
			query:    CleaningLogQuery{EmployeeID: 1, Date: "2023-10-16T00:00:00"},
			wantIDs:  []int{1, 2},
			wantCall: "ListEmployeeCleaningLogs",
		},
		{
			name:     "date only",
			query:    CleaningLogQuery{Date: "2023-10-23"},
			wantIDs:  []int{3},
			wantCall: "ListCleaningLogsByDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := historyLogsFixture()

			rows, err := FindCleaningLogs(context.Background(), backend, zap.NewNop(), tt.query)
			require.NoError(t, err)

			ids := make([]int, 0, len(rows))
			for _, r := range rows {
				ids = append(ids, r.ID)
				assert.NotEmpty(t, r.RoomNumber)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.True(t, backend.called(tt.wantCall))
		})
	}
}

func TestFindCleaningLogs_Errors(t *testing.T) {
	backend := historyLogsFixture()

	_, err := FindCleaningLogs(context.Background(), backend, zap.NewNop(), CleaningLogQuery{})
	assert.Error(t, err)

	_, err = FindCleaningLogs(context.Background(), backend, zap.NewNop(), CleaningLogQuery{RoomID: 10, Date: "someday"})
	assert.Error(t, err)
	assert.False(t, backend.called("ListRoomCleaningLogs"))

	backend.errs = map[string]error{"ListEmployeeCleaningLogs": errBackend}
	_, err = FindCleaningLogs(context.Background(), backend, zap.NewNop(), CleaningLogQuery{EmployeeID: 1})
	assert.ErrorIs(t, err, errBackend)
}

func TestReassignCleaningLog(t *testing.T) {
	backend := historyLogsFixture()
	recorder := &mockRecorder{}

	log, err := ReassignCleaningLog(context.Background(), backend, recorder, zap.NewNop(), 3, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, log.EmployeeID)
	assert.Equal(t, model.CleaningLogInput{
		RoomID: 10, EmployeeID: 2, CleaningDate: "2023-10-23", Status: model.CleaningNotStarted,
	}, backend.updatedLogs[3])
	assert.Equal(t, []string{"reassign cleaning_log 3"}, recorder.entries)
}

func TestReassignCleaningLog_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		logID      int
		employeeID int
		wantErr    error
	}{
		{name: "completed log", logID: 1, employeeID: 2, wantErr: ErrCleaningDone},
		{name: "dismissed employee", logID: 4, employeeID: 3, wantErr: ErrEmployeeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := historyLogsFixture()

			_, err := ReassignCleaningLog(context.Background(), backend, nil, zap.NewNop(), tt.logID, tt.employeeID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, backend.called("UpdateCleaningLog"))
		})
	}
}

func TestReopenCleaning(t *testing.T) {
	backend := historyLogsFixture()
	recorder := &mockRecorder{}

	log, err := ReopenCleaning(context.Background(), backend, recorder, zap.NewNop(), 1)
	require.NoError(t, err)

	assert.Equal(t, model.CleaningNotStarted, log.Status)
	assert.Equal(t, string(model.CleaningNotStarted), backend.statusUpdates[1])
	assert.Equal(t, []string{"reopen cleaning_log 1"}, recorder.entries)

	_, err = ReopenCleaning(context.Background(), backend, nil, zap.NewNop(), 99)
	assert.Error(t, err)
}

func generateFixture() *fakeBackend {
	backend := hotelFixture()
	backend.schedules = []model.CleaningSchedule{{ID: 1, EmployeeID: 1, Floor: 1, DayOfWeek: model.Monday}}
	backend.logs = []model.CleaningLog{
		{ID: 1, RoomID: 10, EmployeeID: 1, CleaningDate: "2023-10-16", Status: model.CleaningCompleted},
	}
	return backend
}

func TestGenerateCleaningLogs(t *testing.T) {
	backend := generateFixture()
	recorder := &mockRecorder{}

	result, err := GenerateCleaningLogs(context.Background(), backend, recorder, zap.NewNop(), GenerateOptions{
		From:  date("2023-10-16"),
		Until: date("2023-10-29"),
	})
	require.NoError(t, err)

	// Mondays 16th and 23rd, rooms 101 and 102, minus the existing log
	assert.Len(t, result.Planned, 3)
	assert.Equal(t, 3, result.Created)
	assert.Zero(t, result.Failed)

	require.Len(t, backend.createdLogs, 3)
	for _, log := range backend.createdLogs {
		assert.Equal(t, model.CleaningNotStarted, log.Status)
		assert.Equal(t, 1, log.EmployeeID)
		assert.NotEqual(t, 9, log.RoomID, "room on another floor")
	}
	assert.Equal(t, []string{"generate cleaning_log 0"}, recorder.entries)
}

func TestGenerateCleaningLogs_ClosedDaysAndDryRun(t *testing.T) {
	backend := generateFixture()

	result, err := GenerateCleaningLogs(context.Background(), backend, nil, zap.NewNop(), GenerateOptions{
		From:       date("2023-10-16"),
		Until:      date("2023-10-29"),
		ClosedDays: []string{"FREQ=YEARLY;BYMONTH=10;BYMONTHDAY=23"},
		DryRun:     true,
	})
	require.NoError(t, err)

	require.Len(t, result.Planned, 1)
	assert.Equal(t, 11, result.Planned[0].RoomID)
	assert.Equal(t, "2023-10-16", result.Planned[0].CleaningDate)
	assert.Zero(t, result.Created)
	assert.False(t, backend.called("CreateCleaningLog"))
}

func TestGenerateCleaningLogs_Errors(t *testing.T) {
	_, err := GenerateCleaningLogs(context.Background(), generateFixture(), nil, zap.NewNop(), GenerateOptions{
		From:  date("2023-10-29"),
		Until: date("2023-10-16"),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = GenerateCleaningLogs(context.Background(), generateFixture(), nil, zap.NewNop(), GenerateOptions{
		From:       date("2023-10-16"),
		Until:      date("2023-10-29"),
		ClosedDays: []string{"NOT A RULE"},
	})
	assert.Error(t, err)

	backend := generateFixture()
	backend.errs = map[string]error{"CreateCleaningLog": errBackend}
	result, err := GenerateCleaningLogs(context.Background(), backend, nil, zap.NewNop(), GenerateOptions{
		From:  date("2023-10-16"),
		Until: date("2023-10-22"),
	})
	require.Error(t, err)
	assert.Equal(t, 1, result.Failed)
}
