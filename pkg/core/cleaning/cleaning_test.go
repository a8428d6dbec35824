package cleaning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func existingSchedule() []model.CleaningSchedule {
	return []model.CleaningSchedule{
		{ID: 1, EmployeeID: 10, Floor: 1, DayOfWeek: model.Monday},
		{ID: 2, EmployeeID: 11, Floor: 2, DayOfWeek: model.Monday},
		{ID: 3, EmployeeID: 10, Floor: 3, DayOfWeek: model.Tuesday},
	}
}

func TestCheckAssignment(t *testing.T) {
	tests := []struct {
		name        string
		candidate   model.CleaningSchedule
		replacingID int
		kind        ConflictKind
		existingID  int
	}{
		{
			name:      "free slot",
			candidate: model.CleaningSchedule{EmployeeID: 12, Floor: 4, DayOfWeek: model.Monday},
		},
		{
			name:      "same employee other day",
			candidate: model.CleaningSchedule{EmployeeID: 10, Floor: 2, DayOfWeek: model.Wednesday},
		},
		{
			name:      "same employee and floor other day",
			candidate: model.CleaningSchedule{EmployeeID: 10, Floor: 1, DayOfWeek: model.Wednesday},
		},
		{
			name:       "employee busy on another floor",
			candidate:  model.CleaningSchedule{EmployeeID: 10, Floor: 4, DayOfWeek: model.Monday},
			kind:       EmployeeBusy,
			existingID: 1,
		},
		{
			name:       "floor taken by another employee",
			candidate:  model.CleaningSchedule{EmployeeID: 12, Floor: 2, DayOfWeek: model.Monday},
			kind:       FloorTaken,
			existingID: 2,
		},
		{
			name:       "exact duplicate",
			candidate:  model.CleaningSchedule{EmployeeID: 11, Floor: 2, DayOfWeek: model.Monday},
			kind:       Duplicate,
			existingID: 2,
		},
		{
			name:        "editing entry in place ignores itself",
			candidate:   model.CleaningSchedule{EmployeeID: 10, Floor: 4, DayOfWeek: model.Monday},
			replacingID: 1,
		},
		{
			name:        "editing entry still conflicts with others",
			candidate:   model.CleaningSchedule{EmployeeID: 10, Floor: 2, DayOfWeek: model.Monday},
			replacingID: 1,
			kind:        FloorTaken,
			existingID:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAssignment(existingSchedule(), tt.candidate, tt.replacingID)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrScheduleConflict))

			var conflict *ConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, tt.kind, conflict.Kind)
			assert.Equal(t, tt.existingID, conflict.Existing.ID)
		})
	}
}

func TestConflictError_Message(t *testing.T) {
	err := CheckAssignment(existingSchedule(), model.CleaningSchedule{EmployeeID: 12, Floor: 2, DayOfWeek: model.Monday}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floor 2")
	assert.Contains(t, err.Error(), "employee 11")
}

func TestOrphanedLogs(t *testing.T) {
	// 2023-10-16 and 2023-10-23 are Mondays
	schedule := model.CleaningSchedule{ID: 1, EmployeeID: 10, Floor: 1, DayOfWeek: model.Monday}
	roomFloors := map[int]int{101: 1, 102: 1, 201: 2}
	today := date("2023-10-16")

	logs := []model.CleaningLog{
		{ID: 1, RoomID: 101, EmployeeID: 10, CleaningDate: "2023-10-23", Status: model.CleaningNotStarted},
		{ID: 2, RoomID: 102, EmployeeID: 10, CleaningDate: "2023-10-30", Status: model.CleaningNotStarted, Floor: 1},
		{ID: 3, RoomID: 101, EmployeeID: 10, CleaningDate: "2023-10-16", Status: model.CleaningNotStarted},
		{ID: 4, RoomID: 101, EmployeeID: 10, CleaningDate: "2023-10-09", Status: model.CleaningNotStarted},
		{ID: 5, RoomID: 101, EmployeeID: 10, CleaningDate: "2023-10-23", Status: model.CleaningCompleted},
		{ID: 6, RoomID: 101, EmployeeID: 11, CleaningDate: "2023-10-23", Status: model.CleaningNotStarted},
		{ID: 7, RoomID: 201, EmployeeID: 10, CleaningDate: "2023-10-23", Status: model.CleaningNotStarted},
		{ID: 8, RoomID: 101, EmployeeID: 10, CleaningDate: "2023-10-24", Status: model.CleaningNotStarted},
		{ID: 9, RoomID: 101, EmployeeID: 10, CleaningDate: "garbage", Status: model.CleaningNotStarted},
	}

	orphaned := OrphanedLogs(schedule, logs, roomFloors, today)

	var ids []int
	for _, l := range orphaned {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []int{1, 2}, ids)
}

func TestOrphanedLogs_UnknownWeekday(t *testing.T) {
	schedule := model.CleaningSchedule{EmployeeID: 10, Floor: 1, DayOfWeek: "Someday"}
	logs := []model.CleaningLog{{ID: 1, EmployeeID: 10, Floor: 1, CleaningDate: "2030-01-07", Status: model.CleaningNotStarted}}
	assert.Empty(t, OrphanedLogs(schedule, logs, nil, date("2023-10-16")))
}

func TestRoomFloors(t *testing.T) {
	floors := RoomFloors([]model.Room{{ID: 1, Floor: 2}, {ID: 2, Floor: 5}})
	assert.Equal(t, map[int]int{1: 2, 2: 5}, floors)
}

func TestOccurrences(t *testing.T) {
	dates, err := Occurrences(model.Wednesday, date("2023-10-16"), date("2023-11-01"), nil)
	require.NoError(t, err)

	var got []string
	for _, d := range dates {
		got = append(got, d.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2023-10-18", "2023-10-25", "2023-11-01"}, got)
}

func TestOccurrences_SkipsClosedDays(t *testing.T) {
	closed, err := ExpandClosedDays([]string{"FREQ=YEARLY;BYMONTH=10;BYMONTHDAY=25"}, date("2023-10-16"), date("2023-11-01"))
	require.NoError(t, err)
	assert.True(t, closed["2023-10-25"])

	dates, err := Occurrences(model.Wednesday, date("2023-10-16"), date("2023-11-01"), closed)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, "2023-10-18", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2023-11-01", dates[1].Format("2006-01-02"))
}

func TestOccurrences_Errors(t *testing.T) {
	_, err := Occurrences("Someday", date("2023-10-16"), date("2023-11-01"), nil)
	assert.Error(t, err)

	dates, err := Occurrences(model.Monday, date("2023-11-01"), date("2023-10-16"), nil)
	assert.NoError(t, err)
	assert.Empty(t, dates)
}

func TestExpandClosedDays_InvalidRule(t *testing.T) {
	_, err := ExpandClosedDays([]string{"NOT A RULE"}, date("2023-10-16"), date("2023-11-01"))
	assert.Error(t, err)
}

func TestPlanLogs(t *testing.T) {
	schedule := model.CleaningSchedule{ID: 1, EmployeeID: 10, Floor: 1, DayOfWeek: model.Monday}
	rooms := []model.Room{
		{ID: 101, Floor: 1},
		{ID: 102, Floor: 1},
		{ID: 201, Floor: 2},
	}
	existing := []model.CleaningLog{
		{ID: 1, RoomID: 101, EmployeeID: 10, CleaningDate: "2023-10-16", Status: model.CleaningCompleted},
	}
	dates := []time.Time{date("2023-10-16"), date("2023-10-23")}

	planned := PlanLogs(schedule, rooms, existing, dates)

	require.Len(t, planned, 3)
	for _, l := range planned {
		assert.Equal(t, 10, l.EmployeeID)
		assert.Equal(t, 1, l.Floor)
		assert.Equal(t, model.CleaningNotStarted, l.Status)
		assert.Zero(t, l.ID)
	}
	assert.Equal(t, 102, planned[0].RoomID)
	assert.Equal(t, "2023-10-16", planned[0].CleaningDate)
	assert.Equal(t, 101, planned[1].RoomID)
	assert.Equal(t, "2023-10-23", planned[1].CleaningDate)
}
