package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func TestGetClientHistory(t *testing.T) {
	backend := hotelFixture()

	history, err := GetClientHistory(context.Background(), backend, zap.NewNop(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Петров", history.Client.LastName)
	require.Len(t, history.Bookings, 2)
	assert.Equal(t, 102, history.Bookings[0].ID, "latest check-in first")
	assert.Equal(t, 5, history.Bookings[0].Nights)
	assert.Equal(t, 100, history.Bookings[1].ID)
	assert.Equal(t, 3, history.Bookings[1].Nights)
}

func TestGetClientHistory_Errors(t *testing.T) {
	_, err := GetClientHistory(context.Background(), hotelFixture(), zap.NewNop(), 42)
	assert.Error(t, err)

	backend := hotelFixture()
	backend.errs = map[string]error{"ListClientBookings": errBackend}
	_, err = GetClientHistory(context.Background(), backend, zap.NewNop(), 1)
	assert.ErrorIs(t, err, errBackend)
}

func TestRoomBookings(t *testing.T) {
	backend := hotelFixture()
	backend.bookings = append(backend.bookings,
		model.Booking{ID: 104, RoomID: 10, ClientID: 2, CheckInDate: "2023-12-01", CheckOutDate: "2023-12-03", Status: model.BookingConfirmed})

	rows, err := RoomBookings(context.Background(), backend, zap.NewNop(), 10)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, 104, rows[0].ID)
	assert.Equal(t, 2, rows[0].Nights)
	assert.Equal(t, 100, rows[1].ID)

	rows, err = RoomBookings(context.Background(), backend, zap.NewNop(), 99)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDaySchedule(t *testing.T) {
	backend := cleaningFixture()
	backend.schedules = append(backend.schedules,
		model.CleaningSchedule{ID: 3, EmployeeID: 2, Floor: 0, DayOfWeek: model.Monday},
		model.CleaningSchedule{ID: 4, EmployeeID: 7, Floor: 2, DayOfWeek: model.Monday},
	)

	day, rows, err := DaySchedule(context.Background(), backend, zap.NewNop(), "monday")
	require.NoError(t, err)

	assert.Equal(t, model.Monday, day)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{rows[0].Floor, rows[1].Floor, rows[2].Floor})
	assert.Equal(t, "Кузнецов П.", rows[0].EmployeeName)
	assert.Equal(t, "Иванова М.", rows[1].EmployeeName)
	assert.Equal(t, "#7", rows[2].EmployeeName, "employee missing from the backend")
}

func TestDaySchedule_InvalidDaySendsNothing(t *testing.T) {
	backend := cleaningFixture()

	_, _, err := DaySchedule(context.Background(), backend, zap.NewNop(), "someday")
	assert.Error(t, err)
	assert.Empty(t, backend.calls)
}

func TestGetEmployeeDetail_SchedulesMondayFirst(t *testing.T) {
	backend := cleaningFixture()
	backend.schedules = []model.CleaningSchedule{
		{ID: 1, EmployeeID: 1, Floor: 2, DayOfWeek: model.Friday},
		{ID: 2, EmployeeID: 1, Floor: 3, DayOfWeek: model.Monday},
		{ID: 3, EmployeeID: 2, Floor: 1, DayOfWeek: model.Monday},
		{ID: 4, EmployeeID: 1, Floor: 1, DayOfWeek: model.Monday},
		{ID: 5, EmployeeID: 1, Floor: 1, DayOfWeek: "Someday"},
	}

	detail, err := GetEmployeeDetail(context.Background(), backend, zap.NewNop(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Мария", detail.Employee.FirstName)
	ids := make([]int, 0, len(detail.Schedules))
	for _, s := range detail.Schedules {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{4, 2, 1, 5}, ids)
}

func TestGetEmployeeDetail_NotFound(t *testing.T) {
	backend := cleaningFixture()

	_, err := GetEmployeeDetail(context.Background(), backend, zap.NewNop(), 42)
	assert.Error(t, err)
	assert.False(t, backend.called("ListEmployeeCleaningSchedules"))
}
