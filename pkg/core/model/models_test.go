package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input    string
		expected Weekday
	}{
		{"Понедельник", Monday},
		{"среда", Wednesday},
		{"1", Monday},
		{"7", Sunday},
		{"friday", Friday},
		{"Sat", Saturday},
		{"  thu  ", Thursday},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseWeekday_Invalid(t *testing.T) {
	for _, input := range []string{"", "0", "8", "someday", "mo"} {
		_, err := ParseWeekday(input)
		assert.Error(t, err, input)
	}
}

func TestWeekdayRoundTrip(t *testing.T) {
	for _, w := range Weekdays {
		d, ok := w.Time()
		require.True(t, ok)
		assert.Equal(t, w, WeekdayOf(d))
	}
	assert.Equal(t, Sunday, WeekdayOf(time.Sunday))
}

func TestStatusSets(t *testing.T) {
	assert.True(t, BookingConfirmed.IsValid())
	assert.False(t, BookingStatus("Unknown").IsValid())
	assert.True(t, BookingCheckedIn.IsOpen())
	assert.False(t, BookingCompleted.IsOpen())

	assert.True(t, RoomMaintenance.IsValid())
	assert.False(t, RoomStatus("").IsValid())

	assert.True(t, EmployeeOnLeave.IsValid())
	assert.True(t, CleaningNotStarted.IsPending())
	assert.False(t, CleaningCompleted.IsPending())
}

func TestShortName(t *testing.T) {
	c := Client{FirstName: "Елена", LastName: "Петрова"}
	assert.Equal(t, "Петрова Е.", c.ShortName())
	assert.Equal(t, "Елена Петрова", c.FullName())

	e := Employee{LastName: "Smith"}
	assert.Equal(t, "Smith", e.ShortName())
}
