package commands

import (
	"fmt"
	"strings"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

// Statuses may be typed as the backend value or as a short English alias

var roomStatusAliases = map[string]model.RoomStatus{
	"free":        model.RoomFree,
	"occupied":    model.RoomOccupied,
	"cleaning":    model.RoomCleaning,
	"maintenance": model.RoomMaintenance,
}

var bookingStatusAliases = map[string]model.BookingStatus{
	"confirmed":  model.BookingConfirmed,
	"checked-in": model.BookingCheckedIn,
	"active":     model.BookingActive,
	"completed":  model.BookingCompleted,
	"cancelled":  model.BookingCancelled,
}

var employeeStatusAliases = map[string]model.EmployeeStatus{
	"active":    model.EmployeeActive,
	"on-leave":  model.EmployeeOnLeave,
	"dismissed": model.EmployeeDismissed,
}

func lookupStatus[S ~string](input string, aliases map[string]S, valid []S) (S, error) {
	input = strings.TrimSpace(input)
	if s, ok := aliases[strings.ToLower(input)]; ok {
		return s, nil
	}
	for _, v := range valid {
		if strings.EqualFold(string(v), input) {
			return v, nil
		}
	}

	names := make([]string, 0, len(aliases))
	for _, v := range valid {
		for alias, s := range aliases {
			if s == v {
				names = append(names, alias)
			}
		}
	}
	return "", fmt.Errorf("unknown status %q (expected one of: %s)", input, strings.Join(names, ", "))
}

func parseRoomStatus(s string) (model.RoomStatus, error) {
	return lookupStatus(s, roomStatusAliases, model.RoomStatuses)
}

func parseBookingStatus(s string) (model.BookingStatus, error) {
	return lookupStatus(s, bookingStatusAliases, model.BookingStatuses)
}

func parseEmployeeStatus(s string) (model.EmployeeStatus, error) {
	return lookupStatus(s, employeeStatusAliases, model.EmployeeStatuses)
}

// optionalStatus parses s with parse unless it is empty
func optionalStatus[S ~string](s string, parse func(string) (S, error)) (S, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return parse(s)
}
