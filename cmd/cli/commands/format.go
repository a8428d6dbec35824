package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jakechorley/inncontrol/pkg/clients/hotelapi"
	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorDim    = "\033[2m"
)

// pad left-aligns s in a column of width runes. Names are mostly Cyrillic, so
// width is counted in runes rather than bytes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-n)
}

// colored pads s and wraps it in color
func colored(color, s string, width int) string {
	return color + pad(s, width) + colorReset
}

// money formats an amount with a thousands separator, e.g. 37 500.00
func money(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	sign := ""
	if strings.HasPrefix(whole, "-") {
		sign, whole = "-", whole[1:]
	}

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}

// roomLabel is how a room is named on the dashboard
func roomLabel(number string) string {
	return "Номер " + number
}

func roomStatusColor(s model.RoomStatus) string {
	switch s {
	case model.RoomFree:
		return colorGreen
	case model.RoomOccupied:
		return colorRed
	case model.RoomCleaning:
		return colorBlue
	default:
		return colorYellow
	}
}

func bookingStatusColor(s model.BookingStatus) string {
	switch s {
	case model.BookingConfirmed:
		return colorBlue
	case model.BookingCheckedIn, model.BookingActive:
		return colorGreen
	case model.BookingCancelled:
		return colorRed
	default:
		return colorDim
	}
}

func employeeStatusColor(s model.EmployeeStatus) string {
	switch s {
	case model.EmployeeActive:
		return colorGreen
	case model.EmployeeOnLeave:
		return colorYellow
	default:
		return colorRed
	}
}

func cleaningStatusColor(s model.CleaningLogStatus) string {
	if s.IsPending() {
		return colorYellow
	}
	return colorGreen
}

// printHistory prints bookings as a table. other names the column that
// identifies the other side of the booking, e.g. the room on a guest card.
func printHistory(rows []services.HistoryRow, otherHeader string, other func(services.HistoryRow) string) {
	if len(rows) == 0 {
		fmt.Printf("No bookings\n\n")
		return
	}

	fmt.Printf("%s%s%s%s%s\n", pad("ID", 7), pad("Dates", 25), pad("Nights", 8), pad(otherHeader, 10), "Status")
	for _, b := range rows {
		fmt.Printf("%s%s%s%s%s\n",
			pad(fmt.Sprint(b.ID), 7),
			pad(b.CheckInDate+" - "+b.CheckOutDate, 25),
			pad(fmt.Sprint(b.Nights), 8),
			pad(other(b), 10),
			colored(bookingStatusColor(b.Status), string(b.Status), 0))
	}
	fmt.Println()
}

// parseID parses a positive numeric identifier argument
func parseID(name, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got: %s", name, arg)
	}
	return id, nil
}

// parseFloor parses a floor number argument (0 is the ground floor)
func parseFloor(arg string) (int, error) {
	floor, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || floor < 0 {
		return 0, fmt.Errorf("floor must be a non-negative integer, got: %s", arg)
	}
	return floor, nil
}

// DescribeError adds a hint for errors the operator can fix themselves
func DescribeError(err error) error {
	switch {
	case errors.Is(err, hotelapi.ErrNotAuthenticated), hotelapi.IsUnauthorized(err):
		return fmt.Errorf("%w (run 'login' first)", err)
	case errors.Is(err, hotelapi.ErrUnreachable):
		return fmt.Errorf("%w (check apiBaseURL in the config)", err)
	case hotelapi.IsNotFound(err):
		return fmt.Errorf("%w (check the ID)", err)
	}
	return err
}
