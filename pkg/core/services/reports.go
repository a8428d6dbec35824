package services

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/stay"
)

// reportableStatus matches the statuses of real bookings; placeholder or
// corrupt status values are left out of financial figures
var reportableStatus = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z\s]+$`)

// ReportStore defines the backend operations needed to build a financial report
type ReportStore interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
	GetBooking(ctx context.Context, id int) (*model.BookingWithDetails, error)
	GetRoom(ctx context.Context, id int) (*model.RoomWithDetails, error)
	GetRoomType(ctx context.Context, id int) (*model.RoomType, error)
}

// ReportRow is one booking in the financial report
type ReportRow struct {
	BookingID     int
	ClientName    string
	RoomNumber    string
	RoomTypeName  string
	CheckInDate   string
	CheckOutDate  string
	Status        model.BookingStatus
	Nights        int
	PricePerNight float64
	Total         float64
}

// FinancialReport is income over a date window
type FinancialReport struct {
	Window         stay.Window
	Rows           []ReportRow
	TotalIncome    float64
	BookingCount   int
	AverageBooking float64
	Skipped        int
}

// BuildFinancialReport collects the bookings overlapping [start, end] and
// prices each one. Details are fetched concurrently; a booking whose details
// cannot be fetched is left out and counted in Skipped.
func BuildFinancialReport(ctx context.Context, store ReportStore, logger *zap.Logger, concurrency int, start, end string) (*FinancialReport, error) {
	window, err := stay.NewWindow(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDateRange, err)
	}

	logger.Info("Building financial report", zap.Stringer("window", window))

	bookings, err := store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	var inWindow []model.Booking
	for _, b := range bookings {
		if !reportableStatus.MatchString(string(b.Status)) {
			logger.Debug("Skipping booking with unreportable status",
				zap.Int("booking_id", b.ID),
				zap.String("status", string(b.Status)))
			continue
		}
		if window.Contains(b.CheckInDate, b.CheckOutDate) {
			inWindow = append(inWindow, b)
		}
	}

	rows, skipped := fanOut(ctx, logger, concurrency, inWindow,
		func(ctx context.Context, b model.Booking) (ReportRow, error) {
			return reportRow(ctx, store, b.ID)
		},
		func(b model.Booking) zap.Field { return zap.Int("booking_id", b.ID) })

	slices.SortStableFunc(rows, func(a, b ReportRow) int {
		return compareRoomNumbers(a.RoomNumber, b.RoomNumber)
	})

	report := &FinancialReport{Window: window, Rows: rows, BookingCount: len(rows), Skipped: skipped}
	for _, row := range rows {
		report.TotalIncome += row.Total
	}
	if report.BookingCount > 0 {
		report.AverageBooking = report.TotalIncome / float64(report.BookingCount)
	}

	logger.Info("Financial report built",
		zap.Int("bookings", report.BookingCount),
		zap.Int("skipped", skipped),
		zap.Float64("total_income", report.TotalIncome))
	return report, nil
}

func reportRow(ctx context.Context, store ReportStore, bookingID int) (ReportRow, error) {
	booking, err := store.GetBooking(ctx, bookingID)
	if err != nil {
		return ReportRow{}, fmt.Errorf("failed to fetch booking: %w", err)
	}
	room, err := store.GetRoom(ctx, booking.RoomID)
	if err != nil {
		return ReportRow{}, fmt.Errorf("failed to fetch room %d: %w", booking.RoomID, err)
	}
	roomType, err := store.GetRoomType(ctx, room.TypeID)
	if err != nil {
		return ReportRow{}, fmt.Errorf("failed to fetch room type %d: %w", room.TypeID, err)
	}

	quote := stay.QuoteFor(booking.CheckInDate, booking.CheckOutDate, roomType.PricePerNight)
	return ReportRow{
		BookingID:     booking.ID,
		ClientName:    booking.Client.FullName(),
		RoomNumber:    room.RoomNumber,
		RoomTypeName:  roomType.Name,
		CheckInDate:   booking.CheckInDate,
		CheckOutDate:  booking.CheckOutDate,
		Status:        booking.Status,
		Nights:        quote.Nights,
		PricePerNight: quote.PricePerNight,
		Total:         quote.Total,
	}, nil
}
