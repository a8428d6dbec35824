package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/stay"
)

// BookingStore defines the backend operations needed to manage bookings
type BookingStore interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
	GetBooking(ctx context.Context, id int) (*model.BookingWithDetails, error)
	ListRoomTypes(ctx context.Context) ([]model.RoomType, error)
	ListAvailableRooms(ctx context.Context, checkIn, checkOut string) ([]model.Room, error)
	CreateBooking(ctx context.Context, input model.BookingInput) (*model.Booking, error)
	UpdateBooking(ctx context.Context, id int, input model.BookingInput) (*model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int, status model.BookingStatus) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id int) error
}

// BookingFilter narrows the booking list. Zero values match everything.
type BookingFilter struct {
	Search string // client name, room number or room type
	Status model.BookingStatus
}

// BookingRow is a booking with the names and figures shown in the list
type BookingRow struct {
	model.Booking
	ClientName    string
	RoomNumber    string
	RoomTypeName  string
	PricePerNight float64
	Nights        int
	Total         float64
}

func (f BookingFilter) matches(row BookingRow) bool {
	if f.Status != "" && row.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(row.ClientName, f.Search) ||
		containsFold(row.RoomNumber, f.Search) ||
		containsFold(row.RoomTypeName, f.Search)
}

func newBookingRow(details *model.BookingWithDetails, rt model.RoomType) BookingRow {
	quote := stay.QuoteFor(details.CheckInDate, details.CheckOutDate, rt.PricePerNight)
	return BookingRow{
		Booking:       details.Booking,
		ClientName:    details.Client.FullName(),
		RoomNumber:    details.Room.RoomNumber,
		RoomTypeName:  rt.Name,
		PricePerNight: rt.PricePerNight,
		Nights:        quote.Nights,
		Total:         quote.Total,
	}
}

type roomTypeLister interface {
	ListRoomTypes(ctx context.Context) ([]model.RoomType, error)
}

func roomTypesByID(ctx context.Context, store roomTypeLister) (map[int]model.RoomType, error) {
	types, err := store.ListRoomTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room types: %w", err)
	}
	byID := make(map[int]model.RoomType, len(types))
	for _, rt := range types {
		byID[rt.ID] = rt
	}
	return byID, nil
}

// ListBookings returns enriched bookings matching the filter, latest check-in first.
// Booking details are fetched concurrently; a booking whose details cannot be
// fetched is left out.
func ListBookings(ctx context.Context, store BookingStore, logger *zap.Logger, concurrency int, filter BookingFilter) ([]BookingRow, error) {
	logger.Debug("Listing bookings", zap.Any("filter", filter))

	bookings, err := store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	// Status is known without the detail fetch
	if filter.Status != "" {
		bookings = slices.DeleteFunc(bookings, func(b model.Booking) bool {
			return b.Status != filter.Status
		})
	}

	types, err := roomTypesByID(ctx, store)
	if err != nil {
		return nil, err
	}

	rows, skipped := fanOut(ctx, logger, concurrency, bookings,
		func(ctx context.Context, b model.Booking) (BookingRow, error) {
			details, err := store.GetBooking(ctx, b.ID)
			if err != nil {
				return BookingRow{}, err
			}
			return newBookingRow(details, types[details.Room.TypeID]), nil
		},
		func(b model.Booking) zap.Field { return zap.Int("booking_id", b.ID) })

	filtered := rows[:0]
	for _, row := range rows {
		if filter.matches(row) {
			filtered = append(filtered, row)
		}
	}

	slices.SortStableFunc(filtered, func(a, b BookingRow) int {
		return strings.Compare(b.CheckInDate, a.CheckInDate)
	})

	logger.Debug("Bookings listed",
		zap.Int("total", len(bookings)),
		zap.Int("skipped", skipped),
		zap.Int("matching", len(filtered)))
	return filtered, nil
}

// GetBookingDetail returns one booking with its figures
func GetBookingDetail(ctx context.Context, store BookingStore, logger *zap.Logger, id int) (*BookingRow, error) {
	details, err := store.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %d: %w", id, err)
	}

	types, err := roomTypesByID(ctx, store)
	if err != nil {
		return nil, err
	}

	row := newBookingRow(details, types[details.Room.TypeID])
	return &row, nil
}

func validateBookingInput(input *model.BookingInput) error {
	input.CheckInDate = strings.TrimSpace(input.CheckInDate)
	input.CheckOutDate = strings.TrimSpace(input.CheckOutDate)
	if input.Status == "" {
		input.Status = model.BookingConfirmed
	}
	if err := validateInput(input); err != nil {
		return err
	}
	if !input.Status.IsValid() {
		return fmt.Errorf("%w: booking status %q", ErrInvalidStatus, input.Status)
	}
	if !stay.ValidRange(input.CheckInDate, input.CheckOutDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// CreateBooking validates the booking and checks the room is free for the
// whole stay before creating it
func CreateBooking(ctx context.Context, store BookingStore, recorder ActivityRecorder, logger *zap.Logger, input model.BookingInput) (*model.Booking, error) {
	if err := validateBookingInput(&input); err != nil {
		return nil, err
	}

	available, err := store.ListAvailableRooms(ctx, input.CheckInDate, input.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check room availability: %w", err)
	}
	if !slices.ContainsFunc(available, func(r model.Room) bool { return r.ID == input.RoomID }) {
		return nil, fmt.Errorf("%w: room %d, %s to %s", ErrRoomUnavailable, input.RoomID, input.CheckInDate, input.CheckOutDate)
	}

	booking, err := store.CreateBooking(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Info("Booking created",
		zap.Int("booking_id", booking.ID),
		zap.Int("room_id", booking.RoomID),
		zap.Int("client_id", booking.ClientID))
	recordActivity(ctx, recorder, logger, "create", "booking", booking.ID,
		fmt.Sprintf("room %d for client %d, %s to %s", booking.RoomID, booking.ClientID, booking.CheckInDate, booking.CheckOutDate))
	return booking, nil
}

// UpdateBooking validates and updates a booking. Availability is left to the backend
// since the booking itself occupies the room.
func UpdateBooking(ctx context.Context, store BookingStore, recorder ActivityRecorder, logger *zap.Logger, id int, input model.BookingInput) (*model.Booking, error) {
	if err := validateBookingInput(&input); err != nil {
		return nil, err
	}

	booking, err := store.UpdateBooking(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}

	logger.Info("Booking updated", zap.Int("booking_id", id))
	recordActivity(ctx, recorder, logger, "update", "booking", id,
		fmt.Sprintf("%s to %s", booking.CheckInDate, booking.CheckOutDate))
	return booking, nil
}

// ChangeBookingStatus sets a booking status from the closed set
func ChangeBookingStatus(ctx context.Context, store BookingStore, recorder ActivityRecorder, logger *zap.Logger, id int, status model.BookingStatus) (*model.Booking, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: booking status %q", ErrInvalidStatus, status)
	}

	booking, err := store.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status of booking %d: %w", id, err)
	}

	logger.Info("Booking status changed", zap.Int("booking_id", id), zap.String("status", string(status)))
	recordActivity(ctx, recorder, logger, "status", "booking", id, string(status))
	return booking, nil
}

// DeleteBooking deletes a booking
func DeleteBooking(ctx context.Context, store BookingStore, recorder ActivityRecorder, logger *zap.Logger, id int) error {
	if err := store.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}

	logger.Info("Booking deleted", zap.Int("booking_id", id))
	recordActivity(ctx, recorder, logger, "delete", "booking", id, "")
	return nil
}

// RoomReader fetches a single room with its type
type RoomReader interface {
	GetRoom(ctx context.Context, id int) (*model.RoomWithDetails, error)
}

// QuoteStay prices a stay in a room without booking it
func QuoteStay(ctx context.Context, store RoomReader, logger *zap.Logger, roomID int, checkIn, checkOut string) (*stay.Quote, error) {
	if !stay.ValidRange(checkIn, checkOut) {
		return nil, ErrInvalidDateRange
	}

	room, err := store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room %d: %w", roomID, err)
	}

	quote := stay.QuoteFor(checkIn, checkOut, room.RoomType.PricePerNight)
	logger.Debug("Stay quoted",
		zap.Int("room_id", roomID),
		zap.Int("nights", quote.Nights),
		zap.Float64("total", quote.Total))
	return &quote, nil
}
