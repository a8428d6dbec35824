package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/stay"
)

const (
	DefaultRecentBookings = 5
	DefaultTodayCleanings = 5
)

// DashboardStore defines the backend operations needed for the dashboard
type DashboardStore interface {
	GetHotel(ctx context.Context, id int) (*model.Hotel, error)
	ListHotelRooms(ctx context.Context, hotelID int) ([]model.Room, error)
	ListHotelEmployees(ctx context.Context, hotelID int) ([]model.Employee, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	GetBooking(ctx context.Context, id int) (*model.BookingWithDetails, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	ListCleaningLogsByDate(ctx context.Context, date string) ([]model.CleaningLog, error)
	ListRooms(ctx context.Context) ([]model.Room, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)
}

// DashboardOptions controls the size of the dashboard lists
type DashboardOptions struct {
	HotelID        int
	RecentBookings int
	TodayCleanings int
	Concurrency    int
	Today          time.Time
}

// RecentBooking is a booking line on the dashboard
type RecentBooking struct {
	BookingID    int
	ClientName   string // "Last F."
	RoomNumber   string
	CheckInDate  string
	CheckOutDate string
	Status       model.BookingStatus
}

// Dashboard is the overview shown after login
type Dashboard struct {
	HotelName      string
	Occupancy      stay.Occupancy
	ActiveBookings int
	Clients        int
	Employees      int
	RecentBookings []RecentBooking
	TodayCleanings []CleaningLogRow
}

// BuildDashboard gathers the overview figures for one hotel
func BuildDashboard(ctx context.Context, store DashboardStore, logger *zap.Logger, opts DashboardOptions) (*Dashboard, error) {
	if opts.RecentBookings < 1 {
		opts.RecentBookings = DefaultRecentBookings
	}
	if opts.TodayCleanings < 1 {
		opts.TodayCleanings = DefaultTodayCleanings
	}
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}

	logger.Debug("Building dashboard", zap.Int("hotel_id", opts.HotelID))

	rooms, err := store.ListHotelRooms(ctx, opts.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotel rooms: %w", err)
	}
	employees, err := store.ListHotelEmployees(ctx, opts.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotel employees: %w", err)
	}
	clients, err := store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	bookings, err := store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	dashboard := &Dashboard{
		HotelName: fmt.Sprintf("Hotel #%d", opts.HotelID),
		Occupancy: stay.OccupancyOf(rooms),
		Clients:   len(clients),
		Employees: len(employees),
	}
	if hotel, err := store.GetHotel(ctx, opts.HotelID); err != nil {
		logger.Warn("Failed to fetch hotel, showing its ID instead", zap.Int("hotel_id", opts.HotelID), zap.Error(err))
	} else if hotel.Name != "" {
		dashboard.HotelName = hotel.Name
	}
	for _, b := range bookings {
		if b.Status.IsOpen() {
			dashboard.ActiveBookings++
		}
	}

	slices.SortStableFunc(bookings, func(a, b model.Booking) int {
		return strings.Compare(b.CheckInDate, a.CheckInDate)
	})
	recent := bookings[:min(opts.RecentBookings, len(bookings))]

	dashboard.RecentBookings, _ = fanOut(ctx, logger, opts.Concurrency, recent,
		func(ctx context.Context, b model.Booking) (RecentBooking, error) {
			details, err := store.GetBooking(ctx, b.ID)
			if err != nil {
				return RecentBooking{}, err
			}
			return RecentBooking{
				BookingID:    details.ID,
				ClientName:   details.Client.ShortName(),
				RoomNumber:   details.Room.RoomNumber,
				CheckInDate:  details.CheckInDate,
				CheckOutDate: details.CheckOutDate,
				Status:       details.Status,
			}, nil
		},
		func(b model.Booking) zap.Field { return zap.Int("booking_id", b.ID) })

	today := opts.Today.Format(stay.DateLayout)
	logs, err := store.ListCleaningLogsByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaning logs for %s: %w", today, err)
	}
	logs = logs[:min(opts.TodayCleanings, len(logs))]

	dashboard.TodayCleanings, err = joinCleaningLogs(ctx, store, logs)
	if err != nil {
		return nil, err
	}

	logger.Debug("Dashboard built",
		zap.Int("rooms", dashboard.Occupancy.TotalRooms),
		zap.Int("active_bookings", dashboard.ActiveBookings))
	return dashboard, nil
}

// HotelLister lists hotels
type HotelLister interface {
	ListHotels(ctx context.Context) ([]model.Hotel, error)
}

// ListHotels returns every hotel known to the backend, ordered by ID
func ListHotels(ctx context.Context, store HotelLister, logger *zap.Logger) ([]model.Hotel, error) {
	hotels, err := store.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotels: %w", err)
	}
	slices.SortFunc(hotels, func(a, b model.Hotel) int { return a.ID - b.ID })
	return hotels, nil
}
