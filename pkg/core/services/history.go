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

// HistoryRow is a past or upcoming stay in a guest or room history
type HistoryRow struct {
	model.Booking
	Nights int
}

func historyRows(bookings []model.Booking) []HistoryRow {
	rows := make([]HistoryRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, HistoryRow{Booking: b, Nights: stay.Nights(b.CheckInDate, b.CheckOutDate)})
	}
	slices.SortStableFunc(rows, func(a, b HistoryRow) int {
		return strings.Compare(b.CheckInDate, a.CheckInDate)
	})
	return rows
}

// ClientHistoryStore defines the backend operations needed for a guest card
type ClientHistoryStore interface {
	GetClient(ctx context.Context, id int) (*model.Client, error)
	ListClientBookings(ctx context.Context, clientID int) ([]model.Booking, error)
}

// ClientHistory is a guest with their bookings, latest check-in first
type ClientHistory struct {
	Client   model.Client
	Bookings []HistoryRow
}

func GetClientHistory(ctx context.Context, store ClientHistoryStore, logger *zap.Logger, id int) (*ClientHistory, error) {
	logger.Debug("Fetching client history", zap.Int("client_id", id))

	client, err := store.GetClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client %d: %w", id, err)
	}
	bookings, err := store.ListClientBookings(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings of client %d: %w", id, err)
	}

	return &ClientHistory{Client: *client, Bookings: historyRows(bookings)}, nil
}

// RoomBookingLister lists the bookings of one room
type RoomBookingLister interface {
	ListRoomBookings(ctx context.Context, roomID int) ([]model.Booking, error)
}

// RoomBookings returns the bookings of a room, latest check-in first
func RoomBookings(ctx context.Context, store RoomBookingLister, logger *zap.Logger, roomID int) ([]HistoryRow, error) {
	logger.Debug("Fetching room bookings", zap.Int("room_id", roomID))

	bookings, err := store.ListRoomBookings(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings of room %d: %w", roomID, err)
	}
	return historyRows(bookings), nil
}
