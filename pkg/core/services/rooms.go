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

// RoomStore defines the backend operations needed to manage rooms
type RoomStore interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	ListRoomTypes(ctx context.Context) ([]model.RoomType, error)
	GetRoom(ctx context.Context, id int) (*model.RoomWithDetails, error)
	CreateRoom(ctx context.Context, input model.RoomInput) (*model.Room, error)
	UpdateRoom(ctx context.Context, id int, input model.RoomInput) (*model.Room, error)
	UpdateRoomStatus(ctx context.Context, id int, status model.RoomStatus) (*model.Room, error)
	DeleteRoom(ctx context.Context, id int) error
	RefreshRoomStatuses(ctx context.Context) (int, error)
	ListAvailableRooms(ctx context.Context, checkIn, checkOut string) ([]model.Room, error)
}

// RoomFilter narrows the room list. Zero values match everything.
type RoomFilter struct {
	Search   string // substring of the room number
	Status   model.RoomStatus
	TypeName string
	Floor    *int
}

// RoomRow is a room with its type resolved
type RoomRow struct {
	model.Room
	TypeName      string
	Capacity      int
	PricePerNight float64
}

func (f RoomFilter) matches(row RoomRow) bool {
	if f.Search != "" && !containsFold(row.RoomNumber, f.Search) {
		return false
	}
	if f.Status != "" && row.Status != f.Status {
		return false
	}
	if f.TypeName != "" && !strings.EqualFold(row.TypeName, f.TypeName) {
		return false
	}
	if f.Floor != nil && row.Floor != *f.Floor {
		return false
	}
	return true
}

// ListRooms returns rooms matching the filter, ordered by room number
func ListRooms(ctx context.Context, store RoomStore, logger *zap.Logger, filter RoomFilter) ([]RoomRow, error) {
	logger.Debug("Listing rooms", zap.Any("filter", filter))

	rooms, err := store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	types, err := store.ListRoomTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room types: %w", err)
	}
	typesByID := make(map[int]model.RoomType, len(types))
	for _, rt := range types {
		typesByID[rt.ID] = rt
	}

	var rows []RoomRow
	for _, room := range rooms {
		rt := typesByID[room.TypeID]
		row := RoomRow{Room: room, TypeName: rt.Name, Capacity: rt.Capacity, PricePerNight: rt.PricePerNight}
		if filter.matches(row) {
			rows = append(rows, row)
		}
	}

	slices.SortStableFunc(rows, func(a, b RoomRow) int {
		return compareRoomNumbers(a.RoomNumber, b.RoomNumber)
	})

	logger.Debug("Rooms listed", zap.Int("total", len(rooms)), zap.Int("matching", len(rows)))
	return rows, nil
}

// GetRoom returns a room with its type
func GetRoom(ctx context.Context, store RoomStore, logger *zap.Logger, id int) (*model.RoomWithDetails, error) {
	room, err := store.GetRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room %d: %w", id, err)
	}
	return room, nil
}

// checkRoomNumber rejects a room number already used by another room of the same hotel
func checkRoomNumber(ctx context.Context, store RoomStore, input model.RoomInput, excludeID int) error {
	rooms, err := store.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch rooms: %w", err)
	}

	number := strings.TrimSpace(input.RoomNumber)
	for _, room := range rooms {
		if room.ID == excludeID || room.HotelID != input.HotelID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(room.RoomNumber), number) {
			return fmt.Errorf("%w: %s (room %d)", ErrDuplicateRoomNumber, input.RoomNumber, room.ID)
		}
	}
	return nil
}

func validateRoomInput(input *model.RoomInput) error {
	input.RoomNumber = strings.TrimSpace(input.RoomNumber)
	if input.Status == "" {
		input.Status = model.RoomFree
	}
	if err := validateInput(input); err != nil {
		return err
	}
	if !input.Status.IsValid() {
		return fmt.Errorf("%w: room status %q", ErrInvalidStatus, input.Status)
	}
	return nil
}

// CreateRoom validates and creates a room
func CreateRoom(ctx context.Context, store RoomStore, recorder ActivityRecorder, logger *zap.Logger, input model.RoomInput) (*model.Room, error) {
	if err := validateRoomInput(&input); err != nil {
		return nil, err
	}
	if err := checkRoomNumber(ctx, store, input, 0); err != nil {
		return nil, err
	}

	room, err := store.CreateRoom(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	logger.Info("Room created", zap.Int("room_id", room.ID), zap.String("room_number", room.RoomNumber))
	recordActivity(ctx, recorder, logger, "create", "room", room.ID,
		fmt.Sprintf("room %s on floor %d", room.RoomNumber, room.Floor))
	return room, nil
}

// UpdateRoom validates and updates a room. The room itself is excluded from the duplicate check.
func UpdateRoom(ctx context.Context, store RoomStore, recorder ActivityRecorder, logger *zap.Logger, id int, input model.RoomInput) (*model.Room, error) {
	if err := validateRoomInput(&input); err != nil {
		return nil, err
	}
	if err := checkRoomNumber(ctx, store, input, id); err != nil {
		return nil, err
	}

	room, err := store.UpdateRoom(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, err)
	}

	logger.Info("Room updated", zap.Int("room_id", id))
	recordActivity(ctx, recorder, logger, "update", "room", id,
		fmt.Sprintf("room %s on floor %d", room.RoomNumber, room.Floor))
	return room, nil
}

// ChangeRoomStatus sets a room status from the closed set
func ChangeRoomStatus(ctx context.Context, store RoomStore, recorder ActivityRecorder, logger *zap.Logger, id int, status model.RoomStatus) (*model.Room, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: room status %q", ErrInvalidStatus, status)
	}

	room, err := store.UpdateRoomStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status of room %d: %w", id, err)
	}

	logger.Info("Room status changed", zap.Int("room_id", id), zap.String("status", string(status)))
	recordActivity(ctx, recorder, logger, "status", "room", id, string(status))
	return room, nil
}

// DeleteRoom deletes a room
func DeleteRoom(ctx context.Context, store RoomStore, recorder ActivityRecorder, logger *zap.Logger, id int) error {
	if err := store.DeleteRoom(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}

	logger.Info("Room deleted", zap.Int("room_id", id))
	recordActivity(ctx, recorder, logger, "delete", "room", id, "")
	return nil
}

// RefreshRoomStatuses asks the backend to recompute room statuses from bookings
func RefreshRoomStatuses(ctx context.Context, store RoomStore, recorder ActivityRecorder, logger *zap.Logger) (int, error) {
	updated, err := store.RefreshRoomStatuses(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh room statuses: %w", err)
	}

	logger.Info("Room statuses refreshed", zap.Int("updated", updated))
	recordActivity(ctx, recorder, logger, "refresh", "room", 0, fmt.Sprintf("%d rooms updated", updated))
	return updated, nil
}

// AvailableRooms lists rooms free for the whole stay. The range is checked
// locally before anything is sent.
func AvailableRooms(ctx context.Context, store RoomStore, logger *zap.Logger, checkIn, checkOut string) ([]model.Room, error) {
	if !stay.ValidRange(checkIn, checkOut) {
		return nil, ErrInvalidDateRange
	}

	rooms, err := store.ListAvailableRooms(ctx, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available rooms: %w", err)
	}

	slices.SortStableFunc(rooms, func(a, b model.Room) int {
		return compareRoomNumbers(a.RoomNumber, b.RoomNumber)
	})

	logger.Debug("Available rooms", zap.String("check_in", checkIn), zap.String("check_out", checkOut), zap.Int("count", len(rooms)))
	return rooms, nil
}
