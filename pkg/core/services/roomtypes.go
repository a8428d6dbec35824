package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

// RoomTypeStore defines the backend operations needed for room types
type RoomTypeStore interface {
	ListRoomTypes(ctx context.Context) ([]model.RoomType, error)
	CreateRoomType(ctx context.Context, input model.RoomTypeInput) (*model.RoomType, error)
}

// ListRoomTypes returns room types ordered by nightly price
func ListRoomTypes(ctx context.Context, store RoomTypeStore, logger *zap.Logger) ([]model.RoomType, error) {
	types, err := store.ListRoomTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room types: %w", err)
	}

	slices.SortStableFunc(types, func(a, b model.RoomType) int {
		switch {
		case a.PricePerNight < b.PricePerNight:
			return -1
		case a.PricePerNight > b.PricePerNight:
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return types, nil
}

// CreateRoomType validates and creates a room type
func CreateRoomType(ctx context.Context, store RoomTypeStore, recorder ActivityRecorder, logger *zap.Logger, input model.RoomTypeInput) (*model.RoomType, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	rt, err := store.CreateRoomType(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}

	logger.Info("Room type created", zap.Int("type_id", rt.ID), zap.String("name", rt.Name))
	recordActivity(ctx, recorder, logger, "create", "room_type", rt.ID,
		fmt.Sprintf("%s, %d guests, %.2f per night", rt.Name, rt.Capacity, rt.PricePerNight))
	return rt, nil
}
