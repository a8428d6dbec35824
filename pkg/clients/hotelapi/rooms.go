package hotelapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := c.get(ctx, "/rooms/", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) GetRoom(ctx context.Context, id int) (*model.RoomWithDetails, error) {
	var room model.RoomWithDetails
	if err := c.get(ctx, fmt.Sprintf("/rooms/%d", id), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) CreateRoom(ctx context.Context, input model.RoomInput) (*model.Room, error) {
	var room model.Room
	if err := c.post(ctx, "/rooms/", input, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id int, input model.RoomInput) (*model.Room, error) {
	var room model.Room
	if err := c.put(ctx, fmt.Sprintf("/rooms/%d", id), nil, input, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) UpdateRoomStatus(ctx context.Context, id int, status model.RoomStatus) (*model.Room, error) {
	var room model.Room
	body := model.StatusUpdate{Status: string(status)}
	if err := c.put(ctx, fmt.Sprintf("/rooms/%d/status", id), nil, body, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/rooms/%d", id))
}

// RefreshRoomStatuses asks the backend to recompute every room status from
// current bookings and returns how many rooms changed
func (c *Client) RefreshRoomStatuses(ctx context.Context) (int, error) {
	var result struct {
		UpdatedRoomsCount int `json:"updated_rooms_count"`
	}
	if err := c.post(ctx, "/update-room-statuses/", struct{}{}, &result); err != nil {
		return 0, err
	}
	return result.UpdatedRoomsCount, nil
}

// ListAvailableRooms returns rooms with no booking overlapping [checkIn, checkOut)
func (c *Client) ListAvailableRooms(ctx context.Context, checkIn, checkOut string) ([]model.Room, error) {
	query := url.Values{}
	query.Set("check_in_date", checkIn)
	query.Set("check_out_date", checkOut)

	var rooms []model.Room
	if err := c.get(ctx, "/available-rooms/", query, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
