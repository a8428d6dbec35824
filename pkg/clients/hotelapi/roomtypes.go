package hotelapi

import (
	"context"
	"fmt"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func (c *Client) ListRoomTypes(ctx context.Context) ([]model.RoomType, error) {
	var types []model.RoomType
	if err := c.get(ctx, "/room-types/", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *Client) GetRoomType(ctx context.Context, id int) (*model.RoomType, error) {
	var rt model.RoomType
	if err := c.get(ctx, fmt.Sprintf("/room-types/%d", id), nil, &rt); err != nil {
		return nil, err
	}
	return &rt, nil
}

func (c *Client) CreateRoomType(ctx context.Context, input model.RoomTypeInput) (*model.RoomType, error) {
	var rt model.RoomType
	if err := c.post(ctx, "/room-types/", input, &rt); err != nil {
		return nil, err
	}
	return &rt, nil
}
