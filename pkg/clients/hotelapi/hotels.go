package hotelapi

import (
	"context"
	"fmt"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

// ListHotels returns all hotels
func (c *Client) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	var hotels []model.Hotel
	if err := c.get(ctx, "/hotels/", nil, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *Client) GetHotel(ctx context.Context, id int) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := c.get(ctx, fmt.Sprintf("/hotels/%d", id), nil, &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (c *Client) ListHotelRooms(ctx context.Context, hotelID int) ([]model.Room, error) {
	var rooms []model.Room
	if err := c.get(ctx, fmt.Sprintf("/hotels/%d/rooms/", hotelID), nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) ListHotelEmployees(ctx context.Context, hotelID int) ([]model.Employee, error) {
	var employees []model.Employee
	if err := c.get(ctx, fmt.Sprintf("/hotels/%d/employees/", hotelID), nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}
