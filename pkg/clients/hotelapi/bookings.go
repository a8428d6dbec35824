package hotelapi

import (
	"context"
	"fmt"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.get(ctx, "/bookings/", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, id int) (*model.BookingWithDetails, error) {
	var booking model.BookingWithDetails
	if err := c.get(ctx, fmt.Sprintf("/bookings/%d", id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CreateBooking(ctx context.Context, input model.BookingInput) (*model.Booking, error) {
	var booking model.Booking
	if err := c.post(ctx, "/bookings/", input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int, input model.BookingInput) (*model.Booking, error) {
	var booking model.Booking
	if err := c.put(ctx, fmt.Sprintf("/bookings/%d", id), nil, input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id int, status model.BookingStatus) (*model.Booking, error) {
	var booking model.Booking
	body := model.StatusUpdate{Status: string(status)}
	if err := c.put(ctx, fmt.Sprintf("/bookings/%d/status", id), nil, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/bookings/%d", id))
}

func (c *Client) ListClientBookings(ctx context.Context, clientID int) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.get(ctx, fmt.Sprintf("/clients/%d/bookings/", clientID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) ListRoomBookings(ctx context.Context, roomID int) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.get(ctx, fmt.Sprintf("/rooms/%d/bookings/", roomID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
