package hotelapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func (c *Client) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := c.get(ctx, "/clients/", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *Client) GetClient(ctx context.Context, id int) (*model.Client, error) {
	var client model.Client
	if err := c.get(ctx, fmt.Sprintf("/clients/%d", id), nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) CreateClient(ctx context.Context, input model.ClientInput) (*model.Client, error) {
	var client model.Client
	if err := c.post(ctx, "/clients/", input, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) UpdateClient(ctx context.Context, id int, input model.ClientInput) (*model.Client, error) {
	var client model.Client
	if err := c.put(ctx, fmt.Sprintf("/clients/%d", id), nil, input, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) DeleteClient(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/clients/%d", id))
}

func (c *Client) ListClientsByCity(ctx context.Context, city string) ([]model.Client, error) {
	var clients []model.Client
	if err := c.get(ctx, "/clients/city/"+url.PathEscape(city), nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}
