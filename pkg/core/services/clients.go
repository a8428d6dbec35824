package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

// ClientStore defines the backend operations needed to manage guests
type ClientStore interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	CreateClient(ctx context.Context, input model.ClientInput) (*model.Client, error)
	UpdateClient(ctx context.Context, id int, input model.ClientInput) (*model.Client, error)
	DeleteClient(ctx context.Context, id int) error
}

// ClientFilter narrows the guest list. Zero values match everything.
type ClientFilter struct {
	Search string // name or passport number
	City   string
}

// ClientRow is a guest with the number of bookings they hold
type ClientRow struct {
	model.Client
	BookingCount int
}

func (f ClientFilter) matches(c model.Client) bool {
	if f.City != "" && !strings.EqualFold(strings.TrimSpace(c.City), strings.TrimSpace(f.City)) {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(c.FullName(), f.Search) ||
		containsFold(c.LastName+" "+c.FirstName, f.Search) ||
		containsFold(c.PassportNumber, f.Search)
}

// ListClients returns guests matching the filter, ordered by last name
func ListClients(ctx context.Context, store ClientStore, logger *zap.Logger, filter ClientFilter) ([]ClientRow, error) {
	logger.Debug("Listing clients", zap.Any("filter", filter))

	clients, err := store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}

	bookings, err := store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	counts := make(map[int]int)
	for _, b := range bookings {
		counts[b.ClientID]++
	}

	var rows []ClientRow
	for _, c := range clients {
		if filter.matches(c) {
			rows = append(rows, ClientRow{Client: c, BookingCount: counts[c.ID]})
		}
	}

	slices.SortStableFunc(rows, func(a, b ClientRow) int {
		if c := strings.Compare(a.LastName, b.LastName); c != 0 {
			return c
		}
		return strings.Compare(a.FirstName, b.FirstName)
	})
	return rows, nil
}

// CityLister lists guests
type CityLister interface {
	ListClients(ctx context.Context) ([]model.Client, error)
}

// Cities returns the distinct guest cities in alphabetical order
func Cities(ctx context.Context, store CityLister, logger *zap.Logger) ([]string, error) {
	clients, err := store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}

	seen := make(map[string]bool)
	var cities []string
	for _, c := range clients {
		city := strings.TrimSpace(c.City)
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true
		cities = append(cities, city)
	}
	slices.Sort(cities)
	return cities, nil
}

func trimClientInput(input *model.ClientInput) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.PassportNumber = strings.TrimSpace(input.PassportNumber)
	input.City = strings.TrimSpace(input.City)
}

// CreateClient validates and creates a guest
func CreateClient(ctx context.Context, store ClientStore, recorder ActivityRecorder, logger *zap.Logger, input model.ClientInput) (*model.Client, error) {
	trimClientInput(&input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	client, err := store.CreateClient(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Info("Client created", zap.Int("client_id", client.ID))
	recordActivity(ctx, recorder, logger, "create", "client", client.ID, client.FullName())
	return client, nil
}

// UpdateClient validates and updates a guest
func UpdateClient(ctx context.Context, store ClientStore, recorder ActivityRecorder, logger *zap.Logger, id int, input model.ClientInput) (*model.Client, error) {
	trimClientInput(&input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	client, err := store.UpdateClient(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update client %d: %w", id, err)
	}

	logger.Info("Client updated", zap.Int("client_id", id))
	recordActivity(ctx, recorder, logger, "update", "client", id, client.FullName())
	return client, nil
}

// DeleteClient deletes a guest
func DeleteClient(ctx context.Context, store ClientStore, recorder ActivityRecorder, logger *zap.Logger, id int) error {
	if err := store.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}

	logger.Info("Client deleted", zap.Int("client_id", id))
	recordActivity(ctx, recorder, logger, "delete", "client", id, "")
	return nil
}
