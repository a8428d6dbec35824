package hotelapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

func (c *Client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := c.get(ctx, "/employees/", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) GetEmployee(ctx context.Context, id int) (*model.Employee, error) {
	var employee model.Employee
	if err := c.get(ctx, fmt.Sprintf("/employees/%d", id), nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) CreateEmployee(ctx context.Context, input model.EmployeeInput) (*model.Employee, error) {
	var employee model.Employee
	if err := c.post(ctx, "/employees/", input, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id int, input model.EmployeeInput) (*model.Employee, error) {
	var employee model.Employee
	if err := c.put(ctx, fmt.Sprintf("/employees/%d", id), nil, input, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployeeStatus sends the status both as a query parameter and as a
// body; the backend reads the query parameter on this route
func (c *Client) UpdateEmployeeStatus(ctx context.Context, id int, status model.EmployeeStatus) (*model.Employee, error) {
	query := url.Values{}
	query.Set("status", string(status))

	var employee model.Employee
	body := model.StatusUpdate{Status: string(status)}
	if err := c.put(ctx, fmt.Sprintf("/employees/%d/status/", id), query, body, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/employees/%d", id))
}
