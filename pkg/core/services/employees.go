package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

// EmployeeStore defines the backend operations needed to manage staff
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	CreateEmployee(ctx context.Context, input model.EmployeeInput) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id int, input model.EmployeeInput) (*model.Employee, error)
	UpdateEmployeeStatus(ctx context.Context, id int, status model.EmployeeStatus) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
}

// ListEmployees returns staff ordered by last name, optionally filtered by status
func ListEmployees(ctx context.Context, store EmployeeStore, logger *zap.Logger, status model.EmployeeStatus) ([]model.Employee, error) {
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: employee status %q", ErrInvalidStatus, status)
	}

	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	if status != "" {
		employees = slices.DeleteFunc(employees, func(e model.Employee) bool {
			return e.Status != status
		})
	}

	slices.SortStableFunc(employees, func(a, b model.Employee) int {
		if c := strings.Compare(a.LastName, b.LastName); c != 0 {
			return c
		}
		return strings.Compare(a.FirstName, b.FirstName)
	})
	return employees, nil
}

func validateEmployeeInput(input *model.EmployeeInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.Status == "" {
		input.Status = model.EmployeeActive
	}
	if err := validateInput(input); err != nil {
		return err
	}
	if !input.Status.IsValid() {
		return fmt.Errorf("%w: employee status %q", ErrInvalidStatus, input.Status)
	}
	return nil
}

// CreateEmployee validates and creates a staff member
func CreateEmployee(ctx context.Context, store EmployeeStore, recorder ActivityRecorder, logger *zap.Logger, input model.EmployeeInput) (*model.Employee, error) {
	if err := validateEmployeeInput(&input); err != nil {
		return nil, err
	}

	employee, err := store.CreateEmployee(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	logger.Info("Employee created", zap.Int("employee_id", employee.ID))
	recordActivity(ctx, recorder, logger, "create", "employee", employee.ID, employee.FullName())
	return employee, nil
}

// UpdateEmployee validates and updates a staff member
func UpdateEmployee(ctx context.Context, store EmployeeStore, recorder ActivityRecorder, logger *zap.Logger, id int, input model.EmployeeInput) (*model.Employee, error) {
	if err := validateEmployeeInput(&input); err != nil {
		return nil, err
	}

	employee, err := store.UpdateEmployee(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee %d: %w", id, err)
	}

	logger.Info("Employee updated", zap.Int("employee_id", id))
	recordActivity(ctx, recorder, logger, "update", "employee", id, employee.FullName())
	return employee, nil
}

// ChangeEmployeeStatus sets an employee status from the closed set
func ChangeEmployeeStatus(ctx context.Context, store EmployeeStore, recorder ActivityRecorder, logger *zap.Logger, id int, status model.EmployeeStatus) (*model.Employee, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: employee status %q", ErrInvalidStatus, status)
	}

	employee, err := store.UpdateEmployeeStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status of employee %d: %w", id, err)
	}

	logger.Info("Employee status changed", zap.Int("employee_id", id), zap.String("status", string(status)))
	recordActivity(ctx, recorder, logger, "status", "employee", id, string(status))
	return employee, nil
}

// DeleteEmployee deletes a staff member
func DeleteEmployee(ctx context.Context, store EmployeeStore, recorder ActivityRecorder, logger *zap.Logger, id int) error {
	if err := store.DeleteEmployee(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}

	logger.Info("Employee deleted", zap.Int("employee_id", id))
	recordActivity(ctx, recorder, logger, "delete", "employee", id, "")
	return nil
}
