package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidDateRange    = errors.New("check-out date must be after check-in date")
	ErrDuplicateRoomNumber = errors.New("room number already exists in this hotel")
	ErrRoomUnavailable     = errors.New("room is not available for the selected dates")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrEmployeeUnavailable = errors.New("employee is dismissed")
	ErrMissingCredentials  = errors.New("username and password are required")
	ErrCleaningDone        = errors.New("cleaning is already completed")
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateInput runs struct validation on a request body before it is sent
func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
