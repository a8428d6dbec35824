package model

// Request bodies for create and update calls. Validation tags are checked
// before anything is sent to the backend.

type RoomTypeInput struct {
	Name          string  `json:"name" validate:"required"`
	Capacity      int     `json:"capacity" validate:"min=1"`
	PricePerNight float64 `json:"price_per_night" validate:"min=0"`
}

type RoomInput struct {
	HotelID    int        `json:"hotel_id" validate:"required,min=1"`
	TypeID     int        `json:"type_id" validate:"required,min=1"`
	Floor      int        `json:"floor" validate:"min=0"`
	RoomNumber string     `json:"room_number" validate:"required"`
	Status     RoomStatus `json:"status,omitempty"`
}

type ClientInput struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	PassportNumber string `json:"passport_number" validate:"required"`
	City           string `json:"city" validate:"required"`
}

type BookingInput struct {
	RoomID       int           `json:"room_id" validate:"required,min=1"`
	ClientID     int           `json:"client_id" validate:"required,min=1"`
	CheckInDate  string        `json:"check_in_date" validate:"required"`
	CheckOutDate string        `json:"check_out_date" validate:"required"`
	Status       BookingStatus `json:"status,omitempty"`
}

type EmployeeInput struct {
	HotelID   int            `json:"hotel_id" validate:"required,min=1"`
	FirstName string         `json:"first_name" validate:"required"`
	LastName  string         `json:"last_name" validate:"required"`
	Status    EmployeeStatus `json:"status,omitempty"`
}

type CleaningScheduleInput struct {
	EmployeeID int     `json:"employee_id" validate:"required,min=1"`
	Floor      int     `json:"floor" validate:"min=0"`
	DayOfWeek  Weekday `json:"day_of_week" validate:"required"`
}

type CleaningLogInput struct {
	RoomID       int               `json:"room_id" validate:"required,min=1"`
	EmployeeID   int               `json:"employee_id" validate:"required,min=1"`
	CleaningDate string            `json:"cleaning_date" validate:"required"`
	Status       CleaningLogStatus `json:"status,omitempty"`
}

// StatusUpdate is the body of every PUT .../status call
type StatusUpdate struct {
	Status string `json:"status"`
}
