package model

import "fmt"

// Hotel represents a hotel managed by the backend
type Hotel struct {
	ID         int    `json:"hotel_id"`
	Name       string `json:"name"`
	TotalRooms int    `json:"total_rooms"`
}

// RoomType represents a room category with its capacity and nightly price
type RoomType struct {
	ID            int     `json:"type_id"`
	Name          string  `json:"name"`
	Capacity      int     `json:"capacity"`
	PricePerNight float64 `json:"price_per_night"`
}

// Room represents a single hotel room
type Room struct {
	ID         int        `json:"room_id"`
	HotelID    int        `json:"hotel_id"`
	TypeID     int        `json:"type_id"`
	Floor      int        `json:"floor"`
	RoomNumber string     `json:"room_number"`
	Status     RoomStatus `json:"status"`
}

// RoomWithDetails is a room as returned by GET /rooms/{id}
type RoomWithDetails struct {
	Room
	RoomType RoomType `json:"room_type"`
	Hotel    *Hotel   `json:"hotel,omitempty"`
}

// Client represents a hotel guest
type Client struct {
	ID             int    `json:"client_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PassportNumber string `json:"passport_number"`
	City           string `json:"city"`
}

// FullName returns "First Last"
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ShortName returns "Last F." as shown on the dashboard
func (c Client) ShortName() string {
	return shortName(c.FirstName, c.LastName)
}

// Booking represents a room reservation
type Booking struct {
	ID           int           `json:"booking_id"`
	RoomID       int           `json:"room_id"`
	ClientID     int           `json:"client_id"`
	CheckInDate  string        `json:"check_in_date"`
	CheckOutDate string        `json:"check_out_date"`
	Status       BookingStatus `json:"status"`
}

// BookingWithDetails is a booking as returned by GET /bookings/{id}
type BookingWithDetails struct {
	Booking
	Client Client `json:"client"`
	Room   Room   `json:"room"`
}

// Employee represents a hotel staff member
type Employee struct {
	ID        int            `json:"employee_id"`
	HotelID   int            `json:"hotel_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Status    EmployeeStatus `json:"status"`
}

// FullName returns "First Last"
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// ShortName returns "Last F."
func (e Employee) ShortName() string {
	return shortName(e.FirstName, e.LastName)
}

// CleaningSchedule is a recurring weekday + floor + employee assignment
type CleaningSchedule struct {
	ID         int     `json:"schedule_id"`
	EmployeeID int     `json:"employee_id"`
	Floor      int     `json:"floor"`
	DayOfWeek  Weekday `json:"day_of_week"`
}

// CleaningScheduleWithDetails is a schedule entry as returned by GET /cleaning-schedules/{id}
type CleaningScheduleWithDetails struct {
	CleaningSchedule
	Employee Employee `json:"employee"`
}

// CleaningLog is a single dated occurrence of cleaning work
type CleaningLog struct {
	ID           int               `json:"log_id"`
	RoomID       int               `json:"room_id"`
	EmployeeID   int               `json:"employee_id"`
	CleaningDate string            `json:"cleaning_date"`
	Status       CleaningLogStatus `json:"status"`
	StartTime    *string           `json:"start_time,omitempty"`
	EndTime      *string           `json:"end_time,omitempty"`
	Floor        int               `json:"floor_id,omitempty"` // not always sent by the backend
}

// CleaningLogWithDetails is a log as returned by GET /cleaning-logs/{id}
type CleaningLogWithDetails struct {
	CleaningLog
	Room     Room     `json:"room"`
	Employee Employee `json:"employee"`
}

func shortName(first, last string) string {
	if first == "" {
		return last
	}
	initial := []rune(first)[0]
	return fmt.Sprintf("%s %c.", last, initial)
}
