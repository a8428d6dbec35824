package model

// BookingStatus is the lifecycle state of a booking. Values are the backend wire strings.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Подтверждено"
	BookingCheckedIn BookingStatus = "Заселен"
	BookingActive    BookingStatus = "Активно"
	BookingCompleted BookingStatus = "Завершено"
	BookingCancelled BookingStatus = "Отменено"
)

// BookingStatuses lists every booking status in display order
var BookingStatuses = []BookingStatus{
	BookingConfirmed,
	BookingCheckedIn,
	BookingActive,
	BookingCompleted,
	BookingCancelled,
}

func (s BookingStatus) IsValid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsOpen reports whether the booking still counts towards current occupancy
func (s BookingStatus) IsOpen() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

// RoomStatus is the housekeeping state of a room
type RoomStatus string

const (
	RoomFree        RoomStatus = "Свободен"
	RoomOccupied    RoomStatus = "Занят"
	RoomCleaning    RoomStatus = "Уборка"
	RoomMaintenance RoomStatus = "Техобслуживание"
)

var RoomStatuses = []RoomStatus{RoomFree, RoomOccupied, RoomCleaning, RoomMaintenance}

func (s RoomStatus) IsValid() bool {
	for _, v := range RoomStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// EmployeeStatus is the employment state of a staff member
type EmployeeStatus string

const (
	EmployeeActive    EmployeeStatus = "Активен"
	EmployeeOnLeave   EmployeeStatus = "В отпуске"
	EmployeeDismissed EmployeeStatus = "Уволен"
)

var EmployeeStatuses = []EmployeeStatus{EmployeeActive, EmployeeOnLeave, EmployeeDismissed}

func (s EmployeeStatus) IsValid() bool {
	for _, v := range EmployeeStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CleaningLogStatus is the progress of a cleaning log
type CleaningLogStatus string

const (
	CleaningNotStarted CleaningLogStatus = "Не начато"
	CleaningCompleted  CleaningLogStatus = "Завершена"
)

// IsPending reports whether work on the log has not started yet
func (s CleaningLogStatus) IsPending() bool {
	return s == CleaningNotStarted
}
