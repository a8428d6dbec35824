package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jakechorley/inncontrol/pkg/clients/hotelapi"
	"github.com/jakechorley/inncontrol/pkg/core/model"
)

var errBackend = fmt.Errorf("backend down")

func notFound(path string) error {
	return &hotelapi.APIError{StatusCode: 404, Method: "GET", Path: path, Message: "not found"}
}

// fakeBackend implements every store interface of this package over in-memory data
type fakeBackend struct {
	mu sync.Mutex

	hotels    []model.Hotel
	roomTypes []model.RoomType
	rooms     []model.Room
	clients   []model.Client
	bookings  []model.Booking
	employees []model.Employee
	schedules []model.CleaningSchedule
	logs      []model.CleaningLog
	available []model.Room

	// errs fails the named method
	errs map[string]error
	// failGetBooking fails GetBooking for these IDs only
	failGetBooking map[int]bool

	calls     []string
	nextID    int
	refreshed int

	createdRooms     []model.RoomInput
	createdBookings  []model.BookingInput
	createdSchedules []model.CleaningScheduleInput
	updatedSchedules map[int]model.CleaningScheduleInput
	createdLogs      []model.CleaningLogInput
	deletedLogs      []int
	updatedLogs      map[int]model.CleaningLogInput
	statusUpdates    map[int]string
}

func (f *fakeBackend) call(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeBackend) id() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return 1000 + f.nextID
}

func (f *fakeBackend) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *fakeBackend) setStatus(id int, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[int]string)
	}
	f.statusUpdates[id] = status
}

func (f *fakeBackend) ListHotels(ctx context.Context) ([]model.Hotel, error) {
	if err := f.call("ListHotels"); err != nil {
		return nil, err
	}
	return append([]model.Hotel(nil), f.hotels...), nil
}

func (f *fakeBackend) GetHotel(ctx context.Context, id int) (*model.Hotel, error) {
	if err := f.call("GetHotel"); err != nil {
		return nil, err
	}
	for _, h := range f.hotels {
		if h.ID == id {
			return &h, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/hotels/%d", id))
}

func (f *fakeBackend) ListHotelRooms(ctx context.Context, hotelID int) ([]model.Room, error) {
	if err := f.call("ListHotelRooms"); err != nil {
		return nil, err
	}
	var rooms []model.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			rooms = append(rooms, r)
		}
	}
	return rooms, nil
}

func (f *fakeBackend) ListHotelEmployees(ctx context.Context, hotelID int) ([]model.Employee, error) {
	if err := f.call("ListHotelEmployees"); err != nil {
		return nil, err
	}
	var employees []model.Employee
	for _, e := range f.employees {
		if e.HotelID == hotelID {
			employees = append(employees, e)
		}
	}
	return employees, nil
}

func (f *fakeBackend) ListRoomTypes(ctx context.Context) ([]model.RoomType, error) {
	if err := f.call("ListRoomTypes"); err != nil {
		return nil, err
	}
	return append([]model.RoomType(nil), f.roomTypes...), nil
}

func (f *fakeBackend) GetRoomType(ctx context.Context, id int) (*model.RoomType, error) {
	if err := f.call("GetRoomType"); err != nil {
		return nil, err
	}
	for _, rt := range f.roomTypes {
		if rt.ID == id {
			return &rt, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/room-types/%d", id))
}

func (f *fakeBackend) CreateRoomType(ctx context.Context, input model.RoomTypeInput) (*model.RoomType, error) {
	if err := f.call("CreateRoomType"); err != nil {
		return nil, err
	}
	return &model.RoomType{ID: f.id(), Name: input.Name, Capacity: input.Capacity, PricePerNight: input.PricePerNight}, nil
}

func (f *fakeBackend) ListRooms(ctx context.Context) ([]model.Room, error) {
	if err := f.call("ListRooms"); err != nil {
		return nil, err
	}
	return append([]model.Room(nil), f.rooms...), nil
}

func (f *fakeBackend) GetRoom(ctx context.Context, id int) (*model.RoomWithDetails, error) {
	if err := f.call("GetRoom"); err != nil {
		return nil, err
	}
	for _, r := range f.rooms {
		if r.ID != id {
			continue
		}
		details := &model.RoomWithDetails{Room: r}
		for _, rt := range f.roomTypes {
			if rt.ID == r.TypeID {
				details.RoomType = rt
			}
		}
		return details, nil
	}
	return nil, notFound(fmt.Sprintf("/rooms/%d", id))
}

func (f *fakeBackend) CreateRoom(ctx context.Context, input model.RoomInput) (*model.Room, error) {
	if err := f.call("CreateRoom"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.createdRooms = append(f.createdRooms, input)
	f.mu.Unlock()
	return &model.Room{ID: f.id(), HotelID: input.HotelID, TypeID: input.TypeID, Floor: input.Floor, RoomNumber: input.RoomNumber, Status: input.Status}, nil
}

func (f *fakeBackend) UpdateRoom(ctx context.Context, id int, input model.RoomInput) (*model.Room, error) {
	if err := f.call("UpdateRoom"); err != nil {
		return nil, err
	}
	return &model.Room{ID: id, HotelID: input.HotelID, TypeID: input.TypeID, Floor: input.Floor, RoomNumber: input.RoomNumber, Status: input.Status}, nil
}

func (f *fakeBackend) UpdateRoomStatus(ctx context.Context, id int, status model.RoomStatus) (*model.Room, error) {
	if err := f.call("UpdateRoomStatus"); err != nil {
		return nil, err
	}
	f.setStatus(id, string(status))
	return &model.Room{ID: id, Status: status}, nil
}

func (f *fakeBackend) DeleteRoom(ctx context.Context, id int) error {
	return f.call("DeleteRoom")
}

func (f *fakeBackend) RefreshRoomStatuses(ctx context.Context) (int, error) {
	if err := f.call("RefreshRoomStatuses"); err != nil {
		return 0, err
	}
	return f.refreshed, nil
}

func (f *fakeBackend) ListAvailableRooms(ctx context.Context, checkIn, checkOut string) ([]model.Room, error) {
	if err := f.call("ListAvailableRooms"); err != nil {
		return nil, err
	}
	return append([]model.Room(nil), f.available...), nil
}

func (f *fakeBackend) ListBookings(ctx context.Context) ([]model.Booking, error) {
	if err := f.call("ListBookings"); err != nil {
		return nil, err
	}
	return append([]model.Booking(nil), f.bookings...), nil
}

func (f *fakeBackend) GetBooking(ctx context.Context, id int) (*model.BookingWithDetails, error) {
	if err := f.call("GetBooking"); err != nil {
		return nil, err
	}
	if f.failGetBooking[id] {
		return nil, errBackend
	}
	for _, b := range f.bookings {
		if b.ID != id {
			continue
		}
		details := &model.BookingWithDetails{Booking: b}
		for _, c := range f.clients {
			if c.ID == b.ClientID {
				details.Client = c
			}
		}
		for _, r := range f.rooms {
			if r.ID == b.RoomID {
				details.Room = r
			}
		}
		return details, nil
	}
	return nil, notFound(fmt.Sprintf("/bookings/%d", id))
}

func (f *fakeBackend) ListClientBookings(ctx context.Context, clientID int) ([]model.Booking, error) {
	if err := f.call("ListClientBookings"); err != nil {
		return nil, err
	}
	var bookings []model.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (f *fakeBackend) ListRoomBookings(ctx context.Context, roomID int) ([]model.Booking, error) {
	if err := f.call("ListRoomBookings"); err != nil {
		return nil, err
	}
	var bookings []model.Booking
	for _, b := range f.bookings {
		if b.RoomID == roomID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (f *fakeBackend) CreateBooking(ctx context.Context, input model.BookingInput) (*model.Booking, error) {
	if err := f.call("CreateBooking"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.createdBookings = append(f.createdBookings, input)
	f.mu.Unlock()
	return &model.Booking{ID: f.id(), RoomID: input.RoomID, ClientID: input.ClientID,
		CheckInDate: input.CheckInDate, CheckOutDate: input.CheckOutDate, Status: input.Status}, nil
}

func (f *fakeBackend) UpdateBooking(ctx context.Context, id int, input model.BookingInput) (*model.Booking, error) {
	if err := f.call("UpdateBooking"); err != nil {
		return nil, err
	}
	return &model.Booking{ID: id, RoomID: input.RoomID, ClientID: input.ClientID,
		CheckInDate: input.CheckInDate, CheckOutDate: input.CheckOutDate, Status: input.Status}, nil
}

func (f *fakeBackend) UpdateBookingStatus(ctx context.Context, id int, status model.BookingStatus) (*model.Booking, error) {
	if err := f.call("UpdateBookingStatus"); err != nil {
		return nil, err
	}
	f.setStatus(id, string(status))
	return &model.Booking{ID: id, Status: status}, nil
}

func (f *fakeBackend) DeleteBooking(ctx context.Context, id int) error {
	return f.call("DeleteBooking")
}

func (f *fakeBackend) ListClients(ctx context.Context) ([]model.Client, error) {
	if err := f.call("ListClients"); err != nil {
		return nil, err
	}
	return append([]model.Client(nil), f.clients...), nil
}

func (f *fakeBackend) GetClient(ctx context.Context, id int) (*model.Client, error) {
	if err := f.call("GetClient"); err != nil {
		return nil, err
	}
	for _, c := range f.clients {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/clients/%d", id))
}

func (f *fakeBackend) CreateClient(ctx context.Context, input model.ClientInput) (*model.Client, error) {
	if err := f.call("CreateClient"); err != nil {
		return nil, err
	}
	return &model.Client{ID: f.id(), FirstName: input.FirstName, LastName: input.LastName,
		PassportNumber: input.PassportNumber, City: input.City}, nil
}

func (f *fakeBackend) UpdateClient(ctx context.Context, id int, input model.ClientInput) (*model.Client, error) {
	if err := f.call("UpdateClient"); err != nil {
		return nil, err
	}
	return &model.Client{ID: id, FirstName: input.FirstName, LastName: input.LastName,
		PassportNumber: input.PassportNumber, City: input.City}, nil
}

func (f *fakeBackend) DeleteClient(ctx context.Context, id int) error {
	return f.call("DeleteClient")
}

func (f *fakeBackend) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	if err := f.call("ListEmployees"); err != nil {
		return nil, err
	}
	return append([]model.Employee(nil), f.employees...), nil
}

func (f *fakeBackend) GetEmployee(ctx context.Context, id int) (*model.Employee, error) {
	if err := f.call("GetEmployee"); err != nil {
		return nil, err
	}
	for _, e := range f.employees {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/employees/%d", id))
}

func (f *fakeBackend) CreateEmployee(ctx context.Context, input model.EmployeeInput) (*model.Employee, error) {
	if err := f.call("CreateEmployee"); err != nil {
		return nil, err
	}
	return &model.Employee{ID: f.id(), HotelID: input.HotelID, FirstName: input.FirstName,
		LastName: input.LastName, Status: input.Status}, nil
}

func (f *fakeBackend) UpdateEmployee(ctx context.Context, id int, input model.EmployeeInput) (*model.Employee, error) {
	if err := f.call("UpdateEmployee"); err != nil {
		return nil, err
	}
	return &model.Employee{ID: id, HotelID: input.HotelID, FirstName: input.FirstName,
		LastName: input.LastName, Status: input.Status}, nil
}

func (f *fakeBackend) UpdateEmployeeStatus(ctx context.Context, id int, status model.EmployeeStatus) (*model.Employee, error) {
	if err := f.call("UpdateEmployeeStatus"); err != nil {
		return nil, err
	}
	f.setStatus(id, string(status))
	return &model.Employee{ID: id, Status: status}, nil
}

func (f *fakeBackend) DeleteEmployee(ctx context.Context, id int) error {
	return f.call("DeleteEmployee")
}

func (f *fakeBackend) ListCleaningSchedules(ctx context.Context) ([]model.CleaningSchedule, error) {
	if err := f.call("ListCleaningSchedules"); err != nil {
		return nil, err
	}
	return append([]model.CleaningSchedule(nil), f.schedules...), nil
}

func (f *fakeBackend) ListEmployeeCleaningSchedules(ctx context.Context, employeeID int) ([]model.CleaningSchedule, error) {
	if err := f.call("ListEmployeeCleaningSchedules"); err != nil {
		return nil, err
	}
	var schedules []model.CleaningSchedule
	for _, s := range f.schedules {
		if s.EmployeeID == employeeID {
			schedules = append(schedules, s)
		}
	}
	return schedules, nil
}

func (f *fakeBackend) ListCleaningSchedulesByDay(ctx context.Context, day model.Weekday) ([]model.CleaningSchedule, error) {
	if err := f.call("ListCleaningSchedulesByDay"); err != nil {
		return nil, err
	}
	var schedules []model.CleaningSchedule
	for _, s := range f.schedules {
		if s.DayOfWeek == day {
			schedules = append(schedules, s)
		}
	}
	return schedules, nil
}

func (f *fakeBackend) GetCleaningSchedule(ctx context.Context, id int) (*model.CleaningScheduleWithDetails, error) {
	if err := f.call("GetCleaningSchedule"); err != nil {
		return nil, err
	}
	for _, s := range f.schedules {
		if s.ID == id {
			return &model.CleaningScheduleWithDetails{CleaningSchedule: s}, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/cleaning-schedules/%d", id))
}

func (f *fakeBackend) CreateCleaningSchedule(ctx context.Context, input model.CleaningScheduleInput) (*model.CleaningSchedule, error) {
	if err := f.call("CreateCleaningSchedule"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.createdSchedules = append(f.createdSchedules, input)
	f.mu.Unlock()
	return &model.CleaningSchedule{ID: f.id(), EmployeeID: input.EmployeeID, Floor: input.Floor, DayOfWeek: input.DayOfWeek}, nil
}

func (f *fakeBackend) UpdateCleaningSchedule(ctx context.Context, id int, input model.CleaningScheduleInput) (*model.CleaningSchedule, error) {
	if err := f.call("UpdateCleaningSchedule"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	if f.updatedSchedules == nil {
		f.updatedSchedules = make(map[int]model.CleaningScheduleInput)
	}
	f.updatedSchedules[id] = input
	f.mu.Unlock()
	return &model.CleaningSchedule{ID: id, EmployeeID: input.EmployeeID, Floor: input.Floor, DayOfWeek: input.DayOfWeek}, nil
}

func (f *fakeBackend) DeleteCleaningSchedule(ctx context.Context, id int) error {
	return f.call("DeleteCleaningSchedule")
}

func (f *fakeBackend) ListCleaningLogs(ctx context.Context) ([]model.CleaningLog, error) {
	if err := f.call("ListCleaningLogs"); err != nil {
		return nil, err
	}
	return append([]model.CleaningLog(nil), f.logs...), nil
}

func (f *fakeBackend) ListCleaningLogsByDate(ctx context.Context, date string) ([]model.CleaningLog, error) {
	if err := f.call("ListCleaningLogsByDate"); err != nil {
		return nil, err
	}
	var logs []model.CleaningLog
	for _, l := range f.logs {
		if l.CleaningDate == date {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (f *fakeBackend) ListRoomCleaningLogs(ctx context.Context, roomID int) ([]model.CleaningLog, error) {
	if err := f.call("ListRoomCleaningLogs"); err != nil {
		return nil, err
	}
	var logs []model.CleaningLog
	for _, l := range f.logs {
		if l.RoomID == roomID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (f *fakeBackend) ListEmployeeCleaningLogs(ctx context.Context, employeeID int) ([]model.CleaningLog, error) {
	if err := f.call("ListEmployeeCleaningLogs"); err != nil {
		return nil, err
	}
	var logs []model.CleaningLog
	for _, l := range f.logs {
		if l.EmployeeID == employeeID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (f *fakeBackend) GetCleaningLog(ctx context.Context, id int) (*model.CleaningLogWithDetails, error) {
	if err := f.call("GetCleaningLog"); err != nil {
		return nil, err
	}
	for _, l := range f.logs {
		if l.ID == id {
			return &model.CleaningLogWithDetails{CleaningLog: l}, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/cleaning-logs/%d", id))
}

func (f *fakeBackend) UpdateCleaningLog(ctx context.Context, id int, input model.CleaningLogInput) (*model.CleaningLog, error) {
	if err := f.call("UpdateCleaningLog"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	if f.updatedLogs == nil {
		f.updatedLogs = make(map[int]model.CleaningLogInput)
	}
	f.updatedLogs[id] = input
	f.mu.Unlock()
	return &model.CleaningLog{ID: id, RoomID: input.RoomID, EmployeeID: input.EmployeeID,
		CleaningDate: input.CleaningDate, Status: input.Status}, nil
}

func (f *fakeBackend) UpdateCleaningLogStatus(ctx context.Context, id int, status model.CleaningLogStatus) (*model.CleaningLog, error) {
	if err := f.call("UpdateCleaningLogStatus"); err != nil {
		return nil, err
	}
	for _, l := range f.logs {
		if l.ID == id {
			f.setStatus(id, string(status))
			l.Status = status
			return &l, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/cleaning-logs/%d/status", id))
}

func (f *fakeBackend) CreateCleaningLog(ctx context.Context, input model.CleaningLogInput) (*model.CleaningLog, error) {
	if err := f.call("CreateCleaningLog"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.createdLogs = append(f.createdLogs, input)
	f.mu.Unlock()
	return &model.CleaningLog{ID: f.id(), RoomID: input.RoomID, EmployeeID: input.EmployeeID,
		CleaningDate: input.CleaningDate, Status: input.Status}, nil
}

func (f *fakeBackend) DeleteCleaningLog(ctx context.Context, id int) error {
	if err := f.call("DeleteCleaningLog"); err != nil {
		return err
	}
	f.mu.Lock()
	f.deletedLogs = append(f.deletedLogs, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) CompleteCleaningLog(ctx context.Context, id int) (*model.CleaningLog, error) {
	if err := f.call("CompleteCleaningLog"); err != nil {
		return nil, err
	}
	for _, l := range f.logs {
		if l.ID == id {
			l.Status = model.CleaningCompleted
			return &l, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/cleaning-logs/%d/complete/", id))
}

// mockRecorder implements ActivityRecorder
type mockRecorder struct {
	mu      sync.Mutex
	entries []string
	err     error
}

func (m *mockRecorder) Record(ctx context.Context, action, entity string, entityID int, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, fmt.Sprintf("%s %s %d", action, entity, entityID))
	return nil
}

// hotelFixture is a small hotel with two floors used across tests
func hotelFixture() *fakeBackend {
	return &fakeBackend{
		hotels: []model.Hotel{{ID: 1, Name: "Гранд", TotalRooms: 4}},
		roomTypes: []model.RoomType{
			{ID: 1, Name: "Стандарт", Capacity: 2, PricePerNight: 3000},
			{ID: 2, Name: "Люкс", Capacity: 4, PricePerNight: 7500},
		},
		rooms: []model.Room{
			{ID: 10, HotelID: 1, TypeID: 1, Floor: 1, RoomNumber: "101", Status: model.RoomFree},
			{ID: 11, HotelID: 1, TypeID: 1, Floor: 1, RoomNumber: "102", Status: model.RoomOccupied},
			{ID: 20, HotelID: 1, TypeID: 2, Floor: 2, RoomNumber: "201", Status: model.RoomCleaning},
			{ID: 9, HotelID: 1, TypeID: 1, Floor: 0, RoomNumber: "9", Status: model.RoomFree},
		},
		clients: []model.Client{
			{ID: 1, FirstName: "Иван", LastName: "Петров", PassportNumber: "4500 123456", City: "Москва"},
			{ID: 2, FirstName: "Anna", LastName: "Smith", PassportNumber: "X998877", City: "London"},
			{ID: 3, FirstName: "Олег", LastName: "Сидоров", PassportNumber: "4100 654321", City: "Казань"},
		},
		bookings: []model.Booking{
			{ID: 100, RoomID: 10, ClientID: 1, CheckInDate: "2023-10-01", CheckOutDate: "2023-10-04", Status: model.BookingCompleted},
			{ID: 101, RoomID: 11, ClientID: 2, CheckInDate: "2023-10-10", CheckOutDate: "2023-10-12", Status: model.BookingCheckedIn},
			{ID: 102, RoomID: 20, ClientID: 1, CheckInDate: "2023-10-20", CheckOutDate: "2023-10-25", Status: model.BookingConfirmed},
			{ID: 103, RoomID: 9, ClientID: 3, CheckInDate: "2023-11-05", CheckOutDate: "2023-11-06", Status: model.BookingCancelled},
		},
		employees: []model.Employee{
			{ID: 1, HotelID: 1, FirstName: "Мария", LastName: "Иванова", Status: model.EmployeeActive},
			{ID: 2, HotelID: 1, FirstName: "Пётр", LastName: "Кузнецов", Status: model.EmployeeOnLeave},
			{ID: 3, HotelID: 1, FirstName: "Сергей", LastName: "Волков", Status: model.EmployeeDismissed},
		},
	}
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
