package db

import "time"

// ActivityEntry is one recorded mutation made through the console
type ActivityEntry struct {
	ID         string
	RecordedAt time.Time
	Actor      string
	Action     string // create, update, status, delete, ...
	Entity     string // room, booking, client, ...
	EntityID   int
	Summary    string
}
