package stay

import (
	"math"

	"github.com/jakechorley/inncontrol/pkg/core/model"
)

// Occupancy summarises room states at a point in time
type Occupancy struct {
	TotalRooms    int
	OccupiedRooms int
	FreeRooms     int
	Rate          int // percent of rooms not in the free state, rounded
}

// OccupancyOf computes occupancy from the current room list
func OccupancyOf(rooms []model.Room) Occupancy {
	occ := Occupancy{TotalRooms: len(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case model.RoomFree:
			occ.FreeRooms++
		case model.RoomOccupied:
			occ.OccupiedRooms++
		}
	}

	if occ.TotalRooms > 0 {
		busy := occ.TotalRooms - occ.FreeRooms
		occ.Rate = int(math.Round(float64(busy) / float64(occ.TotalRooms) * 100))
	}
	return occ
}
