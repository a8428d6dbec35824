package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/inncontrol/pkg/core/services"
)

// DashboardCmd creates the dashboard command
func DashboardCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show occupancy, counts, recent bookings and today's cleanings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recent, _ := cmd.Flags().GetInt("recent")
			cleanings, _ := cmd.Flags().GetInt("cleanings")

			dashboard, err := services.BuildDashboard(app.Ctx, app.Client, app.Logger, services.DashboardOptions{
				HotelID:        app.Cfg.HotelID,
				RecentBookings: recent,
				TodayCleanings: cleanings,
				Concurrency:    app.Cfg.MaxConcurrentRequests,
				Today:          time.Now(),
			})
			if err != nil {
				return err
			}

			occ := dashboard.Occupancy
			fmt.Printf("\n📋 %s\n\n", dashboard.HotelName)
			fmt.Printf("Occupancy:       %d%% (%d of %d rooms not free, %d occupied)\n",
				occ.Rate, occ.TotalRooms-occ.FreeRooms, occ.TotalRooms, occ.OccupiedRooms)
			fmt.Printf("Active bookings: %d\n", dashboard.ActiveBookings)
			fmt.Printf("Clients:         %d\n", dashboard.Clients)
			fmt.Printf("Employees:       %d\n", dashboard.Employees)

			fmt.Printf("\nRecent bookings:\n")
			if len(dashboard.RecentBookings) == 0 {
				fmt.Println("  none")
			}
			for _, b := range dashboard.RecentBookings {
				fmt.Printf("  %s%s%s to %s  %s\n",
					pad(b.ClientName, 18),
					pad(roomLabel(b.RoomNumber), 12),
					b.CheckInDate, b.CheckOutDate,
					colored(bookingStatusColor(b.Status), string(b.Status), 0))
			}

			fmt.Printf("\nToday's cleanings:\n")
			if len(dashboard.TodayCleanings) == 0 {
				fmt.Println("  none")
			}
			for _, c := range dashboard.TodayCleanings {
				fmt.Printf("  %s%s%s%s\n",
					pad(c.EmployeeName, 18),
					pad(fmt.Sprintf("Floor %d", c.Floor), 10),
					pad(roomLabel(c.RoomNumber), 12),
					colored(cleaningStatusColor(c.Status), string(c.Status), 0))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().Int("recent", services.DefaultRecentBookings, "Number of recent bookings")
	cmd.Flags().Int("cleanings", services.DefaultTodayCleanings, "Number of today's cleanings")

	return cmd
}

// HotelsCmd creates the hotels command
func HotelsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hotels",
		Short: "List hotels known to the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hotels, err := services.ListHotels(app.Ctx, app.Client, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d hotels:\n\n", len(hotels))
			for _, h := range hotels {
				marker := " "
				if h.ID == app.Cfg.HotelID {
					marker = "*"
				}
				fmt.Printf("%s %s (ID %d) - %d rooms\n", marker, h.Name, h.ID, h.TotalRooms)
			}
			fmt.Printf("\n* = configured hotel\n\n")
			return nil
		},
	}
}

// ActivityCmd creates the activity command
func ActivityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "activity [limit]",
		Short: "Show the latest changes made from this console",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := 20
			if len(args) > 0 {
				n, err := parseID("limit", args[0])
				if err != nil {
					return err
				}
				limit = n
			}

			entries, err := services.ListActivity(app.Ctx, app.Activity, app.Logger, limit)
			if err != nil {
				return err
			}

			fmt.Printf("\nLatest %d changes:\n\n", len(entries))
			for _, e := range entries {
				actor := e.Actor
				if actor == "" {
					actor = "-"
				}
				target := e.Entity
				if e.EntityID != 0 {
					target = fmt.Sprintf("%s %d", e.Entity, e.EntityID)
				}
				fmt.Printf("%s  %s%s%s%s\n",
					e.RecordedAt.Local().Format("2006-01-02 15:04:05"),
					pad(actor, 12), pad(e.Action, 10), pad(target, 24), e.Summary)
			}
			fmt.Println()
			return nil
		},
	}
}
