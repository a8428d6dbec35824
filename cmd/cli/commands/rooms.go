package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/services"
)

// RoomsCmd creates the rooms command group
func RoomsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List, create and manage rooms",
	}

	cmd.AddCommand(
		roomsListCmd(app),
		roomsShowCmd(app),
		roomsCreateCmd(app),
		roomsUpdateCmd(app),
		roomsStatusCmd(app),
		roomsDeleteCmd(app),
		roomsAvailableCmd(app),
		roomsRefreshCmd(app),
	)
	return cmd
}

func roomsListCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rooms (filter by number, status, type or floor)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			statusArg, _ := cmd.Flags().GetString("status")
			typeName, _ := cmd.Flags().GetString("type")

			status, err := optionalStatus(statusArg, parseRoomStatus)
			if err != nil {
				return err
			}

			filter := services.RoomFilter{Search: search, Status: status, TypeName: typeName}
			if cmd.Flags().Changed("floor") {
				floor, _ := cmd.Flags().GetInt("floor")
				filter.Floor = &floor
			}

			rows, err := services.ListRooms(app.Ctx, app.Client, app.Logger, filter)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d rooms:\n\n", len(rows))
			if len(rows) == 0 {
				return nil
			}

			fmt.Printf("%s%s%s%s%s%s\n", pad("ID", 6), pad("Room", 8), pad("Floor", 7), pad("Type", 16), pad("Price", 12), "Status")
			for _, r := range rows {
				fmt.Printf("%s%s%s%s%s%s\n",
					pad(fmt.Sprint(r.ID), 6),
					pad(r.RoomNumber, 8),
					pad(fmt.Sprint(r.Floor), 7),
					pad(r.TypeName, 16),
					pad(money(r.PricePerNight), 12),
					colored(roomStatusColor(r.Status), string(r.Status), 0))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringP("search", "s", "", "Room number contains")
	cmd.Flags().String("status", "", "Room status (free, occupied, cleaning, maintenance)")
	cmd.Flags().String("type", "", "Room type name")
	cmd.Flags().Int("floor", 0, "Floor")

	return cmd
}

func roomsShowCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <room_id>",
		Short: "Show a room with its type and bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("room_id", args[0])
			if err != nil {
				return err
			}

			room, err := services.GetRoom(app.Ctx, app.Client, app.Logger, id)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s (ID %d)\n\n", roomLabel(room.RoomNumber), room.ID)
			fmt.Printf("Floor:    %d\n", room.Floor)
			fmt.Printf("Status:   %s\n", colored(roomStatusColor(room.Status), string(room.Status), 0))
			fmt.Printf("Type:     %s (%d guests)\n", room.RoomType.Name, room.RoomType.Capacity)
			fmt.Printf("Price:    %s per night\n", money(room.RoomType.PricePerNight))
			if room.Hotel != nil {
				fmt.Printf("Hotel:    %s\n", room.Hotel.Name)
			}
			fmt.Println()

			if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
				return nil
			}
			history, err := services.RoomBookings(app.Ctx, app.Client, app.Logger, id)
			if err != nil {
				return err
			}
			fmt.Printf("Bookings:\n\n")
			printHistory(history, "Guest", func(b services.HistoryRow) string { return fmt.Sprintf("#%d", b.ClientID) })
			return nil
		},
	}
	cmd.Flags().Bool("no-history", false, "Skip the booking history")

	return cmd
}

func addRoomFlags(cmd *cobra.Command) {
	cmd.Flags().String("number", "", "Room number")
	cmd.Flags().Int("floor", 0, "Floor")
	cmd.Flags().Int("type", 0, "Room type ID")
	cmd.Flags().Int("hotel", 0, "Hotel ID (defaults to the configured hotel)")
	cmd.Flags().String("status", "", "Room status (free, occupied, cleaning, maintenance)")
}

// applyRoomFlags overlays the flags that were set onto input
func applyRoomFlags(cmd *cobra.Command, input *model.RoomInput) error {
	flags := cmd.Flags()
	if flags.Changed("number") {
		input.RoomNumber, _ = flags.GetString("number")
	}
	if flags.Changed("floor") {
		input.Floor, _ = flags.GetInt("floor")
	}
	if flags.Changed("type") {
		input.TypeID, _ = flags.GetInt("type")
	}
	if flags.Changed("hotel") {
		input.HotelID, _ = flags.GetInt("hotel")
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		status, err := parseRoomStatus(raw)
		if err != nil {
			return err
		}
		input.Status = status
	}
	return nil
}

func roomsCreateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create --number <n> --floor <f> --type <type_id>",
		Short: "Create a room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := model.RoomInput{HotelID: app.Cfg.HotelID}
			if err := applyRoomFlags(cmd, &input); err != nil {
				return err
			}

			room, err := services.CreateRoom(app.Ctx, app.Client, app.Recorder, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Room %s created (ID %d, floor %d, %s)\n\n", room.RoomNumber, room.ID, room.Floor, room.Status)
			return nil
		},
	}

	addRoomFlags(cmd)
	return cmd
}

func roomsUpdateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <room_id> [--number] [--floor] [--type] [--status]",
		Short: "Update a room (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("room_id", args[0])
			if err != nil {
				return err
			}

			current, err := app.Client.GetRoom(app.Ctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch room %d: %w", id, err)
			}

			input := model.RoomInput{
				HotelID:    current.HotelID,
				TypeID:     current.TypeID,
				Floor:      current.Floor,
				RoomNumber: current.RoomNumber,
				Status:     current.Status,
			}
			if err := applyRoomFlags(cmd, &input); err != nil {
				return err
			}

			room, err := services.UpdateRoom(app.Ctx, app.Client, app.Recorder, app.Logger, id, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Room %s updated\n\n", room.RoomNumber)
			return nil
		},
	}

	addRoomFlags(cmd)
	return cmd
}

func roomsStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <room_id> <status>",
		Short: "Set a room status (free, occupied, cleaning, maintenance)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("room_id", args[0])
			if err != nil {
				return err
			}
			status, err := parseRoomStatus(args[1])
			if err != nil {
				return err
			}

			if _, err := services.ChangeRoomStatus(app.Ctx, app.Client, app.Recorder, app.Logger, id, status); err != nil {
				return err
			}

			fmt.Printf("\n✓ Room %d is now %s\n\n", id, colored(roomStatusColor(status), string(status), 0))
			return nil
		},
	}
}

func roomsDeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <room_id>",
		Short: "Delete a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("room_id", args[0])
			if err != nil {
				return err
			}

			if err := services.DeleteRoom(app.Ctx, app.Client, app.Recorder, app.Logger, id); err != nil {
				return err
			}

			fmt.Printf("\n✓ Room %d deleted\n\n", id)
			return nil
		},
	}
}

func roomsAvailableCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "available <check_in> <check_out>",
		Short: "List rooms free for the whole stay (dates as YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rooms, err := services.AvailableRooms(app.Ctx, app.Client, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n%d rooms available from %s to %s:\n\n", len(rooms), args[0], args[1])
			for _, r := range rooms {
				fmt.Printf("  %s (ID %d, floor %d)\n", roomLabel(r.RoomNumber), r.ID, r.Floor)
			}
			fmt.Println()
			return nil
		},
	}
}

func roomsRefreshCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Recompute every room status from current bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := services.RefreshRoomStatuses(app.Ctx, app.Client, app.Recorder, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Room statuses refreshed (%d rooms updated)\n\n", updated)
			return nil
		},
	}
}

// RoomTypesCmd creates the roomtypes command group
func RoomTypesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roomtypes",
		Short: "List and create room types",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List room types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := services.ListRoomTypes(app.Ctx, app.Client, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d room types:\n\n", len(types))
			for _, rt := range types {
				fmt.Printf("- %s (ID %d) - %d guests - %s per night\n", rt.Name, rt.ID, rt.Capacity, money(rt.PricePerNight))
			}
			fmt.Println()
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <name> <capacity> <price_per_night>",
		Short: "Create a room type",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input model.RoomTypeInput
			input.Name = args[0]
			if _, err := fmt.Sscan(args[1], &input.Capacity); err != nil {
				return fmt.Errorf("capacity must be a number, got: %s", args[1])
			}
			if _, err := fmt.Sscan(args[2], &input.PricePerNight); err != nil {
				return fmt.Errorf("price_per_night must be a number, got: %s", args[2])
			}

			rt, err := services.CreateRoomType(app.Ctx, app.Client, app.Recorder, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Room type %s created (ID %d)\n\n", rt.Name, rt.ID)
			return nil
		},
	}

	cmd.AddCommand(list, create)
	return cmd
}
