package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/services"
)

// BookingsCmd creates the bookings command group
func BookingsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List, create and manage bookings",
	}

	cmd.AddCommand(
		bookingsListCmd(app),
		bookingsShowCmd(app),
		bookingsCreateCmd(app),
		bookingsUpdateCmd(app),
		bookingsStatusCmd(app),
		bookingsDeleteCmd(app),
		bookingsQuoteCmd(app),
	)
	return cmd
}

func bookingsListCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings, latest check-in first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			statusArg, _ := cmd.Flags().GetString("status")

			status, err := optionalStatus(statusArg, parseBookingStatus)
			if err != nil {
				return err
			}

			rows, err := services.ListBookings(app.Ctx, app.Client, app.Logger, app.Cfg.MaxConcurrentRequests,
				services.BookingFilter{Search: search, Status: status})
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d bookings:\n\n", len(rows))
			if len(rows) == 0 {
				return nil
			}

			fmt.Printf("%s%s%s%s%s%s%s%s\n",
				pad("ID", 6), pad("Client", 24), pad("Room", 8), pad("Type", 14),
				pad("Check-in", 12), pad("Check-out", 12), pad("Total", 14), "Status")
			for _, r := range rows {
				fmt.Printf("%s%s%s%s%s%s%s%s\n",
					pad(fmt.Sprint(r.ID), 6),
					pad(r.ClientName, 24),
					pad(r.RoomNumber, 8),
					pad(r.RoomTypeName, 14),
					pad(r.CheckInDate, 12),
					pad(r.CheckOutDate, 12),
					pad(money(r.Total), 14),
					colored(bookingStatusColor(r.Status), string(r.Status), 0))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringP("search", "s", "", "Client name, room number or room type contains")
	cmd.Flags().String("status", "", "Booking status (confirmed, checked-in, active, completed, cancelled)")

	return cmd
}

func bookingsShowCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <booking_id>",
		Short: "Show a booking with its price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("booking_id", args[0])
			if err != nil {
				return err
			}

			row, err := services.GetBookingDetail(app.Ctx, app.Client, app.Logger, id)
			if err != nil {
				return err
			}

			fmt.Printf("\nBooking %d\n\n", row.ID)
			fmt.Printf("Client:    %s (ID %d)\n", row.ClientName, row.ClientID)
			fmt.Printf("Room:      %s, %s (ID %d)\n", roomLabel(row.RoomNumber), row.RoomTypeName, row.RoomID)
			fmt.Printf("Stay:      %s to %s (%d nights)\n", row.CheckInDate, row.CheckOutDate, row.Nights)
			fmt.Printf("Price:     %s x %d = %s\n", money(row.PricePerNight), row.Nights, money(row.Total))
			fmt.Printf("Status:    %s\n\n", colored(bookingStatusColor(row.Status), string(row.Status), 0))
			return nil
		},
	}
}

func addBookingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("room", 0, "Room ID")
	cmd.Flags().Int("client", 0, "Client ID")
	cmd.Flags().String("check-in", "", "Check-in date (YYYY-MM-DD)")
	cmd.Flags().String("check-out", "", "Check-out date (YYYY-MM-DD)")
	cmd.Flags().String("status", "", "Booking status (confirmed, checked-in, active, completed, cancelled)")
}

func applyBookingFlags(cmd *cobra.Command, input *model.BookingInput) error {
	flags := cmd.Flags()
	if flags.Changed("room") {
		input.RoomID, _ = flags.GetInt("room")
	}
	if flags.Changed("client") {
		input.ClientID, _ = flags.GetInt("client")
	}
	if flags.Changed("check-in") {
		input.CheckInDate, _ = flags.GetString("check-in")
	}
	if flags.Changed("check-out") {
		input.CheckOutDate, _ = flags.GetString("check-out")
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		status, err := parseBookingStatus(raw)
		if err != nil {
			return err
		}
		input.Status = status
	}
	return nil
}

func bookingsCreateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create --room <id> --client <id> --check-in <date> --check-out <date>",
		Short: "Create a booking if the room is free for the whole stay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input model.BookingInput
			if err := applyBookingFlags(cmd, &input); err != nil {
				return err
			}

			booking, err := services.CreateBooking(app.Ctx, app.Client, app.Recorder, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Booking %d created: room %d, %s to %s (%s)\n\n",
				booking.ID, booking.RoomID, booking.CheckInDate, booking.CheckOutDate, booking.Status)
			return nil
		},
	}

	addBookingFlags(cmd)
	return cmd
}

func bookingsUpdateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <booking_id> [--room] [--client] [--check-in] [--check-out] [--status]",
		Short: "Update a booking (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("booking_id", args[0])
			if err != nil {
				return err
			}

			current, err := app.Client.GetBooking(app.Ctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch booking %d: %w", id, err)
			}

			input := model.BookingInput{
				RoomID:       current.RoomID,
				ClientID:     current.ClientID,
				CheckInDate:  current.CheckInDate,
				CheckOutDate: current.CheckOutDate,
				Status:       current.Status,
			}
			if err := applyBookingFlags(cmd, &input); err != nil {
				return err
			}

			booking, err := services.UpdateBooking(app.Ctx, app.Client, app.Recorder, app.Logger, id, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Booking %d updated: %s to %s\n\n", booking.ID, booking.CheckInDate, booking.CheckOutDate)
			return nil
		},
	}

	addBookingFlags(cmd)
	return cmd
}

func bookingsStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <booking_id> <status>",
		Short: "Set a booking status (confirmed, checked-in, active, completed, cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("booking_id", args[0])
			if err != nil {
				return err
			}
			status, err := parseBookingStatus(args[1])
			if err != nil {
				return err
			}

			if _, err := services.ChangeBookingStatus(app.Ctx, app.Client, app.Recorder, app.Logger, id, status); err != nil {
				return err
			}

			fmt.Printf("\n✓ Booking %d is now %s\n\n", id, colored(bookingStatusColor(status), string(status), 0))
			return nil
		},
	}
}

func bookingsDeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <booking_id>",
		Short: "Delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("booking_id", args[0])
			if err != nil {
				return err
			}

			if err := services.DeleteBooking(app.Ctx, app.Client, app.Recorder, app.Logger, id); err != nil {
				return err
			}

			fmt.Printf("\n✓ Booking %d deleted\n\n", id)
			return nil
		},
	}
}

func bookingsQuoteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <room_id> <check_in> <check_out>",
		Short: "Price a stay without booking it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseID("room_id", args[0])
			if err != nil {
				return err
			}

			quote, err := services.QuoteStay(app.Ctx, app.Client, app.Logger, roomID, args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Printf("\n%d nights x %s = %s\n\n", quote.Nights, money(quote.PricePerNight), money(quote.Total))
			return nil
		},
	}
}
