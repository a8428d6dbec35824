package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/services"
)

// ClientsCmd creates the clients command group
func ClientsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List, create and manage guests",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List guests with their booking counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			city, _ := cmd.Flags().GetString("city")
			showCities, _ := cmd.Flags().GetBool("cities")

			if showCities {
				cities, err := services.Cities(app.Ctx, app.Client, app.Logger)
				if err != nil {
					return err
				}
				fmt.Printf("\nCities: %s\n\n", strings.Join(cities, ", "))
				return nil
			}

			rows, err := services.ListClients(app.Ctx, app.Client, app.Logger, services.ClientFilter{Search: search, City: city})
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d clients:\n\n", len(rows))
			for _, c := range rows {
				fmt.Printf("- %s (%d) - passport %s - %s - %d bookings\n",
					c.FullName(), c.ID, c.PassportNumber, c.City, c.BookingCount)
			}
			fmt.Println()
			return nil
		},
	}
	list.Flags().StringP("search", "s", "", "Name or passport number contains")
	list.Flags().String("city", "", "City")
	list.Flags().Bool("cities", false, "Only list the distinct cities")

	show := &cobra.Command{
		Use:   "show <client_id>",
		Short: "Show a guest with their booking history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("client_id", args[0])
			if err != nil {
				return err
			}

			history, err := services.GetClientHistory(app.Ctx, app.Client, app.Logger, id)
			if err != nil {
				return err
			}

			c := history.Client
			fmt.Printf("\n%s (ID %d)\n\n", c.FullName(), c.ID)
			fmt.Printf("Passport: %s\n", c.PassportNumber)
			fmt.Printf("City:     %s\n\n", c.City)
			printHistory(history.Bookings, "Room", func(b services.HistoryRow) string { return fmt.Sprintf("#%d", b.RoomID) })
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <first_name> <last_name> <passport> <city>",
		Short: "Create a guest",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := services.CreateClient(app.Ctx, app.Client, app.Recorder, app.Logger, model.ClientInput{
				FirstName: args[0], LastName: args[1], PassportNumber: args[2], City: args[3],
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Client %s created (ID %d)\n\n", client.FullName(), client.ID)
			return nil
		},
	}

	update := &cobra.Command{
		Use:   "update <client_id> [--first-name] [--last-name] [--passport] [--city]",
		Short: "Update a guest (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("client_id", args[0])
			if err != nil {
				return err
			}

			current, err := app.Client.GetClient(app.Ctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch client %d: %w", id, err)
			}

			input := model.ClientInput{
				FirstName:      current.FirstName,
				LastName:       current.LastName,
				PassportNumber: current.PassportNumber,
				City:           current.City,
			}
			flags := cmd.Flags()
			if flags.Changed("first-name") {
				input.FirstName, _ = flags.GetString("first-name")
			}
			if flags.Changed("last-name") {
				input.LastName, _ = flags.GetString("last-name")
			}
			if flags.Changed("passport") {
				input.PassportNumber, _ = flags.GetString("passport")
			}
			if flags.Changed("city") {
				input.City, _ = flags.GetString("city")
			}

			client, err := services.UpdateClient(app.Ctx, app.Client, app.Recorder, app.Logger, id, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Client %s updated\n\n", client.FullName())
			return nil
		},
	}
	update.Flags().String("first-name", "", "First name")
	update.Flags().String("last-name", "", "Last name")
	update.Flags().String("passport", "", "Passport number")
	update.Flags().String("city", "", "City")

	del := &cobra.Command{
		Use:   "delete <client_id>",
		Short: "Delete a guest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("client_id", args[0])
			if err != nil {
				return err
			}
			if err := services.DeleteClient(app.Ctx, app.Client, app.Recorder, app.Logger, id); err != nil {
				return err
			}
			fmt.Printf("\n✓ Client %d deleted\n\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, show, create, update, del)
	return cmd
}

// EmployeesCmd creates the employees command group
func EmployeesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List, create and manage staff",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List staff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statusArg, _ := cmd.Flags().GetString("status")
			status, err := optionalStatus(statusArg, parseEmployeeStatus)
			if err != nil {
				return err
			}

			employees, err := services.ListEmployees(app.Ctx, app.Client, app.Logger, status)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d employees:\n\n", len(employees))
			for _, e := range employees {
				fmt.Printf("- %s (%d) - hotel %d - %s\n",
					e.FullName(), e.ID, e.HotelID, colored(employeeStatusColor(e.Status), string(e.Status), 0))
			}
			fmt.Println()
			return nil
		},
	}
	list.Flags().String("status", "", "Employee status (active, on-leave, dismissed)")

	show := &cobra.Command{
		Use:   "show <employee_id>",
		Short: "Show a staff member with their weekly cleaning floors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("employee_id", args[0])
			if err != nil {
				return err
			}

			detail, err := services.GetEmployeeDetail(app.Ctx, app.Client, app.Logger, id)
			if err != nil {
				return err
			}

			e := detail.Employee
			fmt.Printf("\n%s (ID %d)\n\n", e.FullName(), e.ID)
			fmt.Printf("Hotel:    %d\n", e.HotelID)
			fmt.Printf("Status:   %s\n\n", colored(employeeStatusColor(e.Status), string(e.Status), 0))

			if len(detail.Schedules) == 0 {
				fmt.Printf("No cleaning assignments\n\n")
				return nil
			}
			fmt.Printf("Cleaning:\n")
			for _, s := range detail.Schedules {
				fmt.Printf("- %s floor %d (schedule %d)\n", pad(string(s.DayOfWeek), 12), s.Floor, s.ID)
			}
			fmt.Println()
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <first_name> <last_name>",
		Short: "Create a staff member in the configured hotel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := model.EmployeeInput{HotelID: app.Cfg.HotelID, FirstName: args[0], LastName: args[1]}
			if cmd.Flags().Changed("hotel") {
				input.HotelID, _ = cmd.Flags().GetInt("hotel")
			}

			employee, err := services.CreateEmployee(app.Ctx, app.Client, app.Recorder, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Employee %s created (ID %d)\n\n", employee.FullName(), employee.ID)
			return nil
		},
	}
	create.Flags().Int("hotel", 0, "Hotel ID (defaults to the configured hotel)")

	update := &cobra.Command{
		Use:   "update <employee_id> [--first-name] [--last-name] [--hotel]",
		Short: "Update a staff member (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("employee_id", args[0])
			if err != nil {
				return err
			}

			current, err := app.Client.GetEmployee(app.Ctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch employee %d: %w", id, err)
			}

			input := model.EmployeeInput{
				HotelID:   current.HotelID,
				FirstName: current.FirstName,
				LastName:  current.LastName,
				Status:    current.Status,
			}
			flags := cmd.Flags()
			if flags.Changed("first-name") {
				input.FirstName, _ = flags.GetString("first-name")
			}
			if flags.Changed("last-name") {
				input.LastName, _ = flags.GetString("last-name")
			}
			if flags.Changed("hotel") {
				input.HotelID, _ = flags.GetInt("hotel")
			}

			employee, err := services.UpdateEmployee(app.Ctx, app.Client, app.Recorder, app.Logger, id, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Employee %s updated\n\n", employee.FullName())
			return nil
		},
	}
	update.Flags().String("first-name", "", "First name")
	update.Flags().String("last-name", "", "Last name")
	update.Flags().Int("hotel", 0, "Hotel ID")

	status := &cobra.Command{
		Use:   "status <employee_id> <status>",
		Short: "Set an employee status (active, on-leave, dismissed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("employee_id", args[0])
			if err != nil {
				return err
			}
			status, err := parseEmployeeStatus(args[1])
			if err != nil {
				return err
			}

			if _, err := services.ChangeEmployeeStatus(app.Ctx, app.Client, app.Recorder, app.Logger, id, status); err != nil {
				return err
			}

			fmt.Printf("\n✓ Employee %d is now %s\n\n", id, colored(employeeStatusColor(status), string(status), 0))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <employee_id>",
		Short: "Delete a staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("employee_id", args[0])
			if err != nil {
				return err
			}
			if err := services.DeleteEmployee(app.Ctx, app.Client, app.Recorder, app.Logger, id); err != nil {
				return err
			}
			fmt.Printf("\n✓ Employee %d deleted\n\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, show, create, update, status, del)
	return cmd
}
