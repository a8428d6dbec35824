package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/inncontrol/pkg/core/model"
	"github.com/jakechorley/inncontrol/pkg/core/services"
	"github.com/jakechorley/inncontrol/pkg/core/stay"
)

// CleaningCmd creates the cleaning command group
func CleaningCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleaning",
		Short: "Manage the floor cleaning schedule and cleaning logs",
	}

	cmd.AddCommand(
		cleaningGridCmd(app),
		cleaningDayCmd(app),
		cleaningAssignCmd(app),
		cleaningReassignCmd(app),
		cleaningRemoveCmd(app),
		cleaningLogsCmd(app),
		cleaningCompleteCmd(app),
		cleaningReopenCmd(app),
		cleaningReassignLogCmd(app),
		cleaningGenerateCmd(app),
	)
	return cmd
}

func cleaningGridCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Show the weekly schedule by weekday and floor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := services.BuildCleaningGrid(app.Ctx, app.Client, app.Logger, app.Cfg.Floors)
			if err != nil {
				return err
			}

			if len(grid.Floors) == 0 {
				fmt.Println("\nNo floors configured and no schedule entries yet.")
				return nil
			}

			const dayWidth, cellWidth = 14, 18

			fmt.Printf("\nCleaning schedule\n\n")
			fmt.Print(pad("", dayWidth))
			for _, floor := range grid.Floors {
				fmt.Print(pad(fmt.Sprintf("Floor %d", floor), cellWidth))
			}
			fmt.Println()
			fmt.Println(strings.Repeat("-", dayWidth+cellWidth*len(grid.Floors)))

			for _, day := range model.Weekdays {
				fmt.Print(pad(string(day), dayWidth))
				for _, floor := range grid.Floors {
					cell := grid.Cell(day, floor)
					if cell.ScheduleID == 0 {
						fmt.Print(colored(colorDim, "-", cellWidth))
						continue
					}
					fmt.Print(pad(fmt.Sprintf("%s [%d]", cell.EmployeeName, cell.ScheduleID), cellWidth))
				}
				fmt.Println()
			}

			fmt.Println()
			fmt.Printf("%s[n]%s = schedule ID\n\n", colorDim, colorReset)
			return nil
		},
	}
}

func parseAssignment(args []string) (model.CleaningScheduleInput, error) {
	employeeID, err := parseID("employee_id", args[0])
	if err != nil {
		return model.CleaningScheduleInput{}, err
	}
	floor, err := parseFloor(args[1])
	if err != nil {
		return model.CleaningScheduleInput{}, err
	}
	day, err := model.ParseWeekday(args[2])
	if err != nil {
		return model.CleaningScheduleInput{}, err
	}
	return model.CleaningScheduleInput{EmployeeID: employeeID, Floor: floor, DayOfWeek: day}, nil
}

func cleaningAssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <employee_id> <floor> <weekday>",
		Short: "Assign an employee to clean a floor every week on a weekday",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseAssignment(args)
			if err != nil {
				return err
			}

			schedule, err := services.AssignCleaning(app.Ctx, app.Client, app.Recorder, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Employee %d cleans floor %d on %s (schedule %d)\n\n",
				schedule.EmployeeID, schedule.Floor, schedule.DayOfWeek, schedule.ID)
			return nil
		},
	}
}

func cleaningReassignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reassign <schedule_id> <employee_id> <floor> <weekday>",
		Short: "Change an existing schedule entry",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("schedule_id", args[0])
			if err != nil {
				return err
			}
			input, err := parseAssignment(args[1:])
			if err != nil {
				return err
			}

			schedule, err := services.ReassignCleaning(app.Ctx, app.Client, app.Recorder, app.Logger, id, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Schedule %d: employee %d cleans floor %d on %s\n\n",
				schedule.ID, schedule.EmployeeID, schedule.Floor, schedule.DayOfWeek)
			return nil
		},
	}
}

func cleaningRemoveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <schedule_id>",
		Short: "Remove a schedule entry and its pending future logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("schedule_id", args[0])
			if err != nil {
				return err
			}

			removed, err := services.RemoveCleaningSchedule(app.Ctx, app.Client, app.Recorder, app.Logger, id, time.Now())
			if err != nil {
				if removed > 0 {
					fmt.Printf("\n⚠️  %d future logs removed before the error\n", removed)
				}
				return err
			}

			fmt.Printf("\n✓ Schedule %d removed (%d future logs removed)\n\n", id, removed)
			return nil
		},
	}
}

// printCleaningLogs prints logs as a table; withDate adds a date column for
// logs spanning several days
func printCleaningLogs(rows []services.CleaningLogRow, withDate bool) {
	dateHeader := ""
	if withDate {
		dateHeader = pad("Date", 12)
	}
	fmt.Printf("%s%s%s%s%s%s\n", pad("ID", 8), dateHeader, pad("Floor", 7), pad("Room", 8), pad("Employee", 20), "Status")
	for _, r := range rows {
		date := ""
		if withDate {
			date = pad(r.CleaningDate, 12)
		}
		fmt.Printf("%s%s%s%s%s%s\n",
			pad(fmt.Sprint(r.ID), 8),
			date,
			pad(fmt.Sprint(r.Floor), 7),
			pad(r.RoomNumber, 8),
			pad(r.EmployeeName, 20),
			colored(cleaningStatusColor(r.Status), string(r.Status), 0))
	}
}

func cleaningLogsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [date] [--room <room_id>] [--employee <employee_id>]",
		Short: "List cleaning logs for a day, a room or an employee (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var q services.CleaningLogQuery
			q.RoomID, _ = cmd.Flags().GetInt("room")
			q.EmployeeID, _ = cmd.Flags().GetInt("employee")
			if q.RoomID < 0 || q.EmployeeID < 0 {
				return fmt.Errorf("room and employee must be positive IDs")
			}

			switch {
			case len(args) > 0:
				q.Date = args[0]
			case q.RoomID == 0 && q.EmployeeID == 0:
				q.Date = time.Now().Format(stay.DateLayout)
			}

			rows, err := services.FindCleaningLogs(app.Ctx, app.Client, app.Logger, q)
			if err != nil {
				return err
			}

			var scope []string
			if q.Date != "" {
				scope = append(scope, q.Date)
			}
			if q.RoomID != 0 {
				scope = append(scope, fmt.Sprintf("room #%d", q.RoomID))
			}
			if q.EmployeeID != 0 {
				scope = append(scope, fmt.Sprintf("employee #%d", q.EmployeeID))
			}

			fmt.Printf("\n%d cleaning logs for %s:\n\n", len(rows), strings.Join(scope, ", "))
			if len(rows) > 0 {
				printCleaningLogs(rows, q.Date == "")
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().Int("room", 0, "Only logs of this room ID")
	cmd.Flags().Int("employee", 0, "Only logs of this employee ID")

	return cmd
}

func cleaningDayCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "day <weekday>",
		Short: "Show who cleans which floor on a weekday (name or 1-7, Monday is 1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, rows, err := services.DaySchedule(app.Ctx, app.Client, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%s: %d floors assigned\n\n", day, len(rows))
			for _, r := range rows {
				fmt.Printf("- Floor %s %s [%d]\n", pad(fmt.Sprint(r.Floor), 4), r.EmployeeName, r.ScheduleID)
			}
			fmt.Println()
			return nil
		},
	}
}

func cleaningReassignLogCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reassign-log <log_id> <employee_id>",
		Short: "Hand one pending cleaning to another employee without changing the schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("log_id", args[0])
			if err != nil {
				return err
			}
			employeeID, err := parseID("employee_id", args[1])
			if err != nil {
				return err
			}

			log, err := services.ReassignCleaningLog(app.Ctx, app.Client, app.Recorder, app.Logger, id, employeeID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Cleaning log %d on %s reassigned to employee %d\n\n", log.ID, log.CleaningDate, log.EmployeeID)
			return nil
		},
	}
}

func cleaningReopenCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <log_id>",
		Short: "Put a completed cleaning log back to not started",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("log_id", args[0])
			if err != nil {
				return err
			}

			log, err := services.ReopenCleaning(app.Ctx, app.Client, app.Recorder, app.Logger, id)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Cleaning log %d is %s\n\n", log.ID, log.Status)
			return nil
		},
	}
}

func cleaningCompleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <log_id>",
		Short: "Mark a cleaning log as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("log_id", args[0])
			if err != nil {
				return err
			}

			log, err := services.CompleteCleaning(app.Ctx, app.Client, app.Recorder, app.Logger, id)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Cleaning log %d is %s\n\n", log.ID, log.Status)
			return nil
		},
	}
}

func cleaningGenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create pending cleaning logs from the schedule for the coming weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromArg, _ := cmd.Flags().GetString("from")
			weeks, _ := cmd.Flags().GetInt("weeks")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			from := time.Now()
			if fromArg != "" {
				parsed, ok := stay.ParseDate(fromArg)
				if !ok {
					return fmt.Errorf("invalid from date: %q", fromArg)
				}
				from = parsed
			}
			if weeks < 1 {
				weeks = app.Cfg.CleaningHorizonWeeks
			}
			until := from.AddDate(0, 0, weeks*7-1)

			result, err := services.GenerateCleaningLogs(app.Ctx, app.Client, app.Recorder, app.Logger, services.GenerateOptions{
				From:       from,
				Until:      until,
				ClosedDays: app.Cfg.ClosedDayRules(),
				DryRun:     dryRun,
			})
			if err != nil && result == nil {
				return err
			}

			period := fmt.Sprintf("%s to %s", from.Format(stay.DateLayout), until.Format(stay.DateLayout))
			if dryRun {
				fmt.Printf("\nDRY RUN: %d cleaning logs would be created for %s\n\n", len(result.Planned), period)
				for _, log := range result.Planned {
					fmt.Printf("  %s  room %d  employee %d\n", log.CleaningDate, log.RoomID, log.EmployeeID)
				}
				fmt.Println()
				return nil
			}

			fmt.Printf("\n✓ %d cleaning logs created for %s\n", result.Created, period)
			if result.Failed > 0 {
				fmt.Printf("⚠️  %d logs could not be created (see log file)\n", result.Failed)
			}
			fmt.Println()
			return err
		},
	}

	cmd.Flags().String("from", "", "First day (YYYY-MM-DD, defaults to today)")
	cmd.Flags().Int("weeks", 0, "Number of weeks (defaults to cleaningHorizonWeeks)")
	cmd.Flags().Bool("dry-run", false, "Show the logs without creating them")

	return cmd
}
