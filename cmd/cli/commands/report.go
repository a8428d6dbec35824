package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/core/services"
)

// ReportCmd creates the report command
func ReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report <start> <end>",
		Short: "Financial report for bookings overlapping a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("report command", zap.String("start", args[0]), zap.String("end", args[1]))

			report, err := services.BuildFinancialReport(app.Ctx, app.Client, app.Logger, app.Cfg.MaxConcurrentRequests, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\nFinancial report %s\n\n", report.Window)

			if len(report.Rows) > 0 {
				header := pad("Room", 8) + pad("Type", 14) + pad("Client", 24) + pad("Check-in", 12) +
					pad("Check-out", 12) + pad("Nights", 8) + pad("Price", 12) + "Total"
				fmt.Println(header)
				fmt.Println(strings.Repeat("-", 104))
				for _, r := range report.Rows {
					fmt.Printf("%s%s%s%s%s%s%s%s\n",
						pad(r.RoomNumber, 8),
						pad(r.RoomTypeName, 14),
						pad(r.ClientName, 24),
						pad(r.CheckInDate, 12),
						pad(r.CheckOutDate, 12),
						pad(fmt.Sprint(r.Nights), 8),
						pad(money(r.PricePerNight), 12),
						money(r.Total))
				}
				fmt.Println()
			}

			fmt.Printf("Total income:    %s%s%s\n", colorGreen, money(report.TotalIncome), colorReset)
			fmt.Printf("Bookings:        %d\n", report.BookingCount)
			fmt.Printf("Average booking: %s\n", money(report.AverageBooking))
			if report.Skipped > 0 {
				fmt.Printf("%s⚠️  %d bookings left out (details could not be fetched, see log file)%s\n",
					colorYellow, report.Skipped, colorReset)
			}
			fmt.Println()
			return nil
		},
	}
}
