package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/cmd/cli/commands"
	"github.com/jakechorley/inncontrol/internal/config"
	"github.com/jakechorley/inncontrol/pkg/clients/hotelapi"
	"github.com/jakechorley/inncontrol/pkg/db"
	"github.com/jakechorley/inncontrol/pkg/postgres"
	"github.com/jakechorley/inncontrol/pkg/utils/logging"
)

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "innctl",
		Short: "InnControl CLI - Manage hotel rooms, bookings and housekeeping",
		Long: `A CLI tool for hotel administrators: rooms and room types, clients and bookings,
employees and the floor cleaning schedule, financial reports and a dashboard.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Activity != nil {
				app.Activity.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&app.Env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.LoginCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))
	rootCmd.AddCommand(commands.WhoAmICmd(app))
	rootCmd.AddCommand(commands.DashboardCmd(app))
	rootCmd.AddCommand(commands.HotelsCmd(app))
	rootCmd.AddCommand(commands.RoomsCmd(app))
	rootCmd.AddCommand(commands.RoomTypesCmd(app))
	rootCmd.AddCommand(commands.BookingsCmd(app))
	rootCmd.AddCommand(commands.ClientsCmd(app))
	rootCmd.AddCommand(commands.EmployeesCmd(app))
	rootCmd.AddCommand(commands.CleaningCmd(app))
	rootCmd.AddCommand(commands.ReportCmd(app))
	rootCmd.AddCommand(commands.ActivityCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", commands.DescribeError(err))
		os.Exit(1)
	}
}

// initApp sets up logger, config, session, backend client and activity store
func initApp(app *commands.AppContext) error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(app.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", app.Env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(app.Env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("api_base_url", app.Cfg.APIBaseURL),
		zap.Int("hotel_id", app.Cfg.HotelID))

	// Restore the saved session, if any
	tokens, err := hotelapi.NewFileTokenStore(app.Env)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	app.Session = hotelapi.NewSession(tokens)
	if err := app.Session.Restore(); err != nil {
		app.Logger.Warn("Failed to restore session, continuing logged out", zap.Error(err))
	}

	// Initialize backend client
	app.Logger.Info("Initializing backend client")
	app.Client, err = hotelapi.NewClient(hotelapi.Options{
		BaseURL: app.Cfg.APIBaseURL,
		Timeout: app.Cfg.RequestTimeout,
		Retry: hotelapi.RetryPolicy{
			MaxAttempts:    app.Cfg.Retry.MaxAttempts,
			InitialBackoff: app.Cfg.Retry.InitialBackoff,
			MaxBackoff:     app.Cfg.Retry.MaxBackoff,
			Multiplier:     app.Cfg.Retry.Multiplier,
		},
	}, app.Session, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	// Initialize activity store
	if app.Cfg.AuditDatabaseURL != "" {
		app.Logger.Info("Connecting to audit database")
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.AuditDatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to audit database: %w", err)
		}
		if err := pg.RunMigrations(app.Ctx, postgres.ActivityMigrations); err != nil {
			pg.Close()
			return fmt.Errorf("failed to run audit migrations: %w", err)
		}
		app.Activity = pg
	} else {
		app.Logger.Debug("No audit database configured, keeping activity in memory")
		app.Activity = db.NewMemoryStore()
	}

	actor := ""
	if claims, err := app.Session.Claims(); err == nil {
		actor = claims.Subject
	}
	app.Recorder = db.NewRecorder(app.Activity, actor)

	app.Logger.Info("Application initialized", zap.Bool("logged_in", actor != ""))
	return nil
}
