package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jakechorley/inncontrol/pkg/core/services"
)

// LoginCmd creates the login command
func LoginCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the backend and save the session for this environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			if username == "" {
				username = app.Cfg.Username
			}
			if password == "" {
				password = app.Cfg.Password
			}
			if username == "" {
				username = prompt("Username: ")
			}
			if password == "" {
				var err error
				if password, err = promptPassword("Password: "); err != nil {
					return err
				}
			}

			claims, err := services.Login(app.Ctx, app.Client, app.Session, app.Logger, username, password)
			if err != nil {
				return err
			}
			app.Recorder.SetActor(claims.Subject)

			fmt.Printf("\n✓ Logged in as %s\n", claims.Subject)
			if !claims.ExpiresAt.IsZero() {
				fmt.Printf("Session expires at %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringP("username", "u", "", "Username (defaults to INNCTL_USERNAME)")
	cmd.Flags().StringP("password", "p", "", "Password (defaults to INNCTL_PASSWORD)")

	return cmd
}

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session for this environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.Logout(app.Session, app.Logger); err != nil {
				return err
			}
			app.Recorder.SetActor("")
			fmt.Println("\n✓ Logged out")
			return nil
		},
	}
}

// WhoAmICmd creates the whoami command
func WhoAmICmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user of the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := services.WhoAmI(app.Session)
			if err != nil {
				return err
			}

			fmt.Printf("\nUser:        %s\n", claims.Subject)
			fmt.Printf("Environment: %s\n", app.Env)
			fmt.Printf("Backend:     %s\n", app.Cfg.APIBaseURL)
			if !claims.ExpiresAt.IsZero() {
				fmt.Printf("Expires:     %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			fmt.Println()
			return nil
		},
	}
}

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptPassword reads a password without echo when stdin is a terminal.
// Leading and trailing spaces are part of the password.
func promptPassword(label string) (string, error) {
	fmt.Print(label)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	password, err := readLine(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// readLine returns the next line of r without its line ending. A last line
// without a newline is returned as is.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
