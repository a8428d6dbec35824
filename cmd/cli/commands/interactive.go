package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (log in once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without reloading configuration.
The session will keep running until you type 'exit' or 'quit'.

Commands are typed without the program name, for example:
  rooms list --status free
  bookings create 3 11 2025-06-01 2025-06-05

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\n🚀 Starting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			rootCmd := cmd.Root()

			for {
				fmt.Print("> ")

				line, readErr := stdin.ReadString('\n')
				if readErr != nil && !errors.Is(readErr, io.EOF) {
					return fmt.Errorf("error reading input: %w", readErr)
				}

				line = strings.TrimSpace(line)
				if line == "" {
					if readErr != nil {
						fmt.Println()
						return nil
					}
					continue
				}

				parts, err := parseCommandLine(line)
				if err != nil {
					fmt.Printf("❌ Error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}

				switch parts[0] {
				case "exit", "quit":
					fmt.Println("👋 Goodbye!")
					return nil
				case "help":
					printInteractiveHelp(rootCmd)
					continue
				case "interactive":
					fmt.Printf("❌ Already in an interactive session\n\n")
					continue
				}

				runInteractive(rootCmd, parts)

				if readErr != nil {
					return nil
				}
			}
		},
	}

	return cmd
}

// runInteractive resolves a (possibly nested) command and runs it without
// going through Execute, so PersistentPreRunE does not initialise the app again
func runInteractive(rootCmd *cobra.Command, parts []string) {
	targetCmd, cmdArgs, err := rootCmd.Find(parts)
	if err != nil || targetCmd == rootCmd {
		fmt.Printf("❌ Unknown command: %s (type 'help' for available commands)\n\n", parts[0])
		return
	}

	targetCmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		flag.Value.Set(flag.DefValue)
	})

	if err := targetCmd.ParseFlags(cmdArgs); err != nil {
		fmt.Printf("❌ Error parsing flags: %v\n\n", err)
		return
	}

	cmdArgs = targetCmd.Flags().Args()

	if !targetCmd.Runnable() {
		printSubcommands(targetCmd)
		return
	}

	if targetCmd.Args != nil {
		if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
			fmt.Printf("❌ Error: %v\n\n", err)
			return
		}
	}

	if targetCmd.RunE != nil {
		if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
			fmt.Printf("❌ Error: %v\n\n", DescribeError(err))
		}
	} else if targetCmd.Run != nil {
		targetCmd.Run(targetCmd, cmdArgs)
	}
}

func visibleCommands(parent *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, c := range parent.Commands() {
		switch c.Name() {
		case "interactive", "completion", "help":
			continue
		}
		if c.Hidden {
			continue
		}
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

func printInteractiveHelp(rootCmd *cobra.Command) {
	fmt.Println("\nAvailable commands:")

	for _, c := range visibleCommands(rootCmd) {
		fmt.Printf("  %-30s %s\n", c.Use, c.Short)
		for _, sub := range visibleCommands(c) {
			fmt.Printf("    %-28s %s\n", sub.Use, sub.Short)
		}
	}

	fmt.Println("\n  help                           Show this help message")
	fmt.Println("  exit, quit                     Exit the interactive session")
	fmt.Println()
}

func printSubcommands(parent *cobra.Command) {
	fmt.Printf("\n%s subcommands:\n", parent.Name())
	for _, sub := range visibleCommands(parent) {
		fmt.Printf("  %-30s %s\n", sub.Use, sub.Short)
	}
	fmt.Println()
}

// parseCommandLine splits a command line into arguments, respecting quoted strings.
// Supports both single and double quotes
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune // 0 if not in quote, '"' or '\'' if in quote
	quoted := false  // current argument came from quotes, so keep it even if empty

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
			quoted = true
		case unicode.IsSpace(r):
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}

	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}

	return args, nil
}
