package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rolld/internal/common/clock"
	"github.com/KirkDiggler/rolld/internal/common/uuid"
	"github.com/KirkDiggler/rolld/internal/dice"
	"github.com/KirkDiggler/rolld/internal/engine"
	"github.com/KirkDiggler/rolld/internal/logging"
	"github.com/KirkDiggler/rolld/internal/services/formatting"
	"github.com/KirkDiggler/rolld/internal/services/roller"
	"github.com/KirkDiggler/rolld/internal/version"
)

// errRollsFailed marks that at least one expression could not be rolled.
// The failures themselves are already printed by the time it is returned.
var errRollsFailed = errors.New("one or more expressions failed")

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		seed      int64
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:   "rolld <expression> [expression...]",
		Short: "Roll dice from the command line",
		Long: `rolld rolls standard dice notation and prints one line per result.

Expressions combine die sets and flat modifiers: "2d6+3", "d20-d4",
"4d6d1" (drop the lowest), "d20e" (exploding), "3d6r1" (reroll ones),
"3d6m2" (minimum two per die). Append x3 to roll the whole expression
three times.`,
		Args: cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.Setup(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoll(cmd, args, seed, noColor)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Seed the dice roller for reproducible rolls (0 seeds from the clock)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// runRoll wires the roll pipeline and processes each expression in order.
// A bad expression prints its failure and the batch moves on.
func runRoll(cmd *cobra.Command, args []string, seed int64, noColor bool) error {
	ctx := cmd.Context()

	simulator, err := engine.New(&engine.Config{
		Roller: dice.New(&dice.Config{Seed: seed}),
	})
	if err != nil {
		return err
	}

	rollerSvc, err := roller.New(&roller.Config{
		Engine:        simulator,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		return err
	}

	formattingSvc, err := formatting.New(&formatting.Config{})
	if err != nil {
		return err
	}

	colored := colorEnabled(noColor)

	failed := false
	for _, expression := range args {
		output, err := rollerSvc.Roll(ctx, &roller.RollInput{Expression: expression})
		if err != nil {
			rendered, ferr := formattingSvc.FormatParseError(ctx, &formatting.FormatParseErrorInput{
				Expression: expression,
				Err:        err,
			})
			if ferr != nil {
				return ferr
			}

			fmt.Fprintln(cmd.ErrOrStderr(), rendered.Text)
			failed = true
			continue
		}

		for _, record := range output.Records {
			rendered, err := formattingSvc.FormatResult(ctx, &formatting.FormatResultInput{
				Result: record.Result,
			})
			if err != nil {
				return err
			}

			line := rendered.Summary
			if len(args) > 1 {
				line = fmt.Sprintf("%s: %s", output.Expression, line)
			}

			fmt.Fprintln(cmd.OutOrStdout(), styleLine(rendered.Highlight, line, colored))
		}
	}

	if failed {
		return errRollsFailed
	}

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rolld version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Built:  %s\n", version.Date)
			}
		},
	}
}
