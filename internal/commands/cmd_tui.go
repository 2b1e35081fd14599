package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/daybook-app/daybook/internal/core/plan"
	"github.com/daybook-app/daybook/internal/daybook"
	"github.com/daybook-app/daybook/internal/tui"
)

// TuiCmd implements the interactive dashboard command.
type TuiCmd struct {
	flags *Flags
	app   *daybook.App

	timezone string
	planType string
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags, app *daybook.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Flags returns the TUI-specific flags for registration on the root command.
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tz",
			Usage:       "timezone used by the server to resolve today's date",
			Destination: &cmd.timezone,
		},
		&cli.StringFlag{
			Name:        "plan-type",
			Usage:       "featured plan type to show (daily, weekly)",
			Value:       string(plan.TypeDaily),
			Destination: &cmd.planType,
		},
	}
}

// Run executes the TUI. Exported for use as the default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	planType := plan.Type(cmd.planType)
	if !planType.Valid() {
		return fmt.Errorf("unknown plan type %q (want daily or weekly)", cmd.planType)
	}

	tz := cmd.timezone
	if tz == "" {
		tz = cmd.app.Config.Timezone
	}

	model := tui.New(cmd.app.Engine, tz, planType, log.Logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
