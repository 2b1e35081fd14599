package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/daybook-app/daybook/internal/core/plan"
	"github.com/daybook-app/daybook/internal/daybook"
	"github.com/daybook-app/daybook/pkg/iojson"
)

// PlanCmd implements the daybook plan command.
type PlanCmd struct {
	flags *Flags
	app   *daybook.App

	planType string
	timezone string
	asJSON   bool
}

// NewPlanCmd creates a new plan command.
func NewPlanCmd(flags *Flags, app *daybook.App) *PlanCmd {
	return &PlanCmd{flags: flags, app: app}
}

// Register adds the plan command to the application.
func (cmd *PlanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "plan",
		Usage: "Show the currently featured trading plan",
		Description: `Fetches the featured daily or weekly plan. "No plan featured" is a
normal answer, not an error.

Examples:
  daybook plan                    # featured daily plan
  daybook plan --type weekly      # featured weekly plan`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "plan type (daily, weekly)",
				Value:       string(plan.TypeDaily),
				Destination: &cmd.planType,
			},
			&cli.StringFlag{
				Name:        "tz",
				Usage:       "timezone the server resolves the plan window against",
				Destination: &cmd.timezone,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the plan as JSON",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PlanCmd) run(ctx context.Context, _ *cli.Command) error {
	planType := plan.Type(cmd.planType)
	if !planType.Valid() {
		return fmt.Errorf("unknown plan type %q (want daily or weekly)", cmd.planType)
	}

	tz := cmd.timezone
	if tz == "" {
		tz = cmd.app.Config.Timezone
	}

	featured, err := cmd.app.Engine.ReadFeatured(ctx, planType, tz)
	if err != nil {
		return err
	}

	if cmd.asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		return iojson.Write(featured)
	}

	if featured == nil {
		fmt.Printf("no %s plan is currently featured\n", planType)
		return nil
	}

	out, err := renderPlan(featured)
	if err != nil {
		return fmt.Errorf("render plan: %w", err)
	}
	fmt.Println(out)
	return nil
}

// renderPlan formats the plan as markdown and renders it with glamour.
func renderPlan(featured *plan.Featured) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", featured.Title)
	fmt.Fprintf(&b, "**Model:** %s\n\n", featured.PrimaryModel)
	if len(featured.Symbols) > 0 {
		fmt.Fprintf(&b, "**Symbols:** %s\n\n", strings.Join(featured.Symbols, ", "))
	}
	if len(featured.KeyLevels) > 0 {
		levels := make([]string, len(featured.KeyLevels))
		for i, l := range featured.KeyLevels {
			levels[i] = l.String()
		}
		fmt.Fprintf(&b, "**Key levels:** %s\n\n", strings.Join(levels, ", "))
	}
	if featured.Bias != "" {
		fmt.Fprintf(&b, "## Bias\n\n%s\n", featured.Bias)
	}
	if len(featured.Tags) > 0 {
		fmt.Fprintf(&b, "\n*%s*\n", strings.Join(featured.Tags, " · "))
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(b.String())
}
