package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/daybook-app/daybook/internal/core/checklist"
	"github.com/daybook-app/daybook/internal/daybook"
	"github.com/daybook-app/daybook/pkg/iojson"
)

// TodayCmd implements the daybook today command group.
type TodayCmd struct {
	flags *Flags
	app   *daybook.App

	timezone string
	asJSON   bool

	// toggle flags
	toggleOff bool
}

// NewTodayCmd creates a new today command.
func NewTodayCmd(flags *Flags, app *daybook.App) *TodayCmd {
	return &TodayCmd{flags: flags, app: app}
}

// Register adds the today command to the application.
func (cmd *TodayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "today",
		Usage: "Show and update today's trading checklist",
		Description: `Today commands work against the per-day checklist instantiated
from your template.

Examples:
  daybook today                          # show today's checklist
  daybook today toggle a1b2              # mark an item complete
  daybook today toggle --off a1b2 c3d4   # mark items incomplete`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "tz",
				Usage:       "timezone used by the server to resolve today's date",
				Destination: &cmd.timezone,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the checklist as JSON",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.runShow,
		Commands: []*cli.Command{
			cmd.toggleCmd(),
		},
	})

	return app
}

func (cmd *TodayCmd) toggleCmd() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Toggle completion of checklist items",
		UsageText: "daybook today toggle [--off] <item-id>...",
		Description: `Marks items complete (or incomplete with --off). The change shows
immediately and is reconciled against the server; on failure the
previous state is restored.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "off",
				Usage:       "mark items incomplete instead of complete",
				Destination: &cmd.toggleOff,
			},
		},
		Action: cmd.runToggle,
	}
}

func (cmd *TodayCmd) tz() string {
	if cmd.timezone != "" {
		return cmd.timezone
	}
	return cmd.app.Config.Timezone
}

func (cmd *TodayCmd) runShow(ctx context.Context, _ *cli.Command) error {
	today, err := cmd.app.Engine.ReadToday(ctx, cmd.tz())
	if err != nil {
		return fmt.Errorf("fetch today checklist: %w", err)
	}

	if cmd.asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		return iojson.Write(today)
	}

	fmt.Println(renderToday(today))
	return nil
}

func (cmd *TodayCmd) runToggle(ctx context.Context, c *cli.Command) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("at least one item id is required")
	}

	tz := cmd.tz()
	today, err := cmd.app.Engine.ReadToday(ctx, tz)
	if err != nil {
		return fmt.Errorf("fetch today checklist: %w", err)
	}

	updates := make([]checklist.Update, 0, len(ids))
	for _, id := range ids {
		updates = append(updates, checklist.Update{
			ChecklistItemID: id,
			Completed:       !cmd.toggleOff,
		})
	}

	result, err := cmd.app.Engine.ToggleToday(ctx, tz, today.Date, updates)
	if err != nil {
		return fmt.Errorf("update today checklist: %w", err)
	}

	if cmd.asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		return iojson.Write(result)
	}

	fmt.Println(renderToday(result))
	return nil
}

var (
	todayDateStyle = lipgloss.NewStyle().Bold(true)
	todayDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	todayOpenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderToday(today checklist.Today) string {
	var b strings.Builder
	b.WriteString(todayDateStyle.Render(today.Date))
	b.WriteString("\n")
	for _, item := range today.Items {
		if item.Completed {
			b.WriteString(todayDoneStyle.Render(fmt.Sprintf("  [x] %s  %s", item.ID, item.Text)))
		} else {
			b.WriteString(todayOpenStyle.Render(fmt.Sprintf("  [ ] %s  %s", item.ID, item.Text)))
		}
		b.WriteString("\n")
	}
	if len(today.Items) == 0 {
		b.WriteString(todayOpenStyle.Render("  no checklist items; add some with 'daybook template edit'"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
