package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/daybook-app/daybook/internal/core/checklist"
	"github.com/daybook-app/daybook/internal/daybook"
	"github.com/daybook-app/daybook/pkg/iojson"
)

// TemplateCmd implements the daybook template command group.
type TemplateCmd struct {
	flags *Flags
	app   *daybook.App

	setReader iojson.FileReader[[]checklist.TemplateItem]
}

// NewTemplateCmd creates a new template command.
func NewTemplateCmd(flags *Flags, app *daybook.App) *TemplateCmd {
	return &TemplateCmd{flags: flags, app: app}
}

// Register adds the template command to the application.
func (cmd *TemplateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "template",
		Usage: "Manage the recurring checklist template",
		Description: `The template is the ordered list of recurring checklist items your
per-day checklist is built from. Saving it refreshes every cached
today view.

Examples:
  daybook template show                  # print the template as JSON
  daybook template set -f items.json     # replace the template
  daybook template edit                  # edit items interactively`,
		Commands: []*cli.Command{
			cmd.showCmd(),
			cmd.setCmd(),
			cmd.editCmd(),
		},
	})

	return app
}

func (cmd *TemplateCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  "Print the checklist template as JSON",
		Action: cmd.runShow,
	}
}

func (cmd *TemplateCmd) setCmd() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Replace the checklist template",
		UsageText: "daybook template set [-f items.json]",
		Description: `Reads a JSON array of template items from --file or stdin and
submits it as the full replacement template.`,
		Flags: []cli.Flag{
			cmd.setReader.Flag(),
		},
		Action: cmd.runSet,
	}
}

func (cmd *TemplateCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:   "edit",
		Usage:  "Edit template items interactively",
		Action: cmd.runEdit,
	}
}

func (cmd *TemplateCmd) runShow(ctx context.Context, _ *cli.Command) error {
	items, err := cmd.app.Engine.ReadTemplate(ctx)
	if err != nil {
		return fmt.Errorf("fetch template: %w", err)
	}
	return iojson.Write(items)
}

func (cmd *TemplateCmd) runSet(ctx context.Context, _ *cli.Command) error {
	items, err := cmd.setReader.Read()
	if err != nil {
		return err
	}

	result, err := cmd.app.Engine.SaveTemplate(ctx, items)
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return iojson.Write(result)
}

func (cmd *TemplateCmd) runEdit(ctx context.Context, _ *cli.Command) error {
	items, err := cmd.app.Engine.ReadTemplate(ctx)
	if err != nil {
		return fmt.Errorf("fetch template: %w", err)
	}

	items, err = editTemplateForm(items)
	if err != nil {
		return err
	}

	result, err := cmd.app.Engine.SaveTemplate(ctx, items)
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return iojson.Write(result)
}

// editTemplateForm runs a form over the existing items plus one blank row
// for a new entry. Items whose text ends up empty are dropped; the rest
// keep their ids so the server updates in place.
func editTemplateForm(items []checklist.TemplateItem) ([]checklist.TemplateItem, error) {
	edited := make([]checklist.TemplateItem, len(items), len(items)+1)
	copy(edited, items)
	edited = append(edited, checklist.TemplateItem{Enabled: true})

	fields := make([]huh.Field, 0, len(edited)*2)
	for i := range edited {
		title := fmt.Sprintf("Item %d", i+1)
		if edited[i].ID == "" {
			title = "New item (leave empty to skip)"
		}
		fields = append(fields,
			huh.NewInput().
				Title(title).
				Value(&edited[i].Text),
			huh.NewConfirm().
				Title("Enabled").
				Value(&edited[i].Enabled),
		)
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("edit template: %w", err)
	}

	kept := make([]checklist.TemplateItem, 0, len(edited))
	for _, item := range edited {
		if item.Text == "" {
			continue
		}
		item.SortOrder = len(kept)
		kept = append(kept, item)
	}
	return kept, nil
}
