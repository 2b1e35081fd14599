package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/daybook-app/daybook/internal/api"
	"github.com/daybook-app/daybook/internal/commands"
	"github.com/daybook-app/daybook/internal/core/cache"
	"github.com/daybook-app/daybook/internal/core/config"
	"github.com/daybook-app/daybook/internal/daybook"
	"github.com/daybook-app/daybook/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &daybook.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "daybook",
		Usage:     "Trade journaling from the terminal",
		UsageText: "daybook [global options] command [command options]",
		Description: `Daybook is a client for your trade journaling server. It keeps a
local view of your daily checklist and the featured trading plan in
sync with the server, applying your changes optimistically so the
terminal never waits on the network to feel responsive.

Run 'daybook' with no arguments to open the interactive dashboard.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DAYBOOK_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("DAYBOOK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DAYBOOK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			session, err := api.NewSession(api.Options{
				BaseURL: cfg.Server.BaseURL,
				Token:   cfg.Server.Token,
				Locale:  cfg.Locale,
			}, logger)
			if err != nil {
				return ctx, fmt.Errorf("create api session: %w", err)
			}

			store := cache.NewStore()
			engine := daybook.NewEngine(store, session, logger)

			// Populate the pre-allocated App struct (commands already
			// hold a pointer to it).
			*app = *daybook.NewApp(cfg, session, engine, store)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)

	root = commands.NewTodayCmd(flags, app).Register(root)
	root = commands.NewTemplateCmd(flags, app).Register(root)
	root = commands.NewPlanCmd(flags, app).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'daybook --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
