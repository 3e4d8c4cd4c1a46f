package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/randomnote/internal"
	"github.com/starford/randomnote/internal/commands"
	pkgconfig "github.com/starford/randomnote/pkg/config"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if token := os.Getenv("JOPLIN_TOKEN"); token != "" {
		cfg.Joplin.Token = token
	}
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func options(cmd *cli.Command) ([]internal.Option, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func open(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	return internal.Exec(ctx, func(ctx context.Context, svc *commands.Service) error {
		res, err := svc.OpenRandomNote(ctx, cmd.StringSlice("selected"))
		if err != nil {
			return err
		}
		if !res.Opened {
			slog.Info("no eligible note")
		}
		return nil
	}, opts...)
}

// listAction adapts a list-maintenance method to a command action that takes
// the ids as arguments.
func listAction(single bool, fn func(ctx context.Context, svc *commands.Service, ids []string) ([]string, error)) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ids := cmd.Args().Slice()
		if len(ids) == 0 {
			return errors.New("at least one id is required")
		}
		if single && len(ids) > 1 {
			return errors.New("exactly one id is required")
		}
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		return internal.Exec(ctx, func(ctx context.Context, svc *commands.Service) error {
			list, err := fn(ctx, svc, ids)
			if err != nil {
				return err
			}
			slog.Info("list updated", slog.Any("ids", list))
			return nil
		}, opts...)
	}
}

func notebooks(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	return internal.Notebooks(ctx, opts...)
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(ctx, opts...)
}

func main() {
	cmd := &cli.Command{
		Name:    "randomnote",
		Usage:   "Open a random note from Joplin, honoring exclusion and root notebook rules",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the HTTP action API",
				Action: serve,
			},
			{
				Name:   "open",
				Usage:  "Pick a random eligible note and print its Joplin link",
				Action: open,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "selected",
						Usage: "Note ids to treat as currently selected",
					},
				},
			},
			{
				Name:      "exclude-note",
				Usage:     "Exclude notes from random selection",
				ArgsUsage: "<note-id>...",
				Action: listAction(false, func(ctx context.Context, svc *commands.Service, ids []string) ([]string, error) {
					return svc.ExcludeNotes(ctx, ids...)
				}),
			},
			{
				Name:      "exclude-notebook",
				Usage:     "Exclude every note of a notebook from random selection",
				ArgsUsage: "<notebook-id>",
				Action: listAction(true, func(ctx context.Context, svc *commands.Service, ids []string) ([]string, error) {
					return svc.ExcludeNotebook(ctx, ids[0])
				}),
			},
			{
				Name:      "add-root",
				Usage:     "Restrict random selection to a notebook",
				ArgsUsage: "<notebook-id>",
				Action: listAction(true, func(ctx context.Context, svc *commands.Service, ids []string) ([]string, error) {
					return svc.AddRootNotebook(ctx, ids[0])
				}),
			},
			{
				Name:   "notebooks",
				Usage:  "List notebooks with their ids",
				Action: notebooks,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the actions as MCP tools over stdio",
				Action: mcp,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
