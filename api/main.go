package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/rogerio-castellano/smart-inventory/internal/commands"
	"github.com/rogerio-castellano/smart-inventory/internal/config"
	"github.com/rogerio-castellano/smart-inventory/internal/logutils"
)

var version = "dev"

// @title Inventory Tracker API
// @version 1.0
// @description REST API for managing inventory items, reorder suggestions and low-stock summaries.
// @host localhost:4001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	var logCloser func()

	flags := &commands.Flags{Out: os.Stdout}

	app := &cli.Command{
		Name:      "inventory-tracker",
		Usage:     "Inventory tracking REST service",
		UsageText: "inventory-tracker [global options] command [command options]",
		Description: `Tracks stock items, flags low stock automatically and suggests reorder
quantities.

Run 'inventory-tracker' with no arguments to start the API server.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (defaults to config.yaml in ., ./config or /etc/smart-inventory)",
				Sources:     cli.EnvVars("INVENTORY_CONFIG"),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error); overrides logger.level",
				Sources:     cli.EnvVars("INVENTORY_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file; overrides logger.file",
				Sources:     cli.EnvVars("INVENTORY_LOG_FILE"),
				Destination: &flags.LogFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			level, file := cfg.Logger.Level, cfg.Logger.File
			if flags.LogLevel != "" {
				level = flags.LogLevel
			}
			if flags.LogFile != "" {
				file = flags.LogFile
			}

			logger, closer, err := logutils.New(level, file)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			flags.Config = cfg
			flags.Logger = logger
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	serveCmd := commands.NewServeCmd(flags)

	app = serveCmd.Register(app)
	app = commands.NewSeedCmd(flags).Register(app)
	app = commands.NewSummaryCmd(flags).Register(app)
	app = commands.NewHashPasswordCmd(flags).Register(app)

	// Serving is the default when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'inventory-tracker --help' for usage", c.Args().First())
		}
		return serveCmd.Run(ctx, c)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("exiting")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
