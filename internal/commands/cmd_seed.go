package commands

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

//go:embed demo_items.yaml
var demoItems []byte

type seedItem struct {
	Name        string `yaml:"name"`
	Quantity    int    `yaml:"quantity"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type SeedCmd struct {
	flags   *Flags
	file    string
	replace bool
}

// NewSeedCmd creates a new seed command
func NewSeedCmd(flags *Flags) *SeedCmd {
	return &SeedCmd{flags: flags}
}

// Register adds the seed command to the application
func (cmd *SeedCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "seed",
		Usage:     "Load items into the configured store",
		UsageText: "inventory-tracker seed [--file items.yaml] [--replace]",
		Description: `Creates items through the inventory engine so ids, timestamps and
status rules are applied exactly as for API requests. Without --file the
built-in demo inventory is used. A non-empty store is left alone unless
--replace is given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "YAML file with an items list",
				Destination: &cmd.file,
			},
			&cli.BoolFlag{
				Name:        "replace",
				Usage:       "discard existing items first",
				Destination: &cmd.replace,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SeedCmd) run(ctx context.Context, _ *cli.Command) error {
	raw := demoItems
	if cmd.file != "" {
		data, err := os.ReadFile(cmd.file)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		raw = data
	}

	items, err := parseSeed(raw)
	if err != nil {
		return err
	}

	st, err := openStack(ctx, cmd.flags.Config, cmd.flags.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	existing, err := st.items.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		if !cmd.replace {
			return fmt.Errorf("store already holds %d items; use --replace to overwrite", len(existing))
		}
		removed, err := st.items.Clear(ctx)
		if err != nil {
			return fmt.Errorf("clear store: %w", err)
		}
		cmd.flags.Logger.Info().Int("removed", removed).Msg("existing items discarded")
	}

	for i, it := range items {
		if _, err := st.items.Create(ctx, inventory.CreateInput{
			Name:        it.Name,
			Quantity:    it.Quantity,
			Category:    it.Category,
			Description: it.Description,
			Status:      parseSeedStatus(it.Status),
		}); err != nil {
			return fmt.Errorf("seed item %d (%s): %w", i, it.Name, err)
		}
	}

	fmt.Fprintf(cmd.flags.Out, "Seeded %d items\n", len(items))
	return nil
}

func parseSeedStatus(raw string) models.ItemStatus {
	if raw == "" {
		return ""
	}
	st, _ := models.ParseStatus(raw)
	return st
}

func parseSeed(raw []byte) ([]seedItem, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("seed file has no items")
	}
	return f.Items, nil
}
