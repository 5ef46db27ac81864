package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
)

type SummaryCmd struct {
	flags  *Flags
	asJSON bool
}

// NewSummaryCmd creates a new summary command
func NewSummaryCmd(flags *Flags) *SummaryCmd {
	return &SummaryCmd{flags: flags}
}

// Register adds the summary command to the application
func (cmd *SummaryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "summary",
		Usage:     "Print the low-stock summary and dashboard counters",
		UsageText: "inventory-tracker summary [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print machine-readable output",
				Destination: &cmd.asJSON,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SummaryCmd) run(ctx context.Context, _ *cli.Command) error {
	st, err := openStack(ctx, cmd.flags.Config, cmd.flags.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.items.LowStockSummary(ctx)
	if err != nil {
		return err
	}
	stats, err := st.items.Stats(ctx)
	if err != nil {
		return err
	}

	if cmd.asJSON {
		enc := json.NewEncoder(cmd.flags.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Summary string          `json:"summary"`
			Stats   inventory.Stats `json:"stats"`
		}{summary, stats})
	}

	out := cmd.flags.Out
	fmt.Fprintln(out, summary)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total items:    %d\n", stats.TotalItems)
	fmt.Fprintf(out, "In stock:       %d\n", stats.InStock)
	fmt.Fprintf(out, "Low stock:      %d\n", stats.LowStock)
	fmt.Fprintf(out, "Ordered:        %d\n", stats.Ordered)
	fmt.Fprintf(out, "Discontinued:   %d\n", stats.Discontinued)
	fmt.Fprintf(out, "Categories:     %d\n", stats.Categories)
	fmt.Fprintf(out, "Total quantity: %d\n", stats.TotalQuantity)
	return nil
}
