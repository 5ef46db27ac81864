package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/rogerio-castellano/smart-inventory/internal/auth"
)

type HashPasswordCmd struct {
	flags *Flags
}

// NewHashPasswordCmd creates a new hash-password command
func NewHashPasswordCmd(flags *Flags) *HashPasswordCmd {
	return &HashPasswordCmd{flags: flags}
}

// Register adds the hash-password command to the application
func (cmd *HashPasswordCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "hash-password",
		Usage:     "Print a bcrypt hash for auth.users[].password_hash",
		UsageText: "inventory-tracker hash-password <password>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *HashPasswordCmd) run(_ context.Context, c *cli.Command) error {
	password := c.Args().First()
	if password == "" {
		return fmt.Errorf("password argument is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.flags.Out, hash)
	return nil
}
