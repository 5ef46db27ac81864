package commands

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/smart-inventory/internal/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config and Logger are set in the Before hook and available to all commands
	Config *config.Config
	Logger zerolog.Logger

	// Out receives command output meant for the terminal.
	Out io.Writer
}
