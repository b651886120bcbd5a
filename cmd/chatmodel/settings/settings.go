// Package settings resolves configuration shared by chatmodel subcommands.
package settings

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatmodel/pkg/config"
	"github.com/papercomputeco/chatmodel/pkg/logger"
)

// Persistent flags registered on the root command.
const (
	FlagConfig = "config"
	FlagDebug  = "debug"
)

// Load reads the configuration selected by --config (or the default path)
// and applies --debug.
func Load(cmd *cobra.Command) (*config.Config, error) {
	path, err := flagString(cmd, FlagConfig)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup(FlagDebug); f != nil && f.Changed {
		cfg.Debug, err = cmd.Flags().GetBool(FlagDebug)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Logger returns a logger for cfg writing to the command's stderr.
func Logger(cmd *cobra.Command, cfg *config.Config) *zap.Logger {
	return logger.New(cfg.Logger(), cmd.ErrOrStderr())
}

// ResolveSQLitePath returns override when set, otherwise the configured
// archive path.
func ResolveSQLitePath(override string, cfg *config.Config) (string, error) {
	if override != "" {
		return override, nil
	}
	if cfg.Archive.SQLitePath == "" {
		return "", fmt.Errorf("no archive database configured")
	}
	return cfg.Archive.SQLitePath, nil
}

// ReadInput reads path, or stdin when path is "-".
func ReadInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func flagString(cmd *cobra.Command, name string) (string, error) {
	if cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	return cmd.Flags().GetString(name)
}
