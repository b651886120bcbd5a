package archivecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatmodel/cmd/chatmodel/settings"
	"github.com/papercomputeco/chatmodel/pkg/archive"
)

const archiveLongDesc string = `Store and query chat responses in a local SQLite archive.

Responses are addressed by content hash: storing the same response
twice keeps a single copy.

Examples:
  chatmodel archive put response.json
  chatmodel archive list
  chatmodel archive get 3f1c...
  chatmodel archive merge ~/alice/archive.db ~/bob/archive.db`

const archiveShortDesc string = "Store and query archived chat responses"

type archiveCommander struct {
	sqlitePath string
}

func NewArchiveCmd() *cobra.Command {
	cmder := &archiveCommander{}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: archiveShortDesc,
		Long:  archiveLongDesc,
	}

	cmd.PersistentFlags().StringVarP(&cmder.sqlitePath, "sqlite", "s", "", "Path to archive SQLite database")

	cmd.AddCommand(newPutCmd(cmder))
	cmd.AddCommand(newGetCmd(cmder))
	cmd.AddCommand(newListCmd(cmder))
	cmd.AddCommand(newMergeCmd(cmder))

	return cmd
}

// open resolves the archive path and opens it.
func (c *archiveCommander) open(_ context.Context, cmd *cobra.Command) (*archive.SQLiteStorer, *zap.Logger, error) {
	cfg, err := settings.Load(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load config: %w", err)
	}
	logger := settings.Logger(cmd, cfg)

	dbPath, err := settings.ResolveSQLitePath(c.sqlitePath, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("could not resolve archive database: %w", err)
	}

	storer, err := archive.NewSQLiteStorer(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open archive %s: %w", dbPath, err)
	}

	logger.Debug("opened archive", zap.String("path", dbPath))

	return storer, logger, nil
}
