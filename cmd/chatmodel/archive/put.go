package archivecmder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatmodel/cmd/chatmodel/settings"
	"github.com/papercomputeco/chatmodel/pkg/llm"
)

func newPutCmd(cmder *archiveCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "put <file>...",
		Short: "Archive chat response JSON documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.put(cmd.Context(), cmd, args)
		},
	}
}

func (c *archiveCommander) put(ctx context.Context, cmd *cobra.Command, paths []string) error {
	storer, logger, err := c.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer storer.Close()
	defer logger.Sync()

	var totalNew, totalDup int

	for _, path := range paths {
		data, err := settings.ReadInput(cmd, path)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", path, err)
		}

		var resp llm.ChatResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("could not decode %s: %w", path, err)
		}

		hash, isNew, err := storer.Put(ctx, &resp)
		if err != nil {
			return fmt.Errorf("could not archive %s: %w", path, err)
		}

		logger.Debug("archived response", zap.String("path", path), zap.Object("response", &resp))

		status := "new"
		if isNew {
			totalNew++
		} else {
			status = "existing"
			totalDup++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", hash, status, path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d new responses (%d already existed)\n", totalNew, totalDup)

	return nil
}
