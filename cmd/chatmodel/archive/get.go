package archivecmder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(cmder *archiveCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "get <hash>",
		Short: "Print an archived chat response as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.get(cmd.Context(), cmd, args[0])
		},
	}
}

func (c *archiveCommander) get(ctx context.Context, cmd *cobra.Command, hash string) error {
	storer, logger, err := c.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer storer.Close()
	defer logger.Sync()

	entry, err := storer.Get(ctx, hash)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry.Response, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode response: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
