package archivecmder

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newListCmd(cmder *archiveCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived chat responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.list(cmd.Context(), cmd)
		},
	}
}

func (c *archiveCommander) list(ctx context.Context, cmd *cobra.Command) error {
	storer, logger, err := c.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer storer.Close()
	defer logger.Sync()

	entries, err := storer.List(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived responses.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HASH\tCREATED\tMODEL\tRESULTS\tTOKENS")
	for _, e := range entries {
		md := e.Response.Metadata()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			e.Hash, e.CreatedAt.Format(time.RFC3339), md.Model, len(e.Response.Results()), md.Usage.Total())
	}

	return tw.Flush()
}
