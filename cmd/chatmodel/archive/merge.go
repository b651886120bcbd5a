package archivecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatmodel/pkg/archive"
)

const mergeLongDesc string = `Merge one or more source archives into the target archive.

Content-addressing makes this a simple union: responses that already
exist in the target are skipped (deduped by hash).

Examples:
  chatmodel archive merge source1.db source2.db
  chatmodel archive merge --sqlite /tmp/merged.db ~/alice/archive.db ~/bob/archive.db`

func newMergeCmd(cmder *archiveCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "merge [sources...]",
		Short: "Merge archives",
		Long:  mergeLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.merge(cmd.Context(), cmd, args)
		},
	}
}

func (c *archiveCommander) merge(ctx context.Context, cmd *cobra.Command, sources []string) error {
	target, logger, err := c.open(ctx, cmd)
	if err != nil {
		return err
	}
	defer target.Close()
	defer logger.Sync()

	var totalNew, totalDuped int

	for _, srcPath := range sources {
		srcNew, srcDuped, err := mergeFrom(ctx, target, srcPath)
		if err != nil {
			return err
		}

		logger.Debug("merged archive",
			zap.String("source", srcPath),
			zap.Int("new", srcNew),
			zap.Int("existing", srcDuped),
		)

		totalNew += srcNew
		totalDuped += srcDuped

		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d new, %d already existed\n", srcPath, srcNew, srcDuped)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Merged %d new responses from %d sources (%d already existed)\n",
		totalNew, len(sources), totalDuped)

	return nil
}

func mergeFrom(ctx context.Context, target archive.Storer, srcPath string) (int, int, error) {
	source, err := archive.NewSQLiteStorer(srcPath)
	if err != nil {
		return 0, 0, fmt.Errorf("could not open source archive %s: %w", srcPath, err)
	}
	defer source.Close()

	entries, err := source.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("could not list responses from %s: %w", srcPath, err)
	}

	var srcNew, srcDuped int
	for _, e := range entries {
		_, isNew, err := target.Put(ctx, e.Response)
		if err != nil {
			return 0, 0, fmt.Errorf("could not put response %s: %w", e.Hash, err)
		}
		if isNew {
			srcNew++
		} else {
			srcDuped++
		}
	}

	return srcNew, srcDuped, nil
}
