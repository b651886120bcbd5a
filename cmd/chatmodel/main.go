package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	archivecmder "github.com/papercomputeco/chatmodel/cmd/chatmodel/archive"
	inspectcmder "github.com/papercomputeco/chatmodel/cmd/chatmodel/inspect"
	"github.com/papercomputeco/chatmodel/cmd/chatmodel/settings"
)

const rootLongDesc string = `Inspect and archive chat model responses.

Responses are read as JSON documents with "metadata", "results" and
"advisor_context" keys. Archived responses are addressed by their
content hash, so identical responses are stored once.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chatmodel",
		Short:         "Inspect and archive chat model responses",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String(settings.FlagConfig, "", "Path to config file (default ~/.chatmodel/config.toml)")
	cmd.PersistentFlags().Bool(settings.FlagDebug, false, "Enable debug logging")

	cmd.AddCommand(inspectcmder.NewInspectCmd())
	cmd.AddCommand(archivecmder.NewArchiveCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		cmd.PrintErrln("Error:", err)
		stop()
		os.Exit(1)
	}
}
