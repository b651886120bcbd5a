package inspectcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatmodel/cmd/chatmodel/settings"
	"github.com/papercomputeco/chatmodel/pkg/llm"
)

const inspectLongDesc string = `Inspect a chat response JSON document.

Prints the primary result, metadata, advisor context keys and the
content hash. Use "-" to read from stdin.

Examples:
  chatmodel inspect response.json
  cat response.json | chatmodel inspect --full -`

const inspectShortDesc string = "Inspect a chat response"

type inspectCommander struct {
	full bool
}

func NewInspectCmd() *cobra.Command {
	cmder := &inspectCommander{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: inspectShortDesc,
		Long:  inspectLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&cmder.full, "full", false, "Print the full response rendering")

	return cmd
}

func (c *inspectCommander) run(_ context.Context, cmd *cobra.Command, path string) error {
	cfg, err := settings.Load(cmd)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	logger := settings.Logger(cmd, cfg)
	defer logger.Sync()

	data, err := settings.ReadInput(cmd, path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	var resp llm.ChatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("could not decode chat response: %w", err)
	}

	logger.Debug("decoded chat response", zap.String("path", path), zap.Object("response", &resp))

	out := cmd.OutOrStdout()
	if c.full {
		fmt.Fprintln(out, resp.String())
		return nil
	}

	printSummary(out, &resp)
	return nil
}

func printSummary(w io.Writer, resp *llm.ChatResponse) {
	md := resp.Metadata()

	fmt.Fprintf(w, "Hash:        %s\n", resp.Hash())
	if md.IsEmpty() {
		fmt.Fprintln(w, "Metadata:    (empty)")
	} else {
		fmt.Fprintf(w, "ID:          %s\n", md.ID)
		fmt.Fprintf(w, "Model:       %s\n", md.Model)
		fmt.Fprintf(w, "Usage:       %d prompt, %d completion, %d total\n",
			md.Usage.PromptTokens, md.Usage.CompletionTokens, md.Usage.Total())
	}

	fmt.Fprintf(w, "Results:     %d\n", len(resp.Results()))
	if g, ok := resp.Result(); ok {
		fmt.Fprintf(w, "Finish:      %s\n", g.Metadata.FinishReason)
		fmt.Fprintf(w, "Content:     %s\n", g.Output.Content)
	} else {
		fmt.Fprintln(w, "Content:     (no result)")
	}
	fmt.Fprintf(w, "Tool calls:  %t\n", resp.HasToolCalls())

	keys := slices.Sorted(maps.Keys(resp.AdvisorContext()))
	fmt.Fprintf(w, "Context:     %s\n", strings.Join(keys, ", "))
}
