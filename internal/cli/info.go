package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yammut/guacplay/internal/i18n"
	"github.com/yammut/guacplay/internal/recording"
)

func newInfoCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <recording>",
		Short: i18n.T("info.short"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recording.Open(args[0])
			if err != nil {
				return err
			}

			summary := rec.Summary()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return renderSummary(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, i18n.T("info.flag.json"))
	return cmd
}

func renderSummary(out io.Writer, s *recording.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s:\t%s\n", i18n.T("info.duration"), s.Duration)
	fmt.Fprintf(w, "%s:\t%d\n", i18n.T("info.frames"), s.Frames)
	fmt.Fprintf(w, "%s:\t%d\n", i18n.T("info.instructions"), s.Instructions)
	fmt.Fprintf(w, "%s:\n", i18n.T("info.opcodes"))

	opcodes := make([]string, 0, len(s.Opcodes))
	for op := range s.Opcodes {
		opcodes = append(opcodes, op)
	}
	sort.Strings(opcodes)
	for _, op := range opcodes {
		fmt.Fprintf(w, "  %s\t%d\n", op, s.Opcodes[op])
	}
	return w.Flush()
}
