package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yammut/guacplay/internal/i18n"
	"github.com/yammut/guacplay/internal/playertime"
)

type formatted struct {
	Ms        *float64 `json:"ms"`
	Formatted string   `json:"formatted"`
}

func newFormatCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "format <ms>...",
		Short: i18n.T("format.short"),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]formatted, 0, len(args))
			for _, arg := range args {
				ms, err := parseMillis(arg)
				if err != nil {
					return err
				}
				out = append(out, formatted{Ms: ms, Formatted: playertime.FormatOptional(ms)})
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			for _, f := range out {
				fmt.Fprintln(w, f.Formatted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, i18n.T("format.flag.json"))
	return cmd
}

// parseMillis parses a millisecond count. Missing values (empty, "null",
// "undefined") yield nil.
func parseMillis(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "undefined":
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New(i18n.Tf("err.invalidDuration", map[string]interface{}{"Value": s}))
	}
	if v < 0 {
		return nil, errors.New(i18n.Tf("err.negativeDuration", map[string]interface{}{"Value": s}))
	}
	return &v, nil
}
