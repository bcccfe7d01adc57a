package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yammut/guacplay/internal/config"
	"github.com/yammut/guacplay/internal/i18n"
)

type rootOptions struct {
	lang string
	cfg  config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "guacplay",
		Short:         i18n.T("cmd.short"),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			config.InitLogger(os.Stderr, cfg.SlogLevel())

			lang := cfg.Lang
			if cmd.Flags().Changed("lang") {
				lang = opts.lang
			}
			i18n.SetLanguage(lang)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.lang, "lang", "", i18n.T("cmd.flag.lang"))

	cmd.AddCommand(
		newFormatCommand(),
		newInfoCommand(),
		newPlayCommand(opts),
	)
	return cmd
}
