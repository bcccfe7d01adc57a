package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yammut/guacplay/internal/i18n"
	"github.com/yammut/guacplay/internal/player"
	"github.com/yammut/guacplay/internal/playertime"
	"github.com/yammut/guacplay/internal/recording"
	"github.com/yammut/guacplay/internal/tui"
)

type playOptions struct {
	speed    float64
	tick     time.Duration
	seekStep time.Duration
	noTUI    bool
}

func newPlayCommand(root *rootOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play <recording>",
		Short: i18n.T("play.short"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg.PlayerConfig()
			if cmd.Flags().Changed("speed") {
				cfg.Speed = opts.speed
			}
			if cmd.Flags().Changed("tick") {
				cfg.Tick = opts.tick
			}
			if cmd.Flags().Changed("seek-step") {
				cfg.SeekStep = opts.seekStep
			}
			if !(cfg.Speed > 0) {
				return errors.New(i18n.T("err.invalidSpeed"))
			}

			rec, err := recording.Open(args[0])
			if err != nil {
				return err
			}
			// The interactive view keeps playback alive at the end so that
			// seeking back resumes it.
			cfg.HoldAtEnd = !opts.noTUI
			controller, err := player.NewController(cfg, rec)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if opts.noTUI {
				return playHeadless(ctx, cmd.OutOrStdout(), controller)
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			errCh := make(chan error, 1)
			go func() { errCh <- controller.Run(ctx) }()

			if err := tui.Run(ctx, cancel, filepath.Base(args[0]), controller); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			cancel()
			if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.speed, "speed", player.DefaultSpeed, i18n.T("play.flag.speed"))
	cmd.Flags().DurationVar(&opts.tick, "tick", player.DefaultTick, i18n.T("play.flag.tick"))
	cmd.Flags().DurationVar(&opts.seekStep, "seek-step", player.DefaultSeekStep, i18n.T("play.flag.seekStep"))
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, i18n.T("play.flag.noTUI"))
	return cmd
}

// playHeadless runs the controller and prints one line per progress event.
func playHeadless(ctx context.Context, w io.Writer, controller *player.Controller) error {
	duration := controller.Snapshot().Duration

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return controller.Run(ctx)
	})
	g.Go(func() error {
		for ev := range controller.Events() {
			switch ev.Type {
			case player.EventTypeProgress, player.EventTypeSeek, player.EventTypeDone:
				fmt.Fprintf(w, "%s / %s\n", playertime.FormatDuration(ev.Position), duration)
			}
		}
		return nil
	})
	return g.Wait()
}
