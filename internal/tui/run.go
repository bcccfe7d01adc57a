package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yammut/guacplay/internal/player"
)

func Run(ctx context.Context, cancel context.CancelFunc, title string, controller *player.Controller) error {
	p := tea.NewProgram(newModel(ctx, cancel, title, controller), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
