package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yammut/guacplay/internal/i18n"
	"github.com/yammut/guacplay/internal/player"
)

const defaultBarWidth = 40

type eventMsg struct {
	ev player.Event
}

type doneMsg struct{}

type model struct {
	ctx    context.Context
	cancel context.CancelFunc

	title      string
	controller *player.Controller
	snapshot   *player.Snapshot

	width int
	err   error

	styles styles
}

type styles struct {
	title  lipgloss.Style
	time   lipgloss.Style
	filled lipgloss.Style
	empty  lipgloss.Style
	muted  lipgloss.Style
}

func newModel(ctx context.Context, cancel context.CancelFunc, title string, controller *player.Controller) *model {
	return &model{
		ctx:        ctx,
		cancel:     cancel,
		title:      title,
		controller: controller,
		styles: styles{
			title:  lipgloss.NewStyle().Bold(true),
			time:   lipgloss.NewStyle().Bold(true),
			filled: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		},
	}
}

func (m *model) Init() tea.Cmd {
	return waitForEvent(m.controller.Events())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "p":
			m.controller.TogglePause()
		case "left", "h":
			m.controller.Seek(-m.controller.SeekStep())
		case "right", "l":
			m.controller.Seek(m.controller.SeekStep())
		case "home":
			m.controller.SeekTo(0)
		case "q", "esc", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		default:
			return m, nil
		}
		m.snapshot = m.controller.Snapshot()
		return m, nil
	case eventMsg:
		if msg.ev.Type == player.EventTypeError {
			m.err = msg.ev.Err
		}
		m.snapshot = m.controller.Snapshot()
		return m, waitForEvent(m.controller.Events())
	case doneMsg:
		m.snapshot = m.controller.Snapshot()
		return m, nil
	}
	return m, nil
}

func (m *model) View() string {
	if m.snapshot == nil {
		m.snapshot = m.controller.Snapshot()
	}
	s := m.snapshot

	state := i18n.T("tui.playing")
	switch {
	case s.Done:
		state = i18n.T("tui.done")
	case s.Paused:
		state = i18n.T("tui.paused")
	}
	status := []string{
		state,
		i18n.Tf("tui.frame", map[string]interface{}{"Frame": s.Frame + 1, "Frames": s.Frames}),
		i18n.Tf("tui.speed", map[string]interface{}{"Speed": s.Speed}),
	}
	if m.err != nil {
		status = append(status, fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.time.Render(s.Position + " / " + s.Duration))
	b.WriteString("  ")
	b.WriteString(m.progressBar(s.Percent))
	b.WriteString("\n")
	b.WriteString(strings.Join(status, "  "))
	b.WriteString("\n\n")
	b.WriteString(m.styles.muted.Render(i18n.T("tui.help")))
	b.WriteString("\n")
	return b.String()
}

func (m *model) progressBar(percent float64) string {
	width := barWidth(m.width)
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return m.styles.filled.Render(strings.Repeat("█", filled)) +
		m.styles.empty.Render(strings.Repeat("░", width-filled))
}

// barWidth leaves room for the time label on the same line.
func barWidth(termWidth int) int {
	if termWidth <= 0 {
		return defaultBarWidth
	}
	return max(10, termWidth-len("000:00:00:00 / 000:00:00:00")-4)
}

func waitForEvent(ch <-chan player.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return doneMsg{}
		}
		return eventMsg{ev: ev}
	}
}
