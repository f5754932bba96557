// Package tui shows live progress while an animation encodes.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// FrameMsg reports one encoded frame.
type FrameMsg struct {
	Frame int
	Total int
}

// DoneMsg reports the end of encoding.
type DoneMsg struct {
	Err error
}

type Model struct {
	out   string
	total int

	frame   int
	start   time.Time
	last    time.Time
	rates   []float64
	done    bool
	aborted bool
	err     error

	msgs <-chan tea.Msg
}

func NewModel(out string, total int, msgs <-chan tea.Msg) Model {
	now := time.Now()
	return Model{out: out, total: total, start: now, last: now, msgs: msgs}
}

func (m Model) Aborted() bool { return m.aborted }
func (m Model) Err() error    { return m.err }

// Drain consumes messages in the background until DoneMsg arrives.
// Once the program stops listening (abort, program error) the encoder
// would otherwise block forever on its next channel send.
func Drain(msgs <-chan tea.Msg) {
	go func() {
		for {
			if _, ok := (<-msgs).(DoneMsg); ok {
				return
			}
		}
	}()
}

func (m Model) Init() tea.Cmd {
	return m.wait()
}

func (m Model) wait() tea.Cmd {
	return func() tea.Msg { return <-m.msgs }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}

	case FrameMsg:
		now := time.Now()
		if dt := now.Sub(m.last).Seconds(); dt > 0 {
			m.rates = append(m.rates, 1/dt)
			if len(m.rates) > 60 {
				m.rates = m.rates[1:]
			}
		}
		m.last = now
		m.frame = msg.Frame + 1
		return m, m.wait()

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("prism") + dimStyle.Render("  encoding "+m.out) + "\n\n")

	const width = 40
	filled := 0
	if m.total > 0 {
		filled = m.frame * width / m.total
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
	b.WriteString(fmt.Sprintf("  %s %d/%d frames\n", bar, m.frame, m.total))

	elapsed := time.Since(m.start).Round(time.Second)
	b.WriteString(dimStyle.Render(fmt.Sprintf("  elapsed %s", elapsed)) + "\n")

	if len(m.rates) > 1 {
		b.WriteString("\n" + asciigraph.Plot(m.rates,
			asciigraph.Height(5),
			asciigraph.Width(50),
			asciigraph.Caption("frames/sec"),
		) + "\n")
	}

	if m.done {
		if m.err != nil {
			b.WriteString("\n" + errStyle.Render("failed: "+m.err.Error()) + "\n")
		} else {
			b.WriteString("\n" + barStyle.Render("done") + "\n")
		}
	} else {
		b.WriteString("\n" + dimStyle.Render("  q to abort") + "\n")
	}

	return b.String()
}
