package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/engine"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// waitForEvent returns a command that delivers the next worker event.
func waitForEvent(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.errText = ""
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.prog.Width = msg.Width - 8
		if m.prog.Width > 60 {
			m.prog.Width = 60
		}
		return m, nil

	case logMsg:
		m.logTail = append(m.logTail, msg.line)
		if len(m.logTail) > MaxLogLines {
			m.logTail = m.logTail[len(m.logTail)-MaxLogLines:]
		}
		return m, waitForEvent(m.events)

	case statusMsg:
		m.status = msg.text
		return m, waitForEvent(m.events)

	case progressMsg:
		snap := model.Summarize(msg.update)
		m.status = progressLine(snap)
		cmds = append(cmds, waitForEvent(m.events))
		if snap.Percent != nil {
			cmds = append(cmds, m.prog.SetPercent(*snap.Percent/100))
		}
		return m, tea.Batch(cmds...)

	case completionMsg:
		m.handle = nil
		m.logTail = append(m.logTail, msg.message)
		switch {
		case msg.ok:
			m.status = model.RunStatusCompleted.String()
			cmds = append(cmds, m.prog.SetPercent(1))
		case msg.message == download.MsgCancelled:
			m.status = model.RunStatusCancelled.String()
		default:
			m.status = model.RunStatusError.String()
			m.errText = msg.message
		}
		return m, tea.Batch(cmds...)

	case expandedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.inputs[fieldURL].SetValue(strings.Join(msg.urls, ", "))
		return m, nil

	case progress.FrameMsg:
		pm, c := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, c

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))):
		if m.running() {
			m.handle.Cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		if m.running() {
			m.handle.Cancel()
			m.status = "Cancelling…"
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "down"))):
		m.focused = (m.focused + 1) % fieldCount
		m.updateFocus()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
		m.focused--
		if m.focused < 0 {
			m.focused = fieldCount - 1
		}
		m.updateFocus()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+f"))):
		m.formatChoice = nextFormatChoice(m.formatChoice)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+r"))):
		m.qualityIdx = (m.qualityIdx + 1) % len(m.qualities)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
		m.subtitles = !m.subtitles
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+e"))):
		m.metadata = !m.metadata
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+p"))):
		return m.startExpand()

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		return m.startDownload()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// startDownload begins one run with the current form state.
func (m Model) startDownload() (tea.Model, tea.Cmd) {
	if m.running() {
		m.errText = "A download is already running"
		return m, nil
	}

	events := m.events
	handle, err := m.svc.Start(m.settings(), download.Callbacks{
		Log:      func(line string) { events <- logMsg{line: line} },
		Status:   func(text string) { events <- statusMsg{text: text} },
		Progress: func(u engine.ProgressUpdate) { events <- progressMsg{update: u} },
		Completion: func(ok bool, message string) {
			events <- completionMsg{ok: ok, message: message}
		},
	})
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}

	m.handle = handle
	m.status = model.RunStatusPreparing.String()
	return m, tea.Batch(waitForEvent(m.events), m.prog.SetPercent(0))
}

// startExpand replaces playlist URLs with their individual videos.
func (m Model) startExpand() (tea.Model, tea.Cmd) {
	urls := model.SplitURLs(m.inputs[fieldURL].Value())
	if len(urls) == 0 {
		return m, nil
	}
	m.loading = true
	expander := m.expander
	return m, func() tea.Msg {
		var out []string
		for _, u := range urls {
			if !platform.IsPlaylistURL(u) {
				out = append(out, u)
				continue
			}
			videos, err := expander.Expand(context.Background(), u)
			if err != nil {
				return expandedMsg{err: err}
			}
			out = append(out, videos...)
		}
		return expandedMsg{urls: out}
	}
}

// updateFocus moves textinput focus to the selected field.
func (m *Model) updateFocus() {
	for i := range m.inputs {
		if i == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// nextFormatChoice cycles best -> audio -> custom.
func nextFormatChoice(c model.FormatChoice) model.FormatChoice {
	switch c {
	case model.FormatBest:
		return model.FormatAudio
	case model.FormatAudio:
		return model.FormatCustom
	default:
		return model.FormatBest
	}
}
