package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/ytdlp-gui/internal/engine"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// Styles with adaptive colors for light/dark backgrounds
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"}).
			MarginLeft(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "9"}).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "34", Dark: "10"})

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "205"})

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"}).
			MarginTop(1)
)

// Format choice captions shown next to the toggle.
var formatCaptions = map[model.FormatChoice]string{
	model.FormatBest:   "best video+audio",
	model.FormatAudio:  "audio only",
	model.FormatCustom: "custom expression",
}

const logTailLines = 8

// View renders the download screen
func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("ytdlp-gui") + "\n\n")

	labels := [fieldCount]string{"URLs", "Output", "Custom", "Extra"}
	for i := range m.inputs {
		b.WriteString(fmt.Sprintf(" %s  %s\n", labelStyle.Render(fmt.Sprintf("%-7s", labels[i])), m.inputs[i].View()))
	}

	b.WriteString(fmt.Sprintf("\n %s %s   %s %s   %s %v   %s %v\n",
		labelStyle.Render("format:"), formatCaptions[m.formatChoice],
		labelStyle.Render("quality:"), m.qualities[m.qualityIdx],
		labelStyle.Render("subtitles:"), m.subtitles,
		labelStyle.Render("metadata:"), m.metadata,
	))

	b.WriteString("\n " + m.prog.View() + "\n")
	b.WriteString(" " + statusStyle.Render(m.status) + "\n")

	if m.errText != "" {
		b.WriteString(" " + errorStyle.Render("Error: "+m.errText) + "\n")
	}
	if m.loading {
		b.WriteString(" " + m.spinner.View() + " Expanding playlists…\n")
	}

	if len(m.logTail) > 0 {
		b.WriteString("\n")
		tail := m.logTail
		if len(tail) > logTailLines {
			tail = tail[len(tail)-logTailLines:]
		}
		for _, line := range tail {
			b.WriteString(" " + logStyle.Render(line) + "\n")
		}
	}

	b.WriteString(helpStyle.Render(
		" enter start · esc cancel/quit · tab field · ctrl+f format · ctrl+r quality ·\n" +
			" ctrl+s subtitles · ctrl+e metadata · ctrl+p expand playlists · ctrl+c quit"))
	b.WriteString("\n")

	return b.String()
}

// progressLine builds the one-line status for a progress snapshot.
func progressLine(snap model.ProgressSnapshot) string {
	parts := []string{model.RunStatusDownloading.String()}
	if snap.Status == engine.StatusFinished {
		parts[0] = "Post-processing"
	}
	if snap.Percent != nil {
		parts = append(parts, fmt.Sprintf("%.1f%%", *snap.Percent))
	}
	if speed := model.FormatSpeed(snap.Speed); speed != "" {
		parts = append(parts, speed)
	}
	if eta := model.FormatETA(snap.ETA); eta != "" {
		parts = append(parts, "ETA "+eta)
	}
	if snap.Filename != "" {
		parts = append(parts, snap.Filename)
	}
	return strings.Join(parts, "  ")
}
