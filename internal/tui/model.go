package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Input field indexes
const (
	fieldURL = iota
	fieldOutputDir
	fieldCustomFormat
	fieldAdvanced
	fieldCount
)

// Buffered so worker callbacks never block on a slow terminal.
const eventBufferSize = 64

// MaxLogLines caps the in-memory log tail.
const MaxLogLines = 200

// Model is the Bubbletea model for the download screen
type Model struct {
	// Dependencies
	svc      *download.Service
	expander *platform.PlaylistExpander

	// Components
	inputs  [fieldCount]textinput.Model
	prog    progress.Model
	spinner spinner.Model

	// Form state
	focused      int
	formatChoice model.FormatChoice
	qualityIdx   int
	qualities    []string
	subtitles    bool
	metadata     bool

	// Run state
	handle  *download.Handle
	events  chan tea.Msg
	percent float64
	status  string
	logTail []string

	// UI state
	width    int
	loading  bool
	quitting bool
	errText  string
}

// NewModel creates the download TUI model, pre-filled from saved settings.
func NewModel(svc *download.Service, initial model.Settings) Model {
	var inputs [fieldCount]textinput.Model

	url := textinput.New()
	url.Placeholder = "Video URL (commas separate several)"
	url.Focus()
	url.CharLimit = 0
	url.Width = 70
	inputs[fieldURL] = url

	out := textinput.New()
	out.Placeholder = "Output directory"
	out.SetValue(initial.OutputDir)
	out.Width = 70
	inputs[fieldOutputDir] = out

	custom := textinput.New()
	custom.Placeholder = "Custom format (used when format mode is custom)"
	custom.SetValue(initial.CustomFormat)
	custom.Width = 70
	inputs[fieldCustomFormat] = custom

	adv := textinput.New()
	adv.Placeholder = "Advanced engine flags"
	adv.SetValue(initial.AdvancedOptions)
	adv.Width = 70
	inputs[fieldAdvanced] = adv

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	qualities := model.QualityLabels()
	qualityIdx := 0
	for i, q := range qualities {
		if q == initial.Quality {
			qualityIdx = i
			break
		}
	}

	return Model{
		svc:          svc,
		expander:     platform.NewPlaylistExpander(),
		inputs:       inputs,
		prog:         progress.New(progress.WithDefaultGradient()),
		spinner:      s,
		formatChoice: initial.FormatChoice,
		qualityIdx:   qualityIdx,
		qualities:    qualities,
		subtitles:    initial.Subtitles,
		metadata:     initial.EmbedMetadata,
		events:       make(chan tea.Msg, eventBufferSize),
		status:       model.RunStatusIdle.String(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// settings assembles a settings value from the form state.
func (m Model) settings() model.Settings {
	return model.Settings{
		URLs:            m.inputs[fieldURL].Value(),
		OutputDir:       m.inputs[fieldOutputDir].Value(),
		FormatChoice:    m.formatChoice,
		CustomFormat:    m.inputs[fieldCustomFormat].Value(),
		Quality:         m.qualities[m.qualityIdx],
		Subtitles:       m.subtitles,
		EmbedMetadata:   m.metadata,
		AdvancedOptions: m.inputs[fieldAdvanced].Value(),
	}
}

// running reports whether a download is in flight.
func (m Model) running() bool {
	return m.handle != nil
}
