package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/time/rate"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/engine"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Format choice labels shown in the radio group
const (
	LabelFormatBest   = "Best (video+audio)"
	LabelFormatAudio  = "Audio only"
	LabelFormatCustom = "Custom format"
)

// UI constants
const (
	// ProgressRedrawsPerSecond bounds how often downloading events redraw
	// the bar; intermediate events are dropped, terminal ones never are.
	ProgressRedrawsPerSecond = 8

	// MaxLogLines caps the log widget so very chatty runs stay responsive.
	MaxLogLines = 500
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window
	svc    *download.Service
	cfg    *config.Settings

	urlEntry      *widget.Entry
	outputEntry   *widget.Entry
	formatRadio   *widget.RadioGroup
	customEntry   *widget.Entry
	qualitySelect *widget.Select
	subsCheck     *widget.Check
	metaCheck     *widget.Check
	advancedEntry *widget.Entry

	downloadBtn *widget.Button
	cancelBtn   *widget.Button
	statusLabel *widget.Label
	progressBar *widget.ProgressBar
	logView     *widget.Entry

	expander *platform.PlaylistExpander
	limiter  *rate.Limiter

	mu       sync.Mutex
	handle   *download.Handle
	logLines []string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, svc *download.Service) *RootUI {
	ui := &RootUI{
		window:   window,
		svc:      svc,
		cfg:      config.NewSettings(app),
		expander: platform.NewPlaylistExpander(),
		limiter:  rate.NewLimiter(rate.Limit(ProgressRedrawsPerSecond), 1),
	}
	ui.setupUI()
	ui.applySettings(ui.cfg.LoadDownloadSettings())
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder("Video URLs, one per line (commas work too)")
	ui.urlEntry.SetMinRowsVisible(3)

	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetPlaceHolder("Output directory (engine default if empty)")
	browseBtn := widget.NewButton("Browse…", ui.onBrowseOutputDir)
	openBtn := widget.NewButton("Open", func() {
		if err := platform.OpenFolder(strings.TrimSpace(ui.outputEntry.Text)); err != nil {
			ui.appendLog("Cannot open folder: " + err.Error())
		}
	})

	ui.customEntry = widget.NewEntry()
	ui.customEntry.SetPlaceHolder("e.g. bv*[height<=720]+ba")
	ui.customEntry.Disable()

	ui.qualitySelect = widget.NewSelect(model.QualityLabels(), nil)
	ui.qualitySelect.SetSelected(model.QualityBestAvailable)

	ui.formatRadio = widget.NewRadioGroup(
		[]string{LabelFormatBest, LabelFormatAudio, LabelFormatCustom},
		func(selected string) {
			switch selected {
			case LabelFormatCustom:
				ui.customEntry.Enable()
				ui.qualitySelect.Disable()
			case LabelFormatAudio:
				ui.customEntry.Disable()
				ui.qualitySelect.Disable()
			default:
				ui.customEntry.Disable()
				ui.qualitySelect.Enable()
			}
		},
	)
	ui.formatRadio.SetSelected(LabelFormatBest)

	ui.subsCheck = widget.NewCheck("Download subtitles (all languages)", nil)
	ui.metaCheck = widget.NewCheck("Embed metadata and thumbnail", nil)

	ui.advancedEntry = widget.NewEntry()
	ui.advancedEntry.SetPlaceHolder("Extra engine flags, e.g. --limit-rate 10M")

	expandBtn := widget.NewButton("Expand playlists", ui.onExpandPlaylists)

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton("Cancel", ui.onCancelClick)
	ui.cancelBtn.Disable()

	ui.statusLabel = widget.NewLabel(model.RunStatusIdle.String())
	ui.progressBar = widget.NewProgressBar()

	ui.logView = widget.NewMultiLineEntry()
	ui.logView.Wrapping = fyne.TextWrapWord
	clearBtn := widget.NewButton("Clear log", func() {
		ui.mu.Lock()
		ui.logLines = nil
		ui.mu.Unlock()
		ui.logView.SetText("")
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("URLs", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, expandBtn, ui.urlEntry),
		widget.NewLabelWithStyle("Output", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, openBtn), ui.outputEntry),
		widget.NewLabelWithStyle("Format", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ui.formatRadio,
		container.NewBorder(nil, nil, widget.NewLabel("Quality"), nil, ui.qualitySelect),
		ui.customEntry,
		ui.subsCheck,
		ui.metaCheck,
		widget.NewLabelWithStyle("Advanced options", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ui.advancedEntry,
		container.NewHBox(ui.downloadBtn, ui.cancelBtn, clearBtn),
		ui.statusLabel,
		ui.progressBar,
	)

	ui.window.SetContent(container.NewBorder(form, nil, nil, nil, ui.logView))
}

// applySettings fills the form from persisted settings.
func (ui *RootUI) applySettings(s model.Settings) {
	ui.outputEntry.SetText(s.OutputDir)
	switch s.FormatChoice {
	case model.FormatAudio:
		ui.formatRadio.SetSelected(LabelFormatAudio)
	case model.FormatCustom:
		ui.formatRadio.SetSelected(LabelFormatCustom)
	default:
		ui.formatRadio.SetSelected(LabelFormatBest)
	}
	ui.customEntry.SetText(s.CustomFormat)
	ui.qualitySelect.SetSelected(s.Quality)
	ui.subsCheck.SetChecked(s.Subtitles)
	ui.metaCheck.SetChecked(s.EmbedMetadata)
	ui.advancedEntry.SetText(s.AdvancedOptions)
}

// collectSettings assembles an immutable settings value from the form.
func (ui *RootUI) collectSettings() model.Settings {
	choice := model.FormatBest
	switch ui.formatRadio.Selected {
	case LabelFormatAudio:
		choice = model.FormatAudio
	case LabelFormatCustom:
		choice = model.FormatCustom
	}
	return model.Settings{
		URLs:            ui.urlEntry.Text,
		OutputDir:       strings.TrimSpace(ui.outputEntry.Text),
		FormatChoice:    choice,
		CustomFormat:    ui.customEntry.Text,
		Quality:         ui.qualitySelect.Selected,
		Subtitles:       ui.subsCheck.Checked,
		EmbedMetadata:   ui.metaCheck.Checked,
		AdvancedOptions: ui.advancedEntry.Text,
	}
}

// onDownloadClick starts one download run with the current form state.
func (ui *RootUI) onDownloadClick() {
	ui.mu.Lock()
	if ui.handle != nil {
		ui.mu.Unlock()
		ui.appendLog("A download is already running.")
		return
	}
	ui.mu.Unlock()

	settings := ui.collectSettings()
	ui.cfg.SaveDownloadSettings(settings)

	handle, err := ui.svc.Start(settings, download.Callbacks{
		Log:        ui.appendLog,
		Progress:   ui.onProgress,
		Status:     ui.setStatus,
		Completion: ui.onCompletion,
	})
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ui.mu.Lock()
	ui.handle = handle
	ui.mu.Unlock()

	ui.downloadBtn.Disable()
	ui.cancelBtn.Enable()
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText(model.RunStatusPreparing.String())
}

// onCancelClick requests cooperative cancellation of the active run.
func (ui *RootUI) onCancelClick() {
	ui.mu.Lock()
	handle := ui.handle
	ui.mu.Unlock()
	if handle == nil {
		return
	}
	handle.Cancel()
	ui.statusLabel.SetText("Cancelling…")
	ui.appendLog("Cancellation requested; stopping at the next progress report.")
}

// onBrowseOutputDir lets the user pick the output directory.
func (ui *RootUI) onBrowseOutputDir() {
	dialog.ShowFolderOpen(func(lu fyne.ListableURI, err error) {
		if err != nil || lu == nil {
			return
		}
		ui.outputEntry.SetText(lu.Path())
	}, ui.window)
}

// onExpandPlaylists replaces playlist URLs in the form with the individual
// video URLs they contain.
func (ui *RootUI) onExpandPlaylists() {
	urls := model.SplitURLs(ui.urlEntry.Text)
	if len(urls) == 0 {
		return
	}
	ui.appendLog("Expanding playlist URLs…")
	go func() {
		var out []string
		for _, u := range urls {
			if !platform.IsPlaylistURL(u) {
				out = append(out, u)
				continue
			}
			videos, err := ui.expander.Expand(context.Background(), u)
			if err != nil {
				ui.appendLog(fmt.Sprintf("Could not expand %s: %v", u, err))
				out = append(out, u)
				continue
			}
			ui.appendLog(fmt.Sprintf("Expanded playlist into %d videos.", len(videos)))
			out = append(out, videos...)
		}
		fyne.Do(func() {
			ui.urlEntry.SetText(strings.Join(out, "\n"))
		})
	}()
}

// onProgress renders one raw engine update. Redraws are throttled while
// downloading so a fast engine cannot flood the event loop.
func (ui *RootUI) onProgress(u engine.ProgressUpdate) {
	if u.Status == engine.StatusDownloading && !ui.limiter.Allow() {
		return
	}
	snap := model.Summarize(u)
	fyne.Do(func() {
		if snap.Percent != nil {
			ui.progressBar.SetValue(*snap.Percent / 100)
		}
		ui.statusLabel.SetText(progressText(snap))
	})
}

// progressText builds the one-line status shown under the form.
func progressText(snap model.ProgressSnapshot) string {
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

// setStatus shows an informational status message.
func (ui *RootUI) setStatus(msg string) {
	fyne.Do(func() {
		ui.statusLabel.SetText(msg)
	})
}

// appendLog adds one line to the log widget, trimming old lines.
func (ui *RootUI) appendLog(msg string) {
	ui.mu.Lock()
	ui.logLines = append(ui.logLines, msg)
	if len(ui.logLines) > MaxLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-MaxLogLines:]
	}
	text := strings.Join(ui.logLines, "\n")
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.logView.SetText(text)
		ui.logView.CursorRow = len(ui.logLines)
	})
}

// onCompletion handles the single terminal outcome of a run.
func (ui *RootUI) onCompletion(ok bool, msg string) {
	ui.mu.Lock()
	ui.handle = nil
	ui.mu.Unlock()

	ui.appendLog(msg)
	fyne.Do(func() {
		ui.downloadBtn.Enable()
		ui.cancelBtn.Disable()
		switch {
		case ok:
			ui.progressBar.SetValue(1)
			ui.statusLabel.SetText(model.RunStatusCompleted.String())
		case msg == download.MsgCancelled:
			ui.statusLabel.SetText(model.RunStatusCancelled.String())
		default:
			ui.statusLabel.SetText(model.RunStatusError.String() + ": " + msg)
		}
	})
}
