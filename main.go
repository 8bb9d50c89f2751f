package main

import (
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/engine"
	"github.com/ytget/ytdlp-gui/internal/history"
	"github.com/ytget/ytdlp-gui/internal/tui"
	"github.com/ytget/ytdlp-gui/internal/ui"
	"github.com/ytget/ytdlp-gui/pkg/logger"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytdlp-gui"
	AppName = "ytdlp-gui"

	WindowWidth  = 760
	WindowHeight = 640
)

func main() {
	fileCfg, err := config.LoadFileConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(fileCfg.Logging.Level)
	defer log.Sync()
	log.Info("starting", zap.String("app", AppName), zap.String("version", version))

	drv := engine.NewDriver(fileCfg.Engine.Binary, log)
	if err := drv.CheckInstalled(); err != nil {
		log.Warn("engine binary not found", zap.Error(err))
	}

	svc := download.NewService(drv, log)
	if path := fileCfg.HistoryPath(); path != "" {
		store, err := history.Open(path)
		if err != nil {
			log.Warn("history store unavailable", zap.Error(err))
		} else {
			defer store.Close()
			svc.SetHistory(store)
		}
	}

	if hasDisplay() {
		runDesktop(svc)
		return
	}

	log.Info("no display detected, using terminal front-end")
	if err := runTerminal(svc, fileCfg); err != nil {
		log.Error("terminal front-end failed", zap.Error(err))
		os.Exit(1)
	}
}

// runDesktop starts the Fyne front-end.
func runDesktop(svc *download.Service) {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.NewRootUI(myWindow, myApp, svc)

	myWindow.ShowAndRun()
}

// runTerminal starts the Bubbletea front-end.
func runTerminal(svc *download.Service, fileCfg *config.FileConfig) error {
	m := tui.NewModel(svc, fileCfg.DownloadSettings())
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// hasDisplay reports whether a graphical session is available. macOS and
// Windows always have one; on other systems an X11 or Wayland socket must
// be advertised in the environment.
func hasDisplay() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
