// Command ytdlp-gui is the headless companion to the desktop app: it runs
// downloads, inspects the run history, and reports the engine version
// without opening a window.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/engine"
	"github.com/ytget/ytdlp-gui/internal/history"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
	"github.com/ytget/ytdlp-gui/pkg/logger"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "ytdlp-gui",
		Short: "Media downloader built on yt-dlp",
		Long:  `Headless interface to the ytdlp-gui download engine: run downloads, list past runs, and check the engine installation.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $HOME/.ytdlp-gui/config.yaml)")

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the file config, exiting on a malformed file.
func loadConfig() *config.FileConfig {
	cfg, err := config.LoadFileConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

var downloadCmd = &cobra.Command{
	Use:   "download [urls...]",
	Short: "Download one or more URLs",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		settings := cfg.DownloadSettings()
		settings.URLs = strings.Join(args, "\n")

		if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
			settings.OutputDir = v
		}
		quality, _ := cmd.Flags().GetString("quality")
		format, _ := cmd.Flags().GetString("format")
		audio, _ := cmd.Flags().GetBool("audio")
		settings = applySelectionFlags(settings, quality, format, audio)
		if v, _ := cmd.Flags().GetBool("subs"); v {
			settings.Subtitles = true
		}
		if v, _ := cmd.Flags().GetBool("metadata"); v {
			settings.EmbedMetadata = true
		}
		if v, _ := cmd.Flags().GetString("extra"); v != "" {
			settings.AdvancedOptions = v
		}

		if v, _ := cmd.Flags().GetBool("expand-playlists"); v {
			settings.URLs = expandPlaylists(settings.URLs)
		}

		log := logger.New(cfg.Logging.Level)
		defer log.Sync()

		svc := download.NewService(engine.NewDriver(cfg.Engine.Binary, log), log)
		if path := cfg.HistoryPath(); path != "" {
			if store, err := history.Open(path); err == nil {
				defer store.Close()
				svc.SetHistory(store)
			} else {
				log.Warn("history store unavailable", zap.Error(err))
			}
		}

		exitCode := 0
		handle, err := svc.Start(settings, download.Callbacks{
			Log: func(line string) { fmt.Println(line) },
			Progress: func(u engine.ProgressUpdate) {
				snap := model.Summarize(u)
				if snap.Percent != nil {
					fmt.Printf("\r%6.1f%%  %s  %s  ", *snap.Percent,
						model.FormatSpeed(snap.Speed), model.FormatETA(snap.ETA))
				}
			},
			Status: func(text string) { fmt.Println(text) },
			Completion: func(ok bool, msg string) {
				fmt.Println()
				fmt.Println(msg)
				if !ok {
					exitCode = 1
				}
			},
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		handle.Wait()
		os.Exit(exitCode)
	},
}

// applySelectionFlags folds the format-selection flags into the settings.
// --audio applies last so it wins over --quality and --format when flags
// are combined.
func applySelectionFlags(settings model.Settings, quality, format string, audio bool) model.Settings {
	if quality != "" {
		settings.FormatChoice = model.FormatBest
		settings.Quality = quality
	}
	if format != "" {
		settings.FormatChoice = model.FormatCustom
		settings.CustomFormat = format
	}
	if audio {
		settings.FormatChoice = model.FormatAudio
	}
	return settings
}

// expandPlaylists replaces playlist URLs with the videos they contain,
// keeping non-playlist URLs as-is.
func expandPlaylists(raw string) string {
	expander := platform.NewPlaylistExpander()
	var out []string
	for _, u := range model.SplitURLs(raw) {
		if !platform.IsPlaylistURL(u) {
			out = append(out, u)
			continue
		}
		videos, err := expander.Expand(context.Background(), u)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not expand %s: %v\n", u, err)
			out = append(out, u)
			continue
		}
		out = append(out, videos...)
	}
	return strings.Join(out, "\n")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent download runs",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		path := cfg.HistoryPath()
		if path == "" {
			fmt.Fprintln(os.Stderr, "Error: history recording is disabled")
			os.Exit(1)
		}

		store, err := history.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		if clear, _ := cmd.Flags().GetBool("clear"); clear {
			if err := store.Clear(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("History cleared")
			return
		}

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := store.Recent(limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tFINISHED\tURLS")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				truncate(r.ID, 12),
				r.Status,
				r.FinishedAt.Format("2006-01-02 15:04"),
				truncate(strings.ReplaceAll(r.URLs, "\n", " "), 60))
		}
		w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show app and engine versions",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		fmt.Printf("ytdlp-gui v%s\n", version)

		drv := engine.NewDriver(cfg.Engine.Binary, nil)
		if err := drv.CheckInstalled(); err != nil {
			fmt.Fprintf(os.Stderr, "engine: %v\n", err)
			os.Exit(1)
		}
		engineVersion, err := drv.Version(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "engine: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("yt-dlp %s\n", engineVersion)
	},
}

func init() {
	downloadCmd.Flags().StringP("output-dir", "P", "", "Output directory")
	downloadCmd.Flags().StringP("format", "f", "", "Custom format expression")
	downloadCmd.Flags().BoolP("audio", "a", false, "Audio only")
	downloadCmd.Flags().StringP("quality", "q", "", "Quality cap (e.g. 1080p)")
	downloadCmd.Flags().Bool("subs", false, "Download subtitles")
	downloadCmd.Flags().Bool("metadata", false, "Embed metadata and thumbnail")
	downloadCmd.Flags().String("extra", "", "Extra engine flags")
	downloadCmd.Flags().Bool("expand-playlists", false, "Expand playlist URLs before downloading")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().Bool("clear", false, "Delete all recorded runs")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
