package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultBinary is the engine executable resolved from PATH.
const DefaultBinary = "yt-dlp"

// Progress lines are rendered by the binary itself via --progress-template,
// so transfer status arrives as exact byte counts instead of scraped
// human-readable text. Filename goes last because it may contain pipes.
const (
	progressPrefix   = "__dlp__|"
	progressTemplate = "download:" + progressPrefix +
		"%(progress.status)s|%(progress.downloaded_bytes)s|%(progress.total_bytes)s|" +
		"%(progress.total_bytes_estimate)s|%(progress.speed)s|%(progress.eta)s|" +
		"%(info.title)s|%(progress.filename)s"
	progressFieldCount = 8
)

// How many trailing engine lines are kept for error reports.
const errorTailLines = 5

// Driver runs downloads through the yt-dlp binary.
type Driver struct {
	bin string
	log *zap.Logger
}

// NewDriver creates a Driver for the given binary path. An empty path
// resolves the default binary from PATH.
func NewDriver(bin string, log *zap.Logger) *Driver {
	if bin == "" {
		bin = DefaultBinary
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{bin: bin, log: log}
}

// ParseOptions delegates to the engine option grammar.
func (d *Driver) ParseOptions(args []string) (*Options, []string, error) {
	return ParseArgs(args)
}

// Download runs one engine invocation and blocks until it completes, is
// cancelled through a progress hook, or fails. The spawned process is torn
// down on every exit path.
func (d *Driver) Download(ctx context.Context, opts *Options, urls []string) error {
	if len(urls) == 0 {
		return errors.New("no URLs to download")
	}

	args := opts.commandArgs()
	args = append(args, "--progress", "--progress-template", progressTemplate)
	args = append(args, urls...)

	cmd := exec.CommandContext(ctx, d.bin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("capture stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("capture stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", d.bin, err)
	}
	d.log.Debug("engine started", zap.String("bin", d.bin), zap.Int("args", len(args)))

	var (
		mu      sync.Mutex
		tail    []string
		hookErr error
		scanErr error
	)
	keepTail := func(line string) {
		mu.Lock()
		defer mu.Unlock()
		tail = append(tail, line)
		if len(tail) > errorTailLines {
			tail = tail[len(tail)-errorTailLines:]
		}
	}

	runHooks := func(u ProgressUpdate) {
		for _, hook := range opts.ProgressHooks {
			if err := hook(u); err != nil {
				mu.Lock()
				if hookErr == nil {
					hookErr = err
				}
				mu.Unlock()
				_ = cmd.Process.Kill()
				return
			}
		}
	}

	// A failed scan must still drain the pipe: the child blocks writing to a
	// full pipe, and an undrained stream would keep Wait from ever returning.
	scanFailed := func(err error, r io.Reader) {
		mu.Lock()
		if scanErr == nil {
			scanErr = err
		}
		mu.Unlock()
		_, _ = io.Copy(io.Discard, r)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sc := bufio.NewScanner(stdout)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			if u, ok := parseProgressLine(line); ok {
				runHooks(u)
				continue
			}
			d.forwardLog(opts.Logger, line)
		}
		if err := sc.Err(); err != nil {
			scanFailed(err, stdout)
		}
	}()
	go func() {
		defer wg.Done()
		sc := bufio.NewScanner(stderr)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			keepTail(line)
			d.forwardLog(opts.Logger, line)
		}
		if err := sc.Err(); err != nil {
			scanFailed(err, stderr)
		}
	}()

	wg.Wait()
	waitErr := cmd.Wait()

	mu.Lock()
	herr, serr := hookErr, scanErr
	msg := strings.TrimSpace(strings.Join(tail, "\n"))
	mu.Unlock()

	if herr != nil {
		if errors.Is(herr, ErrCancelled) {
			return ErrCancelled
		}
		return fmt.Errorf("progress hook failed: %w", herr)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if waitErr != nil {
		if msg != "" {
			return fmt.Errorf("engine failed: %s", msg)
		}
		return fmt.Errorf("engine failed: %w", waitErr)
	}
	if serr != nil {
		return fmt.Errorf("engine output scan failed: %w", serr)
	}
	return nil
}

// forwardLog routes one raw engine line to the injected logger, classified
// by the engine's own severity prefixes.
func (d *Driver) forwardLog(logger Logger, line string) {
	if logger == nil || strings.TrimSpace(line) == "" {
		return
	}
	switch {
	case strings.HasPrefix(line, "WARNING:"):
		logger.Warning(strings.TrimSpace(strings.TrimPrefix(line, "WARNING:")))
	case strings.HasPrefix(line, "ERROR:"):
		logger.Error(strings.TrimSpace(strings.TrimPrefix(line, "ERROR:")))
	default:
		logger.Debug(line)
	}
}

// parseProgressLine decodes one rendered progress-template line.
func parseProgressLine(line string) (ProgressUpdate, bool) {
	if !strings.HasPrefix(line, progressPrefix) {
		return ProgressUpdate{}, false
	}
	fields := strings.SplitN(strings.TrimPrefix(line, progressPrefix), "|", progressFieldCount)
	if len(fields) < progressFieldCount {
		return ProgressUpdate{}, false
	}

	u := ProgressUpdate{
		Status:             fields[0],
		DownloadedBytes:    parseByteField(fields[1]),
		TotalBytes:         parseByteField(fields[2]),
		TotalBytesEstimate: parseByteField(fields[3]),
		Title:              naEmpty(fields[6]),
		Filename:           naEmpty(fields[7]),
	}
	if v, err := strconv.ParseFloat(fields[4], 64); err == nil {
		u.Speed = &v
	}
	if v, err := strconv.ParseFloat(fields[5], 64); err == nil {
		eta := int64(v)
		u.ETA = &eta
	}
	return u, true
}

// parseByteField handles the engine rendering missing counters as "NA" and
// known counters as either integers or floats.
func parseByteField(s string) int64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(v)
}

func naEmpty(s string) string {
	if s == "NA" {
		return ""
	}
	return s
}

// Version reports the installed engine version.
func (d *Driver) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, d.bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s not available: %w", d.bin, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CheckInstalled verifies the engine binary is reachable.
func (d *Driver) CheckInstalled() error {
	if err := exec.Command(d.bin, "--version").Run(); err != nil {
		return fmt.Errorf("%s not found: %w (install: pip install yt-dlp)", d.bin, err)
	}
	return nil
}
