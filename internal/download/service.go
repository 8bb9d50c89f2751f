package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/ytdlp-gui/internal/engine"
	"github.com/ytget/ytdlp-gui/internal/history"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// Terminal completion messages.
const (
	MsgCompleted = "Completed"
	MsgCancelled = "Cancelled"
)

// StatusPreparing is the single informational status message emitted
// before the engine invocation begins.
const StatusPreparing = "Preparing download…"

// Service coordinates download runs against one engine instance. Each run
// gets its own goroutine and cancellation flag; the Service itself holds no
// per-run state, so limiting to one active download at a time is the
// front-end's job.
type Service struct {
	eng     engine.Engine
	log     *zap.Logger
	history *history.Store
}

// NewService creates a new download service.
func NewService(eng engine.Engine, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{eng: eng, log: log}
}

// SetHistory attaches an optional store that records every finished run.
func (s *Service) SetHistory(store *history.Store) {
	s.history = store
}

// Handle pairs the write-once cancellation flag with the background run.
// It is discarded once completion has been observed.
type Handle struct {
	ID string

	cancel atomic.Bool
	done   chan struct{}
}

// Cancel requests cooperative cancellation. It never blocks; repeated calls
// and calls after completion are no-ops. The run stops at the next progress
// event the engine reports.
func (h *Handle) Cancel() {
	h.cancel.Store(true)
}

// Done is closed after the completion callback has fired.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the run has completed.
func (h *Handle) Wait() {
	<-h.done
}

// Start validates and translates the settings synchronously, then launches
// the engine run on its own goroutine and returns immediately. A
// ValidationError comes back directly and no goroutine is started. Exactly
// one Completion callback follows per returned Handle: (true, "Completed"),
// (false, "Cancelled"), or (false, <error message>).
func (s *Service) Start(settings model.Settings, cbs Callbacks) (*Handle, error) {
	cbs = cbs.normalize()

	h := &Handle{
		ID:   "run-" + uuid.NewString(),
		done: make(chan struct{}),
	}

	opts, urls, err := prepare(settings, s.eng, cbs, &h.cancel)
	if err != nil {
		s.log.Warn("option translation failed", zap.Error(err))
		return nil, err
	}

	s.log.Info("starting download",
		zap.String("run", h.ID),
		zap.Int("urls", len(urls)),
		zap.String("format", opts.Format))

	started := time.Now()
	go func() {
		defer close(h.done)
		ok, msg := s.runOnce(opts, urls, cbs)
		s.record(h.ID, settings, urls, ok, msg, started)
		cbs.Completion(ok, msg)
	}()
	return h, nil
}

// runOnce performs the blocking engine invocation and maps its outcome to
// the terminal (ok, message) pair. A panic in the engine or a callback is
// converted into a failure outcome instead of crashing the process.
func (s *Service) runOnce(opts *engine.Options, urls []string, cbs Callbacks) (ok bool, msg string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("download run panicked", zap.Any("panic", r))
			ok, msg = false, fmt.Sprintf("internal error: %v", r)
		}
	}()

	cbs.Status(StatusPreparing)

	err := s.eng.Download(context.Background(), opts, urls)
	switch {
	case err == nil:
		return true, MsgCompleted
	case errors.Is(err, engine.ErrCancelled):
		return false, MsgCancelled
	default:
		return false, err.Error()
	}
}

// record persists the run outcome when a history store is attached.
func (s *Service) record(id string, settings model.Settings, urls []string, ok bool, msg string, started time.Time) {
	if s.history == nil {
		return
	}
	status := model.RunStatusError
	switch {
	case ok:
		status = model.RunStatusCompleted
	case msg == MsgCancelled:
		status = model.RunStatusCancelled
	}
	rec := history.Record{
		ID:         id,
		URLs:       strings.Join(urls, "\n"),
		Format:     model.BuildFormat(settings),
		Status:     status.String(),
		Message:    msg,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if err := s.history.Add(rec); err != nil {
		s.log.Warn("failed to record run", zap.String("run", id), zap.Error(err))
	}
}
