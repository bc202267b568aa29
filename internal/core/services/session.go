package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driven"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// Ensure Session implements the interfaces.
var (
	_ driving.FilenameDirectory = (*Session)(nil)
	_ driving.ChunkBrowser      = (*Session)(nil)
	_ driving.ChunkEditor       = (*Session)(nil)
	_ driving.SessionObserver   = (*Session)(nil)
	_ driving.Session           = (*Session)(nil)
)

// refreshBuffer is the capacity of the refresh event channel.
const refreshBuffer = 8

// Session is the browse-and-edit session against a ChunkStore.
// It is safe for concurrent use. Store calls are made outside the lock.
type Session struct {
	mu    sync.Mutex
	state domain.State

	store   driven.ChunkStore
	history driven.HistoryStore

	refreshDelay time.Duration
	timer        *time.Timer
	baseCtx      context.Context
	closed       bool

	refreshes chan driving.RefreshEvent
	now       func() time.Time
}

// NewSession creates a session. A successful edit schedules a refresh
// after refreshDelay.
func NewSession(store driven.ChunkStore, refreshDelay time.Duration) *Session {
	return &Session{
		state:        domain.NewState(),
		store:        store,
		refreshDelay: refreshDelay,
		baseCtx:      context.Background(),
		refreshes:    make(chan driving.RefreshEvent, refreshBuffer),
		now:          time.Now,
	}
}

// SetHistoryStore sets the journal that records submitted edits.
func (s *Session) SetHistoryStore(store driven.HistoryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = store
}

// SetDefaultAction sets the action the edit form starts with.
func (s *Session) SetDefaultAction(action domain.EditAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithEditAction(action)
}

// WithContext sets the context delayed refreshes run under.
// Cancelling it aborts in-flight refreshes.
func (s *Session) WithContext(ctx context.Context) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseCtx = ctx
	return s
}

// Close stops any pending refresh. Later refreshes never fire.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopRefreshLocked()
}

// State returns a copy of the current session state.
func (s *Session) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Refreshes delivers the outcome of each delayed refresh.
func (s *Session) Refreshes() <-chan driving.RefreshEvent {
	return s.refreshes
}

// ListFilenames fetches the document names known to the store.
func (s *Session) ListFilenames(ctx context.Context) (domain.Directory, error) {
	if s.store == nil {
		return domain.Directory{}, domain.ErrNotImplemented
	}

	names, err := s.store.ListFilenames(ctx)
	if err != nil {
		warnIfUnreachable("list filenames", err)
		return domain.Directory{}, fmt.Errorf("list filenames: %w", err)
	}

	logger.Debug("Backend returned %d filenames", len(names))
	return domain.NewDirectory(names), nil
}

// SetFileName updates the filename field. A pending refresh is kept and
// will browse the new value when it fires.
func (s *Session) SetFileName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithFileName(name)
}

// Browse fetches the chunks of fileName.
func (s *Session) Browse(ctx context.Context, fileName string) (domain.BrowseResult, error) {
	if s.store == nil {
		return domain.BrowseResult{}, domain.ErrNotImplemented
	}

	s.mu.Lock()
	next, eff, err := s.state.BeginBrowse(fileName, true)
	if err != nil {
		s.mu.Unlock()
		return domain.BrowseResult{}, err
	}
	s.state = next
	s.stopRefreshLocked()
	s.mu.Unlock()

	logger.Section("Browse")
	return s.scroll(ctx, eff)
}

// scroll executes an EffectScroll and applies its outcome.
func (s *Session) scroll(ctx context.Context, eff domain.Effect) (domain.BrowseResult, error) {
	logger.Debug("Scrolling %q (token %d)", eff.FileName, eff.Token)
	page, err := s.store.Scroll(ctx, eff.FileName)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		warnIfUnreachable("scroll", err)
		next, ok := s.state.FailBrowse(eff.Token, err)
		if !ok {
			logger.Debug("Discarding stale scroll failure (token %d)", eff.Token)
			return domain.BrowseResult{}, domain.ErrStaleResponse
		}
		s.state = next
		return next.Browse(), fmt.Errorf("browse %q: %w", eff.FileName, err)
	}

	next, ok := s.state.CompleteBrowse(eff.Token, page)
	if !ok {
		logger.Debug("Discarding stale scroll response (token %d)", eff.Token)
		return domain.BrowseResult{}, domain.ErrStaleResponse
	}
	s.state = next
	logger.Debug("Loaded %d chunks for %q", len(page.Chunks), eff.FileName)
	return next.Browse(), nil
}

// PrepareEdit fills the edit form from a displayed chunk.
func (s *Session) PrepareEdit(id domain.PointID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.PrepareEdit(id, content)
	s.stopRefreshLocked()
}

// SetEditID updates the point id field.
func (s *Session) SetEditID(id domain.PointID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithEditID(id)
}

// SetEditContent updates the content field.
func (s *Session) SetEditContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithEditContent(content)
}

// SetEditAction selects overwrite or append.
func (s *Session) SetEditAction(action domain.EditAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithEditAction(action)
}

// SubmitOverwrite validates the edit form and posts it.
func (s *Session) SubmitOverwrite(ctx context.Context) (domain.Status, error) {
	if s.store == nil {
		return domain.Status{}, domain.ErrNotImplemented
	}

	s.mu.Lock()
	next, eff, err := s.state.BeginOverwrite()
	s.state = next
	s.stopRefreshLocked()
	s.mu.Unlock()
	if err != nil {
		return next.Status, err
	}

	logger.Section("Overwrite")
	logger.Debug("Submitting %s to point %s of %q", eff.Request.Action, eff.Request.PointID, eff.Request.FileName)
	res, err := s.store.Upsert(ctx, eff.Request)
	s.record(ctx, eff.Request, res, err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		warnIfUnreachable("upsert", err)
		next, ok := s.state.FailOverwrite(eff.Token, err)
		if !ok {
			return s.state.Status, domain.ErrStaleResponse
		}
		s.state = next
		return next.Status, fmt.Errorf("overwrite point %s: %w", eff.Request.PointID, err)
	}

	next, refresh, ok := s.state.CompleteOverwrite(eff, res)
	if !ok {
		return s.state.Status, domain.ErrStaleResponse
	}
	s.state = next
	if refresh.Kind == domain.EffectScheduleRefresh {
		s.scheduleRefreshLocked(refresh.Generation)
	}
	logger.Info("Backend accepted edit: %s", res.Message)
	return next.Status, nil
}

// record appends the edit to the journal. Journal failures never fail the edit.
func (s *Session) record(ctx context.Context, req domain.EditRequest, res domain.UpsertResult, err error) {
	s.mu.Lock()
	history := s.history
	s.mu.Unlock()
	if history == nil {
		return
	}

	rec := domain.NewEditRecord(req, res, err, s.now())
	if herr := history.Append(ctx, rec); herr != nil {
		logger.Warn("Failed to record edit of point %s: %v", req.PointID, herr)
	}
}

func (s *Session) scheduleRefreshLocked(generation uint64) {
	if s.closed {
		return
	}
	logger.Debug("Refresh scheduled in %s (generation %d)", s.refreshDelay, generation)
	s.timer = time.AfterFunc(s.refreshDelay, func() {
		s.fireRefresh(generation)
	})
}

func (s *Session) stopRefreshLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// fireRefresh runs the refresh scheduled in generation unless superseded.
func (s *Session) fireRefresh(generation uint64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	next, eff, fired, err := s.state.BeginRefresh(generation)
	if !fired {
		s.mu.Unlock()
		logger.Debug("Refresh for generation %d superseded", generation)
		return
	}
	s.timer = nil
	if err != nil {
		s.mu.Unlock()
		s.emit(driving.RefreshEvent{Err: err})
		return
	}
	s.state = next
	ctx := s.baseCtx
	s.mu.Unlock()

	result, err := s.scroll(ctx, eff)
	if errors.Is(err, domain.ErrStaleResponse) {
		return
	}
	s.emit(driving.RefreshEvent{Result: result, Err: err})
}

func (s *Session) emit(ev driving.RefreshEvent) {
	select {
	case s.refreshes <- ev:
	default:
		logger.Warn("Refresh event dropped: no reader")
	}
}

func warnIfUnreachable(op string, err error) {
	if errors.Is(err, domain.ErrBackendUnreachable) {
		logger.Warn("%s: %v", op, err)
	}
}
