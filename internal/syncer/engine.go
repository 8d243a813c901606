package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bgrant/devnotes/internal/docstore"
	"github.com/bgrant/devnotes/internal/domain"
)

// State is the engine's lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateOffline
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateOffline:
		return "offline"
	default:
		return "uninitialized"
	}
}

// SyncStatus describes the last push outcome once the engine is ready.
type SyncStatus int

const (
	StatusSaved SyncStatus = iota
	StatusSaving
	StatusError
)

// String returns the lowercase status name.
func (s SyncStatus) String() string {
	switch s {
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	default:
		return "saved"
	}
}

// ErrOffline is returned by remote operations while the engine is offline.
var ErrOffline = errors.New("sync is offline")

const (
	defaultDebounce     = 1 * time.Second
	defaultPollInterval = 15 * time.Second
)

// Option configures the engine.
type Option func(*Engine)

// WithDebounce sets the delay that coalesces rapid edits into one push.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

// WithPollInterval sets how often the background poll checks the remote
// document for changes.
func WithPollInterval(d time.Duration) Option {
	return func(e *Engine) { e.pollInterval = d }
}

// Engine owns the remote-document identifier and the full sync behavior:
// initialization, debounced push, background poll, and manual refresh. The
// consistency policy is deliberately last-writer-wins with no merge; pushes
// and refreshes overwrite wholesale, and the has-updates flag is advisory.
type Engine struct {
	client   *Client
	store    *docstore.Store
	fallback FallbackStore
	logger   *slog.Logger

	debounce     time.Duration
	pollInterval time.Duration

	mu         sync.Mutex
	state      State
	status     SyncStatus
	docID      string
	hasUpdates bool
	saving     bool
	saveSeq    uint64
	timer      *time.Timer
}

// New creates an engine over the session's document store. Every store
// mutation from then on schedules a debounced push.
func New(client *Client, store *docstore.Store, fallback FallbackStore, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		client:       client,
		store:        store,
		fallback:     fallback,
		logger:       logger,
		debounce:     defaultDebounce,
		pollInterval: defaultPollInterval,
		state:        StateUninitialized,
		status:       StatusSaved,
	}
	for _, opt := range opts {
		opt(e)
	}
	store.SetOnChange(e.ScheduleSave)
	return e
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Status returns the last push outcome.
func (e *Engine) Status() SyncStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// DocumentID returns the resolved remote document identifier, or "" while
// uninitialized or offline.
func (e *Engine) DocumentID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.docID
}

// HasRemoteUpdates reports the advisory server-has-updates flag raised by
// the background poll. It blocks nothing; local edits and pushes continue.
func (e *Engine) HasRemoteUpdates() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasUpdates
}

// Initialize resolves a document identifier and loads or creates the remote
// document. requestedID is the identifier from the current address, if any;
// the persisted fallback is consulted when it is absent. Initialize always
// leaves the engine usable: ready and synced, or offline on local data. It
// returns the resolved identifier, or "" in offline mode.
func (e *Engine) Initialize(ctx context.Context, requestedID string) (docID string) {
	e.setState(StateLoading)

	// whatever goes wrong below, the app must come up; an unexpected panic
	// degrades to offline mode on the default document
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("sync initialization panicked, going offline", "panic", r)
			e.store.Replace(domain.DefaultProjects())
			e.setState(StateOffline)
			docID = ""
		}
	}()

	id := cleanID(requestedID)
	if id == "" && e.fallback != nil {
		id = cleanID(e.fallback.Load())
	}

	if id != "" {
		projects, err := e.client.Get(ctx, id)
		if err != nil {
			// timeout, network failure, bad status, or wrong shape all
			// discard the identifier and fall through to creation
			e.logger.Warn("stored document unusable, creating a new one", "doc_id", id, "error", err)
			id = ""
		} else {
			e.store.Replace(projects)
		}
	}

	if id == "" {
		created, err := e.client.Create(ctx, e.store.Projects())
		if err != nil {
			e.logger.Warn("could not create remote document, continuing offline", "error", err)
			e.setState(StateOffline)
			return ""
		}
		id = created
	}

	e.mu.Lock()
	e.docID = id
	e.mu.Unlock()

	if e.fallback != nil {
		if err := e.fallback.Save(id); err != nil {
			e.logger.Warn("failed to persist document identifier", "error", err)
		}
	}

	e.setState(StateReady)
	e.logger.Info("sync ready", "doc_id", id)
	return id
}

// ScheduleSave schedules a push of the full local document after the
// debounce window. A new mutation within the window resets the timer, so N
// rapid edits produce one push carrying the state after the Nth. Status
// flips to saving immediately. No-op while not ready.
func (e *Engine) ScheduleSave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady {
		return
	}
	e.status = StatusSaving
	e.saveSeq++
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.flush)
}

// flush pushes the document as it stands now, not as it stood when the save
// was scheduled.
func (e *Engine) flush() {
	e.mu.Lock()
	if e.state != StateReady {
		e.mu.Unlock()
		return
	}
	id := e.docID
	seq := e.saveSeq
	e.saving = true
	e.mu.Unlock()

	err := e.client.Put(context.Background(), id, e.store.Projects())

	e.mu.Lock()
	e.saving = false
	// a mutation that arrived mid-flight owns the status now; only the
	// newest push may settle it
	if seq == e.saveSeq {
		if err != nil {
			// not retried automatically; the next mutation schedules the next push
			e.status = StatusError
		} else {
			e.status = StatusSaved
		}
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn("push failed", "doc_id", id, "error", err)
	}
}

// StartPolling launches the background poll loop. Every interval the remote
// document is fetched and compared byte-for-byte against the local
// serialized form; any difference raises the advisory has-updates flag.
// Poll errors are swallowed as transient. No-op while offline. The loop
// stops when ctx is cancelled.
func (e *Engine) StartPolling(ctx context.Context) {
	if e.State() != StateReady {
		return
	}
	go func() {
		ticker := time.NewTicker(e.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.poll(ctx)
			}
		}
	}()
}

func (e *Engine) poll(ctx context.Context) {
	e.mu.Lock()
	if e.state != StateReady {
		e.mu.Unlock()
		return
	}
	id := e.docID
	e.mu.Unlock()

	projects, err := e.client.Get(ctx, id)
	if err != nil {
		e.logger.Debug("poll failed", "doc_id", id, "error", err)
		return
	}
	remote, err := json.Marshal(projects)
	if err != nil {
		e.logger.Debug("poll serialization failed", "error", err)
		return
	}
	local, err := e.store.Serialize()
	if err != nil {
		e.logger.Debug("local serialization failed", "error", err)
		return
	}

	e.mu.Lock()
	if !e.saving && !bytes.Equal(remote, local) {
		e.hasUpdates = true
	}
	e.mu.Unlock()
}

// Refresh re-fetches the remote document on demand, replacing local state
// wholesale and clearing the has-updates flag. Failures set the error status
// and surface to the caller.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateReady {
		e.mu.Unlock()
		return ErrOffline
	}
	id := e.docID
	e.mu.Unlock()

	projects, err := e.client.Get(ctx, id)
	if err != nil {
		e.mu.Lock()
		e.status = StatusError
		e.mu.Unlock()
		e.logger.Warn("refresh failed", "doc_id", id, "error", err)
		return err
	}

	e.store.Replace(projects)

	e.mu.Lock()
	e.hasUpdates = false
	e.status = StatusSaved
	e.mu.Unlock()
	return nil
}

// Close stops any pending debounced push.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}
