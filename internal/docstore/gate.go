package docstore

import (
	"errors"
	"sync"
)

// TargetKind names the record granularity a Gate can arm.
type TargetKind string

const (
	TargetProject TargetKind = "project"
	TargetReport  TargetKind = "report"
	TargetLog     TargetKind = "log"
)

// Target identifies one record armed for permanent deletion. ItemID is empty
// for projects.
type Target struct {
	Kind      TargetKind
	ProjectID string
	ItemID    string
}

// ErrNothingPending is returned by Confirm when no deletion has been armed.
var ErrNothingPending = errors.New("no deletion pending")

// Gate is the two-step confirmation in front of permanent deletion: nothing
// is removed from storage without Request followed by Confirm, so an
// accidental click can always be cancelled.
type Gate struct {
	mu      sync.Mutex
	store   *Store
	pending *Target
}

// NewGate creates a confirmation gate over the store.
func NewGate(store *Store) *Gate {
	return &Gate{store: store}
}

// Request arms the gate for the target, replacing any previous one.
func (g *Gate) Request(t Target) {
	g.mu.Lock()
	g.pending = &t
	g.mu.Unlock()
}

// Pending returns the armed target, or nil.
func (g *Gate) Pending() *Target {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return nil
	}
	t := *g.pending
	return &t
}

// Cancel disarms the gate.
func (g *Gate) Cancel() {
	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()
}

// Confirm permanently deletes the armed record and disarms the gate. The
// gate is disarmed even when the deletion fails; a stale target must not
// stay armed.
func (g *Gate) Confirm() error {
	g.mu.Lock()
	t := g.pending
	g.pending = nil
	g.mu.Unlock()

	if t == nil {
		return ErrNothingPending
	}
	switch t.Kind {
	case TargetReport:
		return g.store.DeleteReport(t.ProjectID, t.ItemID)
	case TargetLog:
		return g.store.DeleteLog(t.ProjectID, t.ItemID)
	default:
		return g.store.DeleteProject(t.ProjectID)
	}
}
