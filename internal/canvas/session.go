package canvas

import (
	"github.com/bgrant/devnotes/internal/domain"
	"github.com/bgrant/devnotes/internal/geometry"
)

type sessionKind int

const (
	sessionMove sessionKind = iota
	sessionResize
)

// Session is one pointer-drag interaction from press to release. It owns its
// own start snapshot, so updates are pure functions of the current pointer
// position; no ambient state is consulted beyond the canvas's image list.
type Session struct {
	canvas     *Canvas
	id         string
	kind       sessionKind
	dir        geometry.Direction
	cropMode   bool
	start      geometry.Point
	startPos   geometry.Point
	startState geometry.State
	ended      bool
}

// BeginDrag starts a move session for the image. Dragging is disabled while
// the image is in crop mode, where the frame boundary is a viewport edit,
// not a handle on the image's position.
func (c *Canvas) BeginDrag(id string, pointer geometry.Point) (*Session, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	if c.croppingID == id {
		return nil, ErrCropActive
	}
	if err := c.Select(id); err != nil {
		return nil, err
	}
	img := c.images[i]
	s := &Session{
		canvas:   c,
		id:       id,
		kind:     sessionMove,
		start:    pointer,
		startPos: geometry.Point{X: img.X, Y: img.Y},
	}
	c.active = s
	return s, nil
}

// BeginResize starts a resize session on one of the eight handles. While the
// image is in crop mode the drag re-windows the fixed inner image instead of
// zooming it.
func (c *Canvas) BeginResize(id string, dir geometry.Direction, pointer geometry.Point) (*Session, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	cropMode := c.croppingID == id
	if !cropMode {
		if err := c.Select(id); err != nil {
			return nil, err
		}
	}
	s := &Session{
		canvas:     c,
		id:         id,
		kind:       sessionResize,
		dir:        dir,
		cropMode:   cropMode,
		start:      pointer,
		startState: stateFor(c.images[i]),
	}
	c.active = s
	return s, nil
}

// ActiveSession returns the in-flight drag session, or nil.
func (c *Canvas) ActiveSession() *Session { return c.active }

// Update recomputes the image geometry for the current pointer position and
// persists the collection. Updates after End, or for an image deleted
// mid-session, are ignored.
func (s *Session) Update(pointer geometry.Point) {
	if s.ended {
		return
	}
	i := s.canvas.indexOf(s.id)
	if i < 0 {
		return
	}
	img := &s.canvas.images[i]
	switch s.kind {
	case sessionMove:
		pos := geometry.ComputeMove(s.start, pointer, s.startPos)
		img.X = pos.X
		img.Y = pos.Y
	case sessionResize:
		st := geometry.ComputeResize(s.dir, s.start, pointer, s.startState, s.cropMode)
		applyState(img, st)
	}
	s.canvas.persist()
}

// End releases the session, as pointer-up does. Idempotent.
func (s *Session) End() {
	if s.ended {
		return
	}
	s.ended = true
	if s.canvas.active == s {
		s.canvas.active = nil
	}
}
