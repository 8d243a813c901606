// Package geometry implements the pure resize and crop math for an image
// placed in a rectangular frame. It has no dependencies and holds no state;
// every function maps an interaction's start snapshot plus the current
// pointer position to a new geometry.
//
// Two transforms share the same drag-handle interaction:
//
//   - scale ("resize = zoom"): the frame changes size and the inner image
//     zooms proportionally with it, preserving aspect ratio on corner drags.
//   - crop ("crop = windowing"): the frame changes size over a fixed inner
//     image, acting as a viewport that reveals or hides parts of it.
package geometry

import (
	"math"
	"strings"
)

// MinSize is the floor for frame dimensions, preventing degenerate or
// inverted rectangles no matter how far a handle is dragged.
const MinSize = 20

// Point is a position in canvas-local pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle. Width and Height are always positive
// for frames produced by this package.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Direction names the edge or corner being dragged, as one of the eight
// compass directions.
type Direction string

const (
	North     Direction = "n"
	South     Direction = "s"
	East      Direction = "e"
	West      Direction = "w"
	NorthEast Direction = "ne"
	NorthWest Direction = "nw"
	SouthEast Direction = "se"
	SouthWest Direction = "sw"
)

// Directions lists every handle direction. The order matches the handle
// layout top-left to bottom-right.
var Directions = []Direction{NorthWest, North, NorthEast, East, SouthEast, South, SouthWest, West}

func (d Direction) hasNorth() bool { return strings.ContainsRune(string(d), 'n') }
func (d Direction) hasSouth() bool { return strings.ContainsRune(string(d), 's') }
func (d Direction) hasEast() bool  { return strings.ContainsRune(string(d), 'e') }
func (d Direction) hasWest() bool  { return strings.ContainsRune(string(d), 'w') }

// isCorner reports whether the handle moves both axes.
func (d Direction) isCorner() bool {
	return (d.hasNorth() || d.hasSouth()) && (d.hasEast() || d.hasWest())
}

// State is the full geometry of one placed image: the frame rectangle in
// canvas coordinates and the inner image's render rectangle in frame-local
// coordinates. For an uncropped image Inner is (0, 0, Width, Height), i.e.
// the inner image fills the frame exactly.
type State struct {
	Frame   Rect
	Inner   Rect
	Cropped bool
}

// Uncropped builds the state for an image whose inner image fills the frame.
func Uncropped(frame Rect) State {
	return State{
		Frame: frame,
		Inner: Rect{Width: frame.Width, Height: frame.Height},
	}
}

// ComputeMove translates the frame by the pointer delta since the drag
// started. Inner geometry is untouched and no bounds are applied; placement
// off-canvas is permitted.
func ComputeMove(start, current Point, startPos Point) Point {
	return Point{
		X: startPos.X + current.X - start.X,
		Y: startPos.Y + current.Y - start.Y,
	}
}

// ComputeResize maps a handle drag to a new geometry. The startState is the
// geometry snapshotted when the drag began; start and current are the
// pointer positions then and now.
//
// In scale mode (cropMode false) the inner image zooms with the frame, and
// corner drags preserve the frame's aspect ratio by deriving the dependent
// dimension from whichever axis the pointer moved more. In crop mode the
// inner image stays fixed in canvas space while the frame re-windows it, and
// aspect ratio is not preserved. Both modes floor frame dimensions at
// MinSize and keep the edge opposite the dragged handle fixed.
func ComputeResize(dir Direction, start, current Point, startState State, cropMode bool) State {
	dx := current.X - start.X
	dy := current.Y - start.Y
	f := startState.Frame

	newW := f.Width
	newH := f.Height
	switch {
	case dir.hasEast():
		newW = f.Width + dx
	case dir.hasWest():
		newW = f.Width - dx
	}
	switch {
	case dir.hasSouth():
		newH = f.Height + dy
	case dir.hasNorth():
		newH = f.Height - dy
	}

	if !cropMode && dir.isCorner() && f.Width > 0 && f.Height > 0 {
		aspect := f.Width / f.Height
		if math.Abs(dx) >= math.Abs(dy) {
			newH = newW / aspect
		} else {
			newW = newH * aspect
		}
	}

	if newW < MinSize {
		newW = MinSize
	}
	if newH < MinSize {
		newH = MinSize
	}

	// the origin follows the dragged edge so the opposite edge stays put;
	// the shift is derived from the applied dimension, not the raw delta,
	// so the MinSize floor never drags the frame along
	newX := f.X
	newY := f.Y
	if dir.hasWest() {
		newX = f.X + (f.Width - newW)
	}
	if dir.hasNorth() {
		newY = f.Y + (f.Height - newH)
	}

	out := State{
		Frame:   Rect{X: newX, Y: newY, Width: newW, Height: newH},
		Cropped: startState.Cropped,
	}

	if cropMode {
		// windowing: inner size and base offset held fixed; counter the
		// origin shift so the inner image stays stationary on screen
		out.Inner = Rect{
			X:      startState.Inner.X - (newX - f.X),
			Y:      startState.Inner.Y - (newY - f.Y),
			Width:  startState.Inner.Width,
			Height: startState.Inner.Height,
		}
		return out
	}

	// zoom: inner geometry scales by the same per-axis ratio as the frame
	rw := 1.0
	rh := 1.0
	if f.Width > 0 {
		rw = newW / f.Width
	}
	if f.Height > 0 {
		rh = newH / f.Height
	}
	out.Inner = Rect{
		X:      startState.Inner.X * rw,
		Y:      startState.Inner.Y * rh,
		Width:  startState.Inner.Width * rw,
		Height: startState.Inner.Height * rh,
	}
	return out
}

// InitCrop snapshots the frame as the inner image's base geometry on first
// entry into crop mode: the inner image is the size of the frame with a zero
// offset, and the state is marked cropped. Callers must not invoke it again
// for an already-cropped image; re-entering crop mode keeps the existing
// snapshot.
func InitCrop(frame Rect) State {
	return State{
		Frame:   frame,
		Inner:   Rect{Width: frame.Width, Height: frame.Height},
		Cropped: true,
	}
}
