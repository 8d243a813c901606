package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMove(t *testing.T) {
	start := Point{X: 100, Y: 100}
	current := Point{X: 130, Y: 80}

	pos := ComputeMove(start, current, Point{X: 10, Y: 20})
	assert.Equal(t, Point{X: 40, Y: 0}, pos)
}

func TestComputeMoveAllowsOffCanvas(t *testing.T) {
	pos := ComputeMove(Point{X: 0, Y: 0}, Point{X: -500, Y: -500}, Point{X: 10, Y: 10})
	assert.Equal(t, Point{X: -490, Y: -490}, pos)
}

func TestCornerResizePreservesAspect(t *testing.T) {
	st := Uncropped(Rect{X: 50, Y: 50, Width: 300, Height: 200})
	aspect := st.Frame.Width / st.Frame.Height

	deltas := []Point{
		{X: 40, Y: 10},
		{X: -60, Y: 5},
		{X: 7, Y: 90},
		{X: -12, Y: -33},
		{X: 150, Y: 150},
	}
	for _, d := range deltas {
		for _, dir := range []Direction{NorthEast, NorthWest, SouthEast, SouthWest} {
			out := ComputeResize(dir, Point{}, d, st, false)
			require.Greater(t, out.Frame.Height, 0.0)
			assert.InDelta(t, aspect, out.Frame.Width/out.Frame.Height, 1e-9,
				"dir=%s delta=%+v", dir, d)
		}
	}
}

func TestEdgeResizeKeepsOppositeEdgeFixed(t *testing.T) {
	st := Uncropped(Rect{X: 100, Y: 100, Width: 200, Height: 100})

	out := ComputeResize(West, Point{}, Point{X: -30}, st, false)
	assert.Equal(t, 230.0, out.Frame.Width)
	assert.Equal(t, 70.0, out.Frame.X)
	// right edge unchanged
	assert.Equal(t, st.Frame.X+st.Frame.Width, out.Frame.X+out.Frame.Width)

	out = ComputeResize(North, Point{}, Point{Y: 25}, st, false)
	assert.Equal(t, 75.0, out.Frame.Height)
	assert.Equal(t, 125.0, out.Frame.Y)
	// bottom edge unchanged
	assert.Equal(t, st.Frame.Y+st.Frame.Height, out.Frame.Y+out.Frame.Height)
}

func TestScaleModeZoomsInnerGeometry(t *testing.T) {
	st := State{
		Frame:   Rect{X: 0, Y: 0, Width: 100, Height: 100},
		Inner:   Rect{X: -20, Y: -10, Width: 200, Height: 150},
		Cropped: true,
	}

	out := ComputeResize(East, Point{}, Point{X: 100}, st, false)
	require.Equal(t, 200.0, out.Frame.Width)
	assert.Equal(t, -40.0, out.Inner.X)
	assert.Equal(t, 400.0, out.Inner.Width)
	// height untouched by an east drag, so the vertical axis does not scale
	assert.Equal(t, -10.0, out.Inner.Y)
	assert.Equal(t, 150.0, out.Inner.Height)
}

func TestCropWindowingKeepsInnerStationary(t *testing.T) {
	st := State{
		Frame:   Rect{X: 100, Y: 100, Width: 120, Height: 80},
		Inner:   Rect{X: -15, Y: -5, Width: 160, Height: 120},
		Cropped: true,
	}

	for _, delta := range []float64{-40, -7, 13, 40} {
		west := ComputeResize(West, Point{}, Point{X: delta}, st, true)
		assert.InDelta(t, st.Frame.Width-delta, west.Frame.Width, 1e-9)
		// the inner image's screen position must not move
		assert.InDelta(t, st.Frame.X+st.Inner.X, west.Frame.X+west.Inner.X, 1e-9)
		assert.Equal(t, st.Inner.Width, west.Inner.Width)
		assert.Equal(t, st.Inner.Height, west.Inner.Height)

		north := ComputeResize(North, Point{}, Point{Y: delta}, st, true)
		assert.InDelta(t, st.Frame.Height-delta, north.Frame.Height, 1e-9)
		assert.InDelta(t, st.Frame.Y+st.Inner.Y, north.Frame.Y+north.Inner.Y, 1e-9)
	}
}

func TestCropModeDoesNotPreserveAspect(t *testing.T) {
	st := InitCrop(Rect{X: 0, Y: 0, Width: 100, Height: 100})

	out := ComputeResize(SouthEast, Point{}, Point{X: 50, Y: 10}, st, true)
	assert.Equal(t, 150.0, out.Frame.Width)
	assert.Equal(t, 110.0, out.Frame.Height)
}

func TestResizeFloorsAtMinSize(t *testing.T) {
	st := Uncropped(Rect{X: 100, Y: 100, Width: 200, Height: 100})

	for _, cropMode := range []bool{false, true} {
		for _, dir := range Directions {
			out := ComputeResize(dir, Point{}, Point{X: -10000, Y: -10000}, st, cropMode)
			assert.GreaterOrEqual(t, out.Frame.Width, float64(MinSize), "dir=%s crop=%v", dir, cropMode)
			assert.GreaterOrEqual(t, out.Frame.Height, float64(MinSize), "dir=%s crop=%v", dir, cropMode)
		}
	}
}

func TestFloorKeepsOppositeEdgeFixed(t *testing.T) {
	st := Uncropped(Rect{X: 100, Y: 100, Width: 200, Height: 100})

	// a drag far past the minimum must clamp in place, not push the frame
	out := ComputeResize(East, Point{}, Point{X: -10000}, st, true)
	assert.Equal(t, float64(MinSize), out.Frame.Width)
	assert.Equal(t, 100.0, out.Frame.X)

	out = ComputeResize(West, Point{}, Point{X: 10000}, st, true)
	assert.Equal(t, float64(MinSize), out.Frame.Width)
	assert.Equal(t, st.Frame.X+st.Frame.Width-MinSize, out.Frame.X)
}

func TestInitCrop(t *testing.T) {
	frame := Rect{X: 30, Y: 40, Width: 120, Height: 90}
	st := InitCrop(frame)

	assert.True(t, st.Cropped)
	assert.Equal(t, frame, st.Frame)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 120, Height: 90}, st.Inner)
}
