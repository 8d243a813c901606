package domain

import "encoding/json"

// AnnotatedImage is one free-floating image placed over a content item.
// X and Y locate the frame's top-left corner in the canvas's local
// coordinate space; off-canvas and negative positions are allowed.
// Width and Height are the frame dimensions and are always positive.
//
// Crop carries the inner-image geometry when a crop has been applied and is
// nil otherwise. A nil Crop means the inner image fills the frame exactly.
type AnnotatedImage struct {
	ID     string
	URL    string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Crop   *Crop
}

// Crop describes the inner image of a cropped AnnotatedImage in frame-local
// coordinates: the inner image renders at (OffsetX, OffsetY) with dimensions
// InnerWidth by InnerHeight, and the frame acts as a viewport over it.
type Crop struct {
	OffsetX     float64
	OffsetY     float64
	InnerWidth  float64
	InnerHeight float64
}

// IsCropped reports whether a nontrivial crop has been applied.
func (a *AnnotatedImage) IsCropped() bool { return a.Crop != nil }

// annotatedImageWire is the flat stored representation. The optional fields
// are present only on cropped images; absent fields default to a zero offset
// and an inner image the size of the frame.
type annotatedImageWire struct {
	ID             string   `json:"id"`
	URL            string   `json:"url"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
	Width          float64  `json:"width"`
	Height         float64  `json:"height"`
	IsCropped      bool     `json:"isCropped"`
	CropX          *float64 `json:"cropX,omitempty"`
	CropY          *float64 `json:"cropY,omitempty"`
	OriginalWidth  *float64 `json:"originalWidth,omitempty"`
	OriginalHeight *float64 `json:"originalHeight,omitempty"`
}

// MarshalJSON writes the flat wire shape, emitting the crop fields only when
// a crop is applied.
func (a AnnotatedImage) MarshalJSON() ([]byte, error) {
	w := annotatedImageWire{
		ID:     a.ID,
		URL:    a.URL,
		X:      a.X,
		Y:      a.Y,
		Width:  a.Width,
		Height: a.Height,
	}
	if a.Crop != nil {
		w.IsCropped = true
		w.CropX = &a.Crop.OffsetX
		w.CropY = &a.Crop.OffsetY
		w.OriginalWidth = &a.Crop.InnerWidth
		w.OriginalHeight = &a.Crop.InnerHeight
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the flat wire shape. The optional-field defaulting
// happens here, once, so the rest of the code never checks field presence.
func (a *AnnotatedImage) UnmarshalJSON(data []byte) error {
	var w annotatedImageWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	a.ID = w.ID
	a.URL = w.URL
	a.X = w.X
	a.Y = w.Y
	a.Width = w.Width
	a.Height = w.Height
	a.Crop = nil
	if w.IsCropped {
		a.Crop = &Crop{
			OffsetX:     deref(w.CropX, 0),
			OffsetY:     deref(w.CropY, 0),
			InnerWidth:  deref(w.OriginalWidth, w.Width),
			InnerHeight: deref(w.OriginalHeight, w.Height),
		}
	}
	return nil
}

func deref(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
