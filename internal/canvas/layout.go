package canvas

import (
	"github.com/bgrant/devnotes/internal/domain"
	"github.com/bgrant/devnotes/internal/geometry"
)

// PlacedImage is the resolved render geometry for one image: the frame in
// canvas coordinates and the inner image's render rectangle in frame-local
// coordinates.
type PlacedImage struct {
	ID    string
	URL   string
	Frame geometry.Rect
	// Inner is where the image pixels render inside the frame. For an
	// uncropped image it coincides with the frame; for a cropped image the
	// frame clips it.
	Inner   geometry.Rect
	Cropped bool
}

// Layout resolves the render geometry for a collection of images. The
// editable canvas and the read-only renderer both draw from this, so the
// same stored collection produces pixel-identical layout in either mode.
func Layout(images []domain.AnnotatedImage) []PlacedImage {
	out := make([]PlacedImage, len(images))
	for i, img := range images {
		out[i] = Place(img)
	}
	return out
}

// Place resolves the render geometry for a single image.
func Place(img domain.AnnotatedImage) PlacedImage {
	p := PlacedImage{
		ID:    img.ID,
		URL:   img.URL,
		Frame: frameOf(img),
	}
	if !img.IsCropped() {
		p.Inner = geometry.Rect{Width: img.Width, Height: img.Height}
		return p
	}
	p.Cropped = true
	p.Inner = geometry.Rect{
		X:      img.Crop.OffsetX,
		Y:      img.Crop.OffsetY,
		Width:  img.Crop.InnerWidth,
		Height: img.Crop.InnerHeight,
	}
	return p
}
