// Package canvas manages the free-floating image layer of one content item:
// the placed images, which one is selected, which one is in crop mode, the
// delete-confirmation gate, and the pointer-drag sessions that drive the
// geometry engine.
//
// A Canvas belongs to a single interaction loop and is not safe for
// concurrent use.
package canvas

import (
	"errors"

	"github.com/bgrant/devnotes/internal/domain"
	"github.com/bgrant/devnotes/internal/geometry"
)

// Default frame for a freshly uploaded image.
const (
	DefaultWidth  = 300
	DefaultHeight = 200
)

// New uploads cascade in steps of staggerStep, cycling every staggerCycle
// images, so a burst of uploads never lands in an exact stack.
const (
	staggerStep  = 40
	staggerCycle = 5
)

// ErrCropActive is returned when an interaction is not available while the
// target image is in crop mode.
var ErrCropActive = errors.New("image is in crop mode")

// ImageSink receives the full updated image collection after every mutating
// canvas operation. There is no separate save step inside the canvas.
type ImageSink interface {
	PersistImages(images []domain.AnnotatedImage)
}

// ImageSinkFunc adapts a function to the ImageSink interface.
type ImageSinkFunc func(images []domain.AnnotatedImage)

// PersistImages calls f.
func (f ImageSinkFunc) PersistImages(images []domain.AnnotatedImage) { f(images) }

// Canvas holds the annotation state for one rendering instance.
type Canvas struct {
	images          []domain.AnnotatedImage
	selectedID      string
	croppingID      string
	pendingDeleteID string
	active          *Session
	sink            ImageSink
}

// New creates a canvas over a copy of images. Every mutation is pushed to
// sink immediately.
func New(images []domain.AnnotatedImage, sink ImageSink) *Canvas {
	c := &Canvas{sink: sink}
	c.images = append(c.images, images...)
	return c
}

// Images returns a copy of the current image collection. Crop variants are
// copied too, so the result never aliases canvas-owned geometry; the sink
// and any store it feeds can hold the slice without seeing later edits.
func (c *Canvas) Images() []domain.AnnotatedImage {
	out := make([]domain.AnnotatedImage, len(c.images))
	copy(out, c.images)
	for i := range out {
		if out[i].Crop != nil {
			crop := *out[i].Crop
			out[i].Crop = &crop
		}
	}
	return out
}

// SelectedID returns the id of the selected image, or "" if none.
func (c *Canvas) SelectedID() string { return c.selectedID }

// CroppingID returns the id of the image in crop mode, or "" if none.
func (c *Canvas) CroppingID() string { return c.croppingID }

// PendingDeleteID returns the id awaiting delete confirmation, or "".
func (c *Canvas) PendingDeleteID() string { return c.pendingDeleteID }

// AddImage appends a new image with the default frame, offset by the
// cascade position for the current image count, and selects it.
func (c *Canvas) AddImage(url string) domain.AnnotatedImage {
	offset := float64(len(c.images)%staggerCycle) * staggerStep
	img := domain.AnnotatedImage{
		ID:     domain.NewID(),
		URL:    url,
		X:      offset,
		Y:      offset,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	c.images = append(c.images, img)
	c.selectedID = img.ID
	c.persist()
	return img
}

// Select marks the image as selected. Selecting a different image exits crop
// mode for the previously cropping one; the applied crop is kept.
func (c *Canvas) Select(id string) error {
	if c.indexOf(id) < 0 {
		return domain.ErrNotFound
	}
	c.selectedID = id
	if c.croppingID != "" && c.croppingID != id {
		c.croppingID = ""
	}
	return nil
}

// DeselectAll clears selection and crop mode, as a pointer interaction on
// empty canvas area does.
func (c *Canvas) DeselectAll() {
	c.selectedID = ""
	c.croppingID = ""
}

// ToggleCrop enters or exits crop mode for the image. First entry snapshots
// the frame as the inner image's base geometry; later entries keep the
// existing snapshot, and exiting leaves the crop applied.
func (c *Canvas) ToggleCrop(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	if c.croppingID == id {
		c.croppingID = ""
		return nil
	}
	img := &c.images[i]
	if !img.IsCropped() {
		st := geometry.InitCrop(frameOf(*img))
		img.Crop = &domain.Crop{
			OffsetX:     st.Inner.X,
			OffsetY:     st.Inner.Y,
			InnerWidth:  st.Inner.Width,
			InnerHeight: st.Inner.Height,
		}
		c.persist()
	}
	// entering crop mode auto-selects
	c.croppingID = id
	c.selectedID = id
	return nil
}

// RequestDelete arms the confirmation gate for the image. Nothing is removed
// until ConfirmDelete.
func (c *Canvas) RequestDelete(id string) error {
	if c.indexOf(id) < 0 {
		return domain.ErrNotFound
	}
	c.pendingDeleteID = id
	return nil
}

// ConfirmDelete removes the image armed by RequestDelete.
func (c *Canvas) ConfirmDelete() {
	id := c.pendingDeleteID
	c.pendingDeleteID = ""
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.images = append(c.images[:i], c.images[i+1:]...)
	if c.selectedID == id {
		c.selectedID = ""
	}
	if c.croppingID == id {
		c.croppingID = ""
	}
	c.persist()
}

// CancelDelete disarms the confirmation gate.
func (c *Canvas) CancelDelete() {
	c.pendingDeleteID = ""
}

func (c *Canvas) indexOf(id string) int {
	for i := range c.images {
		if c.images[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Canvas) persist() {
	if c.sink != nil {
		c.sink.PersistImages(c.Images())
	}
}

// frameOf extracts the frame rectangle of an image.
func frameOf(img domain.AnnotatedImage) geometry.Rect {
	return geometry.Rect{X: img.X, Y: img.Y, Width: img.Width, Height: img.Height}
}

// stateFor builds the geometry state of an image for a resize session.
func stateFor(img domain.AnnotatedImage) geometry.State {
	if !img.IsCropped() {
		return geometry.Uncropped(frameOf(img))
	}
	return geometry.State{
		Frame: frameOf(img),
		Inner: geometry.Rect{
			X:      img.Crop.OffsetX,
			Y:      img.Crop.OffsetY,
			Width:  img.Crop.InnerWidth,
			Height: img.Crop.InnerHeight,
		},
		Cropped: true,
	}
}

// applyState writes a geometry state back onto an image. The crop variant is
// only carried for images that already have one; scale mode keeps an
// uncropped image uncropped because its inner geometry tracks the frame.
func applyState(img *domain.AnnotatedImage, st geometry.State) {
	img.X = st.Frame.X
	img.Y = st.Frame.Y
	img.Width = st.Frame.Width
	img.Height = st.Frame.Height
	if img.IsCropped() {
		img.Crop.OffsetX = st.Inner.X
		img.Crop.OffsetY = st.Inner.Y
		img.Crop.InnerWidth = st.Inner.Width
		img.Crop.InnerHeight = st.Inner.Height
	}
}
