// Package ingest turns user-supplied image files into self-contained
// embeddable strings. Annotated images and cover images are stored inside
// the document as data URLs, never as server paths.
package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

// DataURL reads an image file and returns it as a data: URL. The content
// type is sniffed from the bytes; non-image files are rejected.
func DataURL(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty image file")
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("unsupported content type %s", mimeType)
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// CoverDataURL decodes an image, downscales it to fit within maxWidth by
// maxHeight (never upscaling), and returns it as a JPEG data URL. Cover
// images are decorative, so the quality loss is acceptable for the size.
func CoverDataURL(r io.Reader, maxWidth, maxHeight int) (string, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("failed to encode cover image: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
