package ingest

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG encodes a solid-color PNG of the given size.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDataURLEmbedsImage(t *testing.T) {
	raw := testPNG(t, 8, 8)

	out, err := DataURL(bytes.NewReader(raw))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data:image/png;base64,"), out[:40])

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded, "the payload is self-contained and lossless")
}

func TestDataURLRejectsNonImages(t *testing.T) {
	_, err := DataURL(strings.NewReader("<html><body>not an image</body></html>"))
	assert.ErrorContains(t, err, "unsupported content type")

	_, err = DataURL(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCoverDataURLDownscales(t *testing.T) {
	raw := testPNG(t, 50, 40)

	out, err := CoverDataURL(bytes.NewReader(raw), 20, 20)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	jpegBytes, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, "data:image/jpeg;base64,"))
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(jpegBytes))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy(), "aspect ratio preserved while fitting")
}
