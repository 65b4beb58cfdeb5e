package qrbill

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPNG(t *testing.T) {
	payload := Encode(samplePayment())

	data, err := RenderPNG(payload, 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())

	// The Swiss cross overlay puts a white pixel dead center.
	cx := img.Bounds().Min.X + img.Bounds().Dx()/2
	cy := img.Bounds().Min.Y + img.Bounds().Dy()/2
	r, g, b, _ := img.At(cx, cy).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRenderPNGDeterministic(t *testing.T) {
	payload := Encode(samplePayment())

	first, err := RenderPNG(payload, 128)
	require.NoError(t, err)
	second, err := RenderPNG(payload, 128)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
