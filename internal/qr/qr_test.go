package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeProducesPNG(t *testing.T) {
	g := NewGenerator(0)

	data, err := g.Encode("ABCDEF12")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
	assert.Equal(t, DefaultSize, img.Bounds().Dy())
}

func TestEncodeHonoursSize(t *testing.T) {
	data, err := NewGenerator(128).Encode("ABCDEF12")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestEncodeRejectsEmptyCode(t *testing.T) {
	_, err := NewGenerator(0).Encode("")
	assert.ErrorIs(t, err, ErrEmptyCode)
}

func TestContent(t *testing.T) {
	assert.Equal(t, "EVENTEASE:ABCDEF12", Content("ABCDEF12"))
}
