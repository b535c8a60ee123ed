// Package qr renders confirmation codes as scannable QR images.
package qr

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const (
	// ContentPrefix marks a scanned payload as an EventEase confirmation code
	ContentPrefix = "EVENTEASE:"
	// DefaultSize is the image width and height in pixels
	DefaultSize = 256
)

// ErrEmptyCode is returned when asked to encode an empty code
var ErrEmptyCode = errors.New("confirmation code is empty")

// Generator renders confirmation codes as PNG QR images
type Generator struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewGenerator creates a generator producing size x size images.
// A non-positive size uses DefaultSize.
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{
		size:  size,
		level: qrcode.Medium,
	}
}

// Content returns the payload encoded for a confirmation code
func Content(code string) string {
	return ContentPrefix + code
}

// Encode returns a PNG image of the QR code for the confirmation code
func (g *Generator) Encode(code string) ([]byte, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	return qrcode.Encode(Content(code), g.level, g.size)
}
