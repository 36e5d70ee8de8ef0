// Package qrlink renders a URL as a scannable PNG.
package qrlink

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels when none is given.
const DefaultSize = 256

// PNG encodes url as a QR code PNG of size x size pixels.
func PNG(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, errors.New("qrlink: empty url")
	}
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(url, qrcode.Medium, size)
}
