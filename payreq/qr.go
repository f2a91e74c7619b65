package payreq

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is the rendered edge length in pixels.
const DefaultQRSize = 256

// RenderPNG renders a payment-request string as a QR code PNG with high
// error correction.
func RenderPNG(uri string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(uri, qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// DataURL renders uri and returns it as a base64 PNG data URL.
func DataURL(uri string, size int) (string, error) {
	png, err := RenderPNG(uri, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
