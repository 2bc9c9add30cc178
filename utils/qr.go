package utils

import (
	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

// QRCodePNG encodes content as a PNG QR code, size being the edge length in
// pixels.
func QRCodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultQRSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
