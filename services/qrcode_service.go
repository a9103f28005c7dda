// services/qrcode_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Allow tests to override the encoder.
var qrEncodeFunc = qrcode.Encode

// GenerateShareQRCode creates a QR code PNG encoding an entry's share
// link, so a logged workout can be shown on another device without an
// account.
func GenerateShareQRCode(shareURL string, size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	png, err := qrEncodeFunc(shareURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode share QR code: %w", err)
	}
	return png, nil
}
