package service

import (
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const badgeSize = 256

// BadgeQR encodes an RFID tag as a PNG QR code for badge printing.
func BadgeQR(tag string) ([]byte, error) {
	png, err := qrcode.Encode(tag, qrcode.Medium, badgeSize)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}
	return png, nil
}
