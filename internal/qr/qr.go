package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// size em pixels do PNG gerado; suficiente para leitura em telas e impressos.
const size = 256

// DataURL codifica o conteúdo como QR code PNG embutível (data URL base64).
func DataURL(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
