package document

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	maxSignatureWidth  = 900
	maxSignatureHeight = 300
)

// NormalizeSignature decodes an uploaded signature in any supported format,
// applies EXIF orientation, scales it down to a bounded size and re-encodes it
// as PNG, the only format the compositor embeds.
func NormalizeSignature(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	img = imaging.Fit(img, maxSignatureWidth, maxSignatureHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode signature: %w", err)
	}
	return buf.Bytes(), nil
}
