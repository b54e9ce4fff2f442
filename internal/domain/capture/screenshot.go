package capture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

var ErrUnsupportedImage = errors.New("unsupported screenshot format")

// NormalizeScreenshot decodes a PNG or JPEG screenshot, scales it down to
// design.MaxScreenshotHeight keeping the aspect ratio, and re-encodes it
// as base64 JPEG.
func NormalizeScreenshot(raw []byte) (string, error) {
	img, err := decodeImage(raw)
	if err != nil {
		return "", err
	}

	img = fitHeight(img, design.MaxScreenshotHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: design.ScreenshotQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodeImage(raw []byte) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedImage)
	}

	mtype := mimetype.Detect(raw)
	var (
		img image.Image
		err error
	)
	switch {
	case mtype.Is("image/png"):
		img, err = png.Decode(bytes.NewReader(raw))
	case mtype.Is("image/jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mtype.Extension(), err)
	}
	return img, nil
}

// fitHeight returns img unchanged when it is short enough.
func fitHeight(img image.Image, maxHeight int) image.Image {
	b := img.Bounds()
	if b.Dy() <= maxHeight {
		return img
	}

	width := b.Dx() * maxHeight / b.Dy()
	if width < 1 {
		width = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, maxHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
