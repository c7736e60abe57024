// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/boombuler/barcode"
	barcodeqr "github.com/boombuler/barcode/qr"
)

// Size is the width and height of every rendered image in pixels.
const Size = 300

var ErrRender = errors.New("failed to render QR code")

// Render encodes data as a Size x Size PNG QR code with error correction
// level M and a one-module margin.
func Render(data string) ([]byte, error) {
	code, err := barcodeqr.Encode(data, barcodeqr.M, barcodeqr.Auto)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	modules := code.Bounds().Dx()
	unit := Size / (modules + 2)
	if unit < 1 {
		return nil, fmt.Errorf("%w: %d modules do not fit in %dpx", ErrRender, modules, Size)
	}

	scaled, err := barcode.Scale(code, unit*modules, unit*modules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	offset := (Size - unit*modules) / 2
	dst := image.Rect(offset, offset, offset+unit*modules, offset+unit*modules)
	draw.Draw(canvas, dst, scaled, scaled.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
