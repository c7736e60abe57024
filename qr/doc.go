// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package qr renders token links as PNG QR codes for printing and sharing.

	png, err := qr.Render("https://vote.example.com/t/7KQ2MX9P")

Images are always qr.Size pixels square. Payloads too long for a QR code,
or too dense to fit the canvas, return ErrRender.
*/
package qr
