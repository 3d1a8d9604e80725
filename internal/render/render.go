// Package render shows pairing codes as QR codes on a terminal and,
// optionally, as a PNG file.
package render

import (
	"fmt"
	"io"

	qrcode "github.com/skip2/go-qrcode"

	"proxylens/internal/domain"
	"proxylens/internal/protocol/pairingcode"
)

// pngSize is the edge length of written PNG images in pixels.
const pngSize = 256

type Terminal struct {
	Out     io.Writer
	PNGPath string // optional
	Inverse bool   // light-on-dark terminals
}

// NewTerminal returns a renderer writing to out.
func NewTerminal(out io.Writer, pngPath string) *Terminal {
	return &Terminal{Out: out, PNGPath: pngPath}
}

var _ domain.Renderer = (*Terminal)(nil)

// Show encodes code at the low error-correction level and prints it.
func (t *Terminal) Show(code domain.PairingCode) error {
	text, err := pairingcode.Encode(code)
	if err != nil {
		return err
	}
	q, err := qrcode.New(text, qrcode.Low)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if t.PNGPath != "" {
		png, err := q.PNG(pngSize)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if err := replaceFile(t.PNGPath, png); err != nil {
			return fmt.Errorf("render: write %s: %w", t.PNGPath, err)
		}
	}
	_, err = fmt.Fprintf(t.Out, "Scan to pair:\n%s\n", q.ToSmallString(t.Inverse))
	return err
}

// Invalidate warns that the code on screen can no longer be used.
func (t *Terminal) Invalidate(reason error) {
	fmt.Fprintf(t.Out, "The pairing code above is no longer valid: %v\n", reason)
}
