package overlay

import (
	"bytes"
	"context"

	"github.com/matzehuels/anchor/pkg/errors"
)

// Format selects an overlay rendering.
type Format string

const (
	FormatText Format = "text"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// ParseFormat resolves "text", "dot" or "svg". Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatDOT, FormatSVG:
		return Format(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown overlay format %q (want text, dot or svg)", s)
}

// ContentType returns the MIME type of the rendering.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render renders ov in format f.
func Render(ctx context.Context, ov Overlay, f Format) ([]byte, error) {
	switch f {
	case FormatDOT:
		return []byte(ToDOT(ov)), nil
	case FormatSVG:
		return RenderSVG(ctx, ToDOT(ov))
	default:
		var buf bytes.Buffer
		if err := RenderText(&buf, ov); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
