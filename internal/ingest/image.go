package ingest

import (
	"bytes"
	"context"
	"fmt"
	"image"

	// Registered decoders for image validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// processImage validates that the upload decodes as an image and keeps the
// raw bytes for multimodal inference.
func (p *Processor) processImage(ctx context.Context, filename string, data []byte) (*Document, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image %s: %v", ErrMalformedDocument, filename, err)
	}

	mimeType := SniffImageMIME(data)

	p.logger.DebugContext(ctx, "validated image upload",
		"filename", filename,
		"format", format,
		"mime_type", mimeType,
		"width", cfg.Width,
		"height", cfg.Height)

	return &Document{
		Kind:     KindImage,
		Filename: filename,
		Raw:      data,
		MIMEType: mimeType,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// SniffImageMIME detects an image MIME type from its leading magic bytes.
// Unknown formats fall back to image/jpeg.
func SniffImageMIME(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "image/gif"
	case bytes.HasPrefix(data, []byte("RIFF")) && len(data) >= 12 && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
