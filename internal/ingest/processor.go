package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind classifies the processed output of an upload.
type Kind string

const (
	// KindText means the document was reduced to plain text.
	KindText Kind = "text"

	// KindImage means the document is an image passed through as raw bytes.
	KindImage Kind = "image"
)

// Document is the processed form of an upload, ready for generation.
type Document struct {
	Kind     Kind
	Filename string

	// Text holds the extracted plain text for KindText documents.
	Text string

	// Raw and MIMEType hold the original bytes and sniffed MIME type for
	// KindImage documents.
	Raw      []byte
	MIMEType string

	// Format metadata, populated where the source format provides it.
	Pages      int
	Paragraphs int
	Width      int
	Height     int
}

// Processor validates and extracts content from uploaded files.
type Processor struct {
	logger       *slog.Logger
	maxSizeBytes int64
}

// file categories by extension, mirroring the supported upload surface
var (
	textExtensions     = map[string]bool{".txt": true, ".md": true}
	documentExtensions = map[string]bool{".pdf": true, ".docx": true}
	imageExtensions    = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}
)

// SupportedExtensions lists every accepted file extension, for error details.
func SupportedExtensions() []string {
	return []string{".txt", ".md", ".pdf", ".docx", ".png", ".jpg", ".jpeg"}
}

// NewProcessor creates a Processor enforcing the given size cap in bytes.
func NewProcessor(logger *slog.Logger, maxSizeBytes int64) (*Processor, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if maxSizeBytes <= 0 {
		return nil, fmt.Errorf("max size must be positive, got %d", maxSizeBytes)
	}

	return &Processor{
		logger:       logger,
		maxSizeBytes: maxSizeBytes,
	}, nil
}

// Process validates the upload and extracts its content based on the file
// extension. It returns ErrFileTooLarge before any parsing is attempted and
// ErrUnsupportedType for extensions outside the supported set.
func (p *Processor) Process(ctx context.Context, filename string, data []byte) (*Document, error) {
	if int64(len(data)) > p.maxSizeBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), p.maxSizeBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))

	p.logger.DebugContext(ctx, "processing upload",
		"filename", filename,
		"extension", ext,
		"size_bytes", len(data))

	switch {
	case textExtensions[ext]:
		return p.processText(filename, data)
	case documentExtensions[ext]:
		if ext == ".pdf" {
			return p.processPDF(ctx, filename, data)
		}
		return p.processDOCX(ctx, filename, data)
	case imageExtensions[ext]:
		return p.processImage(ctx, filename, data)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedType, ext, strings.Join(SupportedExtensions(), ", "))
	}
}

// processText handles plain text files (.txt, .md).
func (p *Processor) processText(filename string, data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrNotUTF8, filename)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	return &Document{
		Kind:     KindText,
		Filename: filename,
		Text:     text,
	}, nil
}
