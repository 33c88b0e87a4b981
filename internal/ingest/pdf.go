package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// processPDF extracts plain text from a PDF, page by page.
func (p *Processor) processPDF(ctx context.Context, filename string, data []byte) (*Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF %s: %v", ErrMalformedDocument, filename, err)
	}

	numPages := reader.NumPage()

	var builder strings.Builder
	extracted := 0
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the whole document.
			p.logger.WarnContext(ctx, "failed to extract text from PDF page",
				"filename", filename,
				"page", pageNum,
				"error", err)
			continue
		}

		builder.WriteString(text)
		extracted++
	}

	content := builder.String()
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	p.logger.DebugContext(ctx, "extracted text from PDF",
		"filename", filename,
		"pages", numPages,
		"pages_with_text", extracted,
		"text_length", len(content))

	return &Document{
		Kind:     KindText,
		Filename: filename,
		Text:     content,
		Pages:    numPages,
	}, nil
}
