package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// docxDocumentPath is the zip entry holding the document body in OOXML files.
const docxDocumentPath = "word/document.xml"

// processDOCX extracts paragraph text from a Word document. A .docx file is a
// zip archive; the body lives in word/document.xml as WordprocessingML, where
// runs of text sit in <w:t> elements grouped into <w:p> paragraphs.
func (p *Processor) processDOCX(ctx context.Context, filename string, data []byte) (*Document, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open DOCX %s: %v", ErrMalformedDocument, filename, err)
	}

	var body io.ReadCloser
	for _, file := range archive.File {
		if file.Name == docxDocumentPath {
			body, err = file.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: failed to read %s in %s: %v",
					ErrMalformedDocument, docxDocumentPath, filename, err)
			}
			break
		}
	}
	if body == nil {
		return nil, fmt.Errorf("%w: %s missing %s", ErrMalformedDocument, filename, docxDocumentPath)
	}
	defer func() {
		_ = body.Close()
	}()

	text, paragraphs, err := extractDOCXText(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrMalformedDocument, filename, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	p.logger.DebugContext(ctx, "extracted text from DOCX",
		"filename", filename,
		"paragraphs", paragraphs,
		"text_length", len(text))

	return &Document{
		Kind:       KindText,
		Filename:   filename,
		Text:       text,
		Paragraphs: paragraphs,
	}, nil
}

// extractDOCXText walks the WordprocessingML token stream collecting the text
// of each <w:t> element and terminating paragraphs (<w:p>) with newlines.
// Returns the joined text and the paragraph count.
func extractDOCXText(r io.Reader) (string, int, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	paragraphs := 0
	inTextRun := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", 0, err
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				paragraphs++
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				builder.Write(el)
			}
		}
	}

	return builder.String(), paragraphs, nil
}
