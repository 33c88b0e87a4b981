package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestProcessor builds a Processor with a discard logger and a small cap.
func newTestProcessor(t *testing.T, maxSize int64) *Processor {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := NewProcessor(logger, maxSize)
	require.NoError(t, err)
	return p
}

// buildDOCX assembles a minimal .docx archive around the given document body.
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// buildPNG encodes a 1x1 PNG image.
func buildPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestNewProcessor(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("nil_logger", func(t *testing.T) {
		p, err := NewProcessor(nil, 1024)
		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("non_positive_cap", func(t *testing.T) {
		p, err := NewProcessor(logger, 0)
		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("valid", func(t *testing.T) {
		p, err := NewProcessor(logger, 1024)
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestProcessTextFiles(t *testing.T) {
	p := newTestProcessor(t, 1024*1024)
	ctx := context.Background()

	t.Run("plain_text", func(t *testing.T) {
		doc, err := p.Process(ctx, "notes.txt", []byte("Machine learning basics."))
		require.NoError(t, err)
		assert.Equal(t, KindText, doc.Kind)
		assert.Equal(t, "Machine learning basics.", doc.Text)
		assert.Equal(t, "notes.txt", doc.Filename)
	})

	t.Run("markdown", func(t *testing.T) {
		doc, err := p.Process(ctx, "README.MD", []byte("# Docker\n\nContainers are lightweight."))
		require.NoError(t, err)
		assert.Equal(t, KindText, doc.Kind)
		assert.Contains(t, doc.Text, "Containers")
	})

	t.Run("invalid_utf8", func(t *testing.T) {
		doc, err := p.Process(ctx, "notes.txt", []byte{0xff, 0xfe, 0xfd})
		assert.ErrorIs(t, err, ErrNotUTF8)
		assert.Nil(t, doc)
	})

	t.Run("whitespace_only", func(t *testing.T) {
		doc, err := p.Process(ctx, "notes.txt", []byte("   \n\t  "))
		assert.ErrorIs(t, err, ErrEmptyDocument)
		assert.Nil(t, doc)
	})
}

func TestProcessSizeLimit(t *testing.T) {
	p := newTestProcessor(t, 16)
	ctx := context.Background()

	doc, err := p.Process(ctx, "big.txt", bytes.Repeat([]byte("a"), 17))
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Nil(t, doc)

	// The limit is checked before the extension, so even unsupported types
	// report the size problem first.
	doc, err = p.Process(ctx, "big.exe", bytes.Repeat([]byte("a"), 17))
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Nil(t, doc)
}

func TestProcessUnsupportedType(t *testing.T) {
	p := newTestProcessor(t, 1024)
	ctx := context.Background()

	tests := []string{"archive.tar", "binary.exe", "noextension", "sheet.xlsx"}
	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			doc, err := p.Process(ctx, filename, []byte("content"))
			assert.ErrorIs(t, err, ErrUnsupportedType)
			assert.Contains(t, err.Error(), ".pdf", "error should list supported types")
			assert.Nil(t, doc)
		})
	}
}

func TestProcessDOCX(t *testing.T) {
	p := newTestProcessor(t, 1024*1024)
	ctx := context.Background()

	t.Run("extracts_paragraphs", func(t *testing.T) {
		docxData := buildDOCX(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

		doc, err := p.Process(ctx, "lecture.docx", docxData)
		require.NoError(t, err)
		assert.Equal(t, KindText, doc.Kind)
		assert.Equal(t, 2, doc.Paragraphs)
		assert.Contains(t, doc.Text, "First paragraph.")
		assert.Contains(t, doc.Text, "Second paragraph.")

		lines := strings.Split(strings.TrimRight(doc.Text, "\n"), "\n")
		assert.Len(t, lines, 2, "paragraphs should be newline separated")
	})

	t.Run("empty_body", func(t *testing.T) {
		docxData := buildDOCX(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body></w:body>
</w:document>`)

		doc, err := p.Process(ctx, "empty.docx", docxData)
		assert.ErrorIs(t, err, ErrEmptyDocument)
		assert.Nil(t, doc)
	})

	t.Run("not_a_zip", func(t *testing.T) {
		doc, err := p.Process(ctx, "fake.docx", []byte("this is not a zip archive"))
		assert.ErrorIs(t, err, ErrMalformedDocument)
		assert.Nil(t, doc)
	})

	t.Run("missing_document_xml", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("unrelated.txt")
		require.NoError(t, err)
		_, err = f.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		doc, err := p.Process(ctx, "odd.docx", buf.Bytes())
		assert.ErrorIs(t, err, ErrMalformedDocument)
		assert.Nil(t, doc)
	})
}

func TestProcessPDFMalformed(t *testing.T) {
	p := newTestProcessor(t, 1024*1024)

	doc, err := p.Process(context.Background(), "fake.pdf", []byte("not a pdf"))
	assert.ErrorIs(t, err, ErrMalformedDocument)
	assert.Nil(t, doc)
}

func TestProcessImage(t *testing.T) {
	p := newTestProcessor(t, 1024*1024)
	ctx := context.Background()

	t.Run("valid_png", func(t *testing.T) {
		doc, err := p.Process(ctx, "diagram.png", buildPNG(t))
		require.NoError(t, err)
		assert.Equal(t, KindImage, doc.Kind)
		assert.Equal(t, "image/png", doc.MIMEType)
		assert.Equal(t, 1, doc.Width)
		assert.Equal(t, 1, doc.Height)
		assert.NotEmpty(t, doc.Raw)
	})

	t.Run("corrupt_image", func(t *testing.T) {
		doc, err := p.Process(ctx, "broken.jpg", []byte("definitely not a jpeg"))
		assert.ErrorIs(t, err, ErrMalformedDocument)
		assert.Nil(t, doc)
	})
}

func TestSniffImageMIME(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "jpeg", data: []byte{0xff, 0xd8, 0xff, 0xe0}, want: "image/jpeg"},
		{name: "png", data: []byte("\x89PNG\r\n\x1a\nrest"), want: "image/png"},
		{name: "gif87", data: []byte("GIF87a..."), want: "image/gif"},
		{name: "gif89", data: []byte("GIF89a..."), want: "image/gif"},
		{name: "webp", data: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), want: "image/webp"},
		{name: "unknown_falls_back_to_jpeg", data: []byte("mystery bytes"), want: "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffImageMIME(tt.data))
		})
	}
}
