// Package ingest turns uploaded files into content suitable for generation.
// Text-bearing formats (.txt, .md, .pdf, .docx) are reduced to plain text;
// images are validated and passed through as raw bytes for multimodal
// inference.
package ingest
