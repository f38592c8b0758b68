package extractor_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	docx "github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/extractor"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/domain"
)

func TestExtract_TxtRoundTripIdentity(t *testing.T) {
	ext := extractor.New()
	content := "Line one\n\n  Line two with trailing spaces  \n\ttabbed\n"
	got, err := ext.Extract(context.Background(), "srs.txt", []byte(content))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestExtract_TxtInvalidUTF8(t *testing.T) {
	ext := extractor.New()
	_, err := ext.Extract(context.Background(), "srs.txt", []byte{0xff, 0xfe, 0x00})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDecode))
}

func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	w := docx.New()
	for _, p := range paragraphs {
		para := w.AddParagraph()
		if p != "" {
			para.AddText(p)
		}
	}
	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestExtract_DocxSkipsEmptyParagraphs(t *testing.T) {
	ext := extractor.New()
	data := buildDocx(t, []string{"A", "", "B"})
	got, err := ext.Extract(context.Background(), "srs.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "A\nB", got)
}

func TestExtract_DocxOrderPreserved(t *testing.T) {
	ext := extractor.New()
	data := buildDocx(t, []string{"first", "second", "third"})
	got, err := ext.Extract(context.Background(), "SRS.DOCX", data)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird", got)
}

func TestExtract_DocxInvalidContainer(t *testing.T) {
	ext := extractor.New()
	_, err := ext.Extract(context.Background(), "srs.docx", []byte("not a zip archive"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParse))
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	// Unreachable through the HTTP allowlist; pinned as a boundary.
	ext := extractor.New()
	_, err := ext.Extract(context.Background(), "srs.pdf", []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}
