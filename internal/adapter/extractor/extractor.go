// Package extractor provides local text extraction for uploaded SRS
// documents. Plain text is decoded as strict UTF-8 and returned unchanged;
// .docx containers yield the newline-join of their non-empty paragraphs.
package extractor

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	docx "github.com/fumiama/go-docx"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/observability"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/domain"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/pkg/textx"
)

// Extractor implements domain.TextExtractor for .txt and .docx uploads.
type Extractor struct{}

// New returns a new Extractor.
func New() *Extractor { return &Extractor{} }

// Extract returns UTF-8 text for the upload. The extension of filename
// selects the format; the HTTP allowlist keeps other extensions from
// reaching here, but the boundary is still rejected explicitly.
func (e *Extractor) Extract(_ domain.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		text, err := extractPlain(data)
		observability.ObserveExtraction("txt", outcomeOf(err))
		return text, err
	case ".docx":
		text, err := extractDocx(data)
		observability.ObserveExtraction("docx", outcomeOf(err))
		return text, err
	default:
		return "", fmt.Errorf("%w: unsupported extension %q", domain.ErrInvalidArgument, ext)
	}
}

func outcomeOf(err error) string {
	if err != nil {
		return observability.OutcomeError
	}
	return observability.OutcomeOK
}

// extractPlain decodes the bytes as UTF-8. The content is returned
// byte-for-byte so the preview round-trips the file exactly.
func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8", domain.ErrDecode)
	}
	return string(data), nil
}

// extractDocx joins the sanitized text of all non-empty paragraphs with
// newlines, in document order. Tables and other body items are skipped.
func extractDocx(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: invalid docx container: %v", domain.ErrParse, err)
	}
	var paras []string
	for _, it := range doc.Document.Body.Items {
		p, ok := it.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := textx.SanitizeText(p.String()); text != "" {
			paras = append(paras, text)
		}
	}
	return strings.Join(paras, "\n"), nil
}
