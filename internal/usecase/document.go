// Package usecase holds the thin services the HTTP layer drives: document
// extraction with content statistics, and test case generation against the
// backend port.
package usecase

import (
	"fmt"
	"strings"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/domain"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/pkg/textx"
)

// DocumentService extracts text from an upload and computes the statistics
// shown in the preview panel. Nothing is persisted; the Document is handed
// straight back to the caller.
type DocumentService struct {
	Extractor domain.TextExtractor
}

// NewDocumentService constructs a DocumentService with the given extractor.
func NewDocumentService(e domain.TextExtractor) DocumentService {
	return DocumentService{Extractor: e}
}

// Extract runs the extractor and rejects uploads whose extracted text is
// blank, which would otherwise produce a meaningless generate request.
func (s DocumentService) Extract(ctx domain.Context, filename string, data []byte) (domain.Document, error) {
	text, err := s.Extractor.Extract(ctx, filename, data)
	if err != nil {
		return domain.Document{}, err
	}
	if strings.TrimSpace(text) == "" {
		return domain.Document{}, fmt.Errorf("%w: document contains no text", domain.ErrInvalidArgument)
	}
	return domain.Document{
		Filename: filename,
		Text:     text,
		Chars:    textx.CharCount(text),
		Words:    textx.WordCount(text),
	}, nil
}
