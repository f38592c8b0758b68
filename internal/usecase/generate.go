package usecase

import (
	"fmt"
	"strings"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/domain"
)

// GenerateService guards the single backend call. A generation only starts
// when extracted content is non-empty; beyond that the backend's answer is
// passed through untouched, including non-200 statuses and empty case lists.
type GenerateService struct {
	Generator domain.TestCaseGenerator
}

// NewGenerateService constructs a GenerateService over the backend port.
func NewGenerateService(g domain.TestCaseGenerator) GenerateService {
	return GenerateService{Generator: g}
}

// Generate forwards the requirements text to the backend. The advertised
// character limit is not enforced here; truncation is the backend's call.
func (s GenerateService) Generate(ctx domain.Context, srs string) (domain.Generation, error) {
	if strings.TrimSpace(srs) == "" {
		return domain.Generation{}, fmt.Errorf("%w: requirements text is empty", domain.ErrInvalidArgument)
	}
	return s.Generator.GenerateTestCases(ctx, srs)
}
