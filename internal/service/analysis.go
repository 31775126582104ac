package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis_service.go -package=mocks -mock_names=AnalysisService=MockAnalysisService journalmind/internal/service AnalysisService

import (
	"context"

	"journalmind/internal/contextutil"
	"journalmind/internal/extract"
)

// AnalyzeRequest carries the texts of one journal entry for extraction.
type AnalyzeRequest struct {
	// Text is the primary capture text.
	Text string `validate:"required"`
	// Reflection is the optional secondary reflection text.
	Reflection string
	// Notes is optional tertiary text.
	Notes string
}

// AnalysisService extracts structured entities from entry text.
type AnalysisService interface {
	// Analyze runs entity extraction. Extraction itself never fails; the
	// only error is a validation error for an empty request.
	Analyze(ctx context.Context, req AnalyzeRequest) (extract.Entities, error)
}

type analysisService struct {
	extractor *extract.Extractor
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(extractor *extract.Extractor) AnalysisService {
	return &analysisService{extractor: extractor}
}

// Analyze runs entity extraction over the request texts.
func (s *analysisService) Analyze(ctx context.Context, req AnalyzeRequest) (extract.Entities, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Text == "" {
		logger.WarnContext(ctx, "empty text in analyze request")
		return extract.Entities{}, &ValidationError{
			Field:   "text",
			Message: "cannot be empty",
		}
	}

	entities := s.extractor.Extract(req.Text, req.Reflection, req.Notes)
	logger.InfoContext(ctx, "analysis completed",
		"people", len(entities.People),
		"concepts", len(entities.Concepts),
		"places", len(entities.Places),
		"questions", len(entities.Questions),
		"commitments", len(entities.Commitments),
	)
	return entities, nil
}
