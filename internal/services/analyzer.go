package services

import (
	"context"
	"errors"
	"log"

	"github.com/hkhan122/ResumeAnalyzer/internal/models"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisResult, error)
}

type analyzerService struct {
	remote              RemoteAnalysisService // nil when no provider is configured
	segmenter           SegmenterService
	heuristic           HeuristicService
	fallbackOnAuthError bool
}

func NewAnalyzerService(
	remote RemoteAnalysisService,
	segmenter SegmenterService,
	heuristic HeuristicService,
	fallbackOnAuthError bool,
) AnalyzerService {
	return &analyzerService{
		remote:              remote,
		segmenter:           segmenter,
		heuristic:           heuristic,
		fallbackOnAuthError: fallbackOnAuthError,
	}
}

// Analyze drives the pipeline for extracted text: segment, attempt remote
// analysis, and degrade to the local analyzer on any recoverable failure.
// Auth failures are surfaced only when the fallback policy marks them fatal.
func (a *analyzerService) Analyze(ctx context.Context, text string) (*models.AnalysisResult, error) {
	if a.remote != nil {
		sections := a.segmenter.Segment(text)

		result, err := a.remote.AnalyzeSections(ctx, sections)
		if err == nil {
			return result, nil
		}

		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) && remoteErr.Kind == FailureAuth && !a.fallbackOnAuthError {
			return nil, err
		}

		log.Printf("⚠️  Remote analysis failed, falling back to local analyzer: %v\n", err)
	}

	return a.heuristic.Analyze(text), nil
}
