package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hkhan122/ResumeAnalyzer/internal/models"
)

type stubRemote struct {
	result *models.AnalysisResult
	err    error
	calls  int
}

func (s *stubRemote) AnalyzeSections(ctx context.Context, sections map[models.Section]string) (*models.AnalysisResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubRemote) AnalyzeDocument(ctx context.Context, text string) (string, error) {
	return "", s.err
}

func newAnalyzer(remote RemoteAnalysisService, fallbackOnAuthError bool) AnalyzerService {
	return NewAnalyzerService(remote, NewSegmenterService(), NewHeuristicService(), fallbackOnAuthError)
}

func TestAnalyze_NoRemoteConfigured(t *testing.T) {
	analyzer := newAnalyzer(nil, true)

	result, err := analyzer.Analyze(context.Background(), experienceOnlyResume)
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	if len(result.Sections) != len(models.AllSections) {
		t.Errorf("heuristic result has %d sections, want %d", len(result.Sections), len(models.AllSections))
	}
}

func TestAnalyze_RemoteSuccessReturnedUnchanged(t *testing.T) {
	score := 9
	want := &models.AnalysisResult{
		OverallScore: 9.0,
		Sections: map[models.Section]models.SectionAnalysis{
			models.SectionExperience: {Score: &score},
		},
	}

	analyzer := newAnalyzer(&stubRemote{result: want}, true)

	result, err := analyzer.Analyze(context.Background(), experienceOnlyResume)
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	if result != want {
		t.Errorf("Analyze() = %+v, want the remote result", result)
	}
}

func TestAnalyze_DegradesOnRemoteFailure(t *testing.T) {
	kinds := []FailureKind{FailureService, FailureEmpty, FailureParse, FailureAuth}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			remote := &stubRemote{err: &RemoteError{Kind: kind, Err: errors.New("remote down")}}
			analyzer := newAnalyzer(remote, true)

			result, err := analyzer.Analyze(context.Background(), experienceOnlyResume)
			if err != nil {
				t.Fatalf("Analyze() failed instead of degrading: %v", err)
			}

			// The fallback result is shaped exactly like a heuristic-only
			// run: same sections, same scores.
			want := NewHeuristicService().Analyze(experienceOnlyResume)
			if result.OverallScore != want.OverallScore {
				t.Errorf("overall score = %v, want heuristic %v", result.OverallScore, want.OverallScore)
			}
			if len(result.Sections) != len(want.Sections) {
				t.Errorf("sections = %d, want %d", len(result.Sections), len(want.Sections))
			}
		})
	}
}

func TestAnalyze_AuthFailureFatalWhenConfigured(t *testing.T) {
	remote := &stubRemote{err: &RemoteError{Kind: FailureAuth, Err: errors.New("bad key")}}
	analyzer := newAnalyzer(remote, false)

	_, err := analyzer.Analyze(context.Background(), experienceOnlyResume)
	if err == nil {
		t.Fatal("Analyze() expected auth error to surface under fatal policy")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Kind != FailureAuth {
		t.Errorf("error = %v, want auth RemoteError", err)
	}
}

func TestAnalyze_OtherFailuresStillDegradeUnderFatalAuthPolicy(t *testing.T) {
	remote := &stubRemote{err: &RemoteError{Kind: FailureService, Err: errors.New("down")}}
	analyzer := newAnalyzer(remote, false)

	result, err := analyzer.Analyze(context.Background(), experienceOnlyResume)
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}
	if result == nil || len(result.Sections) == 0 {
		t.Error("Analyze() should have produced a heuristic result")
	}
}
