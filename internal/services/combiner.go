package services

import (
	"math"

	"github.com/hkhan122/ResumeAnalyzer/internal/models"
)

// Combine aggregates per-section analyses into one result. The overall score
// is the mean of the scores that are present, rounded to one decimal, or 0.0
// when no section produced one. Sections that were attempted but came back
// without a score stay in the mapping.
func Combine(sections map[models.Section]models.SectionAnalysis) *models.AnalysisResult {
	var sum float64
	var count int

	for _, analysis := range sections {
		if analysis.Score == nil {
			continue
		}
		sum += float64(*analysis.Score)
		count++
	}

	overall := 0.0
	if count > 0 {
		overall = math.Round(sum/float64(count)*10) / 10
	}

	return &models.AnalysisResult{
		OverallScore: overall,
		Sections:     sections,
	}
}
