package services

import (
	"testing"

	"github.com/hkhan122/ResumeAnalyzer/internal/models"
)

func TestCombine(t *testing.T) {
	score := func(n int) *int { return &n }

	tests := []struct {
		name        string
		sections    map[models.Section]models.SectionAnalysis
		wantOverall float64
	}{
		{
			name: "scoreless section excluded from the mean",
			sections: map[models.Section]models.SectionAnalysis{
				models.SectionExperience: {Score: score(8)},
				models.SectionEducation:  {Score: score(6)},
				models.SectionSkills:     {Score: nil, Strengths: "listed but unscored"},
				models.SectionProjects:   {Score: score(4)},
			},
			wantOverall: 6.0,
		},
		{
			name: "single score",
			sections: map[models.Section]models.SectionAnalysis{
				models.SectionExperience: {Score: score(7)},
			},
			wantOverall: 7.0,
		},
		{
			name: "rounded to one decimal",
			sections: map[models.Section]models.SectionAnalysis{
				models.SectionExperience: {Score: score(8)},
				models.SectionEducation:  {Score: score(7)},
				models.SectionSkills:     {Score: score(7)},
			},
			wantOverall: 7.3,
		},
		{
			name: "no scores at all",
			sections: map[models.Section]models.SectionAnalysis{
				models.SectionExperience: {},
			},
			wantOverall: 0.0,
		},
		{
			name:        "no sections attempted",
			sections:    map[models.Section]models.SectionAnalysis{},
			wantOverall: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Combine(tt.sections)

			if result.OverallScore != tt.wantOverall {
				t.Errorf("overall score = %v, want %v", result.OverallScore, tt.wantOverall)
			}
			if len(result.Sections) != len(tt.sections) {
				t.Errorf("sections kept = %d, want %d", len(result.Sections), len(tt.sections))
			}
		})
	}
}

func TestCombine_KeepsScorelessSection(t *testing.T) {
	sections := map[models.Section]models.SectionAnalysis{
		models.SectionSkills: {Strengths: "attempted, parse found no score"},
	}

	result := Combine(sections)

	skills, ok := result.Sections[models.SectionSkills]
	if !ok {
		t.Fatal("attempted section dropped from result")
	}
	if skills.Strengths != "attempted, parse found no score" {
		t.Errorf("section content changed: %+v", skills)
	}
}
