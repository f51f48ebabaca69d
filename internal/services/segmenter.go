package services

import (
	"regexp"

	"github.com/hkhan122/ResumeAnalyzer/internal/models"
)

// Header patterns accept the common synonyms for each category.
var sectionHeaderPatterns = map[models.Section]*regexp.Regexp{
	models.SectionExperience: regexp.MustCompile(`(?i)(experience|work history|employment)`),
	models.SectionEducation:  regexp.MustCompile(`(?i)(education|academic|degree)`),
	models.SectionSkills:     regexp.MustCompile(`(?i)(skills|technical|proficient)`),
	models.SectionProjects:   regexp.MustCompile(`(?i)(projects|portfolio|work samples)`),
}

type SegmenterService interface {
	Segment(text string) map[models.Section]string
}

type segmenterService struct{}

func NewSegmenterService() SegmenterService {
	return &segmenterService{}
}

// Segment maps each section name to its text span: from the first header
// match to the next occurrence of any header pattern after it, or the end of
// the text. Sections whose header never appears are omitted. Spans are
// computed independently per section by forward scanning, so header words
// embedded in unrelated text can produce overlapping spans; that is an
// accepted limitation of the header heuristic.
func (s *segmenterService) Segment(text string) map[models.Section]string {
	sections := make(map[models.Section]string)

	for _, name := range models.AllSections {
		loc := sectionHeaderPatterns[name].FindStringIndex(text)
		if loc == nil {
			continue
		}

		start := loc[0]
		end := len(text)

		// Search resumes one character past the match start so a header
		// never terminates its own section.
		rest := text[start+1:]
		next := len(rest)
		for _, pattern := range sectionHeaderPatterns {
			if m := pattern.FindStringIndex(rest); m != nil && m[0] < next {
				next = m[0]
			}
		}
		if next < len(rest) {
			end = start + 1 + next
		}

		sections[name] = text[start:end]
	}

	return sections
}
