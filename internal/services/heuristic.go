package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/hkhan122/ResumeAnalyzer/internal/models"
)

const maxRecommendations = 5

// sectionPatterns pairs a section header pattern with the content signals
// that earn bonus points. The first metric pattern is the section's key
// keyword category, checked by the recommendation triggers. Kept declarative
// so the tables can be tested apart from the scoring.
type sectionPatterns struct {
	header  *regexp.Regexp
	metrics []*regexp.Regexp
}

var heuristicPatterns = map[models.Section]sectionPatterns{
	models.SectionExperience: {
		header: regexp.MustCompile(`(?i)(experience|work history|employment)`),
		metrics: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(led|managed|developed|created|implemented|improved|increased|launched|delivered)\b`),
			regexp.MustCompile(`(?i)\b\d+\+?\s*(years?|months?)\b`),
			regexp.MustCompile(`(?i)\b(engineer|manager|developer|analyst|director|consultant|intern)\b`),
		},
	},
	models.SectionEducation: {
		header: regexp.MustCompile(`(?i)(education|academic|degree)`),
		metrics: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(bachelor|master|phd|mba|diploma|certification)\b`),
			regexp.MustCompile(`(?i)\b(university|college|institute|school)\b`),
			regexp.MustCompile(`(?i)\b(gpa|honors|cum laude|scholarship)\b`),
		},
	},
	models.SectionSkills: {
		header: regexp.MustCompile(`(?i)(skills|technical|proficient)`),
		metrics: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(python|java|javascript|typescript|golang|ruby|sql)\b`),
			regexp.MustCompile(`(?i)\b(docker|kubernetes|aws|azure|gcp|git|linux|react)\b`),
			regexp.MustCompile(`(?i)\b(advanced|intermediate|expert|fluent|familiar)\b`),
		},
	},
	models.SectionProjects: {
		header: regexp.MustCompile(`(?i)(projects|portfolio|work samples)`),
		metrics: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(built|designed|architected|deployed|published|contributed)\b`),
			regexp.MustCompile(`(?i)\b(github|gitlab|open[- ]source|demo)\b`),
			regexp.MustCompile(`(?i)(\d+%|\d+x\b|\d+k?\s+(users|downloads|stars))`),
		},
	},
}

// quantifiableMetricPattern marks resumes that back claims with numbers.
var quantifiableMetricPattern = regexp.MustCompile(`(?i)(\d+%|\$\d+|\d+\+?\s*(years?|months?|users|projects))`)

// sectionAdvice holds the canned recommendation for each trigger condition.
type sectionAdvice struct {
	addDetail   string
	addKeywords string
	addMetrics  string
}

var heuristicAdvice = map[models.Section]sectionAdvice{
	models.SectionExperience: {
		addDetail:   "Expand the experience section with more specific accomplishments.",
		addKeywords: "Describe roles with action verbs such as 'led', 'developed' or 'implemented'.",
		addMetrics:  "Quantify your experience with numbers: team size, revenue impact or timeframes.",
	},
	models.SectionEducation: {
		addDetail:   "Add more detail to the education section, such as coursework or thesis topics.",
		addKeywords: "Name your degree and field of study explicitly.",
		addMetrics:  "Include measurable academic results such as GPA or graduation year.",
	},
	models.SectionSkills: {
		addDetail:   "List more of the concrete technologies and tools you work with.",
		addKeywords: "Name specific languages and platforms rather than broad skill areas.",
		addMetrics:  "Indicate depth of each skill, such as years of use or proficiency level.",
	},
	models.SectionProjects: {
		addDetail:   "Describe individual projects with their goals and your role in them.",
		addKeywords: "Lead project descriptions with outcome verbs such as 'built' or 'deployed'.",
		addMetrics:  "Add measurable project outcomes such as user counts or performance gains.",
	},
}

type sectionScore struct {
	score   float64
	details []string
}

type HeuristicService interface {
	Analyze(text string) *models.AnalysisResult
}

type heuristicService struct{}

func NewHeuristicService() HeuristicService {
	return &heuristicService{}
}

// Analyze scores the resume with the pattern tables alone, no network
// access. The result is deterministic for a given input. Empty input yields
// the canned empty result instead of an error.
func (h *heuristicService) Analyze(text string) *models.AnalysisResult {
	if strings.TrimSpace(text) == "" {
		return &models.AnalysisResult{Sections: map[models.Section]models.SectionAnalysis{}}
	}

	scores := make(map[models.Section]sectionScore, len(models.AllSections))
	var total float64

	for _, name := range models.AllSections {
		s := scoreSection(text, heuristicPatterns[name])
		scores[name] = s
		total += s.score
	}

	// The mean always runs over the four fixed sections; a missing section
	// contributes a zero score.
	overall := total / float64(len(models.AllSections))

	recommendations := buildRecommendations(text, scores)

	sections := make(map[models.Section]models.SectionAnalysis, len(scores))
	for _, name := range models.AllSections {
		sections[name] = buildSectionAnalysis(name, scores[name], recommendations[name])
	}

	return &models.AnalysisResult{
		OverallScore: math.Round(overall*10) / 10,
		Sections:     sections,
	}
}

func scoreSection(text string, p sectionPatterns) sectionScore {
	sectionCount := len(p.header.FindAllString(text, -1))

	contentScore := 0
	seen := make(map[string]struct{})
	var details []string
	for _, metric := range p.metrics {
		for _, match := range metric.FindAllString(text, -1) {
			contentScore++
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			details = append(details, match)
		}
	}

	base := math.Min(10, float64(sectionCount*2))
	bonus := math.Min(5, float64(contentScore)/2)

	// base + bonus can exceed 10; the sum is deliberately not clamped.
	return sectionScore{score: base + bonus, details: details}
}

// buildRecommendations applies the trigger conditions to every section
// scoring below 8, in report order, and stops once the overall cap is hit.
func buildRecommendations(text string, scores map[models.Section]sectionScore) map[models.Section][]string {
	out := make(map[models.Section][]string)
	count := 0

	for _, name := range models.AllSections {
		if scores[name].score >= 8 {
			continue
		}
		for _, rec := range sectionTriggers(text, name, scores[name]) {
			if count >= maxRecommendations {
				return out
			}
			out[name] = append(out[name], rec)
			count++
		}
	}

	return out
}

func sectionTriggers(text string, name models.Section, s sectionScore) []string {
	advice := heuristicAdvice[name]

	var recs []string
	if len(s.details) < 3 {
		recs = append(recs, advice.addDetail)
	}
	if !heuristicPatterns[name].metrics[0].MatchString(text) {
		recs = append(recs, advice.addKeywords)
	}
	if !quantifiableMetricPattern.MatchString(text) {
		recs = append(recs, advice.addMetrics)
	}
	return recs
}

func buildSectionAnalysis(name models.Section, s sectionScore, recs []string) models.SectionAnalysis {
	score := int(math.Round(s.score))

	var strengths, improvements string
	switch {
	case s.score >= 8:
		strengths = fmt.Sprintf("Strong %s section with %d relevant details.", name, len(s.details))
	case s.score >= 5:
		strengths = fmt.Sprintf("Adequate %s section.", name)
		improvements = fmt.Sprintf("The %s section could stand out more with concrete evidence.", name)
	default:
		improvements = fmt.Sprintf("The %s section needs more detail.", name)
	}

	return models.SectionAnalysis{
		Score:           &score,
		Strengths:       strengths,
		Improvements:    improvements,
		Recommendations: strings.Join(recs, "\n"),
	}
}

// RenderReport produces the legacy free-text view of a structured result:
// score line, bulleted feedback, per-section scores, numbered
// recommendations and the fixed writing tips block.
func RenderReport(result *models.AnalysisResult) string {
	if result == nil || len(result.Sections) == 0 {
		return "Unable to analyze resume at this time. Please try again later."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.1f/10\n\n", result.OverallScore))

	sb.WriteString("Feedback:\n")
	for _, name := range models.AllSections {
		section, ok := result.Sections[name]
		if !ok {
			continue
		}
		if section.Strengths != "" {
			sb.WriteString("- " + section.Strengths + "\n")
		}
		if section.Improvements != "" {
			sb.WriteString("- " + section.Improvements + "\n")
		}
	}

	sb.WriteString("\nSection Scores:\n")
	for _, name := range models.AllSections {
		section, ok := result.Sections[name]
		if !ok || section.Score == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s: %d/10\n", name, *section.Score))
	}

	n := 0
	var recLines []string
	for _, name := range models.AllSections {
		for _, rec := range strings.Split(result.Sections[name].Recommendations, "\n") {
			if strings.TrimSpace(rec) == "" {
				continue
			}
			n++
			recLines = append(recLines, fmt.Sprintf("%d. %s", n, rec))
		}
	}
	if len(recLines) > 0 {
		sb.WriteString("\nRecommendations:\n")
		sb.WriteString(strings.Join(recLines, "\n"))
		sb.WriteString("\n")
	}

	sb.WriteString("\nGeneral Writing Tips:\n")
	sb.WriteString("- Keep bullet points concise and lead with action verbs.\n")
	sb.WriteString("- Quantify achievements wherever possible.\n")
	sb.WriteString("- Tailor the resume to the role you are applying for.\n")
	sb.WriteString("- Proofread for spelling and consistent formatting.\n")

	return sb.String()
}
