package models

// Section is one of the four fixed resume categories.
type Section string

const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionProjects   Section = "projects"
)

// AllSections lists the fixed categories in report order.
var AllSections = []Section{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
}

// SectionAnalysis holds the assessment of a single resume section. Score is
// nil when the analysis produced no usable score for the section.
type SectionAnalysis struct {
	Score           *int   `json:"score,omitempty"`
	Strengths       string `json:"strengths"`
	Improvements    string `json:"improvements"`
	Recommendations string `json:"recommendations"`
}

// AnalysisResult is the structured outcome of analyzing one resume.
type AnalysisResult struct {
	OverallScore float64                     `json:"overall_score"`
	Sections     map[Section]SectionAnalysis `json:"sections"`
}
