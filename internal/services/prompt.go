package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hkhan122/ResumeAnalyzer/internal/models"
)

// maxPromptContentLength bounds how much resume text goes into one prompt.
const maxPromptContentLength = 8000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSectionPrompt asks for exactly the labeled fields the response parser
// looks for.
func (pb *PromptBuilder) BuildSectionPrompt(name models.Section, sectionText string) string {
	return fmt.Sprintf(`You are an expert resume reviewer analyzing the %s section of a resume.

%s SECTION CONTENT:
%s

Provide your analysis in exactly this format:

Score (1-10): <integer score>
Strengths: <2-3 sentences on what works well>
Areas for Improvement: <2-3 sentences on weaknesses>
Recommendations: <2-3 concrete suggestions>

Be specific and reference the actual content. Do not add any other headings.`,
		name, strings.ToUpper(string(name)), truncate(sectionText, maxPromptContentLength))
}

// BuildDocumentPrompt requests one formatted analysis of the whole resume.
func (pb *PromptBuilder) BuildDocumentPrompt(text string) string {
	return fmt.Sprintf(`Please analyze this resume and provide:
1. A score from 1-10
2. Brief feedback (2-3 sentences)

Resume content:
%s`, truncate(text, maxPromptContentLength))
}

func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}

	// Back off to a rune boundary so the cut never leaves a partial byte.
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "\n[content truncated for length]"
}
