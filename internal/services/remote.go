package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/hkhan122/ResumeAnalyzer/internal/config"
	"github.com/hkhan122/ResumeAnalyzer/internal/models"
)

// FailureKind classifies remote analysis failures for the fallback policy.
type FailureKind string

const (
	FailureAuth    FailureKind = "auth"
	FailureService FailureKind = "service"
	FailureEmpty   FailureKind = "empty_result"
	FailureParse   FailureKind = "parse"
)

// RemoteError wraps a failed call to the text-generation provider.
type RemoteError struct {
	Kind FailureKind
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote analysis failed (%s): %v", e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// CompletionProvider is the one contract every configured provider is
// normalized into: given a prompt, return text or a *RemoteError.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type huggingFaceProvider struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewHuggingFaceProvider talks to the Hugging Face inference API. The
// response text lives at [0].summary_text.
func NewHuggingFaceProvider(cfg config.RemoteConfig) CompletionProvider {
	return &huggingFaceProvider{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *huggingFaceProvider) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"max_length": 512,
			"min_length": 50,
			"do_sample":  false,
		},
	}

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &RemoteError{Kind: FailureService, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &RemoteError{Kind: FailureService, Err: err}
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return "", err
	}

	var result []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &RemoteError{Kind: FailureParse, Err: err}
	}
	if len(result) == 0 || strings.TrimSpace(result[0].SummaryText) == "" {
		return "", &RemoteError{Kind: FailureEmpty, Err: fmt.Errorf("response has no summary_text")}
	}

	return result[0].SummaryText, nil
}

type openAIProvider struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

// NewOpenAIProvider talks to any chat-completions compatible endpoint. The
// response text lives at choices[0].message.content.
func NewOpenAIProvider(cfg config.RemoteConfig) CompletionProvider {
	return &openAIProvider{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *openAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0,
	}

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &RemoteError{Kind: FailureService, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &RemoteError{Kind: FailureService, Err: err}
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return "", err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &RemoteError{Kind: FailureParse, Err: err}
	}
	if result.Error != nil {
		return "", &RemoteError{Kind: FailureService, Err: fmt.Errorf("API error: %s", result.Error.Message)}
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", &RemoteError{Kind: FailureEmpty, Err: fmt.Errorf("response has no message content")}
	}

	return result.Choices[0].Message.Content, nil
}

func statusError(status int) error {
	switch {
	case status == http.StatusForbidden:
		return &RemoteError{Kind: FailureAuth, Err: fmt.Errorf("authentication failed, check the API key")}
	case status != http.StatusOK:
		return &RemoteError{Kind: FailureService, Err: fmt.Errorf("API error: %d", status)}
	}
	return nil
}

type RemoteAnalysisService interface {
	AnalyzeSections(ctx context.Context, sections map[models.Section]string) (*models.AnalysisResult, error)
	AnalyzeDocument(ctx context.Context, text string) (string, error)
}

type remoteAnalysisService struct {
	provider      CompletionProvider
	promptBuilder *PromptBuilder
}

func NewRemoteAnalysisService(provider CompletionProvider) RemoteAnalysisService {
	return &remoteAnalysisService{
		provider:      provider,
		promptBuilder: NewPromptBuilder(),
	}
}

// AnalyzeSections issues one call per present section, a single attempt
// each. A failed section is recorded with empty fields instead of aborting
// the others; the whole call fails only when every section failed, or right
// away on an auth failure since the credential will not improve mid-request.
func (r *remoteAnalysisService) AnalyzeSections(ctx context.Context, sections map[models.Section]string) (*models.AnalysisResult, error) {
	if len(sections) == 0 {
		return nil, &RemoteError{Kind: FailureEmpty, Err: fmt.Errorf("no sections found to analyze")}
	}

	parsed := make(map[models.Section]models.SectionAnalysis, len(sections))
	failures := 0
	var firstErr error

	for _, name := range models.AllSections {
		text, ok := sections[name]
		if !ok {
			continue
		}

		response, err := r.provider.Complete(ctx, r.promptBuilder.BuildSectionPrompt(name, text))
		if err != nil {
			var remoteErr *RemoteError
			if errors.As(err, &remoteErr) && remoteErr.Kind == FailureAuth {
				return nil, err
			}

			log.Printf("⚠️  Remote analysis of %s section failed: %v\n", name, err)
			parsed[name] = models.SectionAnalysis{}
			failures++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		parsed[name] = ParseSectionAnalysis(response)
	}

	if failures == len(sections) {
		return nil, firstErr
	}

	return Combine(parsed), nil
}

// AnalyzeDocument sends the whole resume in one prompt and returns the raw
// formatted report text.
func (r *remoteAnalysisService) AnalyzeDocument(ctx context.Context, text string) (string, error) {
	response, err := r.provider.Complete(ctx, r.promptBuilder.BuildDocumentPrompt(text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// scoreLabels are tried in order; the first one present wins.
var scoreLabels = []string{"Score (1-10):", "SCORE:", "Score:"}

// ParseSectionAnalysis extracts the labeled fields from a model response
// using ordered substring search with bounded capture between labels. Any
// field not found is left empty and a missing score stays nil.
func ParseSectionAnalysis(response string) models.SectionAnalysis {
	analysis := models.SectionAnalysis{}

	for _, label := range scoreLabels {
		idx := strings.Index(response, label)
		if idx == -1 {
			continue
		}
		if score, ok := leadingInt(response[idx+len(label):]); ok {
			analysis.Score = &score
		}
		break
	}

	strengthsIdx := strings.Index(response, "Strengths:")
	improvementsIdx := strings.Index(response, "Areas for Improvement:")
	recommendationsIdx := strings.Index(response, "Recommendations:")

	if strengthsIdx != -1 {
		end := len(response)
		if improvementsIdx > strengthsIdx {
			end = improvementsIdx
		}
		analysis.Strengths = strings.TrimSpace(response[strengthsIdx+len("Strengths:") : end])
	}
	if improvementsIdx != -1 {
		end := len(response)
		if recommendationsIdx > improvementsIdx {
			end = recommendationsIdx
		}
		analysis.Improvements = strings.TrimSpace(response[improvementsIdx+len("Areas for Improvement:") : end])
	}
	if recommendationsIdx != -1 {
		analysis.Recommendations = strings.TrimSpace(response[recommendationsIdx+len("Recommendations:"):])
	}

	return analysis
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
