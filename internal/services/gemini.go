package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/hkhan122/ResumeAnalyzer/internal/config"
)

type geminiProvider struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewGeminiProvider wraps the Gemini API in the CompletionProvider contract.
func NewGeminiProvider(ctx context.Context, cfg config.RemoteConfig) (CompletionProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &geminiProvider{client: client, modelName: modelName, timeout: cfg.Timeout}, nil
}

func (p *geminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// Temperature 0 keeps repeated analyses of the same resume stable.
	temperature := float32(0)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 1024,
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.modelName, genai.Text(prompt), cfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &RemoteError{Kind: FailureService, Err: fmt.Errorf("request timed out after %s", p.timeout)}
		}
		return "", &RemoteError{Kind: FailureService, Err: fmt.Errorf("failed to generate text: %w", err)}
	}
	if resp == nil {
		return "", &RemoteError{Kind: FailureEmpty, Err: fmt.Errorf("no response generated")}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &RemoteError{Kind: FailureEmpty, Err: fmt.Errorf("no text content in response")}
	}

	return text, nil
}
