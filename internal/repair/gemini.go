package repair

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

type geminiRepairer struct {
	client *genai.Client
	model  string
}

const geminiDefault = "gemini-2.0-flash"

func newGeminiRepairer(ctx context.Context, cfg Config) (*geminiRepairer, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client init: %w", err)
	}
	p := &geminiRepairer{client: c, model: geminiDefault}
	if m := strings.TrimSpace(cfg.Model); m != "" {
		if !strings.HasPrefix(strings.ToLower(m), "gemini-") {
			return nil, fmt.Errorf("model %q is not a gemini model", m)
		}
		p.model = m
	}
	return p, nil
}

func (p *geminiRepairer) Name() string { return "gemini/" + p.model }

func (p *geminiRepairer) Repair(ctx context.Context, req Request) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(buildRepairPrompt(req)), nil)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate: %w", ErrRepairFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini: empty response", ErrRepairFailed)
	}
	return ExtractScript(resp.Candidates[0].Content.Parts[0].Text), nil
}
