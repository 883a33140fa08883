package repair

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

type ollamaRepairer struct {
	client *api.Client
	model  string
}

const ollamaDefault = "phi4:latest"

func newOllamaRepairer(cfg Config) (*ollamaRepairer, error) {
	var c *api.Client
	if host := strings.TrimSpace(cfg.OllamaHost); host != "" {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("ollama: bad host %q: %w", host, err)
		}
		c = api.NewClient(u, http.DefaultClient)
	} else {
		var err error
		c, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama client init: %w", err)
		}
	}
	p := &ollamaRepairer{client: c, model: ollamaDefault}
	if m := strings.TrimSpace(cfg.Model); m != "" {
		p.model = m
	}
	return p, nil
}

func (p *ollamaRepairer) Name() string { return "ollama/" + p.model }

func (p *ollamaRepairer) Repair(ctx context.Context, req Request) (string, error) {
	stream := false
	genReq := &api.GenerateRequest{
		Model:  p.model,
		Prompt: buildRepairPrompt(req),
		Stream: &stream,
	}
	var out strings.Builder
	if err := p.client.Generate(ctx, genReq, func(gr api.GenerateResponse) error {
		out.WriteString(gr.Response)
		return nil
	}); err != nil {
		return "", fmt.Errorf("%w: ollama generate: %w", ErrRepairFailed, err)
	}
	return ExtractScript(out.String()), nil
}
