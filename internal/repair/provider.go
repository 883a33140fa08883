package repair

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrRepairFailed is in the chain of every error a Repairer returns. The
// supervisor treats it as terminal for the session.
var ErrRepairFailed = errors.New("repair request failed")

const DefaultEndpoint = "https://aixcel.us/api/v1/evolve"

type Config struct {
	Backend    string
	Endpoint   string
	APIKey     string
	Model      string
	OllamaHost string
}

// Request is what a backend needs to propose a fix.
type Request struct {
	ScriptPath string
	Script     string
	CrashLog   string
}

// Repairer turns a failing script and its crash log into a corrected script.
// Implementations send at most one request per call and never retry.
type Repairer interface {
	Name() string
	Repair(ctx context.Context, req Request) (string, error)
}

func New(ctx context.Context, cfg Config) (Repairer, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "evolve"
	}
	switch backend {
	case "evolve", "http":
		return newHTTPRepairer(cfg), nil
	case "gemini":
		return newGeminiRepairer(ctx, cfg)
	case "ollama":
		return newOllamaRepairer(cfg)
	default:
		return nil, fmt.Errorf("unsupported repair backend: %s", backend)
	}
}
