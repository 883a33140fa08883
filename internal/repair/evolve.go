package repair

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// Bodies past this size are rejected; a corrected script is never this large.
const maxResponseBytes = 8 << 20

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("repair service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("repair service returned %d: %s", e.StatusCode, body)
}

func (e *StatusError) Unwrap() error { return ErrRepairFailed }

type evolveRequest struct {
	ScriptFile string `json:"scriptFile"`
	CrashLog   string `json:"crashLog"`
}

type httpRepairer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func newHTTPRepairer(cfg Config) *httpRepairer {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &httpRepairer{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		client:   http.DefaultClient,
	}
}

func (p *httpRepairer) Name() string { return "evolve" }

func (p *httpRepairer) Repair(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(evolveRequest{
		ScriptFile: WrapMarkdown(req.Script),
		CrashLog:   req.CrashLog,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrRepairFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrRepairFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRepairFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrRepairFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	if len(data) > maxResponseBytes {
		return "", fmt.Errorf("%w: response exceeds %d bytes", ErrRepairFailed, maxResponseBytes)
	}

	script, err := decodeBody(resp.Header.Get("Content-Type"), data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRepairFailed, err)
	}
	return script, nil
}

// decodeBody returns the corrected script held in the response. JSON string
// bodies are unquoted first. A fenced block always wins and is used verbatim;
// only a fence-less HTML page is reduced to its <pre> block.
func decodeBody(contentType string, data []byte) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	text := string(data)
	if mediaType == "application/json" {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			text = s
		}
	}

	if hasFence(text) {
		return ExtractScript(text), nil
	}
	if mediaType == "text/html" && looksLikeHTML(text) {
		return htmlToScript(text)
	}
	return text, nil
}
