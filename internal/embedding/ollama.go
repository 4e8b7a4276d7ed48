package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "nomic-embed-text"
)

// OllamaProvider embeds text through a local Ollama server.
type OllamaProvider struct {
	baseURL    string
	model      string
	dimensions int
	httpClient *http.Client
}

type OllamaOption func(*OllamaProvider)

func WithHTTPClient(c *http.Client) OllamaOption {
	return func(p *OllamaProvider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

func WithModel(model string) OllamaOption {
	return func(p *OllamaProvider) {
		if model = strings.TrimSpace(model); model != "" {
			p.model = model
		}
	}
}

func WithDimensions(n int) OllamaOption {
	return func(p *OllamaProvider) {
		if n > 0 {
			p.dimensions = n
		}
	}
}

func NewOllamaProvider(baseURL string, opts ...OllamaOption) *OllamaProvider {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	p := &OllamaProvider{
		baseURL:    baseURL,
		model:      defaultOllamaModel,
		dimensions: defaultDimensions,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type ollamaEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	text = Truncate(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	body, err := json.Marshal(ollamaEmbedRequest{Model: p.model, Input: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var out ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding embed response: %w", err)
	}
	if len(out.Embeddings) == 0 {
		return nil, errors.New("embed: empty embeddings array")
	}
	v := out.Embeddings[0]
	if err := checkDimensions(v, p.dimensions); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *OllamaProvider) Model() string   { return p.model }
func (p *OllamaProvider) Dimensions() int { return p.dimensions }

// StatusError is a non-200 response from an HTTP provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("embed: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("embed: unexpected status %d: %s", e.Code, e.Body)
}
