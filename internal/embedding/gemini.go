package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "text-embedding-004"
	defaultDimensions  = 768
)

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// GeminiProvider embeds text through the Gemini API.
type GeminiProvider struct {
	models     contentEmbedder
	model      string
	dimensions int
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, dimensions int) (*GeminiProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiProvider(client.Models, model, dimensions), nil
}

func newGeminiProvider(models contentEmbedder, model string, dimensions int) *GeminiProvider {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	if dimensions <= 0 {
		dimensions = defaultDimensions
	}
	return &GeminiProvider{models: models, model: model, dimensions: dimensions}
}

func (g *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	text = Truncate(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	dims := int32(g.dimensions)
	resp, err := g.models.EmbedContent(ctx, g.model, genai.Text(text), &genai.EmbedContentConfig{
		TaskType:             "SEMANTIC_SIMILARITY",
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("gemini api returned no embeddings")
	}

	v := resp.Embeddings[0].Values
	if err := checkDimensions(v, g.dimensions); err != nil {
		return nil, err
	}
	return v, nil
}

func (g *GeminiProvider) Model() string   { return g.model }
func (g *GeminiProvider) Dimensions() int { return g.dimensions }
