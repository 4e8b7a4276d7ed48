package embedding

import (
	"context"
	"fmt"
	"strings"

	"talent-match/internal/config"

	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// New builds the configured provider wrapped with retries and, when cache is non-nil, a vector cache.
func New(ctx context.Context, cfg config.EmbeddingConfig, geminiKey string, cache Cache, logger *zap.Logger) (Provider, error) {
	var base Provider
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		g, err := NewGeminiProvider(ctx, geminiKey, cfg.Model, cfg.Dimensions)
		if err != nil {
			return nil, err
		}
		base = g
	case ProviderOllama:
		base = NewOllamaProvider(cfg.BaseURL, WithModel(cfg.Model), WithDimensions(cfg.Dimensions))
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}

	var p Provider = NewResilient(base, ResilientOptions{
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RateLimit:  cfg.RateLimit,
	}, logger)
	if cache != nil {
		p = NewCached(p, cache, cfg.CacheTTL, logger)
	}

	if logger != nil {
		logger.Info("embedding provider ready",
			zap.String("provider", cfg.Provider),
			zap.String("model", p.Model()),
			zap.Int("dimensions", p.Dimensions()),
		)
	}
	return p, nil
}
