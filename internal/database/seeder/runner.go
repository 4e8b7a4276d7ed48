package seeder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeder finished", zap.String("seeder", s.Name()), zap.Duration("took", time.Since(start)))
	}
	return nil
}
