package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type traceStartKey struct{}

type traceStart struct {
	at  time.Time
	sql string
}

// slowQueryTracer logs statements that run longer than threshold, and every failed statement at debug.
type slowQueryTracer struct {
	threshold time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func (t *slowQueryTracer) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceStartKey{}, traceStart{at: t.clock(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(traceStartKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.clock().Sub(start.at)

	if data.Err != nil {
		t.logger.Debug("query failed", zap.String("sql", compactSQL(start.sql)), zap.Duration("elapsed", elapsed), zap.Error(data.Err))
		return
	}
	if elapsed >= t.threshold {
		t.logger.Warn("slow query",
			zap.String("sql", compactSQL(start.sql)),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", data.CommandTag.RowsAffected()),
		)
	}
}

// compactSQL collapses whitespace and caps the statement at 200 characters.
func compactSQL(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
