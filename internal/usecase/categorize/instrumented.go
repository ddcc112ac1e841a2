package categorize

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/domain"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record()
}

// InstrumentedCategorizer wraps a Categorizer with budget enforcement and
// logging. Transport metrics are recorded in transport/openai.
type InstrumentedCategorizer struct {
	inner    domain.Categorizer
	provider string
	model    string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedCategorizer wraps a categorizer. budget can be nil.
func NewInstrumentedCategorizer(
	inner domain.Categorizer, provider, model string,
	budget BudgetChecker, logger *zap.Logger,
) *InstrumentedCategorizer {
	return &InstrumentedCategorizer{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		logger:   logger,
	}
}

// Categorize checks the budget, delegates to inner and records the call.
func (c *InstrumentedCategorizer) Categorize(
	ctx context.Context, name, abstract string, vocabulary []string,
) ([]string, error) {
	if c.budget != nil {
		if err := c.budget.Check(ctx); err != nil {
			c.logger.Error("Categorizer budget exceeded",
				zap.String("provider", c.provider),
				zap.String("model", c.model),
				zap.Error(err),
			)
			return nil, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	labels, err := c.inner.Categorize(ctx, name, abstract, vocabulary)
	duration := time.Since(start)

	if c.budget != nil {
		c.budget.Record()
	}
	if err != nil {
		c.logger.Error("Categorize request failed",
			zap.String("provider", c.provider),
			zap.String("model", c.model),
			zap.String("record", name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("categorize: %w", err)
	}

	c.logger.Debug("Categorize request completed",
		zap.String("provider", c.provider),
		zap.String("model", c.model),
		zap.String("record", name),
		zap.Duration("duration", duration),
		zap.Strings("labels", labels),
	)
	return labels, nil
}

// HealthCheck forwards to inner when it supports health checks.
func (c *InstrumentedCategorizer) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}
