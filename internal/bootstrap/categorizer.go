package bootstrap

import (
	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/config"
	"github.com/waqarniyazi/aiportalx/internal/domain"
	openaiCat "github.com/waqarniyazi/aiportalx/internal/transport/openai"
	categorizeuc "github.com/waqarniyazi/aiportalx/internal/usecase/categorize"
)

// Categorizer assembles the categorizer chain:
// OpenAI -> Vocabulary -> Instrumented (budget + logging).
// It returns nil when the categorizer is disabled.
func Categorizer(cfg config.CategorizerConfig, logger *zap.Logger) *categorizeuc.InstrumentedCategorizer {
	if !cfg.Enabled {
		return nil
	}

	base := openaiCat.NewCategorizer(&openaiCat.Config{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
		Provider: cfg.Provider,
		Logger:   logger,
	})

	// Pass a nil interface, not a typed nil pointer, when no budget is set.
	var budget categorizeuc.BudgetChecker
	if cfg.DailyLimit > 0 {
		action := categorizeuc.BudgetActionWarn
		if cfg.Action == string(categorizeuc.BudgetActionReject) {
			action = categorizeuc.BudgetActionReject
		}
		budget = categorizeuc.NewBudgetTracker(cfg.DailyLimit, action, logger)
	}

	logger.Info("Categorizer enabled",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Int64("daily_limit", cfg.DailyLimit),
	)
	return categorizeuc.NewInstrumentedCategorizer(
		domain.NewVocabularyCategorizer(base), cfg.Provider, cfg.Model, budget, logger,
	)
}
