package categorize

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/domain"
)

// BudgetAction defines behavior when the request budget is exceeded.
type BudgetAction string

const (
	// BudgetActionWarn logs a warning but allows the request.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject blocks the request.
	BudgetActionReject BudgetAction = "reject"
)

// BudgetTracker is an in-memory daily request budget for the categorizer.
// The counter resets at midnight UTC.
type BudgetTracker struct {
	mu        sync.Mutex
	used      int64
	limit     int64
	action    BudgetAction
	lastReset time.Time
	now       func() time.Time
	logger    *zap.Logger
}

// NewBudgetTracker creates a tracker allowing limit requests per day.
// A limit of 0 means unlimited.
func NewBudgetTracker(limit int64, action BudgetAction, logger *zap.Logger) *BudgetTracker {
	b := &BudgetTracker{limit: limit, action: action, now: time.Now, logger: logger}
	b.lastReset = truncateToDay(b.now().UTC())
	return b
}

// Check verifies the budget allows a new request.
func (b *BudgetTracker) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfNeeded()
	if b.limit == 0 || b.used < b.limit {
		return nil
	}
	if b.action == BudgetActionReject {
		return fmt.Errorf("%w: daily request budget of %d exhausted", domain.ErrCategorizerUnavailable, b.limit)
	}
	b.logger.Warn("Categorizer budget exceeded",
		zap.Int64("used", b.used),
		zap.Int64("limit", b.limit),
	)
	return nil
}

// Record registers one request.
func (b *BudgetTracker) Record() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetIfNeeded()
	b.used++
}

// Remaining returns requests left today (-1 if unlimited).
func (b *BudgetTracker) Remaining() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfNeeded()
	if b.limit == 0 {
		return -1
	}
	return max(b.limit-b.used, 0)
}

func (b *BudgetTracker) resetIfNeeded() {
	if today := truncateToDay(b.now().UTC()); today.After(b.lastReset) {
		b.used = 0
		b.lastReset = today
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
