package services

import (
	"context"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

const (
	DefaultHistoryWindowDays = 90
	MaxQueryRangeDays        = 366
)

// Clock returns the current instant. Services turn it into a calendar day
// with their configured location before calling the analyzer.
type Clock func() time.Time

// SummaryCache memoizes summaries per user and day. Implementations must be
// safe for concurrent use and may silently drop entries.
//
// Every Invalidate bumps the user's generation. Set stores the summary only
// if the generation still equals the one read before the data was loaded,
// so a summary computed across a mutation is never cached.
type SummaryCache interface {
	Get(ctx context.Context, userID, day string) (*domain.StreakSummary, bool)
	Generation(ctx context.Context, userID string) (int64, bool)
	Set(ctx context.Context, userID, day string, generation int64, summary *domain.StreakSummary)
	Invalidate(ctx context.Context, userID string)
}

// StreakNotifier is told when a user's completions changed.
type StreakNotifier interface {
	Enqueue(userID string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, string) (*domain.StreakSummary, bool) { return nil, false }
func (noopCache) Generation(context.Context, string) (int64, bool)                  { return 0, false }
func (noopCache) Set(context.Context, string, string, int64, *domain.StreakSummary) {}
func (noopCache) Invalidate(context.Context, string)                                {}

type noopNotifier struct{}

func (noopNotifier) Enqueue(string) {}

type calendar struct {
	clock Clock
	loc   *time.Location
}

func newCalendar(clock Clock, loc *time.Location) calendar {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return calendar{clock: clock, loc: loc}
}

func (c calendar) today() time.Time {
	return domain.Today(c.clock(), c.loc)
}

// window returns the inclusive [from, to] range of days ending today.
func (c calendar) window(days int) (string, string) {
	today := c.today()
	return domain.FormatDate(today.AddDate(0, 0, -(days - 1))), domain.FormatDate(today)
}
