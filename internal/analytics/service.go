// Package analytics keeps per-day query and token counters in the key-value
// store and rolls them up on read.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kezzyngotho/aura/internal/kv"
)

const (
	// MaxDays is the longest window GetMetrics aggregates
	MaxDays = 30

	bucketTTL     = 35 * 24 * time.Hour
	topCategories = 5
	fetchLimit    = 8
	dateLayout    = "2006-01-02"
)

// ErrInvalidAmount is returned for negative token amounts
var ErrInvalidAmount = errors.New("token amounts must not be negative")

// Service records and aggregates usage counters
type Service struct {
	store  kv.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService(store kv.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) today() string {
	return s.now().UTC().Format(dateLayout)
}

// RecordQuery counts one query under category and marks userID as active
func (s *Service) RecordQuery(ctx context.Context, userID, category string) error {
	date := s.today()
	_, err := kv.Update(ctx, s.store, kv.QueryBucketKey(date), func(b *QueryBucket, _ bool) error {
		if b.Categories == nil {
			b.Categories = make(map[string]int)
		}
		b.Date = date
		b.Total++
		b.Categories[category]++
		return nil
	}, kv.WithTTL(bucketTTL))
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}

	if userID == "" {
		return nil
	}
	seen := s.now().UnixMilli()
	_, err = kv.Update(ctx, s.store, kv.ActiveUsersKey, func(users *map[string]int64, _ bool) error {
		if *users == nil {
			*users = make(map[string]int64)
		}
		(*users)[userID] = seen
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mark user active: %w", err)
	}
	return nil
}

// RecordTokens adds to today's earned and spent totals
func (s *Service) RecordTokens(ctx context.Context, earned, spent float64) error {
	if earned < 0 || spent < 0 {
		return ErrInvalidAmount
	}

	date := s.today()
	_, err := kv.Update(ctx, s.store, kv.TokenBucketKey(date), func(b *TokenBucket, _ bool) error {
		b.Date = date
		b.Earned += earned
		b.Spent += spent
		return nil
	}, kv.WithTTL(bucketTTL))
	if err != nil {
		return fmt.Errorf("failed to record tokens: %w", err)
	}
	return nil
}

// GetMetrics aggregates the last days days, today included. Values outside
// 1..MaxDays are clamped to MaxDays.
func (s *Service) GetMetrics(ctx context.Context, days int) (*Metrics, error) {
	if days <= 0 || days > MaxDays {
		days = MaxDays
	}

	today := s.now().UTC()
	dates := make([]string, days)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i-days+1).Format(dateLayout)
	}

	queries := make([]QueryBucket, days)
	tokens := make([]TokenBucket, days)
	var users map[string]int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i, date := range dates {
		g.Go(func() error {
			return s.load(gctx, kv.QueryBucketKey(date), &queries[i])
		})
		g.Go(func() error {
			return s.load(gctx, kv.TokenBucketKey(date), &tokens[i])
		})
	}
	g.Go(func() error {
		return s.load(gctx, kv.ActiveUsersKey, &users)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}

	m := &Metrics{
		Days:        days,
		UniqueUsers: len(users),
		DailyTrend:  make([]DailyPoint, days),
	}
	counts := make(map[string]int)
	for i, date := range dates {
		m.TotalQueries += queries[i].Total
		m.TokensEarned += tokens[i].Earned
		m.TokensSpent += tokens[i].Spent
		for category, n := range queries[i].Categories {
			counts[category] += n
		}
		m.DailyTrend[i] = DailyPoint{
			Date:         date,
			Queries:      queries[i].Total,
			TokensEarned: tokens[i].Earned,
			TokensSpent:  tokens[i].Spent,
		}
	}
	m.TopCategories = rankCategories(counts, topCategories)

	return m, nil
}

// load decodes key into dst, leaving dst untouched when the key is missing
func (s *Service) load(ctx context.Context, key string, dst any) error {
	if _, err := s.store.Get(ctx, key, dst); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return err
	}
	return nil
}

func rankCategories(counts map[string]int, limit int) []CategoryCount {
	ranked := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		ranked = append(ranked, CategoryCount{Category: category, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
