package service

import (
	"context"

	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
	"github.com/samber/oops"
)

// SampleQuotes are stored on first start so a fresh feed is not empty.
var SampleQuotes = []contract.CreateQuoteInput{
	{Content: "Der frühe Vogel fängt den Wurm, aber die zweite Maus bekommt den Käse.", DisplayDate: "2026-01-06"},
	{Content: "Ich bin nicht faul, ich bin im Energiesparmodus.", DisplayDate: "2026-01-07"},
	{Content: "Arbeit ist schön, deshalb lasse ich immer etwas für morgen übrig.", DisplayDate: "2026-01-08"},
}

// SeedIfEmpty inserts SampleQuotes when the store holds no quotes and
// reports how many were added.
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, oops.In("quote-service").With("context", "failed to count quotes before seeding").Wrap(err)
	}
	if count > 0 {
		return 0, nil
	}

	for i, input := range SampleQuotes {
		if _, err := s.repo.Create(ctx, input); err != nil {
			return i, oops.In("quote-service").With("display_date", input.DisplayDate, "context", "failed to seed quote").Wrap(err)
		}
	}

	s.logger.Info("Seeded sample quotes", "count", len(SampleQuotes))
	return len(SampleQuotes), nil
}
