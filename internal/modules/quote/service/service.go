package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
	"github.com/reshetovitsme/quote-feed/internal/modules/quote/repository"
	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
)

// Service handles quote business logic
type Service struct {
	repo   repository.Repository
	clock  domain.Clock
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock pins the clock used to decide which quotes are due.
func WithClock(clock domain.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a new quote service. "Today" is the current UTC date unless
// WithClock says otherwise.
func New(repo repository.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		clock:  func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every quote, newest display date first.
func (s *Service) List(ctx context.Context) ([]*domain.Quote, error) {
	return s.repo.List(ctx)
}

// Create validates and stores a new quote.
func (s *Service) Create(ctx context.Context, input contract.CreateQuoteInput) (*domain.Quote, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	quote, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quote created", "quote_id", quote.ID, "display_date", quote.DisplayDate)
	return quote, nil
}

// Delete removes a quote. Missing ids succeed silently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Quote deleted", "quote_id", id)
	return nil
}

// ListDue returns the quotes whose display date is on or before asOf.
// An empty asOf means today.
func (s *Service) ListDue(ctx context.Context, asOf string) ([]*domain.Quote, error) {
	if asOf == "" {
		asOf = s.Today()
	}
	return s.repo.ListDue(ctx, asOf)
}

// Count returns the number of stored quotes.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Today returns the service's current date as YYYY-MM-DD.
func (s *Service) Today() string {
	return s.clock.Today()
}
