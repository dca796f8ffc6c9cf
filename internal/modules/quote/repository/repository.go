package repository

import (
	"context"

	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
)

// Repository defines the interface for quote persistence.
// Every listing is ordered by display date descending, then id descending.
type Repository interface {
	List(ctx context.Context) ([]*domain.Quote, error)
	ListDue(ctx context.Context, asOf string) ([]*domain.Quote, error)
	Create(ctx context.Context, input contract.CreateQuoteInput) (*domain.Quote, error)
	// Delete is idempotent: a missing id is not an error.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
