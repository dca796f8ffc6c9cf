package service

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
	"github.com/reshetovitsme/quote-feed/internal/modules/quote/repository"
	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
	"github.com/reshetovitsme/quote-feed/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepo fails every call with err and counts Create calls.
type failingRepo struct {
	err     error
	creates int
}

func (r *failingRepo) List(context.Context) ([]*domain.Quote, error) { return nil, r.err }
func (r *failingRepo) ListDue(context.Context, string) ([]*domain.Quote, error) {
	return nil, r.err
}
func (r *failingRepo) Create(context.Context, contract.CreateQuoteInput) (*domain.Quote, error) {
	r.creates++
	return nil, r.err
}
func (r *failingRepo) Delete(context.Context, int64) error { return r.err }
func (r *failingRepo) Count(context.Context) (int, error)  { return 0, r.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(date string) domain.Clock {
	ts, _ := time.Parse(domain.DateLayout, date)
	return func() time.Time { return ts.Add(15 * time.Hour) }
}

func newService(t *testing.T, today string) *Service {
	t.Helper()
	repo, err := repository.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return New(repo, WithClock(fixedClock(today)), WithLogger(discardLogger()))
}

func TestListDueDefaultsToToday(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, "2026-01-07")

	for _, date := range []string{"2026-01-06", "2026-01-07", "2026-01-08"} {
		_, err := svc.Create(ctx, contract.CreateQuoteInput{Content: "q " + date, DisplayDate: date})
		require.NoError(t, err)
	}

	due, err := svc.ListDue(ctx, "")
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "2026-01-07", due[0].DisplayDate)
	assert.Equal(t, "2026-01-06", due[1].DisplayDate)

	explicit, err := svc.ListDue(ctx, "2026-01-08")
	require.NoError(t, err)
	assert.Len(t, explicit, 3)

	assert.Equal(t, "2026-01-07", svc.Today())
}

func TestCreateValidatesBeforeStorage(t *testing.T) {
	repo := &failingRepo{err: stderrors.New("must not be called")}
	svc := New(repo, WithLogger(discardLogger()))

	_, err := svc.Create(context.Background(), contract.CreateQuoteInput{Content: "", DisplayDate: "2026-01-06"})

	require.Error(t, err)
	verr, ok := errors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "content", verr.Field)
	assert.Zero(t, repo.creates)
}

func TestStorageErrorsPropagate(t *testing.T) {
	boom := stderrors.New("disk on fire")
	svc := New(&failingRepo{err: boom}, WithLogger(discardLogger()))
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Create(ctx, contract.CreateQuoteInput{Content: "x", DisplayDate: "2026-01-06"})
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, svc.Delete(ctx, 1), boom)

	_, err = svc.ListDue(ctx, "")
	assert.ErrorIs(t, err, boom)

	_, err = svc.SeedIfEmpty(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, "2026-01-07")

	added, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SampleQuotes), added)

	added, err = svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SampleQuotes), count)
}

func TestSampleQuotesAreValid(t *testing.T) {
	for _, q := range SampleQuotes {
		assert.NoError(t, q.Validate(), q.DisplayDate)
	}
}
