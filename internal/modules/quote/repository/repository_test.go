package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
	"github.com/reshetovitsme/quote-feed/internal/shared/database"
	"github.com/reshetovitsme/quote-feed/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type factory func(t *testing.T) Repository

func newSQLite(t *testing.T) Repository {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db, slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewSQLiteStorage(db)
}

func newFile(t *testing.T) Repository {
	t.Helper()
	repo, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return repo
}

var backends = map[string]factory{
	"sqlite": newSQLite,
	"file":   newFile,
}

func forEachBackend(t *testing.T, fn func(t *testing.T, repo Repository)) {
	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, newRepo(t))
		})
	}
}

func mustCreate(t *testing.T, repo Repository, content, date string) *domain.Quote {
	t.Helper()
	q, err := repo.Create(context.Background(), contract.CreateQuoteInput{Content: content, DisplayDate: date})
	require.NoError(t, err)
	return q
}

func ids(quotes []*domain.Quote) []int64 {
	out := make([]int64, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.ID)
	}
	return out
}

func TestCreateAndList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		empty, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		a := mustCreate(t, repo, "Erster\nSpruch", "2026-01-06")
		b := mustCreate(t, repo, "Zweiter <b>&</b>", "2026-01-08")

		assert.NotEqual(t, a.ID, b.ID)
		assert.Greater(t, b.ID, a.ID)

		quotes, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, b, quotes[0])
		assert.Equal(t, a, quotes[1])

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestListOrdersByDateThenIDDescending(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		first := mustCreate(t, repo, "a", "2026-01-06")
		newest := mustCreate(t, repo, "b", "2026-02-01")
		sameDay := mustCreate(t, repo, "c", "2026-01-06")
		oldest := mustCreate(t, repo, "d", "2025-12-31")

		quotes, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int64{newest.ID, sameDay.ID, first.ID, oldest.ID}, ids(quotes))
	})
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		input contract.CreateQuoteInput
		field string
	}{
		{"empty content", contract.CreateQuoteInput{Content: "", DisplayDate: "2026-01-06"}, "content"},
		{"blank content", contract.CreateQuoteInput{Content: "   ", DisplayDate: "2026-01-06"}, "content"},
		{"impossible date", contract.CreateQuoteInput{Content: "x", DisplayDate: "2024-13-40"}, "displayDate"},
		{"not a date", contract.CreateQuoteInput{Content: "x", DisplayDate: "not-a-date"}, "displayDate"},
	}

	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		for _, tc := range cases {
			_, err := repo.Create(ctx, tc.input)
			require.Error(t, err, tc.name)
			verr, ok := errors.AsValidation(err)
			require.True(t, ok, tc.name)
			assert.Equal(t, tc.field, verr.Field, tc.name)
		}

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		keep := mustCreate(t, repo, "keep", "2026-01-06")
		gone := mustCreate(t, repo, "gone", "2026-01-07")

		require.NoError(t, repo.Delete(ctx, gone.ID))
		// deleting again, or deleting an id that never existed, is a no-op
		require.NoError(t, repo.Delete(ctx, gone.ID))
		require.NoError(t, repo.Delete(ctx, 9999))

		quotes, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{keep.ID}, ids(quotes))
	})
}

func TestIDsAreNeverReused(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		a := mustCreate(t, repo, "a", "2026-01-06")
		b := mustCreate(t, repo, "b", "2026-01-06")
		require.NoError(t, repo.Delete(ctx, b.ID))

		c := mustCreate(t, repo, "c", "2026-01-06")
		assert.Greater(t, c.ID, b.ID)
		assert.Greater(t, c.ID, a.ID)
	})
}

func TestListDue(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		past := mustCreate(t, repo, "past", "2026-01-05")
		today := mustCreate(t, repo, "today", "2026-01-06")
		future := mustCreate(t, repo, "future", "2026-01-07")

		due, err := repo.ListDue(ctx, "2026-01-06")
		require.NoError(t, err)
		assert.Equal(t, []int64{today.ID, past.ID}, ids(due))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids(all), future.ID)

		none, err := repo.ListDue(ctx, "2000-01-01")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestFileStorageSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileStorage(dir)
	require.NoError(t, err)

	mustCreate(t, repo, "real", "2026-01-06")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quotes", "broken.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quotes", "notes.txt"), []byte("hi"), 0644))

	quotes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, quotes, 1)
}
