package repository

import (
	"context"
	"database/sql"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
	"github.com/samber/oops"
)

const quotesTable = "quotes"

// SQLiteStorage implements Repository on the quotes table.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage wraps an already migrated database handle.
func NewSQLiteStorage(db *sql.DB) Repository {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) List(ctx context.Context) ([]*domain.Quote, error) {
	sb := s.selectQuotes()
	return s.query(ctx, sb)
}

func (s *SQLiteStorage) ListDue(ctx context.Context, asOf string) ([]*domain.Quote, error) {
	sb := s.selectQuotes()
	sb.Where(sb.LessEqualThan("display_date", asOf))
	return s.query(ctx, sb)
}

func (s *SQLiteStorage) Create(ctx context.Context, input contract.CreateQuoteInput) (*domain.Quote, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ib := sqlbuilder.NewInsertBuilder()
	ib.InsertInto(quotesTable).Cols("content", "display_date").Values(input.Content, input.DisplayDate)
	query, args := ib.BuildWithFlavor(sqlbuilder.SQLite)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, oops.In("quote-repository").With("display_date", input.DisplayDate, "context", "failed to insert quote").Wrap(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, oops.In("quote-repository").With("context", "failed to read inserted id").Wrap(err)
	}

	return &domain.Quote{ID: id, Content: input.Content, DisplayDate: input.DisplayDate}, nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, id int64) error {
	delb := sqlbuilder.NewDeleteBuilder()
	delb.DeleteFrom(quotesTable).Where(delb.Equal("id", id))
	query, args := delb.BuildWithFlavor(sqlbuilder.SQLite)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return oops.In("quote-repository").With("quote_id", id, "context", "failed to delete quote").Wrap(err)
	}
	return nil
}

func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("COUNT(*)").From(quotesTable)
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, oops.In("quote-repository").With("context", "failed to count quotes").Wrap(err)
	}
	return count, nil
}

func (s *SQLiteStorage) selectQuotes() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("id", "content", "display_date").From(quotesTable)
	sb.OrderBy("display_date DESC", "id DESC")
	return sb
}

func (s *SQLiteStorage) query(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]*domain.Quote, error) {
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, oops.In("quote-repository").With("sql", query, "context", "failed to query quotes").Wrap(err)
	}
	defer rows.Close()

	quotes := []*domain.Quote{}
	for rows.Next() {
		var q domain.Quote
		if err := rows.Scan(&q.ID, &q.Content, &q.DisplayDate); err != nil {
			return nil, oops.In("quote-repository").With("context", "failed to scan quote").Wrap(err)
		}
		quotes = append(quotes, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.In("quote-repository").With("context", "failed to iterate quotes").Wrap(err)
	}
	return quotes, nil
}
