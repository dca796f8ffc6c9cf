package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const sequenceFile = "sequence.json"

type sequence struct {
	LastID int64 `json:"last_id"`
}

// FileStorage implements Repository with one JSON file per quote. Ids come
// from a persisted sequence so deleted ids are never handed out again.
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based quote repository
func NewFileStorage(basePath string) (Repository, error) {
	quotePath := filepath.Join(basePath, "quotes")
	if err := os.MkdirAll(quotePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create quotes directory").Wrap(err)
	}

	return &FileStorage{basePath: quotePath}, nil
}

func (s *FileStorage) List(ctx context.Context) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readAll()
}

func (s *FileStorage) ListDue(ctx context.Context, asOf string) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quotes, err := s.readAll()
	if err != nil {
		return nil, err
	}

	return lo.Filter(quotes, func(q *domain.Quote, _ int) bool {
		return q.IsDue(asOf)
	}), nil
}

func (s *FileStorage) Create(ctx context.Context, input contract.CreateQuoteInput) (*domain.Quote, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq, err := s.readSequence()
	if err != nil {
		return nil, err
	}
	seq.LastID++

	quote := &domain.Quote{ID: seq.LastID, Content: input.Content, DisplayDate: input.DisplayDate}

	// sequence first: a crash between the writes burns an id instead of reusing one
	if err := s.writeJSON(sequenceFile, seq); err != nil {
		return nil, oops.With("context", "failed to advance sequence").Wrap(err)
	}
	if err := s.writeJSON(quoteFile(quote.ID), quote); err != nil {
		return nil, oops.With("quote_id", quote.ID, "context", "failed to write quote").Wrap(err)
	}

	return quote, nil
}

func (s *FileStorage) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.basePath, quoteFile(id)))
	if err != nil && !os.IsNotExist(err) {
		return oops.With("quote_id", id, "context", "failed to delete quote").Wrap(err)
	}
	return nil
}

func (s *FileStorage) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return 0, oops.With("directory", s.basePath, "context", "failed to read quotes directory").Wrap(err)
	}
	return lo.CountBy(entries, isQuoteEntry), nil
}

func (s *FileStorage) readAll() ([]*domain.Quote, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, oops.With("directory", s.basePath, "context", "failed to read quotes directory").Wrap(err)
	}

	quotes := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.Quote, bool) {
		if !isQuoteEntry(entry) {
			return nil, false
		}

		data, err := os.ReadFile(filepath.Join(s.basePath, entry.Name()))
		if err != nil {
			return nil, false
		}

		var quote domain.Quote
		if err := json.Unmarshal(data, &quote); err != nil {
			return nil, false
		}

		return &quote, true
	})

	sort.Slice(quotes, func(i, j int) bool { return domain.Newer(quotes[i], quotes[j]) })
	return quotes, nil
}

func (s *FileStorage) readSequence() (*sequence, error) {
	seq := &sequence{}

	data, err := os.ReadFile(filepath.Join(s.basePath, sequenceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return seq, nil
		}
		return nil, oops.With("context", "failed to read sequence").Wrap(err)
	}

	if err := json.Unmarshal(data, seq); err != nil {
		return nil, oops.With("context", "failed to unmarshal sequence").Wrap(err)
	}
	return seq, nil
}

func (s *FileStorage) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.basePath, name+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(s.basePath, name))
}

func quoteFile(id int64) string {
	return fmt.Sprintf("%d.json", id)
}

func isQuoteEntry(entry os.DirEntry) bool {
	name := entry.Name()
	return !entry.IsDir() && filepath.Ext(name) == ".json" && name != sequenceFile && !strings.HasPrefix(name, ".")
}
