package service

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/quote-feed/internal/modules/quote/domain"
	"github.com/samber/oops"
)

// DueQuotes is the slice of the quote service the feed needs.
type DueQuotes interface {
	ListDue(ctx context.Context, asOf string) ([]*domain.Quote, error)
}

// Branding is the static channel text shown to feed readers.
type Branding struct {
	Title       string
	Description string
	// ItemTitle is a fmt format receiving the display date.
	ItemTitle string
}

// Service handles feed generation
type Service struct {
	quotes   DueQuotes
	branding Branding
}

// New creates a new feed service
func New(quotes DueQuotes, branding Branding) *Service {
	if branding.ItemTitle == "" {
		branding.ItemTitle = "%s"
	}
	return &Service{
		quotes:   quotes,
		branding: branding,
	}
}

// GenerateFeed builds the feed of quotes due today. baseURL is the site root
// used for channel and item links.
func (s *Service) GenerateFeed(ctx context.Context, baseURL string) (*feeds.Feed, error) {
	quotes, err := s.quotes.ListDue(ctx, "")
	if err != nil {
		return nil, oops.In("feed-service").With("context", "failed to list due quotes").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       s.branding.Title,
		Link:        &feeds.Link{Href: baseURL},
		Description: s.branding.Description,
	}

	for _, q := range quotes {
		item, err := s.quoteToFeedItem(q, baseURL)
		if err != nil {
			return nil, err
		}
		feed.Add(item)
	}

	// newest item dates the channel
	if len(feed.Items) > 0 {
		feed.Updated = feed.Items[0].Created
	}

	return feed, nil
}

// RenderRSS renders the due quotes as an RSS 2.0 document.
func (s *Service) RenderRSS(ctx context.Context, baseURL string) (string, error) {
	feed, err := s.GenerateFeed(ctx, baseURL)
	if err != nil {
		return "", err
	}

	rss, err := feeds.ToXML(newRSSDocument(feed))
	if err != nil {
		return "", oops.In("feed-service").With("context", "failed to marshal rss").Wrap(err)
	}
	return rss, nil
}

// RenderAtom renders the due quotes as an Atom 1.0 document.
func (s *Service) RenderAtom(ctx context.Context, baseURL string) (string, error) {
	feed, err := s.GenerateFeed(ctx, baseURL)
	if err != nil {
		return "", err
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return "", oops.In("feed-service").With("context", "failed to marshal atom").Wrap(err)
	}
	return atom, nil
}

// RenderJSON renders the due quotes as a JSON Feed document.
func (s *Service) RenderJSON(ctx context.Context, baseURL string) (string, error) {
	feed, err := s.GenerateFeed(ctx, baseURL)
	if err != nil {
		return "", err
	}

	json, err := feed.ToJSON()
	if err != nil {
		return "", oops.In("feed-service").With("context", "failed to marshal json feed").Wrap(err)
	}
	return json, nil
}

func (s *Service) quoteToFeedItem(q *domain.Quote, baseURL string) (*feeds.Item, error) {
	published, err := domain.MidnightUTC(q.DisplayDate)
	if err != nil {
		return nil, oops.In("feed-service").With("quote_id", q.ID, "display_date", q.DisplayDate).Wrap(err)
	}

	return &feeds.Item{
		Title:       fmt.Sprintf(s.branding.ItemTitle, q.DisplayDate),
		Link:        &feeds.Link{Href: baseURL},
		Description: q.Content,
		Content:     contentHTML(q.Content),
		Id:          strconv.FormatInt(q.ID, 10),
		IsPermaLink: "false",
		Created:     published,
	}, nil
}

// contentHTML is the escaped, line-preserving form used by Atom and JSON Feed.
func contentHTML(content string) string {
	return strings.ReplaceAll(html.EscapeString(content), "\n", "<br>")
}
