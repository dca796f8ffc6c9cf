package http

import (
	"context"
	"net/http"
)

type renderFunc func(ctx context.Context, baseURL string) (string, error)

func (s *Server) handleRSSFeed(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/xml; charset=utf-8", s.feedService.RenderRSS)
}

func (s *Server) handleAtomFeed(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/atom+xml; charset=utf-8", s.feedService.RenderAtom)
}

func (s *Server) handleJSONFeed(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/feed+json; charset=utf-8", s.feedService.RenderJSON)
}

// serveFeed regenerates the document on every request.
func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request, contentType string, render renderFunc) {
	doc, err := render(r.Context(), baseURL(r))
	if err != nil {
		s.logger.Error("Error generating feed", "path", r.URL.Path, "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		s.logger.Error("Error writing feed", "error", err)
	}
}
