package http

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
)

//go:embed web
var webFS embed.FS

// clientConfig is handed to admin.js; the rules are the same ones the API
// validates with.
type clientConfig struct {
	QuotesURL string               `json:"quotesUrl"`
	QuoteURL  string               `json:"quoteUrl"`
	Rules     []contract.FieldRule `json:"rules"`
}

type pageData struct {
	Title       string
	Description string
	FeedURL     string
	AtomURL     string
	JSONURL     string
	AdminURL    string
	HomeURL     string
	Client      clientConfig
}

func (s *Server) pageData() pageData {
	return pageData{
		Title:       s.cfg.FeedTitle,
		Description: s.cfg.FeedDescription,
		FeedURL:     contract.FeedPath,
		AtomURL:     contract.AtomFeedPath,
		JSONURL:     contract.JSONFeedPath,
		AdminURL:    contract.AdminPath,
		HomeURL:     "/",
		Client: clientConfig{
			QuotesURL: contract.QuotesPath,
			QuoteURL:  contract.QuotePath,
			Rules:     contract.Rules(),
		},
	}
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "index.html")
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "admin.html")
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, s.pageData()); err != nil {
		s.logger.Error("Error rendering page", "page", name, "path", r.URL.Path, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("Error writing page", "page", name, "error", err)
	}
}

// staticHandler serves the files of web/static under /static/. Directory
// paths are not listed.
func staticHandler() http.Handler {
	root, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	files := http.StripPrefix(strings.TrimSuffix(contract.StaticPath, "/"), http.FileServerFS(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
