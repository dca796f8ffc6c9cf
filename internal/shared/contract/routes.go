// Package contract holds the HTTP surface shared by the API handlers and the
// admin page: routes, payload shapes and the create-quote ruleset.
package contract

import (
	"net/http"
	"strings"
)

const (
	QuotesPath   = "/api/quotes"
	QuotePath    = "/api/quotes/{id}"
	FeedPath     = "/feed"
	AtomFeedPath = "/feed/atom"
	JSONFeedPath = "/feed/json"
	AdminPath    = "/admin"
	HealthPath   = "/health"
	StaticPath   = "/static/"
)

// Route pairs a method with a path template.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

var (
	ListQuotes  = Route{Method: http.MethodGet, Path: QuotesPath}
	CreateQuote = Route{Method: http.MethodPost, Path: QuotesPath}
	DeleteQuote = Route{Method: http.MethodDelete, Path: QuotePath}
)

// Pattern returns the route in http.ServeMux pattern syntax.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// BuildURL substitutes {name} placeholders in path with params.
func BuildURL(path string, params map[string]string) string {
	url := path
	for key, value := range params {
		url = strings.ReplaceAll(url, "{"+key+"}", value)
	}
	return url
}
