package contract

import "strings"

// CreateQuoteInput is the body of a create request.
type CreateQuoteInput struct {
	Content     string `json:"content" validate:"required,notblank,xmlchars"`
	DisplayDate string `json:"displayDate" validate:"required,datetime=2006-01-02"`
}

// Normalize trims the surrounding whitespace from the date. Content is kept
// verbatim so multi-line quotes survive.
func (in CreateQuoteInput) Normalize() CreateQuoteInput {
	in.DisplayDate = strings.TrimSpace(in.DisplayDate)
	return in
}

// ErrorResponse is the body of every 4xx/5xx JSON response.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Env    string `json:"env,omitempty"`
	Quotes int    `json:"quotes"`
}
