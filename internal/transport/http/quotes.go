package http

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
	"github.com/reshetovitsme/quote-feed/internal/shared/errors"
)

const maxBodyBytes = 64 << 10

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.quoteService.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, quotes)
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var input contract.CreateQuoteInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		s.writeError(w, r, decodeError(err))
		return
	}

	quote, err := s.quoteService.Create(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, quote)
}

// handleDeleteQuote answers 204 for any integer id, stored or not.
func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, r, errors.ErrNotFound)
		return
	}

	if err := s.quoteService.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeError turns a body decoding failure into a validation error, naming
// the field when the JSON had the wrong type for it.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return errors.NewValidationError(typeErr.Field, typeErr.Field+" must be a "+typeErr.Type.String())
	}
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.NewValidationError("", "request body too large")
	}
	return errors.NewValidationError("", "request body must be a JSON object")
}
