package http

import (
	"encoding/json"
	"net/http"

	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
	"github.com/reshetovitsme/quote-feed/internal/shared/errors"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Error writing response", "status", status, "error", err)
	}
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, contract.ErrorResponse{Message: message})
}

// writeError maps service errors onto status codes. Anything not recognised
// is logged and reported as a 500 without internal detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if verr, ok := errors.AsValidation(err); ok {
		s.writeJSON(w, http.StatusBadRequest, contract.ErrorResponse{Message: verr.Message, Field: verr.Field})
		return
	}
	if errors.IsNotFound(err) {
		s.writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	s.writeMessage(w, http.StatusInternalServerError, "Internal server error")
}
