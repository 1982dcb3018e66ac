package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

// Response is the uniform envelope for every endpoint.
type Response struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message,omitempty"`
	Data       any                    `json:"data,omitempty"`
	Pagination *interfaces.Pagination `json:"pagination,omitempty"`
}

func respondJSON(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func respondData(w http.ResponseWriter, statusCode int, data any) {
	respondJSON(w, statusCode, Response{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, Response{Success: true, Message: message})
}

func respondList(w http.ResponseWriter, data any, pagination *interfaces.Pagination) {
	respondJSON(w, http.StatusOK, Response{Success: true, Data: data, Pagination: pagination})
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Unexpected errors surface their message; this is an internal tool and the
// operator wants to see what broke.
func respondError(w http.ResponseWriter, err error) {
	var (
		validationErr   *domain.ValidationError
		notFoundErr     *domain.NotFoundError
		businessRuleErr *domain.BusinessRuleError
	)

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Message: validationErr.Error()})
	case errors.As(err, &businessRuleErr):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Message: businessRuleErr.Error()})
	case errors.As(err, &notFoundErr):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Message: notFoundErr.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
	default:
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Message: err.Error()})
	}
}
