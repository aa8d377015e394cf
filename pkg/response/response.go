// Package response writes JSON responses in the storefront's wire format:
// payloads are encoded as-is, errors are always `{"error": "..."}`.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
)

type errorBody struct {
	Error string `json:"error"`
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends a 200 response with data encoded as-is.
func JSON(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, data)
}

// Created sends a 201 response with data encoded as-is.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, data)
}

// Error sends `{"error": message}` with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, errorBody{Error: message})
}

// FromError maps err through the apperr taxonomy and sends it with the
// caller-facing message. Use this when the error text is already safe to
// show (service-layer errors); wrap storage errors first.
func FromError(w http.ResponseWriter, err error, message string) {
	Error(w, apperr.HTTPStatus(err), message)
}

// ValidationError reports the first field-level failure as a 400.
// The errs map comes from validate.Struct via bind.JSON.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	for _, msg := range errs {
		Error(w, http.StatusBadRequest, msg)
		return
	}
	Error(w, http.StatusBadRequest, "Invalid input")
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}
