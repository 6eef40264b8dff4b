// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogpress/internal/models"
	"blogpress/internal/store"
)

// apiError is the serialized form of a request failure.
type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Entity  string `json:"entity,omitempty"`
	ID      string `json:"id,omitempty"`
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

// writeMessage wraps a mutation result in the standard message envelope.
func writeMessage(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, map[string]any{
		"message": message,
		"data":    data,
	})
}

// writeError maps a typed domain error onto its HTTP status and payload.
// Unknown errors become a logged 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		validation *models.ValidationError
		notFound   *models.NotFoundError
		reference  *models.ReferenceError
		conflict   *models.ConflictError
		transition *models.InvalidTransitionError
		storageErr *models.StorageError
	)

	var status int
	var body apiError
	switch {
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
		body = apiError{Kind: "validation", Message: err.Error(), Field: validation.Field}
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		body = apiError{Kind: "not_found", Message: err.Error(), Entity: notFound.Entity, ID: notFound.ID.String()}
	case errors.As(err, &reference):
		status = http.StatusUnprocessableEntity
		body = apiError{Kind: "reference", Message: err.Error(), Entity: reference.Entity, ID: reference.ID.String()}
	case errors.As(err, &conflict):
		status = http.StatusConflict
		body = apiError{Kind: "conflict", Message: err.Error(), Entity: conflict.Entity, ID: conflict.ID.String()}
	case errors.As(err, &transition):
		status = http.StatusConflict
		body = apiError{Kind: "invalid_transition", Message: err.Error()}
	case errors.As(err, &storageErr):
		status = http.StatusBadGateway
		body = apiError{Kind: "storage", Message: "file storage is unavailable"}
		slog.Error("storage failure", "error", err)
	default:
		status = http.StatusInternalServerError
		body = apiError{Kind: "internal", Message: "internal server error"}
		slog.Error("unhandled request error", "error", err)
	}

	writeJSON(w, status, map[string]any{"error": body})
}

// decodeJSON parses the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &models.ValidationError{Field: "body", Reason: "malformed JSON: " + err.Error()}
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &models.ValidationError{Field: "id", Reason: "must be a valid UUID"}
	}
	return id, nil
}

// listFilterFromQuery builds a ListFilter from the common query
// parameters: search, status, category_id, page, page_size.
func listFilterFromQuery(r *http.Request) (store.ListFilter, error) {
	q := r.URL.Query()
	f := store.ListFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	}

	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, &models.ValidationError{Field: "category_id", Reason: "must be a valid UUID"}
		}
		f.CategoryID = &id
	}
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return f, &models.ValidationError{Field: "page", Reason: "must be a positive integer"}
		}
		f.Page = n
	}
	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return f, &models.ValidationError{Field: "page_size", Reason: "must be between 1 and 100"}
		}
		f.PageSize = n
	}
	return f, nil
}
