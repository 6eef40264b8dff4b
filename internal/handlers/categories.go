// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"blogpress/internal/store"
)

// CategoriesList returns a page of categories. Supports search (name,
// description), status filter (all/active/inactive), and pagination.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	f, err := listFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := a.categories.List(f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// CategoryOptions returns every active category, used by the post form
// to populate its category picker.
func (a *Admin) CategoryOptions(w http.ResponseWriter, r *http.Request) {
	items, err := a.categories.ListActive()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// CategoryCreate creates a new category.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var in store.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	c, err := a.categories.Create(in)
	if err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusCreated, "Category created successfully.", c)
}

// CategoryUpdate modifies an existing category.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in store.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	c, err := a.categories.Update(id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Category updated successfully.", c)
}

// CategoryToggle flips the category's active flag.
func (a *Admin) CategoryToggle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := a.categories.ToggleActive(id)
	if err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Category status updated successfully.", c)
}

// CategoryDelete removes a category. Categories still referenced by
// posts are refused with a conflict.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := a.categories.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Category deleted successfully.", nil)
}
