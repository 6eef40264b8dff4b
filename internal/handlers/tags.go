// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"blogpress/internal/store"
)

// TagsList returns a page of tags. Supports search (name, slug) and
// pagination.
func (a *Admin) TagsList(w http.ResponseWriter, r *http.Request) {
	f, err := listFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := a.tags.List(f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// TagOptions returns every tag, used by the post form to populate its
// tag picker.
func (a *Admin) TagOptions(w http.ResponseWriter, r *http.Request) {
	items, err := a.tags.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// TagCreate creates a new tag. The slug is derived from the name and
// the color defaults when omitted.
func (a *Admin) TagCreate(w http.ResponseWriter, r *http.Request) {
	var in store.TagInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	tag, err := a.tags.Create(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Tag created successfully.", tag)
}

// TagUpdate modifies an existing tag, recomputing the slug on rename.
func (a *Admin) TagUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in store.TagInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	tag, err := a.tags.Update(id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Tag updated successfully.", tag)
}

// TagDelete removes a tag. Tags still attached to posts are refused
// with a conflict.
func (a *Admin) TagDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := a.tags.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Tag deleted successfully.", nil)
}
