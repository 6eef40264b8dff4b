// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"blogpress/internal/cache"
	"blogpress/internal/models"
	"blogpress/internal/store"
)

// PostsList serves the public published-post listing, newest publish
// date first. Default-size pages are served from the listing cache when
// Valkey is available.
func (p *Public) PostsList(w http.ResponseWriter, r *http.Request) {
	f, err := listFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Only cache the default page size, which is what the public site
	// requests; ad-hoc sizes go straight to the store.
	cacheable := f.PageSize == 0 || f.PageSize == store.DefaultPageSize
	pageNum := f.Page
	if pageNum < 1 {
		pageNum = 1
	}

	if cacheable {
		if payload, ok := p.listings.Get(r.Context(), cache.PageKey(pageNum)); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	page, err := p.posts.ListPublished(f)
	if err != nil {
		writeError(w, err)
		return
	}

	if cacheable {
		if payload, err := json.Marshal(page); err == nil {
			p.listings.Set(r.Context(), cache.PageKey(pageNum), payload)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}
	writeJSON(w, http.StatusOK, page)
}

// PostGet serves a single published post and increments its view
// counter. Drafts and archived posts read as not found.
func (p *Public) PostGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := p.posts.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !post.IsPublished() {
		writeError(w, &models.NotFoundError{Entity: "post", ID: id})
		return
	}

	if err := p.posts.IncrementViews(id); err != nil {
		slog.Warn("increment views", "post", id, "error", err)
	} else {
		post.ViewsCount++
	}

	writeJSON(w, http.StatusOK, post)
}
