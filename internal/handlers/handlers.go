// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the blog admin.
// Handlers are grouped by concern (admin, public) and receive their
// dependencies through the handler struct.
package handlers

import (
	"blogpress/internal/cache"
	"blogpress/internal/storage"
	"blogpress/internal/store"
)

// Admin groups the admin API handlers and their dependencies.
// storageClient may be nil if S3 is not configured; listings may be nil
// if Valkey is not configured.
type Admin struct {
	posts         *store.PostStore
	categories    *store.CategoryStore
	tags          *store.TagStore
	users         *store.UserStore
	storageClient *storage.Client
	listings      *cache.ListingCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(posts *store.PostStore, categories *store.CategoryStore, tags *store.TagStore, users *store.UserStore, storageClient *storage.Client, listings *cache.ListingCache) *Admin {
	return &Admin{
		posts:         posts,
		categories:    categories,
		tags:          tags,
		users:         users,
		storageClient: storageClient,
		listings:      listings,
	}
}

// Public groups the unauthenticated read-side handlers.
type Public struct {
	posts    *store.PostStore
	listings *cache.ListingCache
}

// NewPublic creates a new Public handler group.
func NewPublic(posts *store.PostStore, listings *cache.ListingCache) *Public {
	return &Public{posts: posts, listings: listings}
}
