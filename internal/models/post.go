// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the lifecycle state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// ValidStatus reports whether s is one of the known post statuses.
func ValidStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// PostAction is a lifecycle action applied to a post.
type PostAction string

const (
	ActionPublish PostAction = "publish"
	ActionArchive PostAction = "archive"
)

// NextStatus resolves a lifecycle action against the current status.
// Self-transitions are idempotent and allowed. Archived posts cannot be
// republished through the admin actions.
func NextStatus(current PostStatus, action PostAction) (PostStatus, error) {
	switch action {
	case ActionPublish:
		if current == PostStatusArchived {
			return "", &InvalidTransitionError{From: current, Action: action}
		}
		return PostStatusPublished, nil
	case ActionArchive:
		return PostStatusArchived, nil
	default:
		return "", &InvalidTransitionError{From: current, Action: action}
	}
}

// Post represents a blog post. Content is stored as HTML; the admin API
// also accepts Markdown input which is rendered before storage.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	CategoryID    uuid.UUID  `json:"category_id"`
	Title         string     `json:"title"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	Status        PostStatus `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ViewsCount    int        `json:"views_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	CategoryName string `json:"category_name,omitempty"`
	AuthorName   string `json:"author_name,omitempty"`
	Tags         []Tag  `json:"tags,omitempty"`
	TagCount     int    `json:"tag_count"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
