// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"blogpress/internal/models"
)

// Validation limits for admin form fields.
const (
	maxTitleLen       = 255
	maxExcerptLen     = 500
	maxContentLen     = 100_000
	maxNameLen        = 255
	maxDescriptionLen = 1_000
)

// colorPattern matches a six-digit hex color like #3b82f6.
var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validatePost checks post input fields and returns the first failure.
func validatePost(in PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return &models.ValidationError{Field: "title", Reason: "is required"}
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return &models.ValidationError{Field: "title", Reason: "is too long (max 255 characters)"}
	}
	if in.Excerpt != nil && utf8.RuneCountInString(*in.Excerpt) > maxExcerptLen {
		return &models.ValidationError{Field: "excerpt", Reason: "is too long (max 500 characters)"}
	}
	if strings.TrimSpace(in.Content) == "" {
		return &models.ValidationError{Field: "content", Reason: "is required"}
	}
	if utf8.RuneCountInString(in.Content) > maxContentLen {
		return &models.ValidationError{Field: "content", Reason: "is too long (max 100,000 characters)"}
	}
	if in.Status != "" && !models.ValidStatus(in.Status) {
		return &models.ValidationError{Field: "status", Reason: "must be draft, published, or archived"}
	}
	return nil
}

// validateCategory checks category input fields.
func validateCategory(in CategoryInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &models.ValidationError{Field: "name", Reason: "is required"}
	}
	if utf8.RuneCountInString(in.Name) > maxNameLen {
		return &models.ValidationError{Field: "name", Reason: "is too long (max 255 characters)"}
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > maxDescriptionLen {
		return &models.ValidationError{Field: "description", Reason: "is too long (max 1,000 characters)"}
	}
	return nil
}

// validateTag checks tag input fields.
func validateTag(in TagInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &models.ValidationError{Field: "name", Reason: "is required"}
	}
	if utf8.RuneCountInString(in.Name) > maxNameLen {
		return &models.ValidationError{Field: "name", Reason: "is too long (max 255 characters)"}
	}
	if in.Color != "" && !colorPattern.MatchString(in.Color) {
		return &models.ValidationError{Field: "color", Reason: "must be a hex color like #3b82f6"}
	}
	return nil
}
