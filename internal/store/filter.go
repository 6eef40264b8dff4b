// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// filter.go implements the listing query composer shared by the post,
// category, and tag stores: free-text search ORed across designated
// fields, discrete filters ANDed together, and offset pagination.
package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultPageSize is applied when a listing request omits the page size.
const DefaultPageSize = 10

// Discrete filter values shared by listings. Post listings additionally
// accept the post statuses themselves (draft, published, archived).
const (
	FilterAll      = "all"
	FilterActive   = "active"
	FilterInactive = "inactive"
)

// ListFilter carries the caller-supplied listing parameters. A changed
// search term or filter must be accompanied by Page reset to 1; that is
// the caller's responsibility.
type ListFilter struct {
	Search     string
	Status     string     // posts: all|draft|published|archived; categories: all|active|inactive
	CategoryID *uuid.UUID // posts only
	Page       int
	PageSize   int
}

// normalize clamps pagination values to sane defaults.
func (f ListFilter) normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	return f
}

// offset returns the row offset for the requested page.
func (f ListFilter) offset() int {
	return (f.Page - 1) * f.PageSize
}

// Page is one page of listing results plus pagination metadata.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// TotalPages returns the number of pages needed for TotalCount items.
func (p Page[T]) TotalPages() int {
	if p.PageSize < 1 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// HasMore reports whether pages beyond the current one exist.
func (p Page[T]) HasMore() bool {
	return p.Page < p.TotalPages()
}

// condBuilder accumulates WHERE conditions with positional arguments.
// Conditions are ANDed; the search condition is ORed internally.
type condBuilder struct {
	conds []string
	args  []any
}

// add appends one condition. Each %s in cond is substituted with the
// next positional placeholder bound to the corresponding argument.
func (b *condBuilder) add(cond string, args ...any) {
	placeholders := make([]any, len(args))
	for i, a := range args {
		b.args = append(b.args, a)
		placeholders[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.conds = append(b.conds, fmt.Sprintf(cond, placeholders...))
}

// search appends a case-insensitive substring condition ORed across the
// given column expressions. Empty terms add nothing.
func (b *condBuilder) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}
	b.args = append(b.args, likePattern(term))
	ph := fmt.Sprintf("$%d", len(b.args))
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE %s", col, ph)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
}

// where returns the assembled WHERE clause, or "" when unfiltered.
func (b *condBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// likeEscaper escapes LIKE wildcards so user search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps a search term for substring ILIKE matching.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
