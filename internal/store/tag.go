// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"blogpress/internal/models"
	"blogpress/internal/slug"
)

// TagStore manages tags in the database.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// TagInput is the accepted input for creating or updating a tag.
// Color is optional; the default is models.DefaultTagColor.
type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

const tagColumns = `id, name, slug, color, created_at, updated_at`

// maxSlugAttempts bounds the suffix search when a derived slug collides
// with an existing tag whose name normalizes to the same slug.
const maxSlugAttempts = 50

// scanTag scans a row into a Tag struct.
func scanTag(scanner interface{ Scan(...any) error }) (*models.Tag, error) {
	var t models.Tag
	err := scanner.Scan(&t.ID, &t.Name, &t.Slug, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns a page of tags with post counts, newest first.
// Search matches name and slug.
func (s *TagStore) List(f ListFilter) (Page[models.Tag], error) {
	f = f.normalize()
	page := Page[models.Tag]{Page: f.Page, PageSize: f.PageSize}

	b := &condBuilder{}
	b.search(f.Search, "t.name", "t.slug")

	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM tags t `+b.where(), b.args...,
	).Scan(&page.TotalCount)
	if err != nil {
		return page, fmt.Errorf("count tags: %w", err)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT t.id, t.name, t.slug, t.color, t.created_at, t.updated_at,
		       COUNT(pt.post_id) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		%s
		GROUP BY t.id
		ORDER BY t.created_at DESC
		LIMIT %d OFFSET %d
	`, b.where(), f.PageSize, f.offset()), b.args...)
	if err != nil {
		return page, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Tag
		err := rows.Scan(
			&t.ID, &t.Name, &t.Slug, &t.Color,
			&t.CreatedAt, &t.UpdatedAt, &t.PostCount,
		)
		if err != nil {
			return page, fmt.Errorf("scan tag: %w", err)
		}
		page.Items = append(page.Items, t)
	}
	return page, rows.Err()
}

// ListAll returns every tag ordered by name. Used to populate the tag
// picker on the post form.
func (s *TagStore) ListAll() ([]models.Tag, error) {
	rows, err := s.db.Query(`SELECT ` + tagColumns + ` FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list all tags: %w", err)
	}
	defer rows.Close()

	var items []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a tag by ID.
func (s *TagStore) FindByID(id uuid.UUID) (*models.Tag, error) {
	row := s.db.QueryRow(`SELECT `+tagColumns+` FROM tags WHERE id = $1`, id)
	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "tag", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return t, nil
}

// Create validates the input and inserts a new tag. The slug is derived
// from the name; a colliding slug gets a numeric suffix.
func (s *TagStore) Create(in TagInput) (*models.Tag, error) {
	if err := validateTag(in); err != nil {
		return nil, err
	}
	color := in.Color
	if color == "" {
		color = models.DefaultTagColor
	}

	base := slug.Generate(in.Name)
	candidate := base
	for attempt := 2; ; attempt++ {
		row := s.db.QueryRow(`
			INSERT INTO tags (name, slug, color)
			VALUES ($1, $2, $3)
			RETURNING `+tagColumns,
			in.Name, candidate, color,
		)
		t, err := scanTag(row)
		if err == nil {
			return t, nil
		}
		if uniqueViolation(err, "slug") && attempt <= maxSlugAttempts {
			candidate = slug.WithSuffix(base, attempt)
			continue
		}
		if uniqueViolation(err) {
			return nil, &models.ValidationError{Field: "name", Reason: "is already taken"}
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
}

// Update validates the input and modifies an existing tag. The slug is
// recomputed whenever the name changes.
func (s *TagStore) Update(id uuid.UUID, in TagInput) (*models.Tag, error) {
	if err := validateTag(in); err != nil {
		return nil, err
	}
	existing, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	color := in.Color
	if color == "" {
		color = models.DefaultTagColor
	}

	base := existing.Slug
	if in.Name != existing.Name {
		base = slug.Generate(in.Name)
	}
	candidate := base
	for attempt := 2; ; attempt++ {
		row := s.db.QueryRow(`
			UPDATE tags SET name = $1, slug = $2, color = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING `+tagColumns,
			in.Name, candidate, color, id,
		)
		t, err := scanTag(row)
		if err == nil {
			return t, nil
		}
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "tag", ID: id}
		}
		if uniqueViolation(err, "slug") && attempt <= maxSlugAttempts {
			candidate = slug.WithSuffix(base, attempt)
			continue
		}
		if uniqueViolation(err) {
			return nil, &models.ValidationError{Field: "name", Reason: "is already taken"}
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
}

// Delete removes a tag. Deletion is refused with a ConflictError while
// any post references the tag.
func (s *TagStore) Delete(id uuid.UUID) error {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM post_tags WHERE tag_id = $1`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("count tag posts: %w", err)
	}
	if count > 0 {
		return &models.ConflictError{
			Entity:  "tag",
			ID:      id,
			Message: "cannot delete tag with existing posts",
		}
	}

	res, err := s.db.Exec(`DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "tag", ID: id}
	}
	return nil
}
