// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"blogpress/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// CategoryInput is the accepted input for creating or updating a category.
type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}

const categoryColumns = `id, name, description, is_active, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns a page of categories with post counts, newest first.
// Search matches name and description; Status filters on the active flag
// (all, active, inactive).
func (s *CategoryStore) List(f ListFilter) (Page[models.Category], error) {
	f = f.normalize()
	page := Page[models.Category]{Page: f.Page, PageSize: f.PageSize}

	b := &condBuilder{}
	b.search(f.Search, "c.name", "c.description")
	switch f.Status {
	case "", FilterAll:
	case FilterActive:
		b.add("c.is_active = %s", true)
	case FilterInactive:
		b.add("c.is_active = %s", false)
	default:
		return page, &models.ValidationError{Field: "status", Reason: "must be all, active, or inactive"}
	}

	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM categories c `+b.where(), b.args...,
	).Scan(&page.TotalCount)
	if err != nil {
		return page, fmt.Errorf("count categories: %w", err)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT c.id, c.name, c.description, c.is_active, c.created_at, c.updated_at,
		       COUNT(p.id) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		%s
		GROUP BY c.id
		ORDER BY c.created_at DESC
		LIMIT %d OFFSET %d
	`, b.where(), f.PageSize, f.offset()), b.args...)
	if err != nil {
		return page, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt, &c.PostCount,
		)
		if err != nil {
			return page, fmt.Errorf("scan category: %w", err)
		}
		page.Items = append(page.Items, c)
	}
	return page, rows.Err()
}

// ListActive returns all active categories ordered by name. Used to
// populate the category selector on the post form.
func (s *CategoryStore) ListActive() ([]models.Category, error) {
	rows, err := s.db.Query(
		`SELECT ` + categoryColumns + ` FROM categories WHERE is_active ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "category", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create validates the input and inserts a new category.
func (s *CategoryStore) Create(in CategoryInput) (*models.Category, error) {
	if err := validateCategory(in); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		in.Name, in.Description, in.IsActive,
	)
	c, err := scanCategory(row)
	if uniqueViolation(err) {
		return nil, &models.ValidationError{Field: "name", Reason: "is already taken"}
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update validates the input and modifies an existing category.
func (s *CategoryStore) Update(id uuid.UUID, in CategoryInput) (*models.Category, error) {
	if err := validateCategory(in); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		UPDATE categories SET
			name = $1, description = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+categoryColumns,
		in.Name, in.Description, in.IsActive, id,
	)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "category", ID: id}
	}
	if uniqueViolation(err) {
		return nil, &models.ValidationError{Field: "name", Reason: "is already taken"}
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// ToggleActive flips the active flag and returns the updated category.
func (s *CategoryStore) ToggleActive(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`
		UPDATE categories SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1
		RETURNING `+categoryColumns, id,
	)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "category", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("toggle category: %w", err)
	}
	return c, nil
}

// Delete removes a category. Deletion is refused with a ConflictError
// while any post references the category.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("count category posts: %w", err)
	}
	if count > 0 {
		return &models.ConflictError{
			Entity:  "category",
			ID:      id,
			Message: "cannot delete category with existing posts",
		}
	}

	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "category", ID: id}
	}
	return nil
}
