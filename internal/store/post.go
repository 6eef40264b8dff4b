// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogpress/internal/models"
)

// PostStore handles all post-related database operations, including the
// lifecycle state machine and the post-tag associations. Every mutation
// runs in a single transaction; concurrent updates to the same post are
// resolved last-write-wins.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// PostInput is the accepted input for creating or updating a post.
// UserID is only read on create; TagIDs always replaces the full
// association set.
type PostInput struct {
	Title         string            `json:"title"`
	Excerpt       *string           `json:"excerpt"`
	Content       string            `json:"content"`
	CategoryID    uuid.UUID         `json:"category_id"`
	UserID        uuid.UUID         `json:"user_id"`
	Status        models.PostStatus `json:"status"`
	TagIDs        []uuid.UUID       `json:"tag_ids"`
	FeaturedImage *string           `json:"featured_image"`
}

const postColumns = `p.id, p.user_id, p.category_id, p.title, p.excerpt, p.content,
	p.featured_image, p.status, p.published_at, p.views_count, p.created_at, p.updated_at`

// postColumnsBare is postColumns without the table alias, for RETURNING.
const postColumnsBare = `id, user_id, category_id, title, excerpt, content,
	featured_image, status, published_at, views_count, created_at, updated_at`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

// scanPost scans the bare post columns into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.UserID, &p.CategoryID, &p.Title, &p.Excerpt, &p.Content,
		&p.FeaturedImage, &p.Status, &p.PublishedAt, &p.ViewsCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID retrieves a post with its category, author, and tags.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	var p models.Post
	err := s.db.QueryRow(`
		SELECT `+postColumns+`, c.name, u.display_name
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.UserID, &p.CategoryID, &p.Title, &p.Excerpt, &p.Content,
		&p.FeaturedImage, &p.Status, &p.PublishedAt, &p.ViewsCount,
		&p.CreatedAt, &p.UpdatedAt, &p.CategoryName, &p.AuthorName,
	)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "post", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if err := s.attachTags(s.db, []*models.Post{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns a page of posts, newest first. Search matches title,
// excerpt, and content; Status filters on the lifecycle state
// (all, draft, published, archived); CategoryID filters exactly.
// A filter combination matching nothing yields an empty page.
func (s *PostStore) List(f ListFilter) (Page[models.Post], error) {
	f = f.normalize()
	page := Page[models.Post]{Page: f.Page, PageSize: f.PageSize}

	b := &condBuilder{}
	b.search(f.Search, "p.title", "p.excerpt", "p.content")
	switch f.Status {
	case "", FilterAll:
	case string(models.PostStatusDraft), string(models.PostStatusPublished), string(models.PostStatusArchived):
		b.add("p.status = %s", f.Status)
	default:
		return page, &models.ValidationError{Field: "status", Reason: "must be all, draft, published, or archived"}
	}
	if f.CategoryID != nil {
		b.add("p.category_id = %s", *f.CategoryID)
	}

	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM posts p `+b.where(), b.args...,
	).Scan(&page.TotalCount)
	if err != nil {
		return page, fmt.Errorf("count posts: %w", err)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT `+postColumns+`, c.name, u.display_name
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		JOIN users u ON u.id = p.user_id
		%s
		ORDER BY p.created_at DESC
		LIMIT %d OFFSET %d
	`, b.where(), f.PageSize, f.offset()), b.args...)
	if err != nil {
		return page, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var refs []*models.Post
	for rows.Next() {
		var p models.Post
		err := rows.Scan(
			&p.ID, &p.UserID, &p.CategoryID, &p.Title, &p.Excerpt, &p.Content,
			&p.FeaturedImage, &p.Status, &p.PublishedAt, &p.ViewsCount,
			&p.CreatedAt, &p.UpdatedAt, &p.CategoryName, &p.AuthorName,
		)
		if err != nil {
			return page, fmt.Errorf("scan post: %w", err)
		}
		page.Items = append(page.Items, p)
	}
	if err := rows.Err(); err != nil {
		return page, err
	}
	for i := range page.Items {
		refs = append(refs, &page.Items[i])
	}
	if err := s.attachTags(s.db, refs); err != nil {
		return page, err
	}
	return page, nil
}

// ListPublished returns a page of published posts ordered by publish
// date, newest first. Used by the public listing.
func (s *PostStore) ListPublished(f ListFilter) (Page[models.Post], error) {
	f = f.normalize()
	page := Page[models.Post]{Page: f.Page, PageSize: f.PageSize}

	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM posts WHERE status = 'published'`,
	).Scan(&page.TotalCount)
	if err != nil {
		return page, fmt.Errorf("count published posts: %w", err)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT `+postColumns+`, c.name, u.display_name
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		JOIN users u ON u.id = p.user_id
		WHERE p.status = 'published'
		ORDER BY p.published_at DESC NULLS LAST
		LIMIT %d OFFSET %d
	`, f.PageSize, f.offset()))
	if err != nil {
		return page, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Post
		err := rows.Scan(
			&p.ID, &p.UserID, &p.CategoryID, &p.Title, &p.Excerpt, &p.Content,
			&p.FeaturedImage, &p.Status, &p.PublishedAt, &p.ViewsCount,
			&p.CreatedAt, &p.UpdatedAt, &p.CategoryName, &p.AuthorName,
		)
		if err != nil {
			return page, fmt.Errorf("scan post: %w", err)
		}
		page.Items = append(page.Items, p)
	}
	if err := rows.Err(); err != nil {
		return page, err
	}
	var refs []*models.Post
	for i := range page.Items {
		refs = append(refs, &page.Items[i])
	}
	if err := s.attachTags(s.db, refs); err != nil {
		return page, err
	}
	return page, nil
}

// Create validates the input and inserts a new post. Status defaults to
// draft; a post created as published gets published_at stamped
// immediately. The initial tag set, if any, is attached in the same
// transaction.
func (s *PostStore) Create(in PostInput) (*models.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := verifyExists(tx, "users", "user", in.UserID); err != nil {
		return nil, err
	}
	if err := verifyExists(tx, "categories", "category", in.CategoryID); err != nil {
		return nil, err
	}

	var publishedAt *time.Time
	if status == models.PostStatusPublished {
		now := time.Now()
		publishedAt = &now
	}

	row := tx.QueryRow(`
		INSERT INTO posts (user_id, category_id, title, excerpt, content,
		                   featured_image, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+postColumnsBare,
		in.UserID, in.CategoryID, in.Title, in.Excerpt, in.Content,
		in.FeaturedImage, status, publishedAt,
	)
	p, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := syncTags(tx, p.ID, in.TagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}
	return s.FindByID(p.ID)
}

// Update validates the input and modifies an existing post, replacing
// its tag set with in.TagIDs. published_at is stamped only when the
// update moves the post into published with no prior timestamp; it is
// never cleared. Concurrent updates are last-write-wins.
func (s *PostStore) Update(id uuid.UUID, in PostInput) (*models.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+postColumns+` FROM posts p WHERE p.id = $1 FOR UPDATE`, id)
	existing, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "post", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find post for update: %w", err)
	}

	if in.CategoryID != existing.CategoryID {
		if err := verifyExists(tx, "categories", "category", in.CategoryID); err != nil {
			return nil, err
		}
	}

	publishedAt := existing.PublishedAt
	if status == models.PostStatusPublished && publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}

	featured := existing.FeaturedImage
	if in.FeaturedImage != nil {
		featured = in.FeaturedImage
	}

	_, err = tx.Exec(`
		UPDATE posts SET
			category_id = $1, title = $2, excerpt = $3, content = $4,
			featured_image = $5, status = $6, published_at = $7, updated_at = NOW()
		WHERE id = $8
	`, in.CategoryID, in.Title, in.Excerpt, in.Content,
		featured, status, publishedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := syncTags(tx, id, in.TagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update post: %w", err)
	}
	return s.FindByID(id)
}

// Delete removes a post and its tag associations in one transaction.
// Tag and category records are unaffected.
func (s *PostStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("delete post tags: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "post", ID: id}
	}
	return tx.Commit()
}

// SetTags replaces the post's full tag association set with tagIDs.
// Only the symmetric difference is written: stale associations are
// removed, missing ones added.
func (s *PostStore) SetTags(id uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := verifyExists(tx, "posts", "post", id); err != nil {
		return err
	}
	if err := syncTags(tx, id, tagIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Transition applies a lifecycle action (publish or archive) to a post.
// Self-transitions are idempotent no-ops, except that publish always
// ensures published_at is set. Archived posts cannot be republished.
func (s *PostStore) Transition(id uuid.UUID, action models.PostAction) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+postColumns+` FROM posts p WHERE p.id = $1 FOR UPDATE`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "post", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find post for transition: %w", err)
	}

	next, err := models.NextStatus(p.Status, action)
	if err != nil {
		return nil, err
	}

	// Idempotent no-op unless publish still needs its timestamp.
	if next == p.Status && !(action == models.ActionPublish && p.PublishedAt == nil) {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit transition: %w", err)
		}
		return s.FindByID(id)
	}

	publishedAt := p.PublishedAt
	if next == models.PostStatusPublished && publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}

	_, err = tx.Exec(`
		UPDATE posts SET status = $1, published_at = $2, updated_at = NOW()
		WHERE id = $3
	`, next, publishedAt, id)
	if err != nil {
		return nil, fmt.Errorf("transition post: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}
	return s.FindByID(id)
}

// SetFeaturedImage records the storage path of the post's featured image.
func (s *PostStore) SetFeaturedImage(id uuid.UUID, path string) error {
	res, err := s.db.Exec(`
		UPDATE posts SET featured_image = $1, updated_at = NOW() WHERE id = $2
	`, path, id)
	if err != nil {
		return fmt.Errorf("set featured image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "post", ID: id}
	}
	return nil
}

// IncrementViews bumps the post's view counter by one.
func (s *PostStore) IncrementViews(id uuid.UUID) error {
	res, err := s.db.Exec(`UPDATE posts SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "post", ID: id}
	}
	return nil
}

// verifyExists checks a single row exists in table, reporting a
// ReferenceError (or NotFoundError for posts) otherwise.
func verifyExists(q querier, table, entity string, id uuid.UUID) error {
	var exists bool
	err := q.QueryRow(`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check %s exists: %w", entity, err)
	}
	if !exists {
		if entity == "post" {
			return &models.NotFoundError{Entity: entity, ID: id}
		}
		return &models.ReferenceError{Entity: entity, ID: id}
	}
	return nil
}

// syncTags replaces the association set for a post inside tx, applying
// only the symmetric difference. Unknown tag ids fail with ReferenceError.
func syncTags(tx *sql.Tx, postID uuid.UUID, tagIDs []uuid.UUID) error {
	// Set semantics: dedupe the requested ids.
	want := make(map[uuid.UUID]bool, len(tagIDs))
	for _, id := range tagIDs {
		want[id] = true
	}

	if len(want) > 0 {
		ids := make([]uuid.UUID, 0, len(want))
		args := make([]any, 0, len(want))
		for id := range want {
			ids = append(ids, id)
			args = append(args, id)
		}
		rows, err := tx.Query(
			`SELECT id FROM tags WHERE id IN (`+inPlaceholders(1, len(args))+`)`, args...,
		)
		if err != nil {
			return fmt.Errorf("verify tags: %w", err)
		}
		found := make(map[uuid.UUID]bool, len(ids))
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("scan tag id: %w", err)
			}
			found[id] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		for _, id := range ids {
			if !found[id] {
				return &models.ReferenceError{Entity: "tag", ID: id}
			}
		}
	}

	rows, err := tx.Query(`SELECT tag_id FROM post_tags WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	current := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan post tag: %w", err)
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for id := range current {
		if !want[id] {
			if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1 AND tag_id = $2`, postID, id); err != nil {
				return fmt.Errorf("detach tag: %w", err)
			}
		}
	}
	for id := range want {
		if !current[id] {
			if _, err := tx.Exec(`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, id); err != nil {
				return fmt.Errorf("attach tag: %w", err)
			}
		}
	}
	return nil
}

// attachTags loads and assigns the tag sets for the given posts in one
// batch query, and fills TagCount.
func (s *PostStore) attachTags(q querier, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*models.Post, len(posts))
	args := make([]any, 0, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
		args = append(args, p.ID)
	}

	rows, err := q.Query(`
		SELECT pt.post_id, t.id, t.name, t.slug, t.color, t.created_at, t.updated_at
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id IN (`+inPlaceholders(1, len(args))+`)
		ORDER BY t.name
	`, args...)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var t models.Tag
		err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug, &t.Color, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.Tags = append(p.Tags, t)
			p.TagCount = len(p.Tags)
		}
	}
	return rows.Err()
}
