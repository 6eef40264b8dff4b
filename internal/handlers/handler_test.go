// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blogpress/internal/database"
	"blogpress/internal/models"
	"blogpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testHandler wires the handler groups against a real database, with
// storage and cache left unconfigured. The returned router carries the
// same admin and public paths as the production router.
func testHandler(t *testing.T) (http.Handler, *sql.DB) {
	t.Helper()
	db := testDB(t)

	admin := NewAdmin(
		store.NewPostStore(db),
		store.NewCategoryStore(db),
		store.NewTagStore(db),
		store.NewUserStore(db),
		nil, // storage
		nil, // listing cache
	)
	public := NewPublic(store.NewPostStore(db), nil)

	r := chi.NewRouter()
	r.Route("/admin", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.CategoriesList)
			r.Post("/", admin.CategoryCreate)
			r.Get("/options", admin.CategoryOptions)
			r.Put("/{id}", admin.CategoryUpdate)
			r.Delete("/{id}", admin.CategoryDelete)
			r.Post("/{id}/toggle", admin.CategoryToggle)
		})
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", admin.TagsList)
			r.Post("/", admin.TagCreate)
			r.Get("/options", admin.TagOptions)
			r.Put("/{id}", admin.TagUpdate)
			r.Delete("/{id}", admin.TagDelete)
		})
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", admin.PostsList)
			r.Post("/", admin.PostCreate)
			r.Get("/{id}", admin.PostGet)
			r.Put("/{id}", admin.PostUpdate)
			r.Delete("/{id}", admin.PostDelete)
			r.Post("/{id}/publish", admin.PostPublish)
			r.Post("/{id}/archive", admin.PostArchive)
			r.Put("/{id}/tags", admin.PostSetTags)
			r.Post("/{id}/image", admin.PostUploadImage)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", admin.UsersList)
			r.Get("/{id}", admin.UserGet)
		})
	})
	r.Get("/posts", public.PostsList)
	r.Get("/posts/{id}", public.PostGet)

	return r, db
}

// doJSON performs a request with an optional JSON body and returns the
// recorder.
func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals the recorded response body into dst.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// errorKind extracts error.kind from a failure response.
func errorKind(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error apiError `json:"error"`
	}
	decodeBody(t, rr, &body)
	return body.Error.Kind
}

// seedUser inserts a throwaway author and registers its removal.
func seedUser(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, role)
		VALUES ($1, 'x', 'Handler Test Author', 'admin')
		RETURNING id
	`, "handler-"+uuid.NewString()[:8]+"@example.com").Scan(&id)
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", id) })
	return id
}

// seedCategory inserts a category and registers its removal.
func seedCategory(t *testing.T, db *sql.DB) *models.Category {
	t.Helper()
	c, err := store.NewCategoryStore(db).Create(store.CategoryInput{
		Name:     "Handler Category " + uuid.NewString()[:8],
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", c.ID) })
	return c
}

// seedTag inserts a tag and registers its removal.
func seedTag(t *testing.T, db *sql.DB) *models.Tag {
	t.Helper()
	tag, err := store.NewTagStore(db).Create(store.TagInput{
		Name: "Handler Tag " + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("create test tag: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM tags WHERE id = $1", tag.ID) })
	return tag
}

// seedPost inserts a post and registers its removal.
func seedPost(t *testing.T, db *sql.DB, status models.PostStatus) *models.Post {
	t.Helper()
	p, err := store.NewPostStore(db).Create(store.PostInput{
		Title:      "Handler Post " + uuid.NewString()[:8],
		Content:    "<p>Handler test content</p>",
		CategoryID: seedCategory(t, db).ID,
		UserID:     seedUser(t, db),
		Status:     status,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM post_tags WHERE post_id = $1", p.ID)
		db.Exec("DELETE FROM posts WHERE id = $1", p.ID)
	})
	return p
}
