// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blogpress/internal/database"
	"blogpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// newTestUser inserts a throwaway user and registers its removal.
func newTestUser(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	email := "test-" + uuid.NewString()[:8] + "@example.com"
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, role)
		VALUES ($1, 'x', 'Test Author', 'admin')
		RETURNING id
	`, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", id) })
	return id
}

// newTestCategory creates a category with a unique name and registers
// its removal. Cleanups run LIFO, so posts created later are gone
// before the category row is deleted.
func newTestCategory(t *testing.T, s *CategoryStore, db *sql.DB) *models.Category {
	t.Helper()
	c, err := s.Create(CategoryInput{
		Name:     "Test Category " + uuid.NewString()[:8],
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", c.ID) })
	return c
}

// newTestTag creates a tag with a unique name and registers its removal.
func newTestTag(t *testing.T, s *TagStore, db *sql.DB) *models.Tag {
	t.Helper()
	tag, err := s.Create(TagInput{Name: "Test Tag " + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("create test tag: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM tags WHERE id = $1", tag.ID) })
	return tag
}

// newTestPost creates a post owned by a fresh user in a fresh category
// and registers its removal.
func newTestPost(t *testing.T, db *sql.DB, in PostInput) *models.Post {
	t.Helper()
	s := NewPostStore(db)
	if in.UserID == uuid.Nil {
		in.UserID = newTestUser(t, db)
	}
	if in.CategoryID == uuid.Nil {
		in.CategoryID = newTestCategory(t, NewCategoryStore(db), db).ID
	}
	if in.Title == "" {
		in.Title = "Test Post " + uuid.NewString()[:8]
	}
	if in.Content == "" {
		in.Content = "<p>Test content</p>"
	}
	p, err := s.Create(in)
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM post_tags WHERE post_id = $1", p.ID)
		db.Exec("DELETE FROM posts WHERE id = $1", p.ID)
	})
	return p
}
