package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blogpress/internal/slug"
)

// Seed populates the database with initial development data: six
// categories, fifteen tags, three user accounts, and six sample posts
// (five published, one draft) with randomly assigned categories, view
// counts, and 2-5 tags each. Post and taxonomy content is fixed; only
// the random assignments differ between runs.
func Seed(db *sql.DB) error {
	// Skip if already seeded.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	categoryIDs, err := seedCategories(tx)
	if err != nil {
		return err
	}
	tagIDs, err := seedTags(tx)
	if err != nil {
		return err
	}
	authorID, err := seedUsers(tx)
	if err != nil {
		return err
	}
	if err := seedPosts(tx, authorID, categoryIDs, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded",
		"categories", len(seedCategoryRows),
		"tags", len(seedTagRows),
		"users", len(seedUserRows),
		"posts", len(seedPostRows),
	)
	return nil
}

type seedCategory struct {
	name        string
	description string
}

var seedCategoryRows = []seedCategory{
	{"Technology", "Articles about technology, programming, and software development"},
	{"Business", "Business strategies, entrepreneurship, and startup insights"},
	{"Lifestyle", "Lifestyle, health, and personal development content"},
	{"Travel", "Travel guides, tips, and destination recommendations"},
	{"Food", "Recipes, restaurant reviews, and culinary adventures"},
	{"Education", "Learning resources, tutorials, and educational content"},
}

func seedCategories(tx *sql.Tx) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(seedCategoryRows))
	for _, c := range seedCategoryRows {
		var id uuid.UUID
		err := tx.QueryRow(`
			INSERT INTO categories (name, description, is_active)
			VALUES ($1, $2, TRUE)
			RETURNING id
		`, c.name, c.description).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", c.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type seedTag struct {
	name  string
	color string
}

var seedTagRows = []seedTag{
	{"Laravel", "#f56565"},
	{"PHP", "#667eea"},
	{"JavaScript", "#f6ad55"},
	{"Vue.js", "#48bb78"},
	{"React", "#4299e1"},
	{"Tailwind CSS", "#38b2ac"},
	{"DevOps", "#ed64a6"},
	{"AI & Machine Learning", "#9f7aea"},
	{"Web Development", "#4fd1c5"},
	{"Mobile Apps", "#fc8181"},
	{"Database", "#f687b3"},
	{"Security", "#68d391"},
	{"Cloud Computing", "#63b3ed"},
	{"Career Tips", "#fbd38d"},
	{"Tutorial", "#b794f4"},
}

func seedTags(tx *sql.Tx) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(seedTagRows))
	for _, t := range seedTagRows {
		var id uuid.UUID
		err := tx.QueryRow(`
			INSERT INTO tags (name, slug, color)
			VALUES ($1, $2, $3)
			RETURNING id
		`, t.name, slug.Generate(t.name), t.color).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed tag %q: %w", t.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type seedUser struct {
	email string
	name  string
	role  string
}

var seedUserRows = []seedUser{
	{"superadmin@example.com", "Super Admin", "superadmin"},
	{"admin@example.com", "Admin User", "admin"},
	{"user@example.com", "Regular User", "user"},
}

// seedUsers inserts the fixed accounts and returns the first user's id,
// which owns the sample posts.
func seedUsers(tx *sql.Tx) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("seed bcrypt: %w", err)
	}

	var first uuid.UUID
	for i, u := range seedUserRows {
		var id uuid.UUID
		err := tx.QueryRow(`
			INSERT INTO users (email, password_hash, display_name, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, u.email, string(hash), u.name, u.role).Scan(&id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("seed user %q: %w", u.email, err)
		}
		if i == 0 {
			first = id
		}
	}
	return first, nil
}

type seedPost struct {
	title        string
	excerpt      string
	content      string
	status       string
	publishedAgo time.Duration // zero for drafts
	minViews     int
	maxViews     int
}

var seedPostRows = []seedPost{
	{
		title:        "Getting Started with Laravel 12",
		excerpt:      "Learn the basics of Laravel 12 and explore its new features",
		content:      "<p>Laravel 12 brings exciting new features to the PHP ecosystem. In this article, we'll explore the latest additions and improvements that make Laravel even more powerful.</p><p>From enhanced performance to new developer tools, Laravel 12 continues to be the framework of choice for modern PHP development.</p>",
		status:       "published",
		publishedAgo: 5 * 24 * time.Hour,
		minViews:     100, maxViews: 1000,
	},
	{
		title:        "Building RESTful APIs with Laravel",
		excerpt:      "A comprehensive guide to creating robust APIs",
		content:      "<p>APIs are the backbone of modern web applications. This guide will walk you through creating a professional RESTful API using Laravel's powerful features.</p><p>We'll cover authentication, rate limiting, versioning, and best practices for API development.</p>",
		status:       "published",
		publishedAgo: 3 * 24 * time.Hour,
		minViews:     100, maxViews: 1000,
	},
	{
		title:        "Mastering Livewire Components",
		excerpt:      "Deep dive into Livewire reactive components",
		content:      "<p>Livewire makes building dynamic interfaces a breeze. In this article, we explore advanced techniques for creating reactive, real-time components without writing JavaScript.</p><p>Learn about component lifecycle, events, and optimization strategies.</p>",
		status:       "published",
		publishedAgo: 24 * time.Hour,
		minViews:     100, maxViews: 1000,
	},
	{
		title:        "Database Optimization Techniques",
		excerpt:      "Improve your database performance dramatically",
		content:      "<p>Database performance is crucial for any application. This article covers indexing strategies, query optimization, and caching techniques to supercharge your database.</p><p>We'll also explore N+1 problem solutions and when to use eager loading.</p>",
		status:       "published",
		publishedAgo: 12 * time.Hour,
		minViews:     50, maxViews: 500,
	},
	{
		title:        "Understanding Laravel Queues",
		excerpt:      "Process jobs asynchronously for better performance",
		content:      "<p>Queues allow you to defer time-consuming tasks and improve your application's response time. Learn how to implement and manage queues effectively in Laravel.</p>",
		status:       "published",
		publishedAgo: 6 * time.Hour,
		minViews:     50, maxViews: 300,
	},
	{
		title:   "Draft: Upcoming Features in Laravel",
		excerpt: "A sneak peek at what's coming next",
		content: "<p>This is a draft post about upcoming Laravel features that we're excited about.</p>",
		status:  "draft",
	},
}

func seedPosts(tx *sql.Tx, authorID uuid.UUID, categoryIDs, tagIDs []uuid.UUID) error {
	for _, p := range seedPostRows {
		var publishedAt *time.Time
		views := 0
		if p.status == "published" {
			t := time.Now().Add(-p.publishedAgo)
			publishedAt = &t
			views = p.minViews + rand.Intn(p.maxViews-p.minViews+1)
		}

		var id uuid.UUID
		err := tx.QueryRow(`
			INSERT INTO posts (user_id, category_id, title, excerpt, content,
			                   status, published_at, views_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, authorID, categoryIDs[rand.Intn(len(categoryIDs))],
			p.title, p.excerpt, p.content, p.status, publishedAt, views,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed post %q: %w", p.title, err)
		}

		// Attach 2-5 random tags per post.
		for _, idx := range rand.Perm(len(tagIDs))[:2+rand.Intn(4)] {
			_, err := tx.Exec(`
				INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			`, id, tagIDs[idx])
			if err != nil {
				return fmt.Errorf("seed post tags %q: %w", p.title, err)
			}
		}
	}
	return nil
}
