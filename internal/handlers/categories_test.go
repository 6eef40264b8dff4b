package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"blogpress/internal/models"
	"blogpress/internal/store"
)

func TestCategoryCreateHandler(t *testing.T) {
	h, db := testHandler(t)

	name := "API Category " + uuid.NewString()[:8]
	rr := doJSON(t, h, http.MethodPost, "/admin/categories", map[string]any{
		"name":      name,
		"is_active": true,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}

	var body struct {
		Message string          `json:"message"`
		Data    models.Category `json:"data"`
	}
	decodeBody(t, rr, &body)
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", body.Data.ID) })

	if body.Message != "Category created successfully." {
		t.Errorf("message: got %q", body.Message)
	}
	if body.Data.Name != name {
		t.Errorf("name: got %q, want %q", body.Data.Name, name)
	}
}

func TestCategoryCreateHandlerValidation(t *testing.T) {
	h, _ := testHandler(t)

	rr := doJSON(t, h, http.MethodPost, "/admin/categories", map[string]any{"name": ""})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", rr.Code)
	}
	if kind := errorKind(t, rr); kind != "validation" {
		t.Errorf("kind: got %q, want validation", kind)
	}

	// Unknown fields are rejected.
	rr = doJSON(t, h, http.MethodPost, "/admin/categories", map[string]any{
		"name": "X", "bogus": true,
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown field: got %d, want 422", rr.Code)
	}
}

func TestCategoryUpdateHandler(t *testing.T) {
	h, db := testHandler(t)
	c := seedCategory(t, db)

	newName := "Renamed " + uuid.NewString()[:8]
	rr := doJSON(t, h, http.MethodPut, "/admin/categories/"+c.ID.String(), map[string]any{
		"name":      newName,
		"is_active": false,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}

	var body struct {
		Data models.Category `json:"data"`
	}
	decodeBody(t, rr, &body)
	if body.Data.Name != newName || body.Data.IsActive {
		t.Errorf("update not applied: %+v", body.Data)
	}

	// Unknown id is a 404.
	rr = doJSON(t, h, http.MethodPut, "/admin/categories/"+uuid.NewString(), map[string]any{
		"name": "Ghost",
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rr.Code)
	}

	// Malformed id is a validation failure.
	rr = doJSON(t, h, http.MethodPut, "/admin/categories/not-a-uuid", map[string]any{
		"name": "Ghost",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad id: got %d, want 422", rr.Code)
	}
}

func TestCategoryToggleHandler(t *testing.T) {
	h, db := testHandler(t)
	c := seedCategory(t, db)

	rr := doJSON(t, h, http.MethodPost, "/admin/categories/"+c.ID.String()+"/toggle", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}

	var body struct {
		Message string          `json:"message"`
		Data    models.Category `json:"data"`
	}
	decodeBody(t, rr, &body)
	if body.Data.IsActive {
		t.Error("expected inactive after toggle")
	}
	if body.Message != "Category status updated successfully." {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestCategoryDeleteHandlerConflict(t *testing.T) {
	h, db := testHandler(t)

	c := seedCategory(t, db)
	p, err := store.NewPostStore(db).Create(store.PostInput{
		Title:      "Guard Post " + uuid.NewString()[:8],
		Content:    "<p>x</p>",
		CategoryID: c.ID,
		UserID:     seedUser(t, db),
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM posts WHERE id = $1", p.ID) })

	rr := doJSON(t, h, http.MethodDelete, "/admin/categories/"+c.ID.String(), nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409 (%s)", rr.Code, rr.Body.String())
	}
	if kind := errorKind(t, rr); kind != "conflict" {
		t.Errorf("kind: got %q, want conflict", kind)
	}
}

func TestCategoriesListHandler(t *testing.T) {
	h, db := testHandler(t)
	c := seedCategory(t, db)

	rr := doJSON(t, h, http.MethodGet, "/admin/categories?search="+c.Name[len(c.Name)-8:], nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}

	var page struct {
		Items      []models.Category `json:"items"`
		TotalCount int               `json:"total_count"`
		Page       int               `json:"page"`
		PageSize   int               `json:"page_size"`
	}
	decodeBody(t, rr, &page)
	if page.TotalCount != 1 || len(page.Items) != 1 {
		t.Fatalf("got %d items (total %d), want 1", len(page.Items), page.TotalCount)
	}
	if page.PageSize != store.DefaultPageSize {
		t.Errorf("page size: got %d, want %d", page.PageSize, store.DefaultPageSize)
	}

	// Invalid status filter propagates as validation failure.
	rr = doJSON(t, h, http.MethodGet, "/admin/categories?status=bogus", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("bogus status: got %d, want 422", rr.Code)
	}
}

func TestCategoryOptionsHandler(t *testing.T) {
	h, db := testHandler(t)

	active := seedCategory(t, db)
	inactive := seedCategory(t, db)
	if _, err := store.NewCategoryStore(db).ToggleActive(inactive.ID); err != nil {
		t.Fatalf("deactivate category: %v", err)
	}

	rr := doJSON(t, h, http.MethodGet, "/admin/categories/options", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}

	var body struct {
		Items []models.Category `json:"items"`
	}
	decodeBody(t, rr, &body)

	var sawActive bool
	for _, item := range body.Items {
		if item.ID == inactive.ID {
			t.Error("inactive category leaked into options")
		}
		if item.ID == active.ID {
			sawActive = true
		}
	}
	if !sawActive {
		t.Error("active category missing from options")
	}
}
