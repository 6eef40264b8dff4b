// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"blogpress/internal/imaging"
	"blogpress/internal/markdown"
	"blogpress/internal/models"
	"blogpress/internal/store"
)

// maxImageUploadSize caps featured image uploads (20 MB).
const maxImageUploadSize = 20 << 20

// allowedImageTypes are the MIME types accepted for featured images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// postPayload is the post create/update request body. Content may be
// supplied as ready HTML (content) or as Markdown (content_markdown),
// which is rendered to HTML before storage.
type postPayload struct {
	store.PostInput
	ContentMarkdown string `json:"content_markdown"`
}

// resolve renders Markdown content when supplied and returns the final
// store input.
func (p *postPayload) resolve() (store.PostInput, error) {
	if p.ContentMarkdown != "" {
		html, err := markdown.ToHTML(p.ContentMarkdown)
		if err != nil {
			return p.PostInput, &models.ValidationError{Field: "content_markdown", Reason: "could not be rendered: " + err.Error()}
		}
		p.PostInput.Content = html
	}
	return p.PostInput, nil
}

// PostsList returns a page of posts. Supports search (title, excerpt,
// content), status filter (all/draft/published/archived), category
// filter, and pagination.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	f, err := listFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := a.posts.List(f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// PostGet returns a single post with category, author, and tags.
func (a *Admin) PostGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := a.posts.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PostCreate creates a new post, defaulting to draft. A post created
// as published gets its publish timestamp stamped immediately.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	in, err := payload.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := a.posts.Create(in)
	if err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusCreated, "Post created successfully.", p)
}

// PostUpdate modifies an existing post, replacing its tag set.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	in, err := payload.resolve()
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := a.posts.Update(id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Post updated successfully.", p)
}

// PostDelete removes a post and its tag associations.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := a.posts.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Post deleted successfully.", nil)
}

// PostPublish moves a post into published. Republishing an archived
// post is refused.
func (a *Admin) PostPublish(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, models.ActionPublish, "Post published successfully.")
}

// PostArchive moves a post into archived, keeping its publish timestamp.
func (a *Admin) PostArchive(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, models.ActionArchive, "Post archived successfully.")
}

func (a *Admin) transition(w http.ResponseWriter, r *http.Request, action models.PostAction, message string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := a.posts.Transition(id, action)
	if err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, message, p)
}

// PostSetTags replaces the post's tag set with the submitted ids.
func (a *Admin) PostSetTags(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		TagIDs []uuid.UUID `json:"tag_ids"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := a.posts.SetTags(id, body.TagIDs); err != nil {
		writeError(w, err)
		return
	}

	p, err := a.posts.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Tags updated successfully.", p)
}

// PostUploadImage accepts a multipart featured image, re-encodes it to
// WebP variants, uploads them to object storage, and records the full
// variant's URL on the post. A previously stored image is removed.
func (a *Admin) PostUploadImage(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error": apiError{Kind: "storage", Message: "object storage is not configured"},
		})
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	existing, err := a.posts.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadSize+1024)
	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		writeError(w, &models.ValidationError{Field: "image", Reason: "file too large (max 20 MB)"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, &models.ValidationError{Field: "image", Reason: "is required"})
		return
	}
	defer file.Close()
	if header.Size > maxImageUploadSize {
		writeError(w, &models.ValidationError{Field: "image", Reason: "file too large (max 20 MB)"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, &models.ValidationError{Field: "image", Reason: "could not be read"})
		return
	}
	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		writeError(w, &models.ValidationError{Field: "image", Reason: "must be a JPEG, PNG, GIF, or WebP image"})
		return
	}

	variants, err := imaging.Process(data, imaging.FeaturedVariants)
	if err != nil {
		writeError(w, &models.ValidationError{Field: "image", Reason: "could not be processed"})
		return
	}

	// Upload every variant under a shared base key.
	base := "featured/" + id.String() + "/" + uuid.NewString()
	var fullURL, thumbURL string
	for _, v := range variants {
		key := base + "-" + v.Name + ".webp"
		err := a.storageClient.Upload(r.Context(), key, v.ContentType, bytes.NewReader(v.Data), int64(len(v.Data)))
		if err != nil {
			writeError(w, err)
			return
		}
		switch v.Name {
		case "full":
			fullURL = a.storageClient.FileURL(key)
		case "thumb":
			thumbURL = a.storageClient.FileURL(key)
		}
	}

	if err := a.posts.SetFeaturedImage(id, fullURL); err != nil {
		writeError(w, err)
		return
	}

	// Best-effort removal of the replaced image's variants.
	if existing.FeaturedImage != nil {
		a.removeStoredImage(r, *existing.FeaturedImage)
	}

	a.listings.Invalidate(r.Context())
	writeMessage(w, http.StatusOK, "Featured image uploaded successfully.", map[string]string{
		"featured_image": fullURL,
		"thumbnail":      thumbURL,
	})
}

// removeStoredImage deletes the full and thumb variants behind a stored
// featured image URL. Failures are logged, not surfaced.
func (a *Admin) removeStoredImage(r *http.Request, rawURL string) {
	key, ok := a.storageClient.ExtractKey(rawURL)
	if !ok {
		return
	}
	if err := a.storageClient.Delete(r.Context(), key); err != nil {
		slog.Warn("delete replaced image", "key", key, "error", err)
	}
	if strings.HasSuffix(key, "-full.webp") {
		thumbKey := strings.TrimSuffix(key, "-full.webp") + "-thumb.webp"
		if err := a.storageClient.Delete(r.Context(), thumbKey); err != nil {
			slog.Warn("delete replaced thumbnail", "key", thumbKey, "error", err)
		}
	}
}
