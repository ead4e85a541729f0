package blog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daniilsolovey/blog-portal/internal/db"
)

// Manager is the single entry point for post and tag access. It normalizes
// mutations before they reach the store and classifies every store error, so
// callers only ever see ErrNotFound, ErrConflict or ErrInternal. It holds no
// state between calls; every operation re-reads from the store.
type Manager struct {
	db  *db.Repository
	log *slog.Logger
}

func NewManager(repo *db.Repository, logger *slog.Logger) *Manager {
	return &Manager{
		db:  repo,
		log: logger,
	}
}

// Insert stores a new post and returns its id. A duplicate slug (another post
// with a title that derives to the same slug) yields ErrConflict.
func (m *Manager) Insert(ctx context.Context, in PostInput) (int, error) {
	id, err := m.db.InsertPost(ctx, normalizeCreate(in))
	if err != nil {
		m.log.Error("insert post failed", "error", err, "title", in.Title)
		return 0, classify(err)
	}

	return id, nil
}

// SelectOne returns the first post matching the filter with the full
// projection, or nil when nothing matches. "Not found" is not an error here.
func (m *Manager) SelectOne(ctx context.Context, filter db.PostFilter) (*Post, error) {
	row, err := m.db.SelectPost(ctx, filter)
	if err != nil {
		m.log.Error("select post failed", "error", err)
		return nil, classify(err)
	}
	if row == nil {
		return nil, nil
	}

	post := NewPost(row)
	return &post, nil
}

// SelectMany returns one page of posts matching the filter. Iterating with
// Page.NextCursor until HasMore is false walks the full result set exactly
// once in the requested order.
func (m *Manager) SelectMany(ctx context.Context, filter db.PostFilter, opts db.SearchOptions, dataType db.DataType) (Page, error) {
	page, err := m.db.SelectPosts(ctx, filter, opts, dataType)
	if err != nil {
		m.log.Error("select posts failed", "error", err)
		return Page{}, classify(err)
	}

	return NewPage(page), nil
}

// Update applies a partial update to the post matched by key and returns its
// id. Absent patch fields stay untouched; a title change re-derives the slug.
// ErrNotFound when the target does not exist, ErrConflict when the new slug
// collides with another post.
func (m *Manager) Update(ctx context.Context, key db.SelectBy, patch PostPatch) (int, error) {
	id, err := m.db.UpdatePost(ctx, key, normalizeUpdate(patch))
	if err != nil {
		m.log.Error("update post failed", "error", err)
		return 0, classify(err)
	}

	return id, nil
}

// SoftDelete hides the post from deleted=exclude reads by stamping deletedAt.
func (m *Manager) SoftDelete(ctx context.Context, key db.SelectBy) (int, error) {
	now := time.Now()
	id, err := m.Update(ctx, key, PostPatch{DeletedAt: Set(&now)})
	if err != nil {
		return 0, fmt.Errorf("soft delete post: %w", err)
	}

	return id, nil
}

// Restore clears deletedAt, making the post visible to deleted=exclude reads
// again. Status is untouched: a restored draft stays a draft.
func (m *Manager) Restore(ctx context.Context, key db.SelectBy) (int, error) {
	id, err := m.Update(ctx, key, PostPatch{DeletedAt: Set[*time.Time](nil)})
	if err != nil {
		return 0, fmt.Errorf("restore post: %w", err)
	}

	return id, nil
}

// ListTags lists tags ordered by name. The zero filter returns only tags
// attached to at least one live published post.
func (m *Manager) ListTags(ctx context.Context, filter db.TagFilter) ([]Tag, error) {
	list, err := m.db.SelectTags(ctx, filter)
	if err != nil {
		m.log.Error("select tags failed", "error", err)
		return nil, classify(err)
	}

	return NewTags(list), nil
}
