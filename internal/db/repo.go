package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"
)

type Repository struct {
	db  pg.DBI
	log *slog.Logger
}

// New creates a Repository over a go-pg connection or transaction.
func New(db pg.DBI, logger *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: logger,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			r.log.Error("database ping failed", "error", err)
			return err
		}
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
	}

	return nil
}

// PostMutation is a normalized write: column values plus the list of columns
// the write touches. Tags carries canonical tag names; when SetTags is true
// the post's association is replaced with exactly that set, going through
// find-or-create so no duplicate tag rows appear.
type PostMutation struct {
	Slug      string
	Title     string
	Excerpt   string
	Content   string
	Status    string
	DeletedAt *time.Time
	Columns   []string

	Tags    []string
	SetTags bool
}

// InsertPost stores a new post and returns its assigned id. Timestamps are
// set here so createdAt and updatedAt start out equal.
func (r *Repository) InsertPost(ctx context.Context, m PostMutation) (int, error) {
	tagIDs := []int{}
	if m.SetTags && len(m.Tags) > 0 {
		ids, err := r.findOrCreateTags(ctx, m.Tags)
		if err != nil {
			return 0, err
		}
		tagIDs = ids
	}

	now := time.Now()
	post := &Post{
		Slug:      m.Slug,
		Title:     m.Title,
		Excerpt:   m.Excerpt,
		Content:   m.Content,
		Status:    m.Status,
		CreatedAt: now,
		UpdatedAt: now,
		DeletedAt: m.DeletedAt,
		TagIDs:    tagIDs,
	}

	if _, err := r.db.ModelContext(ctx, post).Insert(); err != nil {
		r.log.Error("failed to insert post", "error", err, "slug", m.Slug)
		return 0, fmt.Errorf("insert post: %w", err)
	}

	r.log.Debug("post inserted", "postId", post.ID, "slug", post.Slug)

	return post.ID, nil
}

// UpdatePost applies the mutation to the single post matched by key, touching
// only the listed columns. updatedAt is always advanced. Returns pg.ErrNoRows
// when the target row does not exist.
func (r *Repository) UpdatePost(ctx context.Context, key SelectBy, m PostMutation) (int, error) {
	post := &Post{
		Slug:      m.Slug,
		Title:     m.Title,
		Excerpt:   m.Excerpt,
		Content:   m.Content,
		Status:    m.Status,
		UpdatedAt: time.Now(),
		DeletedAt: m.DeletedAt,
	}

	cols := append([]string{Columns.Post.UpdatedAt}, m.Columns...)

	if m.SetTags {
		ids, err := r.findOrCreateTags(ctx, m.Tags)
		if err != nil {
			return 0, err
		}
		post.TagIDs = ids
		cols = append(cols, Columns.Post.TagIDs)
	}

	q := r.db.ModelContext(ctx, post).
		Column(cols...).
		Returning(`"postId"`)
	q = key.applyKey(q)

	res, err := q.Update()
	if err != nil {
		r.log.Error("failed to update post", "error", err)
		return 0, fmt.Errorf("update post: %w", err)
	}
	if res.RowsAffected() == 0 {
		return 0, pg.ErrNoRows
	}

	r.log.Debug("post updated", "postId", post.ID)

	return post.ID, nil
}

// SelectPost returns the first post matching the filter with the full
// projection, or nil when nothing matches.
func (r *Repository) SelectPost(ctx context.Context, filter PostFilter) (*Post, error) {
	post := &Post{}
	q := filter.apply(r.db.ModelContext(ctx, post)).
		OrderExpr(`"t"."postId" ASC`).
		Limit(1)

	err := q.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		r.log.Error("failed to select post", "error", err)
		return nil, fmt.Errorf("select post: %w", err)
	}

	tags, err := r.loadTags(ctx, post.TagIDs)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	return post, nil
}

// SelectPosts returns one page of posts matching the filter, ordered by
// (opts.OrderBy opts.OrderDirection, postId ASC). It overfetches a single row
// beyond the limit to detect whether more pages exist.
func (r *Repository) SelectPosts(ctx context.Context, filter PostFilter, opts SearchOptions, dataType DataType) (Page, error) {
	opts = opts.normalize()
	if opts.Limit < 1 {
		return Page{}, fmt.Errorf("limit must be greater than 0: limit=%d", opts.Limit)
	}

	var posts []Post
	q := r.db.ModelContext(ctx, &posts)
	if cols := dataType.columns(); cols != nil {
		q = q.Column(cols...)
	}
	q = filter.apply(q)

	if opts.Cursor != 0 {
		cursorRow, err := r.cursorRow(ctx, opts.Cursor)
		if err != nil {
			return Page{}, err
		}
		if cursorRow == nil {
			// The cursor id was never assigned by this dataset. Resuming
			// from the top would break the no-overlap guarantee, so the
			// pagination ends here.
			return Page{Posts: []Post{}}, nil
		}
		q = opts.applySeek(q, cursorRow)
	}

	err := opts.applyOrder(q).
		Limit(opts.Limit + 1).
		Select()
	if err != nil {
		r.log.Error("failed to select posts", "error", err)
		return Page{}, fmt.Errorf("select posts: %w", err)
	}

	page := trimPage(posts, opts.Limit)

	if dataType.withTags() {
		withTags, err := r.attachTagsBatch(ctx, page.Posts)
		if err != nil {
			return Page{}, err
		}
		page.Posts = withTags
	}

	return page, nil
}

// cursorRow loads the sort-key columns of the row a cursor points at. The
// lookup deliberately ignores the caller's filter: a cursor referencing a row
// that was soft-deleted or filtered out since the previous page still marks a
// valid position to seek past.
func (r *Repository) cursorRow(ctx context.Context, cursor int) (*Post, error) {
	row := &Post{ID: cursor}
	err := r.db.ModelContext(ctx, row).
		Column(Columns.Post.ID, Columns.Post.CreatedAt, Columns.Post.UpdatedAt, Columns.Post.Title).
		WherePK().
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		r.log.Error("failed to load cursor row", "error", err, "cursor", cursor)
		return nil, fmt.Errorf("load cursor row: %w", err)
	}

	return row, nil
}

// SelectTags lists tags matching the filter ordered by name.
func (r *Repository) SelectTags(ctx context.Context, filter TagFilter) ([]Tag, error) {
	var tags []Tag
	err := filter.apply(r.db.ModelContext(ctx, &tags)).
		OrderExpr(`"t"."name" ASC`).
		Select()

	if err != nil {
		r.log.Error("failed to select tags", "error", err)
		return nil, fmt.Errorf("select tags: %w", err)
	}

	return tags, nil
}

// findOrCreateTags resolves canonical tag names to ids, creating rows for
// names seen for the first time. ON CONFLICT DO NOTHING keeps the operation
// idempotent when two writers race on the same new name.
func (r *Repository) findOrCreateTags(ctx context.Context, names []string) ([]int, error) {
	if len(names) == 0 {
		return []int{}, nil
	}

	tags := make([]Tag, len(names))
	for i, name := range names {
		tags[i] = Tag{Name: name}
	}

	if _, err := r.db.ModelContext(ctx, &tags).
		OnConflict(`("name") DO NOTHING`).
		Insert(); err != nil {
		r.log.Error("failed to insert tags", "error", err, "names", names)
		return nil, fmt.Errorf("insert tags: %w", err)
	}

	// Re-read to pick up the rows that already existed and were skipped above.
	var stored []Tag
	err := r.db.ModelContext(ctx, &stored).
		Where(`"name" IN (?)`, pg.In(names)).
		OrderExpr(`"tagId" ASC`).
		Select()
	if err != nil {
		r.log.Error("failed to query tags by names", "error", err, "names", names)
		return nil, fmt.Errorf("select tags by names: %w", err)
	}

	ids := make([]int, len(stored))
	for i := range stored {
		ids[i] = stored[i].ID
	}

	return ids, nil
}
