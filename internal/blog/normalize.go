package blog

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	slugify "github.com/gosimple/slug"

	"github.com/daniilsolovey/blog-portal/internal/db"
)

// Opt is a presence-tracked field of a partial update. The zero Opt means
// "leave unchanged"; a set Opt carries the new value, which may itself be a
// zero value or nil.
type Opt[T any] struct {
	value T
	set   bool
}

func Set[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// PostInput is the payload for creating a post. The slug is never supplied by
// the caller; it is always derived from the title. Status defaults to
// published when empty.
type PostInput struct {
	Title   string
	Excerpt string
	Content string
	Status  string
	Tags    []string
}

// PostPatch is a partial update: only set fields are written. DeletedAt set
// to a timestamp soft-deletes, set to nil restores; it is independent of
// Status. Tags replaces the whole association with the given set.
type PostPatch struct {
	Title     Opt[string]
	Excerpt   Opt[string]
	Content   Opt[string]
	Status    Opt[string]
	Tags      Opt[[]string]
	DeletedAt Opt[*time.Time]
}

func normalizeCreate(in PostInput) db.PostMutation {
	status := in.Status
	if status == "" {
		status = StatusPublished
	}

	return db.PostMutation{
		Slug:    Slugify(in.Title),
		Title:   in.Title,
		Excerpt: in.Excerpt,
		Content: in.Content,
		Status:  status,
		Tags:    CanonicalTags(in.Tags),
		SetTags: true,
	}
}

func normalizeUpdate(p PostPatch) db.PostMutation {
	var m db.PostMutation

	if v, ok := p.Title.Get(); ok {
		m.Title = v
		m.Slug = Slugify(v)
		m.Columns = append(m.Columns, db.Columns.Post.Title, db.Columns.Post.Slug)
	}
	if v, ok := p.Excerpt.Get(); ok {
		m.Excerpt = v
		m.Columns = append(m.Columns, db.Columns.Post.Excerpt)
	}
	if v, ok := p.Content.Get(); ok {
		m.Content = v
		m.Columns = append(m.Columns, db.Columns.Post.Content)
	}
	if v, ok := p.Status.Get(); ok {
		m.Status = v
		m.Columns = append(m.Columns, db.Columns.Post.Status)
	}
	if v, ok := p.DeletedAt.Get(); ok {
		m.DeletedAt = v
		m.Columns = append(m.Columns, db.Columns.Post.DeletedAt)
	}
	if v, ok := p.Tags.Get(); ok {
		m.Tags = CanonicalTags(v)
		m.SetTags = true
	}

	return m
}

// Slugify derives the canonical URL slug for a title: lowercase, ASCII
// transliterated, non-alphanumeric runs collapsed to single hyphens, edge
// hyphens trimmed. The same title always yields the same slug.
func Slugify(title string) string {
	return slugify.Make(title)
}

// CanonicalTags trims each raw name, drops empties, capitalizes the first
// rune and lowercases the rest, then de-duplicates. The canonical form makes
// the de-duplication case-insensitive; first occurrence order is kept.
func CanonicalTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, name := range raw {
		name = capitalize(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
