package blog

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Tag struct {
	ID   int    `json:"tagId"`
	Name string `json:"name"`
}

type Post struct {
	ID        int        `json:"postId"`
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Excerpt   string     `json:"excerpt"`
	Content   string     `json:"content,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	Tags      []Tag      `json:"tags"`
}

// Page is one slice of a paginated listing. NextCursor is only set when
// HasMore is true; feeding it back as SearchOptions.Cursor yields the next
// slice.
type Page struct {
	Posts      []Post `json:"posts"`
	NextCursor int    `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}
