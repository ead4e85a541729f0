package blog

import (
	"github.com/daniilsolovey/blog-portal/internal/db"
)

func NewTag(t *db.Tag) Tag {
	return Tag{
		ID:   t.ID,
		Name: t.Name,
	}
}

func NewTags(list []db.Tag) []Tag {
	tags := make([]Tag, len(list))
	for i := range list {
		tags[i] = NewTag(&list[i])
	}
	return tags
}

func NewPost(p *db.Post) Post {
	post := Post{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		DeletedAt: p.DeletedAt,
		Tags:      []Tag{},
	}

	if len(p.Tags) > 0 {
		post.Tags = NewTags(p.Tags)
	}

	return post
}

func NewPosts(list []db.Post) []Post {
	posts := make([]Post, len(list))
	for i := range list {
		posts[i] = NewPost(&list[i])
	}
	return posts
}

func NewPage(page db.Page) Page {
	return Page{
		Posts:      NewPosts(page.Posts),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
}
