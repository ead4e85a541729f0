package db

import (
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var Columns = struct {
	Post struct {
		ID, Slug, Title, Excerpt, Content, Status,
		CreatedAt, UpdatedAt, DeletedAt, TagIDs string
	}
	Tag struct {
		ID, Name string
	}
}{
	Post: struct {
		ID, Slug, Title, Excerpt, Content, Status,
		CreatedAt, UpdatedAt, DeletedAt, TagIDs string
	}{
		ID:        "postId",
		Slug:      "slug",
		Title:     "title",
		Excerpt:   "excerpt",
		Content:   "content",
		Status:    "status",
		CreatedAt: "createdAt",
		UpdatedAt: "updatedAt",
		DeletedAt: "deletedAt",
		TagIDs:    "tagIds",
	},
	Tag: struct {
		ID, Name string
	}{
		ID:   "tagId",
		Name: "name",
	},
}

var Tables = struct {
	Post struct {
		Name, Alias string
	}
	Tag struct {
		Name, Alias string
	}
}{
	Post: struct {
		Name, Alias string
	}{
		Name:  "posts",
		Alias: "t",
	},
	Tag: struct {
		Name, Alias string
	}{
		Name:  "tags",
		Alias: "t",
	},
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID        int        `pg:"postId,pk"`
	Slug      string     `pg:"slug,use_zero"`
	Title     string     `pg:"title,use_zero"`
	Excerpt   string     `pg:"excerpt,use_zero"`
	Content   string     `pg:"content,use_zero"`
	Status    string     `pg:"status,use_zero"`
	CreatedAt time.Time  `pg:"createdAt,use_zero"`
	UpdatedAt time.Time  `pg:"updatedAt,use_zero"`
	DeletedAt *time.Time `pg:"deletedAt"`
	TagIDs    []int      `pg:"tagIds,array,use_zero"`

	Tags []Tag `pg:"-"`
}

type Tag struct {
	tableName struct{} `pg:"tags,alias:t,discard_unknown_columns"`

	ID   int    `pg:"tagId,pk"`
	Name string `pg:"name,use_zero"`
}
