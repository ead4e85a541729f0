package db

import (
	"github.com/go-pg/pg/v10/orm"
)

// SelectBy narrows a post query to one unique key. It is a closed two-variant
// union: a filter carries either a ByID or a BySlug, never both.
type SelectBy interface {
	applyKey(q *orm.Query) *orm.Query
}

type ByID int

func (id ByID) applyKey(q *orm.Query) *orm.Query {
	return q.Where(`"t"."postId" = ?`, int(id))
}

type BySlug string

func (s BySlug) applyKey(q *orm.Query) *orm.Query {
	return q.Where(`"t"."slug" = ?`, string(s))
}

type DeletedMode string

const (
	DeletedAny     DeletedMode = ""
	DeletedExclude DeletedMode = "exclude"
	DeletedOnly    DeletedMode = "only"
)

// PostFilter describes which posts a query matches. Every present field ANDs
// one clause into the query; absent fields add no constraint. There is no
// implicit "published only" view: callers building a public listing pass
// Status and Deleted explicitly.
type PostFilter struct {
	SelectBy SelectBy
	Deleted  DeletedMode
	Status   string
	Tag      string
}

func (f PostFilter) apply(q *orm.Query) *orm.Query {
	if f.SelectBy != nil {
		q = f.SelectBy.applyKey(q)
	}

	switch f.Deleted {
	case DeletedExclude:
		q = q.Where(`"t"."deletedAt" IS NULL`)
	case DeletedOnly:
		q = q.Where(`"t"."deletedAt" IS NOT NULL`)
	}

	if f.Status != "" {
		q = q.Where(`"t"."status" = ?`, f.Status)
	}

	// Tag names are canonicalized at write time, so the match is exact.
	if f.Tag != "" {
		q = q.Where(
			`EXISTS (SELECT 1 FROM "tags" AS "tg" WHERE "tg"."tagId" = ANY ("t"."tagIds") AND "tg"."name" = ?)`,
			f.Tag,
		)
	}

	return q
}

// TagFilter narrows the tag listing. By default only tags attached to at
// least one live published post are returned.
type TagFilter struct {
	NameContains       string
	IncludeFromDrafts  bool
	IncludeFromDeleted bool
}

func (f TagFilter) apply(q *orm.Query) *orm.Query {
	if f.NameContains != "" {
		q = q.Where(`"t"."name" ILIKE ?`, "%"+f.NameContains+"%")
	}

	const used = `EXISTS (SELECT 1 FROM "posts" AS "p" WHERE "t"."tagId" = ANY ("p"."tagIds")`

	switch {
	case !f.IncludeFromDrafts && !f.IncludeFromDeleted:
		q = q.Where(used+` AND "p"."status" = ? AND "p"."deletedAt" IS NULL)`, StatusPublished)
	case !f.IncludeFromDrafts:
		q = q.Where(used+` AND "p"."status" = ?)`, StatusPublished)
	case !f.IncludeFromDeleted:
		q = q.Where(used + ` AND "p"."deletedAt" IS NULL)`)
	default:
		q = q.Where(used + `)`)
	}

	return q
}
