package db

import (
	"fmt"

	"github.com/go-pg/pg/v10/orm"
)

const DefaultLimit = 10

type OrderBy string

const (
	OrderByCreatedAt OrderBy = "createdAt"
	OrderByUpdatedAt OrderBy = "updatedAt"
	OrderByTitle     OrderBy = "title"
	OrderByID        OrderBy = "id"
)

type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// SearchOptions select one page of an ordered result set. Cursor is the id of
// the last row of the previous page; zero means "from the start". The zero
// value of every other field falls back to its default.
type SearchOptions struct {
	Cursor         int
	Limit          int
	OrderBy        OrderBy
	OrderDirection OrderDirection
}

func (o SearchOptions) normalize() SearchOptions {
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.OrderBy == "" {
		o.OrderBy = OrderByCreatedAt
	}
	if o.OrderDirection == "" {
		o.OrderDirection = OrderDesc
	}
	return o
}

// orderColumn returns the fully qualified, quoted sort column.
func (o SearchOptions) orderColumn() string {
	switch o.OrderBy {
	case OrderByUpdatedAt:
		return `"t"."updatedAt"`
	case OrderByTitle:
		return `"t"."title"`
	case OrderByID:
		return `"t"."postId"`
	default:
		return `"t"."createdAt"`
	}
}

// cursorValue extracts the sort-column value of the cursor row, used as the
// left bound of the keyset seek.
func (o SearchOptions) cursorValue(p *Post) interface{} {
	switch o.OrderBy {
	case OrderByUpdatedAt:
		return p.UpdatedAt
	case OrderByTitle:
		return p.Title
	default:
		return p.CreatedAt
	}
}

// applyOrder orders the query by (sort column, "postId" ASC). The secondary
// key is mandatory: sort columns are not unique, and without the tie-break
// pages could skip or repeat rows.
func (o SearchOptions) applyOrder(q *orm.Query) *orm.Query {
	dir := "ASC"
	if o.OrderDirection == OrderDesc {
		dir = "DESC"
	}

	q = q.OrderExpr(o.orderColumn() + " " + dir)
	if o.OrderBy != OrderByID {
		q = q.OrderExpr(`"t"."postId" ASC`)
	}
	return q
}

// applySeek constrains the query to rows strictly after the cursor row in the
// (sort column, "postId" ASC) order. This is a compound keyset comparison,
// not an offset skip, so it stays correct when rows are inserted or deleted
// between page fetches.
func (o SearchOptions) applySeek(q *orm.Query, cursorRow *Post) *orm.Query {
	op := ">"
	if o.OrderDirection == OrderDesc {
		op = "<"
	}

	if o.OrderBy == OrderByID {
		return q.Where(fmt.Sprintf(`"t"."postId" %s ?`, op), cursorRow.ID)
	}

	col := o.orderColumn()
	value := o.cursorValue(cursorRow)
	cond := fmt.Sprintf(`((%s %s ?) OR (%s = ? AND "t"."postId" > ?))`, col, op, col)
	return q.Where(cond, value, value, cursorRow.ID)
}

// Page is one bounded slice of a query's result set. NextCursor is only
// meaningful when HasMore is true.
type Page struct {
	Posts      []Post
	NextCursor int
	HasMore    bool
}

// trimPage derives the page from an overfetch of limit+1 rows.
func trimPage(posts []Post, limit int) Page {
	page := Page{Posts: posts}
	if len(posts) > limit {
		page.Posts = posts[:limit]
		page.HasMore = true
		page.NextCursor = page.Posts[limit-1].ID
	}
	if page.Posts == nil {
		page.Posts = []Post{}
	}
	return page
}
