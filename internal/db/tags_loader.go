package db

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
)

// attachTagsBatch loads the tags of a whole page of posts in one query and
// fans them back out onto each post.
func (r *Repository) attachTagsBatch(ctx context.Context, posts []Post) ([]Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}

	tagSet := make(map[int]struct{})
	for i := range posts {
		for _, id := range posts[i].TagIDs {
			tagSet[id] = struct{}{}
		}
	}

	if len(tagSet) == 0 {
		for i := range posts {
			posts[i].Tags = []Tag{}
		}
		return posts, nil
	}

	allTagIDs := make([]int, 0, len(tagSet))
	for id := range tagSet {
		allTagIDs = append(allTagIDs, id)
	}

	tags, err := r.loadTags(ctx, allTagIDs)
	if err != nil {
		return nil, fmt.Errorf("get tags by ids: %w", err)
	}

	tagsByID := make(map[int]Tag, len(tags))
	for i := range tags {
		tagsByID[tags[i].ID] = tags[i]
	}

	for i := range posts {
		ids := posts[i].TagIDs
		if len(ids) == 0 {
			posts[i].Tags = []Tag{}
			continue
		}

		out := make([]Tag, 0, len(ids))
		for _, id := range ids {
			if t, ok := tagsByID[id]; ok {
				out = append(out, t)
			}
		}
		posts[i].Tags = out
	}

	return posts, nil
}

func (r *Repository) loadTags(ctx context.Context, tagIDs []int) ([]Tag, error) {
	if len(tagIDs) == 0 {
		return []Tag{}, nil
	}

	var tags []Tag
	err := r.db.ModelContext(ctx, &tags).
		Where(`"tagId" IN (?)`, pg.In(tagIDs)).
		OrderExpr(`"name" ASC`).
		Select()
	if err != nil {
		r.log.Error("failed to query tags by ids", "error", err, "tagIds", tagIDs)
		return nil, fmt.Errorf("select tags by ids: %w", err)
	}

	return tags, nil
}
