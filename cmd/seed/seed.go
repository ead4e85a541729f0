package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

func runMigrations(ctx context.Context, databaseURL, migrationsDir string) error {
	config, err := pgx.ParseConnectionString(databaseURL)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqldb, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

const postCount = 10

// seed inserts sample content through the domain layer, so slugs and tag
// names go through normalization like real writes. Re-running is safe: posts
// whose slug already exists are skipped.
func seed(ctx context.Context, manager *blog.Manager) error {
	for i := 1; i <= postCount; i++ {
		status := blog.StatusDraft
		if i%2 == 0 {
			status = blog.StatusPublished
		}

		in := blog.PostInput{
			Title:   fmt.Sprintf("Example Post %d", i),
			Excerpt: fmt.Sprintf("This is a brief excerpt for Example Post %d.", i),
			Content: fmt.Sprintf("# Example Post %d\n\nThis is the content of Example Post %d. It contains some **Markdown** formatting!", i, i),
			Status:  status,
			Tags:    []string{"go", "tutorial"},
		}

		id, err := manager.Insert(ctx, in)
		if errors.Is(err, blog.ErrConflict) {
			lg.Info("post already seeded, skipping", "title", in.Title)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed post %q: %w", in.Title, err)
		}

		lg.Info("post seeded", "postId", id, "title", in.Title)
	}

	return nil
}
