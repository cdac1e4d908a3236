// Package store provides optional write-through persistence of collected
// comments into a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"comment-collector-go/internal/config"
	"comment-collector-go/internal/graph"
)

func Enabled(cfg config.Config) bool {
	return strings.EqualFold(strings.TrimSpace(cfg.StoreBackend), "sqlite")
}

type Store struct {
	db *sql.DB
}

func Open(cfg config.Config) (*Store, error) {
	path := strings.TrimSpace(cfg.SQLitePath)
	if path == "" {
		path = "data/comments.db"
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	stmts := []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS comments (
			post_id TEXT NOT NULL,
			comment_id TEXT NOT NULL,
			data_json TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (post_id, comment_id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveComments upserts the full collected sequence for one post in a
// single transaction. Re-running a collection replaces existing rows.
func (s *Store) SaveComments(ctx context.Context, postID string, comments []graph.Comment) (int, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" || len(comments) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO comments (post_id, comment_id, data_json, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	n := 0
	for _, c := range comments {
		if strings.TrimSpace(c.CommentID) == "" {
			continue
		}
		b, err := json.Marshal(c)
		if err != nil {
			return n, err
		}
		if _, err := stmt.ExecContext(ctx, postID, c.CommentID, string(b), now); err != nil {
			return n, err
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) CountComments(ctx context.Context, postID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&count)
	return count, err
}
