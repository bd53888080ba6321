package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/user-directory/internal/domain"
)

// SQLiteStore keeps the collection as one TEXT document in user_documents.
type SQLiteStore struct {
	db   *sql.DB
	name string
}

// NewSQLiteStore returns a store for the document called name. The schema
// must already be migrated.
func NewSQLiteStore(db *sql.DB, name string) *SQLiteStore {
	return &SQLiteStore{db: db, name: name}
}

func (s *SQLiteStore) Load(ctx context.Context) (domain.Collection, error) {
	if s.db == nil {
		return nil, errors.New("sqlite database not configured")
	}
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM user_documents WHERE name = ?`, s.name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Collection{}, nil
		}
		return nil, fmt.Errorf("select user document: %w", err)
	}
	users, err := domain.DecodeCollection([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("parse user document: %w", err)
	}
	return users, nil
}

func (s *SQLiteStore) Save(ctx context.Context, users domain.Collection) error {
	if s.db == nil {
		return errors.New("sqlite database not configured")
	}
	data, err := domain.EncodeCollection(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		s.name, string(data), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert user document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return errors.New("sqlite database not configured")
	}
	return s.db.PingContext(ctx)
}
