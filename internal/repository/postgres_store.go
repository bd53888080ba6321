package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-directory/internal/domain"
)

// PostgresStore keeps the collection as one JSONB document in user_documents.
type PostgresStore struct {
	pool *pgxpool.Pool
	name string
}

// NewPostgresStore returns a store for the document called name.
func NewPostgresStore(pool *pgxpool.Pool, name string) *PostgresStore {
	return &PostgresStore{pool: pool, name: name}
}

func (s *PostgresStore) Load(ctx context.Context) (domain.Collection, error) {
	if s.pool == nil {
		return nil, errors.New("postgres pool not configured")
	}
	const query = `SELECT body::text FROM user_documents WHERE name=$1`

	var body string
	if err := s.pool.QueryRow(ctx, query, s.name).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

func (s *PostgresStore) Save(ctx context.Context, users domain.Collection) error {
	if s.pool == nil {
		return errors.New("postgres pool not configured")
	}
	data, err := domain.EncodeCollection(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	const query = `
        INSERT INTO user_documents (name, body, updated_at)
        VALUES ($1, $2::jsonb, NOW())
        ON CONFLICT (name) DO UPDATE SET body=EXCLUDED.body, updated_at=NOW()`

	if _, err := s.pool.Exec(ctx, query, s.name, string(data)); err != nil {
		return fmt.Errorf("upsert user document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if s.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return s.pool.Ping(ctx)
}
