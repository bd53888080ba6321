package repository

//go:generate mockgen -source=user_store.go -destination=mocks/mock_user_store.go -package=mocks

import (
	"context"

	"github.com/spec-kit/user-directory/internal/domain"
)

// UserStore loads and saves the whole user collection. Every mutation is a
// full read followed by a full write; implementations do not lock.
type UserStore interface {
	Load(ctx context.Context) (domain.Collection, error)
	Save(ctx context.Context, users domain.Collection) error
}

// Pinger is implemented by stores backed by a remote or file resource that
// can be probed for readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
