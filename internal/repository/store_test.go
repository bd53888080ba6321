package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/persistence"
)

func sampleUsers() domain.Collection {
	return domain.Collection{
		{"id": 1, "first_name": "Anet", "last_name": "Doe", "domain": "Sales", "available": true},
		{"id": 2, "first_name": "Honey", "last_name": "Fibbens", "domain": "IT", "available": false, "nickname": "hf"},
	}
}

// exerciseStore runs the load/save contract every driver must honor.
func exerciseStore(t *testing.T, store UserStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleUsers()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].HasID(1))
	assert.Equal(t, "Honey", got[1]["first_name"])
	assert.Equal(t, "hf", got[1]["nickname"], "unknown fields survive a round trip")

	got[0]["first_name"] = "mutated"
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anet", again[0]["first_name"], "loaded collections are detached from the store")

	require.NoError(t, store.Save(ctx, domain.Collection{}))
	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(nil))
}

func TestMemoryStoreHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore(sampleUsers())
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, nil), context.Canceled)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	exerciseStore(t, NewFileStore(path))
}

func TestFileStoreWritesTwoSpaceIndentedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), domain.Collection{{"id": 1}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are renamed away")
}

func TestFileStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := NewFileStore(filepath.Join(dir, "missing.json")).Load(ctx)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Error(t, NewFileStore(filepath.Join(dir, "missing.json")).Ping(ctx))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`[{"id":1},`), 0o644))
	_, err = NewFileStore(broken).Load(ctx)
	assert.Error(t, err)
}

func TestFileStoreSaveFailsWithoutDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "users.json")
	store := NewFileStore(path)

	err := store.Save(context.Background(), sampleUsers())
	assert.Error(t, err, "parent directory does not exist")

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	db, err := persistence.NewSQLite(ctx, config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "users.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	store := NewSQLiteStore(db.DB, "users")
	initial, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, initial, "a missing document reads as an empty collection")

	exerciseStore(t, store)
	assert.NoError(t, store.Ping(ctx))
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pg.Close)
	require.NoError(t, persistence.RunMigrations(ctx, pg.PoolHandle(), zap.NewNop()))

	exerciseStore(t, NewPostgresStore(pg.PoolHandle(), "test-"+uuid.NewString()))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rd := persistence.NewRedis(ctx, config.RedisConfig{Addr: addr}, zap.NewNop())
	t.Cleanup(rd.Close)

	key := "test:users:" + uuid.NewString()
	t.Cleanup(func() { rd.Client.Del(context.Background(), key) })

	exerciseStore(t, NewRedisStore(rd.Client, key))
}
