package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share
func exerciseStore(t *testing.T, s KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "wizard:missing")
	require.NoError(t, err)
	assert.False(t, ok, "Missing key should not be found")

	require.NoError(t, s.Set(ctx, "wizard:VG-1", `{"slider_percent":40}`))
	val, ok, err := s.Get(ctx, "wizard:VG-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"slider_percent":40}`, val)

	require.NoError(t, s.Set(ctx, "wizard:VG-1", "overwritten"))
	val, _, err = s.Get(ctx, "wizard:VG-1")
	require.NoError(t, err)
	assert.Equal(t, "overwritten", val)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "wizard.yaml")
	exerciseStore(t, NewFileStore(path))

	_, err := os.Stat(path)
	assert.NoError(t, err, "State file should be created")
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wizard.yaml")

	require.NoError(t, NewFileStore(path).Set(ctx, "a", "1"))
	require.NoError(t, NewFileStore(path).Set(ctx, "b", "2"))

	reopened := NewFileStore(path)
	a, ok, err := reopened.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", a)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))

	_, _, err := NewFileStore(path).Get(context.Background(), "a")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse state file")
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("VIAGER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VIAGER_TEST_REDIS_ADDR not set")
	}
	s := NewRedisStore(addr)
	defer s.Close()
	require.NoError(t, s.Ping(context.Background()))

	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	s, err := Open(Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(Options{Backend: "FILE", Path: filepath.Join(t.TempDir(), "s.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(Options{Backend: "redis", RedisAddr: "localhost:6379"})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)

	_, err = Open(Options{Backend: "file"})
	assert.Error(t, err)

	_, err = Open(Options{Backend: "redis"})
	assert.Error(t, err)

	_, err = Open(Options{Backend: "etcd"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}
