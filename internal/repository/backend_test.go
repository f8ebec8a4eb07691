package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordduel/internal/config"
)

func TestOpenBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name  string
		cfg   *config.Config
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "sql",
			cfg: &config.Config{
				StoreDriver:    "sql",
				DatabaseType:   "sqlite",
				DatabasePath:   filepath.Join(t.TempDir(), "backend.db"),
				MigrationsPath: "../../migrations",
			},
			check: func(t *testing.T, b *Backend) {
				assert.NotNil(t, b.DB)
				assert.IsType(t, &SQLSessionRepository{}, b.Store)
			},
		},
		{
			name: "redis",
			cfg:  &config.Config{StoreDriver: "redis", RedisURL: "redis://" + mr.Addr() + "/0"},
			check: func(t *testing.T, b *Backend) {
				assert.IsType(t, &RedisSessionRepository{}, b.Store)
			},
		},
		{
			name: "memory",
			cfg:  &config.Config{StoreDriver: "Memory"},
			check: func(t *testing.T, b *Backend) {
				assert.IsType(t, &MemorySessionRepository{}, b.Store)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := OpenBackend(context.Background(), tt.cfg)
			require.NoError(t, err)
			defer b.Close()
			tt.check(t, b)

			s := testSession("s1", testTime)
			require.NoError(t, b.Store.Save(context.Background(), s))
		})
	}
}

func TestOpenBackendErrors(t *testing.T) {
	for _, cfg := range []*config.Config{
		{StoreDriver: "etcd"},
		{StoreDriver: "redis", RedisURL: "not a url"},
		{StoreDriver: "sql", DatabaseType: "oracle"},
	} {
		_, err := OpenBackend(context.Background(), cfg)
		assert.Error(t, err, "driver %s", cfg.StoreDriver)
	}
}
