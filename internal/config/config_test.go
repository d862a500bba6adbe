package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "newcourse_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "newcourse_test", cfg.MongoDB.Database)
	require.Equal(t, "courses", cfg.MongoDB.Collection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "6379", cfg.Redis.Port)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, "local", cfg.Upload.Backend)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowOrigins)
	require.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfigWithoutMongoUsesDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Empty(t, cfg.MongoDB.URI)
}

func TestLoadConfigRejectsBadUploadBackend(t *testing.T) {
	t.Setenv("UPLOAD_BACKEND", "ftp")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("UPLOAD_BACKEND", "minio")
	t.Setenv("MINIO_ENDPOINT", "")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "minio", cfg.Upload.Backend)
	require.Equal(t, "newcourse", cfg.MinIO.Bucket)
}
