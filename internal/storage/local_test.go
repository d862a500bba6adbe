package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreWriteAndOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	key, err := s.WriteUnique(ctx, "uploads/videos", "a.mp4", bytes.NewReader([]byte("video")), 5, "video/mp4")
	require.NoError(t, err)
	require.Equal(t, "uploads/videos/a.mp4", key)

	b, err := os.ReadFile(filepath.Join(dir, "uploads", "videos", "a.mp4"))
	require.NoError(t, err)
	require.Equal(t, "video", string(b))

	rc, err := s.Open(ctx, "/uploads/videos/a.mp4")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "video", string(got))
}

func TestLocalStoreNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.WriteUnique(ctx, "uploads", "x.png", bytes.NewReader([]byte("first")), 5, "")
	require.NoError(t, err)
	_, err = s.WriteUnique(ctx, "uploads", "x.png", bytes.NewReader([]byte("second")), 6, "")
	require.ErrorIs(t, err, ErrExists)

	b, err := os.ReadFile(filepath.Join(dir, "uploads", "x.png"))
	require.NoError(t, err)
	require.Equal(t, "first", string(b))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.WriteUnique(ctx, "uploads", "../evil.sh", bytes.NewReader(nil), 0, "")
	require.ErrorIs(t, err, ErrInvalidKey)
	_, err = s.WriteUnique(ctx, "../outside", "ok.txt", bytes.NewReader(nil), 0, "")
	require.ErrorIs(t, err, ErrInvalidKey)
	_, err = s.Open(ctx, "uploads/../../etc/passwd")
	require.ErrorIs(t, err, ErrInvalidKey)
	_, err = s.Open(ctx, "uploads/missing.txt")
	require.ErrorIs(t, err, ErrObjectNotFound)
}
