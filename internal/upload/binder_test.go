package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/newcourse/newcourse/backend/course-service/internal/course"
	"github.com/newcourse/newcourse/backend/course-service/internal/storage"
	"github.com/stretchr/testify/require"
)

func newBinder(t *testing.T) (*Binder, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	return NewBinder(s), dir
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.png":             "photo.png",
		"../../etc/passwd":      "passwd",
		"..\\..\\win\\boot.ini": "boot.ini",
		"dir/sub/file.pdf":      "file.pdf",
		"":                      "file",
		"..":                    "file",
		"/":                     "file",
		"a..b.png":              "a..b.png",
		"bad\x00name.txt":       "badname.txt",
	}
	for in, want := range cases {
		require.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestBindCourseImage(t *testing.T) {
	b, dir := newBinder(t)
	c := &course.Course{ID: "c1"}
	ref, lesson, err := b.Bind(context.Background(), c, CourseImage, "", bytes.NewReader([]byte("png")), 3, "cover.png", "image/png")
	require.NoError(t, err)
	require.Nil(t, lesson)
	require.True(t, strings.HasPrefix(ref, "/uploads/"), ref)
	require.True(t, strings.HasSuffix(ref, "_cover.png"), ref)
	require.NotNil(t, c.ImagePath)
	require.Equal(t, ref, *c.ImagePath)

	b2, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(ref, "/"))))
	require.NoError(t, err)
	require.Equal(t, "png", string(b2))
}

func TestBindSameFilenameTwiceGivesDistinctFiles(t *testing.T) {
	b, dir := newBinder(t)
	c := &course.Course{ID: "c1", ContentList: []course.LessonContent{{ID: "l1"}}}
	ctx := context.Background()

	ref1, _, err := b.Bind(ctx, c, LessonResource, "l1", bytes.NewReader([]byte("one")), 3, "notes.pdf", "")
	require.NoError(t, err)
	ref2, _, err := b.Bind(ctx, c, LessonResource, "l1", bytes.NewReader([]byte("two")), 3, "notes.pdf", "")
	require.NoError(t, err)
	require.NotEqual(t, ref1, ref2)

	for ref, want := range map[string]string{ref1: "one", ref2: "two"} {
		require.True(t, strings.HasPrefix(ref, "/uploads/resources/"), ref)
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(ref, "/"))))
		require.NoError(t, err)
		require.Equal(t, want, string(got))
	}
	require.Equal(t, ref2, c.ContentList[0].ResourceURL)
}

func TestBindLessonVideoSetsField(t *testing.T) {
	b, _ := newBinder(t)
	c := &course.Course{ID: "c1", ContentList: []course.LessonContent{{ID: "l1"}, {ID: "l2"}}}
	ref, lesson, err := b.Bind(context.Background(), c, LessonVideo, "l2", bytes.NewReader([]byte("mp4")), 3, "../clip.mp4", "video/mp4")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "/uploads/videos/"), ref)
	require.True(t, strings.HasSuffix(ref, "_clip.mp4"), ref)
	require.Equal(t, "l2", lesson.ID)
	require.Equal(t, ref, c.ContentList[1].VideoURL)
	require.Empty(t, c.ContentList[0].VideoURL)
}

func TestBindMissingLessonWritesNothing(t *testing.T) {
	b, dir := newBinder(t)
	c := &course.Course{ID: "c1", ContentList: []course.LessonContent{{ID: "l1"}}}
	_, _, err := b.Bind(context.Background(), c, LessonVideo, "nope", bytes.NewReader([]byte("x")), 1, "x.mp4", "")
	require.ErrorIs(t, err, course.ErrNotFound)

	_, statErr := os.Stat(filepath.Join(dir, "uploads"))
	require.True(t, os.IsNotExist(statErr))
}

func TestBindStorageFailure(t *testing.T) {
	b, _ := newBinder(t)
	b.newID = func() string { return "fixed" }
	c := &course.Course{ID: "c1"}
	ctx := context.Background()
	_, _, err := b.Bind(ctx, c, CourseImage, "", bytes.NewReader([]byte("a")), 1, "a.png", "")
	require.NoError(t, err)
	first := *c.ImagePath

	_, _, err = b.Bind(ctx, c, CourseImage, "", bytes.NewReader([]byte("b")), 1, "a.png", "")
	require.ErrorIs(t, err, course.ErrStorage)
	require.ErrorIs(t, err, storage.ErrExists)
	require.Equal(t, first, *c.ImagePath)
}
