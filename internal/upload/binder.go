// Package upload stores uploaded files and binds their references onto a
// course or one of its lessons.
package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/newcourse/newcourse/backend/course-service/internal/course"
	"github.com/newcourse/newcourse/backend/course-service/internal/lessons"
	"github.com/newcourse/newcourse/backend/course-service/internal/storage"
)

// Target names the field an upload is bound to.
type Target int

const (
	CourseImage Target = iota
	LessonVideo
	LessonResource
)

// Root is the storage root dedicated to the target kind.
func (t Target) Root() string {
	switch t {
	case LessonVideo:
		return "uploads/videos"
	case LessonResource:
		return "uploads/resources"
	default:
		return "uploads"
	}
}

func (t Target) String() string {
	switch t {
	case LessonVideo:
		return "video"
	case LessonResource:
		return "resource"
	default:
		return "image"
	}
}

// Binder writes payloads to an ObjectStore under generated unique names.
type Binder struct {
	store storage.ObjectStore
	newID func() string
}

func NewBinder(store storage.ObjectStore) *Binder {
	return &Binder{store: store, newID: uuid.NewString}
}

// Bind stores payload and sets the resulting "/<root>/<name>" reference on
// the target field of c. For lesson targets the lesson is resolved first and
// nothing is written when it is missing. The course is not saved here; a
// file written before a failed save is left in place.
func (b *Binder) Bind(ctx context.Context, c *course.Course, target Target, lessonID string, payload io.Reader, size int64, filename, contentType string) (string, *course.LessonContent, error) {
	var lesson *course.LessonContent
	if target != CourseImage {
		l, err := lessons.Find(c, lessonID)
		if err != nil {
			return "", nil, err
		}
		lesson = l
	}

	key, err := b.store.WriteUnique(ctx, target.Root(), b.UniqueName(filename), payload, size, contentType)
	if err != nil {
		return "", nil, fmt.Errorf("%w: store %s: %w", course.ErrStorage, target, err)
	}
	ref := "/" + key

	switch target {
	case CourseImage:
		c.ImagePath = &ref
	case LessonVideo:
		lesson.VideoURL = ref
	case LessonResource:
		lesson.ResourceURL = ref
	}
	return ref, lesson, nil
}

// UniqueName prefixes a fresh identifier to the sanitized filename.
func (b *Binder) UniqueName(original string) string {
	return b.newID() + "_" + SanitizeFilename(original)
}

// SanitizeFilename keeps only the last path element of name, with control
// characters removed. Names that reduce to nothing become "file".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(path.Clean("/" + name))
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "/" || name == "." || name == ".." {
		return "file"
	}
	return name
}
