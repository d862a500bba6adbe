package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/newcourse/newcourse/backend/course-service/internal/course"
	"github.com/newcourse/newcourse/backend/course-service/internal/course/repository"
	"github.com/newcourse/newcourse/backend/course-service/internal/generator"
	"github.com/newcourse/newcourse/backend/course-service/internal/lessons"
	"github.com/newcourse/newcourse/backend/course-service/internal/storage"
	"github.com/newcourse/newcourse/backend/course-service/internal/upload"
	"github.com/newcourse/newcourse/backend/course-service/pkg/logger"
	"github.com/newcourse/newcourse/backend/course-service/pkg/metrics"
)

// Service defines the course operations used by the handler layer. Every
// call re-reads the course from the repository and, when it mutates, writes
// the whole document back once.
type Service interface {
	ListCourses(ctx context.Context) ([]*course.Course, error)
	GetCourse(ctx context.Context, id string) (*course.Course, error)
	CreateCourse(ctx context.Context, c *course.Course, image *File) (*course.Course, error)
	UpdateCourse(ctx context.Context, id string, upd *course.Course) (*course.Course, error)
	DeleteCourse(ctx context.Context, id string) error

	ListContent(ctx context.Context, courseID string) ([]course.LessonContent, error)
	AddContent(ctx context.Context, courseID string, item course.LessonContent) (course.LessonContent, error)
	UpdateContent(ctx context.Context, courseID, contentID string, item course.LessonContent) (course.LessonContent, error)
	DeleteContent(ctx context.Context, courseID, contentID string) error
	GenerateContent(ctx context.Context, courseID string) ([]course.LessonContent, error)

	UploadCourseImage(ctx context.Context, courseID string, f *File) (*course.Course, error)
	UploadLessonVideo(ctx context.Context, courseID, contentID string, f *File) (course.LessonContent, error)
	UploadLessonResource(ctx context.Context, courseID, contentID string, f *File) (course.LessonContent, error)
}

// File is an uploaded payload as received from the transport layer.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// New returns a Service over the given repository and upload store.
func New(repo repository.Repository, store storage.ObjectStore) Service {
	return &courseService{repo: repo, binder: upload.NewBinder(store)}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(store storage.ObjectStore) Service {
	return New(repository.NewMemoryRepo(), store)
}

type courseService struct {
	repo   repository.Repository
	binder *upload.Binder
}

func (s *courseService) ListCourses(ctx context.Context) ([]*course.Course, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (s *courseService) GetCourse(ctx context.Context, id string) (*course.Course, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return c, nil
}

// CreateCourse stores a new course. The store assigns the ID; lessons passed
// in get fresh identifiers. When image is non-nil it is written before the
// course is saved.
func (s *courseService) CreateCourse(ctx context.Context, in *course.Course, image *File) (out *course.Course, err error) {
	defer func() { observe("create_course", err) }()
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", course.ErrValidation)
	}
	items := in.ContentList
	c := in.Clone()
	c.ID = ""
	c.Version = 0
	c.ImagePath = nil
	c.ContentList = []course.LessonContent{}
	lessons.AppendBatch(c, items)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.ProgressList == nil {
		c.ProgressList = []course.StudentProgress{}
	}
	if image != nil {
		if _, _, err := s.bind(ctx, c, upload.CourseImage, "", image); err != nil {
			return nil, err
		}
	}
	if _, err := s.repo.Save(ctx, c); err != nil {
		return nil, storageErr(err)
	}
	logger.Infow("course created", "courseId", c.ID, "lessons", len(c.ContentList))
	return c, nil
}

// UpdateCourse rewrites the course metadata. contentList and imagePath keep
// their stored values. A non-zero upd.Version must match the stored one.
func (s *courseService) UpdateCourse(ctx context.Context, id string, upd *course.Course) (out *course.Course, err error) {
	defer func() { observe("update_course", err) }()
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Version != 0 && upd.Version != c.Version {
		return nil, course.ErrConflict
	}
	c.Title = upd.Title
	c.Description = upd.Description
	c.Category = upd.Category
	c.Level = upd.Level
	c.Duration = upd.Duration
	c.Language = upd.Language
	if upd.Tags != nil {
		c.Tags = upd.Tags
	}
	c.ProgressList = upd.ProgressList
	return s.save(ctx, c)
}

func (s *courseService) DeleteCourse(ctx context.Context, id string) (err error) {
	defer func() { observe("delete_course", err) }()
	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return storageErr(err)
	}
	if !ok {
		return fmt.Errorf("course %q: %w", id, course.ErrNotFound)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return storageErr(err)
	}
	logger.Infow("course deleted", "courseId", id)
	return nil
}

func (s *courseService) ListContent(ctx context.Context, courseID string) ([]course.LessonContent, error) {
	c, err := s.load(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c.ContentList == nil {
		return []course.LessonContent{}, nil
	}
	return c.ContentList, nil
}

func (s *courseService) AddContent(ctx context.Context, courseID string, item course.LessonContent) (out course.LessonContent, err error) {
	defer func() { observe("add_content", err) }()
	c, err := s.load(ctx, courseID)
	if err != nil {
		return course.LessonContent{}, err
	}
	added := lessons.Append(c, item)
	if _, err := s.save(ctx, c); err != nil {
		return course.LessonContent{}, err
	}
	return added, nil
}

func (s *courseService) UpdateContent(ctx context.Context, courseID, contentID string, item course.LessonContent) (out course.LessonContent, err error) {
	defer func() { observe("update_content", err) }()
	c, err := s.load(ctx, courseID)
	if err != nil {
		return course.LessonContent{}, err
	}
	updated, err := lessons.Replace(c, contentID, item)
	if err != nil {
		return course.LessonContent{}, err
	}
	if _, err := s.save(ctx, c); err != nil {
		return course.LessonContent{}, err
	}
	return updated, nil
}

func (s *courseService) DeleteContent(ctx context.Context, courseID, contentID string) (err error) {
	defer func() { observe("delete_content", err) }()
	c, err := s.load(ctx, courseID)
	if err != nil {
		return err
	}
	if err := lessons.Remove(c, contentID); err != nil {
		return err
	}
	_, err = s.save(ctx, c)
	return err
}

// GenerateContent appends the generator's four starter lessons to the course.
func (s *courseService) GenerateContent(ctx context.Context, courseID string) (out []course.LessonContent, err error) {
	defer func() { observe("generate_content", err) }()
	c, err := s.load(ctx, courseID)
	if err != nil {
		return nil, err
	}
	items, err := generator.Generate(c.Title, c.Category, c.Level)
	if err != nil {
		return nil, err
	}
	added := lessons.AppendBatch(c, items)
	if _, err := s.save(ctx, c); err != nil {
		return nil, err
	}
	metrics.GeneratedLessons.Add(float64(len(added)))
	return added, nil
}

func (s *courseService) UploadCourseImage(ctx context.Context, courseID string, f *File) (out *course.Course, err error) {
	defer func() { observe("upload_image", err) }()
	c, err := s.load(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.bind(ctx, c, upload.CourseImage, "", f); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

func (s *courseService) UploadLessonVideo(ctx context.Context, courseID, contentID string, f *File) (course.LessonContent, error) {
	return s.uploadLessonFile(ctx, "upload_video", upload.LessonVideo, courseID, contentID, f)
}

func (s *courseService) UploadLessonResource(ctx context.Context, courseID, contentID string, f *File) (course.LessonContent, error) {
	return s.uploadLessonFile(ctx, "upload_resource", upload.LessonResource, courseID, contentID, f)
}

func (s *courseService) uploadLessonFile(ctx context.Context, op string, target upload.Target, courseID, contentID string, f *File) (out course.LessonContent, err error) {
	defer func() { observe(op, err) }()
	c, err := s.load(ctx, courseID)
	if err != nil {
		return course.LessonContent{}, err
	}
	_, lesson, err := s.bind(ctx, c, target, contentID, f)
	if err != nil {
		return course.LessonContent{}, err
	}
	updated := *lesson
	if _, err := s.save(ctx, c); err != nil {
		return course.LessonContent{}, err
	}
	return updated, nil
}

func (s *courseService) bind(ctx context.Context, c *course.Course, target upload.Target, lessonID string, f *File) (string, *course.LessonContent, error) {
	if f == nil || f.Body == nil {
		return "", nil, fmt.Errorf("%w: missing %s file", course.ErrValidation, target)
	}
	ref, lesson, err := s.binder.Bind(ctx, c, target, lessonID, f.Body, f.Size, f.Filename, f.ContentType)
	if err != nil {
		return "", nil, err
	}
	if f.Size > 0 {
		metrics.UploadBytes.WithLabelValues(target.String()).Add(float64(f.Size))
	}
	logger.Infow("upload stored", "courseId", c.ID, "target", target.String(), "ref", ref)
	return ref, lesson, nil
}

func (s *courseService) load(ctx context.Context, id string) (*course.Course, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, fmt.Errorf("course %q: %w", id, course.ErrNotFound)
		}
		return nil, storageErr(err)
	}
	return c, nil
}

func (s *courseService) save(ctx context.Context, c *course.Course) (*course.Course, error) {
	saved, err := s.repo.Save(ctx, c)
	if err != nil {
		return nil, storageErr(err)
	}
	return saved, nil
}

// storageErr passes domain errors through and marks everything else as a
// storage failure.
func storageErr(err error) error {
	if err == nil || errors.Is(err, course.ErrNotFound) || errors.Is(err, course.ErrConflict) || errors.Is(err, course.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", course.ErrStorage, err)
}

func observe(op string, err error) {
	result := Result(err)
	metrics.CourseOperations.WithLabelValues(op, result).Inc()
	switch result {
	case "ok":
	case "error":
		logger.Errorf("%s failed: %v", op, err)
	case "conflict":
		logger.Warnw("course modified concurrently", "op", op, "error", err)
	default:
		logger.Debugf("%s rejected (%s): %v", op, result, err)
	}
}

// Result classifies err for metrics and logs.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, course.ErrNotFound):
		return "not_found"
	case errors.Is(err, course.ErrValidation):
		return "invalid"
	case errors.Is(err, course.ErrConflict):
		return "conflict"
	}
	return "error"
}
