package repository

import (
	"context"

	"github.com/newcourse/newcourse/backend/course-service/internal/course"
)

// Repository is the course store gateway. One call persists or loads a whole
// course document, contentList included.
type Repository interface {
	FindByID(ctx context.Context, id string) (*course.Course, error)
	FindAll(ctx context.Context) ([]*course.Course, error)
	// Save inserts the course when ID is empty (assigning one) and otherwise
	// replaces the stored document, provided its version still matches
	// c.Version. On success c carries the new ID, Version and timestamps.
	Save(ctx context.Context, c *course.Course) (*course.Course, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

var (
	_ Repository = (*MemoryRepo)(nil)
	_ Repository = (*MongoRepo)(nil)
)
