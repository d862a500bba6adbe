// Package lessons mutates the ordered contentList embedded in a course.
//
// Functions here only touch the in-memory course; persisting the result is
// the caller's job and always happens as one full-document save. List
// position is authoritative for ordering, the Order field is display-only
// and never validated.
package lessons

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/newcourse/newcourse/backend/course-service/internal/course"
)

// Append assigns a fresh identifier to item, discarding any the caller set,
// and adds it at the end of the list.
func Append(c *course.Course, item course.LessonContent) course.LessonContent {
	item.ID = uuid.NewString()
	if c.ContentList == nil {
		c.ContentList = []course.LessonContent{}
	}
	c.ContentList = append(c.ContentList, item)
	return item
}

// AppendBatch appends items in their given order, each with a fresh identifier.
func AppendBatch(c *course.Course, items []course.LessonContent) []course.LessonContent {
	out := make([]course.LessonContent, 0, len(items))
	for _, it := range items {
		out = append(out, Append(c, it))
	}
	return out
}

// Replace overwrites the first lesson with the given id in place. The
// stored item always keeps id, whatever item.ID says.
func Replace(c *course.Course, id string, item course.LessonContent) (course.LessonContent, error) {
	i := indexOf(c, id)
	if i < 0 {
		return course.LessonContent{}, notFound(id)
	}
	item.ID = id
	c.ContentList[i] = item
	return item, nil
}

// Remove deletes the first lesson with the given id, keeping sibling order.
func Remove(c *course.Course, id string) error {
	i := indexOf(c, id)
	if i < 0 {
		return notFound(id)
	}
	c.ContentList = append(c.ContentList[:i], c.ContentList[i+1:]...)
	return nil
}

// Find returns a pointer into the list so callers can set fields in place.
func Find(c *course.Course, id string) (*course.LessonContent, error) {
	i := indexOf(c, id)
	if i < 0 {
		return nil, notFound(id)
	}
	return &c.ContentList[i], nil
}

// linear scan, first match wins
func indexOf(c *course.Course, id string) int {
	if c == nil {
		return -1
	}
	for i := range c.ContentList {
		if c.ContentList[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) error {
	return fmt.Errorf("lesson %q: %w", id, course.ErrNotFound)
}
