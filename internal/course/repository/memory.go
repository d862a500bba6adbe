package repository

import (
	"context"
	"sync"
	"time"

	"github.com/newcourse/newcourse/backend/course-service/internal/course"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps courses in process memory. It is used by tests and as the
// fallback when no MongoDB is configured. Stored values are copies, so a
// caller's mutation is only visible after Save.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*course.Course
	order []string
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*course.Course), now: time.Now}
}

func (m *MemoryRepo) FindByID(_ context.Context, id string) (*course.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.store[id]; ok {
		return c.Clone(), nil
	}
	return nil, course.ErrNotFound
}

func (m *MemoryRepo) FindAll(_ context.Context) ([]*course.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*course.Course, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.store[id].Clone())
	}
	return out, nil
}

func (m *MemoryRepo) Save(_ context.Context, c *course.Course) (*course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	existing, ok := m.store[c.ID]
	if ok {
		if existing.Version != c.Version {
			return nil, course.ErrConflict
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = existing.CreatedAt
		}
	} else {
		m.order = append(m.order, c.ID)
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
	}
	c.Version++
	c.UpdatedAt = now
	m.store[c.ID] = c.Clone()
	return c, nil
}

func (m *MemoryRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[id]
	return ok, nil
}

func (m *MemoryRepo) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return course.ErrNotFound
	}
	delete(m.store, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
