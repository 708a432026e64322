// Package roster keeps the client's copy of the student list.
//
// The cache is only ever replaced as a whole by a successful fetch;
// there is no path that patches single records.
package roster

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/alunos/internal/types"
)

// Lister fetches the full collection. *gateway.Client satisfies it.
type Lister interface {
	List(ctx context.Context) ([]types.Student, error)
}

// Cache is the ordered list of students from the last successful fetch.
// It is not safe for concurrent use; the UI loop is its only owner.
type Cache struct {
	students []types.Student
}

// Students returns a copy of the cached list.
func (c *Cache) Students() []types.Student {
	out := make([]types.Student, len(c.students))
	copy(out, c.students)
	return out
}

// Len reports the number of cached students.
func (c *Cache) Len() int {
	return len(c.students)
}

// At returns the i-th student in server order.
func (c *Cache) At(i int) (types.Student, bool) {
	if i < 0 || i >= len(c.students) {
		return types.Student{}, false
	}
	return c.students[i], true
}

// Find returns the student with the given id.
func (c *Cache) Find(id int64) (types.Student, bool) {
	for _, s := range c.students {
		if s.ID == id {
			return s, true
		}
	}
	return types.Student{}, false
}

// Replace swaps the whole list for list.
func (c *Cache) Replace(list []types.Student) {
	c.students = make([]types.Student, len(list))
	copy(c.students, list)
}

// Load fetches the collection and replaces the cache with it. On error
// the previous list is kept untouched.
func (c *Cache) Load(ctx context.Context, l Lister) error {
	list, err := l.List(ctx)
	if err != nil {
		return fmt.Errorf("roster.Load: %w", err)
	}
	c.Replace(list)
	return nil
}
