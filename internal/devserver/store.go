package devserver

import (
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/google/uuid"
)

// table is an in-memory collection that remembers insertion order. stamp
// assigns the id and timestamps of a new row.
type table[T any] struct {
	stamp func(v *T, id string, now time.Time)

	mu    sync.RWMutex
	rows  map[string]T
	order []string
}

func newTable[T any](stamp func(*T, string, time.Time)) *table[T] {
	return &table[T]{stamp: stamp, rows: make(map[string]T)}
}

func (t *table[T]) insert(v T, now time.Time) T {
	id := uuid.NewString()
	t.stamp(&v, id, now)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = v
	t.order = append(t.order, id)
	return v
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

// update applies fn to the row with the given id under the write lock.
// fn returning an error leaves the row untouched.
func (t *table[T]) update(id string, fn func(*T) error) (T, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return v, false, nil
	}
	if err := fn(&v); err != nil {
		return v, true, err
	}
	t.rows[id] = v
	return v, true, nil
}

func (t *table[T]) delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return true
}

// list returns the rows matching keep (all rows when keep is nil),
// newest first.
func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		v := t.rows[t.order[i]]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// content holds every collection the backend serves.
type content struct {
	services     *table[models.Service]
	blog         *table[models.BlogPost]
	categories   *table[models.Category]
	testimonials *table[models.Testimonial]
	inquiries    *table[models.Inquiry]
	clients      *table[models.ClientLogo]

	uploadsMu sync.RWMutex
	uploads   map[string][]byte
}

func newContent() *content {
	return &content{
		services: newTable(
			func(v *models.Service, id string, now time.Time) { v.ID, v.CreatedAt, v.UpdatedAt = id, now, now },
		),
		blog: newTable(
			func(v *models.BlogPost, id string, now time.Time) { v.ID, v.CreatedAt, v.UpdatedAt = id, now, now },
		),
		categories: newTable(
			func(v *models.Category, id string, _ time.Time) { v.ID = id },
		),
		testimonials: newTable(
			func(v *models.Testimonial, id string, now time.Time) { v.ID, v.CreatedAt = id, now },
		),
		inquiries: newTable(
			func(v *models.Inquiry, id string, now time.Time) { v.ID, v.CreatedAt = id, now },
		),
		clients: newTable(
			func(v *models.ClientLogo, id string, _ time.Time) { v.ID = id },
		),
		uploads: make(map[string][]byte),
	}
}

func (c *content) putUpload(name string, data []byte) {
	c.uploadsMu.Lock()
	c.uploads[name] = data
	c.uploadsMu.Unlock()
}

func (c *content) upload(name string) ([]byte, bool) {
	c.uploadsMu.RLock()
	defer c.uploadsMu.RUnlock()
	b, ok := c.uploads[name]
	return b, ok
}
