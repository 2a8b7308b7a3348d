// Package repository pairs an in-memory entity store with a backing text
// file and a line codec. The in-memory map is the single source of truth
// during a run; the file is read once at startup and rewritten in full at
// controlled flush points.
package repository

import (
	"bufio"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/vmarket/storecore/internal/codec"
	"github.com/vmarket/storecore/internal/domain"
)

// Repository is the persistence boundary for one entity kind.
type Repository[T any] struct {
	mu    sync.RWMutex
	kind  string
	path  string
	codec codec.LineCodec[T]
	keyOf func(T) int64
	seed  func() []T
	items map[int64]T
}

// New builds a repository for one entity kind. keyOf extracts the identity
// of an entity; seed supplies the bootstrap rows used when the backing file
// is absent or empty and may be nil.
func New[T any](kind, path string, c codec.LineCodec[T], keyOf func(T) int64, seed func() []T) *Repository[T] {
	return &Repository[T]{
		kind:  kind,
		path:  path,
		codec: c,
		keyOf: keyOf,
		seed:  seed,
		items: make(map[int64]T),
	}
}

// Path returns the backing file location.
func (r *Repository[T]) Path() string { return r.path }

// Save upserts an entity by id into the in-memory store. The file is not
// touched until the next SaveAll.
func (r *Repository[T]) Save(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[r.keyOf(v)] = v
}

// FindByID returns the entity with the given id, if present.
func (r *Repository[T]) FindByID(id int64) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	return v, ok
}

// FindAll returns a defensive copy of all entities. Iteration order is
// unspecified.
func (r *Repository[T]) FindAll() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out
}

// Delete removes the entity with the given id from the in-memory store and
// reports whether it was present. The removal reaches the file at the next
// SaveAll.
func (r *Repository[T]) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	delete(r.items, id)
	return ok
}

// Count returns the number of entities currently held.
func (r *Repository[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// MaxID returns the largest identity currently held, or 0 when empty. Used
// to seed the identity allocator at startup.
func (r *Repository[T]) MaxID() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var max int64
	for id := range r.items {
		if id > max {
			max = id
		}
	}
	return max
}

// LoadAll reads the backing file into the in-memory store, one entity per
// line. When the file is absent or empty the bootstrap seed rows are loaded
// instead. A decode failure aborts the load with a line-number-tagged
// PersistenceError; lines decoded before the failure remain loaded. That
// "fail loud, keep partial progress" contract is deliberate — see DESIGN.md.
func (r *Repository[T]) LoadAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, err := os.Stat(r.path)
	switch {
	case os.IsNotExist(err), err == nil && info.Size() == 0:
		r.seedDefaults()
		return nil
	case err != nil:
		return &domain.PersistenceError{File: r.path, Err: err}
	}

	f, err := os.Open(r.path)
	if err != nil {
		return &domain.PersistenceError{File: r.path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		v, err := r.codec.Decode(scanner.Text())
		if err != nil {
			return &domain.PersistenceError{File: r.path, Line: lineNo, Err: err}
		}
		r.items[r.keyOf(v)] = v
	}
	if err := scanner.Err(); err != nil {
		return &domain.PersistenceError{File: r.path, Line: lineNo, Err: err}
	}

	zap.L().Info("collection loaded",
		zap.String("kind", r.kind),
		zap.String("file", r.path),
		zap.Int("count", len(r.items)))
	return nil
}

// SaveAll rewrites the backing file with one line per held entity, in
// whatever order the map yields. The write is not atomic: a failure mid-way
// leaves the file in an undefined state between old and new content.
func (r *Repository[T]) SaveAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := os.Create(r.path)
	if err != nil {
		return &domain.PersistenceError{File: r.path, Err: err}
	}
	w := bufio.NewWriter(f)
	for _, v := range r.items {
		if _, err := w.WriteString(r.codec.Encode(v) + "\n"); err != nil {
			f.Close()
			return &domain.PersistenceError{File: r.path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return &domain.PersistenceError{File: r.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &domain.PersistenceError{File: r.path, Err: err}
	}

	zap.L().Debug("collection saved",
		zap.String("kind", r.kind),
		zap.String("file", r.path),
		zap.Int("count", len(r.items)))
	return nil
}

func (r *Repository[T]) seedDefaults() {
	if r.seed == nil || len(r.items) > 0 {
		return
	}
	for _, v := range r.seed() {
		r.items[r.keyOf(v)] = v
	}
	zap.L().Info("collection initialized with bootstrap data",
		zap.String("kind", r.kind),
		zap.Int("count", len(r.items)))
}
