package dlf

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Library is the set of filters backed by one file system.
type Library struct {
	fsys fs.FS

	mu        sync.RWMutex
	accessors []*Accessor
	index     map[string]*Accessor
}

// NewLibrary creates an empty Library reading tables from fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{
		fsys:  fsys,
		index: make(map[string]*Accessor),
	}
}

func indexKey(transform, name string) string {
	return transform + "/" + name
}

// Register adds a filter and returns its accessor. Nothing is read until the
// accessor is first loaded. Register panics if the filter is already
// registered; generated packages call it during initialization.
func (l *Library) Register(spec Spec) *Accessor {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := indexKey(spec.Transform, spec.Name)
	if _, ok := l.index[key]; ok {
		panic(fmt.Sprintf("dlf: filter %s registered twice", key))
	}

	spec.Values = slices.Clone(spec.Values)
	a := &Accessor{spec: spec, lib: l}

	l.accessors = append(l.accessors, a)
	l.index[key] = a

	return a
}

// Lookup returns the accessor of a registered filter.
func (l *Library) Lookup(transform, name string) (*Accessor, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.index[indexKey(transform, name)]

	return a, ok
}

// Accessors returns every registered accessor in registration order.
func (l *Library) Accessors() []*Accessor {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.accessors)
}

// Transform returns the accessors of one transform in registration order.
func (l *Library) Transform(transform string) []*Accessor {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*Accessor

	for _, a := range l.accessors {
		if a.spec.Transform == transform {
			out = append(out, a)
		}
	}

	return out
}

// LoadAll loads every registered filter concurrently and returns the first
// error encountered. Filters that load successfully stay cached either way.
func (l *Library) LoadAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, a := range l.Accessors() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, err := a.Load()

			return err
		})
	}

	return g.Wait()
}
