package main

import (
	"fmt"
	"strings"

	"dlf-generator/internal/manifest"
	"dlf-generator/internal/match"
)

// notFound reports an unknown name with the closest known ones.
func notFound(kind, name string, known []string) error {
	if s := match.Suggest(name, known, 3); len(s) > 0 {
		return fmt.Errorf("unknown %s %q; did you mean %s?", kind, name, strings.Join(s, ", "))
	}

	return fmt.Errorf("unknown %s %q", kind, name)
}

// lookupFilter finds a filter or explains which names exist.
func lookupFilter(m *manifest.Manifest, transform, name string) (*manifest.Filter, error) {
	if f, ok := m.Filter(transform, name); ok {
		return f, nil
	}

	t, ok := m.Transform(transform)
	if !ok {
		return nil, notFound("transform", transform, m.Names())
	}

	known := make([]string, 0, len(t.Filters))
	for _, f := range t.Filters {
		known = append(known, f.Name)
	}

	return nil, notFound(transform+" filter", name, known)
}

// checkTransforms fails on requested transforms the manifest lacks.
func checkTransforms(m *manifest.Manifest, names []string) error {
	for _, name := range names {
		if _, ok := m.Transform(name); !ok {
			return notFound("transform", name, m.Names())
		}
	}

	return nil
}
