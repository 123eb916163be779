package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dlf-generator/internal/diagnostic"
)

// Validate checks the manifest against the library on disk. It reports every
// violated invariant rather than stopping at the first one.
func Validate(m *Manifest, layout Layout) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if m == nil {
		res.AddError("manifest_is_nil", "manifest is nil", "", "")
		return res
	}

	validateTransformDirs(res, m, layout)

	for _, t := range m.Transforms {
		if len(t.Filters) == 0 {
			res.AddWarning("transform_empty", "transform has no filters", t.Name, "")
		}

		for _, f := range t.Filters {
			validateFilter(res, t.Name, f, layout)
		}
	}

	return res
}

// validateTransformDirs requires one library subdirectory per transform and
// no others.
func validateTransformDirs(res *diagnostic.Diagnostics, m *Manifest, layout Layout) {
	entries, err := os.ReadDir(layout.LibDir)
	if err != nil {
		res.AddError("library_unreadable", fmt.Sprintf("cannot read library directory: %v", err), "", "")
		return
	}

	dirs := map[string]struct{}{}

	for _, e := range entries {
		if e.IsDir() {
			dirs[strings.ToLower(e.Name())] = struct{}{}
		}
	}

	for _, t := range m.Transforms {
		if _, ok := dirs[t.Name]; !ok {
			res.AddError("transform_dir_missing",
				fmt.Sprintf("no directory %q in %s", t.Name, layout.LibDir), t.Name, "")
		}
	}

	if len(dirs) != len(m.Transforms) {
		res.AddError("transform_count_mismatch",
			fmt.Sprintf("%d transforms in manifest, %d directories in %s", len(m.Transforms), len(dirs), layout.LibDir),
			"", "")
	}
}

func validateFilter(res *diagnostic.Diagnostics, transform string, f Filter, layout Layout) {
	key := f.CitationKey()
	points := f.PointsString()

	if !strings.Contains(f.File, transform) {
		res.AddError("file_missing_transform",
			fmt.Sprintf("file %q does not contain transform %q", f.File, transform), transform, f.Name)
	}

	if !strings.Contains(f.Name, key) {
		res.AddError("name_missing_citation",
			fmt.Sprintf("name does not contain citation key %q", key), transform, f.Name)
	}

	if !strings.Contains(f.File, key) {
		res.AddError("file_missing_citation",
			fmt.Sprintf("file %q does not contain citation key %q", f.File, key), transform, f.Name)
	}

	if !strings.Contains(f.Name, points) {
		res.AddError("name_missing_points",
			fmt.Sprintf("name does not contain point count %s", points), transform, f.Name)
	}

	if !strings.Contains(f.File, points) {
		res.AddError("file_missing_points",
			fmt.Sprintf("file %q does not contain point count %s", f.File, points), transform, f.Name)
	}

	for _, v := range f.ValueNames() {
		if !strings.Contains(f.File, v) {
			res.AddError("file_missing_value",
				fmt.Sprintf("file %q does not contain value %q", f.File, v), transform, f.Name)
		}
	}

	if _, err := layout.LibPath(f); err != nil {
		res.AddError("file_outside_library", err.Error(), transform, f.Name)
		return
	}

	info, err := os.Stat(layout.Path(f))
	switch {
	case errors.Is(err, os.ErrNotExist):
		res.AddError("file_not_found", fmt.Sprintf("table %s does not exist", layout.Path(f)), transform, f.Name)
	case err != nil:
		res.AddError("file_not_found", fmt.Sprintf("table %s: %v", layout.Path(f), err), transform, f.Name)
	case info.IsDir():
		res.AddError("file_not_found", fmt.Sprintf("table %s is a directory", layout.Path(f)), transform, f.Name)
	}
}
