package manifest

import (
	"strconv"
	"strings"
)

// Manifest is the ordered set of transforms described by filters.json.
type Manifest struct {
	// Transforms keep the key order of the source document.
	Transforms []Transform
}

// Transform is one category of filters, e.g. "hankel" or "fourier".
type Transform struct {
	Name    string
	Filters []Filter
}

// Filter describes one digital linear filter and its backing table.
type Filter struct {
	// Name is the accessor identifier, e.g. "anderson_801".
	Name string `json:"name" yaml:"name"`
	// Author, Year and Appendix form the citation key.
	Author   string `json:"author"   yaml:"author"`
	Year     string `json:"year"     yaml:"year"`
	Appendix string `json:"appendix" yaml:"appendix"`
	// Points is the number of abscissae of the table.
	Points int `json:"points" yaml:"points"`
	// Values is the comma-separated list of output names, e.g. "j0,j1".
	Values string `json:"values" yaml:"values"`
	// File is the path of the text table, relative to the library root.
	File string `json:"file" yaml:"file"`
}

// ValueNames splits Values into the output names.
func (f Filter) ValueNames() []string {
	return strings.Split(f.Values, ",")
}

// CitationKey returns year+appendix (e.g. "2009" or "1975a").
func (f Filter) CitationKey() string {
	return f.Year + f.Appendix
}

// PointsString returns Points in decimal.
func (f Filter) PointsString() string {
	return strconv.Itoa(f.Points)
}

// Names returns the transform names in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Transforms))
	for _, t := range m.Transforms {
		names = append(names, t.Name)
	}

	return names
}

// Transform returns the transform with the given name.
func (m *Manifest) Transform(name string) (*Transform, bool) {
	for i := range m.Transforms {
		if m.Transforms[i].Name == name {
			return &m.Transforms[i], true
		}
	}

	return nil, false
}

// Filter returns a filter by transform and name.
func (m *Manifest) Filter(transform, name string) (*Filter, bool) {
	t, ok := m.Transform(transform)
	if !ok {
		return nil, false
	}

	for i := range t.Filters {
		if t.Filters[i].Name == name {
			return &t.Filters[i], true
		}
	}

	return nil, false
}

// Len returns the total number of filters.
func (m *Manifest) Len() int {
	n := 0
	for _, t := range m.Transforms {
		n += len(t.Filters)
	}

	return n
}
