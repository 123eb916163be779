package gen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
)

// reservedExports are declared by every transform package.
var reservedExports = map[string]bool{
	"Filters": true,
	"Names":   true,
}

// exportedName converts a filter identifier to an exported Go name.
// Words are joined in CamelCase; an underscore is kept between two digit
// groups so "anderson_801_1982" reads Anderson801_1982.
func exportedName(name string) string {
	var sb strings.Builder

	prevDigit := false

	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}

		r := []rune(part)
		if prevDigit && unicode.IsDigit(r[0]) {
			sb.WriteByte('_')
		}

		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))

		prevDigit = unicode.IsDigit(r[len(r)-1])
	}

	return sb.String()
}

// unexportedName is the package-level variable holding the accessor.
func unexportedName(name string) string {
	return "filter" + exportedName(name)
}

// resultName turns a value name into a result parameter name.
func resultName(value string) string {
	name := strings.ToLower(value)

	switch {
	case name == "base", name == "err", name == "t":
		return name + "Values"
	case token.IsKeyword(name), !token.IsIdentifier(name):
		return "v" + name
	default:
		return name
	}
}

// accessorNames maps every filter of a transform to its function name and
// fails on collisions.
func accessorNames(transform string, filters []string) ([]string, error) {
	seen := make(map[string]string, len(filters))
	out := make([]string, 0, len(filters))

	for _, f := range filters {
		name := exportedName(f)

		switch {
		case name == "" || !token.IsIdentifier(name):
			return nil, fmt.Errorf("%s/%s: cannot derive a Go identifier", transform, f)
		case reservedExports[name]:
			return nil, fmt.Errorf("%s/%s: %s is reserved", transform, f, name)
		}

		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s: filters %q and %q both map to %s", transform, other, f, name)
		}

		seen[name] = f
		out = append(out, name)
	}

	return out, nil
}

// checkPackageName rejects transform names that cannot be Go packages.
func checkPackageName(transform string) error {
	switch {
	case !token.IsIdentifier(transform), token.IsKeyword(transform):
		return fmt.Errorf("transform %q is not a valid package name", transform)
	case transform == libPackage, transform == "dlf":
		return fmt.Errorf("transform %q collides with an imported package", transform)
	case transform == "main":
		return fmt.Errorf("transform %q cannot be imported", transform)
	}

	return nil
}
