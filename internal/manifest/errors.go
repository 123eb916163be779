package manifest

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrManifestFormat is matched by every *ManifestFormatError via errors.Is.
var ErrManifestFormat = errors.New("malformed manifest")

// ManifestFormatError reports a manifest that is not well-formed or lacks a
// required field. It aborts generation.
type ManifestFormatError struct {
	// File is the manifest path (or "<input>").
	File string
	// Path is the JSON path of the offending value, when known.
	Path  string
	cause error
}

func (e *ManifestFormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.cause)
	}

	return fmt.Sprintf("%s: %v", e.File, e.cause)
}

func (e *ManifestFormatError) Unwrap() error { return e.cause }

// Is reports whether target is ErrManifestFormat.
func (e *ManifestFormatError) Is(target error) bool {
	return target == ErrManifestFormat
}

// formatError converts a CUE error into a ManifestFormatError. A single CUE
// error keeps its path; several are folded into one message, one per line.
func formatError(err error, file string) *ManifestFormatError {
	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return &ManifestFormatError{File: file, cause: err}
	}

	if len(cueErrs) == 1 {
		path := formatPath(cueerrors.Path(cueErrs[0]))

		return &ManifestFormatError{File: file, Path: path, cause: errors.New(trimPath(cueErrs[0].Error(), path))}
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		path := formatPath(cueerrors.Path(e))
		msg := trimPath(e.Error(), path)

		if path != "" {
			msg = path + ": " + msg
		}

		lines = append(lines, msg)
	}

	return &ManifestFormatError{
		File:  file,
		cause: fmt.Errorf("validation failed:\n  %s", strings.Join(lines, "\n  ")),
	}
}

// trimPath drops the path prefix CUE sometimes repeats inside the message.
func trimPath(msg, path string) string {
	if path != "" && strings.HasPrefix(msg, path) {
		msg = strings.TrimPrefix(msg, path)
		msg = strings.TrimPrefix(msg, ":")
	}

	return strings.TrimSpace(msg)
}

// formatPath renders ["hankel", "0", "points"] as "hankel[0].points".
func formatPath(path []string) string {
	var sb strings.Builder

	for i, part := range path {
		if i > 0 && isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}

		if i > 0 {
			sb.WriteString(".")
		}

		sb.WriteString(part)
	}

	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
