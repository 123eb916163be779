// Package gen emits the Go library for a filter manifest.
//
// Generation uses text/template + go/format. For every manifest it produces:
//   - lib/lib.go with the table file system and the shared dlf.Library
//   - lib/filters.json and the materialized tables
//   - one package per transform with an accessor function per filter
//   - an index package listing the transforms in manifest order
//
// All files are built in memory; nothing is written until WriteFiles.
package gen
