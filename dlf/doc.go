// Package dlf is the runtime shared by every package emitted by dlf-generator.
//
// A digital linear filter (DLF) is a tabulated set of coefficients: a base
// (abscissa) vector plus one weight vector per transform kernel, e.g. j0 and
// j1 for a Hankel filter or sin and cos for a Fourier filter.
//
// Generated code registers one Accessor per filter on a Library and exposes a
// zero-argument function that returns the filter columns:
//
//	base, j0, j1, err := hankel.Anderson801()
//
// Tables are stored either as whitespace-delimited text or as a compressed
// binary container (see WriteBinary). Both load to bit-identical values.
//
// Each Accessor reads its backing file at most once per process, even under
// concurrent first calls. Failures are reported lazily as *TableLoadError and
// do not affect other accessors.
package dlf
