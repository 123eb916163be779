// Package materialize decides how each filter table is stored in the
// generated library: copied as text, or converted once into the compressed
// binary container read by dlf.ReadBinary.
package materialize
