// Package atlas builds the static description of a vertex-to-vertex
// tiling.
//
// A tiling is described by a [Config]: a list of vertex types, each an
// ordered ring of prototile corners meeting at the origin plus, for every
// edge leaving that vertex, the vertex type found at the far end. [New]
// places the prototiles around the origin counterclockwise, checks that
// they fill exactly one full turn and derives the neighbor transforms.
//
// The resulting [Atlas] is read-only and may be shared between
// goroutines and patches.
//
// Configurations can be written by hand, read from the JSON exchange
// format with [ParseJSON], or taken from the built-in catalog:
//
//	a, err := atlas.Lookup("4.6.12")
package atlas
