// Package manifest loads and checks the filter manifest (filters.json).
//
// The manifest maps a transform name to the ordered list of filters it
// provides:
//
//	{
//	  "hankel": [
//	    {
//	      "name": "anderson_801",
//	      "author": "Anderson",
//	      "year": "1975",
//	      "appendix": "",
//	      "points": 801,
//	      "values": "j0,j1",
//	      "file": "lib/hankel/anderson_801_1975_j0j1.txt"
//	    }
//	  ]
//	}
//
// # Loading
//
// Parse compiles the document as CUE and unifies it with the embedded
// schema.cue, so a missing field, an unknown field or a wrong type is reported
// with its JSON path. Transforms and filters keep their document order.
//
// # Validation
//
// Validate checks the cross-field invariants against the library on disk:
// every file name carries the transform, the citation key (year+appendix),
// the point count and each value name; every referenced table exists; and
// there is exactly one library subdirectory per transform.
package manifest
