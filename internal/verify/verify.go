// Package verify checks filters against transform pairs with closed-form
// solutions.
package verify

import (
	"fmt"
	"math"

	"dlf-generator/dlf"
)

const (
	// Offset is the evaluation point r.
	Offset = 1.0
	// Tolerance is the accepted relative error.
	Tolerance = 1e-4
)

// Status is the outcome of one check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// Result reports one value column of a filter.
type Result struct {
	Value    string
	Status   Status
	Got      float64
	Want     float64
	RelError float64
	Err      error
}

func (r Result) String() string {
	switch r.Status {
	case StatusSkipped:
		return fmt.Sprintf("%s: skipped", r.Value)
	case StatusFail:
		if r.Err != nil {
			return fmt.Sprintf("%s: %v", r.Value, r.Err)
		}
	}

	return fmt.Sprintf("%s: %s (got %.8g, want %.8g, rel %.2e)", r.Value, r.Status, r.Got, r.Want, r.RelError)
}

// pair is a kernel with the known transform at r.
type pair struct {
	kernel dlf.Kernel
	want   func(r float64) float64
}

// pairs holds the Gaussian transform pairs per transform and value.
var pairs = map[string]map[string]pair{
	"hankel": {
		"j0": {
			kernel: func(l float64) float64 { return l * math.Exp(-l*l) },
			want:   func(r float64) float64 { return math.Exp(-r*r/4) / 2 },
		},
		"j1": {
			kernel: func(l float64) float64 { return l * l * math.Exp(-l*l) },
			want:   func(r float64) float64 { return r / 4 * math.Exp(-r*r/4) },
		},
	},
	"fourier": {
		"sin": {
			kernel: func(f float64) float64 { return f * math.Exp(-f*f) },
			want:   func(r float64) float64 { return math.Sqrt(math.Pi) * r * math.Exp(-r*r/4) / 4 },
		},
		"cos": {
			kernel: func(f float64) float64 { return math.Exp(-f * f) },
			want:   func(r float64) float64 { return math.Sqrt(math.Pi) * math.Exp(-r*r/4) / 2 },
		},
	},
}

// Check evaluates every value column of t at Offset and compares it with
// the analytic result. Values without a known pair are skipped.
func Check(t *dlf.Table, transform string) []Result {
	results := make([]Result, 0, len(t.Names))

	for _, name := range t.Names {
		p, ok := pairs[transform][name]
		if !ok {
			results = append(results, Result{Value: name, Status: StatusSkipped})
			continue
		}

		res := Result{Value: name, Want: p.want(Offset)}

		got, err := t.Evaluate(name, Offset, p.kernel)
		if err != nil {
			res.Status = StatusFail
			res.Err = err
			results = append(results, res)

			continue
		}

		res.Got = got
		res.RelError = math.Abs(got-res.Want) / math.Abs(res.Want)

		res.Status = StatusPass
		// NaN fails too.
		if !(res.RelError <= Tolerance) {
			res.Status = StatusFail
		}

		results = append(results, res)
	}

	return results
}

// Failed reports whether any result failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}

	return false
}
