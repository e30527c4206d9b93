// Package forest evaluates gradient-boosted regression forests.
//
// A forest is a constant initial response plus the sum of its tree
// responses; the classifier output maps that sum into (-1, 1).
package forest

import (
	"fmt"
	"math"
)

// Tree stores one regression tree as parallel node arrays. Node i cuts on
// variable CutIndices[i] at CutVals[i]; values above the cut go right.
// A child index <= 0 points at leaf -index in Responses.
type Tree struct {
	CutIndices   []int     `yaml:"cut_indices"`
	CutVals      []float64 `yaml:"cut_vals"`
	LeftIndices  []int     `yaml:"left_indices"`
	RightIndices []int     `yaml:"right_indices"`
	Responses    []float64 `yaml:"responses"`
}

// Response walks the tree for x.
func (t *Tree) Response(x []float64) float64 {
	if len(t.CutIndices) == 0 {
		return t.Responses[0]
	}
	index := 0
	for {
		if x[t.CutIndices[index]] > t.CutVals[index] {
			index = t.RightIndices[index]
		} else {
			index = t.LeftIndices[index]
		}
		if index <= 0 {
			return t.Responses[-index]
		}
	}
}

// validate checks array shapes and that every reference stays in range.
func (t *Tree) validate(nvars int) error {
	nodes := len(t.CutIndices)
	if len(t.Responses) == 0 {
		return fmt.Errorf("%w: tree has no responses", ErrMalformed)
	}
	if len(t.CutVals) != nodes || len(t.LeftIndices) != nodes || len(t.RightIndices) != nodes {
		return fmt.Errorf("%w: node arrays differ in length", ErrMalformed)
	}
	for i := 0; i < nodes; i++ {
		if t.CutIndices[i] < 0 || t.CutIndices[i] >= nvars {
			return fmt.Errorf("%w: node %d cuts on variable %d of %d", ErrMalformed, i, t.CutIndices[i], nvars)
		}
		for _, child := range []int{t.LeftIndices[i], t.RightIndices[i]} {
			// Children are stored after their parent; this also rules out cycles.
			if child > 0 && (child <= i || child >= nodes) {
				return fmt.Errorf("%w: node %d points at node %d of %d", ErrMalformed, i, child, nodes)
			}
			if child <= 0 && -child >= len(t.Responses) {
				return fmt.Errorf("%w: node %d points at leaf %d of %d", ErrMalformed, i, -child, len(t.Responses))
			}
		}
	}
	return nil
}

// Forest is an immutable boosted tree ensemble.
type Forest struct {
	Method          string   `yaml:"method"`
	Variables       []string `yaml:"variables"`
	InitialResponse float64  `yaml:"initial_response"`
	Trees           []Tree   `yaml:"trees"`
}

// Inputs returns the ordered variable names the forest was trained with.
func (f *Forest) Inputs() []string {
	return f.Variables
}

// Response returns the raw boosted sum for x.
func (f *Forest) Response(x []float64) float64 {
	r := f.InitialResponse
	for i := range f.Trees {
		r += f.Trees[i].Response(x)
	}
	return r
}

// Evaluate returns the classifier output 2/(1+exp(-2r))-1 for x.
// x must hold exactly len(Variables) values.
func (f *Forest) Evaluate(x []float64) float64 {
	return 2.0/(1.0+math.Exp(-2.0*f.Response(x))) - 1
}

// Validate checks every tree against the declared variables.
func (f *Forest) Validate() error {
	if len(f.Variables) == 0 {
		return fmt.Errorf("%w: no variables declared", ErrMalformed)
	}
	for i := range f.Trees {
		if err := f.Trees[i].validate(len(f.Variables)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}
