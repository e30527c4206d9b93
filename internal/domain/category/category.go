// Package category partitions photon candidates into detector regions, each
// served by its own trained model.
package category

import "math"

// Pseudorapidity boundaries between categories.
const (
	barrelSplit = 0.8
	ebeeSplit   = 1.479 // division between barrel and endcap
)

// Category identifies the detector region a candidate belongs to.
type Category int

// Enumeration order matters: model files are consumed in this order.
const (
	EB1 Category = iota
	EB2
	EE
	Undefined Category = -1
)

// Count is the number of real categories (Undefined excluded).
const Count = 3

// Categories returns the real categories in enumeration order.
func Categories() []Category {
	return []Category{EB1, EB2, EE}
}

// Classify maps a supercluster pseudorapidity to a category.
// NaN never satisfies any range and yields Undefined.
func Classify(eta float64) Category {
	abs := math.Abs(eta)
	c := Undefined
	if abs < barrelSplit {
		c = EB1
	}
	if abs >= barrelSplit && abs < ebeeSplit {
		c = EB2
	}
	if abs >= ebeeSplit {
		c = EE
	}
	return c
}

// IsEndcap reports whether c is an endcap category. Trivial for three
// categories, kept so more eta bins can be added later.
func IsEndcap(c Category) bool {
	return c == EE
}

// Valid reports whether c is one of the real categories.
func (c Category) Valid() bool {
	return c >= EB1 && c < Count
}

func (c Category) String() string {
	switch c {
	case EB1:
		return "EB1"
	case EB2:
		return "EB2"
	case EE:
		return "EE"
	default:
		return "UNDEFINED"
	}
}
