/*package eq is a simple package for telling whether two arrays are equal to
one another.*/
package eq

import (
	"math"
)

// Strings returns true if two []string arrays are the same and false otherwise.
func Strings(x, y []string) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64s returns true if two []float64 arrays are the same and false
// otherwise.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] + eps < y[i] || x[i] - eps > y[i] {
			return false
		}
	}
	return true
}

// Float64sRelEps returns true if every element of the two []float64 arrays
// agrees within a relative tolerance of eps and false otherwise. Two zeros
// always agree.
func Float64sRelEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if !relEq(x[i], y[i], eps) { return false }
	}
	return true
}

func relEq(x, y, eps float64) bool {
	if x == y { return true }
	scale := math.Max(math.Abs(x), math.Abs(y))
	return math.Abs(x - y) <= eps*scale
}
