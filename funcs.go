package calc

import (
	"errors"
	"math"
	"sort"
	"strconv"
)

// Func is a function from reals to reals. A Func returns ErrDomain or
// ErrRange when its argument is outside the function's domain or its result
// is not representable.
type Func func(x float64) (float64, error)

var (
	// ErrDomain is returned by a Func called with an argument outside its
	// domain, e.g. sqrt(-1).
	ErrDomain = errors.New("math domain error")
	// ErrRange is returned by a Func whose result overflows, e.g. exp(1000).
	ErrRange = errors.New("math range error")
)

var globalfuncs = map[string]Func{
	"sin":   monadic(math.Sin),
	"cos":   monadic(math.Cos),
	"tan":   monadic(math.Tan),
	"sqrt":  monadic(math.Sqrt),
	"log":   monadic(math.Log10),
	"ln":    monadic(math.Log),
	"exp":   monadic(math.Exp),
	"abs":   monadic(math.Abs),
	"ceil":  rounding(math.Ceil),
	"floor": rounding(math.Floor),
}

var globalconsts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// monadic wraps a float64 function into a Func. A NaN result for a non-NaN
// argument is a domain error, and an infinite result for a finite argument
// is a range error.
func monadic(f func(float64) float64) Func {
	return func(x float64) (float64, error) {
		r := f(x)
		switch {
		case math.IsNaN(r) && !math.IsNaN(x):
			return 0, ErrDomain
		case math.IsInf(r, 0) && !math.IsInf(x, 0):
			if x == 0 {
				// Poles at zero are domain errors, as for log.
				return 0, ErrDomain
			}
			return 0, ErrRange
		}
		return r, nil
	}
}

// rounding wraps a rounding function. Rounding infinities and NaN has no
// integer result, so those arguments are errors.
func rounding(f func(float64) float64) Func {
	return func(x float64) (float64, error) {
		switch {
		case math.IsNaN(x):
			return 0, ErrDomain
		case math.IsInf(x, 0):
			return 0, ErrRange
		}
		return f(x), nil
	}
}

// LookupFunc returns the function with the given name.
func LookupFunc(name string) (Func, bool) {
	f, ok := globalfuncs[name]
	return f, ok
}

// LookupConst returns the value of the constant with the given name.
func LookupConst(name string) (float64, bool) {
	v, ok := globalconsts[name]
	return v, ok
}

// Funcs returns the sorted names of all functions.
func Funcs() []string {
	return sortedKeys(globalfuncs)
}

// Consts returns the sorted names of all constants.
func Consts() []string {
	return sortedKeys(globalconsts)
}

func sortedKeys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// constText is the text substituted for a constant during tokenization.
func constText(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
