// Package common contains shared utilities.
package common

// Map applies a function `fn` to all elements in the slice `s`.
func Map[S ~[]T, T, V any](s S, fn func(T) V) []V {
	res := make([]V, len(s))
	for i, t := range s {
		res[i] = fn(t)
	}
	return res
}

// Filter returns the elements in `s` for which `keep` returns true.
func Filter[S ~[]T, T any](s S, keep func(T) bool) S {
	res := make(S, 0, len(s))
	for _, t := range s {
		if keep(t) {
			res = append(res, t)
		}
	}
	return res
}
