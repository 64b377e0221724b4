package textutil

import "strconv"

// Ternary returns a if cond is true, b otherwise.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// Plural formats a count with the singular noun when n is 1 and the plural
// noun otherwise, e.g. "1 movie" or "3 movies".
func Plural(n int, singular, plural string) string {
	return strconv.Itoa(n) + " " + Ternary(n == 1, singular, plural)
}
