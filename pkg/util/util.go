package util

// Map returns a new slice holding f applied to every element and its index
func Map[A any, B any](coll []A, f func(A, uint64) B) []B {
	out := make([]B, len(coll))
	for i, a := range coll {
		out[i] = f(a, uint64(i))
	}
	return out
}
