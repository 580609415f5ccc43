package session

import "math/rand"

// Shuffle returns a uniformly random permutation of the input using
// Fisher-Yates. The input slice is never mutated; every call draws a fresh
// permutation so "study again" gets an independent order.
func Shuffle[T any](deck []T) []T {
	out := make([]T, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
