// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stream provides helpers for consuming lazy upstream result
// sequences without draining them.
package stream

import "iter"

// Limit yields at most n elements of seq. The source is stopped as soon as
// the nth element has been yielded, so an unbounded source is safe. An error
// element is passed through and ends the sequence. n <= 0 yields nothing and
// never starts the source.
func Limit[T any](seq iter.Seq2[T, error], n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		count := 0
		for v, err := range seq {
			if err != nil {
				yield(v, err)
				return
			}
			if !yield(v, nil) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}

// Collect gathers the elements of seq into a slice. It stops at the first
// error and returns the elements gathered so far together with that error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}
