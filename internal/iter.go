package internal

import (
	"iter"
)

// IterIndexed yields each element of items with its index offset by base.
func IterIndexed[T any](base int, items []T) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for n, item := range items {
			if !yield(base+n, item) {
				return
			}
		}
	}
}

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}
