package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeq2Map converts the second value of each pair with fn.
func IterSeq2Map[K any, V1 any, V2 any](seq iter.Seq2[K, V1], fn func(V1) V2) iter.Seq2[K, V2] {
	return func(yield func(K, V2) bool) {
		for key, val := range seq {
			if !yield(key, fn(val)) {
				return
			}
		}
	}
}
