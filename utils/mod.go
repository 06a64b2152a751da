package utils

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Sum[T Number](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

// Cover returns the length of the shortest prefix of values whose sum reaches
// need, together with that sum. When the whole slice falls short the full
// length is returned. A need of zero or less selects nothing.
func Cover[T Number](values []T, need T) (int, T) {
	var total T
	if need <= 0 {
		return 0, total
	}
	for i, v := range values {
		total += v
		if total >= need {
			return i + 1, total
		}
	}
	return len(values), total
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
