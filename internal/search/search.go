package search

import "golang.org/x/exp/constraints"

// Find returns the index of some element equal to x, or -1.
func Find[T constraints.Ordered](s []T, x T) int {
	lo, hi := 0, len(s)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch {
		case s[mid] == x:
			return mid
		case s[mid] < x:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// First returns the index of the first element equal to x, or -1.
func First[T constraints.Ordered](s []T, x T) int {
	i := BisectLeft(s, x)
	if i < len(s) && s[i] == x {
		return i
	}
	return -1
}

// Last returns the index of the last element equal to x, or -1.
func Last[T constraints.Ordered](s []T, x T) int {
	i := BisectRight(s, x) - 1
	if i >= 0 && s[i] == x {
		return i
	}
	return -1
}

// BisectLeft returns the leftmost position where x can be inserted while
// keeping s sorted.
func BisectLeft[T constraints.Ordered](s []T, x T) int {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if s[mid] < x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// BisectRight returns the rightmost insertion position of x.
func BisectRight[T constraints.Ordered](s []T, x T) int {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if s[mid] <= x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func Count[T constraints.Ordered](s []T, x T) int {
	return BisectRight(s, x) - BisectLeft(s, x)
}

// Range returns the first and last index of x, or (-1, -1).
func Range[T constraints.Ordered](s []T, x T) (int, int) {
	first := First(s, x)
	if first < 0 {
		return -1, -1
	}
	return first, Last(s, x)
}
