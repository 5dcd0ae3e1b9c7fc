// Package selection provides partial ordering for order-statistic queries.
package selection

// NthElement reorders s in place so that s[n] holds the element that would
// be at index n if s were fully sorted by less. Elements before index n are
// not greater than s[n], elements after are not smaller. Expected linear
// time (quickselect with median-of-three pivoting); no allocation.
func NthElement[T any](s []T, n int, less func(a, b T) bool) {
	if n < 0 || n >= len(s) {
		return
	}
	lo, hi := 0, len(s)-1
	for lo < hi {
		p := partition(s, lo, hi, less)
		switch {
		case n < p:
			hi = p - 1
		case n > p:
			lo = p + 1
		default:
			return
		}
	}
}

// partition picks a median-of-three pivot, partitions s[lo:hi+1] around it,
// and returns the pivot's final index.
func partition[T any](s []T, lo, hi int, less func(a, b T) bool) int {
	mid := lo + (hi-lo)/2
	if less(s[mid], s[lo]) {
		s[mid], s[lo] = s[lo], s[mid]
	}
	if less(s[hi], s[lo]) {
		s[hi], s[lo] = s[lo], s[hi]
	}
	if less(s[hi], s[mid]) {
		s[hi], s[mid] = s[mid], s[hi]
	}
	s[mid], s[hi] = s[hi], s[mid]

	pivot := s[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if less(s[j], pivot) {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	s[i], s[hi] = s[hi], s[i]
	return i
}
