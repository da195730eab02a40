package search

const (
	cellWidth   = 6
	windowInset = 8
	minCells    = 8
)

// Window picks the inclusive index range [i0, i1] of an n element slice
// that fits in cols terminal columns, centred on the live segment
// [left, right] when the slice is too long to show whole.
func Window(n, left, right, cols int) (int, int) {
	if n <= 0 {
		return 0, -1
	}
	maxCells := max(minCells, (cols-windowInset)/cellWidth)
	if n <= maxCells {
		return 0, n - 1
	}

	left, right = max(0, left), max(0, right)
	center := (left + right) / 2
	i0 := max(0, center-maxCells/2)
	i1 := min(n-1, i0+maxCells-1)
	if i1-i0+1 < maxCells {
		i0 = max(0, i1-maxCells+1)
	}
	return i0, i1
}
