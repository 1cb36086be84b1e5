package liftcoords

// Pages splits n items into contiguous [start, end) index pairs of at most
// step items each, in order. Useful for chunked processing with progress
// reporting. A non-positive step yields a single page covering everything.
func Pages(n, step int) [][2]int {
	if n <= 0 {
		return nil
	}
	if step <= 0 {
		return [][2]int{{0, n}}
	}

	out := make([][2]int, 0, 1+(n-1)/step)
	for start := 0; start < n; start += step {
		end := start + step
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}

	return out
}
