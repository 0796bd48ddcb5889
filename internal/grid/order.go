package grid

// Swap returns a copy of items with the element at from moved to to. The
// elements in between shift by one toward from. A to past the end moves the
// element to the end. An invalid from, a negative to, or from == to returns
// an unmodified copy.
func Swap[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	if to >= len(items) {
		to = len(items) - 1
	}
	if from == to || from < 0 || to < 0 || from >= len(items) {
		return append(out, items...)
	}

	item := items[from]
	if from > to {
		out = append(out, items[:to]...)
		out = append(out, item)
		out = append(out, items[to:from]...)
		return append(out, items[from+1:]...)
	}

	out = append(out, items[:from]...)
	out = append(out, items[from+1:to+1]...)
	out = append(out, item)
	return append(out, items[to+1:]...)
}

// Move removes the element at from in source and inserts it at to in dest.
// Both inputs are left untouched. A to past the end of dest appends.
func Move[T any](source, dest []T, from, to int) (newSource, newDest []T) {
	newSource = append(make([]T, 0, len(source)), source...)
	newDest = make([]T, 0, len(dest)+1)
	if from < 0 || from >= len(source) {
		return newSource, append(newDest, dest...)
	}

	item := source[from]
	newSource = append(newSource[:from], newSource[from+1:]...)

	if to < 0 {
		to = 0
	}
	if to > len(dest) {
		to = len(dest)
	}
	newDest = append(newDest, dest[:to]...)
	newDest = append(newDest, item)
	newDest = append(newDest, dest[to:]...)
	return newSource, newDest
}

// IndexOf returns the position of v in items, or -1.
func IndexOf[T comparable](items []T, v T) int {
	for i, x := range items {
		if x == v {
			return i
		}
	}
	return -1
}

// Indexes returns [0, 1, ..., n-1].
func Indexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
