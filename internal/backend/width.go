package backend

import "github.com/rivo/uniseg"

// runeWidth returns the number of cells r occupies, at least one.
func runeWidth(r rune) int {
	if w := uniseg.StringWidth(string(r)); w > 0 {
		return w
	}
	return 1
}
