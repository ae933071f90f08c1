package layout

import "github.com/matzehuels/boxflow/pkg/box"

// resolveSurplus returns where the first child starts on the main axis and
// how much extra space goes between adjacent children. start is the
// content-box origin; a non-positive surplus always packs at the start.
func resolveSurplus(justify box.JustifyContent, count int, start, surplus float64) (cursor, extra float64) {
	cursor = start
	if surplus <= 0 {
		return cursor, 0
	}

	switch justify {
	case box.JustifyFlexEnd:
		cursor += surplus
	case box.JustifyCenter:
		cursor += surplus / 2
	case box.JustifySpaceBetween:
		if count > 1 {
			extra = surplus / float64(count-1)
		}
	case box.JustifySpaceAround:
		extra = surplus / float64(count+1)
		cursor += extra
	}
	return cursor, extra
}
