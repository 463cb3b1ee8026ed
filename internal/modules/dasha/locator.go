package dasha

import "time"

// Locate finds the maha, antar and pratyantar periods active at an instant.
// The maha list is scanned in order for the first period containing the
// instant, then the search repeats over that period's children, then once
// more one level deeper. Any level without a containing period leaves its
// entry (and all deeper entries) nil: a query outside the built horizon, or a
// tree built without full expansion, is a normal absence, never an error.
//
// The locator is pure; callers wanting "now" pass time.Now() themselves.
func Locate(tree []Period, at time.Time) Active {
	var active Active

	for i := range tree {
		if tree[i].Contains(at) {
			active.Maha = &tree[i]
			break
		}
	}
	if active.Maha == nil {
		return active
	}

	for i := range active.Maha.Children {
		if active.Maha.Children[i].Contains(at) {
			active.Antar = &active.Maha.Children[i]
			break
		}
	}
	if active.Antar == nil {
		return active
	}

	for i := range active.Antar.Children {
		if active.Antar.Children[i].Contains(at) {
			active.Pratyantar = &active.Antar.Children[i]
			break
		}
	}

	return active
}
