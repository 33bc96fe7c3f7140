package stats

// Bin is a labelled bracket with a count of members
type Bin struct {
	Label string
	Count int
}

// GroupedMedian returns the label of the bracket holding the middle member
// when every bracket is expanded by its count. The middle member is at
// index (n-1)/2, so even totals resolve to the lower of the two.
func GroupedMedian(bins []Bin) (string, bool) {
	total := 0
	for _, b := range bins {
		if b.Count > 0 {
			total += b.Count
		}
	}
	if total == 0 {
		return "", false
	}

	middle := (total - 1) / 2
	seen := 0
	for _, b := range bins {
		if b.Count <= 0 {
			continue
		}
		seen += b.Count
		if middle < seen {
			return b.Label, true
		}
	}
	return "", false
}
