package clean

import "sort"

// Report counts the rows a cleaner dropped (data quality warnings) and the
// cells it corrected. Exclusion is expected, so it is reported, never raised.
type Report struct {
	Dataset string         `json:"dataset"`
	RowsIn  int            `json:"rows_in"`
	RowsOut int            `json:"rows_out"`
	Dropped map[string]int `json:"dropped,omitempty"`
	Fixed   map[string]int `json:"fixed,omitempty"`
}

// NewReport creates an empty report for a dataset
func NewReport(dataset string) *Report {
	return &Report{
		Dataset: dataset,
		Dropped: make(map[string]int),
		Fixed:   make(map[string]int),
	}
}

// Drop records one excluded row under a rule name
func (r *Report) Drop(rule string) {
	r.Dropped[rule]++
}

// Fix records n corrected cells under a rule name
func (r *Report) Fix(rule string, n int) {
	if n > 0 {
		r.Fixed[rule] += n
	}
}

// DroppedTotal returns the number of excluded rows
func (r *Report) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// Rules returns the drop rule names in sorted order
func (r *Report) Rules() []string {
	rules := make([]string, 0, len(r.Dropped))
	for rule := range r.Dropped {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	return rules
}

// Merge adds the drop and fix counts of a later step over the same rows.
// RowsIn and RowsOut stay with the caller.
func (r *Report) Merge(o *Report) {
	if o == nil {
		return
	}
	for rule, n := range o.Dropped {
		r.Dropped[rule] += n
	}
	for rule, n := range o.Fixed {
		r.Fixed[rule] += n
	}
}
