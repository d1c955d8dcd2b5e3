package models

// SummaryEntry is one category line of a Summary.
type SummaryEntry struct {
	Category string
	Total    float64
}

// Summary holds a running signed total per category. Categories are kept in
// the order they were first added. Totals are float64 and summed in input
// order, so they carry the usual binary rounding of the amounts.
type Summary struct {
	order  []string
	totals map[string]float64
}

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{totals: make(map[string]float64)}
}

// Add adds amount to the total of category, registering the category if unseen.
func (s *Summary) Add(category string, amount float64) {
	if s.totals == nil {
		s.totals = make(map[string]float64)
	}
	total, ok := s.totals[category]
	if !ok {
		s.order = append(s.order, category)
	}
	s.totals[category] = total + amount
}

// Total returns the total of category and whether the category exists.
func (s *Summary) Total(category string) (float64, bool) {
	total, ok := s.totals[category]
	return total, ok
}

// Categories returns category names in first-seen order.
func (s *Summary) Categories() []string {
	return append([]string(nil), s.order...)
}

// Entries returns the summary lines in first-seen order.
func (s *Summary) Entries() []SummaryEntry {
	entries := make([]SummaryEntry, 0, len(s.order))
	for _, category := range s.order {
		entries = append(entries, SummaryEntry{Category: category, Total: s.totals[category]})
	}
	return entries
}

// Len returns the number of categories.
func (s *Summary) Len() int {
	return len(s.order)
}
