package state

import "unicode/utf8"

const maxQueryLength = 100

// SearchState tracks a list's search box.
//
// Query is what the user has typed. Applied is the query the list is
// currently filtered by; it only changes when a debounced search settles.
// Seq identifies the latest keystroke so stale deliveries can be dropped.
type SearchState struct {
	Query   string
	Applied string
	Editing bool
	Seq     uint64
}

// NewSearchState creates a new SearchState with default values.
func NewSearchState() *SearchState {
	return &SearchState{}
}

// Start enters editing mode, keeping the current query
func (s *SearchState) Start() {
	s.Editing = true
}

// Stop leaves editing mode
func (s *SearchState) Stop() {
	s.Editing = false
}

// AppendText appends typed text to the query.
// Returns false if nothing was added because the query is at max length.
func (s *SearchState) AppendText(text string) bool {
	if text == "" || utf8.RuneCountInString(s.Query)+utf8.RuneCountInString(text) > maxQueryLength {
		return false
	}
	s.Query += text
	s.Seq++
	return true
}

// Backspace removes the last character from the query.
// Returns false if the query was already empty.
func (s *SearchState) Backspace() bool {
	if s.Query == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(s.Query)
	s.Query = s.Query[:len(s.Query)-size]
	s.Seq++
	return true
}

// Settle applies query if seq is still the latest keystroke.
// Returns false for stale deliveries.
func (s *SearchState) Settle(query string, seq uint64) bool {
	if seq != s.Seq {
		return false
	}
	s.Applied = query
	return true
}

// Clear resets the query and the applied filter
func (s *SearchState) Clear() {
	s.Query = ""
	s.Applied = ""
	s.Editing = false
	s.Seq++
}
