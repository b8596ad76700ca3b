package model

// Row is one line of the output manifest: a presigned link to a single
// disclosed artifact.
type Row struct {
	ContactID string
	Channel   Channel
	FileType  FileType
	URL       string
}

// RowSet accumulates manifest rows in insertion order. No deduplication and
// no sorting: rows for one contact are contiguous, in the order their
// objects were enumerated.
type RowSet struct {
	rows []Row
}

// Add appends a row.
func (s *RowSet) Add(r Row) {
	s.rows = append(s.rows, r)
}

// Rows returns the accumulated rows in insertion order.
func (s *RowSet) Rows() []Row {
	return s.rows
}

// Len returns the number of accumulated rows.
func (s *RowSet) Len() int {
	return len(s.rows)
}
