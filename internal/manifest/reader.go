// Package manifest parses the input contact-ID manifest and serializes the
// output disclosure manifest. Both are CSV.
package manifest

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadContactIDs parses contact IDs from an input manifest. The first line
// is a header and is skipped; the first field of each subsequent line is a
// contact ID. Lines with an empty first field are tolerated and skipped.
// More than maxLines data lines is an error, enforced before any artifact
// lookups happen.
func ReadContactIDs(r io.Reader, maxLines int) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var ids []string
	first := true
	lines := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return ids, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "manifest: read row")
		}

		if first {
			first = false
			continue
		}

		lines++
		if lines > maxLines {
			return nil, eris.Errorf("manifest: input exceeds maximum of %d data lines", maxLines)
		}

		if len(record) == 0 {
			continue
		}
		id := strings.TrimSpace(record[0])
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
}
