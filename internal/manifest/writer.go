package manifest

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/disclosure-cli/internal/model"
)

// Header is the output manifest header row.
var Header = []string{"ContactId", "Channel", "FileType", "S3PreSignedURL"}

// WriteRows serializes rows as CSV in insertion order, header first.
func WriteRows(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "manifest: write header")
	}
	for _, r := range rows {
		record := []string{r.ContactID, string(r.Channel), string(r.FileType), r.URL}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "manifest: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "manifest: flush")
}

// OutputKey derives the destination object key for a run finishing at now.
// Colons are replaced so the name stays portable across tooling that treats
// them specially.
func OutputKey(prefix string, now time.Time) string {
	name := "PDR_" + now.Truncate(time.Second).Format("2006-01-02T15:04:05") + ".csv"
	return prefix + strings.ReplaceAll(name, ":", "-")
}
