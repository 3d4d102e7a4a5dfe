package importer

import (
	"strings"
	"time"
)

// dateLayouts are tried in order and the first successful parse wins.
// ISO first, then day-first and month-first slash/dash variants.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
}

// record is one normalized data row awaiting reconciliation.
type record struct {
	row       int // 1-based sheet row number, for error reporting
	blank     bool
	values    map[Field]string
	expiry    time.Time
	hasExpiry bool
}

// parseDate attempts the layouts in order. The second return is false when
// no layout matched; the caller defaults the date rather than rejecting.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	// Cells that held a real date/time value arrive as "date time"; only the
	// date component matters.
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// normalizeRow extracts and coerces the cells of one data row using the
// resolved column map. A row whose cells are all empty is flagged blank and
// is skipped by the engine without counting anywhere.
func normalizeRow(cols map[Field]int, rowNum int, cells []string) record {
	blank := true
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			blank = false
			break
		}
	}
	if blank {
		return record{row: rowNum, blank: true}
	}

	cellAt := func(idx int) string {
		if idx < 0 || idx >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[idx])
	}

	rec := record{row: rowNum, values: make(map[Field]string, 4)}
	for _, spec := range fieldSpecs {
		idx, ok := cols[spec.field]
		if !ok {
			continue
		}
		if spec.field == FieldExpiryDate {
			rec.expiry, rec.hasExpiry = parseDate(cellAt(idx))
			continue
		}
		rec.values[spec.field] = cellAt(idx)
	}
	return rec
}
