package gallery

import (
	"sort"

	"aperture/internal/platform/constants"
)

// ProjectColumns partitions sorted records into the three masonry columns.
//
// Two-tier placement: a record carrying a valid column value (0..2) goes to
// that column; anything else falls back to round-robin by its index in the
// input list modulo 3. This lets legacy records that pre-date manual
// ordering coexist with manually-placed ones without a migration step.
//
// Within each column, records are sorted by position ascending when both
// compared records have one; otherwise their relative input order is kept
// (stable sort with a no-op comparator).
func ProjectColumns(records []ImageRecord) [][]ImageRecord {
	columns := make([][]ImageRecord, constants.ColumnCount)
	for i := range columns {
		columns[i] = []ImageRecord{}
	}

	for index, record := range records {
		if record.Column != nil && *record.Column >= 0 && *record.Column < constants.ColumnCount {
			columns[*record.Column] = append(columns[*record.Column], record)
			continue
		}
		columns[index%constants.ColumnCount] = append(columns[index%constants.ColumnCount], record)
	}

	for _, column := range columns {
		sort.SliceStable(column, func(i, j int) bool {
			a, b := column[i], column[j]
			if a.Position != nil && b.Position != nil {
				return *a.Position < *b.Position
			}
			return false
		})
	}

	return columns
}
