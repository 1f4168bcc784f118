package gallery

import (
	"sort"

	"aperture/internal/platform/apperr"
	"aperture/internal/platform/constants"
)

// # Sort Rule

// SortRecords orders records for display: order ascending when present,
// records without an order after all records that have one, and among the
// orderless, created_at descending (newest first).
//
// The sort is stable, so repeated reads without intervening writes are
// deterministic.
func SortRecords(records []ImageRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]

		switch {
		case a.Order != nil && b.Order != nil:
			return *a.Order < *b.Order
		case a.Order != nil:
			return true
		case b.Order != nil:
			return false
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

// # Reorder Reconciliation

// MoveRecord applies a single drag-and-drop move to a three-column layout,
// in place. targetIndex addresses the item currently occupying the drop
// slot in the destination column, using pre-move indices.
//
// Semantics (matching direct-manipulation drop behavior):
//   - same column, moving down: the moved item lands after the target item;
//   - same column, moving up: the moved item lands after the target item;
//   - cross column: the moved item lands after the target item;
//
// all expressed as splices on the post-removal column, which is where the
// up/down asymmetry comes from.
func MoveRecord(columns [][]ImageRecord, id string, targetColumn, targetIndex int) error {
	if targetColumn < 0 || targetColumn >= len(columns) {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "column",
			Message: "Must be a column index between 0 and 2",
		})
	}

	sourceColumn, sourceIndex := -1, -1
	for colIdx, col := range columns {
		for posIdx, record := range col {
			if record.ID == id {
				sourceColumn, sourceIndex = colIdx, posIdx
			}
		}
	}
	if sourceColumn == -1 {
		return apperr.NotFound("Image")
	}

	// Remove from the source column.
	moved := columns[sourceColumn][sourceIndex]
	columns[sourceColumn] = append(
		columns[sourceColumn][:sourceIndex],
		columns[sourceColumn][sourceIndex+1:]...,
	)

	// Compute the insertion slot on the post-removal destination column.
	insertAt := 0
	switch {
	case sourceColumn == targetColumn && sourceIndex < targetIndex:
		// Moving down within a column.
		insertAt = targetIndex
	case sourceColumn == targetColumn:
		// Moving up within a column.
		insertAt = targetIndex + 1
	default:
		// Cross-column: always after the target item.
		insertAt = targetIndex + 1
	}

	destination := columns[targetColumn]
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(destination) {
		insertAt = len(destination)
	}

	destination = append(destination, ImageRecord{})
	copy(destination[insertAt+1:], destination[insertAt:])
	destination[insertAt] = moved
	columns[targetColumn] = destination

	return nil
}

// FlattenLayout converts a full three-column layout into the order updates
// persisted by the store.
//
// order = column*1000 + positionWithinColumn: the sparse numbering reserves
// 1000 slots per column, so a column holds up to 999 images without
// colliding with the next column's range and columns can be resequenced
// independently. Every record is rewritten on every reorder; collections
// are small, so correctness wins over a minimal delta.
func FlattenLayout(columns [][]ImageRecord) []OrderUpdate {
	var updates []OrderUpdate
	for colIdx, col := range columns {
		for posIdx, record := range col {
			updates = append(updates, OrderUpdate{
				ID:       record.ID,
				Order:    colIdx*constants.ColumnOrderStride + posIdx,
				Column:   intPtr(colIdx),
				Position: intPtr(posIdx),
			})
		}
	}
	return updates
}
