package gallery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aperture/internal/gallery"
)

func ptr(v int) *int { return &v }

// record builds a minimal test record.
func record(id string, order *int) gallery.ImageRecord {
	return gallery.ImageRecord{
		ID:        id,
		URL:       "https://blobs.test/images/" + id + ".jpg",
		Filename:  id + ".jpg",
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Order:     order,
	}
}

// recordAt is record with an explicit creation time, for orderless sorting.
func recordAt(id string, createdAt time.Time) gallery.ImageRecord {
	r := record(id, nil)
	r.CreatedAt = createdAt
	return r
}

// ids extracts record IDs for compact assertions.
func ids(records []gallery.ImageRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

/*
TestSortRecords_OrderedBeforeOrderless verifies the two-tier sort rule:
every order-bearing record sorts before every orderless one, and the
orderless sort newest first.
*/
func TestSortRecords_OrderedBeforeOrderless(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	records := []gallery.ImageRecord{
		recordAt("old", base),
		record("second", ptr(5)),
		recordAt("new", base.Add(48*time.Hour)),
		record("first", ptr(0)),
		recordAt("mid", base.Add(24*time.Hour)),
	}

	gallery.SortRecords(records)

	assert.Equal(t, []string{"first", "second", "new", "mid", "old"}, ids(records))
}

/*
TestSortRecords_SparseOrders verifies that only relative order matters —
orders are not required to be contiguous.
*/
func TestSortRecords_SparseOrders(t *testing.T) {
	records := []gallery.ImageRecord{
		record("c", ptr(2003)),
		record("a", ptr(0)),
		record("b", ptr(1001)),
	}

	gallery.SortRecords(records)

	assert.Equal(t, []string{"a", "b", "c"}, ids(records))
}

/*
TestSortRecords_Stable verifies that repeated sorts with no intervening
writes are deterministic, including for records with equal keys.
*/
func TestSortRecords_Stable(t *testing.T) {
	tie := time.Date(2026, 2, 2, 2, 0, 0, 0, time.UTC)

	records := []gallery.ImageRecord{
		record("dup1", ptr(3)),
		record("dup2", ptr(3)),
		recordAt("same1", tie),
		recordAt("same2", tie),
	}

	gallery.SortRecords(records)
	first := ids(records)

	gallery.SortRecords(records)
	second := ids(records)

	assert.Equal(t, first, second)
	// Equal keys preserve relative input order.
	assert.Equal(t, []string{"dup1", "dup2", "same1", "same2"}, first)
}

/*
TestMoveRecord_SameColumn exercises the drop-position splice rules within
one column.
*/
func TestMoveRecord_SameColumn(t *testing.T) {
	tests := []struct {
		name        string
		moveID      string
		targetIndex int
		want        []string
	}{
		{"downward_lands_after_target", "A", 2, []string{"B", "C", "A", "D"}},
		{"upward_lands_after_target", "D", 1, []string{"A", "B", "D", "C"}},
		{"downward_to_end", "A", 3, []string{"B", "C", "D", "A"}},
		{"upward_to_top", "C", 0, []string{"A", "C", "B", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns := [][]gallery.ImageRecord{
				{record("A", ptr(0)), record("B", ptr(1)), record("C", ptr(2)), record("D", ptr(3))},
				{},
				{},
			}

			err := gallery.MoveRecord(columns, tt.moveID, 0, tt.targetIndex)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ids(columns[0]))
			assert.Empty(t, columns[1])
			assert.Empty(t, columns[2])
		})
	}
}

/*
TestMoveRecord_SameColumn_TopToIndexTwo pins the canonical permutation:
[A,B,C,D] with A dropped on index 2 yields [B,C,A,D].
*/
func TestMoveRecord_SameColumn_TopToIndexTwo(t *testing.T) {
	columns := [][]gallery.ImageRecord{
		{record("A", ptr(0)), record("B", ptr(1)), record("C", ptr(2)), record("D", ptr(3))},
		{},
		{},
	}

	require.NoError(t, gallery.MoveRecord(columns, "A", 0, 2))
	assert.Equal(t, []string{"B", "C", "A", "D"}, ids(columns[0]))
}

/*
TestMoveRecord_CrossColumn verifies that cross-column moves always land
immediately after the target item in the destination column.
*/
func TestMoveRecord_CrossColumn(t *testing.T) {
	columns := [][]gallery.ImageRecord{
		{record("A", ptr(0)), record("B", ptr(1))},
		{record("X", ptr(1000)), record("Y", ptr(1001))},
		{},
	}

	err := gallery.MoveRecord(columns, "A", 1, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, ids(columns[0]))
	assert.Equal(t, []string{"X", "A", "Y"}, ids(columns[1]))
}

/*
TestMoveRecord_CrossColumn_Empty verifies the clamp when dropping into an
empty column, where no target item exists.
*/
func TestMoveRecord_CrossColumn_Empty(t *testing.T) {
	columns := [][]gallery.ImageRecord{
		{record("A", ptr(0))},
		{},
		{},
	}

	err := gallery.MoveRecord(columns, "A", 2, 0)
	require.NoError(t, err)

	assert.Empty(t, columns[0])
	assert.Equal(t, []string{"A"}, ids(columns[2]))
}

/*
TestMoveRecord_Errors covers unknown records and out-of-range columns.
*/
func TestMoveRecord_Errors(t *testing.T) {
	columns := [][]gallery.ImageRecord{
		{record("A", ptr(0))},
		{},
		{},
	}

	assert.Error(t, gallery.MoveRecord(columns, "missing", 0, 0))
	assert.Error(t, gallery.MoveRecord(columns, "A", 3, 0))
	assert.Error(t, gallery.MoveRecord(columns, "A", -1, 0))
}

/*
TestFlattenLayout verifies the sparse numbering scheme: order is
column*1000 + position, and every record carries its column/position.
*/
func TestFlattenLayout(t *testing.T) {
	columns := [][]gallery.ImageRecord{
		{record("a0", nil), record("a1", nil)},
		{record("b0", nil)},
		{record("c0", nil), record("c1", nil)},
	}

	updates := gallery.FlattenLayout(columns)
	require.Len(t, updates, 5)

	byID := map[string]gallery.OrderUpdate{}
	for _, u := range updates {
		byID[u.ID] = u
	}

	assert.Equal(t, 0, byID["a0"].Order)
	assert.Equal(t, 1, byID["a1"].Order)
	assert.Equal(t, 1000, byID["b0"].Order)
	assert.Equal(t, 2000, byID["c0"].Order)
	assert.Equal(t, 2001, byID["c1"].Order)

	require.NotNil(t, byID["c1"].Column)
	require.NotNil(t, byID["c1"].Position)
	assert.Equal(t, 2, *byID["c1"].Column)
	assert.Equal(t, 1, *byID["c1"].Position)
}
