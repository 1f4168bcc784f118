package gallery

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImageRecord is the metadata for one portfolio image. The binary asset
// itself lives in the blob store and is referenced only by URL.
//
// Order, Column, and Position are optional: records created before manual
// ordering existed carry none of them and are placed by the projector's
// fallback rules instead.
type ImageRecord struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`

	// Order is the total-order sort key; lower sorts earlier. Values are
	// not required to be contiguous, only relative order matters.
	Order *int `json:"order,omitempty"`

	// Column is the last-known masonry column assignment (0..2).
	Column *int `json:"column,omitempty"`

	// Position is the index within that column.
	Position *int `json:"position,omitempty"`
}

// OrderUpdate is one entry of a reorder payload: the new order/column/position
// for a single record.
type OrderUpdate struct {
	ID       string `json:"id"`
	Order    int    `json:"order"`
	Column   *int   `json:"column,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// NewRecordID generates a unique record identifier.
//
// Falls back to a time+random scheme if UUID generation is unavailable,
// matching the id shape legacy records may carry.
func NewRecordID() string {
	id, err := uuid.NewRandom()
	if err == nil {
		return id.String()
	}

	buf := make([]byte, 8)
	if _, rerr := rand.Read(buf); rerr != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

func intPtr(v int) *int { return &v }

// nowUTC returns the creation timestamp for new records. UTC keeps the
// persisted document portable between backends and deployments.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
