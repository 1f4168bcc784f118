package gallery

import "context"

// Backend is the durable home of the whole record set: one JSON document,
// loaded and rewritten wholesale on every mutation. Both variants (remote
// key-value service, local file) expose the same contract so the store can
// fail over between them.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Load returns every stored record, in persisted (unsorted) order.
	// A backend with no document yet returns an empty slice, not an error.
	Load(ctx context.Context) ([]ImageRecord, error)

	// Save replaces the stored document with the given record set.
	Save(ctx context.Context, records []ImageRecord) error
}
