package gallery

import (
	"context"
	"log/slog"
	"sync"
)

// Repository is the record store capability consumed by the service layer.
type Repository interface {
	List(ctx context.Context) ([]ImageRecord, error)
	Insert(ctx context.Context, filename, url string) (*ImageRecord, error)
	Remove(ctx context.Context, id string) (bool, error)
	ApplyOrder(ctx context.Context, updates []OrderUpdate) error
}

// Store implements [Repository] on top of one or two [Backend]s.
//
// # Failover policy
//
// The store is configured against exactly one primary backend at process
// start. When a fallback is present, reads that fail on the primary retry
// against the fallback before returning an empty set, and writes that fail
// on the primary retry once against the fallback before propagating
// failure. This keeps the gallery alive through transient remote-service
// misconfiguration, at the cost of order-of-writes ambiguity if the two
// backends diverge.
//
// # Concurrency
//
// Mutations are load-modify-save cycles over the whole document. The mutex
// serializes them within this process; across processes the backends stay
// last-write-wins, as neither exposes a transaction.
type Store struct {
	mu       sync.Mutex
	primary  Backend
	fallback Backend // nil in file-only deployments
	logger   *slog.Logger
}

// NewStore builds a Store. fallback may be nil.
func NewStore(primary, fallback Backend, logger *slog.Logger) *Store {
	return &Store{primary: primary, fallback: fallback, logger: logger}
}

// List returns every record, deterministically sorted (order ascending,
// then orderless by created_at descending).
//
// It never fails open to a partial set: if the primary and the fallback
// both fail, it returns an empty slice and logs the failure, keeping the
// public gallery rendering.
func (store *Store) List(ctx context.Context) ([]ImageRecord, error) {
	records, err := store.load(ctx)
	if err != nil {
		store.logger.Error("record_load_failed_all_backends", slog.Any("error", err))
		return []ImageRecord{}, nil
	}

	SortRecords(records)
	return records, nil
}

// Insert creates and persists a new record. New uploads always sort first:
// the new record gets order 0 and every existing record's effective order
// shifts up by one, preserving relative order among the old records.
func (store *Store) Insert(ctx context.Context, filename, url string) (*ImageRecord, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	records, err := store.load(ctx)
	if err != nil {
		return nil, err
	}
	SortRecords(records)

	for index := range records {
		current := index
		if records[index].Order != nil {
			current = *records[index].Order
		}
		records[index].Order = intPtr(current + 1)
	}

	record := ImageRecord{
		ID:        NewRecordID(),
		URL:       url,
		Filename:  filename,
		CreatedAt: nowUTC(),
		Order:     intPtr(0),
	}

	records = append([]ImageRecord{record}, records...)

	if err := store.save(ctx, records); err != nil {
		return nil, err
	}
	return &record, nil
}

// Remove deletes the record with the matching id. Removing an absent id
// reports found=false without touching the backend.
func (store *Store) Remove(ctx context.Context, id string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	records, err := store.load(ctx)
	if err != nil {
		return false, err
	}

	remaining := records[:0:0]
	found := false
	for _, record := range records {
		if record.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, record)
	}

	if !found {
		return false, nil
	}

	if err := store.save(ctx, remaining); err != nil {
		return false, err
	}
	return true, nil
}

// ApplyOrder overwrites order/column/position for every existing record
// whose id appears in updates. Records not mentioned are left untouched;
// unknown ids are silently ignored, since callers send full recomputed
// layouts and a stale id just means the record was deleted concurrently.
func (store *Store) ApplyOrder(ctx context.Context, updates []OrderUpdate) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	records, err := store.load(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]OrderUpdate, len(updates))
	for _, update := range updates {
		byID[update.ID] = update
	}

	for index := range records {
		update, ok := byID[records[index].ID]
		if !ok {
			continue
		}
		records[index].Order = intPtr(update.Order)
		if update.Column != nil {
			records[index].Column = intPtr(*update.Column)
		}
		if update.Position != nil {
			records[index].Position = intPtr(*update.Position)
		}
	}

	return store.save(ctx, records)
}

// load reads from the primary, retrying the fallback on failure.
func (store *Store) load(ctx context.Context) ([]ImageRecord, error) {
	records, err := store.primary.Load(ctx)
	if err == nil {
		return records, nil
	}

	if store.fallback == nil {
		return nil, err
	}

	store.logger.Warn("record_load_failover",
		slog.String("primary", store.primary.Name()),
		slog.String("fallback", store.fallback.Name()),
		slog.Any("error", err),
	)
	return store.fallback.Load(ctx)
}

// save writes to the primary, retrying the fallback once on failure.
func (store *Store) save(ctx context.Context, records []ImageRecord) error {
	err := store.primary.Save(ctx, records)
	if err == nil {
		return nil
	}

	if store.fallback == nil {
		return err
	}

	store.logger.Warn("record_save_failover",
		slog.String("primary", store.primary.Name()),
		slog.String("fallback", store.fallback.Name()),
		slog.Any("error", err),
	)
	return store.fallback.Save(ctx, records)
}
