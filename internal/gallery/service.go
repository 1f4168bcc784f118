package gallery

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"aperture/internal/platform/apperr"
	"aperture/internal/platform/blob"
	"aperture/internal/platform/constants"
	"aperture/internal/platform/validate"
	"aperture/pkg/slug"
)

// Service coordinates the record store, the ordering reconciler, and the
// blob store behind the admin mutation API.
type Service struct {
	repo   Repository
	blobs  blob.Store
	logger *slog.Logger
}

func NewService(repo Repository, blobs blob.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		blobs:  blobs,
		logger: logger,
	}
}

// UploadInput is a decoded upload request: the original filename plus the
// raw (already base64-decoded) image bytes.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadResult reports a finished upload. Warning is set when the asset
// reached the blob store but the metadata record could not be persisted —
// the upload still counts as a success so the asset is never orphaned
// silently.
type UploadResult struct {
	ID      string
	URL     string
	Warning string
}

// List returns all records in display order.
func (service *Service) List(context context.Context) ([]ImageRecord, error) {
	return service.repo.List(context)
}

// Columns returns the three-column masonry projection of the gallery.
func (service *Service) Columns(context context.Context) ([][]ImageRecord, error) {
	records, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}
	return ProjectColumns(records), nil
}

// Upload validates the payload, stores the bytes in the blob store, and
// persists the metadata record.
//
// The size ceiling is enforced here, before any network call to the blob
// store. Blob failure aborts the operation; a metadata failure after a
// successful blob write degrades to success-with-warning instead.
func (service *Service) Upload(context context.Context, input UploadInput) (*UploadResult, error) {
	validator := &validate.Validator{}
	validator.Required("filename", input.Filename).MaxLen("filename", input.Filename, 255)
	validator.Custom("data", len(input.Data) == 0, "No file provided")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if len(input.Data) > constants.MaxUploadBytes {
		return nil, apperr.PayloadTooLarge("File too large. Maximum size is 10MB.")
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectName := objectNameFor(input.Filename)
	url, err := service.blobs.Upload(context, objectName, bytes.NewReader(input.Data), int64(len(input.Data)), contentType)
	if err != nil {
		return nil, apperr.Upstream("Upload failed", err)
	}

	record, err := service.repo.Insert(context, input.Filename, url)
	if err != nil {
		service.logger.Error("upload_metadata_persist_failed",
			slog.String("url", url),
			slog.Any("error", err),
		)
		return &UploadResult{
			URL:     url,
			Warning: "Image uploaded but metadata save failed",
		}, nil
	}

	service.logger.Info("image_uploaded",
		slog.String("image_id", record.ID),
		slog.String("filename", record.Filename),
	)
	return &UploadResult{ID: record.ID, URL: record.URL}, nil
}

// Delete removes a record and, best-effort, its blob asset. Asset-store
// failure is logged and never blocks metadata cleanup.
func (service *Service) Delete(context context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return validate.RequiredError("id", "This field is required")
	}

	records, err := service.repo.List(context)
	if err != nil {
		return err
	}

	var target *ImageRecord
	for index := range records {
		if records[index].ID == id {
			target = &records[index]
			break
		}
	}
	if target == nil {
		return apperr.NotFound("Image")
	}

	if err := service.blobs.Remove(context, target.URL); err != nil {
		service.logger.Warn("asset_delete_failed",
			slog.String("image_id", id),
			slog.String("url", target.URL),
			slog.Any("error", err),
		)
	}

	removed, err := service.repo.Remove(context, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("Image")
	}

	service.logger.Info("image_deleted", slog.String("image_id", id))
	return nil
}

// Reorder merges a client-computed layout into the store.
func (service *Service) Reorder(context context.Context, updates []OrderUpdate) error {
	for _, update := range updates {
		if strings.TrimSpace(update.ID) == "" {
			return validate.RequiredError("newOrder", "Every entry requires an id")
		}
	}
	return service.repo.ApplyOrder(context, updates)
}

// Move performs one drag-and-drop move server-side: project the current
// layout, splice the record into its new slot, flatten with the sparse
// per-column numbering, and persist the whole recomputed order.
func (service *Service) Move(context context.Context, id string, targetColumn, targetIndex int) error {
	validator := &validate.Validator{}
	validator.Required("id", id)
	validator.Range("column", targetColumn, 0, constants.ColumnCount-1)
	validator.Custom("index", targetIndex < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return err
	}

	records, err := service.repo.List(context)
	if err != nil {
		return err
	}

	columns := ProjectColumns(records)
	if err := MoveRecord(columns, id, targetColumn, targetIndex); err != nil {
		return err
	}

	return service.repo.ApplyOrder(context, FlattenLayout(columns))
}

// objectNameFor derives a unique, URL-safe object key from an upload
// filename, keeping the extension recognizable.
func objectNameFor(filename string) string {
	extension := strings.ToLower(filepath.Ext(filename))
	base := slug.From(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if base == "" {
		base = "image"
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("portfolio/%s%s", base, extension)
	}
	return fmt.Sprintf("portfolio/%s-%s%s", base, id.String()[:8], extension)
}
