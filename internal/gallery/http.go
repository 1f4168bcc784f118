package gallery

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aperture/internal/platform/apperr"
	"aperture/internal/platform/constants"
	"aperture/internal/platform/middleware"
	requestutil "aperture/internal/platform/request"
	"aperture/internal/platform/respond"
	"aperture/internal/platform/validate"
)

// maxUploadBodyBytes bounds the raw request body for uploads: base64
// inflates payloads by 4/3, plus JSON envelope slack. The decoded ceiling
// in the service is the authoritative check.
const maxUploadBodyBytes = constants.MaxUploadBytes*4/3 + 64*1024

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the gallery endpoints.
//
// The read endpoint is public; every mutation requires an authenticated
// admin session, checked here independently of any page-level gate.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/images", handler.listImages)

	// Admin only
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireSession)

		admin.Post("/upload", handler.upload)
		admin.Delete("/delete", handler.deleteImage)
		admin.Post("/reorder", handler.reorder)
		admin.Post("/move", handler.move)
	})
}

type imagesResponse struct {
	Images []ImageRecord `json:"images"`
}

func (handler *Handler) listImages(writer http.ResponseWriter, request *http.Request) {
	images, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, imagesResponse{Images: images})
}

type uploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	ID      string `json:"id,omitempty"`
	Warning string `json:"warning,omitempty"`
}

func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxUploadBodyBytes)

	var input uploadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Filename == "" || input.Data == "" {
		respond.Error(writer, request, apperr.ValidationError("No file provided"))
		return
	}

	data, err := base64.StdEncoding.DecodeString(input.Data)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid image data"))
		return
	}

	result, err := handler.service.Upload(request.Context(), UploadInput{
		Filename:    input.Filename,
		ContentType: input.ContentType,
		Data:        data,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, uploadResponse{
		Success: true,
		URL:     result.URL,
		ID:      result.ID,
		Warning: result.Warning,
	})
}

type deleteRequest struct {
	ID string `json:"id"`
}

func (handler *Handler) deleteImage(writer http.ResponseWriter, request *http.Request) {
	var input deleteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), input.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Success(writer)
}

type reorderRequest struct {
	NewOrder *[]OrderUpdate `json:"newOrder"`
}

func (handler *Handler) reorder(writer http.ResponseWriter, request *http.Request) {
	var input reorderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The payload must carry an array, even an empty one.
	if input.NewOrder == nil {
		respond.Error(writer, request, validate.RequiredError("newOrder", "Must be an array"))
		return
	}

	if err := handler.service.Reorder(request.Context(), *input.NewOrder); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Success(writer)
}

type moveRequest struct {
	ID     string `json:"id"`
	Column int    `json:"column"`
	Index  int    `json:"index"`
}

func (handler *Handler) move(writer http.ResponseWriter, request *http.Request) {
	var input moveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Move(request.Context(), input.ID, input.Column, input.Index); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Success(writer)
}
