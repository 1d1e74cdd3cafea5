package handler

import (
	"errors"
	"net/http"

	"fonda-catalogo/internal/delivery/dto"
	"fonda-catalogo/internal/service"
	"fonda-catalogo/pkg/response"
)

// uploadMemoryLimit is how much of a multipart body is buffered in memory
// before spilling to disk.
const uploadMemoryLimit = 10 << 20

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /uploads: it accepts a multipart image file and returns
// the opaque filename under which it was stored.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		response.BadRequest(w, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	filename, err := h.uploadService.Store(file, header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge), errors.Is(err, service.ErrUnsupportedImageType):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "failed to store image")
		}
		return
	}

	response.JSON(w, http.StatusCreated, dto.UploadResult{Success: true, Filename: filename})
}
