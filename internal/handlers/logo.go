package handlers

import (
	"errors"
	"net/http"

	"github.com/rajatkhanna/invoice-api/internal/httpx"
	"github.com/rajatkhanna/invoice-api/internal/logos"
)

type LogoHandler struct {
	Store *logos.Store
}

func NewLogoHandler(store *logos.Store) *LogoHandler {
	return &LogoHandler{Store: store}
}

// Upload: POST /logos/upload – multipart form with a "logo" file field.
func (h *LogoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(logos.MaxSize); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart_form", nil)
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "no_logo_file_provided", nil)
		return
	}
	defer file.Close()

	logo, err := h.Store.Save(header.Filename, file)
	switch {
	case errors.Is(err, logos.ErrUnsupportedType):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_file_type", map[string]string{"allowed": "png, jpg, jpeg, gif, svg"})
		return
	case errors.Is(err, logos.ErrTooLarge):
		httpx.JSONError(w, http.StatusBadRequest, "file_too_large", map[string]string{"max_size": "5MB"})
		return
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_upload_logo", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"logo": map[string]any{
			"filename":      logo.Filename,
			"original_name": logo.OriginalName,
			"url":           logo.URL,
			"size":          header.Size,
		},
	})
}

// Serve: GET /logos/{filename}
func (h *LogoHandler) Serve(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.Path(r.PathValue("filename"))
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "logo_not_found", nil)
		return
	}
	http.ServeFile(w, r, p)
}

// Delete: DELETE /logos/{filename}
func (h *LogoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Store.Delete(r.PathValue("filename"))
	if errors.Is(err, logos.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "logo_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_logo", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Logo deleted successfully"})
}

// List: GET /logos
func (h *LogoHandler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Store.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_logos", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"logos":   infos,
		"count":   len(infos),
	})
}
