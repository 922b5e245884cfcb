package handler

import (
	"net/http"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/storage"
	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	uploader *storage.Uploader
}

func NewUploadHandler(uploader *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

type UploadResponse struct {
	URL string `json:"url"`
}

var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload accepts a multipart "image" part and stores it in the bucket.
func (h *UploadHandler) Upload(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if h.uploader == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "image storage is not configured"))
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image file is required"))
	}
	contentType := fh.Header.Get("Content-Type")
	ext, ok := imageExts[contentType]
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unsupported image type"))
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "failed to read image"))
	}
	defer src.Close()

	url, err := h.uploader.UploadAdImage(c.Request().Context(), src, contentType, ext)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to store image"))
	}
	return c.JSON(http.StatusOK, UploadResponse{URL: url})
}
