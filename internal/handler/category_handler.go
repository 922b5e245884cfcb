package handler

import (
	"net/http"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	svc service.AdService
}

func NewCategoryHandler(svc service.AdService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.svc.Categories(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, "failed to fetch categories")
	}
	return c.JSON(http.StatusOK, cats)
}
