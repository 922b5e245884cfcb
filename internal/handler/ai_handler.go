package handler

import (
	"net/http"
	"strconv"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/ai"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/service"
	"github.com/labstack/echo/v4"
)

type AIHandler struct {
	adSvc     service.AdService
	assistant *ai.Assistant
	apiKeySet bool
}

func NewAIHandler(adSvc service.AdService, assistant *ai.Assistant, apiKeySet bool) *AIHandler {
	return &AIHandler{adSvc: adSvc, assistant: assistant, apiKeySet: apiKeySet}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// AskAd lets a prospective buyer ask the assistant about an ad. Owners
// are pointed at their own ad text instead of burning model calls.
func (h *AIHandler) AskAd(c echo.Context) error {
	if !h.apiKeySet {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "assistant is not configured"))
	}
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	adID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid ad id"))
	}
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.Question == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "question is required"))
	}
	ad, err := h.adSvc.Get(c.Request().Context(), adID, uid)
	if err != nil {
		return writeServiceError(c, err, "failed to fetch ad")
	}
	if ad.OwnerUID == uid {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "cannot ask about own ad"))
	}
	answer, err := h.assistant.AskAd(c.Request().Context(), ad, req.Question)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "assistant failed"))
	}
	return c.JSON(http.StatusOK, askResponse{Answer: answer})
}
