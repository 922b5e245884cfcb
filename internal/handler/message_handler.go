package handler

import (
	"net/http"
	"strconv"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/service"
	"github.com/labstack/echo/v4"
)

type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type DeleteMessageResponse struct {
	Success bool   `json:"success"`
	ID      uint64 `json:"id"`
}

func (h *MessageHandler) Update(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	msgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid message id"))
	}
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.Edit(c.Request().Context(), msgID, uid, req.Content)
	if err != nil {
		return writeServiceError(c, err, "failed to update message")
	}
	return c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (h *MessageHandler) Delete(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	msgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid message id"))
	}
	if err := h.svc.Delete(c.Request().Context(), msgID, uid); err != nil {
		return writeServiceError(c, err, "failed to delete message")
	}
	return c.JSON(http.StatusOK, DeleteMessageResponse{Success: true, ID: msgID})
}
