package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/service"
	"github.com/labstack/echo/v4"
)

type ConversationHandler struct {
	convSvc service.ConversationService
	msgSvc  service.MessageService
}

func NewConversationHandler(convSvc service.ConversationService, msgSvc service.MessageService) *ConversationHandler {
	return &ConversationHandler{convSvc: convSvc, msgSvc: msgSvc}
}

type ContactResponse struct {
	IsOwner        bool   `json:"isOwner"`
	AdID           uint64 `json:"adId"`
	ConversationID uint64 `json:"conversationId,omitempty"`
	OwnerUID       string `json:"ownerUid,omitempty"`
	BuyerUID       string `json:"buyerUid,omitempty"`
}

type ConversationSummaryResponse struct {
	ConversationID  uint64 `json:"conversationId"`
	AdID            uint64 `json:"adId"`
	AdTitle         string `json:"adTitle"`
	CounterpartUID  string `json:"counterpartUid"`
	CounterpartName string `json:"counterpartName"`
	CreatedAt       string `json:"createdAt"`
	Unread          bool   `json:"unread"`
}

type ConversationResponse struct {
	ConversationID uint64 `json:"conversationId"`
	AdID           uint64 `json:"adId"`
	OwnerUID       string `json:"ownerUid"`
	BuyerUID       string `json:"buyerUid"`
	CreatedAt      string `json:"createdAt"`
}

type ConversationDetailResponse struct {
	ConversationResponse
	AdTitle         string            `json:"adTitle"`
	CounterpartUID  string            `json:"counterpartUid"`
	CounterpartName string            `json:"counterpartName"`
	Messages        []MessageResponse `json:"messages"`
	Watermark       *string           `json:"watermark"`
}

type MessageResponse struct {
	ID             uint64 `json:"id"`
	ConversationID uint64 `json:"conversationId"`
	SenderUID      string `json:"senderUid"`
	Content        string `json:"content"`
	SentAt         string `json:"sentAt"`
	UpdatedAt      string `json:"updatedAt"`
	Read           bool   `json:"read"`
}

type MessageSyncResponse struct {
	Messages  []MessageResponse `json:"messages"`
	AllIDs    []uint64          `json:"allIds"`
	Watermark *string           `json:"watermark"`
}

type MessageRequest struct {
	Content string `json:"content"`
}

func toConversationResponse(cv *model.Conversation) ConversationResponse {
	return ConversationResponse{
		ConversationID: cv.ID,
		AdID:           cv.AdID,
		OwnerUID:       cv.OwnerUID,
		BuyerUID:       cv.BuyerUID,
		CreatedAt:      cv.CreatedAt.Format(time.RFC3339Nano),
	}
}

func toMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderUID:      m.SenderUID,
		Content:        m.Content,
		SentAt:         m.SentAt.Format(time.RFC3339Nano),
		UpdatedAt:      m.UpdatedAt.Format(time.RFC3339Nano),
		Read:           m.IsRead,
	}
}

func formatWatermark(wm *time.Time) *string {
	if wm == nil {
		return nil
	}
	s := wm.Format(time.RFC3339Nano)
	return &s
}

// Contact starts (or resumes) the caller's conversation about an ad.
// The ad's own owner is not rejected: they get an owner signal and the
// client takes them to the per-ad conversation list instead.
func (h *ConversationHandler) Contact(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	adID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid ad id"))
	}
	cv, err := h.convSvc.StartOrGet(c.Request().Context(), adID, uid)
	if err != nil {
		if errors.Is(err, service.ErrIsOwner) {
			return c.JSON(http.StatusOK, ContactResponse{IsOwner: true, AdID: adID})
		}
		return writeServiceError(c, err, "failed to start conversation")
	}
	return c.JSON(http.StatusOK, ContactResponse{
		AdID:           cv.AdID,
		ConversationID: cv.ID,
		OwnerUID:       cv.OwnerUID,
		BuyerUID:       cv.BuyerUID,
	})
}

func (h *ConversationHandler) List(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	summaries, err := h.convSvc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err, "failed to fetch conversations")
	}
	resp := make([]ConversationSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, ConversationSummaryResponse{
			ConversationID:  s.Conversation.ID,
			AdID:            s.Conversation.AdID,
			AdTitle:         s.AdTitle,
			CounterpartUID:  s.CounterpartUID,
			CounterpartName: s.CounterpartName,
			CreatedAt:       s.Conversation.CreatedAt.Format(time.RFC3339Nano),
			Unread:          s.Unread,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Get opens the conversation: unread messages flip to read as a side
// effect before the snapshot is returned.
func (h *ConversationHandler) Get(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid conversation id"))
	}
	detail, err := h.convSvc.Detail(c.Request().Context(), convID, uid)
	if err != nil {
		return writeServiceError(c, err, "failed to fetch conversation")
	}
	resp := ConversationDetailResponse{
		ConversationResponse: toConversationResponse(&detail.Conversation),
		AdTitle:              detail.AdTitle,
		CounterpartUID:       detail.CounterpartUID,
		CounterpartName:      detail.CounterpartName,
		Messages:             make([]MessageResponse, 0, len(detail.Messages)),
		Watermark:            formatWatermark(detail.Watermark),
	}
	for i := range detail.Messages {
		resp.Messages = append(resp.Messages, toMessageResponse(&detail.Messages[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// ListByAd serves the owner's inbox for one ad. Non-owners get an empty
// list rather than an error.
func (h *ConversationHandler) ListByAd(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	adID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid ad id"))
	}
	convs, err := h.convSvc.ListByAd(c.Request().Context(), adID, uid)
	if err != nil {
		return writeServiceError(c, err, "failed to fetch conversations")
	}
	resp := make([]ConversationResponse, 0, len(convs))
	for i := range convs {
		resp = append(resp, toConversationResponse(&convs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ConversationHandler) CreateMessage(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid conversation id"))
	}
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.msgSvc.Append(c.Request().Context(), convID, uid, req.Content)
	if err != nil {
		return writeServiceError(c, err, "failed to send message")
	}
	return c.JSON(http.StatusOK, toMessageResponse(msg))
}

// SyncMessages answers polling clients. Without ?after it is a full
// snapshot; with it, only messages sent or edited past the watermark.
func (h *ConversationHandler) SyncMessages(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid conversation id"))
	}
	var after *time.Time
	if raw := c.QueryParam("after"); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid after timestamp"))
		}
		after = &ts
	}
	res, err := h.msgSvc.Sync(c.Request().Context(), convID, uid, after)
	if err != nil {
		return writeServiceError(c, err, "failed to sync messages")
	}
	resp := MessageSyncResponse{
		Messages:  make([]MessageResponse, 0, len(res.Messages)),
		AllIDs:    res.AllIDs,
		Watermark: formatWatermark(res.Watermark),
	}
	for i := range res.Messages {
		resp.Messages = append(resp.Messages, toMessageResponse(&res.Messages[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ConversationHandler) MarkRead(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid conversation id"))
	}
	updated, err := h.msgSvc.MarkRead(c.Request().Context(), convID, uid)
	if err != nil {
		return writeServiceError(c, err, "failed to mark read")
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": updated})
}
