package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/model"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/repository"
	"github.com/Kumaraguhan-Testpress/SalesVenue-MP/internal/service"
	"github.com/labstack/echo/v4"
)

const eventDateLayout = "2006-01-02"

type AdHandler struct {
	svc service.AdService
}

func NewAdHandler(svc service.AdService) *AdHandler {
	return &AdHandler{svc: svc}
}

type AdResponse struct {
	ID                 uint64  `json:"id"`
	OwnerUID           string  `json:"ownerUid"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Price              *uint   `json:"price"`
	Location           string  `json:"location"`
	ContactInfo        *string `json:"contactInfo,omitempty"`
	CategoryID         uint64  `json:"categoryId"`
	AdType             string  `json:"adType"`
	ImageURL           *string `json:"imageUrl,omitempty"`
	EventDate          *string `json:"eventDate,omitempty"`
	IsActive           bool    `json:"isActive"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

type AdListResponse struct {
	Ads   []AdResponse `json:"ads"`
	Total int64        `json:"total"`
}

type AdRequest struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Price              *uint   `json:"price"`
	Location           string  `json:"location"`
	ContactInfo        string  `json:"contactInfo"`
	ContactInfoVisible bool    `json:"contactInfoVisible"`
	CategoryID         uint64  `json:"categoryId"`
	AdType             string  `json:"adType"`
	ImageURL           *string `json:"imageUrl"`
	EventDate          *string `json:"eventDate"`
	IsActive           *bool   `json:"isActive"`
}

// toAdResponse exposes contact info only to the owner or when the ad
// marks it public.
func toAdResponse(ad *model.Ad, viewerUID string) AdResponse {
	resp := AdResponse{
		ID:          ad.ID,
		OwnerUID:    ad.OwnerUID,
		Title:       ad.Title,
		Description: ad.Description,
		Price:       ad.Price,
		Location:    ad.Location,
		CategoryID:  ad.CategoryID,
		AdType:      string(ad.AdType),
		ImageURL:    ad.ImageURL,
		IsActive:    ad.IsActive,
		CreatedAt:   ad.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   ad.UpdatedAt.Format(time.RFC3339),
	}
	if ad.ContactVisibleTo(viewerUID) && ad.ContactInfo != "" {
		ci := ad.ContactInfo
		resp.ContactInfo = &ci
	}
	if ad.EventDate != nil {
		d := ad.EventDate.Format(eventDateLayout)
		resp.EventDate = &d
	}
	return resp
}

func (r *AdRequest) toInput() (service.AdInput, error) {
	in := service.AdInput{
		Title:              r.Title,
		Description:        r.Description,
		Location:           r.Location,
		ContactInfo:        r.ContactInfo,
		ContactInfoVisible: r.ContactInfoVisible,
		Price:              r.Price,
		CategoryID:         r.CategoryID,
		AdType:             model.AdType(r.AdType),
		ImageURL:           r.ImageURL,
		IsActive:           r.IsActive,
	}
	if r.EventDate != nil && *r.EventDate != "" {
		d, err := time.Parse(eventDateLayout, *r.EventDate)
		if err != nil {
			return in, err
		}
		in.EventDate = &d
	}
	return in, nil
}

func (h *AdHandler) Create(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req AdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid event date"))
	}
	ad, err := h.svc.Create(c.Request().Context(), uid, in)
	if err != nil {
		return writeServiceError(c, err, "failed to create ad")
	}
	return c.JSON(http.StatusCreated, toAdResponse(ad, uid))
}

func (h *AdHandler) Update(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid ad id"))
	}
	var req AdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid event date"))
	}
	ad, err := h.svc.Update(c.Request().Context(), id, uid, in)
	if err != nil {
		return writeServiceError(c, err, "failed to update ad")
	}
	return c.JSON(http.StatusOK, toAdResponse(ad, uid))
}

func (h *AdHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid ad id"))
	}
	uid := currentUID(c)
	ad, err := h.svc.Get(c.Request().Context(), id, uid)
	if err != nil {
		return writeServiceError(c, err, "failed to fetch ad")
	}
	return c.JSON(http.StatusOK, toAdResponse(ad, uid))
}

func (h *AdHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	f := repository.AdFilter{
		Keyword:  c.QueryParam("q"),
		Location: c.QueryParam("location"),
		AdType:   model.AdType(c.QueryParam("type")),
	}
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid category"))
		}
		f.CategoryID = id
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		p, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid minPrice"))
		}
		v := uint(p)
		f.MinPrice = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		p, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid maxPrice"))
		}
		v := uint(p)
		f.MaxPrice = &v
	}
	if raw := c.QueryParam("eventDate"); raw != "" {
		d, err := time.Parse(eventDateLayout, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid eventDate"))
		}
		f.EventDate = &d
	}
	if f.AdType != "" && !f.AdType.Valid() {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid type"))
	}

	uid := currentUID(c)
	ads, total, err := h.svc.List(c.Request().Context(), f, limit, offset)
	if err != nil {
		return writeServiceError(c, err, "failed to fetch ads")
	}
	resp := AdListResponse{
		Ads:   make([]AdResponse, 0, len(ads)),
		Total: total,
	}
	for i := range ads {
		resp.Ads = append(resp.Ads, toAdResponse(&ads[i], uid))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdHandler) ListMine(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	ads, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err, "failed to fetch ads")
	}
	resp := make([]AdResponse, 0, len(ads))
	for i := range ads {
		resp = append(resp, toAdResponse(&ads[i], uid))
	}
	return c.JSON(http.StatusOK, resp)
}
