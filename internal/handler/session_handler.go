package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/provider/googleroutes"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/jengzang/tour-planner-go/pkg/response"
)

// SessionHandler exposes planning sessions over HTTP. Every route below /sessions/:id
// runs one planner operation against that session.
type SessionHandler struct {
	sessions *service.SessionService
	planner  *service.PlannerService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService, planner *service.PlannerService) *SessionHandler {
	return &SessionHandler{sessions: sessions, planner: planner}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.sessions.Create()
	response.Created(c, sess.Snapshot())
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	snap, err := h.planner.Snapshot(c.Param("id"))
	if err != nil {
		fail(c, "Failed to get session", err)
		return
	}
	response.Success(c, snap)
}

// Delete handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		fail(c, "Failed to delete session", err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id")})
}

// Summary handles GET /api/v1/sessions/:id/summary
func (h *SessionHandler) Summary(c *gin.Context) {
	sum, err := h.planner.Summary(c.Param("id"))
	if err != nil {
		fail(c, "Failed to summarize session", err)
		return
	}
	response.Success(c, sum)
}

// AddDay handles POST /api/v1/sessions/:id/days
func (h *SessionHandler) AddDay(c *gin.Context) {
	day, err := h.planner.AddDay(c.Param("id"))
	if err != nil {
		fail(c, "Failed to add day", err)
		return
	}
	response.Created(c, day)
}

// SelectDay handles PUT /api/v1/sessions/:id/days/current
func (h *SessionHandler) SelectDay(c *gin.Context) {
	var req struct {
		Day int `json:"day" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	if err := h.planner.SelectDay(c.Param("id"), req.Day); err != nil {
		fail(c, "Failed to select day", err)
		return
	}
	h.respondSnapshot(c)
}

// SetPending handles PUT /api/v1/sessions/:id/pending
func (h *SessionHandler) SetPending(c *gin.Context) {
	var loc planner.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	if err := h.planner.SetPending(c.Param("id"), loc); err != nil {
		fail(c, "Failed to set pending place", err)
		return
	}
	response.Success(c, loc)
}

// ClearPending handles DELETE /api/v1/sessions/:id/pending
func (h *SessionHandler) ClearPending(c *gin.Context) {
	if err := h.planner.ClearPending(c.Param("id")); err != nil {
		fail(c, "Failed to clear pending place", err)
		return
	}
	h.respondSnapshot(c)
}

// LookupPending handles POST /api/v1/sessions/:id/pending/lookup
func (h *SessionHandler) LookupPending(c *gin.Context) {
	var req service.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	res, err := h.planner.LookupPending(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, "Failed to look up place", err)
		return
	}
	response.Success(c, res)
}

// PendingDraft handles POST /api/v1/sessions/:id/pending/draft
func (h *SessionHandler) PendingDraft(c *gin.Context) {
	d, err := h.planner.PendingDraft(c.Param("id"))
	if err != nil {
		fail(c, "Failed to start draft", err)
		return
	}
	response.Success(c, d)
}

// AddPlace handles POST /api/v1/sessions/:id/days/:day/places
func (h *SessionHandler) AddPlace(c *gin.Context) {
	day, ok := paramInt(c, "day")
	if !ok {
		return
	}

	var d planner.PlaceDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	entry, err := h.planner.AddPlace(c.Param("id"), day, d)
	if err != nil {
		fail(c, "Failed to add place", err)
		return
	}
	response.Created(c, entry)
}

// EditPlace handles PUT /api/v1/sessions/:id/days/:day/places/:placeId
func (h *SessionHandler) EditPlace(c *gin.Context) {
	day, ok := paramInt(c, "day")
	if !ok {
		return
	}
	placeID, ok := paramInt64(c, "placeId")
	if !ok {
		return
	}

	var d planner.PlaceDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	entry, err := h.planner.EditPlace(c.Param("id"), day, placeID, d)
	if err != nil {
		fail(c, "Failed to edit place", err)
		return
	}
	response.Success(c, entry)
}

// RemovePlace handles DELETE /api/v1/sessions/:id/days/:day/places/:placeId
func (h *SessionHandler) RemovePlace(c *gin.Context) {
	day, ok := paramInt(c, "day")
	if !ok {
		return
	}
	placeID, ok := paramInt64(c, "placeId")
	if !ok {
		return
	}

	if err := h.planner.RemovePlace(c.Param("id"), day, placeID); err != nil {
		fail(c, "Failed to remove place", err)
		return
	}
	h.respondSnapshot(c)
}

// TravelPlaces handles GET /api/v1/sessions/:id/places
func (h *SessionHandler) TravelPlaces(c *gin.Context) {
	places, err := h.planner.TravelPlaces(c.Param("id"))
	if err != nil {
		fail(c, "Failed to list places", err)
		return
	}
	response.Success(c, places)
}

// RemoveTravelPlace handles DELETE /api/v1/sessions/:id/places/:index
func (h *SessionHandler) RemoveTravelPlace(c *gin.Context) {
	index, ok := paramInt(c, "index")
	if !ok {
		return
	}

	if err := h.planner.RemoveTravelPlace(c.Param("id"), index); err != nil {
		fail(c, "Failed to remove place", err)
		return
	}
	h.TravelPlaces(c)
}

// ClearTravelPlaces handles DELETE /api/v1/sessions/:id/places
func (h *SessionHandler) ClearTravelPlaces(c *gin.Context) {
	if err := h.planner.ClearTravelPlaces(c.Param("id")); err != nil {
		fail(c, "Failed to clear places", err)
		return
	}
	h.TravelPlaces(c)
}

// LookupEndpoint handles POST /api/v1/sessions/:id/endpoints/lookup
func (h *SessionHandler) LookupEndpoint(c *gin.Context) {
	var req service.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	res, err := h.planner.LookupEndpoint(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, "Failed to look up endpoint", err)
		return
	}
	response.Success(c, res)
}

// SetMode handles PUT /api/v1/sessions/:id/endpoints/mode
func (h *SessionHandler) SetMode(c *gin.Context) {
	var req struct {
		Mode string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	mode, ok := planner.ParseSelectionMode(req.Mode)
	if !ok {
		response.BadRequest(c, "mode must be origin or destination", nil)
		return
	}

	if err := h.planner.SetMode(c.Param("id"), mode); err != nil {
		fail(c, "Failed to set mode", err)
		return
	}
	h.respondSnapshot(c)
}

// SwapEndpoints handles POST /api/v1/sessions/:id/endpoints/swap
func (h *SessionHandler) SwapEndpoints(c *gin.Context) {
	if err := h.planner.SwapEndpoints(c.Param("id")); err != nil {
		fail(c, "Failed to swap endpoints", err)
		return
	}
	h.respondSnapshot(c)
}

// ResetEndpoints handles DELETE /api/v1/sessions/:id/endpoints
func (h *SessionHandler) ResetEndpoints(c *gin.Context) {
	if err := h.planner.ResetEndpoints(c.Param("id")); err != nil {
		fail(c, "Failed to reset endpoints", err)
		return
	}
	h.respondSnapshot(c)
}

type routeSearchRequest struct {
	DepartureTime *time.Time `json:"departureTime"`
	ArrivalTime   *time.Time `json:"arrivalTime"`
	Modes         []string   `json:"modes"`
	Preference    string     `json:"preference"`
}

func (r routeSearchRequest) toProvider() (googleroutes.Request, error) {
	if r.DepartureTime != nil && r.ArrivalTime != nil {
		return googleroutes.Request{}, fmt.Errorf("%w: set departureTime or arrivalTime, not both", service.ErrInvalidInput)
	}
	switch r.Preference {
	case "", googleroutes.PreferenceUnspecified, googleroutes.PreferenceLessWalking, googleroutes.PreferenceFewerTransfers:
	default:
		return googleroutes.Request{}, fmt.Errorf("%w: unknown preference %q", service.ErrInvalidInput, r.Preference)
	}
	return googleroutes.Request{
		Departure:  r.DepartureTime,
		Arrival:    r.ArrivalTime,
		Modes:      r.Modes,
		Preference: r.Preference,
	}, nil
}

// SearchRoutes handles POST /api/v1/sessions/:id/routes/search
func (h *SessionHandler) SearchRoutes(c *gin.Context) {
	var body routeSearchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, "Invalid request body", err)
			return
		}
	}

	req, err := body.toProvider()
	if err != nil {
		fail(c, "Invalid route search", err)
		return
	}

	candidates, applied, err := h.planner.SearchRoutes(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, "Failed to search routes", err)
		return
	}
	response.Success(c, gin.H{"candidates": candidates, "applied": applied})
}

// SelectRoute handles PUT /api/v1/sessions/:id/route
func (h *SessionHandler) SelectRoute(c *gin.Context) {
	var req struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	sel, err := h.planner.SelectRoute(c.Param("id"), *req.Index)
	if err != nil {
		fail(c, "Failed to select route", err)
		return
	}
	response.Success(c, sel)
}

// ClearRoute handles DELETE /api/v1/sessions/:id/route
func (h *SessionHandler) ClearRoute(c *gin.Context) {
	if err := h.planner.ClearRoute(c.Param("id")); err != nil {
		fail(c, "Failed to clear route", err)
		return
	}
	h.respondSnapshot(c)
}

func (h *SessionHandler) respondSnapshot(c *gin.Context) {
	snap, err := h.planner.Snapshot(c.Param("id"))
	if err != nil {
		fail(c, "Failed to get session", err)
		return
	}
	response.Success(c, snap)
}
