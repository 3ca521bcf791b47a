package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"reifenmarkt/models"
	"reifenmarkt/services/search"
	"reifenmarkt/utils"
)

// directBookingSessionTTL bounds how long a customer can sit on a search
// result before booking; the widget re-searches after expiry.
const directBookingSessionTTL = 10 * time.Minute

const sessionKeyPrefix = "directBooking:session:"

// SearchHandler serves the public and direct-booking search endpoints.
type SearchHandler struct {
	SearchSvc search.SearchService
	Sessions  *redis.Client
	Logger    *zap.Logger
}

// DirectBookingSession is what the booking flow reads back after a search.
type DirectBookingSession struct {
	SessionID string                `json:"sessionId"`
	Request   models.SearchRequest  `json:"request"`
	Response  models.SearchResponse `json:"response"`
	CreatedAt time.Time             `json:"createdAt"`
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	resp, err := h.SearchSvc.Search(c.Request.Context(), req)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DirectBookingSearch handles POST /api/direct-booking/search. It runs the
// same search and parks the result in a short-lived session the booking flow
// refers back to.
func (h *SearchHandler) DirectBookingSearch(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	resp, err := h.SearchSvc.Search(c.Request.Context(), req)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}

	session := DirectBookingSession{
		SessionID: uuid.NewString(),
		Request:   *req,
		Response:  *resp,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.storeSession(c, session); err != nil {
		h.Logger.Error("DirectBookingSearch: failed to store session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": session.SessionID,
		"workshops": resp.Workshops,
	})
}

// GetDirectBookingSession handles GET /api/direct-booking/session/:id.
func (h *SearchHandler) GetDirectBookingSession(c *gin.Context) {
	id := c.Param("id")
	raw, err := h.Sessions.Get(c.Request.Context(), sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", "the booking session expired or never existed")
		return
	}
	if err != nil {
		h.Logger.Error("GetDirectBookingSession: redis lookup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking session", err.Error())
		return
	}

	var session DirectBookingSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		h.Logger.Error("GetDirectBookingSession: corrupt session payload", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to decode booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SearchHandler) bindRequest(c *gin.Context) (*models.SearchRequest, bool) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}
	return &req, true
}

func (h *SearchHandler) respondSearchError(c *gin.Context, err error) {
	if errors.Is(err, search.ErrMissingLocation) {
		utils.JSONError(c, http.StatusBadRequest, "missing location", err.Error())
		return
	}
	h.Logger.Error("Search: search failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "search failed", err.Error())
}

func (h *SearchHandler) storeSession(c *gin.Context, session DirectBookingSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	key := sessionKeyPrefix + session.SessionID
	if err := h.Sessions.Set(c.Request.Context(), key, raw, directBookingSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}
