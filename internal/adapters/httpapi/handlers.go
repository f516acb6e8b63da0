package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
)

type handlers struct {
	events        input.EventUseCase
	signups       input.SignupUseCase
	confirmations input.ConfirmationUseCase
}

type eventResponse struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	ShortName        string     `json:"short_name"`
	GuildID          string     `json:"guild_id"`
	ChannelID        string     `json:"channel_id"`
	Capacity         *int       `json:"capacity"`
	State            string     `json:"state"`
	ParticipantCount int        `json:"participant_count"`
	CreatedBy        string     `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}

type signupResponse struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type checkResponse struct {
	ID        uint      `json:"id"`
	MessageID string    `json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toEventResponse(e *entities.Event) eventResponse {
	resp := eventResponse{
		ID:               e.ID,
		Name:             e.Name,
		ShortName:        e.ShortName,
		GuildID:          e.Scope.GuildID,
		ChannelID:        e.Scope.ChannelID,
		Capacity:         e.Capacity,
		State:            string(e.State),
		ParticipantCount: e.ParticipantCount,
		CreatedBy:        e.CreatedBy,
		CreatedAt:        e.CreatedAt,
	}
	if !e.ClosedAt.IsZero() {
		closedAt := e.ClosedAt
		resp.ClosedAt = &closedAt
	}
	return resp
}

func toSignupResponse(s entities.Signup) signupResponse {
	return signupResponse{ID: s.ID, EventID: s.EventID, UserID: s.UserID, CreatedAt: s.CreatedAt}
}

func toCheckResponse(c entities.ConfirmationCheck) checkResponse {
	return checkResponse{ID: c.ID, MessageID: c.MessageID, CreatedAt: c.CreatedAt}
}

func (h *handlers) listActiveEvents(c *gin.Context) {
	scope := entities.Scope{GuildID: c.Param("guildID"), ChannelID: c.Param("channelID")}
	events, err := h.events.ListActiveEvents(c.Request.Context(), scope)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

func (h *handlers) getEvent(c *gin.Context) {
	event, ok := h.loadEvent(c)
	if !ok {
		return
	}
	body := gin.H{"event": toEventResponse(event)}
	check, err := h.confirmations.LatestCheck(c.Request.Context(), event.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	if check != nil {
		body["latest_check"] = toCheckResponse(*check)
	}
	c.JSON(http.StatusOK, body)
}

func (h *handlers) listSignups(c *gin.Context) {
	event, ok := h.loadEvent(c)
	if !ok {
		return
	}
	signups, err := h.signups.ListSignups(c.Request.Context(), event)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]signupResponse, len(signups))
	for i, s := range signups {
		out[i] = toSignupResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"event_id": event.ID, "signups": out})
}

func (h *handlers) listChecks(c *gin.Context) {
	event, ok := h.loadEvent(c)
	if !ok {
		return
	}
	checks, err := h.confirmations.ListChecks(c.Request.Context(), event.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]checkResponse, len(checks))
	for i, check := range checks {
		out[i] = toCheckResponse(check)
	}
	c.JSON(http.StatusOK, gin.H{"event_id": event.ID, "checks": out})
}

// getSignup serves a signup by id, whatever the state of its event.
func (h *handlers) getSignup(c *gin.Context) {
	id, ok := parseID(c, "invalid signup id")
	if !ok {
		return
	}
	signup, err := h.signups.GetSignup(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"signup": toSignupResponse(*signup)})
}

func parseID(c *gin.Context, msg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return 0, false
	}
	return uint(id), true
}

func (h *handlers) loadEvent(c *gin.Context) (*entities.Event, bool) {
	id, ok := parseID(c, "invalid event id")
	if !ok {
		return nil, false
	}
	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return event, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, domain.ErrNotSignedUp):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.Code(err)})
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Printf("❌ [%s] %s: %v", c.GetString("request_id"), c.Request.URL.Path, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.Code(err)})
	default:
		log.Printf("❌ [%s] %s: %v", c.GetString("request_id"), c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
