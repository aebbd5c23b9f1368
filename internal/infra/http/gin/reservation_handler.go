package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	reservationapp "staybook/internal/app/handlers/reservation"
	"staybook/internal/app/queries"
	domaincatalog "staybook/internal/domain/catalog"
	domainreservation "staybook/internal/domain/reservation"
)

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type startReservationRequest struct {
	PropertyID string    `json:"property_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Travelers  int       `json:"travelers"`
}

func (h ReservationHandler) Start(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	var req startReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationapp.StartDraftCommand{
		SessionID:  sessionID,
		PropertyID: req.PropertyID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Travelers:  req.Travelers,
	}
	result, err := commands.Dispatch[reservationapp.StartDraftCommand, dto.ReservationDraft](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReservationHandler) Get(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	result, err := queries.Ask[reservationapp.GetDraftQuery, dto.ReservationDraft](c.Request.Context(), h.Queries, reservationapp.GetDraftQuery{SessionID: sessionID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type addItemRequest struct {
	Kind        string     `json:"kind"`
	FacilityID  string     `json:"facility_id"`
	Name        string     `json:"name"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

func (h ReservationHandler) AddItem(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationapp.AddLineItemCommand{
		SessionID:   sessionID,
		Kind:        req.Kind,
		FacilityID:  req.FacilityID,
		Name:        req.Name,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		ScheduledAt: req.ScheduledAt,
	}
	result, err := commands.Dispatch[reservationapp.AddLineItemCommand, dto.ReservationDraft](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	cmd := reservationapp.RemoveLineItemCommand{
		SessionID: sessionID,
		Ref:       c.Param("ref"),
	}
	result, err := commands.Dispatch[reservationapp.RemoveLineItemCommand, dto.ReservationDraft](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) Advance(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	cmd := reservationapp.AdvanceDraftCommand{
		CommandID:       generateCommandID(),
		SessionID:       sessionID,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[reservationapp.AdvanceDraftCommand, *reservationapp.AdvanceDraftResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) Abandon(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}
	result, err := commands.Dispatch[reservationapp.AbandonDraftCommand, reservationapp.AbandonDraftResult](c.Request.Context(), h.Commands, reservationapp.AbandonDraftCommand{SessionID: sessionID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func requireSession(c *gin.Context) (string, bool) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return "", false
	}
	return sessionID, true
}

func respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, domainreservation.ErrDraftNotFound),
		errors.Is(err, domaincatalog.ErrPropertyNotFound),
		errors.Is(err, domaincatalog.ErrFacilityNotFound),
		errors.Is(err, domainreservation.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainreservation.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, reservationapp.ErrSubmissionFailed):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ ReservationHTTP = ReservationHandler{}
