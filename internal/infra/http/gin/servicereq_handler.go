package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	servicereqapp "staybook/internal/app/handlers/servicereq"
	"staybook/internal/app/queries"
	domainservicereq "staybook/internal/domain/servicereq"
)

type ServiceRequestHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type serviceRequestPayload struct {
	UserID      string     `json:"user_id"`
	BookingID   string     `json:"booking_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

func (h ServiceRequestHandler) Create(c *gin.Context) {
	var req serviceRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := servicereqapp.CreateCommand{
		CommandID:   generateCommandID(),
		UserID:      req.UserID,
		BookingID:   req.BookingID,
		Name:        req.Name,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		ScheduledAt: req.ScheduledAt,
	}
	result, err := commands.Dispatch[servicereqapp.CreateCommand, dto.ServiceRequest](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondServiceReqError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ServiceRequestHandler) Update(c *gin.Context) {
	var req serviceRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := servicereqapp.UpdateCommand{
		RequestID:   c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		ScheduledAt: req.ScheduledAt,
	}
	result, err := commands.Dispatch[servicereqapp.UpdateCommand, dto.ServiceRequest](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondServiceReqError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ServiceRequestHandler) Delete(c *gin.Context) {
	result, err := commands.Dispatch[servicereqapp.DeleteCommand, servicereqapp.DeleteResult](c.Request.Context(), h.Commands, servicereqapp.DeleteCommand{RequestID: c.Param("id")})
	if err != nil {
		respondServiceReqError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ServiceRequestHandler) ListByBooking(c *gin.Context) {
	result, err := queries.Ask[servicereqapp.ListByBookingQuery, dto.ServiceRequestCollection](c.Request.Context(), h.Queries, servicereqapp.ListByBookingQuery{BookingID: c.Param("id")})
	if err != nil {
		respondServiceReqError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func respondServiceReqError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, domainservicereq.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

var _ ServiceRequestHTTP = ServiceRequestHandler{}
