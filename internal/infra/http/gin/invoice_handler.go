package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	invoiceapp "staybook/internal/app/handlers/invoice"
	"staybook/internal/app/queries"
)

type InvoiceHandler struct {
	Queries queries.Bus
}

type invoiceLinePayload struct {
	Description    string `json:"description"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type priceInvoiceRequest struct {
	Lines           []invoiceLinePayload `json:"lines"`
	Currency        string               `json:"currency"`
	DiscountMode    string               `json:"discount_mode"`
	DiscountCents   int64                `json:"discount_cents"`
	DiscountPercent float64              `json:"discount_percent"`
	TaxRatePercent  float64              `json:"tax_rate_percent"`
}

func (h InvoiceHandler) Price(c *gin.Context) {
	var req priceInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := invoiceapp.PriceInvoiceQuery{
		Lines:           make([]invoiceapp.LineInput, 0, len(req.Lines)),
		Currency:        req.Currency,
		DiscountMode:    req.DiscountMode,
		DiscountCents:   req.DiscountCents,
		DiscountPercent: req.DiscountPercent,
		TaxRatePercent:  req.TaxRatePercent,
	}
	for _, line := range req.Lines {
		query.Lines = append(query.Lines, invoiceapp.LineInput{
			Description:    line.Description,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}
	result, err := queries.Ask[invoiceapp.PriceInvoiceQuery, dto.InvoiceTotals](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ InvoiceHTTP = InvoiceHandler{}
