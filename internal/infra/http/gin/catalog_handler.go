package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	catalogapp "staybook/internal/app/handlers/catalog"
	"staybook/internal/app/queries"
)

type CatalogHandler struct {
	Queries queries.Bus
}

func (h CatalogHandler) GetProperty(c *gin.Context) {
	result, err := queries.Ask[catalogapp.GetPropertyQuery, dto.PropertyOverview](c.Request.Context(), h.Queries, catalogapp.GetPropertyQuery{PropertyID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CatalogHandler) ListFacilities(c *gin.Context) {
	result, err := queries.Ask[catalogapp.ListFacilitiesQuery, dto.FacilityCollection](c.Request.Context(), h.Queries, catalogapp.ListFacilitiesQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ CatalogHTTP = CatalogHandler{}
