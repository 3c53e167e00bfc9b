package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service

	// now is swappable so reports can be pinned in tests
	now func() time.Time
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// --------------------------------------------------
// GET /analytics/menu-matrix
// --------------------------------------------------

func (h *Handler) MenuMatrix(c *gin.Context) {
	start, end, err := ParseDateRange(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		core.HTTPError(c, err)
		return
	}

	matrix, err := h.service.MenuMatrix(c.Request.Context(), start, end)
	if err != nil {
		core.HTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// --------------------------------------------------
// GET /analytics/menu-matrix/by-category
// --------------------------------------------------

func (h *Handler) MenuMatrixByCategory(c *gin.Context) {
	start, end, err := ParseDateRange(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		core.HTTPError(c, err)
		return
	}

	matrix, err := h.service.MenuMatrixByCategory(c.Request.Context(), start, end)
	if err != nil {
		core.HTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// --------------------------------------------------
// GET /analytics/perishables-alerts
// --------------------------------------------------

func (h *Handler) PerishablesAlerts(c *gin.Context) {
	hours := DefaultAlertHours
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "hours must be a positive integer"})
			return
		}
		hours = parsed
	}

	alerts, err := h.service.PerishablesAlerts(c.Request.Context(), h.now(), hours)
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if alerts == nil {
		alerts = []PerishableAlert{}
	}

	c.JSON(http.StatusOK, alerts)
}

// --------------------------------------------------
// GET /analytics/price-trends
// --------------------------------------------------

func (h *Handler) PriceTrends(c *gin.Context) {
	var ingredientID *int64
	if raw := c.Query("ingredient_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ingredient_id must be an integer"})
			return
		}
		ingredientID = &parsed
	}

	trends, err := h.service.PriceTrends(c.Request.Context(), ingredientID)
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if trends == nil {
		trends = []PriceTrend{}
	}

	c.JSON(http.StatusOK, trends)
}

// --------------------------------------------------
// GET /analytics/traffic-flow
// --------------------------------------------------

func (h *Handler) TrafficFlow(c *gin.Context) {
	start, end, err := ParseDateRange(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		core.HTTPError(c, err)
		return
	}

	buckets, err := h.service.TrafficFlow(c.Request.Context(), start, end)
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if buckets == nil {
		buckets = []TrafficBucket{}
	}

	c.JSON(http.StatusOK, buckets)
}

// --------------------------------------------------
// GET /analytics/breakeven
// --------------------------------------------------

func (h *Handler) Breakeven(c *gin.Context) {
	date := h.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date format, use YYYY-MM-DD (e.g. 2025-11-01)"})
			return
		}
		date = parsed
	}

	fixedCost := DefaultDailyFixed
	if raw := c.Query("fixed_cost"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "fixed_cost must be a non-negative number"})
			return
		}
		fixedCost = parsed
	}

	result, err := h.service.Breakeven(c.Request.Context(), date, fixedCost)
	if err != nil {
		core.HTTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
