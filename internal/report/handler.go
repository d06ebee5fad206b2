package report

import (
	"net/http"
	"time"

	"courtslot/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CourtUsage godoc
// @Summary      Reservations and revenue per court for a period
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        date_from  query     string  true  "Start date (YYYY-MM-DD)"
// @Param        date_to    query     string  true  "End date (YYYY-MM-DD)"
// @Success      200  {array}   CourtUsage
// @Failure      400  {object}  api.ErrorResponse
// @Router       /admin/reports/courts [get]
func (h *Handler) CourtUsage(c *gin.Context) {
	from, to, ok := periodFromQuery(c)
	if !ok {
		return
	}

	usage, err := h.repo.GetCourtUsage(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, usage)
}

// MonthlyUtilization godoc
// @Summary      Slot utilization per court per month
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        date_from  query     string  true  "Start date (YYYY-MM-DD)"
// @Param        date_to    query     string  true  "End date (YYYY-MM-DD)"
// @Success      200  {array}   MonthlyUtilization
// @Failure      400  {object}  api.ErrorResponse
// @Router       /admin/reports/utilization [get]
func (h *Handler) MonthlyUtilization(c *gin.Context) {
	from, to, ok := periodFromQuery(c)
	if !ok {
		return
	}

	utilization, err := h.repo.GetMonthlyUtilization(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, utilization)
}

func periodFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("date_from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date_from must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	to, err := time.Parse("2006-01-02", c.Query("date_to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date_to must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	if to.Before(from) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date_to must not be before date_from"})
		return time.Time{}, time.Time{}, false
	}

	// Inclusive end date
	return from, to.AddDate(0, 0, 1), true
}
