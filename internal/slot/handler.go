package slot

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"courtslot/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateSlot godoc
// @Summary      Create slot on a court
// @Tags         slots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        courtID  path      int                true  "Court ID"
// @Param        request  body      CreateSlotRequest  true  "Slot data"
// @Success      201      {object}  Slot
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/courts/{courtID}/slots [post]
func (h *Handler) CreateSlot(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), courtID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot data"})
		case errors.Is(err, ErrSlotOverlap):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Slot overlaps an existing slot"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// FindAvailableSlots godoc
// @Summary      Search available slots
// @Tags         slots
// @Security     BearerAuth
// @Produce      json
// @Param        date_from  query     string  true   "Start date (YYYY-MM-DD)"
// @Param        date_to    query     string  true   "End date (YYYY-MM-DD)"
// @Param        court_ids  query     string  false  "Comma-separated court IDs"
// @Param        time_from  query     string  false  "Earliest start time (HH:MM)"
// @Param        time_to    query     string  false  "Latest end time (HH:MM)"
// @Success      200  {array}   Slot
// @Failure      400  {object}  api.ErrorResponse
// @Router       /slots/available [get]
func (h *Handler) FindAvailableSlots(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slots, err := h.service.FindAvailable(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, ErrInvalidSlot) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid search range"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// ListCourtSlots godoc
// @Summary      List slots of a court
// @Tags         slots
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {array}   Slot
// @Failure      400      {object}  api.ErrorResponse
// @Router       /courts/{courtID}/slots [get]
func (h *Handler) ListCourtSlots(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	slots, err := h.service.ListByCourt(c.Request.Context(), courtID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// UpdateSlot godoc
// @Summary      Update slot
// @Tags         slots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slotID   path      int                true  "Slot ID"
// @Param        request  body      UpdateSlotRequest  true  "Fields to update"
// @Success      200      {object}  Slot
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/slots/{slotID} [put]
func (h *Handler) UpdateSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Slot not found"})
		case errors.Is(err, ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot data"})
		case errors.Is(err, ErrSlotOverlap):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Slot overlaps an existing slot"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update slot"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteSlot godoc
// @Summary      Delete slot
// @Tags         slots
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Slot ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      409     {object}  api.ErrorResponse
// @Router       /admin/slots/{slotID} [delete]
func (h *Handler) DeleteSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Slot not found"})
		case errors.Is(err, ErrSlotInUse):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Slot has an active reservation"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete slot"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Slot deleted successfully"})
}

// CancelSlot godoc
// @Summary      Cancel slot
// @Tags         slots
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Slot ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      409     {object}  api.ErrorResponse
// @Router       /admin/slots/{slotID}/cancel [post]
func (h *Handler) CancelSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Slot not found"})
		case errors.Is(err, ErrSlotInUse):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Slot has an active reservation"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel slot"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Slot cancelled successfully"})
}

func filterFromQuery(c *gin.Context) (Filter, error) {
	var f Filter

	dateFrom, err := time.Parse("2006-01-02", c.Query("date_from"))
	if err != nil {
		return f, errors.New("date_from must be YYYY-MM-DD")
	}
	dateTo, err := time.Parse("2006-01-02", c.Query("date_to"))
	if err != nil {
		return f, errors.New("date_to must be YYYY-MM-DD")
	}
	f.DateFrom = dateFrom
	f.DateTo = dateTo

	if raw := c.Query("court_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return f, errors.New("court_ids must be a comma-separated list of integers")
			}
			f.CourtIDs = append(f.CourtIDs, id)
		}
	}

	f.TimeFrom = c.Query("time_from")
	f.TimeTo = c.Query("time_to")

	return f, nil
}
