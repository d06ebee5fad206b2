package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"courtslot/internal/api"
	"courtslot/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	coordinator *Coordinator
}

func NewHandler(coordinator *Coordinator) *Handler {
	return &Handler{coordinator: coordinator}
}

// CreateReservation godoc
// @Summary      Reserve a slot
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation data"
// @Success      201      {object}  Reservation
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.coordinator.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// CreateWalkInReservation godoc
// @Summary      Register a walk-in reservation
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userID   path      int                       true  "User ID"
// @Param        request  body      CreateReservationRequest  true  "Reservation data"
// @Success      201      {object}  Reservation
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/users/{userID}/reservations/walkin [post]
func (h *Handler) CreateWalkInReservation(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.coordinator.CreateWalkIn(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetReservation godoc
// @Summary      Get reservation by id
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  Reservation
// @Failure      404            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID} [get]
func (h *Handler) GetReservation(c *gin.Context) {
	r, ok := h.loadOwned(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, r)
}

// ListReservations godoc
// @Summary      List all reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/reservations [get]
func (h *Handler) ListReservations(c *gin.Context) {
	reservations, err := h.coordinator.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListMyReservations godoc
// @Summary      List own reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        date_from  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        date_to    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200  {array}   Reservation
// @Failure      400  {object}  api.ErrorResponse
// @Router       /users/me/reservations [get]
func (h *Handler) ListMyReservations(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	dateFrom, dateTo, err := dateRangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	reservations, err := h.coordinator.ListByUser(c.Request.Context(), userID, dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ModifyReservation godoc
// @Summary      Modify a pending reservation
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                       true  "Reservation ID"
// @Param        request        body      ModifyReservationRequest  true  "Fields to change"
// @Success      200            {object}  Reservation
// @Failure      404            {object}  api.ErrorResponse
// @Failure      409            {object}  api.ErrorResponse
// @Failure      422            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID} [put]
func (h *Handler) ModifyReservation(c *gin.Context) {
	r, ok := h.loadOwned(c)
	if !ok {
		return
	}

	var req ModifyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.coordinator.Modify(c.Request.Context(), r.ID, req)
	if err != nil {
		h.writeError(c, err, "Failed to modify reservation")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// CancelReservation godoc
// @Summary      Cancel a pending reservation
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  api.MessageResponse
// @Failure      404            {object}  api.ErrorResponse
// @Failure      422            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID}/cancel [post]
func (h *Handler) CancelReservation(c *gin.Context) {
	r, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.coordinator.Cancel(c.Request.Context(), r.ID); err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation cancelled successfully"})
}

// ConfirmReservation godoc
// @Summary      Confirm a pending reservation
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  api.MessageResponse
// @Failure      404            {object}  api.ErrorResponse
// @Failure      422            {object}  api.ErrorResponse
// @Router       /admin/reservations/{reservationID}/confirm [post]
func (h *Handler) ConfirmReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	if err := h.coordinator.SetConfirmed(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to confirm reservation")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation confirmed successfully"})
}

// loadOwned fetches the path reservation and enforces that a non-admin
// caller only touches their own reservations.
func (h *Handler) loadOwned(c *gin.Context) (*Reservation, bool) {
	id, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return nil, false
	}

	r, err := h.coordinator.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to fetch reservation")
		return nil, false
	}

	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	if r.UserID != userID && c.GetString("user_role") != "admin" {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Reservation belongs to another user"})
		return nil, false
	}

	return r, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrSlotUnavailable):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

func dateRangeFromQuery(c *gin.Context) (*time.Time, *time.Time, error) {
	var dateFrom, dateTo *time.Time

	if raw := c.Query("date_from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, errors.New("date_from must be YYYY-MM-DD")
		}
		dateFrom = &parsed
	}
	if raw := c.Query("date_to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, errors.New("date_to must be YYYY-MM-DD")
		}
		// Inclusive end date
		end := parsed.AddDate(0, 0, 1)
		dateTo = &end
	}

	return dateFrom, dateTo, nil
}
