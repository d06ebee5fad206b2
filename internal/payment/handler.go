package payment

import (
	"errors"
	"net/http"
	"strconv"

	"courtslot/internal/api"
	"courtslot/internal/reservation"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ProcessPayment godoc
// @Summary      Pay a reservation
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                    true  "Reservation ID"
// @Param        request        body      ProcessPaymentRequest  true  "Payment data"
// @Success      201            {object}  Payment
// @Failure      404            {object}  api.ErrorResponse
// @Failure      409            {object}  api.ErrorResponse
// @Failure      422            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID}/payments [post]
func (h *Handler) ProcessPayment(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Process(c.Request.Context(), reservationID, req)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Reservation not found"})
		case errors.Is(err, ErrDuplicatePayment):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Reservation already paid"})
		case errors.Is(err, reservation.ErrInvalidState):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAmountMismatch), errors.Is(err, ErrInvalidPayment):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to process payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetPayment godoc
// @Summary      Get payment by id
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        paymentID  path      int  true  "Payment ID"
// @Success      200        {object}  Payment
// @Failure      404        {object}  api.ErrorResponse
// @Router       /payments/{paymentID} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("paymentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid payment ID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payment"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ListReservationPayments godoc
// @Summary      List payments of a reservation
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {array}   Payment
// @Failure      400            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID}/payments [get]
func (h *Handler) ListReservationPayments(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	payments, err := h.service.ListByReservation(c.Request.Context(), reservationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
