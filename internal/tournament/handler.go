package tournament

import (
	"errors"
	"net/http"
	"strconv"

	"courtslot/internal/api"
	"courtslot/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateTournament godoc
// @Summary      Create tournament
// @Tags         tournaments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTournamentRequest  true  "Tournament data"
// @Success      201      {object}  Tournament
// @Failure      400      {object}  api.ErrorResponse
// @Router       /tournaments [post]
func (h *Handler) CreateTournament(c *gin.Context) {
	organizerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), organizerID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidTournament) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid tournament data"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create tournament"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListTournaments godoc
// @Summary      List tournaments
// @Tags         tournaments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Tournament
// @Failure      500  {object}  api.ErrorResponse
// @Router       /tournaments [get]
func (h *Handler) ListTournaments(c *gin.Context) {
	tournaments, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch tournaments"})
		return
	}

	c.JSON(http.StatusOK, tournaments)
}

// GetTournament godoc
// @Summary      Get tournament by id
// @Tags         tournaments
// @Security     BearerAuth
// @Produce      json
// @Param        tournamentID  path      int  true  "Tournament ID"
// @Success      200           {object}  Tournament
// @Failure      404           {object}  api.ErrorResponse
// @Router       /tournaments/{tournamentID} [get]
func (h *Handler) GetTournament(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tournamentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid tournament ID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Tournament not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch tournament"})
		return
	}

	c.JSON(http.StatusOK, t)
}

// UpdateTournament godoc
// @Summary      Update tournament
// @Tags         tournaments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        tournamentID  path      int                      true  "Tournament ID"
// @Param        request       body      UpdateTournamentRequest  true  "Fields to update"
// @Success      200           {object}  Tournament
// @Failure      400           {object}  api.ErrorResponse
// @Failure      404           {object}  api.ErrorResponse
// @Router       /tournaments/{tournamentID} [put]
func (h *Handler) UpdateTournament(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tournamentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid tournament ID"})
		return
	}

	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Tournament not found"})
		case errors.Is(err, ErrInvalidTournament):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid tournament data"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update tournament"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ReserveBatch godoc
// @Summary      Book a batch of slots for a tournament
// @Tags         tournaments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        tournamentID  path      int                  true  "Tournament ID"
// @Param        request       body      BatchReserveRequest  true  "Batch parameters"
// @Success      200           {object}  BatchResult
// @Failure      404           {object}  api.ErrorResponse
// @Failure      409           {object}  api.ErrorResponse
// @Router       /tournaments/{tournamentID}/reservations/batch [post]
func (h *Handler) ReserveBatch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tournamentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid tournament ID"})
		return
	}

	var req BatchReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.ReserveBatch(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Tournament not found"})
		case errors.Is(err, ErrNoCandidateSlots):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "No available slots match the request"})
		case errors.Is(err, ErrInvalidTournament):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid batch request"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to book batch"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// CancelTournament godoc
// @Summary      Cancel tournament and release its reservations
// @Tags         tournaments
// @Security     BearerAuth
// @Produce      json
// @Param        tournamentID  path      int  true  "Tournament ID"
// @Success      200           {object}  api.MessageResponse
// @Failure      404           {object}  api.ErrorResponse
// @Failure      422           {object}  api.ErrorResponse
// @Router       /tournaments/{tournamentID}/cancel [post]
func (h *Handler) CancelTournament(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tournamentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid tournament ID"})
		return
	}

	failures, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Tournament not found"})
		case errors.Is(err, ErrInvalidTournament):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel tournament"})
		}
		return
	}

	if len(failures) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": "Tournament cancelled, some reservations could not be released",
			"failed":  failures,
		})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Tournament cancelled successfully"})
}
