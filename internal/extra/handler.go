package extra

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"courtslot/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateExtraService godoc
// @Summary      Create extra-service add-on
// @Tags         extras
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateExtraServiceRequest  true  "Add-on data"
// @Success      201      {object}  ExtraService
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/extras [post]
func (h *Handler) CreateExtraService(c *gin.Context) {
	var req CreateExtraServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), &ExtraService{
		AsadoPeople: req.AsadoPeople,
		Referee:     req.Referee,
		MatchRecord: req.MatchRecord,
		Bibs:        req.Bibs,
		PaddleCount: req.PaddleCount,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create extra service"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListExtraServices godoc
// @Summary      List extra-service add-ons
// @Tags         extras
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ExtraService
// @Failure      500  {object}  api.ErrorResponse
// @Router       /extras [get]
func (h *Handler) ListExtraServices(c *gin.Context) {
	extras, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch extra services"})
		return
	}

	c.JSON(http.StatusOK, extras)
}

// GetExtraService godoc
// @Summary      Get extra-service add-on by id
// @Tags         extras
// @Security     BearerAuth
// @Produce      json
// @Param        extraID  path      int  true  "Extra service ID"
// @Success      200      {object}  ExtraService
// @Failure      404      {object}  api.ErrorResponse
// @Router       /extras/{extraID} [get]
func (h *Handler) GetExtraService(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("extraID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid extra service ID"})
		return
	}

	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Extra service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch extra service"})
		return
	}

	c.JSON(http.StatusOK, e)
}
