package court

import (
	"errors"
	"net/http"
	"strconv"

	"courtslot/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateCourt godoc
// @Summary      Create court
// @Tags         courts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCourtRequest  true  "Court data"
// @Success      201      {object}  Court
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/courts [post]
func (h *Handler) CreateCourt(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCourt) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court data"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create court"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListCourts godoc
// @Summary      List courts
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Court
// @Failure      500  {object}  api.ErrorResponse
// @Router       /courts [get]
func (h *Handler) ListCourts(c *gin.Context) {
	courts, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}

// GetCourt godoc
// @Summary      Get court by id
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  Court
// @Failure      404      {object}  api.ErrorResponse
// @Router       /courts/{courtID} [get]
func (h *Handler) GetCourt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	crt, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch court"})
		return
	}

	c.JSON(http.StatusOK, crt)
}

// UpdateCourt godoc
// @Summary      Update court
// @Tags         courts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        courtID  path      int                 true  "Court ID"
// @Param        request  body      UpdateCourtRequest  true  "Fields to update"
// @Success      200      {object}  Court
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/courts/{courtID} [put]
func (h *Handler) UpdateCourt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	var req UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCourtNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
		case errors.Is(err, ErrInvalidCourt):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court data"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update court"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCourt godoc
// @Summary      Delete court
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/courts/{courtID} [delete]
func (h *Handler) DeleteCourt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete court"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Court deleted successfully"})
}
