package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/services"
)

// PinHandler handles pin HTTP requests, delegating permission checks and
// mutations to the pin service
type PinHandler struct {
	pinService *services.PinService
}

// NewPinHandler creates a new PinHandler
func NewPinHandler(pinService *services.PinService) *PinHandler {
	return &PinHandler{pinService: pinService}
}

// RegisterPinRoutes registers pin-related routes
func (h *PinHandler) RegisterPinRoutes(g *echo.Group) {
	g.POST("/pins", h.CreatePin)
	g.GET("/pins/:id", h.GetPin)
	g.PUT("/pins/:id", h.UpdatePin)
	g.DELETE("/pins/:id", h.DeletePin)
	g.GET("/boards/:board_id/pins", h.ListBoardPins)
}

// CreatePin creates a pin on a board the user may write to
func (h *PinHandler) CreatePin(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pin, err := h.pinService.CreatePin(c.Request().Context(), currentUserID, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, pin)
}

// GetPin retrieves a single pin
func (h *PinHandler) GetPin(c echo.Context) error {
	pin, err := h.pinService.GetPin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pin)
}

// UpdatePin updates a pin, re-validating board permission (including the
// destination board when the pin is moved)
func (h *PinHandler) UpdatePin(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdatePinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pin, err := h.pinService.UpdatePin(c.Request().Context(), currentUserID, c.Param("id"), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, pin)
}

// DeletePin deletes a pin
func (h *PinHandler) DeletePin(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.pinService.DeletePin(c.Request().Context(), currentUserID, c.Param("id")); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListBoardPins returns a board's pins with pagination
func (h *PinHandler) ListBoardPins(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	boardID, err := strconv.ParseUint(c.Param("board_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid board ID")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	pins, meta, err := h.pinService.ListBoardPins(c.Request().Context(), currentUserID, uint(boardID), page, limit)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"pins": pins},
		"meta":    meta,
	})
}
