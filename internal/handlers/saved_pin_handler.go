package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/services"
)

// SavedPinHandler handles saved pin HTTP requests
type SavedPinHandler struct {
	saveService *services.SaveService
}

// NewSavedPinHandler creates a new SavedPinHandler
func NewSavedPinHandler(saveService *services.SaveService) *SavedPinHandler {
	return &SavedPinHandler{saveService: saveService}
}

// RegisterSavedPinRoutes registers saved pin routes
func (h *SavedPinHandler) RegisterSavedPinRoutes(g *echo.Group) {
	g.POST("/pins/:pin_id/save", h.SavePin)
	g.DELETE("/pins/:pin_id/save", h.UnsavePin)
	g.GET("/pins/:pin_id/save/status", h.GetSaveStatus)
	g.GET("/saves/pins", h.GetSavedPins)
}

// SavePin saves a pin to one of the user's boards
func (h *SavedPinHandler) SavePin(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SavePinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	savedPin, err := h.saveService.Save(c.Request().Context(), currentUserID, c.Param("pin_id"), req.BoardID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, savedPin)
}

// UnsavePin removes the user's save of a pin
func (h *SavedPinHandler) UnsavePin(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.saveService.Unsave(c.Request().Context(), currentUserID, c.Param("pin_id")); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": false}})
}

// GetSaveStatus checks if the authenticated user has saved a specific pin
func (h *SavedPinHandler) GetSaveStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pinID := c.Param("pin_id")
	isSaved, err := h.saveService.IsSaved(currentUserID, pinID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"pin_id": pinID, "user_id": currentUserID, "is_saved": isSaved})
}

// GetSavedPins returns the pins the authenticated user has saved, optionally
// filtered by board, paginated
func (h *SavedPinHandler) GetSavedPins(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var boardID uint
	if raw := c.QueryParam("board_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid board ID")
		}
		boardID = uint(parsed)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	pins, meta, err := h.saveService.GetSavedPins(c.Request().Context(), currentUserID, boardID, page, limit)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"pins": pins},
		"meta":    meta,
	})
}
