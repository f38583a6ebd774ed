package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rakib99/pinnest/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/pins/:pin_id/likes", h.LikePin)
	g.DELETE("/pins/:pin_id/likes", h.UnlikePin)
	g.GET("/pins/:pin_id/likes/status", h.GetLikeStatus)
	g.GET("/likes/pins", h.GetLikedPins)
}

// LikePin handles liking a pin
func (h *LikeHandler) LikePin(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	like, err := h.likeService.Like(c.Request().Context(), currentUserID, c.Param("pin_id"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikePin handles unliking a pin
func (h *LikeHandler) UnlikePin(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.likeService.Unlike(c.Request().Context(), currentUserID, c.Param("pin_id")); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetLikeStatus checks if the authenticated user has liked a specific pin
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pinID := c.Param("pin_id")
	hasLiked, err := h.likeService.IsLiked(currentUserID, pinID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"pin_id": pinID, "user_id": currentUserID, "has_liked": hasLiked})
}

// GetLikedPins returns the pins the authenticated user has liked, paginated
func (h *LikeHandler) GetLikedPins(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	pins, meta, err := h.likeService.GetLikedPins(c.Request().Context(), currentUserID, page, limit)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"pins": pins},
		"meta":    meta,
	})
}
