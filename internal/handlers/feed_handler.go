package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
	"github.com/rakib99/pinnest/backend/internal/services"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	pinRepository      repositories.PinRepository
	userRepository     repositories.UserRepository
	likeRepository     repositories.LikeRepository
	savedPinRepository repositories.SavedPinRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	pinRepo repositories.PinRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	savedPinRepo repositories.SavedPinRepository,
) *FeedHandler {
	return &FeedHandler{
		pinRepository:      pinRepo,
		userRepository:     userRepo,
		likeRepository:     likeRepo,
		savedPinRepository: savedPinRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedPin is a pin with author info and user-specific flags
type EnrichedPin struct {
	models.Pin
	Author  models.UserCompact `json:"author"`
	IsLiked bool               `json:"is_liked"`
	IsSaved bool               `json:"is_saved"`
}

// GetFeed returns enriched recent pins for the current user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, limit = services.NormalizePageSize(page, limit)

	skip := int64((page - 1) * limit)
	pins, total, err := h.pinRepository.GetAllPins(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Collect author IDs and pin IDs for enrichment
	authorIDs := make(map[uint]bool)
	pinIDs := make([]string, len(pins))
	for i, p := range pins {
		authorIDs[p.UserID] = true
		pinIDs[i] = p.ID.Hex()
	}

	userMap := make(map[uint]models.UserCompact)
	for id := range authorIDs {
		user, err := h.userRepository.GetUserByID(id)
		if err == nil {
			userMap[id] = user.ToCompact()
		}
	}

	likedMap := make(map[string]bool)
	savedMap := make(map[string]bool)
	if currentUserID > 0 {
		for _, pid := range pinIDs {
			liked, _ := h.likeRepository.HasUserLikedPin(pid, currentUserID)
			likedMap[pid] = liked
		}
		savedMap, _ = h.savedPinRepository.GetSavedPinIDs(currentUserID, pinIDs)
	}

	enriched := make([]EnrichedPin, len(pins))
	for i, p := range pins {
		pid := p.ID.Hex()
		enriched[i] = EnrichedPin{
			Pin:     p,
			Author:  userMap[p.UserID],
			IsLiked: likedMap[pid],
			IsSaved: savedMap[pid],
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"pins": enriched},
		"meta":    services.NewPagination(page, limit, total),
	})
}
