package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/services"
)

// InvitationHandler handles board invitation HTTP requests
type InvitationHandler struct {
	invitationService *services.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// RegisterInvitationRoutes registers invitation-related routes
func (h *InvitationHandler) RegisterInvitationRoutes(g *echo.Group) {
	g.POST("/invitations", h.SendInvitation)
	g.GET("/invitations/pending", h.GetPendingInvitations)
	g.GET("/invitations/:id", h.GetInvitation)
	g.PUT("/invitations/:id/respond", h.RespondToInvitation)
	g.DELETE("/invitations/:id", h.CancelInvitation)
}

// SendInvitation invites a user to collaborate on a board
func (h *InvitationHandler) SendInvitation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invitation, err := h.invitationService.Send(currentUserID, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, invitation)
}

// GetPendingInvitations lists invitations awaiting the authenticated user
func (h *InvitationHandler) GetPendingInvitations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	invitations, meta, err := h.invitationService.ListPending(currentUserID, page, limit)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"invitations": invitations},
		"meta":    meta,
	})
}

// GetInvitation retrieves an invitation for one of its participants
func (h *InvitationHandler) GetInvitation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	invitationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid invitation ID")
	}

	invitation, err := h.invitationService.Get(currentUserID, uint(invitationID))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, invitation)
}

// RespondToInvitation accepts, declines or ignores a pending invitation
func (h *InvitationHandler) RespondToInvitation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	invitationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid invitation ID")
	}

	var req models.RespondInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invitation, err := h.invitationService.Respond(currentUserID, uint(invitationID), req.Action)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, invitation)
}

// CancelInvitation deletes a pending invitation as its sender
func (h *InvitationHandler) CancelInvitation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	invitationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid invitation ID")
	}

	if err := h.invitationService.Cancel(currentUserID, uint(invitationID)); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
