package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
	"gorm.io/gorm"
)

// BoardHandler handles board HTTP requests
type BoardHandler struct {
	boardRepository        repositories.BoardRepository
	collaboratorRepository repositories.CollaboratorRepository
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardRepo repositories.BoardRepository, collaboratorRepo repositories.CollaboratorRepository) *BoardHandler {
	return &BoardHandler{
		boardRepository:        boardRepo,
		collaboratorRepository: collaboratorRepo,
	}
}

// RegisterBoardRoutes registers board-related routes
func (h *BoardHandler) RegisterBoardRoutes(g *echo.Group) {
	g.POST("/boards", h.CreateBoard)
	g.GET("/boards", h.GetOwnBoards)
	g.GET("/boards/:id", h.GetBoard)
	g.PUT("/boards/:id", h.UpdateBoard)
	g.DELETE("/boards/:id", h.DeleteBoard)
	g.GET("/boards/:id/collaborators", h.GetCollaborators)
	g.DELETE("/boards/:id/collaborators/:user_id", h.RemoveCollaborator)
}

// CreateBoard creates a board owned by the authenticated user
func (h *BoardHandler) CreateBoard(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.BoardVisibilityPublic
	}

	board := &models.Board{
		OwnerID:     currentUserID,
		Name:        req.Name,
		Description: req.Description,
		Visibility:  visibility,
	}
	if err := h.boardRepository.CreateBoard(board); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, board)
}

// GetOwnBoards lists the authenticated user's boards
func (h *BoardHandler) GetOwnBoards(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	boards, err := h.boardRepository.GetBoardsByOwner(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, boards)
}

// GetBoard retrieves a board by ID
func (h *BoardHandler) GetBoard(c echo.Context) error {
	board, err := h.loadBoard(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// UpdateBoard updates a board; only the owner may do this
func (h *BoardHandler) UpdateBoard(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	board, err := h.loadBoard(c)
	if err != nil {
		return err
	}
	if board.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the board owner can update this board")
	}

	var req models.UpdateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name != "" {
		board.Name = req.Name
	}
	if req.Description != "" {
		board.Description = req.Description
	}
	if req.Visibility != "" {
		board.Visibility = req.Visibility
	}

	if err := h.boardRepository.UpdateBoard(board); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, board)
}

// DeleteBoard deletes a board; only the owner may do this
func (h *BoardHandler) DeleteBoard(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	board, err := h.loadBoard(c)
	if err != nil {
		return err
	}
	if board.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the board owner can delete this board")
	}

	if err := h.boardRepository.DeleteBoard(board.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetCollaborators lists the collaboration grants on a board
func (h *BoardHandler) GetCollaborators(c echo.Context) error {
	board, err := h.loadBoard(c)
	if err != nil {
		return err
	}

	collaborators, err := h.collaboratorRepository.GetCollaboratorsByBoard(board.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, collaborators)
}

// RemoveCollaborator revokes a collaboration grant; only the owner may do this
func (h *BoardHandler) RemoveCollaborator(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	board, err := h.loadBoard(c)
	if err != nil {
		return err
	}
	if board.OwnerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the board owner can remove collaborators")
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.collaboratorRepository.DeleteCollaborator(board.ID, uint(userID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Collaborator not found")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BoardHandler) loadBoard(c echo.Context) (*models.Board, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid board ID")
	}

	board, err := h.boardRepository.GetBoardByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Board not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return board, nil
}
