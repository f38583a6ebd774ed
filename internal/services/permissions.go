package services

import (
	"errors"

	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
	"gorm.io/gorm"
)

// Role is the capability an actor holds on a board, resolved once per request
type Role int

const (
	RoleNone Role = iota
	RoleViewer
	RoleEditor
	RoleOwner
)

// CanWrite reports whether the role permits pin mutations on the board
func (r Role) CanWrite() bool {
	return r == RoleOwner || r == RoleEditor
}

// PermissionService resolves what an actor may do on a board
type PermissionService struct {
	boards        repositories.BoardRepository
	collaborators repositories.CollaboratorRepository
}

// NewPermissionService creates a new PermissionService
func NewPermissionService(boardRepo repositories.BoardRepository, collaboratorRepo repositories.CollaboratorRepository) *PermissionService {
	return &PermissionService{
		boards:        boardRepo,
		collaborators: collaboratorRepo,
	}
}

// ResolveRole determines the actor's role on a board. A missing board is a
// not-found failure, checked before any permission decision.
func (s *PermissionService) ResolveRole(actorID, boardID uint) (Role, *models.Board, error) {
	board, err := s.boards.GetBoardByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil, notFound("board_not_found", "Board not found")
		}
		return RoleNone, nil, err
	}

	if board.OwnerID == actorID {
		return RoleOwner, board, nil
	}

	grant, err := s.collaborators.GetCollaborator(boardID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, board, nil
		}
		return RoleNone, nil, err
	}

	switch grant.Permission {
	case models.PermissionEdit:
		return RoleEditor, board, nil
	case models.PermissionView:
		return RoleViewer, board, nil
	default:
		return RoleNone, board, nil
	}
}

// CanWrite reports whether the actor may mutate pins on the board
func (s *PermissionService) CanWrite(actorID, boardID uint) (bool, error) {
	role, _, err := s.ResolveRole(actorID, boardID)
	if err != nil {
		return false, err
	}
	return role.CanWrite(), nil
}

// RequireWrite resolves the board and fails with an unauthorized error unless
// the actor is the owner or holds an edit grant. View-level collaborators are
// rejected on every write path.
func (s *PermissionService) RequireWrite(actorID, boardID uint) (*models.Board, error) {
	role, board, err := s.ResolveRole(actorID, boardID)
	if err != nil {
		return nil, err
	}
	if !role.CanWrite() {
		return nil, unauthorized("write_permission_denied", "You do not have write permission on this board")
	}
	return board, nil
}

// CanRead reports whether the actor may view the board's contents. Public
// boards are readable by anyone; private boards by the owner and any
// collaborator.
func (s *PermissionService) CanRead(actorID, boardID uint) (bool, *models.Board, error) {
	role, board, err := s.ResolveRole(actorID, boardID)
	if err != nil {
		return false, nil, err
	}
	if board.Visibility == models.BoardVisibilityPublic {
		return true, board, nil
	}
	return role != RoleNone, board, nil
}
