package services

import (
	"context"
	"errors"

	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
)

// PinService guards pin mutations behind the permission resolver. Every
// mutation re-validates permission on the board referenced by the operation,
// including the destination board when a pin is moved.
type PinService struct {
	pins        repositories.PinRepository
	permissions *PermissionService
}

// NewPinService creates a new PinService
func NewPinService(pinRepo repositories.PinRepository, permissions *PermissionService) *PinService {
	return &PinService{
		pins:        pinRepo,
		permissions: permissions,
	}
}

// CreatePin creates a pin on a board the actor may write to. The created pin
// is owned by the acting user, also when that user is a collaborator on
// someone else's board.
func (s *PinService) CreatePin(ctx context.Context, actorID uint, req *models.CreatePinRequest) (*models.Pin, error) {
	if _, err := s.permissions.RequireWrite(actorID, req.BoardID); err != nil {
		return nil, err
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.BoardVisibilityPublic
	}

	pin := &models.Pin{
		UserID:      actorID,
		BoardID:     req.BoardID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Link:        req.Link,
		Visibility:  visibility,
		IsDraft:     req.IsDraft,
	}
	if err := s.pins.CreatePin(ctx, pin); err != nil {
		return nil, err
	}
	return pin, nil
}

// GetPin retrieves a single pin
func (s *PinService) GetPin(ctx context.Context, pinID string) (*models.Pin, error) {
	pin, err := s.pins.GetPinByID(ctx, pinID)
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return nil, notFound("pin_not_found", "Pin not found")
		}
		return nil, err
	}
	return pin, nil
}

// UpdatePin updates a pin's mutable fields. Moving the pin to another board
// additionally requires write permission on the destination board.
func (s *PinService) UpdatePin(ctx context.Context, actorID uint, pinID string, req *models.UpdatePinRequest) (*models.Pin, error) {
	pin, err := s.GetPin(ctx, pinID)
	if err != nil {
		return nil, err
	}

	if _, err := s.permissions.RequireWrite(actorID, pin.BoardID); err != nil {
		return nil, err
	}
	if req.BoardID != 0 && req.BoardID != pin.BoardID {
		if _, err := s.permissions.RequireWrite(actorID, req.BoardID); err != nil {
			return nil, err
		}
		pin.BoardID = req.BoardID
	}

	if req.Title != "" {
		pin.Title = req.Title
	}
	if req.Description != "" {
		pin.Description = req.Description
	}
	if req.ImageURL != "" {
		pin.ImageURL = req.ImageURL
	}
	if req.Link != "" {
		pin.Link = req.Link
	}
	if req.Visibility != "" {
		pin.Visibility = req.Visibility
	}
	if req.IsDraft != nil {
		pin.IsDraft = *req.IsDraft
	}

	if err := s.pins.UpdatePin(ctx, pinID, pin); err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return nil, notFound("pin_not_found", "Pin not found")
		}
		return nil, err
	}
	return pin, nil
}

// DeletePin deletes a pin after re-validating write permission on its board
func (s *PinService) DeletePin(ctx context.Context, actorID uint, pinID string) error {
	pin, err := s.GetPin(ctx, pinID)
	if err != nil {
		return err
	}

	if _, err := s.permissions.RequireWrite(actorID, pin.BoardID); err != nil {
		return err
	}

	if err := s.pins.DeletePin(ctx, pinID); err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return notFound("pin_not_found", "Pin not found")
		}
		return err
	}
	return nil
}

// ListBoardPins returns a board's pins, newest first, readable by the actor
func (s *PinService) ListBoardPins(ctx context.Context, actorID, boardID uint, page, size int) ([]models.Pin, Pagination, error) {
	canRead, _, err := s.permissions.CanRead(actorID, boardID)
	if err != nil {
		return nil, Pagination{}, err
	}
	if !canRead {
		return nil, Pagination{}, unauthorized("board_access_denied", "You do not have access to this board")
	}

	page, size = NormalizePageSize(page, size)
	skip := int64((page - 1) * size)
	pins, total, err := s.pins.GetPinsByBoard(ctx, boardID, skip, int64(size))
	if err != nil {
		return nil, Pagination{}, err
	}
	return pins, NewPagination(page, size, total), nil
}
