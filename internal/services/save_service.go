package services

import (
	"context"
	"errors"
	"log"

	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
	"gorm.io/gorm"
)

// SaveService is the save ledger. Saving a pin to one of the actor's own
// boards creates a derived copy pin on that board, records the save relation
// with a back-reference to the copy, and bumps the original pin's saves_count.
type SaveService struct {
	saves    repositories.SavedPinRepository
	pins     repositories.PinRepository
	boards   repositories.BoardRepository
	users    repositories.UserRepository
	notifier *Notifier
}

// NewSaveService creates a new SaveService
func NewSaveService(
	savedPinRepo repositories.SavedPinRepository,
	pinRepo repositories.PinRepository,
	boardRepo repositories.BoardRepository,
	userRepo repositories.UserRepository,
	notifier *Notifier,
) *SaveService {
	return &SaveService{
		saves:    savedPinRepo,
		pins:     pinRepo,
		boards:   boardRepo,
		users:    userRepo,
		notifier: notifier,
	}
}

// Save saves a pin to one of the actor's boards. The same pin may be saved to
// several boards, each save producing its own relation and its own copy pin.
// The original pin's owner is notified unless they saved their own pin.
func (s *SaveService) Save(ctx context.Context, actorID uint, pinID string, boardID uint) (*models.SavedPin, error) {
	if boardID == 0 {
		return nil, invalidArgument("board_id_required", "A destination board is required to save a pin")
	}

	pin, err := s.pins.GetPinByID(ctx, pinID)
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return nil, notFound("pin_not_found", "Pin not found")
		}
		return nil, err
	}

	board, err := s.boards.GetBoardByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("board_not_found", "Board not found")
		}
		return nil, err
	}
	if board.OwnerID != actorID {
		return nil, unauthorized("not_own_board", "Pins can only be saved to your own boards")
	}

	alreadySaved, err := s.saves.IsPinSavedToBoard(actorID, pinID, boardID)
	if err != nil {
		return nil, err
	}
	if alreadySaved {
		return nil, conflict("already_saved", "Pin already saved to this board")
	}

	copyPin := &models.Pin{
		UserID:      actorID,
		BoardID:     boardID,
		Title:       pin.Title,
		Description: pin.Description,
		ImageURL:    pin.ImageURL,
		Link:        pin.Link,
		Visibility:  board.Visibility,
		SourcePinID: pinID,
	}
	if err := s.pins.CreatePin(ctx, copyPin); err != nil {
		return nil, err
	}

	savedPin := &models.SavedPin{
		PinID:     pinID,
		UserID:    actorID,
		BoardID:   boardID,
		CopyPinID: copyPin.ID.Hex(),
	}
	if err := s.saves.CreateSavedPin(savedPin); err != nil {
		// Lost the race on the unique index: undo the orphaned copy before
		// reporting the conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if delErr := s.pins.DeletePin(ctx, copyPin.ID.Hex()); delErr != nil {
				log.Printf("save: failed to remove orphaned copy pin %s: %v", copyPin.ID.Hex(), delErr)
			}
			return nil, conflict("already_saved", "Pin already saved to this board")
		}
		return nil, err
	}

	if err := s.pins.IncrementSavesCount(ctx, pinID); err != nil {
		// Undo the relation and its copy so a retry starts clean.
		if delErr := s.saves.DeleteSavedPin(savedPin.ID); delErr != nil {
			log.Printf("save: failed to remove save of pin %s by user %d after counter failure: %v", pinID, actorID, delErr)
		}
		if delErr := s.pins.DeletePin(ctx, copyPin.ID.Hex()); delErr != nil && !errors.Is(delErr, repositories.ErrPinNotFound) {
			log.Printf("save: failed to remove copy pin %s after counter failure: %v", copyPin.ID.Hex(), delErr)
		}
		return nil, err
	}

	if pin.UserID != actorID {
		actor, actorErr := s.users.GetUserByID(actorID)
		message := "Someone saved your pin"
		if actorErr == nil {
			message = actor.Name + " saved your pin"
		}
		s.notifier.Notify(pin.UserID, actorID, models.NotificationTypeSave, message, pinID, "pin")
	}

	return savedPin, nil
}

// Unsave removes the actor's save of a pin. The key deliberately omits the
// board: it removes the actor's (most recent) save of that pin wherever it
// was saved. The derived copy is deleted if it still exists; a copy that was
// already deleted independently is skipped silently. The original pin's
// saves_count is lowered by one, floored at zero.
func (s *SaveService) Unsave(ctx context.Context, actorID uint, pinID string) error {
	savedPin, err := s.saves.GetSavedPin(pinID, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrSaveNotFound) {
			return notFound("save_not_found", "Saved pin not found")
		}
		return err
	}

	if savedPin.CopyPinID != "" {
		if err := s.pins.DeletePin(ctx, savedPin.CopyPinID); err != nil && !errors.Is(err, repositories.ErrPinNotFound) {
			return err
		}
	}

	if err := s.saves.DeleteSavedPin(savedPin.ID); err != nil {
		if errors.Is(err, repositories.ErrSaveNotFound) {
			return notFound("save_not_found", "Saved pin not found")
		}
		return err
	}

	return s.pins.DecrementSavesCount(ctx, pinID)
}

// IsSaved reports whether the actor has saved the pin to any board
func (s *SaveService) IsSaved(actorID uint, pinID string) (bool, error) {
	return s.saves.IsPinSaved(actorID, pinID)
}

// GetSavedPins returns the original pins the actor has saved, newest save
// first, optionally narrowed to one board. Saves whose original pin has since
// been deleted are silently dropped.
func (s *SaveService) GetSavedPins(ctx context.Context, actorID, boardID uint, page, size int) ([]models.Pin, Pagination, error) {
	page, size = NormalizePageSize(page, size)
	saves, total, err := s.saves.GetSavedByUser(actorID, boardID, page, size)
	if err != nil {
		return nil, Pagination{}, err
	}

	pinIDs := make([]string, len(saves))
	for i, save := range saves {
		pinIDs[i] = save.PinID
	}

	found, err := s.pins.GetPinsByIDs(ctx, pinIDs)
	if err != nil {
		return nil, Pagination{}, err
	}
	byID := make(map[string]models.Pin, len(found))
	for _, pin := range found {
		byID[pin.ID.Hex()] = pin
	}

	pins := make([]models.Pin, 0, len(saves))
	for _, save := range saves {
		if pin, ok := byID[save.PinID]; ok {
			pins = append(pins, pin)
		}
	}
	return pins, NewPagination(page, size, total), nil
}
