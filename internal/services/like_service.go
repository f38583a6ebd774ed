package services

import (
	"context"
	"errors"
	"log"

	"github.com/rakib99/pinnest/backend/internal/models"
	"github.com/rakib99/pinnest/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeService is the idempotent like ledger. The like row is the source of
// truth; the pin's likes_count is a cached projection maintained by relative
// deltas, never by re-deriving the value.
type LikeService struct {
	likes    repositories.LikeRepository
	pins     repositories.PinRepository
	users    repositories.UserRepository
	notifier *Notifier
}

// NewLikeService creates a new LikeService
func NewLikeService(
	likeRepo repositories.LikeRepository,
	pinRepo repositories.PinRepository,
	userRepo repositories.UserRepository,
	notifier *Notifier,
) *LikeService {
	return &LikeService{
		likes:    likeRepo,
		pins:     pinRepo,
		users:    userRepo,
		notifier: notifier,
	}
}

// Like records the actor's like of a pin and bumps the pin's likes_count by
// exactly one. Liking a pin twice fails with already_liked. The owner is
// notified unless they liked their own pin.
func (s *LikeService) Like(ctx context.Context, actorID uint, pinID string) (*models.Like, error) {
	pin, err := s.pins.GetPinByID(ctx, pinID)
	if err != nil {
		if errors.Is(err, repositories.ErrPinNotFound) {
			return nil, notFound("pin_not_found", "Pin not found")
		}
		return nil, err
	}

	hasLiked, err := s.likes.HasUserLikedPin(pinID, actorID)
	if err != nil {
		return nil, err
	}
	if hasLiked {
		return nil, conflict("already_liked", "Pin already liked by this user")
	}

	like := &models.Like{
		PinID:  pinID,
		UserID: actorID,
	}
	if err := s.likes.CreateLike(like); err != nil {
		// A concurrent like between the existence check and the insert lands
		// on the unique index instead of double-counting.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("already_liked", "Pin already liked by this user")
		}
		return nil, err
	}

	if err := s.pins.IncrementLikesCount(ctx, pinID); err != nil {
		// Undo the ledger row so a retry starts clean instead of tripping the
		// unique index behind a counter that never moved.
		if delErr := s.likes.DeleteLike(pinID, actorID); delErr != nil {
			log.Printf("like: failed to remove like of pin %s by user %d after counter failure: %v", pinID, actorID, delErr)
		}
		return nil, err
	}

	if pin.UserID != actorID {
		actor, actorErr := s.users.GetUserByID(actorID)
		message := "Someone liked your pin"
		if actorErr == nil {
			message = actor.Name + " liked your pin"
		}
		s.notifier.Notify(pin.UserID, actorID, models.NotificationTypeLike, message, pinID, "pin")
	}

	return like, nil
}

// Unlike removes the actor's like of a pin and lowers the pin's likes_count
// by one, floored at zero at the store.
func (s *LikeService) Unlike(ctx context.Context, actorID uint, pinID string) error {
	if err := s.likes.DeleteLike(pinID, actorID); err != nil {
		if errors.Is(err, repositories.ErrLikeNotFound) {
			return notFound("like_not_found", "Like not found")
		}
		return err
	}

	return s.pins.DecrementLikesCount(ctx, pinID)
}

// IsLiked reports whether the actor has liked the pin. Pure existence check,
// no side effects.
func (s *LikeService) IsLiked(actorID uint, pinID string) (bool, error) {
	return s.likes.HasUserLikedPin(pinID, actorID)
}

// GetLikedPins returns the pins the actor has liked, newest like first.
// Likes whose pin has since been deleted are silently dropped.
func (s *LikeService) GetLikedPins(ctx context.Context, actorID uint, page, size int) ([]models.Pin, Pagination, error) {
	page, size = NormalizePageSize(page, size)
	likes, total, err := s.likes.GetLikesByUser(actorID, page, size)
	if err != nil {
		return nil, Pagination{}, err
	}

	pinIDs := make([]string, len(likes))
	for i, like := range likes {
		pinIDs[i] = like.PinID
	}

	found, err := s.pins.GetPinsByIDs(ctx, pinIDs)
	if err != nil {
		return nil, Pagination{}, err
	}
	byID := make(map[string]models.Pin, len(found))
	for _, pin := range found {
		byID[pin.ID.Hex()] = pin
	}

	pins := make([]models.Pin, 0, len(likes))
	for _, like := range likes {
		if pin, ok := byID[like.PinID]; ok {
			pins = append(pins, pin)
		}
	}
	return pins, NewPagination(page, size, total), nil
}
