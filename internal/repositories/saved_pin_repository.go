package repositories

import (
	"errors"

	"github.com/rakib99/pinnest/backend/internal/models"
	"gorm.io/gorm"
)

// ErrSaveNotFound is returned when no save row exists for the given key
var ErrSaveNotFound = errors.New("saved pin not found")

// SavedPinRepository defines the interface for saved pin operations
type SavedPinRepository interface {
	CreateSavedPin(savedPin *models.SavedPin) error
	GetSavedPin(pinID string, userID uint) (*models.SavedPin, error)
	DeleteSavedPin(id uint) error
	IsPinSaved(userID uint, pinID string) (bool, error)
	IsPinSavedToBoard(userID uint, pinID string, boardID uint) (bool, error)
	GetSavedByUser(userID, boardID uint, page, limit int) ([]models.SavedPin, int64, error)
	GetSavedPinIDs(userID uint, pinIDs []string) (map[string]bool, error)
}

// PostgresSavedPinRepository implements SavedPinRepository
type PostgresSavedPinRepository struct {
	db *gorm.DB
}

// NewPostgresSavedPinRepository creates a new PostgresSavedPinRepository
func NewPostgresSavedPinRepository(db *gorm.DB) *PostgresSavedPinRepository {
	return &PostgresSavedPinRepository{db: db}
}

// CreateSavedPin creates a new save row. The unique index on
// (pin_id, user_id, board_id) turns a concurrent duplicate into
// gorm.ErrDuplicatedKey.
func (r *PostgresSavedPinRepository) CreateSavedPin(savedPin *models.SavedPin) error {
	return r.db.Create(savedPin).Error
}

// GetSavedPin retrieves the save for a (pin, user) pair. The key deliberately
// omits board_id; when the user saved the same pin to several boards the most
// recent save is returned.
func (r *PostgresSavedPinRepository) GetSavedPin(pinID string, userID uint) (*models.SavedPin, error) {
	var savedPin models.SavedPin
	err := r.db.Where("pin_id = ? AND user_id = ?", pinID, userID).
		Order("created_at DESC").First(&savedPin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaveNotFound
		}
		return nil, err
	}
	return &savedPin, nil
}

// DeleteSavedPin deletes a save row by primary key
func (r *PostgresSavedPinRepository) DeleteSavedPin(id uint) error {
	res := r.db.Delete(&models.SavedPin{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSaveNotFound
	}
	return nil
}

// IsPinSaved checks if a user has saved a specific pin to any board
func (r *PostgresSavedPinRepository) IsPinSaved(userID uint, pinID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedPin{}).Where("user_id = ? AND pin_id = ?", userID, pinID).Count(&count).Error
	return count > 0, err
}

// IsPinSavedToBoard checks if a user has saved a specific pin to a specific board
func (r *PostgresSavedPinRepository) IsPinSavedToBoard(userID uint, pinID string, boardID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedPin{}).
		Where("user_id = ? AND pin_id = ? AND board_id = ?", userID, pinID, boardID).
		Count(&count).Error
	return count > 0, err
}

// GetSavedByUser retrieves a user's saves, newest first, paginated.
// A non-zero boardID narrows the result to one board.
func (r *PostgresSavedPinRepository) GetSavedByUser(userID, boardID uint, page, limit int) ([]models.SavedPin, int64, error) {
	var saved []models.SavedPin
	var total int64

	q := r.db.Model(&models.SavedPin{}).Where("user_id = ?", userID)
	if boardID != 0 {
		q = q.Where("board_id = ?", boardID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&saved).Error
	return saved, total, err
}

// GetSavedPinIDs reports which of the given pins the user has saved
func (r *PostgresSavedPinRepository) GetSavedPinIDs(userID uint, pinIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(pinIDs) == 0 {
		return result, nil
	}
	var saved []models.SavedPin
	err := r.db.Where("user_id = ? AND pin_id IN ?", userID, pinIDs).Find(&saved).Error
	if err != nil {
		return nil, err
	}
	for _, s := range saved {
		result[s.PinID] = true
	}
	return result, nil
}
