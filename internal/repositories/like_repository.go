package repositories

import (
	"errors"

	"github.com/rakib99/pinnest/backend/internal/models"
	"gorm.io/gorm"
)

// ErrLikeNotFound is returned when no like row exists for the given pair
var ErrLikeNotFound = errors.New("like not found")

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(pinID string, userID uint) error
	HasUserLikedPin(pinID string, userID uint) (bool, error)
	GetLikesByUser(userID uint, page, limit int) ([]models.Like, int64, error)
	GetLikesCountByPinID(pinID string) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL. The unique index on
// (pin_id, user_id) makes a concurrent duplicate surface as
// gorm.ErrDuplicatedKey instead of a double-counted row.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(pinID string, userID uint) error {
	res := r.db.Where("pin_id = ? AND user_id = ?", pinID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// HasUserLikedPin checks if a user has liked a specific pin
func (r *PostgresLikeRepository) HasUserLikedPin(pinID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("pin_id = ? AND user_id = ?", pinID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikesByUser retrieves a user's likes, newest first, paginated
func (r *PostgresLikeRepository) GetLikesByUser(userID uint, page, limit int) ([]models.Like, int64, error) {
	var likes []models.Like
	var total int64

	q := r.db.Model(&models.Like{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&likes).Error
	return likes, total, err
}

// GetLikesCountByPinID retrieves the count of likes for a specific pin
func (r *PostgresLikeRepository) GetLikesCountByPinID(pinID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("pin_id = ?", pinID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
