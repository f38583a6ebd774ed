package repositories

import (
	"github.com/rakib99/pinnest/backend/internal/models"
	"gorm.io/gorm"
)

// BoardRepository defines the interface for board data operations
type BoardRepository interface {
	CreateBoard(board *models.Board) error
	GetBoardByID(id uint) (*models.Board, error)
	GetBoardsByOwner(ownerID uint) ([]models.Board, error)
	UpdateBoard(board *models.Board) error
	DeleteBoard(id uint) error
	MarkCollaborative(id uint) error
}

// PostgresBoardRepository implements BoardRepository for PostgreSQL
type PostgresBoardRepository struct {
	db *gorm.DB
}

// NewPostgresBoardRepository creates a new PostgresBoardRepository
func NewPostgresBoardRepository(db *gorm.DB) *PostgresBoardRepository {
	return &PostgresBoardRepository{db: db}
}

// CreateBoard creates a new board in PostgreSQL
func (r *PostgresBoardRepository) CreateBoard(board *models.Board) error {
	return r.db.Create(board).Error
}

// GetBoardByID retrieves a board by ID from PostgreSQL
func (r *PostgresBoardRepository) GetBoardByID(id uint) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// GetBoardsByOwner retrieves all boards owned by a user
func (r *PostgresBoardRepository) GetBoardsByOwner(ownerID uint) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// UpdateBoard updates an existing board in PostgreSQL
func (r *PostgresBoardRepository) UpdateBoard(board *models.Board) error {
	return r.db.Save(board).Error
}

// DeleteBoard deletes a board by ID from PostgreSQL
func (r *PostgresBoardRepository) DeleteBoard(id uint) error {
	return r.db.Delete(&models.Board{}, id).Error
}

// MarkCollaborative flags a board as collaborative once a grant exists
func (r *PostgresBoardRepository) MarkCollaborative(id uint) error {
	return r.db.Model(&models.Board{}).Where("id = ?", id).Update("is_collaborative", true).Error
}
