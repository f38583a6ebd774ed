package repositories

import (
	"fmt"

	"github.com/rakib99/pinnest/backend/internal/models"
	"gorm.io/gorm"
)

// CollaboratorRepository defines the interface for collaboration grant operations
type CollaboratorRepository interface {
	CreateCollaborator(collaborator *models.Collaborator) error
	GetCollaborator(boardID, userID uint) (*models.Collaborator, error)
	GetCollaboratorsByBoard(boardID uint) ([]models.Collaborator, error)
	DeleteCollaborator(boardID, userID uint) error
}

// PostgresCollaboratorRepository implements CollaboratorRepository
type PostgresCollaboratorRepository struct {
	db *gorm.DB
}

// NewPostgresCollaboratorRepository creates a new PostgresCollaboratorRepository
func NewPostgresCollaboratorRepository(db *gorm.DB) *PostgresCollaboratorRepository {
	return &PostgresCollaboratorRepository{db: db}
}

// CreateCollaborator creates a new collaboration grant
func (r *PostgresCollaboratorRepository) CreateCollaborator(collaborator *models.Collaborator) error {
	return r.db.Create(collaborator).Error
}

// GetCollaborator retrieves the grant for a (board, user) pair
func (r *PostgresCollaboratorRepository) GetCollaborator(boardID, userID uint) (*models.Collaborator, error) {
	var collaborator models.Collaborator
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&collaborator).Error; err != nil {
		return nil, err
	}
	return &collaborator, nil
}

// GetCollaboratorsByBoard retrieves all grants for a board
func (r *PostgresCollaboratorRepository) GetCollaboratorsByBoard(boardID uint) ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	if err := r.db.Where("board_id = ?", boardID).Find(&collaborators).Error; err != nil {
		return nil, err
	}
	return collaborators, nil
}

// DeleteCollaborator revokes the grant for a (board, user) pair
func (r *PostgresCollaboratorRepository) DeleteCollaborator(boardID, userID uint) error {
	res := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).Delete(&models.Collaborator{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("collaborator not found")
	}
	return nil
}
