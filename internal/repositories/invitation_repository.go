package repositories

import (
	"github.com/rakib99/pinnest/backend/internal/models"
	"gorm.io/gorm"
)

// InvitationRepository defines the interface for invitation data operations
type InvitationRepository interface {
	CreateInvitation(invitation *models.Invitation) error
	GetInvitationByID(id uint) (*models.Invitation, error)
	GetPendingInvitation(boardID, toUserID uint) (*models.Invitation, error)
	GetPendingByRecipient(toUserID uint, page, limit int) ([]models.Invitation, int64, error)
	UpdateInvitation(invitation *models.Invitation) error
	DeleteInvitation(id uint) error
}

// PostgresInvitationRepository implements InvitationRepository for PostgreSQL
type PostgresInvitationRepository struct {
	db *gorm.DB
}

// NewPostgresInvitationRepository creates a new PostgresInvitationRepository
func NewPostgresInvitationRepository(db *gorm.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

// CreateInvitation creates a new invitation in PostgreSQL. The partial unique
// index on (board_id, to_user_id) for pending rows makes a concurrent
// duplicate send surface as gorm.ErrDuplicatedKey instead of a second
// pending invitation.
func (r *PostgresInvitationRepository) CreateInvitation(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// GetInvitationByID retrieves an invitation by ID
func (r *PostgresInvitationRepository) GetInvitationByID(id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetPendingInvitation retrieves the pending invitation for a (board, recipient)
// pair, if one exists. At most one such row can be pending at a time.
func (r *PostgresInvitationRepository) GetPendingInvitation(boardID, toUserID uint) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.Where("board_id = ? AND to_user_id = ? AND status = ?", boardID, toUserID, models.InvitationPending).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetPendingByRecipient retrieves pending invitations awaiting a user, paginated
func (r *PostgresInvitationRepository) GetPendingByRecipient(toUserID uint, page, limit int) ([]models.Invitation, int64, error) {
	var invitations []models.Invitation
	var total int64

	q := r.db.Model(&models.Invitation{}).Where("to_user_id = ? AND status = ?", toUserID, models.InvitationPending)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&invitations).Error
	return invitations, total, err
}

// UpdateInvitation persists status/response changes to an invitation
func (r *PostgresInvitationRepository) UpdateInvitation(invitation *models.Invitation) error {
	return r.db.Save(invitation).Error
}

// DeleteInvitation removes an invitation record outright (sender cancellation)
func (r *PostgresInvitationRepository) DeleteInvitation(id uint) error {
	return r.db.Unscoped().Delete(&models.Invitation{}, id).Error
}
