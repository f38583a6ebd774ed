package models

import (
	"time"

	"gorm.io/gorm"
)

// Invitation statuses. Pending is the only non-terminal state; a pending
// invitation may also be cancelled (deleted) by its sender.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
	InvitationIgnored  = "ignored"
)

// Invitation represents a board collaboration invitation between two users.
// The partial unique index keeps at most one pending invitation per
// (board, recipient); resolved invitations do not block a re-invite.
type Invitation struct {
	gorm.Model
	BoardID     uint       `json:"board_id" gorm:"index;uniqueIndex:idx_board_recipient_pending,where:status = 'pending'"`
	FromUserID  uint       `json:"from_user_id" gorm:"index"`
	ToUserID    uint       `json:"to_user_id" gorm:"index;uniqueIndex:idx_board_recipient_pending,where:status = 'pending'"`
	Permission  string     `json:"permission" gorm:"type:varchar(10)"`
	Message     string     `json:"message"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	RespondedAt *time.Time `json:"responded_at,omitempty"` // null until the recipient resolves the invitation
}

// CreateInvitationRequest defines the request body for inviting a collaborator
type CreateInvitationRequest struct {
	BoardID    uint   `json:"board_id" validate:"required"`
	ToUserID   uint   `json:"to_user_id" validate:"required"`
	Permission string `json:"permission" validate:"required,oneof=view edit"`
	Message    string `json:"message,omitempty" validate:"omitempty,max=500"`
}

// RespondInvitationRequest defines the request body for resolving an invitation
type RespondInvitationRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline ignore"`
}
