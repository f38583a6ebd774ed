package models

import "time"

// Notification types emitted by the services
const (
	NotificationTypeLike        = "like"
	NotificationTypeSave        = "save"
	NotificationTypeFollow      = "follow"
	NotificationTypeBoardInvite = "board_invite"
	NotificationTypeInviteReply = "invite_reply"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    string    `json:"target_id" gorm:"index"`     // pin ID, invitation ID, user ID, ...
	TargetType  string    `json:"target_type" gorm:"size:20"` // pin, invitation, user
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
