package models

import "time"

// Collaborator permission levels for a board
const (
	PermissionView = "view" // may only browse the board
	PermissionEdit = "edit" // may create, update and delete pins on the board
)

// Collaborator represents an accepted collaboration grant on a board.
// Rows are only ever created by accepting an invitation.
type Collaborator struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BoardID    uint      `json:"board_id" gorm:"index;uniqueIndex:idx_board_user_collab"`
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_board_user_collab"`
	Permission string    `json:"permission" gorm:"type:varchar(10)"`
	CreatedAt  time.Time `json:"created_at"`
}
