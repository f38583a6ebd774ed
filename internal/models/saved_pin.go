package models

import "time"

// SavedPin represents a user saving another pin to one of their own boards.
// The same pin may be saved by the same user to several boards, each save
// producing its own row and its own derived copy pin.
type SavedPin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PinID     string    `json:"pin_id" gorm:"index;uniqueIndex:idx_pin_user_board_save"` // original pin (MongoDB ObjectID as string)
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_pin_user_board_save"`
	BoardID   uint      `json:"board_id" gorm:"index;uniqueIndex:idx_pin_user_board_save"`
	CopyPinID string    `json:"copy_pin_id"` // derived copy created at save time
	CreatedAt time.Time `json:"created_at"`
}

// SavePinRequest defines the request body for saving a pin to a board
type SavePinRequest struct {
	BoardID uint `json:"board_id" validate:"required"`
}
