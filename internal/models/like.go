package models

import "time"

// Like represents a like on a pin. Existence of the row is the source of
// truth for "is liked"; the pin's likes_count is a cached projection.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PinID     string    `json:"pin_id" gorm:"index;uniqueIndex:idx_pin_user_like"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_pin_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
