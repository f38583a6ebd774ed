package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pin represents a pin document stored in MongoDB. The likes_count and
// saves_count fields are denormalized projections of the like/save relations
// in PostgreSQL and are mutated only through the repository's $inc helpers.
type Pin struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      uint               `json:"user_id" bson:"user_id"`   // acting user who created the pin
	BoardID     uint               `json:"board_id" bson:"board_id"` // board the pin lives on
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Link        string             `json:"link,omitempty" bson:"link,omitempty"`
	Visibility  string             `json:"visibility" bson:"visibility"`
	IsDraft     bool               `json:"is_draft" bson:"is_draft"`
	IsSponsored bool               `json:"is_sponsored,omitempty" bson:"is_sponsored,omitempty"`
	SourcePinID string             `json:"source_pin_id,omitempty" bson:"source_pin_id,omitempty"` // set on saved copies, points at the original pin
	LikesCount  int                `json:"likes_count" bson:"likes_count"`
	SavesCount  int                `json:"saves_count" bson:"saves_count"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePinRequest defines the request body for creating a new pin
type CreatePinRequest struct {
	BoardID     uint   `json:"board_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=1,max=140"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	Link        string `json:"link,omitempty" validate:"omitempty,url"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
	IsDraft     bool   `json:"is_draft,omitempty"`
}

// UpdatePinRequest defines the request body for updating an existing pin.
// A non-zero BoardID moves the pin to another board.
type UpdatePinRequest struct {
	BoardID     uint   `json:"board_id,omitempty"`
	Title       string `json:"title,omitempty" validate:"omitempty,min=1,max=140"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	Link        string `json:"link,omitempty" validate:"omitempty,url"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
	IsDraft     *bool  `json:"is_draft,omitempty"`
}
