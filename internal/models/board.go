package models

import "gorm.io/gorm"

// Board visibility values
const (
	BoardVisibilityPublic  = "public"
	BoardVisibilityPrivate = "private"
)

// Board represents a named collection of pins owned by a user
type Board struct {
	gorm.Model
	OwnerID         uint   `json:"owner_id" gorm:"index"`
	Name            string `json:"name" gorm:"size:100"`
	Description     string `json:"description"`
	Visibility      string `json:"visibility" gorm:"type:varchar(20);default:'public'"`
	IsCollaborative bool   `json:"is_collaborative" gorm:"default:false"` // true once at least one invitation was accepted
}

// CreateBoardRequest defines the request body for creating a board
type CreateBoardRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}

// UpdateBoardRequest defines the request body for updating a board
type UpdateBoardRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}
