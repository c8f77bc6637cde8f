package model

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a user-defined label used to group words and filter quiz pools.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTagRequest is the payload for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// UpdateTagRequest is the payload for renaming a tag.
type UpdateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}
