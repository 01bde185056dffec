package model

import (
	"time"

	"github.com/google/uuid"
)

// Picture holds the raw image bytes; encoding/json ships them as base64.
type Picture struct {
	ID        uuid.UUID  `json:"id"`
	FileName  string     `json:"file_name" validate:"required"`
	ImageData []byte     `json:"image_data"`
	Caption   string     `json:"caption"`
	RecipeID  *uuid.UUID `json:"recipe_id"`
	Created   time.Time  `json:"created"`
	Updated   time.Time  `json:"updated"`
}
