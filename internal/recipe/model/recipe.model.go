package model

import (
	"time"

	"github.com/google/uuid"

	picture "personalportal/internal/picture/model"
)

// Recipe owns its pictures through pictures.recipe_id. Pictures are read
// with the recipe but created and updated through the picture API.
type Recipe struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	RecipeText string            `json:"recipe_text"`
	Created    time.Time         `json:"created"`
	Updated    time.Time         `json:"updated"`
	Pictures   []picture.Picture `json:"pictures"`
}
