package model

import (
	"time"

	"github.com/google/uuid"
)

// TextNote content is rich text markup produced by the browser editor.
type TextNote struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}
