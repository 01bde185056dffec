package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Checklist is an aggregate root: its items are always loaded, replaced and
// deleted together with it.
type Checklist struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Created time.Time       `json:"created"`
	Updated time.Time       `json:"updated"`
	Items   []ChecklistItem `json:"items" validate:"dive"`
}

type ChecklistItem struct {
	ID          int64     `json:"id"`
	ChecklistID uuid.UUID `json:"checklist_id"`
	ItemName    string    `json:"item_name" validate:"required"`
	Description string    `json:"description"`
	// ItemGroup is stored as given; nil and blank both render under "General".
	ItemGroup *string `json:"item_group"`
}

// UnmarshalJSON also accepts the camelCase keys (itemName, itemGroup,
// checklistId) used by older exports. Snake case wins when both are present.
func (it *ChecklistItem) UnmarshalJSON(data []byte) error {
	type plain ChecklistItem
	var aux struct {
		plain
		CamelChecklistID *uuid.UUID `json:"checklistId"`
		CamelItemName    *string    `json:"itemName"`
		CamelItemGroup   *string    `json:"itemGroup"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*it = ChecklistItem(aux.plain)
	if it.ItemName == "" && aux.CamelItemName != nil {
		it.ItemName = *aux.CamelItemName
	}
	if it.ItemGroup == nil && aux.CamelItemGroup != nil {
		it.ItemGroup = aux.CamelItemGroup
	}
	if it.ChecklistID == uuid.Nil && aux.CamelChecklistID != nil {
		it.ChecklistID = *aux.CamelChecklistID
	}
	return nil
}
