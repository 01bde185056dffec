package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecklistItemDecodesBothKeyStyles(t *testing.T) {
	owner := uuid.MustParse("7b4f8a43-1d4e-4d8f-9a55-0d6f1f0e2a11")
	tests := []struct {
		name string
		body string
	}{
		{"snake case", `{"id":3,"checklist_id":"` + owner.String() + `","item_name":"Tent","description":"2-person","item_group":"Gear"}`},
		{"camel case", `{"id":3,"checklistId":"` + owner.String() + `","itemName":"Tent","description":"2-person","itemGroup":"Gear"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it ChecklistItem
			require.NoError(t, json.Unmarshal([]byte(tt.body), &it))
			assert.Equal(t, int64(3), it.ID)
			assert.Equal(t, owner, it.ChecklistID)
			assert.Equal(t, "Tent", it.ItemName)
			assert.Equal(t, "2-person", it.Description)
			require.NotNil(t, it.ItemGroup)
			assert.Equal(t, "Gear", *it.ItemGroup)
		})
	}
}

func TestChecklistItemSnakeCaseWins(t *testing.T) {
	var it ChecklistItem
	require.NoError(t, json.Unmarshal([]byte(`{"item_name":"Tent","itemName":"Tarp","item_group":null}`), &it))
	assert.Equal(t, "Tent", it.ItemName)
	assert.Nil(t, it.ItemGroup)
}

func TestChecklistFromCamelCaseExport(t *testing.T) {
	body := `{"id":"7b4f8a43-1d4e-4d8f-9a55-0d6f1f0e2a11","name":"Camping","type":"Trip",
		"created":"2025-05-01T08:00:00Z","updated":"2025-05-02T08:00:00Z",
		"items":[{"itemName":"Tent","itemGroup":"Gear"},{"itemName":"Map","description":"1:50k"}]}`
	var c Checklist
	require.NoError(t, json.Unmarshal([]byte(body), &c))
	require.Len(t, c.Items, 2)
	assert.Equal(t, "Tent", c.Items[0].ItemName)
	assert.Equal(t, "Gear", *c.Items[0].ItemGroup)
	assert.Equal(t, "Map", c.Items[1].ItemName)
	assert.Nil(t, c.Items[1].ItemGroup)
}

func TestChecklistItemEncodesSnakeCase(t *testing.T) {
	out, err := json.Marshal(ChecklistItem{ItemName: "Tent"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"item_name":"Tent"`)
	assert.NotContains(t, string(out), "itemName")
}
