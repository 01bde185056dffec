// Package pdf renders a fully loaded checklist as a printable PDF: items
// grouped by label, each group spread over three columns.
package pdf

import (
	"sort"
	"strings"

	"personalportal/internal/checklist/model"
)

// GeneralGroup collects items without a usable group label.
const GeneralGroup = "General"

const columnCount = 3

// Group is one labelled block of the printed grid.
type Group struct {
	Label   string
	Columns [columnCount][]model.ChecklistItem
}

// Rows is the number of grid rows the group needs, i.e. its column capacity.
func (g Group) Rows() int {
	return len(g.Columns[0])
}

// Layout partitions items into groups ordered by label (byte-wise, so case
// matters) and splits each group into columns. Items keep the order they
// arrive in within their group.
func Layout(items []model.ChecklistItem) []Group {
	byLabel := make(map[string][]model.ChecklistItem)
	var labels []string
	for _, it := range items {
		label := GroupLabel(it)
		if _, seen := byLabel[label]; !seen {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], it)
	}
	sort.Strings(labels)

	groups := make([]Group, 0, len(labels))
	for _, label := range labels {
		groups = append(groups, Group{Label: label, Columns: SplitColumns(byLabel[label])})
	}
	return groups
}

// GroupLabel returns the label an item is printed under. Only a missing or
// all-whitespace label is normalized; everything else is kept verbatim.
func GroupLabel(it model.ChecklistItem) string {
	if it.ItemGroup == nil || strings.TrimSpace(*it.ItemGroup) == "" {
		return GeneralGroup
	}
	return *it.ItemGroup
}

// SplitColumns fills the columns in reading order with at most
// ceil(len(items)/3) items each. Trailing columns may end up short or empty.
func SplitColumns(items []model.ChecklistItem) [columnCount][]model.ChecklistItem {
	var cols [columnCount][]model.ChecklistItem
	capacity := (len(items) + columnCount - 1) / columnCount
	for c := range columnCount {
		start := min(c*capacity, len(items))
		end := min(start+capacity, len(items))
		cols[c] = items[start:end:end]
	}
	return cols
}
