package web

import (
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/google/uuid"

	checklist "personalportal/internal/checklist/model"
	"personalportal/internal/checklist/pdf"
	"personalportal/pkg/logger"
)

const (
	timestampFmt  = "1/2/2006 3:04 PM"
	snippetLength = 140
	itemSeparator = " | "
)

func (s *Server) funcs() template.FuncMap {
	return template.FuncMap{
		"when": func(t time.Time) string {
			loc := s.Location
			if loc == nil {
				loc = time.Local
			}
			return t.In(loc).Format(timestampFmt)
		},
		"snippet":  Snippet,
		"markdown": Markdown,
		"groups":   pdf.Layout,
		"rows":     rows,
		"isNew":    func(id uuid.UUID) bool { return id == uuid.Nil },
	}
}

// Markdown turns the editor's markup into Markdown, which the note page
// shows as text instead of trusting stored HTML.
func Markdown(markup string) string {
	text, err := htmltomarkdown.ConvertString(markup)
	if err != nil {
		logger.Sugar.Warnf("Failed to convert note markup: %v", err)
		return markup
	}
	return text
}

// Snippet is a one-line preview of note markup for list pages.
func Snippet(markup string) string {
	text := strings.Join(strings.Fields(Markdown(markup)), " ")
	if utf8.RuneCountInString(text) <= snippetLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:snippetLength])) + "…"
}

// rows flattens the three columns of a group into display rows.
func rows(g pdf.Group) [][]*checklist.ChecklistItem {
	out := make([][]*checklist.ChecklistItem, g.Rows())
	for i := range out {
		out[i] = make([]*checklist.ChecklistItem, len(g.Columns))
		for c, col := range g.Columns {
			if i < len(col) {
				out[i][c] = &col[i]
			}
		}
	}
	return out
}

// ParseItems reads the item editor: one item per line written as
// "name | group | description". Group and description are optional and a
// blank group leaves the item ungrouped.
func ParseItems(text string) []checklist.ChecklistItem {
	items := []checklist.ChecklistItem{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		it := checklist.ChecklistItem{ItemName: parts[0]}
		if len(parts) > 1 && parts[1] != "" {
			group := parts[1]
			it.ItemGroup = &group
		}
		if len(parts) > 2 {
			it.Description = parts[2]
		}
		items = append(items, it)
	}
	return items
}

// FormatItems is the inverse of ParseItems for the edit form.
func FormatItems(items []checklist.ChecklistItem) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it.ItemName)
		group := ""
		if it.ItemGroup != nil {
			group = *it.ItemGroup
		}
		if group != "" || it.Description != "" {
			b.WriteString(itemSeparator + group)
		}
		if it.Description != "" {
			b.WriteString(itemSeparator + it.Description)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
