// Package store holds the persistence helpers shared by the content repositories.
package store

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a search term into an ILIKE pattern matching it
// anywhere in the column. Wildcards typed by the user are matched literally.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
