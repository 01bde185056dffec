package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"personalportal/internal/checklist/model"
	"personalportal/pkg/logger"
	"personalportal/store"
)

const (
	checklistCols = `id, name, type, created, updated`
	itemCols      = `id, checklist_id, item_name, description, item_group`
)

type ChecklistRepository struct {
	DB *sql.DB
}

func NewChecklistRepository(db *sql.DB) *ChecklistRepository {
	return &ChecklistRepository{DB: db}
}

func scanChecklist(s store.Scanner) (model.Checklist, error) {
	var c model.Checklist
	err := s.Scan(&c.ID, &c.Name, &c.Type, &c.Created, &c.Updated)
	return c, err
}

func (r *ChecklistRepository) GetByID(id uuid.UUID) (*model.Checklist, error) {
	c, err := scanChecklist(r.DB.QueryRow(`SELECT `+checklistCols+` FROM checklists WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checklist %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get checklist %s: %v", id, err)
		return nil, err
	}
	lists := []model.Checklist{c}
	if err := r.attachItems(lists); err != nil {
		return nil, err
	}
	return &lists[0], nil
}

func (r *ChecklistRepository) GetAll() ([]model.Checklist, error) {
	return r.list(`SELECT ` + checklistCols + ` FROM checklists ORDER BY updated DESC`)
}

func (r *ChecklistRepository) GetLatest(count int) ([]model.Checklist, error) {
	return r.list(`SELECT `+checklistCols+` FROM checklists ORDER BY updated DESC LIMIT $1`, count)
}

func (r *ChecklistRepository) GetByType(checklistType string) ([]model.Checklist, error) {
	return r.list(`SELECT `+checklistCols+` FROM checklists WHERE type = $1 ORDER BY updated DESC`, checklistType)
}

func (r *ChecklistRepository) Search(term string) ([]model.Checklist, error) {
	return r.list(`SELECT `+checklistCols+` FROM checklists WHERE name ILIKE $1 ESCAPE '\' ORDER BY updated DESC`,
		store.ContainsPattern(term))
}

func (r *ChecklistRepository) list(query string, args ...any) ([]model.Checklist, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list checklists: %v", err)
		return nil, err
	}
	defer rows.Close()

	lists := []model.Checklist{}
	for rows.Next() {
		c, err := scanChecklist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan checklist: %w", err)
		}
		lists = append(lists, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// attachItems loads the items of every checklist in one query and assigns
// them in storage order (group, then name).
func (r *ChecklistRepository) attachItems(lists []model.Checklist) error {
	if len(lists) == 0 {
		return nil
	}
	ids := make([]string, len(lists))
	index := make(map[uuid.UUID]int, len(lists))
	for i := range lists {
		ids[i] = lists[i].ID.String()
		index[lists[i].ID] = i
		lists[i].Items = []model.ChecklistItem{}
	}

	rows, err := r.DB.Query(`SELECT `+itemCols+` FROM checklist_items WHERE checklist_id = ANY($1::uuid[]) ORDER BY item_group, item_name`,
		pq.Array(ids))
	if err != nil {
		logger.Sugar.Errorf("Failed to load checklist items: %v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it model.ChecklistItem
		var group sql.NullString
		if err := rows.Scan(&it.ID, &it.ChecklistID, &it.ItemName, &it.Description, &group); err != nil {
			return fmt.Errorf("scan checklist item: %w", err)
		}
		if group.Valid {
			it.ItemGroup = &group.String
		}
		if i, ok := index[it.ChecklistID]; ok {
			lists[i].Items = append(lists[i].Items, it)
		}
	}
	return rows.Err()
}

// Create inserts the checklist row and its items in one transaction.
func (r *ChecklistRepository) Create(c model.Checklist) error {
	return r.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO checklists (id, name, type, created, updated) VALUES ($1, $2, $3, $4, $5)`,
			c.ID, c.Name, c.Type, c.Created, c.Updated); err != nil {
			logger.Sugar.Errorf("Failed to create checklist: %v", err)
			return err
		}
		return insertItems(tx, c.ID, c.Items)
	})
}

// Update replaces name, type and the whole item set. Items of a missing
// checklist are never touched.
func (r *ChecklistRepository) Update(c model.Checklist) error {
	return r.inTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(`UPDATE checklists SET name = $1, type = $2, updated = $3 WHERE id = $4`,
			c.Name, c.Type, c.Updated, c.ID)
		if err != nil {
			logger.Sugar.Errorf("Failed to update checklist %s: %v", c.ID, err)
			return err
		}
		if err := requireRow(result, c.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM checklist_items WHERE checklist_id = $1`, c.ID); err != nil {
			logger.Sugar.Errorf("Failed to clear items of checklist %s: %v", c.ID, err)
			return err
		}
		return insertItems(tx, c.ID, c.Items)
	})
}

func (r *ChecklistRepository) Delete(id uuid.UUID) error {
	return r.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM checklist_items WHERE checklist_id = $1`, id); err != nil {
			logger.Sugar.Errorf("Failed to delete items of checklist %s: %v", id, err)
			return err
		}
		result, err := tx.Exec(`DELETE FROM checklists WHERE id = $1`, id)
		if err != nil {
			logger.Sugar.Errorf("Failed to delete checklist %s: %v", id, err)
			return err
		}
		return requireRow(result, id)
	})
}

func insertItems(tx *sql.Tx, checklistID uuid.UUID, items []model.ChecklistItem) error {
	for _, it := range items {
		var group sql.NullString
		if it.ItemGroup != nil {
			group = sql.NullString{String: *it.ItemGroup, Valid: true}
		}
		if _, err := tx.Exec(`INSERT INTO checklist_items (checklist_id, item_name, description, item_group) VALUES ($1, $2, $3, $4)`,
			checklistID, it.ItemName, it.Description, group); err != nil {
			logger.Sugar.Errorf("Failed to insert item %q of checklist %s: %v", it.ItemName, checklistID, err)
			return err
		}
	}
	return nil
}

func (r *ChecklistRepository) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.Begin()
	if err != nil {
		logger.Sugar.Errorf("Failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func requireRow(result sql.Result, id uuid.UUID) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("checklist %s: %w", id, store.ErrNotFound)
	}
	return nil
}
