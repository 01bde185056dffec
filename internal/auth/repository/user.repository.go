package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"personalportal/internal/auth/model"
	"personalportal/pkg/logger"
	"personalportal/store"
)

const userCols = `id, username, password, role, display_name`

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func scanUser(s store.Scanner) (model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.DisplayName)
	return u, err
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	return r.one(`SELECT `+userCols+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	return r.one(`SELECT `+userCols+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) one(query string, arg any) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %v: %w", arg, store.ErrNotFound)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get user %v: %v", arg, err)
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll() ([]model.User, error) {
	rows, err := r.DB.Query(`SELECT ` + userCols + ` FROM users ORDER BY username`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
