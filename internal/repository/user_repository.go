package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/tour-planner-go/internal/models"
)

const userColumns = `id, username, password_hash, name, email, phone, nickname, role, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and fills in its ID. A taken username yields ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, name, email, phone, nickname, role)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Name, u.Email, u.Phone, u.Nickname, u.Role,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	u.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, notFound(err))
	}
	return u, nil
}

// GetByUsername retrieves a user by login name
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, notFound(err))
	}
	return u, nil
}

// UpdateProfile overwrites the editable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, phone = ?, nickname = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Name, p.Email, p.Phone, p.Nickname, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return checkAffected(res)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email, &u.Phone,
		&u.Nickname, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
