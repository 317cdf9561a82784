package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unahur-dev/academico-api/internal/models"
)

// UserRepository manages persistence for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns one page of users ordered by id along with the total count.
func (r *UserRepository) List(ctx context.Context, q models.PageQuery) ([]models.User, int, error) {
	q = q.Normalize()

	const query = `SELECT id, name, password FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, query, q.PageSize, q.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users"); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// FindByID fetches a user by id. Returns sql.ErrNoRows when absent.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	const query = `SELECT id, name, password FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByName fetches a user by its unique name. Returns sql.ErrNoRows when
// absent; login relies on that to collapse unknown-user into the generic
// invalid-credentials failure.
func (r *UserRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	const query = `SELECT id, name, password FROM users WHERE name = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, name); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and fills in its generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (name, password) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &user.ID, query, user.Name, user.PasswordHash); err != nil {
		return classifyWrite(err, "existe otro usuario con el mismo nombre")
	}
	return nil
}

// Update replaces the mutable fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `UPDATE users SET name = $2, password = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.PasswordHash)
	if err != nil {
		return classifyWrite(err, "existe otro usuario con el mismo nombre")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a user. Returns sql.ErrNoRows when the id does not exist.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
