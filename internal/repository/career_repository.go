package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unahur-dev/academico-api/internal/models"
)

// CareerRepository manages persistence for careers.
type CareerRepository struct {
	db *sqlx.DB
}

// NewCareerRepository constructs a CareerRepository.
func NewCareerRepository(db *sqlx.DB) *CareerRepository {
	return &CareerRepository{db: db}
}

// List returns one page of careers ordered by id along with the total count.
// The count is taken before LIMIT/OFFSET so pages past the end come back
// empty with the correct total.
func (r *CareerRepository) List(ctx context.Context, q models.PageQuery) ([]models.Career, int, error) {
	q = q.Normalize()

	const query = `SELECT id, nombre, anios FROM carreras ORDER BY id ASC LIMIT $1 OFFSET $2`
	careers := []models.Career{}
	if err := r.db.SelectContext(ctx, &careers, query, q.PageSize, q.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list careers: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM carreras"); err != nil {
		return nil, 0, fmt.Errorf("count careers: %w", err)
	}

	return careers, total, nil
}

// FindByID fetches a career by id. Returns sql.ErrNoRows when absent.
func (r *CareerRepository) FindByID(ctx context.Context, id int) (*models.Career, error) {
	const query = `SELECT id, nombre, anios FROM carreras WHERE id = $1`
	var career models.Career
	if err := r.db.GetContext(ctx, &career, query, id); err != nil {
		return nil, err
	}
	return &career, nil
}

// Create inserts a new career and fills in its generated id.
func (r *CareerRepository) Create(ctx context.Context, career *models.Career) error {
	const query = `INSERT INTO carreras (nombre, anios) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &career.ID, query, career.Name, career.Years); err != nil {
		return classifyWrite(err, "existe otra carrera con el mismo nombre")
	}
	return nil
}

// Update replaces the mutable fields of an existing career.
func (r *CareerRepository) Update(ctx context.Context, career *models.Career) error {
	const query = `UPDATE carreras SET nombre = $2, anios = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, career.ID, career.Name, career.Years)
	if err != nil {
		return classifyWrite(err, "existe otra carrera con el mismo nombre")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a career. Returns sql.ErrNoRows when the id does not exist.
func (r *CareerRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carreras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete career: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
