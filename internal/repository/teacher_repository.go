package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unahur-dev/academico-api/internal/models"
)

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns one page of teachers ordered by id along with the total count.
func (r *TeacherRepository) List(ctx context.Context, q models.PageQuery) ([]models.Teacher, int, error) {
	q = q.Normalize()

	const query = `SELECT id, nombre, apellido, id_materia, id_carrera FROM docentes ORDER BY id ASC LIMIT $1 OFFSET $2`
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, query, q.PageSize, q.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM docentes"); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}

	return teachers, total, nil
}

// FindByID fetches a teacher by id. Returns sql.ErrNoRows when absent.
func (r *TeacherRepository) FindByID(ctx context.Context, id int) (*models.Teacher, error) {
	const query = `SELECT id, nombre, apellido, id_materia, id_carrera FROM docentes WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a new teacher and fills in its generated id.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO docentes (nombre, apellido, id_materia, id_carrera) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &teacher.ID, query, teacher.Name, teacher.Surname, teacher.SubjectID, teacher.CareerID); err != nil {
		return classifyWrite(err, "existe otro docente con el mismo nombre")
	}
	return nil
}

// Update replaces the mutable fields of an existing teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE docentes SET nombre = $2, apellido = $3, id_materia = $4, id_carrera = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, teacher.ID, teacher.Name, teacher.Surname, teacher.SubjectID, teacher.CareerID)
	if err != nil {
		return classifyWrite(err, "existe otro docente con el mismo nombre")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a teacher. Returns sql.ErrNoRows when the id does not exist.
func (r *TeacherRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM docentes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
