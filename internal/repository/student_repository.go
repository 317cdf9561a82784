package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unahur-dev/academico-api/internal/models"
)

// StudentRepository manages persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns one page of students ordered by id along with the total count.
func (r *StudentRepository) List(ctx context.Context, q models.PageQuery) ([]models.Student, int, error) {
	q = q.Normalize()

	const query = `SELECT id, nombre, apellido, edad, id_carrera FROM alumnos ORDER BY id ASC LIMIT $1 OFFSET $2`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, q.PageSize, q.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM alumnos"); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	return students, total, nil
}

// ListAll returns the complete roster ordered by id, used by exports.
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, nombre, apellido, edad, id_carrera FROM alumnos ORDER BY id ASC`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list all students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by id. Returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id int) (*models.Student, error) {
	const query = `SELECT id, nombre, apellido, edad, id_carrera FROM alumnos WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student and fills in its generated id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO alumnos (nombre, apellido, edad, id_carrera) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &student.ID, query, student.Name, student.Surname, student.Age, student.CareerID); err != nil {
		return classifyWrite(err, "existe otro alumno con el mismo nombre")
	}
	return nil
}

// Update replaces the mutable fields of an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE alumnos SET nombre = $2, apellido = $3, edad = $4, id_carrera = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, student.ID, student.Name, student.Surname, student.Age, student.CareerID)
	if err != nil {
		return classifyWrite(err, "existe otro alumno con el mismo nombre")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a student. Returns sql.ErrNoRows when the id does not exist.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alumnos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
