package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unahur-dev/academico-api/internal/models"
)

// SubjectRepository manages persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// subjectListRow carries one joined listing row. The related columns are
// nullable because the foreign keys may point at removed rows.
type subjectListRow struct {
	models.Subject
	CareerName     sql.NullString `db:"carrera_nombre"`
	TeacherName    sql.NullString `db:"docente_nombre"`
	TeacherSurname sql.NullString `db:"docente_apellido"`
}

// List returns one page of subjects ordered by id along with the total count.
// Each row embeds its career and teacher summaries.
func (r *SubjectRepository) List(ctx context.Context, q models.PageQuery) ([]models.Subject, int, error) {
	q = q.Normalize()

	const query = `SELECT m.id, m.nombre, m.id_carrera, m.id_docente,
		c.nombre AS carrera_nombre,
		d.nombre AS docente_nombre, d.apellido AS docente_apellido
		FROM materias m
		LEFT JOIN carreras c ON c.id = m.id_carrera
		LEFT JOIN docentes d ON d.id = m.id_docente
		ORDER BY m.id ASC LIMIT $1 OFFSET $2`
	rows := []subjectListRow{}
	if err := r.db.SelectContext(ctx, &rows, query, q.PageSize, q.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list subjects: %w", err)
	}

	subjects := make([]models.Subject, 0, len(rows))
	for _, row := range rows {
		subject := row.Subject
		if row.CareerName.Valid {
			subject.Career = &models.SubjectCareer{ID: subject.CareerID, Name: row.CareerName.String}
		}
		if row.TeacherName.Valid {
			subject.Teacher = &models.SubjectTeacher{
				ID:      subject.TeacherID,
				Name:    row.TeacherName.String,
				Surname: row.TeacherSurname.String,
			}
		}
		subjects = append(subjects, subject)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM materias"); err != nil {
		return nil, 0, fmt.Errorf("count subjects: %w", err)
	}

	return subjects, total, nil
}

// FindByID fetches a subject by id. Returns sql.ErrNoRows when absent.
func (r *SubjectRepository) FindByID(ctx context.Context, id int) (*models.Subject, error) {
	const query = `SELECT id, nombre, id_carrera, id_docente FROM materias WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create inserts a new subject and fills in its generated id.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	const query = `INSERT INTO materias (nombre, id_carrera, id_docente) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.GetContext(ctx, &subject.ID, query, subject.Name, subject.CareerID, subject.TeacherID); err != nil {
		return classifyWrite(err, "existe otra materia con el mismo nombre")
	}
	return nil
}

// Update replaces the mutable fields of an existing subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	const query = `UPDATE materias SET nombre = $2, id_carrera = $3, id_docente = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, subject.ID, subject.Name, subject.CareerID, subject.TeacherID)
	if err != nil {
		return classifyWrite(err, "existe otra materia con el mismo nombre")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a subject. Returns sql.ErrNoRows when the id does not exist.
func (r *SubjectRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM materias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
