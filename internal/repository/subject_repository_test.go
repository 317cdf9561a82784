package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unahur-dev/academico-api/internal/models"
)

func subjectListColumns() []string {
	return []string{"id", "nombre", "id_carrera", "id_docente", "carrera_nombre", "docente_nombre", "docente_apellido"}
}

func TestSubjectRepositoryListEmbedsRelations(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows(subjectListColumns()).
		AddRow(1, "Algoritmos", 2, 3, "Informatica", "Ana", "Gomez").
		AddRow(2, "Anatomia", 4, 5, "Enfermeria", "Luis", "Perez")
	mock.ExpectQuery("LEFT JOIN carreras c ON c.id = m.id_carrera").
		WithArgs(10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM materias")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	subjects, total, err := repo.List(context.Background(), models.PageQuery{})
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, 2, total)

	first := subjects[0]
	assert.Equal(t, "Algoritmos", first.Name)
	require.NotNil(t, first.Career)
	assert.Equal(t, 2, first.Career.ID)
	assert.Equal(t, "Informatica", first.Career.Name)
	require.NotNil(t, first.Teacher)
	assert.Equal(t, 3, first.Teacher.ID)
	assert.Equal(t, "Ana", first.Teacher.Name)
	assert.Equal(t, "Gomez", first.Teacher.Surname)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryListMissingRelations(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows(subjectListColumns()).
		AddRow(1, "Algoritmos", 2, 3, nil, nil, nil)
	mock.ExpectQuery("LEFT JOIN docentes d ON d.id = m.id_docente").
		WithArgs(10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM materias")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	subjects, _, err := repo.List(context.Background(), models.PageQuery{})
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Nil(t, subjects[0].Career)
	assert.Nil(t, subjects[0].Teacher)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryFindByIDStaysFlat(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nombre, id_carrera, id_docente FROM materias WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "id_carrera", "id_docente"}).
			AddRow(1, "Algoritmos", 2, 3))

	subject, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Algoritmos", subject.Name)
	assert.Nil(t, subject.Career)
	assert.Nil(t, subject.Teacher)
	assert.NoError(t, mock.ExpectationsWereMet())
}
