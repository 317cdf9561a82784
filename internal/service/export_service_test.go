package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

type mockRosterRepo struct {
	students []models.Student
	err      error
}

func (m *mockRosterRepo) ListAll(ctx context.Context) ([]models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.students, nil
}

func TestExportServiceStudentRosterCSV(t *testing.T) {
	repo := &mockRosterRepo{students: []models.Student{
		{ID: 1, Name: "Ana", Surname: "Gomez", Age: 22, CareerID: 3},
		{ID: 2, Name: "Luis", Surname: "Perez", Age: 25, CareerID: 1},
	}}
	svc := NewExportService(repo, zap.NewNop(), &recordingSink{})

	file, err := svc.StudentRoster(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "alumnos-"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	body := string(file.Content)
	assert.Contains(t, body, "ID,Nombre,Apellido,Edad,Carrera")
	assert.Contains(t, body, "1,Ana,Gomez,22,3")
	assert.Contains(t, body, "2,Luis,Perez,25,1")
}

func TestExportServiceStudentRosterPDF(t *testing.T) {
	repo := &mockRosterRepo{students: []models.Student{{ID: 1, Name: "Ana", Surname: "Gomez", Age: 22, CareerID: 3}}}
	svc := NewExportService(repo, zap.NewNop(), &recordingSink{})

	file, err := svc.StudentRoster(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, len(file.Content) > 0)
	assert.Equal(t, "%PDF", string(file.Content[:4]))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&mockRosterRepo{}, zap.NewNop(), &recordingSink{})

	_, err := svc.StudentRoster(context.Background(), "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportServiceRepositoryError(t *testing.T) {
	svc := NewExportService(&mockRosterRepo{err: errors.New("db down")}, zap.NewNop(), &recordingSink{})

	_, err := svc.StudentRoster(context.Background(), FormatCSV)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))
}
