package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, q models.PageQuery) ([]models.Student, int, error)
	FindByID(ctx context.Context, id int) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int) error
}

// StudentRequest carries the mutable fields of a student.
type StudentRequest struct {
	Name     string `json:"nombre" validate:"required"`
	Surname  string `json:"apellido" validate:"required"`
	Age      int    `json:"edad" validate:"gte=0"`
	CareerID int    `json:"idCarrera" validate:"gte=0"`
}

// StudentService orchestrates student operations.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
	sink      AuditSink
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger, sink AuditSink) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &StudentService{repo: repo, validator: validate, logger: logger, sink: sink}
}

// List returns one page of students plus pagination data.
func (s *StudentService) List(ctx context.Context, q models.PageQuery) ([]models.Student, models.PageInfo, error) {
	q = q.Normalize()
	students, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.sink.Append("Error al consultar los alumnos")
		return nil, models.PageInfo{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	s.sink.Append("Consulta exitosa a la lista de alumnos")
	return students, models.PageInfo{Page: q.Page, PageSize: q.PageSize, Total: total}, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("No se encontro al alumno")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
		}
		s.sink.Append("Error al buscar al alumno")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	s.sink.Append("Busqueda de alumno exitosa")
	return student, nil
}

// Create registers a new student. The career reference is advisory and not
// validated against the careers table.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		s.sink.Append("Error en POST, alumno invalido")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student := &models.Student{
		Name:     strings.TrimSpace(req.Name),
		Surname:  strings.TrimSpace(req.Surname),
		Age:      req.Age,
		CareerID: req.CareerID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error en POST, alumno duplicado")
			return nil, err
		}
		s.sink.Append("Error en POST, error al insertar")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.sink.Append("Post exitoso en la lista de alumnos")
	return student, nil
}

// Update replaces the mutable fields of an existing student.
func (s *StudentService) Update(ctx context.Context, id int, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Alumno no encontrado")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
		}
		s.sink.Append("Error al buscar al alumno")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	student.Name = strings.TrimSpace(req.Name)
	student.Surname = strings.TrimSpace(req.Surname)
	student.Age = req.Age
	student.CareerID = req.CareerID

	if err := s.repo.Update(ctx, student); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error de validacion al actualizar al alumno")
			return nil, err
		}
		s.sink.Append("Error al intentar actualizar al alumno")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.sink.Append("Alumno actualizado correctamente")
	return student, nil
}

// Delete removes a student by id.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Error: alumno no encontrado")
			return appErrors.Clone(appErrors.ErrNotFound, "alumno no encontrado")
		}
		s.sink.Append("Error al intentar eliminar al alumno")
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.sink.Append("Alumno eliminado con exito")
	return nil
}
