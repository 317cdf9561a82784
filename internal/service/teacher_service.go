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

type teacherRepository interface {
	List(ctx context.Context, q models.PageQuery) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id int) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int) error
}

// TeacherRequest carries the mutable fields of a teacher.
type TeacherRequest struct {
	Name      string `json:"nombre" validate:"required"`
	Surname   string `json:"apellido" validate:"required"`
	SubjectID int    `json:"idMateria" validate:"gte=0"`
	CareerID  int    `json:"idCarrera" validate:"gte=0"`
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
	sink      AuditSink
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger, sink AuditSink) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger, sink: sink}
}

// List returns one page of teachers plus pagination data.
func (s *TeacherService) List(ctx context.Context, q models.PageQuery) ([]models.Teacher, models.PageInfo, error) {
	q = q.Normalize()
	teachers, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.sink.Append("Error al consultar los docentes")
		return nil, models.PageInfo{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	s.sink.Append("Consulta exitosa a la lista de docentes")
	return teachers, models.PageInfo{Page: q.Page, PageSize: q.PageSize, Total: total}, nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id int) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("No se encontro al docente")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "docente no encontrado")
		}
		s.sink.Append("Error al buscar al docente")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	s.sink.Append("Busqueda de docente exitosa")
	return teacher, nil
}

// Create registers a new teacher.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		s.sink.Append("Error en POST, docente invalido")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	teacher := &models.Teacher{
		Name:      strings.TrimSpace(req.Name),
		Surname:   strings.TrimSpace(req.Surname),
		SubjectID: req.SubjectID,
		CareerID:  req.CareerID,
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error en POST, docente duplicado")
			return nil, err
		}
		s.sink.Append("Error en POST, error al insertar")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	s.sink.Append("Post exitoso en la lista de docentes")
	return teacher, nil
}

// Update replaces the mutable fields of an existing teacher.
func (s *TeacherService) Update(ctx context.Context, id int, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Docente no encontrado")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "docente no encontrado")
		}
		s.sink.Append("Error al buscar al docente")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	teacher.Name = strings.TrimSpace(req.Name)
	teacher.Surname = strings.TrimSpace(req.Surname)
	teacher.SubjectID = req.SubjectID
	teacher.CareerID = req.CareerID

	if err := s.repo.Update(ctx, teacher); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error de validacion al actualizar al docente")
			return nil, err
		}
		s.sink.Append("Error al intentar actualizar al docente")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher")
	}
	s.sink.Append("Docente actualizado correctamente")
	return teacher, nil
}

// Delete removes a teacher by id.
func (s *TeacherService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Error: docente no encontrado")
			return appErrors.Clone(appErrors.ErrNotFound, "docente no encontrado")
		}
		s.sink.Append("Error al intentar eliminar al docente")
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher")
	}
	s.sink.Append("Docente eliminado con exito")
	return nil
}
