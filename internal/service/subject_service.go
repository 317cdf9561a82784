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

type subjectRepository interface {
	List(ctx context.Context, q models.PageQuery) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id int) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int) error
}

// SubjectRequest carries the mutable fields of a subject. Career and teacher
// references are required but advisory.
type SubjectRequest struct {
	Name      string `json:"nombre" validate:"required"`
	CareerID  int    `json:"idCarrera" validate:"required,gte=1"`
	TeacherID int    `json:"idDocente" validate:"required,gte=1"`
}

// SubjectService orchestrates subject operations.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
	sink      AuditSink
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger, sink AuditSink) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger, sink: sink}
}

// List returns one page of subjects plus pagination data.
func (s *SubjectService) List(ctx context.Context, q models.PageQuery) ([]models.Subject, models.PageInfo, error) {
	q = q.Normalize()
	subjects, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.sink.Append("Error al consultar las materias")
		return nil, models.PageInfo{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	s.sink.Append("Consulta exitosa a la lista de materias")
	return subjects, models.PageInfo{Page: q.Page, PageSize: q.PageSize, Total: total}, nil
}

// Get returns a subject by id.
func (s *SubjectService) Get(ctx context.Context, id int) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("No se encontro la materia")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "materia no encontrada")
		}
		s.sink.Append("Error al buscar la materia")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	s.sink.Append("Busqueda de materia exitosa")
	return subject, nil
}

// Create registers a new subject.
func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		s.sink.Append("Error en POST, materia invalida")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject := &models.Subject{
		Name:      strings.TrimSpace(req.Name),
		CareerID:  req.CareerID,
		TeacherID: req.TeacherID,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error en POST, materia duplicada")
			return nil, err
		}
		s.sink.Append("Error en POST, error al insertar")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.sink.Append("Post exitoso en la lista de materias")
	return subject, nil
}

// Update replaces the mutable fields of an existing subject.
func (s *SubjectService) Update(ctx context.Context, id int, req SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Materia no encontrada")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "materia no encontrada")
		}
		s.sink.Append("Error al buscar la materia")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	subject.Name = strings.TrimSpace(req.Name)
	subject.CareerID = req.CareerID
	subject.TeacherID = req.TeacherID

	if err := s.repo.Update(ctx, subject); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error de validacion al actualizar la materia")
			return nil, err
		}
		s.sink.Append("Error al intentar actualizar la materia")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	s.sink.Append("Materia actualizada correctamente")
	return subject, nil
}

// Delete removes a subject by id.
func (s *SubjectService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Error: materia no encontrada")
			return appErrors.Clone(appErrors.ErrNotFound, "materia no encontrada")
		}
		s.sink.Append("Error al intentar eliminar la materia")
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	s.sink.Append("Materia eliminada con exito")
	return nil
}
