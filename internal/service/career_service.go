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

type careerRepository interface {
	List(ctx context.Context, q models.PageQuery) ([]models.Career, int, error)
	FindByID(ctx context.Context, id int) (*models.Career, error)
	Create(ctx context.Context, career *models.Career) error
	Update(ctx context.Context, career *models.Career) error
	Delete(ctx context.Context, id int) error
}

// CareerRequest carries the mutable fields of a career for create and the
// full-replace update.
type CareerRequest struct {
	Name  string `json:"nombre" validate:"required"`
	Years int    `json:"años" validate:"gte=0"`
}

// CareerService orchestrates career operations, mirroring every outcome to
// the audit sink.
type CareerService struct {
	repo      careerRepository
	validator *validator.Validate
	logger    *zap.Logger
	sink      AuditSink
}

// NewCareerService constructs a CareerService.
func NewCareerService(repo careerRepository, validate *validator.Validate, logger *zap.Logger, sink AuditSink) *CareerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &CareerService{repo: repo, validator: validate, logger: logger, sink: sink}
}

// List returns one page of careers plus pagination data.
func (s *CareerService) List(ctx context.Context, q models.PageQuery) ([]models.Career, models.PageInfo, error) {
	q = q.Normalize()
	careers, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.sink.Append("Error al consultar las carreras")
		return nil, models.PageInfo{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list careers")
	}
	s.sink.Append("Consulta exitosa a la lista de carreras")
	return careers, models.PageInfo{Page: q.Page, PageSize: q.PageSize, Total: total}, nil
}

// Get returns a career by id.
func (s *CareerService) Get(ctx context.Context, id int) (*models.Career, error) {
	career, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("No se encontro la carrera")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "carrera no encontrada")
		}
		s.sink.Append("Error al buscar la carrera")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load career")
	}
	s.sink.Append("Busqueda de carrera exitosa")
	return career, nil
}

// Create registers a new career and returns it with its generated id.
func (s *CareerService) Create(ctx context.Context, req CareerRequest) (*models.Career, error) {
	if err := s.validator.Struct(req); err != nil {
		s.sink.Append("Error en POST, carrera invalida")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid career payload")
	}

	career := &models.Career{Name: strings.TrimSpace(req.Name), Years: req.Years}
	if err := s.repo.Create(ctx, career); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error en POST, carrera duplicada")
			return nil, err
		}
		s.sink.Append("Error en POST, error al insertar")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create career")
	}
	s.sink.Append("Post exitoso en la lista de carreras")
	return career, nil
}

// Update replaces the mutable fields of an existing career. The entity is
// looked up first so a missing id is reported before any write happens.
func (s *CareerService) Update(ctx context.Context, id int, req CareerRequest) (*models.Career, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid career payload")
	}

	career, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Carrera no encontrada")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "carrera no encontrada")
		}
		s.sink.Append("Error al buscar la carrera")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load career")
	}

	career.Name = strings.TrimSpace(req.Name)
	career.Years = req.Years

	if err := s.repo.Update(ctx, career); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error de validacion al actualizar la carrera")
			return nil, err
		}
		s.sink.Append("Error al intentar actualizar la carrera")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update career")
	}
	s.sink.Append("Carrera actualizada correctamente")
	return career, nil
}

// Delete removes a career by id.
func (s *CareerService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Error: carrera no encontrada")
			return appErrors.Clone(appErrors.ErrNotFound, "carrera no encontrada")
		}
		s.sink.Append("Error al intentar eliminar la carrera")
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete career")
	}
	s.sink.Append("Carrera eliminada con exito")
	return nil
}
