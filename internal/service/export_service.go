package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
	"github.com/unahur-dev/academico-api/pkg/export"
)

// Export formats accepted by the roster endpoint.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type rosterRepository interface {
	ListAll(ctx context.Context) ([]models.Student, error)
}

// ExportFile is a rendered document ready to be streamed to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders the full student roster into downloadable documents.
type ExportService struct {
	repo   rosterRepository
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	sink   AuditSink
}

// NewExportService constructs an ExportService.
func NewExportService(repo rosterRepository, logger *zap.Logger, sink AuditSink) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &ExportService{
		repo:   repo,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
		sink:   sink,
	}
}

// StudentRoster renders every student into the requested format. Unsupported
// formats fail validation.
func (s *ExportService) StudentRoster(ctx context.Context, format string) (*ExportFile, error) {
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("formato no soportado: %s", format))
	}

	students, err := s.repo.ListAll(ctx)
	if err != nil {
		s.sink.Append("Error al exportar la lista de alumnos")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students for export")
	}

	data := export.Dataset{
		Headers: []string{"ID", "Nombre", "Apellido", "Edad", "Carrera"},
		Rows:    make([][]string, 0, len(students)),
	}
	for _, st := range students {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(st.ID),
			st.Name,
			st.Surname,
			strconv.Itoa(st.Age),
			strconv.Itoa(st.CareerID),
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	var file ExportFile
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		file = ExportFile{
			Filename:    fmt.Sprintf("alumnos-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}
	case FormatPDF:
		content, err := s.pdf.Render(data, "Listado de alumnos")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		file = ExportFile{
			Filename:    fmt.Sprintf("alumnos-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}
	}

	s.sink.Append(fmt.Sprintf("Exportacion de alumnos generada (%s)", format))
	return &file, nil
}
