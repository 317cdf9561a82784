package service

import (
	"go.uber.org/zap"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

type logReader interface {
	Entries() ([]string, error)
}

// LogService exposes the audit trail as a paginated, read-only listing.
type LogService struct {
	reader logReader
	logger *zap.Logger
}

// NewLogService constructs a LogService.
func NewLogService(reader logReader, logger *zap.Logger) *LogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogService{reader: reader, logger: logger}
}

// List returns one page of audit lines in file order, oldest first. A page
// past the end of the file yields an empty slice, never an error.
func (s *LogService) List(q models.PageQuery) ([]string, models.PageInfo, error) {
	q = q.Normalize()

	entries, err := s.reader.Entries()
	if err != nil {
		s.logger.Error("audit log read failed", zap.Error(err))
		return nil, models.PageInfo{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read logs")
	}

	total := len(entries)
	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	page := make([]string, 0, end-start)
	page = append(page, entries[start:end]...)

	return page, models.PageInfo{Page: q.Page, PageSize: q.PageSize, Total: total}, nil
}
