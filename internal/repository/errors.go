package repository

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// classifyWrite turns a write failure into the typed taxonomy: unique
// constraint violations surface as ErrDuplicate, matched structurally rather
// than by error-message comparison; everything else stays unclassified for
// the service layer to degrade to an internal error.
func classifyWrite(err error, duplicateMessage string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return appErrors.Clone(appErrors.ErrDuplicate, duplicateMessage)
	}
	return err
}
