package employee

import (
	"errors"

	employeeerrors "github.com/danny20232023/hris-sub007/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// invalidTextRepresentation is raised by postgres when a malformed uuid reaches a query.
const invalidTextRepresentation = "22P02"

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return employeeerrors.ErrEmployeeNotFound
	case errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation:
		return employeeerrors.ErrInvalidEmployeeID
	default:
		return err
	}
}
