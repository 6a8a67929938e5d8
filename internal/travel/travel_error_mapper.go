package travel

import (
	"errors"

	travelerrors "github.com/danny20232023/hris-sub007/internal/travel/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// invalidTextRepresentation is raised by postgres when a malformed uuid reaches a query.
const invalidTextRepresentation = "22P02"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return travelerrors.ErrTravelNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_travel_requests_number":
		return travelerrors.ErrTravelNumberTaken
	case pgErr.Code == invalidTextRepresentation:
		return travelerrors.ErrInvalidTravelID
	}
	return err
}
