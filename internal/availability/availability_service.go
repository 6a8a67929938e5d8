package availability

import (
	"context"

	availabilityerrors "github.com/danny20232023/hris-sub007/internal/availability/errors"
	"github.com/danny20232023/hris-sub007/internal/shared/dateset"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckQuery struct {
	EmployeeIDs      []string
	Dates            []string
	ExcludeRequestID string
}

// Service is the advisory availability check used while a request is being built.
// Transitions re-run the same resolver inside their own transaction.
type Service interface {
	Check(ctx context.Context, companyID string, q CheckQuery) (Result, error)
}

type service struct {
	resolver Resolver
	logger   *zap.Logger
}

func NewService(resolver Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("availability.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("availability.service")
	}
	return &service{resolver: resolver, logger: l}
}

func (s *service) Check(ctx context.Context, companyID string, q CheckQuery) (Result, error) {
	dates, err := dateset.ParseNonEmpty(q.Dates)
	if err != nil {
		return Result{}, err
	}

	ids := uniqueStrings(q.EmployeeIDs)
	if len(ids) == 0 {
		return Result{}, availabilityerrors.ErrEmployeesRequired
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return Result{}, availabilityerrors.ErrInvalidEmployeeID
		}
	}
	if q.ExcludeRequestID != "" {
		if _, err := uuid.Parse(q.ExcludeRequestID); err != nil {
			q.ExcludeRequestID = ""
		}
	}

	s.logger.Debug("availability check",
		zap.String("company_id", companyID),
		zap.Int("employees", len(ids)),
		zap.Strings("dates", dates.Strings()),
	)
	return s.resolver.FindUnavailable(ctx, companyID, ids, dates, q.ExcludeRequestID)
}
