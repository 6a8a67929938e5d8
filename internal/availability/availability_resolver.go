package availability

import (
	"context"
	"database/sql"
	"sort"

	availabilityerrors "github.com/danny20232023/hris-sub007/internal/availability/errors"
	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
	"github.com/danny20232023/hris-sub007/internal/shared/dateset"

	"go.uber.org/zap"
)

type Conflict struct {
	EmployeeID string   `json:"employee_id"`
	RequestID  string   `json:"request_id"`
	Source     string   `json:"source"`
	Dates      []string `json:"dates"`
}

type Result struct {
	Unavailable []string   `json:"unavailable"`
	Conflicts   []Conflict `json:"conflicts"`
}

func (r Result) Available() bool {
	return len(r.Unavailable) == 0
}

// ConflictDetails is attached to ErrDateConflict.
type ConflictDetails struct {
	EmployeeIDs []string   `json:"employee_ids"`
	Dates       []string   `json:"dates"`
	Conflicts   []Conflict `json:"conflicts"`
}

// Err returns nil when every candidate is available.
func (r Result) Err() error {
	if r.Available() {
		return nil
	}
	var dates dateset.Set
	for _, c := range r.Conflicts {
		parsed, err := dateset.Parse(c.Dates)
		if err == nil {
			dates = dateset.Union(dates, parsed)
		}
	}
	return apperror.WithDetails(availabilityerrors.ErrDateConflict, ConflictDetails{
		EmployeeIDs: r.Unavailable,
		Dates:       dates.Strings(),
		Conflicts:   r.Conflicts,
	})
}

// Resolver answers which candidate employees are already committed on the given dates.
// For authoritative checks call Lock and FindUnavailable on a resolver bound with WithTx.
type Resolver interface {
	WithTx(tx *sql.Tx) Resolver
	Lock(ctx context.Context, companyID string, employeeIDs []string) error
	FindUnavailable(ctx context.Context, companyID string, employeeIDs []string, dates dateset.Set, excludeRequestID string) (Result, error)
}

type resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("availability.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("availability.resolver")
	}
	return &resolver{repo: repo, logger: l}
}

func (r *resolver) WithTx(tx *sql.Tx) Resolver {
	return &resolver{repo: r.repo.WithTx(tx), logger: r.logger}
}

func (r *resolver) Lock(ctx context.Context, companyID string, employeeIDs []string) error {
	return r.repo.LockEmployees(ctx, companyID, uniqueStrings(employeeIDs))
}

func (r *resolver) FindUnavailable(ctx context.Context, companyID string, employeeIDs []string, dates dateset.Set, excludeRequestID string) (Result, error) {
	result := Result{Unavailable: []string{}, Conflicts: []Conflict{}}
	candidates := uniqueStrings(employeeIDs)
	if len(candidates) == 0 || dates.IsEmpty() {
		return result, nil
	}

	from, to := dates.Bounds()
	claims, err := r.repo.FindApprovedClaims(ctx, companyID, candidates, from, to, excludeRequestID)
	if err != nil {
		r.logger.Error("find approved claims failed", zap.String("company_id", companyID), zap.Error(err))
		return Result{}, err
	}

	wanted := make(map[string]struct{}, len(candidates))
	for _, id := range candidates {
		wanted[id] = struct{}{}
	}

	unavailable := make(map[string]struct{})
	for _, c := range claims {
		if _, ok := wanted[c.EmployeeID]; !ok {
			continue
		}
		if excludeRequestID != "" && c.RequestID == excludeRequestID {
			continue
		}
		overlap := dateset.Intersection(c.Dates, dates)
		if overlap.IsEmpty() {
			continue
		}
		unavailable[c.EmployeeID] = struct{}{}
		result.Conflicts = append(result.Conflicts, Conflict{
			EmployeeID: c.EmployeeID,
			RequestID:  c.RequestID,
			Source:     c.Source,
			Dates:      overlap.Strings(),
		})
	}

	for id := range unavailable {
		result.Unavailable = append(result.Unavailable, id)
	}
	sort.Strings(result.Unavailable)
	sort.Slice(result.Conflicts, func(i, j int) bool {
		a, b := result.Conflicts[i], result.Conflicts[j]
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return a.RequestID < b.RequestID
	})

	if len(result.Unavailable) > 0 {
		r.logger.Debug("employees unavailable",
			zap.String("company_id", companyID),
			zap.Strings("employee_ids", result.Unavailable),
			zap.Strings("dates", dates.Strings()),
		)
	}
	return result, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
