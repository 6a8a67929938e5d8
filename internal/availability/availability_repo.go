package availability

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/danny20232023/hris-sub007/internal/shared/connection"
	"github.com/danny20232023/hris-sub007/internal/shared/dateset"
	"github.com/danny20232023/hris-sub007/internal/tenant"

	"gorm.io/gorm"
)

const (
	SourceLeave  = "leave"
	SourceTravel = "travel"
)

const statusApproved = "APPROVED"

// Claim is one employee's hold on a set of dates through an approved request.
type Claim struct {
	RequestID  string
	Source     string
	EmployeeID string
	Dates      dateset.Set
}

//go:generate mockgen -source=availability_repo.go -destination=mock/availability_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockEmployees(ctx context.Context, companyID string, employeeIDs []string) error
	FindApprovedClaims(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time, excludeRequestID string) ([]Claim, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Conn(ctx, r.db, r.tx)
}

// LockEmployees takes a transaction-scoped advisory lock per employee, in sorted order so
// concurrent approvals touching overlapping employee sets cannot deadlock.
func (r *repository) LockEmployees(ctx context.Context, companyID string, employeeIDs []string) error {
	keys := make([]string, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		keys = append(keys, companyID+":"+id)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := r.conn(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}
	}
	return nil
}

type claimRow struct {
	RequestID  string
	EmployeeID string
	Dates      dateset.Set
}

// FindApprovedClaims pre-filters by the [from, to] range; callers intersect the exact dates.
func (r *repository) FindApprovedClaims(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time, excludeRequestID string) ([]Claim, error) {
	var leaveRows []claimRow
	q := r.conn(ctx).
		Table("leave_requests").
		Select("id AS request_id, employee_id, dates").
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", statusApproved).
		Where("deleted_at IS NULL").
		Where("employee_id IN ?", employeeIDs).
		Where("NOT (end_date < ? OR start_date > ?)", from, to)
	if excludeRequestID != "" {
		q = q.Where("id <> ?", excludeRequestID)
	}
	if err := q.Scan(&leaveRows).Error; err != nil {
		return nil, err
	}

	var travelRows []claimRow
	q = r.conn(ctx).
		Table("travel_requests AS tr").
		Select("tr.id AS request_id, tre.employee_id, tr.dates").
		Joins("JOIN travel_request_employees AS tre ON tre.travel_request_id = tr.id").
		Scopes(tenant.ScopeAs("tr", companyID)).
		Where("tr.status = ?", statusApproved).
		Where("tr.deleted_at IS NULL").
		Where("tre.employee_id IN ?", employeeIDs).
		Where("NOT (tr.end_date < ? OR tr.start_date > ?)", from, to)
	if excludeRequestID != "" {
		q = q.Where("tr.id <> ?", excludeRequestID)
	}
	if err := q.Scan(&travelRows).Error; err != nil {
		return nil, err
	}

	claims := make([]Claim, 0, len(leaveRows)+len(travelRows))
	for _, row := range leaveRows {
		claims = append(claims, Claim{RequestID: row.RequestID, Source: SourceLeave, EmployeeID: row.EmployeeID, Dates: row.Dates})
	}
	for _, row := range travelRows {
		claims = append(claims, Claim{RequestID: row.RequestID, Source: SourceTravel, EmployeeID: row.EmployeeID, Dates: row.Dates})
	}
	return claims, nil
}
