package travel

import (
	"context"
	"database/sql"
	"time"

	"github.com/danny20232023/hris-sub007/internal/shared/connection"
	"github.com/danny20232023/hris-sub007/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=travel_repo.go -destination=mock/travel_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *TravelRequest) error
	FindAll(ctx context.Context, companyID string, filter TravelFilter) ([]TravelRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*TravelRequest, error)
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*TravelRequest, error)
	CompareAndSwap(ctx context.Context, t *TravelRequest, expectedStatus string) (bool, error)
	ReplaceEmployees(ctx context.Context, t *TravelRequest) error
	Delete(ctx context.Context, companyID, id string) error
	FindEmployees(ctx context.Context, companyID string, ids []string) ([]Employee, error)
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

func (r *repository) Create(ctx context.Context, t *TravelRequest) error {
	if err := r.conn(ctx).Omit(clause.Associations).Create(t).Error; err != nil {
		return err
	}
	return r.insertEmployees(ctx, t)
}

func (r *repository) insertEmployees(ctx context.Context, t *TravelRequest) error {
	if len(t.Employees) == 0 {
		return nil
	}
	rows := make([]TravelEmployee, len(t.Employees))
	for i, e := range t.Employees {
		rows[i] = TravelEmployee{TravelRequestID: t.ID, EmployeeID: e.EmployeeID}
	}
	return r.conn(ctx).Omit(clause.Associations).Create(&rows).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter TravelFilter) ([]TravelRequest, error) {
	q := r.conn(ctx).
		Preload("Employees.Employee").
		Scopes(tenant.Scope(companyID))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		q = q.Where("id IN (?)",
			r.conn(ctx).Table("travel_request_employees").
				Select("travel_request_id").
				Where("employee_id = ?", filter.EmployeeID),
		)
	}

	var travels []TravelRequest
	err := q.Order("start_date DESC, created_at DESC").Find(&travels).Error
	return travels, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*TravelRequest, error) {
	var t TravelRequest
	err := r.conn(ctx).
		Preload("Employees.Employee").
		Scopes(tenant.Scope(companyID)).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByIDForUpdate row-locks the request; the traveller rows are read in the same transaction.
func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*TravelRequest, error) {
	var t TravelRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	err = r.conn(ctx).
		Where("travel_request_id = ?", t.ID).
		Order("employee_id").
		Find(&t.Employees).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) CompareAndSwap(ctx context.Context, t *TravelRequest, expectedStatus string) (bool, error) {
	res := r.conn(ctx).
		Model(&TravelRequest{}).
		Where("id = ? AND company_id = ? AND status = ?", t.ID, t.CompanyID, expectedStatus).
		Updates(map[string]any{
			"dates":       t.Dates,
			"start_date":  t.StartDate,
			"end_date":    t.EndDate,
			"purpose":     t.Purpose,
			"destination": t.Destination,
			"status":      t.Status,
			"remarks":     t.Remarks,
			"approved_by": t.ApprovedBy,
			"approved_at": t.ApprovedAt,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ReplaceEmployees(ctx context.Context, t *TravelRequest) error {
	err := r.conn(ctx).
		Where("travel_request_id = ?", t.ID).
		Delete(&TravelEmployee{}).Error
	if err != nil {
		return err
	}
	return r.insertEmployees(ctx, t)
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&TravelRequest{}, "id = ?", id).Error
}

func (r *repository) FindEmployees(ctx context.Context, companyID string, ids []string) ([]Employee, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			parsed = append(parsed, u)
		}
	}

	var emps []Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", parsed).
		Where("deleted_at IS NULL").
		Find(&emps).Error
	return emps, err
}
