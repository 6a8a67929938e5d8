package credit

import (
	"context"
	"database/sql"

	"github.com/danny20232023/hris-sub007/internal/shared/connection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=credit_repo.go -destination=mock/credit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindBalance(ctx context.Context, companyID, employeeID, category string) (*Balance, error)
	FindBalanceForUpdate(ctx context.Context, companyID, employeeID, category string) (*Balance, error)
	ListBalances(ctx context.Context, companyID, employeeID string) ([]Balance, error)
	CreateBalance(ctx context.Context, b *Balance) (bool, error)
	UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	EntryExists(ctx context.Context, reference string) (bool, error)
	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, companyID, employeeID, category string) ([]Entry, error)
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
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

func (r *repository) FindBalance(ctx context.Context, companyID, employeeID, category string) (*Balance, error) {
	var b Balance
	err := r.conn(ctx).
		Where("company_id = ? AND employee_id = ? AND category = ?", companyID, employeeID, category).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindBalanceForUpdate(ctx context.Context, companyID, employeeID, category string) (*Balance, error) {
	var b Balance
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND employee_id = ? AND category = ?", companyID, employeeID, category).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListBalances(ctx context.Context, companyID, employeeID string) ([]Balance, error) {
	var balances []Balance
	err := r.conn(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("category ASC").
		Find(&balances).Error
	return balances, err
}

// CreateBalance reports false when the (company, employee, category) row already existed.
func (r *repository) CreateBalance(ctx context.Context, b *Balance) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(b)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return r.conn(ctx).
		Model(&Balance{}).
		Where("id = ?", id).
		Update("amount", amount).Error
}

func (r *repository) EntryExists(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Entry{}).
		Where("reference = ?", reference).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateEntry(ctx context.Context, e *Entry) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) ListEntries(ctx context.Context, companyID, employeeID, category string) ([]Entry, error) {
	var entries []Entry
	db := r.conn(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
