package credit

import (
	"context"
	"database/sql"
	"errors"

	crediterrors "github.com/danny20232023/hris-sub007/internal/credit/errors"
	"github.com/danny20232023/hris-sub007/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Movement describes one reserve or release. Reference makes the movement idempotent.
type Movement struct {
	CompanyID  string
	EmployeeID string
	Category   string
	Amount     decimal.Decimal
	Reference  string
	ActorID    string
	Note       string
}

// Ledger is the credit balance store used by the request lifecycle.
// Reserve and Release must run inside the caller's transaction (see WithTx).
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	GetBalance(ctx context.Context, companyID, employeeID, category string) (decimal.Decimal, error)
	Reserve(ctx context.Context, m Movement) error
	Release(ctx context.Context, m Movement) error
}

type ledger struct {
	repo   Repository
	logger *zap.Logger
}

func NewLedger(repo Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("credit.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("credit.ledger")
	}
	return &ledger{repo: repo, logger: l}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{repo: l.repo.WithTx(tx), logger: l.logger}
}

// GetBalance treats a missing balance row as zero.
func (l *ledger) GetBalance(ctx context.Context, companyID, employeeID, category string) (decimal.Decimal, error) {
	if !IsValidCategory(category) {
		return decimal.Zero, crediterrors.ErrInvalidCategory
	}
	b, err := l.repo.FindBalance(ctx, companyID, employeeID, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return b.Amount, nil
}

func (l *ledger) Reserve(ctx context.Context, m Movement) error {
	if err := validateMovement(m); err != nil {
		return err
	}
	amount := m.Amount.Round(Scale)

	b, err := l.repo.FindBalanceForUpdate(ctx, m.CompanyID, m.EmployeeID, m.Category)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.logger.Error("reserve lock balance failed", zap.String("reference", m.Reference), zap.Error(err))
		return err
	}

	applied, err := l.repo.EntryExists(ctx, m.Reference)
	if err != nil {
		return err
	}
	if applied {
		l.logger.Debug("reserve already applied", zap.String("reference", m.Reference))
		return nil
	}

	current := decimal.Zero
	if b != nil {
		current = b.Amount
	}
	if b == nil || current.LessThan(amount) {
		l.logger.Warn("reserve rejected, insufficient credit",
			zap.String("employee_id", m.EmployeeID),
			zap.String("category", m.Category),
			zap.String("balance", Format(current)),
			zap.String("requested", Format(amount)),
		)
		return InsufficientCredit(m.EmployeeID, m.Category, current, amount)
	}

	after := current.Sub(amount)
	if err := l.repo.UpdateAmount(ctx, b.ID, after); err != nil {
		l.logger.Error("reserve update balance failed", zap.String("reference", m.Reference), zap.Error(err))
		return err
	}
	if err := l.repo.CreateEntry(ctx, newEntry(m, amount.Neg(), after, ReasonReserve)); err != nil {
		l.logger.Error("reserve create entry failed", zap.String("reference", m.Reference), zap.Error(err))
		return err
	}

	l.logger.Info("credit reserved",
		zap.String("employee_id", m.EmployeeID),
		zap.String("category", m.Category),
		zap.String("amount", Format(amount)),
		zap.String("balance_after", Format(after)),
	)
	return nil
}

func (l *ledger) Release(ctx context.Context, m Movement) error {
	if err := validateMovement(m); err != nil {
		return err
	}
	amount := m.Amount.Round(Scale)

	b, err := lockOrCreateBalance(ctx, l.repo, m.CompanyID, m.EmployeeID, m.Category)
	if err != nil {
		l.logger.Error("release lock balance failed", zap.String("reference", m.Reference), zap.Error(err))
		return err
	}

	applied, err := l.repo.EntryExists(ctx, m.Reference)
	if err != nil {
		return err
	}
	if applied {
		l.logger.Debug("release already applied", zap.String("reference", m.Reference))
		return nil
	}

	after := b.Amount.Add(amount)
	if err := l.repo.UpdateAmount(ctx, b.ID, after); err != nil {
		return err
	}
	if err := l.repo.CreateEntry(ctx, newEntry(m, amount, after, ReasonRelease)); err != nil {
		return err
	}

	l.logger.Info("credit released",
		zap.String("employee_id", m.EmployeeID),
		zap.String("category", m.Category),
		zap.String("amount", Format(amount)),
		zap.String("balance_after", Format(after)),
	)
	return nil
}

// lockOrCreateBalance expects ids that were already validated as UUIDs.
func lockOrCreateBalance(ctx context.Context, repo Repository, companyID, employeeID, category string) (*Balance, error) {
	b, err := repo.FindBalanceForUpdate(ctx, companyID, employeeID, category)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := repo.CreateBalance(ctx, &Balance{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		EmployeeID: uuid.MustParse(employeeID),
		Category:   category,
		Amount:     decimal.Zero,
	}); err != nil {
		return nil, err
	}
	return repo.FindBalanceForUpdate(ctx, companyID, employeeID, category)
}

func validateMovement(m Movement) error {
	if _, err := uuid.Parse(m.CompanyID); err != nil {
		return crediterrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(m.EmployeeID); err != nil {
		return crediterrors.ErrInvalidEmployeeID
	}
	if !IsValidCategory(m.Category) {
		return crediterrors.ErrInvalidCategory
	}
	if !m.Amount.IsPositive() || !m.Amount.Equal(m.Amount.Round(Scale)) {
		return crediterrors.ErrInvalidAmount
	}
	if m.Reference == "" {
		return apperror.RequiredField("reference")
	}
	return nil
}

func newEntry(m Movement, delta, after decimal.Decimal, reason string) *Entry {
	e := &Entry{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(m.CompanyID),
		EmployeeID:   uuid.MustParse(m.EmployeeID),
		Category:     m.Category,
		Delta:        delta,
		BalanceAfter: after,
		Reason:       reason,
		Reference:    m.Reference,
		Note:         m.Note,
	}
	if actor, err := uuid.Parse(m.ActorID); err == nil {
		e.CreatedBy = &actor
	}
	return e
}

// InsufficientCredit builds the typed rejection carrying category, balance and shortfall.
func InsufficientCredit(employeeID, category string, balance, requested decimal.Decimal) error {
	return apperror.WithDetails(crediterrors.ErrInsufficientCredit, crediterrors.InsufficientDetails{
		EmployeeID: employeeID,
		Category:   category,
		Balance:    Format(balance),
		Requested:  Format(requested),
		Shortfall:  Format(requested.Sub(balance)),
	})
}
