package credit

import (
	"context"
	"database/sql"
	"time"

	crediterrors "github.com/danny20232023/hris-sub007/internal/credit/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=credit_service.go -destination=mock/credit_service_mock.go -package=mock
type Service interface {
	GetBalances(ctx context.Context, companyID, employeeID string) ([]BalanceResponse, error)
	GetHistory(ctx context.Context, companyID, employeeID, category string) ([]EntryResponse, error)
	Adjust(ctx context.Context, companyID, actorID, employeeID string, req AdjustCreditRequest) (BalanceResponse, error)
	EnsureBalances(ctx context.Context, companyID, employeeID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("credit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("credit.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetBalances(ctx context.Context, companyID, employeeID string) ([]BalanceResponse, error) {
	if err := s.checkEmployee(ctx, s.repo, companyID, employeeID); err != nil {
		return nil, err
	}

	balances, err := s.repo.ListBalances(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		byCategory[b.Category] = b.Amount
	}

	resp := make([]BalanceResponse, 0, len(Categories))
	for _, c := range Categories {
		resp = append(resp, BalanceResponse{
			EmployeeID: employeeID,
			Category:   c,
			Amount:     Format(byCategory[c]),
		})
	}
	return resp, nil
}

func (s *service) GetHistory(ctx context.Context, companyID, employeeID, category string) ([]EntryResponse, error) {
	category = NormalizeCategory(category)
	if category != "" && !IsValidCategory(category) {
		return nil, crediterrors.ErrInvalidCategory
	}
	if err := s.checkEmployee(ctx, s.repo, companyID, employeeID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEntries(ctx, companyID, employeeID, category)
	if err != nil {
		return nil, err
	}

	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapEntryToResponse(e)
	}
	return resp, nil
}

func (s *service) Adjust(ctx context.Context, companyID, actorID, employeeID string, req AdjustCreditRequest) (BalanceResponse, error) {
	category := NormalizeCategory(req.Category)
	s.logger.Debug("adjust credit requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", employeeID),
		zap.String("category", category),
		zap.String("delta", req.Delta),
	)

	if !IsValidCategory(category) {
		return BalanceResponse{}, crediterrors.ErrInvalidCategory
	}
	delta, err := decimal.NewFromString(req.Delta)
	if err != nil || delta.IsZero() || !delta.Equal(delta.Round(Scale)) {
		return BalanceResponse{}, crediterrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("adjust credit begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.checkEmployee(ctx, qtx, companyID, employeeID); err != nil {
		return BalanceResponse{}, err
	}

	b, err := lockOrCreateBalance(ctx, qtx, companyID, employeeID, category)
	if err != nil {
		s.logger.Error("adjust credit lock balance failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	after := b.Amount.Add(delta)
	if after.IsNegative() {
		s.logger.Warn("adjust credit rejected, negative balance",
			zap.String("employee_id", employeeID),
			zap.String("balance", Format(b.Amount)),
			zap.String("delta", Format(delta)),
		)
		return BalanceResponse{}, crediterrors.ErrNegativeBalance
	}

	if err := qtx.UpdateAmount(ctx, b.ID, after); err != nil {
		return BalanceResponse{}, err
	}
	entry := newEntry(Movement{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Category:   category,
		Reference:  "adjust:" + uuid.NewString(),
		ActorID:    actorID,
		Note:       req.Note,
	}, delta, after, ReasonAdjust)
	if err := qtx.CreateEntry(ctx, entry); err != nil {
		s.logger.Error("adjust credit create entry failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("adjust credit commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	s.logger.Info("adjust credit success",
		zap.String("employee_id", employeeID),
		zap.String("category", category),
		zap.String("balance_after", Format(after)),
	)

	return BalanceResponse{EmployeeID: employeeID, Category: category, Amount: Format(after)}, nil
}

// EnsureBalances opens a zero balance for every category the employee does not have yet.
func (s *service) EnsureBalances(ctx context.Context, companyID, employeeID string) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return crediterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return crediterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	opened := 0
	for _, c := range Categories {
		created, err := qtx.CreateBalance(ctx, &Balance{
			ID:         uuid.New(),
			CompanyID:  companyUUID,
			EmployeeID: employeeUUID,
			Category:   c,
			Amount:     decimal.Zero,
		})
		if err != nil {
			s.logger.Error("ensure balances create failed", zap.String("category", c), zap.Error(err))
			return err
		}
		if !created {
			continue
		}
		opened++
		if err := qtx.CreateEntry(ctx, &Entry{
			ID:           uuid.New(),
			CompanyID:    companyUUID,
			EmployeeID:   employeeUUID,
			Category:     c,
			Delta:        decimal.Zero,
			BalanceAfter: decimal.Zero,
			Reason:       ReasonOpening,
			Reference:    "opening:" + companyID + ":" + employeeID + ":" + c,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("ensure balances done",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.Int("opened", opened),
	)
	return nil
}

func (s *service) checkEmployee(ctx context.Context, repo Repository, companyID, employeeID string) error {
	if _, err := uuid.Parse(companyID); err != nil {
		return crediterrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return crediterrors.ErrInvalidEmployeeID
	}
	belongs, err := repo.EmployeeBelongsToCompany(ctx, companyID, employeeID)
	if err != nil {
		return err
	}
	if !belongs {
		return crediterrors.ErrEmployeeNotFound
	}
	return nil
}

func mapEntryToResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:           e.ID.String(),
		Category:     e.Category,
		Delta:        Format(e.Delta),
		BalanceAfter: Format(e.BalanceAfter),
		Reason:       e.Reason,
		Reference:    e.Reference,
		Note:         e.Note,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.CreatedBy != nil {
		v := e.CreatedBy.String()
		resp.CreatedBy = &v
	}
	return resp
}
