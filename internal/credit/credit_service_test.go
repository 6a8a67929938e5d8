package credit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danny20232023/hris-sub007/internal/credit"
	crediterrors "github.com/danny20232023/hris-sub007/internal/credit/errors"
	creditMock "github.com/danny20232023/hris-sub007/internal/credit/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type creditServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *creditMock.MockRepository
	service credit.Service
}

func setupCreditService(t *testing.T) *creditServiceDeps {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	repo := creditMock.NewMockRepository(ctrl)
	return &creditServiceDeps{
		sqlMock: sqlMock,
		repo:    repo,
		service: credit.NewService(db, repo),
	}
}

func TestCreditService_GetBalances(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("fills missing categories with zero", func(t *testing.T) {
		deps := setupCreditService(t)
		deps.repo.EXPECT().EmployeeBelongsToCompany(ctx, companyID, employeeID).Return(true, nil)
		deps.repo.EXPECT().ListBalances(ctx, companyID, employeeID).Return([]credit.Balance{
			{Category: credit.CategoryVacation, Amount: decimal.RequireFromString("5")},
		}, nil)

		resp, err := deps.service.GetBalances(ctx, companyID, employeeID)

		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, credit.CategoryVacation, resp[0].Category)
		assert.Equal(t, "5.000", resp[0].Amount)
		assert.Equal(t, credit.CategorySick, resp[1].Category)
		assert.Equal(t, "0.000", resp[1].Amount)
	})

	t.Run("employee of another company", func(t *testing.T) {
		deps := setupCreditService(t)
		deps.repo.EXPECT().EmployeeBelongsToCompany(ctx, companyID, employeeID).Return(false, nil)

		_, err := deps.service.GetBalances(ctx, companyID, employeeID)
		assert.True(t, errors.Is(err, crediterrors.ErrEmployeeNotFound))
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupCreditService(t)
		_, err := deps.service.GetBalances(ctx, companyID, "not-a-uuid")
		assert.True(t, errors.Is(err, crediterrors.ErrInvalidEmployeeID))
	})
}

func TestCreditService_Adjust(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	actorID := uuid.New().String()
	balanceID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupCreditService(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeBelongsToCompany(ctx, companyID, employeeID).Return(true, nil)
		deps.repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategoryVacation).
			Return(&credit.Balance{ID: balanceID, Amount: decimal.RequireFromString("2.000")}, nil)
		deps.repo.EXPECT().UpdateAmount(ctx, balanceID, gomock.Any()).Return(nil)
		deps.repo.EXPECT().CreateEntry(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *credit.Entry) error {
				assert.Equal(t, credit.ReasonAdjust, e.Reason)
				assert.Equal(t, "1.500", credit.Format(e.Delta))
				assert.Equal(t, "3.500", credit.Format(e.BalanceAfter))
				assert.NotNil(t, e.CreatedBy)
				return nil
			})

		resp, err := deps.service.Adjust(ctx, companyID, actorID, employeeID, credit.AdjustCreditRequest{
			Category: "vacation",
			Delta:    "1.5",
			Note:     "carry over",
		})

		require.NoError(t, err)
		assert.Equal(t, "3.500", resp.Amount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("never below zero", func(t *testing.T) {
		deps := setupCreditService(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeBelongsToCompany(ctx, companyID, employeeID).Return(true, nil)
		deps.repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategorySick).
			Return(&credit.Balance{ID: balanceID, Amount: decimal.RequireFromString("1.000")}, nil)

		_, err := deps.service.Adjust(ctx, companyID, actorID, employeeID, credit.AdjustCreditRequest{
			Category: credit.CategorySick,
			Delta:    "-1.001",
		})

		assert.True(t, errors.Is(err, crediterrors.ErrNegativeBalance))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid delta", func(t *testing.T) {
		deps := setupCreditService(t)
		for _, delta := range []string{"abc", "0", "1.2345"} {
			_, err := deps.service.Adjust(ctx, companyID, actorID, employeeID, credit.AdjustCreditRequest{
				Category: credit.CategorySick,
				Delta:    delta,
			})
			assert.True(t, errors.Is(err, crediterrors.ErrInvalidAmount), delta)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		deps := setupCreditService(t)
		_, err := deps.service.Adjust(ctx, companyID, actorID, employeeID, credit.AdjustCreditRequest{
			Category: "BIRTHDAY",
			Delta:    "1",
		})
		assert.True(t, errors.Is(err, crediterrors.ErrInvalidCategory))
	})
}

func TestCreditService_EnsureBalances(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	deps := setupCreditService(t)
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	gomock.InOrder(
		deps.repo.EXPECT().CreateBalance(ctx, gomock.Any()).Return(true, nil),
		deps.repo.EXPECT().CreateBalance(ctx, gomock.Any()).Return(false, nil),
	)
	deps.repo.EXPECT().CreateEntry(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e *credit.Entry) error {
			assert.Equal(t, credit.ReasonOpening, e.Reason)
			assert.Equal(t, credit.CategoryVacation, e.Category)
			return nil
		})

	require.NoError(t, deps.service.EnsureBalances(ctx, companyID, employeeID))
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
