package credit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danny20232023/hris-sub007/internal/credit"
	crediterrors "github.com/danny20232023/hris-sub007/internal/credit/errors"
	creditMock "github.com/danny20232023/hris-sub007/internal/credit/mock"
	"github.com/danny20232023/hris-sub007/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setupLedger(t *testing.T) (*creditMock.MockRepository, credit.Ledger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := creditMock.NewMockRepository(ctrl)
	return repo, credit.NewLedger(repo)
}

func TestLedger_Reserve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	balanceID := uuid.New()

	movement := func(amount string) credit.Movement {
		return credit.Movement{
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Category:   credit.CategoryVacation,
			Amount:     decimal.RequireFromString(amount),
			Reference:  "leave:1:reserve",
		}
	}

	t.Run("exact balance is accepted", func(t *testing.T) {
		repo, ledger := setupLedger(t)

		repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategoryVacation).
			Return(&credit.Balance{ID: balanceID, Amount: decimal.RequireFromString("1.000")}, nil)
		repo.EXPECT().EntryExists(ctx, "leave:1:reserve").Return(false, nil)
		repo.EXPECT().UpdateAmount(ctx, balanceID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, amount decimal.Decimal) error {
				assert.True(t, amount.IsZero())
				return nil
			})
		repo.EXPECT().CreateEntry(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *credit.Entry) error {
				assert.Equal(t, credit.ReasonReserve, e.Reason)
				assert.Equal(t, "-1.000", credit.Format(e.Delta))
				assert.Equal(t, "leave:1:reserve", e.Reference)
				return nil
			})

		assert.NoError(t, ledger.Reserve(ctx, movement("1.000")))
	})

	t.Run("one thousandth short is rejected with details", func(t *testing.T) {
		repo, ledger := setupLedger(t)

		repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategoryVacation).
			Return(&credit.Balance{ID: balanceID, Amount: decimal.RequireFromString("0.999")}, nil)
		repo.EXPECT().EntryExists(ctx, "leave:1:reserve").Return(false, nil)

		err := ledger.Reserve(ctx, movement("1.000"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, crediterrors.ErrInsufficientCredit))
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		details, ok := appErr.Details.(crediterrors.InsufficientDetails)
		require.True(t, ok)
		assert.Equal(t, credit.CategoryVacation, details.Category)
		assert.Equal(t, "0.999", details.Balance)
		assert.Equal(t, "1.000", details.Requested)
		assert.Equal(t, "0.001", details.Shortfall)
	})

	t.Run("missing balance row counts as zero", func(t *testing.T) {
		repo, ledger := setupLedger(t)

		repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategoryVacation).
			Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().EntryExists(ctx, "leave:1:reserve").Return(false, nil)

		err := ledger.Reserve(ctx, movement("2.000"))
		assert.True(t, errors.Is(err, crediterrors.ErrInsufficientCredit))
	})

	t.Run("already applied reference is a noop", func(t *testing.T) {
		repo, ledger := setupLedger(t)

		repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategoryVacation).
			Return(&credit.Balance{ID: balanceID, Amount: decimal.RequireFromString("3.000")}, nil)
		repo.EXPECT().EntryExists(ctx, "leave:1:reserve").Return(true, nil)

		assert.NoError(t, ledger.Reserve(ctx, movement("2.000")))
	})

	t.Run("invalid category", func(t *testing.T) {
		_, ledger := setupLedger(t)
		m := movement("1.000")
		m.Category = "MATERNITY"
		assert.True(t, errors.Is(ledger.Reserve(ctx, m), crediterrors.ErrInvalidCategory))
	})

	t.Run("more than three decimals", func(t *testing.T) {
		_, ledger := setupLedger(t)
		assert.True(t, errors.Is(ledger.Reserve(ctx, movement("1.0005")), crediterrors.ErrInvalidAmount))
	})

	t.Run("repository failure aborts", func(t *testing.T) {
		repo, ledger := setupLedger(t)
		repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategoryVacation).
			Return(nil, errors.New("connection reset"))

		assert.EqualError(t, ledger.Reserve(ctx, movement("1.000")), "connection reset")
	})
}

func TestLedger_Release(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	balanceID := uuid.New()

	m := credit.Movement{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Category:   credit.CategorySick,
		Amount:     decimal.RequireFromString("2.000"),
		Reference:  "leave:1:release",
	}

	t.Run("credits the balance back", func(t *testing.T) {
		repo, ledger := setupLedger(t)

		repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategorySick).
			Return(&credit.Balance{ID: balanceID, Amount: decimal.RequireFromString("3.000")}, nil)
		repo.EXPECT().EntryExists(ctx, "leave:1:release").Return(false, nil)
		repo.EXPECT().UpdateAmount(ctx, balanceID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, amount decimal.Decimal) error {
				assert.Equal(t, "5.000", credit.Format(amount))
				return nil
			})
		repo.EXPECT().CreateEntry(ctx, gomock.Any()).Return(nil)

		assert.NoError(t, ledger.Release(ctx, m))
	})

	t.Run("creates the balance row when missing", func(t *testing.T) {
		repo, ledger := setupLedger(t)

		gomock.InOrder(
			repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategorySick).
				Return(nil, gorm.ErrRecordNotFound),
			repo.EXPECT().CreateBalance(ctx, gomock.Any()).Return(true, nil),
			repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategorySick).
				Return(&credit.Balance{ID: balanceID, Amount: decimal.Zero}, nil),
		)
		repo.EXPECT().EntryExists(ctx, "leave:1:release").Return(false, nil)
		repo.EXPECT().UpdateAmount(ctx, balanceID, gomock.Any()).Return(nil)
		repo.EXPECT().CreateEntry(ctx, gomock.Any()).Return(nil)

		assert.NoError(t, ledger.Release(ctx, m))
	})

	t.Run("already applied reference is a noop", func(t *testing.T) {
		repo, ledger := setupLedger(t)

		repo.EXPECT().FindBalanceForUpdate(ctx, companyID, employeeID, credit.CategorySick).
			Return(&credit.Balance{ID: balanceID, Amount: decimal.RequireFromString("3.000")}, nil)
		repo.EXPECT().EntryExists(ctx, "leave:1:release").Return(true, nil)

		assert.NoError(t, ledger.Release(ctx, m))
	})
}

func TestLedger_GetBalance(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	repo, ledger := setupLedger(t)
	repo.EXPECT().FindBalance(ctx, companyID, employeeID, credit.CategoryVacation).
		Return(&credit.Balance{Amount: decimal.RequireFromString("4.500")}, nil)
	repo.EXPECT().FindBalance(ctx, companyID, employeeID, credit.CategorySick).
		Return(nil, gorm.ErrRecordNotFound)

	v, err := ledger.GetBalance(ctx, companyID, employeeID, credit.CategoryVacation)
	require.NoError(t, err)
	assert.Equal(t, "4.500", credit.Format(v))

	v, err = ledger.GetBalance(ctx, companyID, employeeID, credit.CategorySick)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}
