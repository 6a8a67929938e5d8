package leave_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/danny20232023/hris-sub007/internal/availability"
	"github.com/danny20232023/hris-sub007/internal/credit"
	"github.com/danny20232023/hris-sub007/internal/leave"
	"github.com/danny20232023/hris-sub007/internal/shared/dateset"
	"github.com/danny20232023/hris-sub007/internal/validation"
	"github.com/danny20232023/hris-sub007/internal/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memLeaveRepo keeps leave requests in memory; reads hand out copies like a database would.
type memLeaveRepo struct {
	mu     sync.Mutex
	leaves map[string]leave.LeaveRequest
	// casFails forces the next CompareAndSwap to report a lost race.
	casFails bool
	// findErr is returned by every lookup when set.
	findErr error
}

func newMemLeaveRepo() *memLeaveRepo {
	return &memLeaveRepo{leaves: map[string]leave.LeaveRequest{}}
}

func (r *memLeaveRepo) WithTx(tx *sql.Tx) leave.Repository { return r }

func (r *memLeaveRepo) Create(ctx context.Context, l *leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaves[l.ID.String()] = *l
	return nil
}

func (r *memLeaveRepo) FindAll(ctx context.Context, companyID string, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.leaves {
		if l.CompanyID.String() != companyID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.EmployeeID != "" && l.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *memLeaveRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	l, ok := r.leaves[id]
	if !ok || l.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *memLeaveRepo) FindByIDForUpdate(ctx context.Context, companyID, id string) (*leave.LeaveRequest, error) {
	return r.FindByIDAndCompany(ctx, companyID, id)
}

func (r *memLeaveRepo) CompareAndSwap(ctx context.Context, l *leave.LeaveRequest, expectedStatus string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.casFails {
		r.casFails = false
		return false, nil
	}
	stored, ok := r.leaves[l.ID.String()]
	if !ok || stored.Status != expectedStatus {
		return false, nil
	}
	r.leaves[l.ID.String()] = *l
	return true, nil
}

func (r *memLeaveRepo) Delete(ctx context.Context, companyID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.leaves, id)
	return nil
}

func (r *memLeaveRepo) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	return true, nil
}

func (r *memLeaveRepo) get(t *testing.T, id string) leave.LeaveRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leaves[id]
	require.True(t, ok, "leave %s not stored", id)
	return l
}

// memCreditRepo is an in-memory credit store with the same unique reference rule as credit_entries.
type memCreditRepo struct {
	mu       sync.Mutex
	balances map[string]*credit.Balance
	entries  []credit.Entry
}

func newMemCreditRepo() *memCreditRepo {
	return &memCreditRepo{balances: map[string]*credit.Balance{}}
}

func balanceKey(companyID, employeeID, category string) string {
	return companyID + "/" + employeeID + "/" + category
}

func (r *memCreditRepo) seed(companyID, employeeID, category, amount string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[balanceKey(companyID, employeeID, category)] = &credit.Balance{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		EmployeeID: uuid.MustParse(employeeID),
		Category:   category,
		Amount:     decimal.RequireFromString(amount),
	}
}

func (r *memCreditRepo) amount(companyID, employeeID, category string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(companyID, employeeID, category)]
	if !ok {
		return credit.Format(decimal.Zero)
	}
	return credit.Format(b.Amount)
}

func (r *memCreditRepo) WithTx(tx *sql.Tx) credit.Repository { return r }

func (r *memCreditRepo) FindBalance(ctx context.Context, companyID, employeeID, category string) (*credit.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(companyID, employeeID, category)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memCreditRepo) FindBalanceForUpdate(ctx context.Context, companyID, employeeID, category string) (*credit.Balance, error) {
	return r.FindBalance(ctx, companyID, employeeID, category)
}

func (r *memCreditRepo) ListBalances(ctx context.Context, companyID, employeeID string) ([]credit.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []credit.Balance
	for _, b := range r.balances {
		if b.CompanyID.String() == companyID && b.EmployeeID.String() == employeeID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memCreditRepo) CreateBalance(ctx context.Context, b *credit.Balance) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey(b.CompanyID.String(), b.EmployeeID.String(), b.Category)
	if _, ok := r.balances[key]; ok {
		return false, nil
	}
	cp := *b
	r.balances[key] = &cp
	return true, nil
}

func (r *memCreditRepo) UpdateAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.balances {
		if b.ID == id {
			b.Amount = amount
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memCreditRepo) EntryExists(ctx context.Context, reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCreditRepo) CreateEntry(ctx context.Context, e *credit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memCreditRepo) ListEntries(ctx context.Context, companyID, employeeID, category string) ([]credit.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []credit.Entry
	for _, e := range r.entries {
		if e.CompanyID.String() == companyID && e.EmployeeID.String() == employeeID && (category == "" || e.Category == category) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memCreditRepo) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	return true, nil
}

// memAvailabilityRepo reads approved leave straight from the leave store plus fixed travel claims.
type memAvailabilityRepo struct {
	leaves *memLeaveRepo
	travel []availability.Claim
	locked []string
}

func (r *memAvailabilityRepo) WithTx(tx *sql.Tx) availability.Repository { return r }

func (r *memAvailabilityRepo) LockEmployees(ctx context.Context, companyID string, employeeIDs []string) error {
	r.locked = append(r.locked, employeeIDs...)
	return nil
}

func (r *memAvailabilityRepo) FindApprovedClaims(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time, excludeRequestID string) ([]availability.Claim, error) {
	wanted := map[string]bool{}
	for _, id := range employeeIDs {
		wanted[id] = true
	}

	var claims []availability.Claim
	r.leaves.mu.Lock()
	for _, l := range r.leaves.leaves {
		if l.Status != workflow.StatusApproved || l.ID.String() == excludeRequestID || !wanted[l.EmployeeID.String()] {
			continue
		}
		claims = append(claims, availability.Claim{
			RequestID:  l.ID.String(),
			Source:     availability.SourceLeave,
			EmployeeID: l.EmployeeID.String(),
			Dates:      l.Dates,
		})
	}
	r.leaves.mu.Unlock()

	for _, c := range r.travel {
		if c.RequestID != excludeRequestID && wanted[c.EmployeeID] {
			claims = append(claims, c)
		}
	}
	return claims, nil
}

type allowAll struct{}

func (allowAll) Can(ctx context.Context, companyID, employeeID, component, action string) (bool, error) {
	return true, nil
}

// world wires the real ledger, resolver and orchestrator over the in-memory stores.
type world struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	leaves  *memLeaveRepo
	credits *memCreditRepo
	avail   *memAvailabilityRepo
	service leave.Service
}

func newWorld(t *testing.T, policy workflow.Policy, opts ...func(*leave.Dependencies)) *world {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	leaves := newMemLeaveRepo()
	credits := newMemCreditRepo()
	avail := &memAvailabilityRepo{leaves: leaves}

	ledger := credit.NewLedger(credits)
	orchestrator := validation.NewOrchestrator(ledger, availability.NewResolver(avail))

	deps := leave.Dependencies{
		Validator:   orchestrator,
		Ledger:      ledger,
		Permissions: allowAll{},
		Policy:      policy,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	svc := leave.NewService(db, leaves, deps)

	return &world{db: db, sqlMock: sqlMock, leaves: leaves, credits: credits, avail: avail, service: svc}
}

func (w *world) expectCommit() {
	w.sqlMock.ExpectBegin()
	w.sqlMock.ExpectCommit()
}

func (w *world) expectRollback() {
	w.sqlMock.ExpectBegin()
	w.sqlMock.ExpectRollback()
}

func mustSet(t *testing.T, raws ...string) dateset.Set {
	t.Helper()
	s, err := dateset.ParseNonEmpty(raws)
	require.NoError(t, err)
	return s
}
