package travel_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/danny20232023/hris-sub007/internal/availability"
	"github.com/danny20232023/hris-sub007/internal/credit"
	"github.com/danny20232023/hris-sub007/internal/shared/counter"
	"github.com/danny20232023/hris-sub007/internal/travel"
	"github.com/danny20232023/hris-sub007/internal/validation"
	"github.com/danny20232023/hris-sub007/internal/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memTravelRepo struct {
	mu        sync.Mutex
	travels   map[string]travel.TravelRequest
	employees map[string]travel.Employee
	casFails  bool
	findErr   error
}

func newMemTravelRepo() *memTravelRepo {
	return &memTravelRepo{travels: map[string]travel.TravelRequest{}, employees: map[string]travel.Employee{}}
}

func (r *memTravelRepo) addEmployee(companyID string, canCreateTravel bool) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := travel.Employee{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), FullName: "emp", CanCreateTravel: canCreateTravel}
	r.employees[e.ID.String()] = e
	return e.ID.String()
}

func (r *memTravelRepo) get(t *testing.T, id string) travel.TravelRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.travels[id]
	require.True(t, ok, "travel %s not stored", id)
	return tr
}

func (r *memTravelRepo) WithTx(tx *sql.Tx) travel.Repository { return r }

func (r *memTravelRepo) Create(ctx context.Context, t *travel.TravelRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.travels[t.ID.String()] = *t
	return nil
}

func (r *memTravelRepo) FindAll(ctx context.Context, companyID string, filter travel.TravelFilter) ([]travel.TravelRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []travel.TravelRequest
	for _, t := range r.travels {
		if t.CompanyID.String() != companyID || (filter.Status != "" && t.Status != filter.Status) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TravelNumber < out[j].TravelNumber })
	return out, nil
}

func (r *memTravelRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*travel.TravelRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	t, ok := r.travels[id]
	if !ok || t.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	t.Employees = append([]travel.TravelEmployee(nil), t.Employees...)
	return &t, nil
}

func (r *memTravelRepo) FindByIDForUpdate(ctx context.Context, companyID, id string) (*travel.TravelRequest, error) {
	return r.FindByIDAndCompany(ctx, companyID, id)
}

func (r *memTravelRepo) CompareAndSwap(ctx context.Context, t *travel.TravelRequest, expectedStatus string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.casFails {
		r.casFails = false
		return false, nil
	}
	stored, ok := r.travels[t.ID.String()]
	if !ok || stored.Status != expectedStatus {
		return false, nil
	}
	cp := *t
	cp.Employees = append([]travel.TravelEmployee(nil), t.Employees...)
	r.travels[t.ID.String()] = cp
	return true, nil
}

func (r *memTravelRepo) ReplaceEmployees(ctx context.Context, t *travel.TravelRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.travels[t.ID.String()]
	stored.Employees = append([]travel.TravelEmployee(nil), t.Employees...)
	r.travels[t.ID.String()] = stored
	return nil
}

func (r *memTravelRepo) Delete(ctx context.Context, companyID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.travels, id)
	return nil
}

func (r *memTravelRepo) FindEmployees(ctx context.Context, companyID string, ids []string) ([]travel.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []travel.Employee
	for _, id := range ids {
		if e, ok := r.employees[id]; ok && e.CompanyID.String() == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

// memAvailabilityRepo serves approved travel from the travel store plus fixed leave claims.
type memAvailabilityRepo struct {
	travels *memTravelRepo
	leaves  []availability.Claim
	locked  [][]string
}

func (r *memAvailabilityRepo) WithTx(tx *sql.Tx) availability.Repository { return r }

func (r *memAvailabilityRepo) LockEmployees(ctx context.Context, companyID string, employeeIDs []string) error {
	r.locked = append(r.locked, append([]string(nil), employeeIDs...))
	return nil
}

func (r *memAvailabilityRepo) FindApprovedClaims(ctx context.Context, companyID string, employeeIDs []string, from, to time.Time, excludeRequestID string) ([]availability.Claim, error) {
	wanted := map[string]bool{}
	for _, id := range employeeIDs {
		wanted[id] = true
	}

	claims := []availability.Claim{}
	for _, c := range r.leaves {
		if wanted[c.EmployeeID] && c.RequestID != excludeRequestID {
			claims = append(claims, c)
		}
	}

	r.travels.mu.Lock()
	defer r.travels.mu.Unlock()
	for _, t := range r.travels.travels {
		if t.Status != workflow.StatusApproved || t.ID.String() == excludeRequestID {
			continue
		}
		for _, e := range t.Employees {
			if wanted[e.EmployeeID.String()] {
				claims = append(claims, availability.Claim{
					RequestID:  t.ID.String(),
					Source:     availability.SourceTravel,
					EmployeeID: e.EmployeeID.String(),
					Dates:      t.Dates,
				})
			}
		}
	}
	return claims, nil
}

type memCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

func (c *memCounter) WithTx(tx *sql.Tx) counter.Repository { return c }

func (c *memCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[companyID+"/"+counterType]++
	return c.values[companyID+"/"+counterType], nil
}

// travel never reads credit; the ledger only satisfies the orchestrator.
type unusedLedger struct{}

func (l unusedLedger) WithTx(tx *sql.Tx) credit.Ledger { return l }

func (unusedLedger) GetBalance(ctx context.Context, companyID, employeeID, category string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (unusedLedger) Reserve(ctx context.Context, m credit.Movement) error { return nil }

func (unusedLedger) Release(ctx context.Context, m credit.Movement) error { return nil }

type allowAll struct{}

func (allowAll) Can(ctx context.Context, companyID, employeeID, component, action string) (bool, error) {
	return true, nil
}

type world struct {
	sqlMock sqlmock.Sqlmock
	travels *memTravelRepo
	avail   *memAvailabilityRepo
	counter *memCounter
	service travel.Service
}

func newWorld(t *testing.T, opts ...func(*travel.Dependencies)) *world {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	travels := newMemTravelRepo()
	avail := &memAvailabilityRepo{travels: travels}
	cnt := &memCounter{values: map[string]int64{}}

	deps := travel.Dependencies{
		Validator:   validation.NewOrchestrator(unusedLedger{}, availability.NewResolver(avail)),
		Counter:     cnt,
		Permissions: allowAll{},
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &world{
		sqlMock: sqlMock,
		travels: travels,
		avail:   avail,
		counter: cnt,
		service: travel.NewService(db, travels, deps),
	}
}

func (w *world) expectCommit() {
	w.sqlMock.ExpectBegin()
	w.sqlMock.ExpectCommit()
}

func (w *world) expectRollback() {
	w.sqlMock.ExpectBegin()
	w.sqlMock.ExpectRollback()
}
