package validation

import (
	"context"
	"database/sql"

	"github.com/danny20232023/hris-sub007/internal/availability"
	"github.com/danny20232023/hris-sub007/internal/credit"
	crediterrors "github.com/danny20232023/hris-sub007/internal/credit/errors"
	"github.com/danny20232023/hris-sub007/internal/shared/dateset"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ReasonInsufficientCredit = "INSUFFICIENT_CREDIT"
	ReasonDateConflict       = "DATE_CONFLICT"
	ReasonEmptyDateSet       = "EMPTY_DATE_SET"
	ReasonInvalidCategory    = "INVALID_CATEGORY"
)

// Result is either accepted or rejected with one reason and the data needed to explain it.
type Result struct {
	Accepted    bool                    `json:"accepted"`
	Reason      string                  `json:"reason,omitempty"`
	EmployeeIDs []string                `json:"employee_ids,omitempty"`
	Dates       []string                `json:"dates,omitempty"`
	Conflicts   []availability.Conflict `json:"conflicts,omitempty"`
	Category    string                  `json:"category,omitempty"`
	Balance     string                  `json:"balance,omitempty"`
	Requested   string                  `json:"requested,omitempty"`
	Shortfall   string                  `json:"shortfall,omitempty"`

	err error
}

// Err is the typed rejection error, nil when accepted.
func (r Result) Err() error {
	if r.Accepted {
		return nil
	}
	return r.err
}

func accepted() Result {
	return Result{Accepted: true}
}

type LeaveInput struct {
	EmployeeID string
	Category   string
	Dates      dateset.Set
	// Amount defaults to one credit per date when zero.
	Amount           decimal.Decimal
	ExcludeRequestID string
}

type TravelInput struct {
	EmployeeIDs      []string
	Dates            dateset.Set
	ExcludeRequestID string
}

// Orchestrator never mutates state. Bound to a transaction with WithTx and preceded by Lock,
// its answer is authoritative for the status write that follows in the same transaction.
type Orchestrator interface {
	WithTx(tx *sql.Tx) Orchestrator
	Lock(ctx context.Context, companyID string, employeeIDs []string) error
	ValidateLeave(ctx context.Context, companyID string, in LeaveInput) (Result, error)
	ValidateTravel(ctx context.Context, companyID string, in TravelInput) (Result, error)
}

type orchestrator struct {
	ledger   credit.Ledger
	resolver availability.Resolver
	logger   *zap.Logger
}

func NewOrchestrator(ledger credit.Ledger, resolver availability.Resolver, logger ...*zap.Logger) Orchestrator {
	l := zap.L().Named("validation.orchestrator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("validation.orchestrator")
	}
	return &orchestrator{ledger: ledger, resolver: resolver, logger: l}
}

func (o *orchestrator) WithTx(tx *sql.Tx) Orchestrator {
	return &orchestrator{
		ledger:   o.ledger.WithTx(tx),
		resolver: o.resolver.WithTx(tx),
		logger:   o.logger,
	}
}

func (o *orchestrator) Lock(ctx context.Context, companyID string, employeeIDs []string) error {
	return o.resolver.Lock(ctx, companyID, employeeIDs)
}

func (o *orchestrator) ValidateLeave(ctx context.Context, companyID string, in LeaveInput) (Result, error) {
	if in.Dates.IsEmpty() {
		return emptyDateSet(), nil
	}

	category := credit.NormalizeCategory(in.Category)
	if !credit.IsValidCategory(category) {
		return Result{Reason: ReasonInvalidCategory, Category: in.Category, err: crediterrors.ErrInvalidCategory}, nil
	}

	if res, err := o.checkAvailability(ctx, companyID, []string{in.EmployeeID}, in.Dates, in.ExcludeRequestID); err != nil || !res.Accepted {
		return res, err
	}

	amount := in.Amount
	if amount.IsZero() {
		amount = credit.DaysToCredit(in.Dates.Len())
	}

	balance, err := o.ledger.GetBalance(ctx, companyID, in.EmployeeID, category)
	if err != nil {
		return Result{}, err
	}
	if balance.LessThan(amount) {
		o.logger.Debug("leave rejected, insufficient credit",
			zap.String("employee_id", in.EmployeeID),
			zap.String("category", category),
			zap.String("balance", credit.Format(balance)),
			zap.String("requested", credit.Format(amount)),
		)
		return Result{
			Reason:      ReasonInsufficientCredit,
			EmployeeIDs: []string{in.EmployeeID},
			Category:    category,
			Balance:     credit.Format(balance),
			Requested:   credit.Format(amount),
			Shortfall:   credit.Format(amount.Sub(balance)),
			err:         credit.InsufficientCredit(in.EmployeeID, category, balance, amount),
		}, nil
	}

	return accepted(), nil
}

func (o *orchestrator) ValidateTravel(ctx context.Context, companyID string, in TravelInput) (Result, error) {
	if in.Dates.IsEmpty() {
		return emptyDateSet(), nil
	}
	return o.checkAvailability(ctx, companyID, in.EmployeeIDs, in.Dates, in.ExcludeRequestID)
}

func (o *orchestrator) checkAvailability(ctx context.Context, companyID string, employeeIDs []string, dates dateset.Set, excludeRequestID string) (Result, error) {
	found, err := o.resolver.FindUnavailable(ctx, companyID, employeeIDs, dates, excludeRequestID)
	if err != nil {
		return Result{}, err
	}
	if found.Available() {
		return accepted(), nil
	}

	var conflictDates dateset.Set
	for _, c := range found.Conflicts {
		if parsed, perr := dateset.Parse(c.Dates); perr == nil {
			conflictDates = dateset.Union(conflictDates, parsed)
		}
	}
	return Result{
		Reason:      ReasonDateConflict,
		EmployeeIDs: found.Unavailable,
		Dates:       conflictDates.Strings(),
		Conflicts:   found.Conflicts,
		err:         found.Err(),
	}, nil
}

func emptyDateSet() Result {
	return Result{Reason: ReasonEmptyDateSet, err: dateset.ErrEmptyDateSet}
}
