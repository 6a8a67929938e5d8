package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danny20232023/hris-sub007/internal/credit"
	"github.com/danny20232023/hris-sub007/internal/events"
	leaveerrors "github.com/danny20232023/hris-sub007/internal/leave/errors"
	"github.com/danny20232023/hris-sub007/internal/leavetype"
	"github.com/danny20232023/hris-sub007/internal/messaging/kafka"
	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
	"github.com/danny20232023/hris-sub007/internal/shared/contextutil"
	"github.com/danny20232023/hris-sub007/internal/shared/dateset"
	"github.com/danny20232023/hris-sub007/internal/validation"
	"github.com/danny20232023/hris-sub007/internal/workflow"
	workflowerrors "github.com/danny20232023/hris-sub007/internal/workflow/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const component = "leave"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	CreateFromPortal(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	Validate(ctx context.Context, companyID string, req ValidateLeaveRequest) (validation.Result, error)
	GetAll(ctx context.Context, companyID string, filter LeaveFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, companyID, actorID, id string, req UpdateStatusRequest) (LeaveResponse, error)
	Delete(ctx context.Context, companyID, actorID, id string) error
}

// Dependencies are the collaborators a leave transition consults. Outbox may be nil.
type Dependencies struct {
	Validator   validation.Orchestrator
	Ledger      credit.Ledger
	LeaveTypes  leavetype.Service
	Permissions workflow.PermissionChecker
	Outbox      kafka.OutboxRepository
	Policy      workflow.Policy
}

type service struct {
	db     *sql.DB
	repo   Repository
	deps   Dependencies
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		deps:   deps,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	return s.create(ctx, companyID, actorID, req, false)
}

// CreateFromPortal files a self-service request; only portal requests can later be returned.
func (s *service) CreateFromPortal(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	if req.EmployeeID != actorID {
		s.logger.Warn("portal leave for another employee rejected",
			zap.String("actor_id", actorID),
			zap.String("employee_id", req.EmployeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrPortalSelfOnly
	}
	return s.create(ctx, companyID, actorID, req, true)
}

func (s *service) create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest, portal bool) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.Bool("portal", portal),
	)

	companyUUID, actorUUID, employeeUUID, err := parseIDs(companyID, actorID, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if utf8.RuneCountInString(req.Purpose) > 100 {
		return LeaveResponse{}, leaveerrors.ErrPurposeTooLong
	}
	dates, err := dateset.Parse(req.Dates)
	if err != nil {
		return LeaveResponse{}, err
	}
	leaveTypeID, category, err := s.resolveCategory(ctx, companyID, req.LeaveTypeID, req.Category)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.checkEmployee(ctx, qtx, companyID, req.EmployeeID); err != nil {
		return LeaveResponse{}, err
	}

	res, err := s.deps.Validator.WithTx(tx).ValidateLeave(ctx, companyID, validation.LeaveInput{
		EmployeeID: req.EmployeeID,
		Category:   category,
		Dates:      dates,
	})
	if err != nil {
		s.logger.Error("create leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !res.Accepted {
		s.logger.Warn("create leave rejected",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.String("reason", res.Reason),
		)
		return LeaveResponse{}, res.Err()
	}

	l := &LeaveRequest{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		LeaveTypeID:    leaveTypeID,
		Category:       category,
		Purpose:        req.Purpose,
		DeductedCredit: credit.DaysToCredit(dates.Len()),
		Status:         workflow.StatusForApproval,
		IsPortalOrigin: portal,
		CreatedBy:      actorUUID,
	}
	l.setDates(dates)

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueue(ctx, tx, l, events.EventRequestSubmitted, "", actorID); err != nil {
		s.logger.Error("create leave outbox persist failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("deducted_credit", credit.Format(l.DeductedCredit)),
	)

	return mapToResponse(*l), nil
}

// Validate answers the advisory pre-check. A rejection is a result, not an error.
func (s *service) Validate(ctx context.Context, companyID string, req ValidateLeaveRequest) (validation.Result, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return validation.Result{}, leaveerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return validation.Result{}, leaveerrors.ErrInvalidEmployeeID
	}
	dates, err := dateset.Parse(req.Dates)
	if err != nil {
		return validation.Result{}, err
	}
	_, category, err := s.resolveCategory(ctx, companyID, req.LeaveTypeID, req.Category)
	if err != nil {
		return validation.Result{}, err
	}
	if err := s.checkEmployee(ctx, s.repo, companyID, req.EmployeeID); err != nil {
		return validation.Result{}, err
	}

	return s.deps.Validator.ValidateLeave(ctx, companyID, validation.LeaveInput{
		EmployeeID:       req.EmployeeID,
		Category:         category,
		Dates:            dates,
		ExcludeRequestID: req.ExcludeRequestID,
	})
}

func (s *service) GetAll(ctx context.Context, companyID string, filter LeaveFilter) ([]LeaveResponse, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	if filter.Status != "" && !workflow.IsKnownStatus(filter.Status) {
		return nil, apperror.InvalidField("status")
	}

	leaves, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("list leave failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

// Update edits a request still waiting for approval, or resubmits a returned one.
// Either way the dates are validated again and the deducted credit recomputed.
func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, _, _, err := parseIDs(companyID, actorID, ""); err != nil {
		return LeaveResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if utf8.RuneCountInString(req.Purpose) > 100 {
		return LeaveResponse{}, leaveerrors.ErrPurposeTooLong
	}
	dates, err := dateset.Parse(req.Dates)
	if err != nil {
		return LeaveResponse{}, err
	}
	leaveTypeID, category, err := s.resolveCategory(ctx, companyID, req.LeaveTypeID, req.Category)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	from := l.Status
	switch from {
	case workflow.StatusForApproval:
		if err := workflow.Authorize(ctx, s.deps.Permissions, companyID, actorID, component, workflow.ActionUpdate); err != nil {
			return LeaveResponse{}, err
		}
	case workflow.StatusReturned:
		d, err := workflow.Decide(snapshot(l), workflow.Command{Target: workflow.StatusForApproval, ActorID: actorID}, s.deps.Policy)
		if err != nil {
			s.logger.Warn("resubmit leave refused", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
		if err := workflow.Authorize(ctx, s.deps.Permissions, companyID, actorID, component, workflow.ActionResubmit); err != nil {
			return LeaveResponse{}, err
		}
		l.Status = d.To
		l.Remarks = d.Remarks
	default:
		return LeaveResponse{}, leaveerrors.ErrNotEditable
	}

	res, err := s.deps.Validator.WithTx(tx).ValidateLeave(ctx, companyID, validation.LeaveInput{
		EmployeeID:       l.EmployeeID.String(),
		Category:         category,
		Dates:            dates,
		ExcludeRequestID: l.ID.String(),
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	if !res.Accepted {
		s.logger.Warn("update leave rejected", zap.String("leave_id", id), zap.String("reason", res.Reason))
		return LeaveResponse{}, res.Err()
	}

	l.LeaveTypeID = leaveTypeID
	l.Category = category
	l.Purpose = req.Purpose
	l.setDates(dates)
	l.DeductedCredit = credit.DaysToCredit(dates.Len())

	ok, err := qtx.CompareAndSwap(ctx, l, from)
	if err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, workflowerrors.ErrConflict
	}

	if from != l.Status {
		if err := s.enqueue(ctx, tx, l, events.EventRequestStatusChanged, from, actorID); err != nil {
			s.logger.Error("update leave outbox persist failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success",
		zap.String("leave_id", id),
		zap.String("from_status", from),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

// UpdateStatus runs one lifecycle transition inside a single transaction: row lock, employee lock,
// authoritative validation, compare-and-swap status write, then the ledger movement.
func (s *service) UpdateStatus(ctx context.Context, companyID, actorID, id string, req UpdateStatusRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	s.logger.Debug("transition leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", target),
	)

	_, actorUUID, _, err := parseIDs(companyID, actorID, "")
	if err != nil {
		return LeaveResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if !workflow.IsKnownStatus(target) {
		return LeaveResponse{}, workflowerrors.ErrUnknownTarget
	}
	if err := workflow.Authorize(ctx, s.deps.Permissions, companyID, actorID, component, workflow.ActionFor(target)); err != nil {
		s.logger.Warn("transition leave not permitted",
			zap.String("actor_id", actorID),
			zap.String("target_status", target),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	return s.transition(ctx, companyID, actorUUID, id, target, req.Remarks)
}

func (s *service) transition(ctx context.Context, companyID string, actor uuid.UUID, id, target, remarks string) (LeaveResponse, error) {
	actorID := actor.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	d, err := workflow.Decide(snapshot(l), workflow.Command{Target: target, Remarks: remarks, ActorID: actorID}, s.deps.Policy)
	if err != nil {
		s.logger.Warn("transition leave refused",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", target),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if d.Noop {
		s.logger.Info("transition leave already applied", zap.String("leave_id", id), zap.String("status", l.Status))
		return mapToResponse(*l), nil
	}

	amount := credit.DaysToCredit(l.Dates.Len())
	if d.Revalidate {
		v := s.deps.Validator.WithTx(tx)
		if err := v.Lock(ctx, companyID, []string{l.EmployeeID.String()}); err != nil {
			s.logger.Error("transition leave lock failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
		res, err := v.ValidateLeave(ctx, companyID, validation.LeaveInput{
			EmployeeID:       l.EmployeeID.String(),
			Category:         l.Category,
			Dates:            l.Dates,
			Amount:           amount,
			ExcludeRequestID: l.ID.String(),
		})
		if err != nil {
			s.logger.Error("transition leave validation failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
		if !res.Accepted {
			s.logger.Warn("transition leave rejected",
				zap.String("leave_id", id),
				zap.String("to_status", target),
				zap.String("reason", res.Reason),
			)
			return LeaveResponse{}, res.Err()
		}
	}

	from := l.Status
	l.Status = d.To
	l.Remarks = d.Remarks
	l.DeductedCredit = amount
	switch d.To {
	case workflow.StatusApproved:
		now := s.now()
		l.ApprovedBy = &actor
		l.ApprovedAt = &now
	case workflow.StatusForApproval:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
	}

	ok, err := qtx.CompareAndSwap(ctx, l, from)
	if err != nil {
		s.logger.Error("transition leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		s.logger.Warn("transition leave lost race", zap.String("leave_id", id), zap.String("expected_status", from))
		return LeaveResponse{}, workflowerrors.ErrConflict
	}

	if err := s.applyLedger(ctx, tx, l, d.Ledger, actorID); err != nil {
		s.logger.Warn("transition leave ledger movement failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueue(ctx, tx, l, events.EventRequestStatusChanged, from, actorID); err != nil {
		s.logger.Error("transition leave outbox persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("transition leave success",
		zap.String("leave_id", id),
		zap.String("from_status", from),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) applyLedger(ctx context.Context, tx *sql.Tx, l *LeaveRequest, effect workflow.LedgerEffect, actorID string) error {
	m := credit.Movement{
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		Category:   l.Category,
		Amount:     l.DeductedCredit,
		ActorID:    actorID,
	}
	switch effect {
	case workflow.LedgerReserve:
		m.Reference = ReserveReference(l.ID.String())
		m.Note = "leave approved"
		return s.deps.Ledger.WithTx(tx).Reserve(ctx, m)
	case workflow.LedgerRelease:
		m.Reference = ReleaseReference(l.ID.String())
		m.Note = "approved leave cancelled"
		return s.deps.Ledger.WithTx(tx).Release(ctx, m)
	}
	return nil
}

// Delete soft-deletes a request that never reached APPROVED.
func (s *service) Delete(ctx context.Context, companyID, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if l.Status == workflow.StatusApproved {
		return leaveerrors.ErrApprovedNotDeletable
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if err := s.enqueue(ctx, tx, l, events.EventRequestDeleted, l.Status, actorID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) resolveCategory(ctx context.Context, companyID, leaveTypeID, category string) (*uuid.UUID, string, error) {
	if leaveTypeID == "" {
		return nil, credit.NormalizeCategory(category), nil
	}
	lt, err := s.deps.LeaveTypes.Resolve(ctx, companyID, leaveTypeID)
	if err != nil {
		return nil, "", err
	}
	id, err := uuid.Parse(lt.ID)
	if err != nil {
		return nil, "", err
	}
	return &id, credit.NormalizeCategory(lt.CreditCategory), nil
}

func (s *service) checkEmployee(ctx context.Context, repo Repository, companyID, employeeID string) error {
	belongs, err := repo.EmployeeBelongsToCompany(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("leave employee company check failed", zap.Error(err))
		return err
	}
	if !belongs {
		return leaveerrors.ErrEmployeeNotInCompany
	}
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, l *LeaveRequest, eventType, from, actorID string) error {
	if s.deps.Outbox == nil {
		return nil
	}
	event, err := kafka.NewEvent(
		contextutil.GetRequestID(ctx),
		kafka.AggregateLeave,
		l.ID.String(),
		eventType,
		events.LeaveStatusTopic,
		events.RequestStatusChangedEvent{
			EventType:   eventType,
			RequestKind: string(workflow.KindLeave),
			RequestID:   l.ID.String(),
			CompanyID:   l.CompanyID.String(),
			EmployeeIDs: []string{l.EmployeeID.String()},
			Dates:       l.Dates.Strings(),
			FromStatus:  from,
			ToStatus:    l.Status,
			Remarks:     l.Remarks,
			ActorID:     actorID,
			OccurredAt:  s.now(),
		},
	)
	if err != nil {
		return err
	}
	return s.deps.Outbox.WithTx(tx).Create(ctx, event)
}

// ReserveReference and ReleaseReference key the ledger movements of one leave request.
func ReserveReference(leaveID string) string { return "leave:" + leaveID + ":reserve" }

func ReleaseReference(leaveID string) string { return "leave:" + leaveID + ":release" }

func snapshot(l *LeaveRequest) workflow.Snapshot {
	return workflow.Snapshot{
		Kind:         workflow.KindLeave,
		Status:       l.Status,
		PortalOrigin: l.IsPortalOrigin,
		CreatedBy:    l.CreatedBy.String(),
	}
}

// parseIDs validates the ids every write carries; an empty employeeID is skipped.
func parseIDs(companyID, actorID, employeeID string) (uuid.UUID, uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, leaveerrors.ErrInvalidActorID
	}
	if employeeID == "" {
		return companyUUID, actorUUID, uuid.Nil, nil
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, leaveerrors.ErrInvalidEmployeeID
	}
	return companyUUID, actorUUID, employeeUUID, nil
}

// invalidTextRepresentation is raised by postgres when a malformed uuid reaches a query.
const invalidTextRepresentation = "22P02"

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return leaveerrors.ErrLeaveNotFound
	case errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation:
		return leaveerrors.ErrInvalidLeaveID
	default:
		return err
	}
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		CompanyID:      l.CompanyID.String(),
		EmployeeID:     l.EmployeeID.String(),
		Category:       l.Category,
		Dates:          l.Dates.Strings(),
		StartDate:      l.StartDate.Format(dateset.Layout),
		EndDate:        l.EndDate.Format(dateset.Layout),
		Purpose:        l.Purpose,
		DeductedCredit: credit.Format(l.DeductedCredit),
		Status:         l.Status,
		Remarks:        l.Remarks,
		IsPortalOrigin: l.IsPortalOrigin,
		CreatedBy:      l.CreatedBy.String(),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.LeaveTypeID != nil {
		v := l.LeaveTypeID.String()
		resp.LeaveTypeID = &v
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
