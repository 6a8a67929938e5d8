package travel

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danny20232023/hris-sub007/internal/events"
	"github.com/danny20232023/hris-sub007/internal/messaging/kafka"
	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
	"github.com/danny20232023/hris-sub007/internal/shared/contextutil"
	"github.com/danny20232023/hris-sub007/internal/shared/counter"
	"github.com/danny20232023/hris-sub007/internal/shared/dateset"
	travelerrors "github.com/danny20232023/hris-sub007/internal/travel/errors"
	"github.com/danny20232023/hris-sub007/internal/validation"
	"github.com/danny20232023/hris-sub007/internal/workflow"
	workflowerrors "github.com/danny20232023/hris-sub007/internal/workflow/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	component    = "travel"
	numberPrefix = "TO"
	maxTextLen   = 255
)

//go:generate mockgen -source=travel_service.go -destination=mock/travel_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTravelRequest) (TravelResponse, error)
	CreateFromPortal(ctx context.Context, companyID, actorID string, req CreateTravelRequest) (TravelResponse, error)
	Validate(ctx context.Context, companyID string, req ValidateTravelRequest) (validation.Result, error)
	GetAll(ctx context.Context, companyID string, filter TravelFilter) ([]TravelResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TravelResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateTravelRequest) (TravelResponse, error)
	UpdateStatus(ctx context.Context, companyID, actorID, id string, req UpdateStatusRequest) (TravelResponse, error)
	Delete(ctx context.Context, companyID, actorID, id string) error
}

// Dependencies are the collaborators a travel transition consults. Outbox may be nil.
type Dependencies struct {
	Validator   validation.Orchestrator
	Counter     counter.Repository
	Permissions workflow.PermissionChecker
	Outbox      kafka.OutboxRepository
}

type service struct {
	db     *sql.DB
	repo   Repository
	deps   Dependencies
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("travel.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("travel.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		deps:   deps,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateTravelRequest) (TravelResponse, error) {
	return s.create(ctx, companyID, actorID, req, false)
}

// CreateFromPortal files a self-service request. The submitter must travel and be allowed to file travel.
func (s *service) CreateFromPortal(ctx context.Context, companyID, actorID string, req CreateTravelRequest) (TravelResponse, error) {
	included := false
	for _, id := range req.EmployeeIDs {
		if strings.EqualFold(strings.TrimSpace(id), actorID) {
			included = true
			break
		}
	}
	if !included {
		s.logger.Warn("portal travel without submitter rejected", zap.String("actor_id", actorID))
		return TravelResponse{}, travelerrors.ErrSubmitterNotIncluded
	}
	return s.create(ctx, companyID, actorID, req, true)
}

func (s *service) create(ctx context.Context, companyID, actorID string, req CreateTravelRequest, portal bool) (TravelResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create travel requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.Int("employees", len(req.EmployeeIDs)),
		zap.Bool("portal", portal),
	)

	companyUUID, actorUUID, err := parseIDs(companyID, actorID)
	if err != nil {
		return TravelResponse{}, err
	}
	employeeIDs, err := normalizeEmployees(req.EmployeeIDs)
	if err != nil {
		return TravelResponse{}, err
	}
	if err := checkText(req.Purpose, req.Destination); err != nil {
		return TravelResponse{}, err
	}
	dates, err := dateset.Parse(req.Dates)
	if err != nil {
		return TravelResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create travel begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TravelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.checkEmployees(ctx, qtx, companyID, actorID, employeeIDs, portal); err != nil {
		return TravelResponse{}, err
	}

	res, err := s.deps.Validator.WithTx(tx).ValidateTravel(ctx, companyID, validation.TravelInput{
		EmployeeIDs: uuidStrings(employeeIDs),
		Dates:       dates,
	})
	if err != nil {
		s.logger.Error("create travel validation failed", zap.String("request_id", rid), zap.Error(err))
		return TravelResponse{}, err
	}
	if !res.Accepted {
		s.logger.Warn("create travel rejected",
			zap.String("request_id", rid),
			zap.String("reason", res.Reason),
			zap.Strings("employee_ids", res.EmployeeIDs),
		)
		return TravelResponse{}, res.Err()
	}

	next, err := s.deps.Counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TravelOrder)
	if err != nil {
		s.logger.Error("create travel generate number failed", zap.String("request_id", rid), zap.Error(err))
		return TravelResponse{}, err
	}

	t := &TravelRequest{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		TravelNumber:   counter.FormatNumber(numberPrefix, next),
		Purpose:        req.Purpose,
		Destination:    req.Destination,
		Status:         workflow.StatusForApproval,
		IsPortalOrigin: portal,
		CreatedBy:      actorUUID,
	}
	t.setDates(dates)
	t.setEmployees(employeeIDs)

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create travel persist failed", zap.String("request_id", rid), zap.Error(err))
		return TravelResponse{}, mapRepositoryError(err)
	}
	if err := s.enqueue(ctx, tx, t, events.EventRequestSubmitted, "", actorID); err != nil {
		s.logger.Error("create travel outbox persist failed", zap.String("travel_id", t.ID.String()), zap.Error(err))
		return TravelResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create travel commit failed", zap.String("request_id", rid), zap.Error(err))
		return TravelResponse{}, err
	}
	s.logger.Info("create travel success",
		zap.String("request_id", rid),
		zap.String("travel_id", t.ID.String()),
		zap.String("travel_number", t.TravelNumber),
	)
	return mapToResponse(*t), nil
}

// Validate answers the advisory pre-check. A rejection is a result, not an error.
func (s *service) Validate(ctx context.Context, companyID string, req ValidateTravelRequest) (validation.Result, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return validation.Result{}, travelerrors.ErrInvalidCompanyID
	}
	employeeIDs, err := normalizeEmployees(req.EmployeeIDs)
	if err != nil {
		return validation.Result{}, err
	}
	dates, err := dateset.Parse(req.Dates)
	if err != nil {
		return validation.Result{}, err
	}

	return s.deps.Validator.ValidateTravel(ctx, companyID, validation.TravelInput{
		EmployeeIDs:      uuidStrings(employeeIDs),
		Dates:            dates,
		ExcludeRequestID: req.ExcludeRequestID,
	})
}

func (s *service) GetAll(ctx context.Context, companyID string, filter TravelFilter) ([]TravelResponse, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	if filter.Status != "" && !workflow.IsKnownStatus(filter.Status) {
		return nil, apperror.InvalidField("status")
	}

	travels, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("list travel failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	resp := make([]TravelResponse, len(travels))
	for i, t := range travels {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TravelResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TravelResponse{}, travelerrors.ErrInvalidTravelID
	}
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TravelResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*t), nil
}

// Update edits a request still waiting for approval, or resubmits a returned one.
func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateTravelRequest) (TravelResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update travel requested",
		zap.String("request_id", rid),
		zap.String("travel_id", id),
		zap.String("actor_id", actorID),
	)

	if _, _, err := parseIDs(companyID, actorID); err != nil {
		return TravelResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return TravelResponse{}, travelerrors.ErrInvalidTravelID
	}
	employeeIDs, err := normalizeEmployees(req.EmployeeIDs)
	if err != nil {
		return TravelResponse{}, err
	}
	if err := checkText(req.Purpose, req.Destination); err != nil {
		return TravelResponse{}, err
	}
	dates, err := dateset.Parse(req.Dates)
	if err != nil {
		return TravelResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update travel begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TravelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return TravelResponse{}, mapRepositoryError(err)
	}

	from := t.Status
	switch from {
	case workflow.StatusForApproval:
		if err := workflow.Authorize(ctx, s.deps.Permissions, companyID, actorID, component, workflow.ActionUpdate); err != nil {
			return TravelResponse{}, err
		}
	case workflow.StatusReturned:
		d, err := workflow.Decide(snapshot(t), workflow.Command{Target: workflow.StatusForApproval, ActorID: actorID}, workflow.Policy{})
		if err != nil {
			s.logger.Warn("resubmit travel refused", zap.String("travel_id", id), zap.Error(err))
			return TravelResponse{}, err
		}
		if err := workflow.Authorize(ctx, s.deps.Permissions, companyID, actorID, component, workflow.ActionResubmit); err != nil {
			return TravelResponse{}, err
		}
		t.Status = d.To
		t.Remarks = d.Remarks
	default:
		return TravelResponse{}, travelerrors.ErrNotEditable
	}

	if err := s.checkEmployees(ctx, qtx, companyID, actorID, employeeIDs, t.IsPortalOrigin); err != nil {
		return TravelResponse{}, err
	}

	res, err := s.deps.Validator.WithTx(tx).ValidateTravel(ctx, companyID, validation.TravelInput{
		EmployeeIDs:      uuidStrings(employeeIDs),
		Dates:            dates,
		ExcludeRequestID: t.ID.String(),
	})
	if err != nil {
		return TravelResponse{}, err
	}
	if !res.Accepted {
		s.logger.Warn("update travel rejected", zap.String("travel_id", id), zap.String("reason", res.Reason))
		return TravelResponse{}, res.Err()
	}

	t.Purpose = req.Purpose
	t.Destination = req.Destination
	t.setDates(dates)
	t.setEmployees(employeeIDs)

	ok, err := qtx.CompareAndSwap(ctx, t, from)
	if err != nil {
		s.logger.Error("update travel persist failed", zap.String("travel_id", id), zap.Error(err))
		return TravelResponse{}, err
	}
	if !ok {
		return TravelResponse{}, workflowerrors.ErrConflict
	}
	if err := qtx.ReplaceEmployees(ctx, t); err != nil {
		s.logger.Error("update travel employees failed", zap.String("travel_id", id), zap.Error(err))
		return TravelResponse{}, err
	}

	if from != t.Status {
		if err := s.enqueue(ctx, tx, t, events.EventRequestStatusChanged, from, actorID); err != nil {
			return TravelResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update travel commit failed", zap.String("travel_id", id), zap.Error(err))
		return TravelResponse{}, err
	}
	s.logger.Info("update travel success",
		zap.String("travel_id", id),
		zap.String("from_status", from),
		zap.String("status", t.Status),
	)
	return mapToResponse(*t), nil
}

// UpdateStatus runs one lifecycle transition. Travel never touches the credit ledger.
func (s *service) UpdateStatus(ctx context.Context, companyID, actorID, id string, req UpdateStatusRequest) (TravelResponse, error) {
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	s.logger.Debug("transition travel requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("travel_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", target),
	)

	_, actorUUID, err := parseIDs(companyID, actorID)
	if err != nil {
		return TravelResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return TravelResponse{}, travelerrors.ErrInvalidTravelID
	}
	if !workflow.IsKnownStatus(target) {
		return TravelResponse{}, workflowerrors.ErrUnknownTarget
	}
	if err := workflow.Authorize(ctx, s.deps.Permissions, companyID, actorID, component, workflow.ActionFor(target)); err != nil {
		s.logger.Warn("transition travel not permitted",
			zap.String("actor_id", actorID),
			zap.String("target_status", target),
			zap.Error(err),
		)
		return TravelResponse{}, err
	}

	return s.transition(ctx, companyID, actorUUID, id, target, req.Remarks)
}

func (s *service) transition(ctx context.Context, companyID string, actor uuid.UUID, id, target, remarks string) (TravelResponse, error) {
	actorID := actor.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition travel begin tx failed", zap.Error(err))
		return TravelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return TravelResponse{}, mapRepositoryError(err)
	}

	d, err := workflow.Decide(snapshot(t), workflow.Command{Target: target, Remarks: remarks, ActorID: actorID}, workflow.Policy{})
	if err != nil {
		s.logger.Warn("transition travel refused",
			zap.String("travel_id", id),
			zap.String("from_status", t.Status),
			zap.String("to_status", target),
			zap.Error(err),
		)
		return TravelResponse{}, err
	}
	if d.Noop {
		s.logger.Info("transition travel already applied", zap.String("travel_id", id), zap.String("status", t.Status))
		return mapToResponse(*t), nil
	}

	if d.Revalidate {
		v := s.deps.Validator.WithTx(tx)
		employeeIDs := t.EmployeeIDs()
		if err := v.Lock(ctx, companyID, employeeIDs); err != nil {
			s.logger.Error("transition travel lock failed", zap.String("travel_id", id), zap.Error(err))
			return TravelResponse{}, err
		}
		res, err := v.ValidateTravel(ctx, companyID, validation.TravelInput{
			EmployeeIDs:      employeeIDs,
			Dates:            t.Dates,
			ExcludeRequestID: t.ID.String(),
		})
		if err != nil {
			s.logger.Error("transition travel validation failed", zap.String("travel_id", id), zap.Error(err))
			return TravelResponse{}, err
		}
		if !res.Accepted {
			s.logger.Warn("transition travel rejected",
				zap.String("travel_id", id),
				zap.String("reason", res.Reason),
				zap.Strings("employee_ids", res.EmployeeIDs),
			)
			return TravelResponse{}, res.Err()
		}
	}

	from := t.Status
	t.Status = d.To
	t.Remarks = d.Remarks
	switch d.To {
	case workflow.StatusApproved:
		now := s.now()
		t.ApprovedBy = &actor
		t.ApprovedAt = &now
	case workflow.StatusForApproval:
		t.ApprovedBy = nil
		t.ApprovedAt = nil
	}

	ok, err := qtx.CompareAndSwap(ctx, t, from)
	if err != nil {
		s.logger.Error("transition travel persist failed", zap.String("travel_id", id), zap.Error(err))
		return TravelResponse{}, err
	}
	if !ok {
		s.logger.Warn("transition travel lost race", zap.String("travel_id", id), zap.String("expected_status", from))
		return TravelResponse{}, workflowerrors.ErrConflict
	}

	if err := s.enqueue(ctx, tx, t, events.EventRequestStatusChanged, from, actorID); err != nil {
		s.logger.Error("transition travel outbox persist failed", zap.String("travel_id", id), zap.Error(err))
		return TravelResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition travel commit failed", zap.String("travel_id", id), zap.Error(err))
		return TravelResponse{}, err
	}
	s.logger.Info("transition travel success",
		zap.String("travel_id", id),
		zap.String("from_status", from),
		zap.String("status", t.Status),
	)
	return mapToResponse(*t), nil
}

// Delete soft-deletes a request that never reached APPROVED.
func (s *service) Delete(ctx context.Context, companyID, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return travelerrors.ErrInvalidTravelID
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if t.Status == workflow.StatusApproved {
		return travelerrors.ErrApprovedNotDeletable
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete travel failed", zap.String("travel_id", id), zap.Error(err))
		return err
	}
	if err := s.enqueue(ctx, tx, t, events.EventRequestDeleted, t.Status, actorID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete travel success", zap.String("travel_id", id), zap.String("travel_number", t.TravelNumber))
	return nil
}

// checkEmployees requires every traveller to exist in the company. On the portal the
// submitter must also carry the travel permission flag.
func (s *service) checkEmployees(ctx context.Context, repo Repository, companyID, actorID string, ids []uuid.UUID, portal bool) error {
	emps, err := repo.FindEmployees(ctx, companyID, uuidStrings(ids))
	if err != nil {
		s.logger.Error("travel employee lookup failed", zap.Error(err))
		return err
	}
	if len(emps) != len(ids) {
		return travelerrors.ErrEmployeeNotInCompany
	}
	if !portal {
		return nil
	}
	for _, e := range emps {
		if e.ID.String() == actorID {
			if !e.CanCreateTravel {
				return travelerrors.ErrTravelNotAllowed
			}
			return nil
		}
	}
	return travelerrors.ErrSubmitterNotIncluded
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, t *TravelRequest, eventType, from, actorID string) error {
	if s.deps.Outbox == nil {
		return nil
	}
	event, err := kafka.NewEvent(
		contextutil.GetRequestID(ctx),
		kafka.AggregateTravel,
		t.ID.String(),
		eventType,
		events.TravelStatusTopic,
		events.RequestStatusChangedEvent{
			EventType:   eventType,
			RequestKind: string(workflow.KindTravel),
			RequestID:   t.ID.String(),
			CompanyID:   t.CompanyID.String(),
			EmployeeIDs: t.EmployeeIDs(),
			Dates:       t.Dates.Strings(),
			FromStatus:  from,
			ToStatus:    t.Status,
			Remarks:     t.Remarks,
			ActorID:     actorID,
			OccurredAt:  s.now(),
		},
	)
	if err != nil {
		return err
	}
	return s.deps.Outbox.WithTx(tx).Create(ctx, event)
}

func snapshot(t *TravelRequest) workflow.Snapshot {
	return workflow.Snapshot{
		Kind:         workflow.KindTravel,
		Status:       t.Status,
		PortalOrigin: t.IsPortalOrigin,
		CreatedBy:    t.CreatedBy.String(),
	}
}

func parseIDs(companyID, actorID string) (uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, travelerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, travelerrors.ErrInvalidActorID
	}
	return companyUUID, actorUUID, nil
}

// normalizeEmployees parses, deduplicates and sorts the traveller ids.
func normalizeEmployees(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, travelerrors.ErrInvalidEmployeeID
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, travelerrors.ErrEmployeesRequired
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func checkText(purpose, destination string) error {
	if utf8.RuneCountInString(purpose) > maxTextLen {
		return travelerrors.ErrPurposeTooLong
	}
	if utf8.RuneCountInString(destination) > maxTextLen {
		return travelerrors.ErrDestinationTooLong
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func mapToResponse(t TravelRequest) TravelResponse {
	resp := TravelResponse{
		ID:             t.ID.String(),
		CompanyID:      t.CompanyID.String(),
		TravelNumber:   t.TravelNumber,
		EmployeeIDs:    t.EmployeeIDs(),
		Employees:      make([]TravellerResponse, len(t.Employees)),
		Dates:          t.Dates.Strings(),
		StartDate:      t.StartDate.Format(dateset.Layout),
		EndDate:        t.EndDate.Format(dateset.Layout),
		Purpose:        t.Purpose,
		Destination:    t.Destination,
		Status:         t.Status,
		Remarks:        t.Remarks,
		IsPortalOrigin: t.IsPortalOrigin,
		CreatedBy:      t.CreatedBy.String(),
	}
	for i, e := range t.Employees {
		resp.Employees[i] = TravellerResponse{ID: e.EmployeeID.String()}
		if e.Employee != nil {
			resp.Employees[i].FullName = e.Employee.FullName
			resp.Employees[i].Department = e.Employee.Department
		}
	}
	if t.ApprovedBy != nil {
		v := t.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if t.ApprovedAt != nil {
		v := t.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}
