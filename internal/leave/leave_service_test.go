package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danny20232023/hris-sub007/internal/availability"
	availabilityerrors "github.com/danny20232023/hris-sub007/internal/availability/errors"
	"github.com/danny20232023/hris-sub007/internal/credit"
	crediterrors "github.com/danny20232023/hris-sub007/internal/credit/errors"
	"github.com/danny20232023/hris-sub007/internal/events"
	"github.com/danny20232023/hris-sub007/internal/leave"
	leaveerrors "github.com/danny20232023/hris-sub007/internal/leave/errors"
	"github.com/danny20232023/hris-sub007/internal/leavetype"
	leavetypeMock "github.com/danny20232023/hris-sub007/internal/leavetype/mock"
	"github.com/danny20232023/hris-sub007/internal/messaging/kafka"
	kafkaMock "github.com/danny20232023/hris-sub007/internal/messaging/kafka/mock"
	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
	"github.com/danny20232023/hris-sub007/internal/shared/dateset"
	"github.com/danny20232023/hris-sub007/internal/workflow"
	workflowerrors "github.com/danny20232023/hris-sub007/internal/workflow/errors"
	workflowMock "github.com/danny20232023/hris-sub007/internal/workflow/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var restoreOnCancel = workflow.Policy{RestoreCreditOnCancel: true}

func TestLeaveService_Scenario(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeA := uuid.NewString()
	approver := uuid.NewString()

	t.Run("approve deducts and blocks overlapping requests", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employeeA, credit.CategoryVacation, "5.000")

		w.expectCommit()
		created, err := w.service.CreateFromPortal(ctx, companyID, employeeA, leave.CreateLeaveRequest{
			EmployeeID: employeeA,
			Category:   "Vacation",
			Dates:      []string{"2025-03-11", "03/10/2025"},
			Purpose:    "family trip",
		})
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusForApproval, created.Status)
		assert.Equal(t, "2.000", created.DeductedCredit)
		assert.Equal(t, []string{"2025-03-10", "2025-03-11"}, created.Dates)
		assert.True(t, created.IsPortalOrigin)

		w.expectCommit()
		approved, err := w.service.UpdateStatus(ctx, companyID, approver, created.ID, leave.UpdateStatusRequest{Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusApproved, approved.Status)
		require.NotNil(t, approved.ApprovedBy)
		assert.Equal(t, approver, *approved.ApprovedBy)
		assert.Equal(t, "3.000", w.credits.amount(companyID, employeeA, credit.CategoryVacation))
		assert.Contains(t, w.avail.locked, employeeA)

		w.expectRollback()
		_, err = w.service.Create(ctx, companyID, approver, leave.CreateLeaveRequest{
			EmployeeID: employeeA,
			Category:   credit.CategorySick,
			Dates:      []string{"2025-03-11"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, availabilityerrors.ErrDateConflict))

		// travel asks the same resolver
		found, err := availability.NewResolver(w.avail).FindUnavailable(ctx, companyID, []string{employeeA}, mustSet(t, "2025-03-11"), "")
		require.NoError(t, err)
		assert.Equal(t, []string{employeeA}, found.Unavailable)
	})

	t.Run("return then resubmit with fewer dates recomputes credit", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employeeA, credit.CategoryVacation, "5.000")

		w.expectCommit()
		created, err := w.service.CreateFromPortal(ctx, companyID, employeeA, leave.CreateLeaveRequest{
			EmployeeID: employeeA,
			Category:   credit.CategoryVacation,
			Dates:      []string{"2025-03-10", "2025-03-11"},
		})
		require.NoError(t, err)

		w.expectCommit()
		returned, err := w.service.UpdateStatus(ctx, companyID, approver, created.ID, leave.UpdateStatusRequest{
			Status:  workflow.StatusReturned,
			Remarks: "missing attachment",
		})
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusReturned, returned.Status)
		require.NotNil(t, returned.Remarks)
		assert.Equal(t, "missing attachment", *returned.Remarks)

		w.expectCommit()
		resubmitted, err := w.service.Update(ctx, companyID, employeeA, created.ID, leave.UpdateLeaveRequest{
			Category: credit.CategoryVacation,
			Dates:    []string{"2025-03-10"},
		})
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusForApproval, resubmitted.Status)
		assert.Nil(t, resubmitted.Remarks)
		assert.Equal(t, "1.000", resubmitted.DeductedCredit)

		w.expectCommit()
		_, err = w.service.UpdateStatus(ctx, companyID, approver, created.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.NoError(t, err)
		assert.Equal(t, "4.000", w.credits.amount(companyID, employeeA, credit.CategoryVacation))
	})
}

func TestLeaveService_Properties(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employee := uuid.NewString()
	approver := uuid.NewString()

	create := func(t *testing.T, w *world, dates ...string) leave.LeaveResponse {
		t.Helper()
		w.expectCommit()
		resp, err := w.service.CreateFromPortal(ctx, companyID, employee, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategoryVacation,
			Dates:      dates,
		})
		require.NoError(t, err)
		return resp
	}

	t.Run("approving twice deducts once", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategoryVacation, "5.000")
		l := create(t, w, "2025-04-01", "2025-04-02")

		w.expectCommit()
		first, err := w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.NoError(t, err)

		w.expectRollback()
		second, err := w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "3.000", w.credits.amount(companyID, employee, credit.CategoryVacation))
		assert.Len(t, w.credits.entries, 1)
		assert.Equal(t, leave.ReserveReference(l.ID), w.credits.entries[0].Reference)
	})

	t.Run("approve then cancel restores the balance", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategoryVacation, "5.000")
		l := create(t, w, "2025-04-01", "2025-04-02", "2025-04-03")

		w.expectCommit()
		_, err := w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.NoError(t, err)
		assert.Equal(t, "2.000", w.credits.amount(companyID, employee, credit.CategoryVacation))

		w.expectRollback()
		_, err = w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusCancelled})
		assert.True(t, errors.Is(err, workflowerrors.ErrMissingRemark))

		w.expectCommit()
		cancelled, err := w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{
			Status:  workflow.StatusCancelled,
			Remarks: "plans changed",
		})
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusCancelled, cancelled.Status)
		assert.Equal(t, "5.000", w.credits.amount(companyID, employee, credit.CategoryVacation))
	})

	t.Run("cancel keeps the deduction when restore is off", func(t *testing.T) {
		w := newWorld(t, workflow.Policy{RestoreCreditOnCancel: false})
		w.credits.seed(companyID, employee, credit.CategoryVacation, "5.000")
		l := create(t, w, "2025-04-01")

		w.expectCommit()
		_, err := w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.NoError(t, err)

		w.expectCommit()
		_, err = w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusCancelled, Remarks: "x"})
		require.NoError(t, err)
		assert.Equal(t, "4.000", w.credits.amount(companyID, employee, credit.CategoryVacation))
	})

	t.Run("second approval over the same date is refused", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategoryVacation, "5.000")
		first := create(t, w, "2025-05-05")
		second := create(t, w, "2025-05-05", "2025-05-06")

		w.expectCommit()
		_, err := w.service.UpdateStatus(ctx, companyID, approver, first.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.NoError(t, err)

		w.expectRollback()
		_, err = w.service.UpdateStatus(ctx, companyID, approver, second.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.Error(t, err)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeDateConflict, appErr.Code)
		details, ok := appErr.Details.(availability.ConflictDetails)
		require.True(t, ok)
		assert.Equal(t, []string{employee}, details.EmployeeIDs)
		assert.Equal(t, []string{"2025-05-05"}, details.Dates)

		assert.Equal(t, workflow.StatusForApproval, w.leaves.get(t, second.ID).Status)
		assert.Equal(t, "4.000", w.credits.amount(companyID, employee, credit.CategoryVacation))
	})

	t.Run("balance equal to the amount is enough", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategoryVacation, "1.000")
		l := create(t, w, "2025-06-01")

		w.expectCommit()
		_, err := w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.NoError(t, err)
		assert.Equal(t, "0.000", w.credits.amount(companyID, employee, credit.CategoryVacation))
	})

	t.Run("balance a thousandth short is rejected at create", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategoryVacation, "0.999")

		w.expectRollback()
		_, err := w.service.CreateFromPortal(ctx, companyID, employee, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategoryVacation,
			Dates:      []string{"2025-06-01"},
		})
		require.Error(t, err)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeInsufficientCredit, appErr.Code)
		details, ok := appErr.Details.(crediterrors.InsufficientDetails)
		require.True(t, ok)
		assert.Equal(t, "0.001", details.Shortfall)
	})

	t.Run("credit spent elsewhere fails approval without side effects", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategoryVacation, "2.000")
		l := create(t, w, "2025-07-01", "2025-07-02")
		w.credits.seed(companyID, employee, credit.CategoryVacation, "1.500")

		w.expectRollback()
		_, err := w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		assert.True(t, errors.Is(err, crediterrors.ErrInsufficientCredit))
		assert.Equal(t, workflow.StatusForApproval, w.leaves.get(t, l.ID).Status)
		assert.Equal(t, "1.500", w.credits.amount(companyID, employee, credit.CategoryVacation))
		assert.Empty(t, w.credits.entries)
	})

	t.Run("lost compare and swap is a conflict", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategoryVacation, "5.000")
		l := create(t, w, "2025-08-01")
		w.leaves.casFails = true

		w.expectRollback()
		_, err := w.service.UpdateStatus(ctx, companyID, approver, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		assert.True(t, errors.Is(err, workflowerrors.ErrConflict))
		assert.Equal(t, "5.000", w.credits.amount(companyID, employee, credit.CategoryVacation))
	})
}

func TestLeaveService_TransitionGuards(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employee := uuid.NewString()
	staff := uuid.NewString()

	t.Run("staff requests cannot be returned", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategorySick, "3.000")

		w.expectCommit()
		l, err := w.service.Create(ctx, companyID, staff, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategorySick,
			Dates:      []string{"2025-03-10"},
		})
		require.NoError(t, err)
		assert.False(t, l.IsPortalOrigin)

		w.expectRollback()
		_, err = w.service.UpdateStatus(ctx, companyID, staff, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusReturned, Remarks: "fix"})
		assert.True(t, errors.Is(err, workflowerrors.ErrReturnRequiresPortal))
	})

	t.Run("only the original submitter resubmits", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategorySick, "3.000")

		w.expectCommit()
		l, err := w.service.CreateFromPortal(ctx, companyID, employee, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategorySick,
			Dates:      []string{"2025-03-10"},
		})
		require.NoError(t, err)

		w.expectCommit()
		_, err = w.service.UpdateStatus(ctx, companyID, staff, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusReturned, Remarks: "fix"})
		require.NoError(t, err)

		w.expectRollback()
		_, err = w.service.Update(ctx, companyID, staff, l.ID, leave.UpdateLeaveRequest{Category: credit.CategorySick, Dates: []string{"2025-03-10"}})
		assert.True(t, errors.Is(err, workflowerrors.ErrNotOriginalSubmitter))
	})

	t.Run("approved requests are neither editable nor deletable", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategorySick, "3.000")

		w.expectCommit()
		l, err := w.service.Create(ctx, companyID, staff, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategorySick,
			Dates:      []string{"2025-03-10"},
		})
		require.NoError(t, err)

		w.expectCommit()
		_, err = w.service.UpdateStatus(ctx, companyID, staff, l.ID, leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		require.NoError(t, err)

		w.expectRollback()
		_, err = w.service.Update(ctx, companyID, staff, l.ID, leave.UpdateLeaveRequest{Category: credit.CategorySick, Dates: []string{"2025-03-11"}})
		assert.True(t, errors.Is(err, leaveerrors.ErrNotEditable))

		w.expectRollback()
		err = w.service.Delete(ctx, companyID, staff, l.ID)
		assert.True(t, errors.Is(err, leaveerrors.ErrApprovedNotDeletable))
	})

	t.Run("pending requests can be deleted", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategorySick, "3.000")

		w.expectCommit()
		l, err := w.service.Create(ctx, companyID, staff, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategorySick,
			Dates:      []string{"2025-03-10"},
		})
		require.NoError(t, err)

		w.expectCommit()
		require.NoError(t, w.service.Delete(ctx, companyID, staff, l.ID))

		_, err = w.service.GetByID(ctx, companyID, l.ID)
		assert.True(t, errors.Is(err, leaveerrors.ErrLeaveNotFound))
	})

	t.Run("staff edit keeps derived credit in step", func(t *testing.T) {
		w := newWorld(t, restoreOnCancel)
		w.credits.seed(companyID, employee, credit.CategoryVacation, "9.000")

		w.expectCommit()
		l, err := w.service.Create(ctx, companyID, staff, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategoryVacation,
			Dates:      []string{"2025-03-10"},
		})
		require.NoError(t, err)

		w.expectCommit()
		edited, err := w.service.Update(ctx, companyID, staff, l.ID, leave.UpdateLeaveRequest{
			Category: credit.CategoryVacation,
			Dates:    []string{"2025-03-10", "2025-03-12", "2025-03-12", "2025-03-13"},
			Purpose:  "longer",
		})
		require.NoError(t, err)
		assert.Equal(t, "3.000", edited.DeductedCredit)
		assert.Equal(t, "2025-03-10", edited.StartDate)
		assert.Equal(t, "2025-03-13", edited.EndDate)
		assert.Equal(t, workflow.StatusForApproval, edited.Status)
	})
}

func TestLeaveService_InputErrors(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employee := uuid.NewString()

	w := newWorld(t, restoreOnCancel)

	t.Run("invalid dates are named", func(t *testing.T) {
		_, err := w.service.Create(ctx, companyID, employee, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategoryVacation,
			Dates:      []string{"2025-03-10", "2025-13-40", "soon"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, dateset.ErrInvalidDateFormat))

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		details, ok := appErr.Details.(dateset.InvalidDateDetails)
		require.True(t, ok)
		assert.Equal(t, []string{"2025-13-40", "soon"}, details.Invalid)
	})

	t.Run("empty date set", func(t *testing.T) {
		w.expectRollback()
		_, err := w.service.Create(ctx, companyID, employee, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategoryVacation,
		})
		assert.True(t, errors.Is(err, dateset.ErrEmptyDateSet))
	})

	t.Run("unknown category", func(t *testing.T) {
		w.expectRollback()
		_, err := w.service.Create(ctx, companyID, employee, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   "BIRTHDAY",
			Dates:      []string{"2025-03-10"},
		})
		assert.True(t, errors.Is(err, crediterrors.ErrInvalidCategory))
	})

	t.Run("purpose longer than 100 characters", func(t *testing.T) {
		long := make([]rune, 101)
		for i := range long {
			long[i] = 'é'
		}
		_, err := w.service.Create(ctx, companyID, employee, leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategoryVacation,
			Dates:      []string{"2025-03-10"},
			Purpose:    string(long),
		})
		assert.True(t, errors.Is(err, leaveerrors.ErrPurposeTooLong))
	})

	t.Run("portal requests are for yourself", func(t *testing.T) {
		_, err := w.service.CreateFromPortal(ctx, companyID, uuid.NewString(), leave.CreateLeaveRequest{
			EmployeeID: employee,
			Category:   credit.CategoryVacation,
			Dates:      []string{"2025-03-10"},
		})
		assert.True(t, errors.Is(err, leaveerrors.ErrPortalSelfOnly))
	})

	t.Run("unknown target status", func(t *testing.T) {
		_, err := w.service.UpdateStatus(ctx, companyID, employee, uuid.NewString(), leave.UpdateStatusRequest{Status: "REJECTED"})
		assert.True(t, errors.Is(err, workflowerrors.ErrUnknownTarget))
	})

	t.Run("unknown status filter", func(t *testing.T) {
		_, err := w.service.GetAll(ctx, companyID, leave.LeaveFilter{Status: "DONE"})
		require.Error(t, err)
	})

	assert.NoError(t, w.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_MalformedID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	actor := uuid.NewString()

	w := newWorld(t, restoreOnCancel)

	assertInvalidID := func(t *testing.T, err error) {
		t.Helper()
		require.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, apperror.CodeInvalidInput, httpErr.Code)
	}

	t.Run("get", func(t *testing.T) {
		_, err := w.service.GetByID(ctx, companyID, "abc")
		assertInvalidID(t, err)
	})

	t.Run("update", func(t *testing.T) {
		_, err := w.service.Update(ctx, companyID, actor, "abc", leave.UpdateLeaveRequest{Dates: []string{"2025-03-10"}})
		assertInvalidID(t, err)
	})

	t.Run("update status", func(t *testing.T) {
		_, err := w.service.UpdateStatus(ctx, companyID, actor, "abc", leave.UpdateStatusRequest{Status: workflow.StatusApproved})
		assertInvalidID(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		assertInvalidID(t, w.service.Delete(ctx, companyID, actor, "abc"))
	})

	t.Run("invalid text representation from postgres", func(t *testing.T) {
		w.leaves.findErr = &pgconn.PgError{Code: "22P02"}
		t.Cleanup(func() { w.leaves.findErr = nil })

		_, err := w.service.GetByID(ctx, companyID, uuid.NewString())
		assertInvalidID(t, err)
	})

	assert.NoError(t, w.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_PermissionDecisionPoint(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	actor := uuid.NewString()

	ctrl := gomock.NewController(t)
	perms := workflowMock.NewMockPermissionChecker(ctrl)
	w := newWorld(t, restoreOnCancel, func(d *leave.Dependencies) { d.Permissions = perms })

	perms.EXPECT().Can(gomock.Any(), companyID, actor, "leave", workflow.ActionApprove).Return(false, nil)

	_, err := w.service.UpdateStatus(ctx, companyID, actor, uuid.NewString(), leave.UpdateStatusRequest{Status: workflow.StatusApproved})

	assert.True(t, errors.Is(err, workflowerrors.ErrPermissionDenied))
	assert.NoError(t, w.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_LeaveTypeAndOutbox(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	employee := uuid.NewString()
	typeID := uuid.NewString()

	ctrl := gomock.NewController(t)
	types := leavetypeMock.NewMockService(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	w := newWorld(t, restoreOnCancel, func(d *leave.Dependencies) {
		d.LeaveTypes = types
		d.Outbox = outbox
	})
	w.credits.seed(companyID, employee, credit.CategorySick, "2.000")

	types.EXPECT().Resolve(gomock.Any(), companyID, typeID).
		Return(leavetype.LeaveTypeResponse{ID: typeID, Code: "SL", Name: "Sick Leave", CreditCategory: "SICK"}, nil)
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
		assert.Equal(t, events.LeaveStatusTopic, e.Topic)
		assert.Equal(t, kafka.AggregateLeave, e.AggregateType)
		assert.Equal(t, events.EventRequestSubmitted, e.EventType)

		var payload events.RequestStatusChangedEvent
		require.NoError(t, json.Unmarshal(e.Payload, &payload))
		assert.Equal(t, workflow.StatusForApproval, payload.ToStatus)
		assert.Equal(t, []string{employee}, payload.EmployeeIDs)
		return nil
	})

	w.expectCommit()
	resp, err := w.service.CreateFromPortal(ctx, companyID, employee, leave.CreateLeaveRequest{
		EmployeeID:  employee,
		LeaveTypeID: typeID,
		Dates:       []string{"2025-09-01"},
	})

	require.NoError(t, err)
	assert.Equal(t, credit.CategorySick, resp.Category)
	require.NotNil(t, resp.LeaveTypeID)
	assert.Equal(t, typeID, *resp.LeaveTypeID)
}
