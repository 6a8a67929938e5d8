package workflow

import (
	"context"
	"strings"

	workflowerrors "github.com/danny20232023/hris-sub007/internal/workflow/errors"
)

const (
	StatusForApproval = "FOR_APPROVAL"
	StatusApproved    = "APPROVED"
	StatusReturned    = "RETURNED"
	StatusCancelled   = "CANCELLED"
)

type Kind string

const (
	KindLeave  Kind = "leave"
	KindTravel Kind = "travel"
)

// LedgerEffect is the credit movement a transition requires once its status write has succeeded.
type LedgerEffect int

const (
	LedgerNone LedgerEffect = iota
	LedgerReserve
	LedgerRelease
)

// Permission actions consulted before a transition is accepted.
const (
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionUpdate   = "update"
	ActionApprove  = "approve"
	ActionReturn   = "return"
	ActionCancel   = "cancel"
	ActionResubmit = "resubmit"
	ActionDelete   = "delete"
	ActionSubmit   = "submit"
)

// Snapshot is the part of a stored request the state machine looks at.
type Snapshot struct {
	Kind         Kind
	Status       string
	PortalOrigin bool
	CreatedBy    string
}

type Command struct {
	Target  string
	Remarks string
	ActorID string
}

type Decision struct {
	From string
	To   string
	// Noop is set when the request is already in the target status; callers return success untouched.
	Noop   bool
	Ledger LedgerEffect
	// Revalidate asks the caller to run the authoritative availability and credit checks.
	Revalidate bool
	// Remarks is the value to persist; nil clears it.
	Remarks *string
}

type Policy struct {
	RestoreCreditOnCancel bool
}

func IsKnownStatus(s string) bool {
	switch s {
	case StatusForApproval, StatusApproved, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// ActionFor maps a target status to the permission action guarding it.
func ActionFor(target string) string {
	switch target {
	case StatusApproved:
		return ActionApprove
	case StatusReturned:
		return ActionReturn
	case StatusCancelled:
		return ActionCancel
	case StatusForApproval:
		return ActionResubmit
	}
	return ""
}

func Decide(s Snapshot, cmd Command, policy Policy) (Decision, error) {
	if !IsKnownStatus(cmd.Target) {
		return Decision{}, workflowerrors.ErrUnknownTarget
	}

	d := Decision{From: s.Status, To: cmd.Target}
	if s.Status == cmd.Target {
		d.Noop = true
		return d, nil
	}

	remark := strings.TrimSpace(cmd.Remarks)

	switch cmd.Target {
	case StatusApproved:
		if s.Status != StatusForApproval {
			return Decision{}, workflowerrors.ErrInvalidTransition
		}
		if s.Kind == KindLeave {
			d.Ledger = LedgerReserve
		}
		d.Revalidate = true
		if remark != "" {
			d.Remarks = &remark
		}

	case StatusReturned:
		if s.Status != StatusForApproval {
			return Decision{}, workflowerrors.ErrInvalidTransition
		}
		if remark == "" {
			return Decision{}, workflowerrors.ErrMissingRemark
		}
		if !s.PortalOrigin {
			return Decision{}, workflowerrors.ErrReturnRequiresPortal
		}
		d.Remarks = &remark

	case StatusCancelled:
		switch {
		case s.Status == StatusForApproval:
		case s.Status == StatusApproved && s.Kind == KindLeave:
			if policy.RestoreCreditOnCancel {
				d.Ledger = LedgerRelease
			}
		default:
			return Decision{}, workflowerrors.ErrInvalidTransition
		}
		if remark == "" {
			return Decision{}, workflowerrors.ErrMissingRemark
		}
		d.Remarks = &remark

	case StatusForApproval:
		if s.Status != StatusReturned {
			return Decision{}, workflowerrors.ErrInvalidTransition
		}
		if !s.PortalOrigin || s.CreatedBy == "" || s.CreatedBy != cmd.ActorID {
			return Decision{}, workflowerrors.ErrNotOriginalSubmitter
		}
		d.Revalidate = true
		d.Remarks = nil
	}

	return d, nil
}

//go:generate mockgen -source=workflow.go -destination=mock/permission_checker_mock.go -package=mock
type PermissionChecker interface {
	Can(ctx context.Context, companyID, employeeID, component, action string) (bool, error)
}

// Authorize turns a negative permission decision into ErrPermissionDenied.
func Authorize(ctx context.Context, checker PermissionChecker, companyID, employeeID, component, action string) error {
	allowed, err := checker.Can(ctx, companyID, employeeID, component, action)
	if err != nil {
		return err
	}
	if !allowed {
		return workflowerrors.ErrPermissionDenied
	}
	return nil
}
