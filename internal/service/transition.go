package service

import (
	"fmt"

	"finflow/internal/model"

	"github.com/shopspring/decimal"
)

// Decision enum constants
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Policy carries the monetary cutoffs that route approvals. The submission
// advisory limit is separate (see PolicyLimit on RequestService): same default
// number, different check.
type Policy struct {
	// ExpenseThreshold: manager-approved expenses above it go to finance.
	ExpenseThreshold decimal.Decimal
	// PurchaseThreshold: manager-approved purchases above it go to finance.
	PurchaseThreshold decimal.Decimal
}

// DefaultPolicy matches the reference cutoffs: 500 for expenses, 5000 for purchases.
func DefaultPolicy() Policy {
	return Policy{
		ExpenseThreshold:  decimal.NewFromInt(500),
		PurchaseThreshold: decimal.NewFromInt(5000),
	}
}

// pendingFor returns the status a request must hold for the role to act on it.
func pendingFor(role model.Role) (model.Status, bool) {
	switch role {
	case model.RoleManager:
		return model.StatusPendingManager, true
	case model.RoleFinance:
		return model.StatusPendingFinance, true
	}
	return "", false
}

// NextStatus is the approval state machine: a pure function of the request,
// the acting role and the decision. It never mutates the request.
//
// Manager approval routes by amount: expenses above the expense threshold and
// purchases above the purchase threshold continue to finance, anything at or
// below is finally approved. Payments always continue to finance. Finance
// approval is final. Rejection is allowed at either pending stage.
//
// A decision on a request that is not pending for the acting role returns
// ErrInvalidTransition.
func NextStatus(req model.FinancialRequest, role model.Role, decision Decision, policy Policy) (model.Status, error) {
	required, ok := pendingFor(role)
	if !ok {
		return "", fmt.Errorf("role %s cannot decide requests: %w", role, model.ErrInvalidTransition)
	}

	current := req.Core().Status
	if current != required {
		return "", fmt.Errorf("request %s is %s, not %s: %w",
			req.Core().ID, current, required, model.ErrInvalidTransition)
	}

	switch decision {
	case DecisionReject:
		return model.StatusRejected, nil
	case DecisionApprove:
		if role == model.RoleFinance {
			return model.StatusApproved, nil
		}
		switch r := req.(type) {
		case *model.ExpenseRequest:
			if r.Amount.GreaterThan(policy.ExpenseThreshold) {
				return model.StatusPendingFinance, nil
			}
			return model.StatusApproved, nil
		case *model.PurchaseRequest:
			if r.TotalAmount.GreaterThan(policy.PurchaseThreshold) {
				return model.StatusPendingFinance, nil
			}
			return model.StatusApproved, nil
		case *model.PaymentRequest:
			// Managers can only forward payments, never finally approve.
			return model.StatusPendingFinance, nil
		default:
			return "", fmt.Errorf("unknown request type %T: %w", req, model.ErrInvalidTransition)
		}
	default:
		return "", fmt.Errorf("unknown decision %q: %w", decision, model.ErrInvalidTransition)
	}
}
