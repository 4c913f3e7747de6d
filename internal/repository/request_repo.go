package repository

import (
	"context"
	"fmt"
	"sync"

	"finflow/internal/model"
)

// RequestRepository owns the canonical request collection. The backing store
// is an in-process slice: state lives for the lifetime of the server and the
// seed snapshot is the only durable thing. Context parameters are kept on the
// interface so a persistent implementation could be slotted in later.
type RequestRepository interface {
	// Create assigns the id and prepends the request (newest first).
	Create(ctx context.Context, req model.FinancialRequest) (model.FinancialRequest, error)
	FindByID(ctx context.Context, id string) (model.FinancialRequest, error)
	// List returns a deep-copied snapshot, newest first.
	List(ctx context.Context) []model.FinancialRequest
	ListByEmployee(ctx context.Context, employeeID string) []model.FinancialRequest
	// UpdateStatus replaces the status and sets the rejection reason, or
	// clears it when reason is empty. Unknown ids return ErrRequestNotFound.
	// The write lands only while the current status still equals expected;
	// a stale expectation returns ErrInvalidTransition, so two concurrent
	// decisions validated against the same snapshot cannot both apply.
	UpdateStatus(ctx context.Context, id string, expected, next model.Status, reason string) (model.FinancialRequest, error)
	// Reset restores the seed snapshot, discarding every mutation.
	Reset(ctx context.Context)
}

type memoryRequestRepository struct {
	mu       sync.RWMutex
	requests []model.FinancialRequest
	seed     func() []model.FinancialRequest
}

// NewRequestRepository returns a request store pre-loaded from seed.
func NewRequestRepository(seed func() []model.FinancialRequest) RequestRepository {
	return &memoryRequestRepository{
		requests: seed(),
		seed:     seed,
	}
}

func (r *memoryRequestRepository) Create(ctx context.Context, req model.FinancialRequest) (model.FinancialRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Sequential id scoped to the request type: count of existing requests
	// of that type + 1, zero-padded to three digits.
	count := 0
	for _, existing := range r.requests {
		if existing.Type() == req.Type() {
			count++
		}
	}
	req.Core().ID = fmt.Sprintf("%s%03d", req.Type().IDPrefix(), count+1)

	r.requests = append([]model.FinancialRequest{req}, r.requests...)
	return req.Clone(), nil
}

func (r *memoryRequestRepository) FindByID(ctx context.Context, id string) (model.FinancialRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.Core().ID == id {
			return req.Clone(), nil
		}
	}
	return nil, fmt.Errorf("request %q: %w", id, model.ErrRequestNotFound)
}

func (r *memoryRequestRepository) List(ctx context.Context) []model.FinancialRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]model.FinancialRequest, 0, len(r.requests))
	for _, req := range r.requests {
		snapshot = append(snapshot, req.Clone())
	}
	return snapshot
}

func (r *memoryRequestRepository) ListByEmployee(ctx context.Context, employeeID string) []model.FinancialRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []model.FinancialRequest
	for _, req := range r.requests {
		if req.Core().EmployeeID == employeeID {
			result = append(result, req.Clone())
		}
	}
	return result
}

func (r *memoryRequestRepository) UpdateStatus(ctx context.Context, id string, expected, next model.Status, reason string) (model.FinancialRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.requests {
		if req.Core().ID == id {
			core := req.Core()
			if core.Status != expected {
				return nil, fmt.Errorf("request %s is %s, not %s: %w",
					id, core.Status, expected, model.ErrInvalidTransition)
			}
			core.Status = next
			core.RejectionReason = reason
			return req.Clone(), nil
		}
	}
	return nil, fmt.Errorf("request %q: %w", id, model.ErrRequestNotFound)
}

func (r *memoryRequestRepository) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = r.seed()
}
