package service

import (
	"context"
	"sync"
	"testing"

	"finflow/internal/model"
	"finflow/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApprovalService(hub EventPublisher) (ApprovalService, repository.RequestRepository) {
	repo := repository.NewRequestRepository(model.SeedRequests)
	return NewApprovalService(repo, hub, DefaultPolicy()), repo
}

func TestApproveSmallExpense(t *testing.T) {
	hub := &recordingPublisher{}
	svc, repo := newTestApprovalService(hub)
	ctx := context.Background()

	// REQ001 is a 125.50 expense pending the manager.
	resp, err := svc.Approve(ctx, "REQ001", model.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusApproved), resp.Status)

	stored, err := repo.FindByID(ctx, "REQ001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, stored.Core().Status)
	assert.Equal(t, []string{EventRequestUpdated}, hub.events)
}

func TestApproveLargeExpenseEscalates(t *testing.T) {
	svc, _ := newTestApprovalService(nil)
	ctx := context.Background()

	// REQ002 is 650.00, above the 500 expense threshold.
	resp, err := svc.Approve(ctx, "REQ002", model.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusPendingFinance), resp.Status)

	// The finance decision is final.
	resp, err = svc.Approve(ctx, "REQ002", model.RoleFinance)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusApproved), resp.Status)
}

func TestApprovePaymentAlwaysGoesToFinance(t *testing.T) {
	svc, repo := newTestApprovalService(nil)
	ctx := context.Background()

	payment := &model.PaymentRequest{
		RequestCore: model.RequestCore{
			RequestType: model.RequestTypePayment, Status: model.StatusPendingManager,
		},
	}
	created, err := repo.Create(ctx, payment)
	require.NoError(t, err)

	resp, err := svc.Approve(ctx, created.Core().ID, model.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusPendingFinance), resp.Status)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, repo := newTestApprovalService(nil)
	ctx := context.Background()

	_, err := svc.Reject(ctx, "REQ001", model.RoleManager, "")
	assert.ErrorIs(t, err, model.ErrEmptyRejectionReason)

	_, err = svc.Reject(ctx, "REQ001", model.RoleManager, "   ")
	assert.ErrorIs(t, err, model.ErrEmptyRejectionReason)

	// The request is untouched by the failed attempts.
	stored, err := repo.FindByID(ctx, "REQ001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingManager, stored.Core().Status)
}

func TestRejectStoresReason(t *testing.T) {
	hub := &recordingPublisher{}
	svc, _ := newTestApprovalService(hub)

	resp, err := svc.Reject(context.Background(), "REQ001", model.RoleManager, "No receipt attached.")
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusRejected), resp.Status)
	assert.Equal(t, "No receipt attached.", resp.RejectionReason)
	assert.Equal(t, []string{EventRequestUpdated}, hub.events)
}

func TestDecisionOnWrongStageFails(t *testing.T) {
	svc, _ := newTestApprovalService(nil)
	ctx := context.Background()

	// REQ003 is pending finance; the manager already acted.
	_, err := svc.Approve(ctx, "REQ003", model.RoleManager)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	// REQ004 is approved, terminal for everyone.
	_, err = svc.Approve(ctx, "REQ004", model.RoleFinance)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = svc.Reject(ctx, "REQ004", model.RoleFinance, "Too late.")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestConcurrentDecisionsApplyAtMostOnce(t *testing.T) {
	// Racing approvals and rejections on one pending request: exactly one
	// decision may land, the rest must see a transition conflict. A second
	// success would let a terminal status regress.
	for i := 0; i < 50; i++ {
		svc, repo := newTestApprovalService(nil)
		ctx := context.Background()

		const workers = 8
		start := make(chan struct{})
		results := make(chan error, workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				<-start
				var err error
				if w%2 == 0 {
					_, err = svc.Approve(ctx, "REQ001", model.RoleManager)
				} else {
					_, err = svc.Reject(ctx, "REQ001", model.RoleManager, "Duplicate decision.")
				}
				results <- err
			}(w)
		}
		close(start)
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, model.ErrInvalidTransition)
		}
		require.Equal(t, 1, succeeded)

		stored, err := repo.FindByID(ctx, "REQ001")
		require.NoError(t, err)
		switch stored.Core().Status {
		case model.StatusApproved:
			assert.Empty(t, stored.Core().RejectionReason)
		case model.StatusRejected:
			assert.Equal(t, "Duplicate decision.", stored.Core().RejectionReason)
		default:
			t.Fatalf("request left in non-terminal status %s", stored.Core().Status)
		}
	}
}

func TestDecisionOnUnknownRequestFails(t *testing.T) {
	svc, _ := newTestApprovalService(nil)

	_, err := svc.Approve(context.Background(), "REQ999", model.RoleManager)
	assert.ErrorIs(t, err, model.ErrRequestNotFound)
}
