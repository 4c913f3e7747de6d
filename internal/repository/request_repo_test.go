package repository

import (
	"context"
	"testing"

	"finflow/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo() RequestRepository {
	return NewRequestRepository(model.SeedRequests)
}

func newExpense(title string, amount string) *model.ExpenseRequest {
	return &model.ExpenseRequest{
		RequestCore: model.RequestCore{
			RequestType:  model.RequestTypeExpense,
			EmployeeName: "Alex Johnson", EmployeeID: "E-123", Department: "Technology",
			Title: title, Status: model.StatusPendingManager, SubmittedDate: "2024-07-20",
		},
		Description: "test expense",
		Date:        "2024-07-19",
		Amount:      decimal.RequireFromString(amount),
		Category:    model.CategoryFood,
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	// The seed holds 5 expenses, 2 purchases and 1 payment.
	created, err := repo.Create(ctx, newExpense("Lunch", "20.00"))
	require.NoError(t, err)
	assert.Equal(t, "REQ006", created.Core().ID)

	created, err = repo.Create(ctx, &model.PurchaseRequest{
		RequestCore: model.RequestCore{RequestType: model.RequestTypePurchase, Status: model.StatusPendingManager},
		Items:       []model.PurchaseItem{{Name: "Chair", Quantity: 1, Price: decimal.NewFromInt(150)}},
		TotalAmount: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, "PC003", created.Core().ID)

	created, err = repo.Create(ctx, &model.PaymentRequest{
		RequestCore: model.RequestCore{RequestType: model.RequestTypePayment, Status: model.StatusPendingManager},
		Amount:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "PAG002", created.Core().ID)

	// Numbering counts only the matching type.
	created, err = repo.Create(ctx, newExpense("Dinner", "30.00"))
	require.NoError(t, err)
	assert.Equal(t, "REQ007", created.Core().ID)
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	_, err := repo.Create(ctx, newExpense("Newest", "10.00"))
	require.NoError(t, err)

	all := repo.List(ctx)
	require.Len(t, all, 9)
	assert.Equal(t, "Newest", all[0].Core().Title)
	assert.Equal(t, "REQ001", all[1].Core().ID)
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	req, err := repo.FindByID(ctx, "PC001")
	require.NoError(t, err)
	assert.Equal(t, model.RequestTypePurchase, req.Type())
	assert.Equal(t, "Maria Garcia", req.Core().EmployeeName)

	_, err = repo.FindByID(ctx, "REQ999")
	assert.ErrorIs(t, err, model.ErrRequestNotFound)
}

func TestListReturnsIsolatedSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	snapshot := repo.List(ctx)
	require.NotEmpty(t, snapshot)
	snapshot[0].Core().Title = "tampered"

	fresh, err := repo.FindByID(ctx, snapshot[0].Core().ID)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", fresh.Core().Title)
}

func TestListByEmployee(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	mine := repo.ListByEmployee(ctx, "E-123")
	require.Len(t, mine, 3)
	for _, req := range mine {
		assert.Equal(t, "E-123", req.Core().EmployeeID)
	}

	assert.Empty(t, repo.ListByEmployee(ctx, "E-999"))
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	updated, err := repo.UpdateStatus(ctx, "REQ001", model.StatusPendingManager, model.StatusRejected, "Missing receipt.")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, updated.Core().Status)
	assert.Equal(t, "Missing receipt.", updated.Core().RejectionReason)

	stored, err := repo.FindByID(ctx, "REQ001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, stored.Core().Status)

	// An empty reason clears any previous one.
	updated, err = repo.UpdateStatus(ctx, "REQ001", model.StatusRejected, model.StatusPendingManager, "")
	require.NoError(t, err)
	assert.Empty(t, updated.Core().RejectionReason)

	_, err = repo.UpdateStatus(ctx, "REQ999", model.StatusPendingManager, model.StatusApproved, "")
	assert.ErrorIs(t, err, model.ErrRequestNotFound)
}

func TestUpdateStatusRejectsStaleExpectation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	_, err := repo.UpdateStatus(ctx, "REQ001", model.StatusPendingManager, model.StatusApproved, "")
	require.NoError(t, err)

	// A second writer that validated against the pending snapshot loses.
	_, err = repo.UpdateStatus(ctx, "REQ001", model.StatusPendingManager, model.StatusRejected, "Too slow.")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	stored, err := repo.FindByID(ctx, "REQ001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, stored.Core().Status)
	assert.Empty(t, stored.Core().RejectionReason)
}

func TestResetRestoresSeed(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	_, err := repo.Create(ctx, newExpense("Extra", "15.00"))
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, "REQ001", model.StatusPendingManager, model.StatusApproved, "")
	require.NoError(t, err)

	repo.Reset(ctx)
	assert.Equal(t, model.SeedRequests(), repo.List(ctx))

	// Resetting an already-reset store changes nothing.
	repo.Reset(ctx)
	assert.Equal(t, model.SeedRequests(), repo.List(ctx))

	// Ids restart from the seed counts after a reset.
	created, err := repo.Create(ctx, newExpense("Post reset", "5.00"))
	require.NoError(t, err)
	assert.Equal(t, "REQ006", created.Core().ID)
}
