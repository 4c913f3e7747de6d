package service

import (
	"context"

	"finflow/internal/model"
	"finflow/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

// ManagerSummaryResponse counts requests by decision stage across all types.
type ManagerSummaryResponse struct {
	PendingCount  int `json:"pending_count"`
	ApprovedCount int `json:"approved_count"`
	RejectedCount int `json:"rejected_count"`
}

// FinanceSummaryResponse totals the money still waiting on a decision.
type FinanceSummaryResponse struct {
	PendingFinanceCount int    `json:"pending_finance_count"`
	PendingFinanceValue string `json:"pending_finance_value"`
	TotalPendingValue   string `json:"total_pending_value"`
}

// StatusBucket is one bar of the status histogram. Buckets are keyed by the
// literal status label, so statuses that share a label across request types
// merge into a single bucket. That mirrors how the dashboards read the data.
type StatusBucket struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CategorySpendEntry sums approved-or-awaiting-finance expense amounts per category.
type CategorySpendEntry struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// --- Interface ---

// DashboardService derives read-only views from the current store snapshot.
// Nothing is cached: every call recomputes from the store, so dashboards are
// never stale.
type DashboardService interface {
	ManagerSummary(ctx context.Context) ManagerSummaryResponse
	FinanceSummary(ctx context.Context) FinanceSummaryResponse
	StatusSummary(ctx context.Context) []StatusBucket
	CategorySpend(ctx context.Context) []CategorySpendEntry
}

type dashboardService struct {
	repo repository.RequestRepository
}

func NewDashboardService(repo repository.RequestRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// --- Implementation ---

func (s *dashboardService) ManagerSummary(ctx context.Context) ManagerSummaryResponse {
	var summary ManagerSummaryResponse
	for _, req := range s.repo.List(ctx) {
		switch req.Core().Status {
		case model.StatusPendingManager:
			summary.PendingCount++
		case model.StatusApproved:
			summary.ApprovedCount++
		case model.StatusRejected:
			summary.RejectedCount++
		}
	}
	return summary
}

func (s *dashboardService) FinanceSummary(ctx context.Context) FinanceSummaryResponse {
	pendingFinanceValue := decimal.Zero
	totalPendingValue := decimal.Zero
	pendingFinanceCount := 0

	for _, req := range s.repo.List(ctx) {
		status := req.Core().Status
		if status == model.StatusPendingFinance {
			pendingFinanceCount++
			pendingFinanceValue = pendingFinanceValue.Add(req.Value())
		}
		if status.Pending() {
			totalPendingValue = totalPendingValue.Add(req.Value())
		}
	}

	return FinanceSummaryResponse{
		PendingFinanceCount: pendingFinanceCount,
		PendingFinanceValue: pendingFinanceValue.StringFixed(2),
		TotalPendingValue:   totalPendingValue.StringFixed(2),
	}
}

func (s *dashboardService) StatusSummary(ctx context.Context) []StatusBucket {
	counts := make(map[model.Status]int)
	for _, req := range s.repo.List(ctx) {
		counts[req.Core().Status]++
	}

	// Stable bar order for the chart.
	order := []model.Status{
		model.StatusPendingManager,
		model.StatusPendingFinance,
		model.StatusApproved,
		model.StatusRejected,
		model.StatusOrdered,
		model.StatusPaid,
	}

	buckets := make([]StatusBucket, 0, len(counts))
	for _, status := range order {
		if count := counts[status]; count > 0 {
			buckets = append(buckets, StatusBucket{Status: string(status), Count: count})
		}
	}
	return buckets
}

func (s *dashboardService) CategorySpend(ctx context.Context) []CategorySpendEntry {
	spend := make(map[model.ExpenseCategory]decimal.Decimal)
	for _, req := range s.repo.List(ctx) {
		expense, ok := req.(*model.ExpenseRequest)
		if !ok {
			continue
		}
		status := expense.Status
		if status != model.StatusApproved && status != model.StatusPendingFinance {
			continue
		}
		spend[expense.Category] = spend[expense.Category].Add(expense.Amount)
	}

	entries := make([]CategorySpendEntry, 0, len(spend))
	for _, category := range model.ExpenseCategories {
		total, ok := spend[category]
		if !ok || total.IsZero() {
			continue
		}
		entries = append(entries, CategorySpendEntry{
			Category: string(category),
			Total:    total.StringFixed(2),
		})
	}
	return entries
}
