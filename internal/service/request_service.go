package service

import (
	"context"
	"fmt"
	"time"

	"finflow/internal/model"
	"finflow/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type SubmitExpenseRequest struct {
	EmployeeName string `json:"employee_name" binding:"required"`
	EmployeeID   string `json:"employee_id" binding:"required"`
	Department   string `json:"department" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Date         string `json:"date" binding:"required"`   // YYYY-MM-DD
	Amount       string `json:"amount" binding:"required"` // decimal string
	Category     string `json:"category" binding:"required,oneof=FOOD TRANSPORT LODGING OFFICE_SUPPLIES OTHER"`
	ReceiptURL   string `json:"receipt_url"`
}

type SubmitPurchaseItem struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Price    string `json:"price" binding:"required"` // decimal string
}

type SubmitPurchaseRequest struct {
	EmployeeName string               `json:"employee_name" binding:"required"`
	EmployeeID   string               `json:"employee_id" binding:"required"`
	Department   string               `json:"department" binding:"required"`
	Title        string               `json:"title" binding:"required"`
	Supplier     string               `json:"supplier" binding:"required"`
	Items        []SubmitPurchaseItem `json:"items" binding:"required,min=1,dive"`
	CostCenter   string               `json:"cost_center" binding:"required"`
}

type SubmitPaymentRequest struct {
	EmployeeName  string `json:"employee_name" binding:"required"`
	EmployeeID    string `json:"employee_id" binding:"required"`
	Department    string `json:"department" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Supplier      string `json:"supplier" binding:"required"`
	InvoiceNumber string `json:"invoice_number" binding:"required"`
	DueDate       string `json:"due_date" binding:"required"` // YYYY-MM-DD
	Amount        string `json:"amount" binding:"required"`   // decimal string
	InvoiceURL    string `json:"invoice_url"`
}

type RequestFilter struct {
	Status string // status label, empty for all
	Type   string // expense, purchase, payment, empty for all
	Page   int
	Limit  int
}

type PurchaseItemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// RequestResponse flattens the request union for the API: common fields are
// always present, variant fields are omitted when they do not apply.
type RequestResponse struct {
	RequestType     string `json:"request_type"`
	ID              string `json:"id"`
	EmployeeName    string `json:"employee_name"`
	EmployeeID      string `json:"employee_id"`
	Department      string `json:"department"`
	Title           string `json:"title"`
	Status          string `json:"status"`
	SubmittedDate   string `json:"submitted_date"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	// expense fields
	Description    string `json:"description,omitempty"`
	Date           string `json:"date,omitempty"`
	Amount         string `json:"amount,omitempty"`
	Category       string `json:"category,omitempty"`
	ReceiptURL     string `json:"receipt_url,omitempty"`
	PolicyViolated *bool  `json:"policy_violated,omitempty"`

	// purchase fields
	Supplier    string                 `json:"supplier,omitempty"`
	Items       []PurchaseItemResponse `json:"items,omitempty"`
	TotalAmount string                 `json:"total_amount,omitempty"`
	CostCenter  string                 `json:"cost_center,omitempty"`

	// payment fields
	InvoiceNumber string `json:"invoice_number,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	InvoiceURL    string `json:"invoice_url,omitempty"`
}

// --- Interface ---

type RequestService interface {
	SubmitExpense(ctx context.Context, req SubmitExpenseRequest) (RequestResponse, error)
	SubmitPurchase(ctx context.Context, req SubmitPurchaseRequest) (RequestResponse, error)
	SubmitPayment(ctx context.Context, req SubmitPaymentRequest) (RequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, int64, error)
	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]RequestResponse, error)
	Reset(ctx context.Context)
}

type requestService struct {
	repo repository.RequestRepository
	hub  EventPublisher
	// policyLimit is the submission-time advisory cutoff: expenses above it
	// are flagged, not blocked. Distinct from Policy.ExpenseThreshold even
	// though both default to 500.
	policyLimit decimal.Decimal
	now         func() time.Time
}

// NewRequestService wires the submission side of the workflow.
func NewRequestService(repo repository.RequestRepository, hub EventPublisher, policyLimit decimal.Decimal) RequestService {
	return &requestService{
		repo:        repo,
		hub:         hub,
		policyLimit: policyLimit,
		now:         time.Now,
	}
}

// --- Implementation ---

func (s *requestService) SubmitExpense(ctx context.Context, req SubmitExpenseRequest) (RequestResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("invalid amount: %w", err)
	}
	if err := validateDate(req.Date); err != nil {
		return RequestResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	expense := &model.ExpenseRequest{
		RequestCore: s.newCore(model.RequestTypeExpense, req.EmployeeName, req.EmployeeID, req.Department, req.Title),
		Description: req.Description,
		Date:        req.Date,
		Amount:      amount,
		Category:    model.ExpenseCategory(req.Category),
		ReceiptURL:  req.ReceiptURL,
		// Advisory flag only; the routing decision happens at approval time.
		PolicyViolated: amount.GreaterThan(s.policyLimit),
	}

	created, err := s.repo.Create(ctx, expense)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("failed to store expense request: %w", err)
	}

	resp := toRequestResponse(created)
	publish(s.hub, EventRequestCreated, resp)
	return resp, nil
}

func (s *requestService) SubmitPurchase(ctx context.Context, req SubmitPurchaseRequest) (RequestResponse, error) {
	items := make([]model.PurchaseItem, 0, len(req.Items))
	// totalAmount is recomputed here, never read from the payload.
	total := decimal.Zero
	for i, item := range req.Items {
		price, err := parseAmount(item.Price)
		if err != nil {
			return RequestResponse{}, fmt.Errorf("invalid price for item %d: %w", i+1, err)
		}
		if item.Quantity < 1 {
			return RequestResponse{}, fmt.Errorf("item %d quantity must be at least 1", i+1)
		}
		modelItem := model.PurchaseItem{Name: item.Name, Quantity: item.Quantity, Price: price}
		items = append(items, modelItem)
		total = total.Add(modelItem.Subtotal())
	}

	purchase := &model.PurchaseRequest{
		RequestCore: s.newCore(model.RequestTypePurchase, req.EmployeeName, req.EmployeeID, req.Department, req.Title),
		Supplier:    req.Supplier,
		Items:       items,
		TotalAmount: total,
		CostCenter:  req.CostCenter,
	}

	created, err := s.repo.Create(ctx, purchase)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("failed to store purchase request: %w", err)
	}

	resp := toRequestResponse(created)
	publish(s.hub, EventRequestCreated, resp)
	return resp, nil
}

func (s *requestService) SubmitPayment(ctx context.Context, req SubmitPaymentRequest) (RequestResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("invalid amount: %w", err)
	}
	if err := validateDate(req.DueDate); err != nil {
		return RequestResponse{}, fmt.Errorf("invalid due_date: %w", err)
	}

	payment := &model.PaymentRequest{
		RequestCore:   s.newCore(model.RequestTypePayment, req.EmployeeName, req.EmployeeID, req.Department, req.Title),
		Supplier:      req.Supplier,
		InvoiceNumber: req.InvoiceNumber,
		DueDate:       req.DueDate,
		Amount:        amount,
		InvoiceURL:    req.InvoiceURL,
	}

	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("failed to store payment request: %w", err)
	}

	resp := toRequestResponse(created)
	publish(s.hub, EventRequestCreated, resp)
	return resp, nil
}

func (s *requestService) ListRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, int64, error) {
	all := s.repo.List(ctx)

	filtered := make([]model.FinancialRequest, 0, len(all))
	for _, req := range all {
		if filter.Status != "" && string(req.Core().Status) != filter.Status {
			continue
		}
		if filter.Type != "" && string(req.Type()) != filter.Type {
			continue
		}
		filtered = append(filtered, req)
	}
	total := int64(len(filtered))

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	start := (filter.Page - 1) * filter.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	result := make([]RequestResponse, 0, end-start)
	for _, req := range filtered[start:end] {
		result = append(result, toRequestResponse(req))
	}
	return result, total, nil
}

func (s *requestService) GetRequest(ctx context.Context, id string) (RequestResponse, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return toRequestResponse(req), nil
}

func (s *requestService) ListByEmployee(ctx context.Context, employeeID string) ([]RequestResponse, error) {
	requests := s.repo.ListByEmployee(ctx, employeeID)
	result := make([]RequestResponse, 0, len(requests))
	for _, req := range requests {
		result = append(result, toRequestResponse(req))
	}
	return result, nil
}

func (s *requestService) Reset(ctx context.Context) {
	s.repo.Reset(ctx)
	publish(s.hub, EventStoreReset, nil)
}

// --- Helpers ---

func (s *requestService) newCore(t model.RequestType, name, employeeID, department, title string) model.RequestCore {
	return model.RequestCore{
		RequestType:   t,
		EmployeeName:  name,
		EmployeeID:    employeeID,
		Department:    department,
		Title:         title,
		Status:        model.StatusPendingManager,
		SubmittedDate: s.now().Format("2006-01-02"),
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return amount, nil
}

func validateDate(raw string) error {
	_, err := time.Parse("2006-01-02", raw)
	return err
}

func toRequestResponse(req model.FinancialRequest) RequestResponse {
	core := req.Core()
	resp := RequestResponse{
		RequestType:     string(req.Type()),
		ID:              core.ID,
		EmployeeName:    core.EmployeeName,
		EmployeeID:      core.EmployeeID,
		Department:      core.Department,
		Title:           core.Title,
		Status:          string(core.Status),
		SubmittedDate:   core.SubmittedDate,
		RejectionReason: core.RejectionReason,
	}

	switch r := req.(type) {
	case *model.ExpenseRequest:
		violated := r.PolicyViolated
		resp.Description = r.Description
		resp.Date = r.Date
		resp.Amount = r.Amount.StringFixed(2)
		resp.Category = string(r.Category)
		resp.ReceiptURL = r.ReceiptURL
		resp.PolicyViolated = &violated
	case *model.PurchaseRequest:
		resp.Supplier = r.Supplier
		resp.TotalAmount = r.TotalAmount.StringFixed(2)
		resp.CostCenter = r.CostCenter
		resp.Items = make([]PurchaseItemResponse, 0, len(r.Items))
		for _, item := range r.Items {
			resp.Items = append(resp.Items, PurchaseItemResponse{
				Name:     item.Name,
				Quantity: item.Quantity,
				Price:    item.Price.StringFixed(2),
				Subtotal: item.Subtotal().StringFixed(2),
			})
		}
	case *model.PaymentRequest:
		resp.Supplier = r.Supplier
		resp.InvoiceNumber = r.InvoiceNumber
		resp.DueDate = r.DueDate
		resp.Amount = r.Amount.StringFixed(2)
		resp.InvoiceURL = r.InvoiceURL
	}

	return resp
}
