package model

import (
	"github.com/shopspring/decimal"
)

// RequestType enum constants
type RequestType string

const (
	RequestTypeExpense  RequestType = "expense"
	RequestTypePurchase RequestType = "purchase"
	RequestTypePayment  RequestType = "payment"
)

// IDPrefix returns the id prefix used when numbering requests of this type.
func (t RequestType) IDPrefix() string {
	switch t {
	case RequestTypeExpense:
		return "REQ"
	case RequestTypePurchase:
		return "PC"
	case RequestTypePayment:
		return "PAG"
	}
	return ""
}

// Status values are shared across request types on purpose: the dashboards
// group by the literal label, so e.g. an approved expense and an approved
// purchase land in the same bucket. Per-type validity is enforced by the
// approval transition rules, not by the type system.
type Status string

const (
	StatusPendingManager Status = "PENDING_MANAGER"
	StatusPendingFinance Status = "PENDING_FINANCE"
	StatusApproved       Status = "APPROVED"
	StatusRejected       Status = "REJECTED"

	// Declared terminal states that no transition currently produces.
	StatusOrdered Status = "ORDERED" // purchase only
	StatusPaid    Status = "PAID"    // payment only
)

// Pending reports whether the status still awaits a decision.
func (s Status) Pending() bool {
	return s == StatusPendingManager || s == StatusPendingFinance
}

// Role enum constants for the three workflow actors
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleFinance  Role = "FINANCE"
)

// ExpenseCategory enum constants
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "FOOD"
	CategoryTransport      ExpenseCategory = "TRANSPORT"
	CategoryLodging        ExpenseCategory = "LODGING"
	CategoryOfficeSupplies ExpenseCategory = "OFFICE_SUPPLIES"
	CategoryOther          ExpenseCategory = "OTHER"
)

// ExpenseCategories lists every category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood,
	CategoryTransport,
	CategoryLodging,
	CategoryOfficeSupplies,
	CategoryOther,
}

// RequestCore holds the fields common to every financial request.
type RequestCore struct {
	RequestType     RequestType `json:"request_type"`
	ID              string      `json:"id"`
	EmployeeName    string      `json:"employee_name"`
	EmployeeID      string      `json:"employee_id"`
	Department      string      `json:"department"`
	Title           string      `json:"title"`
	Status          Status      `json:"status"`
	SubmittedDate   string      `json:"submitted_date"` // YYYY-MM-DD
	RejectionReason string      `json:"rejection_reason,omitempty"`
}

// FinancialRequest is the tagged union over the three request variants.
// Aggregation and transition code type-switches on the concrete type so the
// compiler flags any variant a switch forgets to handle.
type FinancialRequest interface {
	Core() *RequestCore
	Type() RequestType
	// Value is the money amount a decision is judged against: totalAmount
	// for purchases, amount for everything else.
	Value() decimal.Decimal
	// Clone returns a deep copy so store snapshots never alias live records.
	Clone() FinancialRequest
}

// ExpenseRequest is a reimbursement claim for money an employee already spent.
type ExpenseRequest struct {
	RequestCore
	Description    string          `json:"description"`
	Date           string          `json:"date"` // date of the expense itself
	Amount         decimal.Decimal `json:"amount"`
	Category       ExpenseCategory `json:"category"`
	ReceiptURL     string          `json:"receipt_url,omitempty"`
	PolicyViolated bool            `json:"policy_violated"`
}

func (r *ExpenseRequest) Core() *RequestCore     { return &r.RequestCore }
func (r *ExpenseRequest) Type() RequestType      { return RequestTypeExpense }
func (r *ExpenseRequest) Value() decimal.Decimal { return r.Amount }

func (r *ExpenseRequest) Clone() FinancialRequest {
	c := *r
	return &c
}

// PurchaseItem is a single line of a purchase order.
type PurchaseItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Subtotal returns quantity × unit price.
func (i PurchaseItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PurchaseRequest asks for goods to be bought from a supplier.
// TotalAmount is always recomputed from the items, never taken from input.
type PurchaseRequest struct {
	RequestCore
	Supplier    string          `json:"supplier"`
	Items       []PurchaseItem  `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CostCenter  string          `json:"cost_center"`
}

func (r *PurchaseRequest) Core() *RequestCore     { return &r.RequestCore }
func (r *PurchaseRequest) Type() RequestType      { return RequestTypePurchase }
func (r *PurchaseRequest) Value() decimal.Decimal { return r.TotalAmount }

func (r *PurchaseRequest) Clone() FinancialRequest {
	c := *r
	c.Items = make([]PurchaseItem, len(r.Items))
	copy(c.Items, r.Items)
	return &c
}

// PaymentRequest settles a supplier invoice.
type PaymentRequest struct {
	RequestCore
	Supplier      string          `json:"supplier"`
	InvoiceNumber string          `json:"invoice_number"`
	DueDate       string          `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	InvoiceURL    string          `json:"invoice_url,omitempty"`
}

func (r *PaymentRequest) Core() *RequestCore     { return &r.RequestCore }
func (r *PaymentRequest) Type() RequestType      { return RequestTypePayment }
func (r *PaymentRequest) Value() decimal.Decimal { return r.Amount }

func (r *PaymentRequest) Clone() FinancialRequest {
	c := *r
	return &c
}
