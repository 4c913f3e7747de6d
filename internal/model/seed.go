package model

import "github.com/shopspring/decimal"

// SeedRequests builds the demo dataset the store starts from and returns to
// on reset. A fresh slice is built on every call so resets never hand out
// records that alias a previous session's mutations.
//
// Counts per type matter for id numbering: 5 expenses, 2 purchases, 1 payment.
func SeedRequests() []FinancialRequest {
	return []FinancialRequest{
		&ExpenseRequest{
			RequestCore: RequestCore{
				RequestType: RequestTypeExpense, ID: "REQ001",
				EmployeeName: "Alex Johnson", EmployeeID: "E-123", Department: "Technology",
				Title: "Client Lunch", Status: StatusPendingManager, SubmittedDate: "2024-07-16",
			},
			Description: "Lunch with a prospective client from Acme Corp.",
			Date:        "2024-07-15",
			Amount:      decimal.RequireFromString("125.50"),
			Category:    CategoryFood,
			ReceiptURL:  "https://picsum.photos/seed/receipt1/400/600",
		},
		&PurchaseRequest{
			RequestCore: RequestCore{
				RequestType: RequestTypePurchase, ID: "PC001",
				EmployeeName: "Maria Garcia", EmployeeID: "E-124", Department: "Sales",
				Title: "New Laptops for the Sales Team", Status: StatusPendingManager, SubmittedDate: "2024-07-18",
			},
			Supplier: "TechSupplier Inc.",
			Items: []PurchaseItem{
				{Name: "Laptop Pro X", Quantity: 2, Price: decimal.RequireFromString("4500")},
			},
			TotalAmount: decimal.RequireFromString("9000.00"),
			CostCenter:  "SALES-EQUIP",
		},
		&PaymentRequest{
			RequestCore: RequestCore{
				RequestType: RequestTypePayment, ID: "PAG001",
				EmployeeName: "David Chen", EmployeeID: "E-125", Department: "Marketing",
				Title: "Marketing Invoice Payment", Status: StatusPendingFinance, SubmittedDate: "2024-07-19",
			},
			Supplier:      "Creative Solutions LLC",
			InvoiceNumber: "CS-2024-589",
			DueDate:       "2024-08-01",
			Amount:        decimal.RequireFromString("2500.00"),
			InvoiceURL:    "https://picsum.photos/seed/invoice1/400/600",
		},
		&ExpenseRequest{
			RequestCore: RequestCore{
				RequestType: RequestTypeExpense, ID: "REQ002",
				EmployeeName: "Maria Garcia", EmployeeID: "E-124", Department: "Sales",
				Title: "Office Supplies Purchase", Status: StatusPendingManager, SubmittedDate: "2024-07-14",
			},
			Description:    "New keyboards and mice for the team.",
			Date:           "2024-07-12",
			Amount:         decimal.RequireFromString("650.00"),
			Category:       CategoryOfficeSupplies,
			ReceiptURL:     "https://picsum.photos/seed/receipt2/400/600",
			PolicyViolated: true,
		},
		&ExpenseRequest{
			RequestCore: RequestCore{
				RequestType: RequestTypeExpense, ID: "REQ003",
				EmployeeName: "David Chen", EmployeeID: "E-125", Department: "Marketing",
				Title: "Conference Trip", Status: StatusPendingFinance, SubmittedDate: "2024-07-11",
			},
			Description: "Travel expenses for the Annual Marketing Summit.",
			Date:        "2024-07-10",
			Amount:      decimal.RequireFromString("480.00"),
			Category:    CategoryTransport,
			ReceiptURL:  "https://picsum.photos/seed/receipt3/400/600",
		},
		&ExpenseRequest{
			RequestCore: RequestCore{
				RequestType: RequestTypeExpense, ID: "REQ004",
				EmployeeName: "Alex Johnson", EmployeeID: "E-123", Department: "Technology",
				Title: "Software Subscription", Status: StatusApproved, SubmittedDate: "2024-07-06",
			},
			Description: "Annual subscription for a code editor plugin.",
			Date:        "2024-07-05",
			Amount:      decimal.RequireFromString("49.99"),
			Category:    CategoryOther,
			ReceiptURL:  "https://picsum.photos/seed/receipt4/400/600",
		},
		&PurchaseRequest{
			RequestCore: RequestCore{
				RequestType: RequestTypePurchase, ID: "PC002",
				EmployeeName: "Alex Johnson", EmployeeID: "E-123", Department: "Technology",
				Title: "Monitors for Developers", Status: StatusApproved, SubmittedDate: "2024-07-10",
			},
			Supplier: "Display Excellence",
			Items: []PurchaseItem{
				{Name: "UltraWide 34\" Monitor", Quantity: 3, Price: decimal.RequireFromString("2200")},
			},
			TotalAmount: decimal.RequireFromString("6600.00"),
			CostCenter:  "TEC-DEVOPS",
		},
		&ExpenseRequest{
			RequestCore: RequestCore{
				RequestType: RequestTypeExpense, ID: "REQ005",
				EmployeeName: "Maria Garcia", EmployeeID: "E-124", Department: "Sales",
				Title: "Team Dinner", Status: StatusRejected, SubmittedDate: "2024-06-29",
				RejectionReason: "Entertainment expenses require pre-approval.",
			},
			Description: "Dinner celebrating the Q2 sales targets.",
			Date:        "2024-06-28",
			Amount:      decimal.RequireFromString("350.00"),
			Category:    CategoryFood,
			ReceiptURL:  "https://picsum.photos/seed/receipt5/400/600",
		},
	}
}
