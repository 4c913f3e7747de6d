package service

import (
	"context"
	"time"

	"finflow/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// ExtractedReceipt is what the extraction upstream claims to have read from a
// receipt. Treated as untrusted input: the amount can exceed any policy limit
// and callers must re-validate before acting on it.
type ExtractedReceipt struct {
	ExtractionID string `json:"extraction_id"`
	Amount       string `json:"amount"`
	Date         string `json:"date"`
	Category     string `json:"category"`
	Description  string `json:"description"`
}

// --- Interface ---

// ReceiptExtractor is the async boundary to the receipt-reading service.
// The stub implementation below stands in for a real vision/LLM client;
// swapping one in only means implementing this interface.
type ReceiptExtractor interface {
	Extract(ctx context.Context, filename string) (ExtractedReceipt, error)
}

type stubReceiptExtractor struct {
	delay time.Duration
}

// NewStubReceiptExtractor returns a canned extractor that simulates upstream
// latency. No retry: a cancelled or expired context is the failure path.
func NewStubReceiptExtractor(delay time.Duration) ReceiptExtractor {
	return &stubReceiptExtractor{delay: delay}
}

func (e *stubReceiptExtractor) Extract(ctx context.Context, filename string) (ExtractedReceipt, error) {
	timer := time.NewTimer(e.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ExtractedReceipt{}, ctx.Err()
	case <-timer.C:
	}

	return ExtractedReceipt{
		ExtractionID: uuid.NewString(),
		Amount:       decimal.RequireFromString("89.90").StringFixed(2),
		Date:         "2024-07-20",
		Category:     string(model.CategoryFood),
		Description:  `Business lunch with partners at "The Grand Bistro".`,
	}, nil
}
