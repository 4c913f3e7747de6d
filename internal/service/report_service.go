package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- DTOs ---

type GenerateReportRequest struct {
	Query string `json:"query" binding:"required"`
}

type ReportResponse struct {
	ReportID string `json:"report_id"`
	Query    string `json:"query"`
	Text     string `json:"text"`
}

// --- Interface ---

// ReportGenerator answers natural-language questions about the financial
// data. The stub picks a canned answer by keyword, the way the reference
// upstream behaves; a real client would implement the same interface.
type ReportGenerator interface {
	Generate(ctx context.Context, query string) (ReportResponse, error)
}

type stubReportGenerator struct {
	delay time.Duration
}

// NewStubReportGenerator returns a keyword-matching generator with simulated
// latency. Context cancellation is the only failure path, no retry.
func NewStubReportGenerator(delay time.Duration) ReportGenerator {
	return &stubReportGenerator{delay: delay}
}

func (g *stubReportGenerator) Generate(ctx context.Context, query string) (ReportResponse, error) {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ReportResponse{}, ctx.Err()
	case <-timer.C:
	}

	return ReportResponse{
		ReportID: uuid.NewString(),
		Query:    query,
		Text:     cannedReportText(query),
	}, nil
}

func cannedReportText(query string) string {
	q := strings.ToLower(query)

	if strings.Contains(q, "transport") {
		return "Based on the available data, total transport expenses over the last 6 months " +
			"amount to $480.00. This consists of a single significant expense for conference travel."
	}
	if strings.Contains(q, "cash flow") {
		return "Predictive analysis suggests a potential cash outflow of roughly $775.50 in pending " +
			"reimbursements over the next two weeks. Keeping a reserve for new submissions is advisable, " +
			"estimated at an additional $500."
	}

	return "I can provide insights on expenses, cash flow and spending patterns. " +
		"For example, try asking: 'Generate a report of all transport expenses' or " +
		"'Analyze the cash flow for the next month'."
}
