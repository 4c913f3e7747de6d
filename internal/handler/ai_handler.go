package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"finflow/internal/middleware"
	"finflow/internal/model"
	"finflow/internal/service"
	"finflow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// extractReceiptResponse pairs the upstream extraction with the submission
// advisory: the extracted amount is untrusted and may exceed the policy limit.
type extractReceiptResponse struct {
	service.ExtractedReceipt
	PolicyViolated bool `json:"policy_violated"`
}

type AIHandler struct {
	extractor   service.ReceiptExtractor
	reports     service.ReportGenerator
	policyLimit decimal.Decimal
	timeout     time.Duration
}

func NewAIHandler(extractor service.ReceiptExtractor, reports service.ReportGenerator, policyLimit decimal.Decimal, timeout time.Duration) *AIHandler {
	return &AIHandler{
		extractor:   extractor,
		reports:     reports,
		policyLimit: policyLimit,
		timeout:     timeout,
	}
}

func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/api/ai")
	{
		ai.POST("/extract-receipt", middleware.RequireRole(string(model.RoleEmployee)), h.ExtractReceipt)
		ai.POST("/report", middleware.RequireRole(string(model.RoleFinance)), h.GenerateReport)
	}
}

// ExtractReceipt runs the receipt extraction upstream on an uploaded file
// @Summary      Extract receipt data
// @Description  Sends the uploaded receipt to the extraction service and returns the fields it read, flagging amounts above the policy limit
// @Tags         ai
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        receipt  formData  file  true  "Receipt image or PDF"
// @Success      200      {object}  response.Response{data=handler.extractReceiptResponse}
// @Failure      400      {object}  response.Response
// @Failure      504      {object}  response.Response
// @Router       /api/ai/extract-receipt [post]
func (h *AIHandler) ExtractReceipt(c *gin.Context) {
	file, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "receipt file is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	extracted, err := h.extractor.Extract(ctx, file.Filename)
	if err != nil {
		c.JSON(upstreamErrorStatus(err), response.Error(upstreamErrorStatus(err), "receipt extraction failed: "+err.Error()))
		return
	}

	violated := false
	if amount, parseErr := decimal.NewFromString(extracted.Amount); parseErr == nil {
		violated = amount.GreaterThan(h.policyLimit)
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, extractReceiptResponse{
		ExtractedReceipt: extracted,
		PolicyViolated:   violated,
	}))
}

// GenerateReport answers a natural-language query about the financial data
// @Summary      Generate a financial report
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.GenerateReportRequest  true  "Report Query"
// @Success      200      {object}  response.Response{data=service.ReportResponse}
// @Failure      400      {object}  response.Response
// @Failure      504      {object}  response.Response
// @Router       /api/ai/report [post]
func (h *AIHandler) GenerateReport(c *gin.Context) {
	var req service.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	report, err := h.reports.Generate(ctx, req.Query)
	if err != nil {
		c.JSON(upstreamErrorStatus(err), response.Error(upstreamErrorStatus(err), "report generation failed: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// upstreamErrorStatus maps simulated-upstream failures onto HTTP codes.
func upstreamErrorStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
