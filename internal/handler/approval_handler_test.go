package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finflow/internal/middleware"
	"finflow/internal/model"
	"finflow/internal/repository"
	"finflow/internal/service"
	"finflow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewRequestRepository(model.SeedRequests)
	requestService := service.NewRequestService(repo, nil, decimal.NewFromInt(500))
	approvalService := service.NewApprovalService(repo, nil, service.DefaultPolicy())

	router := gin.New()
	NewRequestHandler(requestService).RegisterRoutes(router.Group(""))
	NewApprovalHandler(approvalService, requestService).RegisterRoutes(router.Group(""))
	return router
}

func tokenFor(t *testing.T, role model.Role, employeeID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  employeeID,
		"name": "Test User",
		"dept": "Technology",
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(middleware.GetJWTSecret())
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) service.RequestResponse {
	t.Helper()
	var envelope struct {
		Status string                  `json:"status"`
		Data   service.RequestResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestApproveEndpoint(t *testing.T) {
	router := newTestRouter(t)
	manager := tokenFor(t, model.RoleManager, "M-456")

	w := doJSON(t, router, http.MethodPut, "/api/requests/REQ001/approve", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "APPROVED", decodeData(t, w).Status)

	// A second decision on the same request conflicts.
	w = doJSON(t, router, http.MethodPut, "/api/requests/REQ001/approve", manager, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApproveEscalatesLargeExpense(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/requests/REQ002/approve", tokenFor(t, model.RoleManager, "M-456"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PENDING_FINANCE", decodeData(t, w).Status)

	w = doJSON(t, router, http.MethodPut, "/api/requests/REQ002/approve", tokenFor(t, model.RoleFinance, "F-789"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "APPROVED", decodeData(t, w).Status)
}

func TestRejectEndpoint(t *testing.T) {
	router := newTestRouter(t)
	manager := tokenFor(t, model.RoleManager, "M-456")

	w := doJSON(t, router, http.MethodPut, "/api/requests/REQ001/reject", manager, gin.H{"reason": "No receipt."})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "REJECTED", data.Status)
	assert.Equal(t, "No receipt.", data.RejectionReason)
}

func TestRejectRequiresReasonEndpoint(t *testing.T) {
	router := newTestRouter(t)
	manager := tokenFor(t, model.RoleManager, "M-456")

	w := doJSON(t, router, http.MethodPut, "/api/requests/REQ001/reject", manager, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/requests/REQ001/reject", manager, gin.H{"reason": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecisionOnUnknownRequestEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/requests/REQ999/approve", tokenFor(t, model.RoleFinance, "F-789"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDecisionRoleEnforcement(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/requests/REQ001/approve", tokenFor(t, model.RoleEmployee, "E-123"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/requests/REQ001/approve", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitExpenseEndpoint(t *testing.T) {
	router := newTestRouter(t)
	employee := tokenFor(t, model.RoleEmployee, "E-123")

	w := doJSON(t, router, http.MethodPost, "/api/requests/expenses", employee, gin.H{
		"employee_name": "Alex Johnson",
		"employee_id":   "E-123",
		"department":    "Technology",
		"title":         "Taxi",
		"description":   "Ride to the client office.",
		"date":          "2024-07-18",
		"amount":        "42.00",
		"category":      "TRANSPORT",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "REQ006", data.ID)
	assert.Equal(t, "PENDING_MANAGER", data.Status)

	// Unknown category fails request binding.
	w = doJSON(t, router, http.MethodPost, "/api/requests/expenses", employee, gin.H{
		"employee_name": "Alex Johnson",
		"employee_id":   "E-123",
		"department":    "Technology",
		"title":         "Taxi",
		"description":   "Ride to the client office.",
		"date":          "2024-07-18",
		"amount":        "42.00",
		"category":      "GADGETS",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRequestsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/requests?type=expense&limit=3", tokenFor(t, model.RoleFinance, "F-789"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.EqualValues(t, 5, envelope.Total)
	assert.Equal(t, 3, envelope.Limit)

	// Employees cannot read the full list.
	w = doJSON(t, router, http.MethodGet, "/api/requests", tokenFor(t, model.RoleEmployee, "E-123"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListMyRequestsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/my-requests", tokenFor(t, model.RoleEmployee, "E-123"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []service.RequestResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 3)
	for _, r := range envelope.Data {
		assert.Equal(t, "E-123", r.EmployeeID)
	}
}

func TestResetEndpoint(t *testing.T) {
	router := newTestRouter(t)
	finance := tokenFor(t, model.RoleFinance, "F-789")

	w := doJSON(t, router, http.MethodPut, "/api/requests/PAG001/approve", finance, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/admin/reset", finance, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/requests/PAG001", finance, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PENDING_FINANCE", decodeData(t, w).Status)
}
