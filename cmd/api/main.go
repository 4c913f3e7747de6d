package main

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "finflow/api/swagger" // swagger docs
	"finflow/internal/handler"
	"finflow/internal/middleware"
	"finflow/internal/model"
	"finflow/internal/repository"
	"finflow/internal/service"
	"finflow/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           FinFlow API
// @version         1.0
// @description     Financial request approval workflow: expense reimbursements, purchase orders and vendor payments.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	// Policy knobs. The submission-time advisory limit and the manager
	// approval threshold default to the same 500 but are separate settings.
	policyLimit := envDecimal("POLICY_LIMIT", "500")
	policy := service.Policy{
		ExpenseThreshold:  envDecimal("EXPENSE_APPROVAL_THRESHOLD", "500"),
		PurchaseThreshold: envDecimal("PURCHASE_APPROVAL_THRESHOLD", "5000"),
	}

	extractionDelay := envDurationMs("EXTRACTION_DELAY_MS", 1500)
	reportDelay := envDurationMs("REPORT_DELAY_MS", 2000)
	aiTimeout := envDurationMs("AI_TIMEOUT_MS", 10000)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	requestRepo := repository.NewRequestRepository(model.SeedRequests)
	requestService := service.NewRequestService(requestRepo, wsHub, policyLimit)
	approvalService := service.NewApprovalService(requestRepo, wsHub, policy)
	dashboardService := service.NewDashboardService(requestRepo)
	extractor := service.NewStubReceiptExtractor(extractionDelay)
	reports := service.NewStubReportGenerator(reportDelay)

	authService, err := service.NewAuthService(middleware.GetJWTSecret())
	if err != nil {
		log.Fatalf("Failed to seed demo accounts: %v", err)
	}

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	requestHandler := handler.NewRequestHandler(requestService)
	approvalHandler := handler.NewApprovalHandler(approvalService, requestService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	aiHandler := handler.NewAIHandler(extractor, reports, policyLimit, aiTimeout)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	requestHandler.RegisterRoutes(router.Group(""))
	approvalHandler.RegisterRoutes(router.Group(""))
	dashboardHandler.RegisterRoutes(router.Group(""))
	aiHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envDecimal(key, fallback string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, raw, err)
	}
	return value
}

func envDurationMs(key string, fallback int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Millisecond
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, raw, err)
	}
	return time.Duration(ms) * time.Millisecond
}
