package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/controllers"
	"github.com/timbua/procurement-api/middleware"
	"github.com/timbua/procurement-api/models"
	"github.com/timbua/procurement-api/services"
)

func main() {
	log.Println("Starting Timbua Procurement API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Contractor{},
		&models.Supplier{},
		&models.QuotationRequest{},
		&models.Quote{},
		&models.Order{},
		&models.OrderItem{},
		&models.Document{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize document storage
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitDocumentService(s3Service)

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the gin engine with CORS, auth and all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authRequired := middleware.EnsureValidToken(cfg)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Party registration and profiles
		contractors := v1.Group("/contractors")
		{
			contractors.POST("", authRequired, controllers.CreateContractor)
			contractors.GET("", controllers.GetAllContractors)
			contractors.GET("/:id", controllers.GetContractorByID)
			contractors.PUT("/:id/verify", authRequired, middleware.RequireScope("verify:parties"), controllers.VerifyContractor)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.POST("", authRequired, controllers.CreateSupplier)
			suppliers.GET("", controllers.GetAllSuppliers)
			suppliers.GET("/:id", controllers.GetSupplierByID)
			suppliers.PUT("/:id/verify", authRequired, middleware.RequireScope("verify:parties"), controllers.VerifySupplier)
		}

		// Quotation workflow
		requests := v1.Group("/quotation-requests")
		{
			requests.POST("", authRequired, controllers.CreateQuotationRequest)
			requests.GET("", controllers.GetAllQuotationRequests)
			requests.GET("/contractor/:contractorId", controllers.GetQuotationRequestsByContractor)
			requests.GET("/supplier/:supplierId", controllers.GetQuotationRequestsForSupplier)
			requests.GET("/:id", controllers.GetQuotationRequestByID)
			requests.PUT("/:id/cancel", authRequired, controllers.CancelQuotationRequest)
			requests.POST("/:id/suppliers", authRequired, controllers.AddSuppliersToQuotationRequest)
			requests.DELETE("/:id/suppliers/:supplierId", authRequired, controllers.RemoveSupplierFromQuotationRequest)
		}

		quotes := v1.Group("/quotes")
		{
			quotes.POST("/request/:requestId/supplier/:supplierId", authRequired, controllers.SubmitQuote)
			quotes.GET("/request/:requestId", controllers.GetQuotesByRequest)
			quotes.GET("/supplier/:supplierId", controllers.GetQuotesBySupplier)
			quotes.GET("/:id", controllers.GetQuoteByID)
			quotes.PUT("/:id/accept", authRequired, controllers.AcceptQuote)
			quotes.PUT("/:id/reject", authRequired, controllers.RejectQuote)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", authRequired, controllers.CreateOrder)
			orders.POST("/from-quote/:quoteId", authRequired, controllers.CreateOrderFromQuote)
			orders.GET("", controllers.GetAllOrders)
			orders.GET("/supplier/:supplierId", controllers.GetOrdersBySupplier)
			orders.GET("/contractor/:contractorId", controllers.GetOrdersByContractor)
			orders.GET("/site/:siteId", controllers.GetOrdersBySite)
			orders.GET("/pending-payments", controllers.GetPendingPayments)
			orders.GET("/:id", controllers.GetOrderByID)
			orders.PUT("/:id", authRequired, controllers.UpdateOrder)
			orders.PUT("/:id/status", authRequired, controllers.UpdateOrderStatus)
			orders.PUT("/:id/confirm-payment", authRequired, controllers.ConfirmPayment)
			orders.PUT("/:id/cancel", authRequired, controllers.CancelOrder)
			orders.POST("/:id/items", authRequired, controllers.AddOrderItem)
			orders.DELETE("/:id/items/:itemId", authRequired, controllers.RemoveOrderItem)
		}

		// Verification documents
		documents := v1.Group("/documents")
		{
			documents.POST("", authRequired, controllers.UploadDocument)
			documents.GET("/owner/:ownerType/:ownerId", controllers.GetDocumentsByOwner)
			documents.DELETE("/:id", authRequired, controllers.DeleteDocument)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Timbua Procurement API is running",
	})
}
