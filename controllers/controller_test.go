package controllers

import (
	"fmt"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/middleware"
	"github.com/timbua/procurement-api/models"
	"github.com/timbua/procurement-api/tests/testutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupControllerTestDB(t *testing.T) *gorm.DB {
	testutil.MustSetTestEnvironment(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// An in-memory sqlite database exists per connection, so the pool must
	// stay at a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Contractor{},
		&models.Supplier{},
		&models.QuotationRequest{},
		&models.Quote{},
		&models.Order{},
		&models.OrderItem{},
		&models.Document{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware simulates the Auth0 JWT middleware for testing.
// It sets up the context exactly as the real EnsureValidToken middleware does.
func mockAuthMiddleware(authID, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("auth_id", authID)

		mockClaims := &validator.ValidatedClaims{
			CustomClaims: &middleware.CustomClaims{Scope: scope},
			RegisteredClaims: validator.RegisteredClaims{
				Subject: authID,
			},
		}
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

func seedContractor(t *testing.T, db *gorm.DB) *models.Contractor {
	t.Helper()

	contractor := models.Contractor{
		Auth0ID:       "auth0|contractor123",
		CompanyName:   "BuildRight Ltd",
		Email:         "procurement@buildright.example",
		ContactPerson: "Jane Mwangi",
	}
	if err := db.Create(&contractor).Error; err != nil {
		t.Fatalf("Failed to seed contractor: %v", err)
	}
	return &contractor
}

func seedSupplier(t *testing.T, db *gorm.DB, n int) *models.Supplier {
	t.Helper()

	supplier := models.Supplier{
		Auth0ID:                    fmt.Sprintf("auth0|supplier%d", n),
		CompanyName:                fmt.Sprintf("Supplier %d Ltd", n),
		BusinessRegistrationNumber: fmt.Sprintf("BRN-%04d", n),
		Email:                      fmt.Sprintf("sales%d@supplier.example", n),
	}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("Failed to seed supplier: %v", err)
	}
	return &supplier
}
