package services

import (
	"fmt"
	"testing"

	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/models"
	"github.com/timbua/procurement-api/tests/testutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	testutil.MustSetTestEnvironment(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// An in-memory sqlite database exists per connection, so the pool must
	// stay at a single connection or goroutines see empty databases.
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

func createTestContractor(t *testing.T, db *gorm.DB) *models.Contractor {
	t.Helper()

	contractor := models.Contractor{
		Auth0ID:       "auth0|contractor123",
		CompanyName:   "BuildRight Ltd",
		Email:         "procurement@buildright.example",
		ContactPerson: "Jane Mwangi",
	}
	if err := db.Create(&contractor).Error; err != nil {
		t.Fatalf("Failed to create test contractor: %v", err)
	}
	return &contractor
}

func createTestSupplier(t *testing.T, db *gorm.DB, n int) *models.Supplier {
	t.Helper()

	supplier := models.Supplier{
		Auth0ID:                    fmt.Sprintf("auth0|supplier%d", n),
		CompanyName:                fmt.Sprintf("Supplier %d Ltd", n),
		BusinessRegistrationNumber: fmt.Sprintf("BRN-%04d", n),
		Email:                      fmt.Sprintf("sales%d@supplier.example", n),
	}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("Failed to create test supplier: %v", err)
	}
	return &supplier
}

func createTestRequest(t *testing.T, contractorID uint, supplierIDs ...uint) *models.QuotationRequest {
	t.Helper()

	request, err := CreateQuotationRequest(CreateQuotationRequestInput{
		ContractorID: contractorID,
		Material:     "Cement",
		Quantity:     100,
		Unit:         "BAGS",
		SupplierIDs:  supplierIDs,
	})
	if err != nil {
		t.Fatalf("Failed to create test quotation request: %v", err)
	}
	return request
}
