package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timbua/procurement-api/models"
	"github.com/timbua/procurement-api/services"
)

func setupRequestRouter() *gin.Engine {
	router := setupTestRouter()
	requests := router.Group("/quotation-requests")
	{
		requests.POST("", CreateQuotationRequest)
		requests.GET("", GetAllQuotationRequests)
		requests.GET("/contractor/:contractorId", GetQuotationRequestsByContractor)
		requests.GET("/supplier/:supplierId", GetQuotationRequestsForSupplier)
		requests.GET("/:id", GetQuotationRequestByID)
		requests.PUT("/:id/cancel", CancelQuotationRequest)
		requests.POST("/:id/suppliers", AddSuppliersToQuotationRequest)
		requests.DELETE("/:id/suppliers/:supplierId", RemoveSupplierFromQuotationRequest)
	}
	return router
}

func TestCreateQuotationRequestEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	contractor := seedContractor(t, db)
	supplier := seedSupplier(t, db, 1)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "valid request",
			requestBody: map[string]interface{}{
				"contractor_id": contractor.ID,
				"material":      "Cement",
				"quantity":      100,
				"unit":          "BAGS",
				"supplier_ids":  []uint{supplier.ID},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing material",
			requestBody: map[string]interface{}{
				"contractor_id": contractor.ID,
				"quantity":      100,
				"supplier_ids":  []uint{supplier.ID},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "zero quantity",
			requestBody: map[string]interface{}{
				"contractor_id": contractor.ID,
				"material":      "Cement",
				"quantity":      0,
				"supplier_ids":  []uint{supplier.ID},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "empty supplier list",
			requestBody: map[string]interface{}{
				"contractor_id": contractor.ID,
				"material":      "Cement",
				"quantity":      100,
				"supplier_ids":  []uint{},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "unknown contractor",
			requestBody: map[string]interface{}{
				"contractor_id": 9999,
				"material":      "Cement",
				"quantity":      100,
				"supplier_ids":  []uint{supplier.ID},
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRequestRouter()

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/quotation-requests", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			assert.True(t, response["success"].(bool))
			data := response["data"].(map[string]interface{})
			assert.Equal(t, string(models.RequestPending), data["status"])
			assert.Equal(t, "Cement", data["material"])
			assert.Len(t, data["invited_suppliers"].([]interface{}), 1)
		})
	}
}

func TestCancelQuotationRequestEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	contractor := seedContractor(t, db)
	supplier := seedSupplier(t, db, 1)

	request, err := services.CreateQuotationRequest(services.CreateQuotationRequestInput{
		ContractorID: contractor.ID,
		Material:     "Cement",
		Quantity:     100,
		SupplierIDs:  []uint{supplier.ID},
	})
	require.NoError(t, err)

	router := setupRequestRouter()

	// Cancelling with a reason body.
	body, _ := json.Marshal(map[string]interface{}{"reason": "project postponed"})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/quotation-requests/%d/cancel", request.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, string(models.RequestCancelled), data["status"])

	// Cancelling again conflicts.
	req, _ = http.NewRequest(http.MethodPut, fmt.Sprintf("/quotation-requests/%d/cancel", request.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_TRANSITION", errorData["code"])

	// An empty body is accepted; the reason is optional.
	second, err := services.CreateQuotationRequest(services.CreateQuotationRequestInput{
		ContractorID: contractor.ID,
		Material:     "Sand",
		Quantity:     10,
		SupplierIDs:  []uint{supplier.ID},
	})
	require.NoError(t, err)

	req, _ = http.NewRequest(http.MethodPut, fmt.Sprintf("/quotation-requests/%d/cancel", second.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuotationRequestSupplierEndpoints(t *testing.T) {
	db := setupControllerTestDB(t)
	contractor := seedContractor(t, db)
	original := seedSupplier(t, db, 1)
	added := seedSupplier(t, db, 2)

	request, err := services.CreateQuotationRequest(services.CreateQuotationRequestInput{
		ContractorID: contractor.ID,
		Material:     "Cement",
		Quantity:     100,
		SupplierIDs:  []uint{original.ID},
	})
	require.NoError(t, err)

	router := setupRequestRouter()

	body, _ := json.Marshal(map[string]interface{}{"supplier_ids": []uint{added.ID}})
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/quotation-requests/%d/suppliers", request.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Len(t, data["invited_suppliers"].([]interface{}), 2)

	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("/quotation-requests/%d/suppliers/%d", request.ID, original.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data = response["data"].(map[string]interface{})
	require.Len(t, data["invited_suppliers"].([]interface{}), 1)
}

func TestGetQuotationRequestEndpoints(t *testing.T) {
	db := setupControllerTestDB(t)
	contractor := seedContractor(t, db)
	supplier := seedSupplier(t, db, 1)

	request, err := services.CreateQuotationRequest(services.CreateQuotationRequestInput{
		ContractorID: contractor.ID,
		Material:     "Cement",
		Quantity:     100,
		SupplierIDs:  []uint{supplier.ID},
	})
	require.NoError(t, err)

	router := setupRequestRouter()

	paths := []string{
		"/quotation-requests",
		fmt.Sprintf("/quotation-requests/contractor/%d", contractor.ID),
		fmt.Sprintf("/quotation-requests/supplier/%d", supplier.ID),
	}
	for _, path := range paths {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response["data"].([]interface{}), 1)
	}

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/quotation-requests/%d", request.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	contractorData := data["contractor"].(map[string]interface{})
	assert.Equal(t, contractor.CompanyName, contractorData["company_name"])

	req, _ = http.NewRequest(http.MethodGet, "/quotation-requests/9999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
