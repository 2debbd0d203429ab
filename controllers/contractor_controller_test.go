package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timbua/procurement-api/models"
)

func TestCreateContractor(t *testing.T) {
	db := setupControllerTestDB(t)

	existing := seedContractor(t, db)

	tests := []struct {
		name           string
		authID         string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:   "successful registration",
			authID: "auth0|newcontractor",
			requestBody: map[string]interface{}{
				"company_name":   "New Builders Ltd",
				"email":          "info@newbuilders.example",
				"contact_person": "Peter Kamau",
				"specialization": "Commercial",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "duplicate profile for the same identity",
			authID: existing.Auth0ID,
			requestBody: map[string]interface{}{
				"company_name":   "Again Ltd",
				"email":          "again@example.com",
				"contact_person": "Jane Mwangi",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "PROFILE_EXISTS",
		},
		{
			name:   "missing company name",
			authID: "auth0|another",
			requestBody: map[string]interface{}{
				"email":          "x@example.com",
				"contact_person": "Someone",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:   "invalid email",
			authID: "auth0|another",
			requestBody: map[string]interface{}{
				"company_name":   "X Ltd",
				"email":          "not-an-email",
				"contact_person": "Someone",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/contractors", mockAuthMiddleware(tt.authID, ""), CreateContractor)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/contractors", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			data := response["data"].(map[string]interface{})
			assert.Equal(t, tt.authID, data["auth0_id"])
			assert.Equal(t, string(models.VerificationPending), data["status"])
			assert.Equal(t, false, data["is_verified"])
		})
	}
}

func TestCreateContractor_RegistrationNumberOptional(t *testing.T) {
	db := setupControllerTestDB(t)
	seedContractor(t, db)

	// The seeded contractor has no registration number either; a second
	// profile without one must still register.
	router := setupTestRouter()
	router.POST("/contractors", mockAuthMiddleware("auth0|nobrn", ""), CreateContractor)

	body, _ := json.Marshal(map[string]interface{}{
		"company_name":   "NoPaper Ltd",
		"email":          "info@nopaper.example",
		"contact_person": "Asha Njoroge",
	})
	req, _ := http.NewRequest(http.MethodPost, "/contractors", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Contractor{}).
		Where("business_registration_number = ?", "").
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestVerifyContractor(t *testing.T) {
	db := setupControllerTestDB(t)
	contractor := seedContractor(t, db)

	router := setupTestRouter()
	router.PUT("/contractors/:id/verify",
		mockAuthMiddleware("auth0|admin", "verify:parties"),
		VerifyContractor,
	)

	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/contractors/%d/verify", contractor.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Contractor
	require.NoError(t, db.First(&updated, contractor.ID).Error)
	assert.Equal(t, models.VerificationVerified, updated.Status)
	assert.True(t, updated.IsVerified)
	assert.NotNil(t, updated.VerificationDate)

	req, _ = http.NewRequest(http.MethodPut, "/contractors/9999/verify", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetContractors(t *testing.T) {
	db := setupControllerTestDB(t)
	contractor := seedContractor(t, db)

	router := setupTestRouter()
	router.GET("/contractors", GetAllContractors)
	router.GET("/contractors/:id", GetContractorByID)

	req, _ := http.NewRequest(http.MethodGet, "/contractors", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response["data"].([]interface{}), 1)

	req, _ = http.NewRequest(http.MethodGet, fmt.Sprintf("/contractors/%d", contractor.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, contractor.CompanyName, data["company_name"])

	req, _ = http.NewRequest(http.MethodGet, "/contractors/9999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
