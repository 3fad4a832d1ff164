package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/hotel-reservation/controllers"
	"github.com/yeremiapane/hotel-reservation/models"
	"gorm.io/gorm"
)

func setupCustomerRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	ctrl := controllers.NewCustomerController(db)
	router.GET("/customers", ctrl.GetAllCustomers)
	router.GET("/customers/:id", ctrl.GetCustomerByID)
	router.POST("/customers", ctrl.CreateCustomer)
	router.PUT("/customers/:id", ctrl.UpdateCustomer)
	router.DELETE("/customers/:id", ctrl.DeleteCustomer)
	return router
}

func TestCustomerCRUD(t *testing.T) {
	db := setupTestDB(t)
	router := setupCustomerRouter(db)

	w, resp := doJSON(t, router, http.MethodPost, "/customers", map[string]interface{}{
		"full_name":    "Alice",
		"email":        "alice@example.com",
		"phone_number": "+62-811",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Status)
	assert.Equal(t, "Customer created", resp.Message)

	var created models.Customer
	decode(t, resp.Data, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Alice", created.FullName)
	assert.Zero(t, created.LoyaltyPoints)

	path := fmt.Sprintf("/customers/%d", created.ID)
	w, resp = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Customer
	decode(t, resp.Data, &fetched)
	assert.Equal(t, "alice@example.com", fetched.Email)

	w, resp = doJSON(t, router, http.MethodPut, path, map[string]interface{}{
		"full_name":      "Alice Smith",
		"email":          "alice.smith@example.com",
		"loyalty_points": 15,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Customer
	decode(t, resp.Data, &updated)
	assert.Equal(t, "Alice Smith", updated.FullName)
	assert.Equal(t, 15, updated.LoyaltyPoints)
	// Omitted fields are overwritten with their zero value.
	assert.Empty(t, updated.PhoneNumber)

	w, resp = doJSON(t, router, http.MethodGet, "/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Customer
	decode(t, resp.Data, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice Smith", list[0].FullName)

	w, _ = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w, resp = doJSON(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Status)
	assert.Equal(t, "Customer not found", resp.Message)
}

func TestCustomerErrors(t *testing.T) {
	db := setupTestDB(t)
	router := setupCustomerRouter(db)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   int
	}{
		{"create without full name", http.MethodPost, "/customers", map[string]interface{}{"email": "x@example.com"}, http.StatusBadRequest},
		{"create with malformed json", http.MethodPost, "/customers", `{"full_name":`, http.StatusBadRequest},
		{"get unknown", http.MethodGet, "/customers/99", nil, http.StatusNotFound},
		{"get non numeric id", http.MethodGet, "/customers/abc", nil, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/customers/99", map[string]interface{}{"full_name": "Bob"}, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/customers/99", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.False(t, resp.Status)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
