package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/controllers"
	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Worksheet{},
		&models.Invoice{}, &models.InvoiceItem{},
		&models.Order{}, &models.OrderItem{},
		&models.SupportTicket{}, &models.TicketMessage{},
	)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func setupCustomerRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	customerCtrl := controllers.NewCustomerController(db)
	router.GET("/customers", customerCtrl.GetAllCustomers)
	router.POST("/customers", customerCtrl.CreateCustomer)
	router.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	router.PUT("/customers/:customer_id", customerCtrl.UpdateCustomer)
	router.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(payloadBytes)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func listData(t *testing.T, w *httptest.ResponseRecorder) ([]interface{}, map[string]interface{}) {
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)

	payload, ok := resp["data"].(map[string]interface{})
	assert.True(t, ok, "list payload missing")

	rows, _ := payload["data"].([]interface{})
	stats, _ := payload["stats"].(map[string]interface{})
	return rows, stats
}

func TestCreateAndGetCustomer(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupCustomerRouter(db)

	w := doJSON(t, router, "POST", "/customers", map[string]interface{}{
		"name":    "Sarah Chen",
		"email":   "sarah@acmecorp.com",
		"company": "Acme Corp",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.Equal(t, "Customer created", createResp["message"])
	data := createResp["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, float64(0), data["totalOrders"])

	id := int(data["id"].(float64))
	w = doJSON(t, router, "GET", fmt.Sprintf("/customers/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCustomerValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupCustomerRouter(db)

	// missing email
	w := doJSON(t, router, "POST", "/customers", map[string]interface{}{
		"name": "No Email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bad status value
	w = doJSON(t, router, "POST", "/customers", map[string]interface{}{
		"name":   "Bad Status",
		"email":  "bad@status.com",
		"status": "archived",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerListFilters(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupCustomerRouter(db)

	db.Create(&models.Customer{Name: "Acme Corp", Email: "info@acme.com", Status: "active"})
	db.Create(&models.Customer{Name: "Globex", Email: "info@globex.com", Status: "inactive"})

	// no filters -> everything
	w := doJSON(t, router, "GET", "/customers", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	rows, _ := listData(t, w)
	assert.Len(t, rows, 2)

	// search is case-insensitive substring
	w = doJSON(t, router, "GET", "/customers?search=acme", nil)
	rows, _ = listData(t, w)
	assert.Len(t, rows, 1)

	// status equality
	w = doJSON(t, router, "GET", "/customers?status=inactive", nil)
	rows, _ = listData(t, w)
	assert.Len(t, rows, 1)

	// search + status together
	w = doJSON(t, router, "GET", "/customers?search=acme&status=inactive", nil)
	rows, _ = listData(t, w)
	assert.Len(t, rows, 0)
}

func TestUpdateAndDeleteCustomer(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupCustomerRouter(db)

	customer := models.Customer{Name: "Acme", Email: "acme@x.com", Status: "active"}
	db.Create(&customer)

	w := doJSON(t, router, "PUT", fmt.Sprintf("/customers/%d", customer.ID), map[string]interface{}{
		"status": "inactive",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Customer
	db.First(&updated, customer.ID)
	assert.Equal(t, "inactive", updated.Status)
	assert.Equal(t, "Acme", updated.Name, "omitted fields keep their value")

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/customers/%d", customer.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
