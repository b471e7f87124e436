package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/controllers"
	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/utils"
)

func setupTicketRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	ticketCtrl := controllers.NewTicketController(db)
	router.GET("/tickets", ticketCtrl.GetAllTickets)
	router.POST("/tickets", ticketCtrl.CreateTicket)
	router.GET("/tickets/:ticket_id", ticketCtrl.GetTicketByID)
	router.PUT("/tickets/:ticket_id", ticketCtrl.UpdateTicket)
	router.DELETE("/tickets/:ticket_id", ticketCtrl.DeleteTicket)
	router.POST("/tickets/:ticket_id/messages", ticketCtrl.AddTicketMessage)
	return router
}

func TestCreateTicket(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTicketRouter(db)
	customer := seedCustomer(t, db)

	w := doJSON(t, router, "POST", "/tickets", map[string]interface{}{
		"customerId": customer.ID,
		"subject":    "Portal login fails",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "open", data["status"])
	assert.Equal(t, "medium", data["priority"])
	assert.Contains(t, data["ticketNumber"], "TKT-")
}

func TestRatingRequiresResolvedTicket(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTicketRouter(db)
	customer := seedCustomer(t, db)

	ticket := models.SupportTicket{TicketNumber: "TKT-AAAA0001", CustomerID: customer.ID,
		Subject: "Slow dashboard", Priority: "high", Status: "open"}
	db.Create(&ticket)

	url := fmt.Sprintf("/tickets/%d", ticket.ID)

	// rating an open ticket is rejected
	w := doJSON(t, router, "PUT", url, map[string]interface{}{"rating": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// out-of-range rating never passes binding
	w = doJSON(t, router, "PUT", url, map[string]interface{}{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// resolve, then rate
	w = doJSON(t, router, "PUT", url, map[string]interface{}{"status": "resolved"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "PUT", url, map[string]interface{}{"rating": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	var saved models.SupportTicket
	db.First(&saved, ticket.ID)
	assert.NotNil(t, saved.Rating)
	assert.Equal(t, 4, *saved.Rating)

	// resolving and rating in the same request also works
	second := models.SupportTicket{TicketNumber: "TKT-BBBB0002", CustomerID: customer.ID,
		Subject: "Another issue", Priority: "low", Status: "in-progress"}
	db.Create(&second)
	w = doJSON(t, router, "PUT", fmt.Sprintf("/tickets/%d", second.ID), map[string]interface{}{
		"status": "closed", "rating": 3,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTicketListStatsAndPriorityFilter(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTicketRouter(db)
	customer := seedCustomer(t, db)

	rating := 4
	db.Create(&models.SupportTicket{TicketNumber: "TKT-CCCC0003", CustomerID: customer.ID,
		Subject: "Billing question", Priority: "low", Status: "open"})
	db.Create(&models.SupportTicket{TicketNumber: "TKT-DDDD0004", CustomerID: customer.ID,
		Subject: "Export broken", Priority: "high", Status: "resolved", Rating: &rating})

	w := doJSON(t, router, "GET", "/tickets", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	rows, stats := listData(t, w)
	assert.Len(t, rows, 2)
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(1), stats["open"])
	assert.Equal(t, float64(1), stats["resolved"])
	assert.Equal(t, float64(4), stats["avgRating"])

	w = doJSON(t, router, "GET", "/tickets?priority=high", nil)
	rows, _ = listData(t, w)
	assert.Len(t, rows, 1)

	w = doJSON(t, router, "GET", "/tickets?search=export", nil)
	rows, _ = listData(t, w)
	assert.Len(t, rows, 1)
}

func TestTicketMessages(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTicketRouter(db)
	customer := seedCustomer(t, db)

	ticket := models.SupportTicket{TicketNumber: "TKT-EEEE0005", CustomerID: customer.ID,
		Subject: "Need onboarding help", Priority: "medium", Status: "open"}
	db.Create(&ticket)

	w := doJSON(t, router, "POST", fmt.Sprintf("/tickets/%d/messages", ticket.ID), map[string]interface{}{
		"sender": "agent",
		"body":   "We are looking into it.",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// missing body is rejected
	w = doJSON(t, router, "POST", fmt.Sprintf("/tickets/%d/messages", ticket.ID), map[string]interface{}{
		"sender": "agent",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// messages ride along on the detail view
	w = doJSON(t, router, "GET", fmt.Sprintf("/tickets/%d", ticket.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	messages := data["messages"].([]interface{})
	assert.Len(t, messages, 1)
}
