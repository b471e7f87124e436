package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/services"
	"github.com/dealstack/crm-backend/utils"
)

type OrderController struct {
	DB    *gorm.DB
	Stats *services.StatsService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Stats: services.NewStatsService(db)}
}

// GetAllOrders -> list orders plus the order stat block
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	ctx := c.Request.Context()
	filter := models.ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}

	var orders []models.Order
	if err := oc.DB.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("AssignedTo").
		Scopes(filter.Scope("order_number")).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats, err := oc.Stats.OrderStats(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondList(c, http.StatusOK, "List of orders", orders, stats)
}

// CreateOrder -> total is the plain item sum; orders carry no tax or
// discount
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		Name     string          `json:"name" binding:"required"`
		Quantity int             `json:"quantity" binding:"required"`
		Price    decimal.Decimal `json:"price"`
	}
	type reqBody struct {
		CustomerID   uint       `json:"customerId" binding:"required"`
		Type         string     `json:"type" binding:"omitempty,oneof=product service"`
		AssignedToID *uint      `json:"assignedToId"`
		DeliveryDate *time.Time `json:"deliveryDate"`
		Items        []itemReq  `json:"items" binding:"required,min=1"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := oc.DB.First(&customer, req.CustomerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	lines := make([]services.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.LineItemInput{
			Description: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
		})
	}

	breakdown, err := services.OrderTotals(lines)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Type == "" {
		req.Type = "product"
	}

	order := models.Order{
		OrderNumber:  utils.NewRefNumber("ORD"),
		CustomerID:   customer.ID,
		Type:         req.Type,
		AssignedToID: req.AssignedToID,
		Status:       "pending",
		OrderDate:    time.Now(),
		DeliveryDate: req.DeliveryDate,
		Total:        breakdown.Total,
	}

	tx := oc.DB.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, item := range req.Items {
		orderItem := models.OrderItem{
			OrderID:   order.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Amount:    services.LineAmount(item.Quantity, item.Price),
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	customer.TotalOrders++
	if err := tx.Save(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	oc.DB.Preload("Customer").Preload("Items").First(&order, order.ID)

	utils.InfoLogger.Printf("Order %s placed for customer %d, total %s",
		order.OrderNumber, order.CustomerID, utils.FormatUSD(order.Total))

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Customer").Preload("Items").Preload("AssignedTo").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> status/assignment/delivery edits
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Status       *string    `json:"status" binding:"omitempty,oneof=pending processing shipped completed cancelled"`
		AssignedToID *uint      `json:"assignedToId"`
		DeliveryDate *time.Time `json:"deliveryDate"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.AssignedToID != nil {
		order.AssignedToID = req.AssignedToID
	}
	if req.DeliveryDate != nil {
		order.DeliveryDate = req.DeliveryDate
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder -> hard delete, items cascade
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	tx := oc.DB.Begin()
	if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&models.Order{}, id).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
