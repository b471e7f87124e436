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

type InvoiceController struct {
	DB    *gorm.DB
	Stats *services.StatsService
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db, Stats: services.NewStatsService(db)}
}

// GetAllInvoices -> list invoices plus the revenue stat block
func (ic *InvoiceController) GetAllInvoices(c *gin.Context) {
	ctx := c.Request.Context()
	filter := models.ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	var invoices []models.Invoice
	if err := ic.DB.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Scopes(filter.Scope("invoice_number")).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats, err := ic.Stats.InvoiceStats(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondList(c, http.StatusOK, "List of invoices", invoices, stats)
}

type invoiceItemReq struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required"`
	Price       decimal.Decimal `json:"price"`
}

func toLineItems(items []invoiceItemReq) []services.LineItemInput {
	lines := make([]services.LineItemInput, 0, len(items))
	for _, item := range items {
		lines = append(lines, services.LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
		})
	}
	return lines
}

// CreateInvoice -> totals are computed server-side, never trusted from
// the client
func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	type reqBody struct {
		CustomerID uint             `json:"customerId" binding:"required"`
		DueDate    time.Time        `json:"dueDate" binding:"required"`
		Tax        decimal.Decimal  `json:"tax"`
		Discount   decimal.Decimal  `json:"discount"`
		Items      []invoiceItemReq `json:"items" binding:"required,min=1"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := ic.DB.First(&customer, req.CustomerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	breakdown, err := services.InvoiceTotals(toLineItems(req.Items), req.Tax, req.Discount)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	invoice := models.Invoice{
		InvoiceNumber: utils.NewRefNumber("INV"),
		CustomerID:    customer.ID,
		Tax:           breakdown.Tax,
		Discount:      breakdown.Discount,
		IssueDate:     time.Now(),
		DueDate:       req.DueDate,
		Status:        "pending",
		Total:         breakdown.Total,
	}

	tx := ic.DB.Begin()
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, item := range req.Items {
		invoiceItem := models.InvoiceItem{
			InvoiceID:   invoice.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Amount:      services.LineAmount(item.Quantity, item.Price),
		}
		if err := tx.Create(&invoiceItem).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	tx.Commit()

	ic.DB.Preload("Customer").Preload("Items").First(&invoice, invoice.ID)

	utils.InfoLogger.Printf("Invoice %s created for customer %d, total %s",
		invoice.InvoiceNumber, invoice.CustomerID, utils.FormatUSD(invoice.Total))

	utils.RespondJSON(c, http.StatusCreated, "Invoice created", invoice)
}

// GetInvoiceByID
func (ic *InvoiceController) GetInvoiceByID(c *gin.Context) {
	idStr := c.Param("invoice_id")
	id, _ := strconv.Atoi(idStr)

	var invoice models.Invoice
	if err := ic.DB.Preload("Customer").Preload("Items").First(&invoice, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Invoice detail", invoice)
}

// UpdateInvoice -> status edits; marking paid rolls the amount into the
// customer's lifetime spend
func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	idStr := c.Param("invoice_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Status  *string    `json:"status" binding:"omitempty,oneof=paid pending overdue"`
		DueDate *time.Time `json:"dueDate"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var invoice models.Invoice
	if err := ic.DB.First(&invoice, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	tx := ic.DB.Begin()

	if req.Status != nil && *req.Status != invoice.Status {
		if *req.Status == "paid" {
			var customer models.Customer
			if err := tx.First(&customer, invoice.CustomerID).Error; err != nil {
				tx.Rollback()
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
			customer.TotalSpent = customer.TotalSpent.Add(invoice.Total)
			if err := tx.Save(&customer).Error; err != nil {
				tx.Rollback()
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
		invoice.Status = *req.Status
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Invoice updated", invoice)
}

// DeleteInvoice -> hard delete, items cascade
func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	idStr := c.Param("invoice_id")
	id, _ := strconv.Atoi(idStr)

	tx := ic.DB.Begin()
	if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&models.Invoice{}, id).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Invoice deleted", gin.H{"invoice_id": id})
}
