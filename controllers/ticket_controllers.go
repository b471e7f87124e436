package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/services"
	"github.com/dealstack/crm-backend/utils"
)

var ErrRatingBeforeResolved = errors.New("a ticket can only be rated once resolved")

type TicketController struct {
	DB    *gorm.DB
	Stats *services.StatsService
}

func NewTicketController(db *gorm.DB) *TicketController {
	return &TicketController{DB: db, Stats: services.NewStatsService(db)}
}

// GetAllTickets -> list tickets plus the ticket stat block
func (tc *TicketController) GetAllTickets(c *gin.Context) {
	ctx := c.Request.Context()
	filter := models.ListFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}

	var tickets []models.SupportTicket
	if err := tc.DB.WithContext(ctx).
		Preload("Customer").
		Preload("AssignedTo").
		Preload("Messages").
		Scopes(filter.Scope("subject", "ticket_number")).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats, err := tc.Stats.TicketStats(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondList(c, http.StatusOK, "List of tickets", tickets, stats)
}

// CreateTicket
func (tc *TicketController) CreateTicket(c *gin.Context) {
	type reqBody struct {
		CustomerID   uint   `json:"customerId" binding:"required"`
		Subject      string `json:"subject" binding:"required"`
		Description  string `json:"description"`
		AssignedToID *uint  `json:"assignedToId"`
		Priority     string `json:"priority" binding:"omitempty,oneof=low medium high"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := tc.DB.First(&customer, req.CustomerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Priority == "" {
		req.Priority = "medium"
	}

	ticket := models.SupportTicket{
		TicketNumber: utils.NewRefNumber("TKT"),
		CustomerID:   customer.ID,
		Subject:      req.Subject,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		Priority:     req.Priority,
		Status:       "open",
	}

	if err := tc.DB.Create(&ticket).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Ticket %s opened for customer %d", ticket.TicketNumber, ticket.CustomerID)

	utils.RespondJSON(c, http.StatusCreated, "Ticket created", ticket)
}

// GetTicketByID
func (tc *TicketController) GetTicketByID(c *gin.Context) {
	idStr := c.Param("ticket_id")
	id, _ := strconv.Atoi(idStr)

	var ticket models.SupportTicket
	if err := tc.DB.Preload("Customer").Preload("AssignedTo").Preload("Messages").
		First(&ticket, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ticket detail", ticket)
}

// UpdateTicket -> status/priority/assignment edits plus rating. A rating
// is rejected while the ticket is not resolved.
func (tc *TicketController) UpdateTicket(c *gin.Context) {
	idStr := c.Param("ticket_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Subject      *string `json:"subject"`
		Description  *string `json:"description"`
		AssignedToID *uint   `json:"assignedToId"`
		Priority     *string `json:"priority" binding:"omitempty,oneof=low medium high"`
		Status       *string `json:"status" binding:"omitempty,oneof=open in-progress resolved closed"`
		Rating       *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var ticket models.SupportTicket
	if err := tc.DB.First(&ticket, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Subject != nil {
		ticket.Subject = *req.Subject
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.AssignedToID != nil {
		ticket.AssignedToID = req.AssignedToID
	}
	if req.Priority != nil {
		ticket.Priority = *req.Priority
	}
	if req.Status != nil {
		ticket.Status = *req.Status
	}
	if req.Rating != nil {
		if ticket.Status != "resolved" && ticket.Status != "closed" {
			utils.RespondError(c, http.StatusBadRequest, ErrRatingBeforeResolved)
			return
		}
		ticket.Rating = req.Rating
	}

	if err := tc.DB.Save(&ticket).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ticket updated", ticket)
}

// AddTicketMessage -> append one message to the conversation
func (tc *TicketController) AddTicketMessage(c *gin.Context) {
	idStr := c.Param("ticket_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Sender string `json:"sender" binding:"required"`
		Body   string `json:"body" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var ticket models.SupportTicket
	if err := tc.DB.First(&ticket, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	message := models.TicketMessage{
		TicketID: ticket.ID,
		Sender:   req.Sender,
		Body:     req.Body,
	}

	if err := tc.DB.Create(&message).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Message added", message)
}

// DeleteTicket -> hard delete, messages cascade
func (tc *TicketController) DeleteTicket(c *gin.Context) {
	idStr := c.Param("ticket_id")
	id, _ := strconv.Atoi(idStr)

	tx := tc.DB.Begin()
	if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketMessage{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&models.SupportTicket{}, id).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Ticket deleted", gin.H{"ticket_id": id})
}
