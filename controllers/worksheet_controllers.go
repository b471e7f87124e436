package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/utils"
)

type WorksheetController struct {
	DB *gorm.DB
}

func NewWorksheetController(db *gorm.DB) *WorksheetController {
	return &WorksheetController{DB: db}
}

// GetAllWorksheets -> list worksheets, honoring search/status filters
func (wc *WorksheetController) GetAllWorksheets(c *gin.Context) {
	filter := models.ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	var worksheets []models.Worksheet
	if err := wc.DB.WithContext(c.Request.Context()).
		Preload("AssignedTo").
		Scopes(filter.Scope("title", "description")).
		Order("created_at DESC").
		Find(&worksheets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondList(c, http.StatusOK, "List of worksheets", worksheets, nil)
}

// CreateWorksheet
func (wc *WorksheetController) CreateWorksheet(c *gin.Context) {
	type reqBody struct {
		Title        string     `json:"title" binding:"required"`
		Description  string     `json:"description"`
		AssignedToID *uint      `json:"assignedToId"`
		Status       string     `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
		Priority     string     `json:"priority" binding:"omitempty,oneof=low medium high"`
		DueDate      *time.Time `json:"dueDate"`
		Progress     int        `json:"progress"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Status == "" {
		req.Status = "pending"
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}

	worksheet := models.Worksheet{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		Progress:     models.ClampProgress(req.Progress),
	}

	if err := wc.DB.Create(&worksheet).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Worksheet created", worksheet)
}

// GetWorksheetByID
func (wc *WorksheetController) GetWorksheetByID(c *gin.Context) {
	idStr := c.Param("worksheet_id")
	id, _ := strconv.Atoi(idStr)

	var worksheet models.Worksheet
	if err := wc.DB.Preload("AssignedTo").First(&worksheet, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Worksheet detail", worksheet)
}

// UpdateWorksheet -> partial status/progress edits ride through here too
func (wc *WorksheetController) UpdateWorksheet(c *gin.Context) {
	idStr := c.Param("worksheet_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Title        *string    `json:"title"`
		Description  *string    `json:"description"`
		AssignedToID *uint      `json:"assignedToId"`
		Status       *string    `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
		Priority     *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
		DueDate      *time.Time `json:"dueDate"`
		Progress     *int       `json:"progress"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var worksheet models.Worksheet
	if err := wc.DB.First(&worksheet, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Title != nil {
		worksheet.Title = *req.Title
	}
	if req.Description != nil {
		worksheet.Description = *req.Description
	}
	if req.AssignedToID != nil {
		worksheet.AssignedToID = req.AssignedToID
	}
	if req.Status != nil {
		worksheet.Status = *req.Status
	}
	if req.Priority != nil {
		worksheet.Priority = *req.Priority
	}
	if req.DueDate != nil {
		worksheet.DueDate = req.DueDate
	}
	if req.Progress != nil {
		worksheet.Progress = models.ClampProgress(*req.Progress)
	}

	if err := wc.DB.Save(&worksheet).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Worksheet updated", worksheet)
}

// DeleteWorksheet
func (wc *WorksheetController) DeleteWorksheet(c *gin.Context) {
	idStr := c.Param("worksheet_id")
	id, _ := strconv.Atoi(idStr)

	if err := wc.DB.Delete(&models.Worksheet{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Worksheet deleted", gin.H{"worksheet_id": id})
}
