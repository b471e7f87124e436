package models

import (
	"time"
)

type Worksheet struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	AssignedToID *uint      `gorm:"index" json:"assignedToId,omitempty"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority     string     `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Progress     int        `gorm:"not null;default:0" json:"progress"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`
}

// ClampProgress keeps progress inside [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
