package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Email       string          `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone       string          `gorm:"type:varchar(50)" json:"phone"`
	Company     string          `gorm:"type:varchar(255)" json:"company"`
	Location    string          `gorm:"type:varchar(255)" json:"location"`
	Status      string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	TotalOrders int             `gorm:"not null;default:0" json:"totalOrders"`
	TotalSpent  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0.00" json:"totalSpent"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`
}
