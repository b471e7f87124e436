package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderNumber  string          `gorm:"type:varchar(50);unique;not null" json:"orderNumber"`
	CustomerID   uint            `gorm:"not null;index" json:"customerId"`
	Customer     Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	Type         string          `gorm:"type:varchar(20);not null;default:'product'" json:"type"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	AssignedToID *uint           `gorm:"index" json:"assignedToId,omitempty"`
	AssignedTo   *User           `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	Status       string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	OrderDate    time.Time       `gorm:"not null" json:"orderDate"`
	DeliveryDate *time.Time      `json:"deliveryDate,omitempty"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0.00" json:"total"`
	CreatedAt    time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updatedAt"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"orderId"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order     Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"not null" json:"updatedAt"`
}
