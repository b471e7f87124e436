package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"type:varchar(50);unique;not null" json:"invoiceNumber"`
	CustomerID    uint            `gorm:"not null;index" json:"customerId"`
	Customer      Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0.00" json:"tax"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0.00" json:"discount"`
	IssueDate     time.Time       `gorm:"not null" json:"issueDate"`
	DueDate       time.Time       `gorm:"not null" json:"dueDate"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0.00" json:"total"`
	CreatedAt     time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updatedAt"`
}

type InvoiceItem struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	InvoiceID   uint `gorm:"not null;index" json:"invoiceId"`
	// Omitting Invoice field from JSON to avoid recursive nesting
	Invoice     Invoice         `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`
}
