package models

import (
	"time"
)

type SupportTicket struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	TicketNumber string          `gorm:"type:varchar(50);unique;not null" json:"ticketNumber"`
	CustomerID   uint            `gorm:"not null;index" json:"customerId"`
	Customer     Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	Subject      string          `gorm:"type:varchar(255);not null" json:"subject"`
	Description  string          `gorm:"type:text" json:"description"`
	AssignedToID *uint           `gorm:"index" json:"assignedToId,omitempty"`
	AssignedTo   *User           `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	Priority     string          `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status       string          `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Messages     []TicketMessage `gorm:"foreignKey:TicketID" json:"messages"`
	// Rating is only set once the ticket has been resolved.
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

type TicketMessage struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TicketID uint `gorm:"not null;index" json:"ticketId"`
	// Omitting Ticket field from JSON to avoid recursive nesting
	Ticket    SupportTicket `gorm:"foreignKey:TicketID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Sender    string        `gorm:"type:varchar(255);not null" json:"sender"`
	Body      string        `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time     `gorm:"not null" json:"createdAt"`
}
