package model

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is a membership bill for a client. Amounts are whole cents.
type Invoice struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	UserName    string     `json:"user_name,omitempty"`
	UserEmail   string     `json:"user_email,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	DueDate     time.Time  `json:"due_date"`
	Paid        bool       `json:"paid"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MonthlyEarning is the sum of paid invoices for one payment month (YYYY-MM).
type MonthlyEarning struct {
	Month      string `json:"month"`
	TotalCents int64  `json:"total_cents"`
}

// CreateInvoiceRequest is the payload for billing a client.
type CreateInvoiceRequest struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	AmountCents int64     `json:"amount_cents" binding:"required,gt=0"`
	DueDate     string    `json:"due_date" binding:"required,datetime=2006-01-02"`
}

// MarkInvoicePaidRequest records a payment. A missing payment_date means now.
type MarkInvoicePaidRequest struct {
	PaymentDate *time.Time `json:"payment_date"`
}
