package models

import (
	"encoding/json"
	"time"
)

// Payment is a completed charge recorded in the PostgreSQL ledger
type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Email         string          `json:"email" gorm:"index;not null"`
	TransactionID string          `json:"transactionId" gorm:"uniqueIndex"`
	Price         float64         `json:"price"`
	Currency      string          `json:"currency"`
	Details       json.RawMessage `json:"details,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PaymentIntentRequest is the body of POST /create-payment-intent
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// PaymentRecordRequest is the body of POST /paymentsData. Any additional fields the client sends
// are kept verbatim in Payment.Details. A missing transaction id is replaced by a generated one.
type PaymentRecordRequest struct {
	TransactionID string  `json:"transactionId,omitempty" validate:"omitempty,max=255"`
	Price         float64 `json:"price" validate:"gt=0"`
	Currency      string  `json:"currency,omitempty"`
}
