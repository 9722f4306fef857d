package models

import (
	"maps"
	"time"

	"github.com/shopspring/decimal"

	id "harborbank/pkg/domain"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (v VerificationStatus) IsValid() bool {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

type TransactionType string

const (
	TransactionWire  TransactionType = "wire"
	TransactionACH   TransactionType = "ach"
	TransactionLocal TransactionType = "local"
	TransactionOther TransactionType = "other"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionWire, TransactionACH, TransactionLocal, TransactionOther:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionFailed:
		return true
	}
	return false
}

// Profile is a customer's banking profile. Balance may go negative.
type Profile struct {
	ID                 id.UserID          `json:"id"`
	FullName           string             `json:"full_name"`
	Email              string             `json:"email"`
	AccountNumber      string             `json:"account_number"`
	Balance            decimal.Decimal    `json:"balance"`
	IsAdmin            bool               `json:"is_admin"`
	Phone              string             `json:"phone,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time          `json:"created_at"`
}

func (p *Profile) Clone() *Profile {
	cp := *p
	return &cp
}

// Transaction is a money transfer out of a customer's account.
type Transaction struct {
	ID               id.TransactionID  `json:"id"`
	UserID           id.UserID         `json:"user_id"`
	Type             TransactionType   `json:"transaction_type"`
	RecipientName    string            `json:"recipient_name"`
	RecipientAccount string            `json:"recipient_account"`
	Amount           decimal.Decimal   `json:"amount"`
	Fee              decimal.Decimal   `json:"fee"`
	Status           TransactionStatus `json:"status"`
	ReferenceNumber  string            `json:"reference_number"`
	Description      string            `json:"description"`
	CreatedAt        time.Time         `json:"created_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	Metadata         map[string]any    `json:"metadata,omitempty"`
}

// Total is the amount debited from the sender: amount plus fee.
func (t *Transaction) Total() decimal.Decimal {
	return t.Amount.Add(t.Fee)
}

func (t *Transaction) Clone() *Transaction {
	cp := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		cp.CompletedAt = &at
	}
	cp.Metadata = maps.Clone(t.Metadata)
	return &cp
}

// ActivityLog is an append-only audit entry.
type ActivityLog struct {
	ID           id.ActivityID  `json:"id"`
	UserID       id.UserID      `json:"user_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (a *ActivityLog) Clone() *ActivityLog {
	cp := *a
	cp.Metadata = maps.Clone(a.Metadata)
	return &cp
}

// Activity actions recorded by the HTTP layer.
const (
	ActionSignIn             = "sign_in"
	ActionSignOut            = "sign_out"
	ActionTransactionCreated = "transaction_created"
	ActionProfileUpdated     = "profile_updated"
)
