package models

import (
	"strings"

	"github.com/shopspring/decimal"

	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
)

// ProfileUpdate is a partial update; nil fields are left unchanged.
type ProfileUpdate struct {
	FullName           *string             `json:"full_name,omitempty"`
	Phone              *string             `json:"phone,omitempty"`
	Email              *string             `json:"email,omitempty"`
	VerificationStatus *VerificationStatus `json:"verification_status,omitempty"`
	AccountNumber      *string             `json:"account_number,omitempty"`
	Balance            *decimal.Decimal    `json:"balance,omitempty"`
	IsAdmin            *bool               `json:"is_admin,omitempty"`
}

func (u ProfileUpdate) Validate() error {
	if u.VerificationStatus != nil && !u.VerificationStatus.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown verification status")
	}
	if u.Email != nil && strings.TrimSpace(*u.Email) == "" {
		return dErrors.New(dErrors.CodeValidation, "email cannot be empty")
	}
	return nil
}

// CustomerEditable reports whether only fields a customer may change on
// their own profile are set.
func (u ProfileUpdate) CustomerEditable() bool {
	return u.VerificationStatus == nil && u.AccountNumber == nil && u.Balance == nil && u.IsAdmin == nil
}

// Apply merges the set fields into p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.VerificationStatus != nil {
		p.VerificationStatus = *u.VerificationStatus
	}
	if u.AccountNumber != nil {
		p.AccountNumber = *u.AccountNumber
	}
	if u.Balance != nil {
		p.Balance = *u.Balance
	}
	if u.IsAdmin != nil {
		p.IsAdmin = *u.IsAdmin
	}
}

// CreateTransactionRequest carries everything but the id, reference number
// and creation time, which the store assigns. Zero values take defaults:
// fee 0 and status pending.
type CreateTransactionRequest struct {
	UserID           id.UserID         `json:"-"`
	Type             TransactionType   `json:"transaction_type"`
	RecipientName    string            `json:"recipient_name"`
	RecipientAccount string            `json:"recipient_account,omitempty"`
	Amount           decimal.Decimal   `json:"amount"`
	Fee              decimal.Decimal   `json:"fee"`
	Status           TransactionStatus `json:"status,omitempty"`
	Description      string            `json:"description,omitempty"`
	Metadata         map[string]any    `json:"metadata,omitempty"`
}

func (r CreateTransactionRequest) Validate() error {
	if r.UserID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	if !r.Type.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown transaction type")
	}
	if strings.TrimSpace(r.RecipientName) == "" {
		return dErrors.New(dErrors.CodeValidation, "recipient name is required")
	}
	if !r.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	if r.Fee.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "fee cannot be negative")
	}
	if r.Status != "" && !r.Status.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown transaction status")
	}
	return nil
}

type LogActivityRequest struct {
	UserID       id.UserID      `json:"-"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func (r LogActivityRequest) Validate() error {
	if r.UserID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(r.Action) == "" {
		return dErrors.New(dErrors.CodeValidation, "action is required")
	}
	return nil
}

type UpdateTransactionStatusRequest struct {
	Status TransactionStatus `json:"status"`
}
