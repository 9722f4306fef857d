package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
)

func TestCreateTransactionRequestValidate(t *testing.T) {
	valid := CreateTransactionRequest{
		UserID:        id.NewUserID(),
		Type:          TransactionWire,
		RecipientName: "Acme Corp",
		Amount:        decimal.RequireFromString("100.00"),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *CreateTransactionRequest)
	}{
		{"missing user", func(r *CreateTransactionRequest) { r.UserID = id.UserID{} }},
		{"unknown type", func(r *CreateTransactionRequest) { r.Type = "crypto" }},
		{"blank recipient", func(r *CreateTransactionRequest) { r.RecipientName = "  " }},
		{"zero amount", func(r *CreateTransactionRequest) { r.Amount = decimal.Zero }},
		{"negative amount", func(r *CreateTransactionRequest) { r.Amount = decimal.NewFromInt(-5) }},
		{"negative fee", func(r *CreateTransactionRequest) { r.Fee = decimal.NewFromInt(-1) }},
		{"unknown status", func(r *CreateTransactionRequest) { r.Status = "reversed" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.True(t, dErrors.HasCode(r.Validate(), dErrors.CodeValidation))
		})
	}
}

func TestProfileUpdateApply(t *testing.T) {
	name := "Johnny Doe"
	status := VerificationVerified
	p := &Profile{FullName: "John Doe", Phone: "+1", VerificationStatus: VerificationPending}

	ProfileUpdate{FullName: &name, VerificationStatus: &status}.Apply(p)

	assert.Equal(t, "Johnny Doe", p.FullName)
	assert.Equal(t, "+1", p.Phone)
	assert.Equal(t, VerificationVerified, p.VerificationStatus)
}

func TestProfileUpdateCustomerEditable(t *testing.T) {
	name := "x"
	balance := decimal.NewFromInt(1_000_000)
	assert.True(t, ProfileUpdate{FullName: &name}.CustomerEditable())
	assert.False(t, ProfileUpdate{Balance: &balance}.CustomerEditable())
}

func TestTransactionTotalAndClone(t *testing.T) {
	tx := &Transaction{
		Amount:   decimal.RequireFromString("100.00"),
		Fee:      decimal.RequireFromString("2.50"),
		Metadata: map[string]any{"note": "rent"},
	}
	assert.True(t, tx.Total().Equal(decimal.RequireFromString("102.50")))

	cp := tx.Clone()
	cp.Metadata["note"] = "changed"
	assert.Equal(t, "rent", tx.Metadata["note"])
}
