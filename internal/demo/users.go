// Package demo lists the fixed demo accounts shared by the credential seed
// and the banking seed, so sign-in and profile data line up.
package demo

import (
	"time"

	"github.com/google/uuid"

	id "harborbank/pkg/domain"
)

// User is one demo account.
type User struct {
	ID            id.UserID
	Email         string
	Password      string
	DisplayName   string
	IsAdmin       bool
	Phone         string
	AccountNumber string
	Balance       string
	CreatedAt     time.Time
}

var (
	AdminID = id.UserID(uuid.MustParse("11111111-1111-4111-8111-111111111111"))
	JohnID  = id.UserID(uuid.MustParse("22222222-2222-4222-8222-222222222222"))
	JaneID  = id.UserID(uuid.MustParse("33333333-3333-4333-8333-333333333333"))
)

// Users returns a fresh copy of the demo accounts.
func Users() []User {
	return []User{
		{
			ID:            AdminID,
			Email:         "admin@harborbank.test",
			Password:      "admin123",
			DisplayName:   "Harbor Admin",
			IsAdmin:       true,
			Phone:         "+1 (555) 010-0000",
			AccountNumber: "****0001",
			Balance:       "0.00",
			CreatedAt:     time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:            JohnID,
			Email:         "john@example.com",
			Password:      "password123",
			DisplayName:   "John Doe",
			Phone:         "+1 (555) 123-4567",
			AccountNumber: "****4521",
			Balance:       "15750.50",
			CreatedAt:     time.Date(2023, 3, 14, 15, 30, 0, 0, time.UTC),
		},
		{
			ID:            JaneID,
			Email:         "jane@example.com",
			Password:      "password123",
			DisplayName:   "Jane Smith",
			Phone:         "+1 (555) 987-6543",
			AccountNumber: "****7832",
			Balance:       "8200.00",
			CreatedAt:     time.Date(2023, 6, 20, 11, 45, 0, 0, time.UTC),
		},
	}
}
