package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"harborbank/internal/bank/models"
	"harborbank/internal/demo"
	id "harborbank/pkg/domain"
)

// SeedDemoData loads one profile per demo account plus some history.
// Historic transactions are already reflected in the seeded balances.
func SeedDemoData(ctx context.Context, s *InMemoryStore) error {
	for _, u := range demo.Users() {
		status := models.VerificationVerified
		if u.IsAdmin {
			status = models.VerificationPending
		}
		err := s.CreateProfile(ctx, &models.Profile{
			ID:                 u.ID,
			FullName:           u.DisplayName,
			Email:              u.Email,
			AccountNumber:      u.AccountNumber,
			Balance:            decimal.RequireFromString(u.Balance),
			IsAdmin:            u.IsAdmin,
			Phone:              u.Phone,
			VerificationStatus: status,
			CreatedAt:          u.CreatedAt,
		})
		if err != nil {
			return err
		}
	}

	for _, tx := range seedTransactions() {
		if err := s.AppendTransaction(ctx, tx); err != nil {
			return err
		}
	}
	for _, a := range seedActivity() {
		if err := s.AppendActivity(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func seedTransactions() []*models.Transaction {
	at := func(y int, m time.Month, d, h int) time.Time {
		return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	}
	completed := func(t time.Time) *time.Time {
		c := t.Add(2 * time.Hour)
		return &c
	}

	return []*models.Transaction{
		{
			ID:               id.NewTransactionID(),
			UserID:           demo.JohnID,
			Type:             models.TransactionWire,
			RecipientName:    "Coastal Realty LLC",
			RecipientAccount: "****9012",
			Amount:           decimal.RequireFromString("2500.00"),
			Fee:              decimal.RequireFromString("25.00"),
			Status:           models.TransactionCompleted,
			ReferenceNumber:  "WIRE-20240110-04821",
			Description:      "January rent",
			CreatedAt:        at(2024, time.January, 10, 9),
			CompletedAt:      completed(at(2024, time.January, 10, 9)),
		},
		{
			ID:               id.NewTransactionID(),
			UserID:           demo.JohnID,
			Type:             models.TransactionACH,
			RecipientName:    "City Utilities",
			RecipientAccount: "****3344",
			Amount:           decimal.RequireFromString("145.20"),
			Fee:              decimal.Zero,
			Status:           models.TransactionCompleted,
			ReferenceNumber:  "ACH-20240115-11873",
			Description:      "Electricity bill",
			CreatedAt:        at(2024, time.January, 15, 14),
			CompletedAt:      completed(at(2024, time.January, 15, 14)),
		},
		{
			ID:               id.NewTransactionID(),
			UserID:           demo.JaneID,
			Type:             models.TransactionLocal,
			RecipientName:    "John Doe",
			RecipientAccount: "****4521",
			Amount:           decimal.RequireFromString("300.00"),
			Fee:              decimal.Zero,
			Status:           models.TransactionPending,
			ReferenceNumber:  "LOCAL-20240118-00342",
			Description:      "Dinner split",
			CreatedAt:        at(2024, time.January, 18, 19),
		},
	}
}

func seedActivity() []*models.ActivityLog {
	return []*models.ActivityLog{
		{
			ID:        id.NewActivityID(),
			UserID:    demo.JohnID,
			Action:    models.ActionSignIn,
			Metadata:  map[string]any{"device": "Chrome on macOS"},
			CreatedAt: time.Date(2024, time.January, 10, 8, 55, 0, 0, time.UTC),
		},
		{
			ID:           id.NewActivityID(),
			UserID:       demo.JohnID,
			Action:       models.ActionTransactionCreated,
			ResourceType: "transaction",
			CreatedAt:    time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        id.NewActivityID(),
			UserID:    demo.JaneID,
			Action:    models.ActionSignIn,
			Metadata:  map[string]any{"device": "Safari on iPhone"},
			CreatedAt: time.Date(2024, time.January, 18, 18, 50, 0, 0, time.UTC),
		},
	}
}
