package service

import (
	"context"
	"errors"

	"harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/platform/sentinel"
	"harborbank/pkg/requestcontext"
)

// CreateTransaction records a transfer and debits amount plus fee from the
// sender's profile in the same critical section. A sender without a profile
// still gets the transaction; only the debit is skipped.
func (s *Service) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	status := req.Status
	if status == "" {
		status = models.TransactionPending
	}

	tx := &models.Transaction{
		ID:               id.NewTransactionID(),
		UserID:           req.UserID,
		Type:             req.Type,
		RecipientName:    req.RecipientName,
		RecipientAccount: req.RecipientAccount,
		Amount:           req.Amount,
		Fee:              req.Fee,
		Status:           status,
		ReferenceNumber:  s.reference(req.Type, now),
		Description:      req.Description,
		CreatedAt:        now,
		Metadata:         req.Metadata,
	}
	if status == models.TransactionCompleted {
		completedAt := now
		tx.CompletedAt = &completedAt
	}

	err := s.tx.RunInTx(ctx, func(st Store) error {
		if err := st.AppendTransaction(ctx, tx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction")
		}
		_, err := st.UpdateProfile(ctx, req.UserID, func(p *models.Profile) error {
			p.Balance = p.Balance.Sub(tx.Total())
			return nil
		})
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.DebugContext(ctx, "no profile for sender; balance debit skipped",
				"user_id", req.UserID.String(),
				"transaction_id", tx.ID.String(),
			)
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to debit balance")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementTransactionCreated(string(tx.Type), tx.Total())
	}
	s.logger.InfoContext(ctx, "transaction created",
		"transaction_id", tx.ID.String(),
		"reference_number", tx.ReferenceNumber,
		"request_id", requestcontext.RequestID(ctx),
	)
	return tx.Clone(), nil
}

// GetTransactions lists one user's transactions in insertion order.
func (s *Service) GetTransactions(ctx context.Context, userID id.UserID) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := s.tx.RunInTx(ctx, func(st Store) error {
		var err error
		txs, err = st.ListTransactionsByUser(ctx, userID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transactions")
		}
		return nil
	})
	return txs, err
}

// GetAllTransactions lists every transaction in insertion order.
func (s *Service) GetAllTransactions(ctx context.Context) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := s.tx.RunInTx(ctx, func(st Store) error {
		var err error
		txs, err = st.ListTransactions(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transactions")
		}
		return nil
	})
	return txs, err
}

// UpdateTransactionStatus is the admin override for a transaction's status.
// Moving to completed stamps CompletedAt once.
func (s *Service) UpdateTransactionStatus(ctx context.Context, txID id.TransactionID, status models.TransactionStatus) (*models.Transaction, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown transaction status")
	}
	now := requestcontext.Now(ctx)

	var updated *models.Transaction
	err := s.tx.RunInTx(ctx, func(st Store) error {
		tx, err := st.UpdateTransaction(ctx, txID, func(tx *models.Transaction) error {
			tx.Status = status
			if status == models.TransactionCompleted && tx.CompletedAt == nil {
				completedAt := now
				tx.CompletedAt = &completedAt
			}
			return nil
		})
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "transaction not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update transaction")
		}
		updated = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
