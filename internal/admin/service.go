package admin

import (
	"context"

	"harborbank/internal/admin/types"
	bankmodels "harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,BankService

// UserStore lists registered accounts.
type UserStore interface {
	ListAll(ctx context.Context) ([]*types.AdminUser, error)
}

// BankService is the banking data store as seen by administrators.
type BankService interface {
	GetAllProfiles(ctx context.Context) ([]*bankmodels.Profile, error)
	UpdateProfile(ctx context.Context, userID id.UserID, update bankmodels.ProfileUpdate) (*bankmodels.Profile, error)
	GetAllTransactions(ctx context.Context) ([]*bankmodels.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, txID id.TransactionID, status bankmodels.TransactionStatus) (*bankmodels.Transaction, error)
	GetActivityLogs(ctx context.Context, userID id.UserID) ([]*bankmodels.ActivityLog, error)
}

// Service builds the administrator views that join accounts with banking
// data.
type Service struct {
	users UserStore
	bank  BankService
}

func NewService(users UserStore, bank BankService) *Service {
	return &Service{users: users, bank: bank}
}

// ListUsers returns every account with its profile balance, transaction
// count and most recent activity.
func (s *Service) ListUsers(ctx context.Context) (*UsersListResponse, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	profiles, err := s.bank.GetAllProfiles(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.bank.GetAllTransactions(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[id.UserID]*bankmodels.Profile, len(profiles))
	for _, p := range profiles {
		if _, seen := byID[p.ID]; !seen {
			byID[p.ID] = p
		}
	}
	txCount := make(map[id.UserID]int)
	for _, tx := range txs {
		txCount[tx.UserID]++
	}

	out := make([]*UserInfoResponse, 0, len(users))
	for _, u := range users {
		info := &UserInfoResponse{
			ID:               u.ID.String(),
			Email:            u.Email,
			DisplayName:      u.DisplayName,
			IsAdmin:          u.IsAdmin,
			TransactionCount: txCount[u.ID],
			CreatedAt:        u.CreatedAt,
		}
		if p, ok := byID[u.ID]; ok {
			info.HasProfile = true
			info.Balance = p.Balance.StringFixed(2)
		}
		logs, err := s.bank.GetActivityLogs(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		for _, l := range logs {
			if l.CreatedAt.After(info.LastActive) {
				info.LastActive = l.CreatedAt
			}
		}
		out = append(out, info)
	}
	return &UsersListResponse{Users: out, Total: len(out)}, nil
}
