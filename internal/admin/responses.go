package admin

import (
	"time"

	bankmodels "harborbank/internal/bank/models"
)

// UserInfoResponse is one registered account with its banking summary.
type UserInfoResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	IsAdmin          bool      `json:"is_admin"`
	HasProfile       bool      `json:"has_profile"`
	Balance          string    `json:"balance,omitempty"`
	TransactionCount int       `json:"transaction_count"`
	LastActive       time.Time `json:"last_active,omitzero"`
	CreatedAt        time.Time `json:"created_at"`
}

// UsersListResponse wraps the list of users for HTTP response.
type UsersListResponse struct {
	Users []*UserInfoResponse `json:"users"`
	Total int                 `json:"total"`
}

type ProfilesResponse struct {
	Profiles []*bankmodels.Profile `json:"profiles"`
	Total    int                   `json:"total"`
}

type TransactionsResponse struct {
	Transactions []*bankmodels.Transaction `json:"transactions"`
	Total        int                       `json:"total"`
}

type TransactionResponse struct {
	Transaction *bankmodels.Transaction `json:"transaction"`
}

type ProfileResponse struct {
	Profile *bankmodels.Profile `json:"profile"`
}

type ActivityResponse struct {
	Activity []*bankmodels.ActivityLog `json:"activity"`
}
