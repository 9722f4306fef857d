package types

import (
	"time"

	id "harborbank/pkg/domain"
)

// AdminUser is a registered account as shown to administrators.
type AdminUser struct {
	ID          id.UserID
	Email       string
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time
}
