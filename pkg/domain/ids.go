// Package domain holds typed identifiers shared across bounded contexts.
//
// Identifiers are uuid-backed but distinct types, so a TransactionID cannot
// be passed where a UserID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "harborbank/pkg/domain-errors"
)

type (
	UserID        uuid.UUID
	TransactionID uuid.UUID
	ActivityID    uuid.UUID
)

// NewUserID returns a random user identifier.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewTransactionID returns a random transaction identifier.
func NewTransactionID() TransactionID { return TransactionID(uuid.New()) }

// NewActivityID returns a random activity identifier.
func NewActivityID() ActivityID { return ActivityID(uuid.New()) }

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id TransactionID) String() string { return uuid.UUID(id).String() }
func (id ActivityID) String() string    { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id TransactionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ActivityID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id TransactionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *TransactionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id ActivityID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *ActivityID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ParseUserID parses external input into a UserID.
// Empty, malformed and nil UUIDs are rejected with CodeInvalidInput.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

// ParseTransactionID parses external input into a TransactionID.
func ParseTransactionID(s string) (TransactionID, error) {
	u, err := parseUUID(s, "transaction ID")
	return TransactionID(u), err
}

// ParseActivityID parses external input into an ActivityID.
func ParseActivityID(s string) (ActivityID, error) {
	u, err := parseUUID(s, "activity ID")
	return ActivityID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
