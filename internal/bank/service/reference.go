package service

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"harborbank/internal/bank/models"
)

// ReferenceGenerator builds the human-readable reference for a new
// transaction.
type ReferenceGenerator func(txType models.TransactionType, now time.Time) string

// RandomReference formats {TYPE}-{YYYYMMDD}-{NNNNN} with a uniformly random
// five-digit suffix. Uniqueness is not checked.
func RandomReference(txType models.TransactionType, now time.Time) string {
	return FormatReference(txType, now, rand.IntN(100000))
}

// FormatReference renders a reference from its parts. The date is taken in
// UTC.
func FormatReference(txType models.TransactionType, now time.Time, suffix int) string {
	return fmt.Sprintf("%s-%s-%05d", strings.ToUpper(string(txType)), now.UTC().Format("20060102"), suffix%100000)
}
