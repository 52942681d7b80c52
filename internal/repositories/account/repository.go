// Package account defines the interface for account persistence: the
// currency ledger, the capture-item inventory, and the companion
// reference.
package account

//go:generate mockgen -destination=mock/mock_repository.go -package=accountmock github.com/creatureworks/creature-api/internal/repositories/account Repository

import (
	"context"

	"github.com/creatureworks/creature-api/internal/entities"
)

// Repository owns per-account balances and item counts. Every mutation
// is a single atomic persisted update; balances and counts never go
// negative.
type Repository interface {
	// Create creates a new account with its starting grants
	// Returns errors.AlreadyExists if the ID is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an account by ID
	// Returns errors.NotFound if the account doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Credit adds amount to the account's balance
	// Returns errors.InvalidArgument for non-positive amounts
	Credit(ctx context.Context, input CreditInput) (*CreditOutput, error)

	// Debit removes amount from the account's balance
	// Returns errors.FailedPrecondition when amount exceeds the balance
	Debit(ctx context.Context, input DebitInput) (*DebitOutput, error)

	// ConsumeItem decrements one unit of the given item
	// Returns errors.FailedPrecondition when the count is already zero
	ConsumeItem(ctx context.Context, input ConsumeItemInput) (*ConsumeItemOutput, error)

	// SetItemCount sets the count of the given item
	// Returns errors.InvalidArgument for negative counts
	SetItemCount(ctx context.Context, input SetItemCountInput) (*SetItemCountOutput, error)

	// SetCompanion points the account's companion at an instance.
	// Ownership is the caller's concern; an empty instance ID clears it
	SetCompanion(ctx context.Context, input SetCompanionInput) (*SetCompanionOutput, error)

	// ClearCompanionIf clears the companion only when it currently
	// references the given instance. Used when an instance leaves the
	// account
	ClearCompanionIf(ctx context.Context, input ClearCompanionIfInput) (*ClearCompanionIfOutput, error)
}

// CreateInput defines the input for creating an account
type CreateInput struct {
	Account *entities.Account
}

// CreateOutput defines the output for creating an account
type CreateOutput struct {
	Account *entities.Account
}

// GetInput defines the input for getting an account
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an account
type GetOutput struct {
	Account *entities.Account
}

// CreditInput defines the input for crediting a balance
type CreditInput struct {
	ID     string
	Amount int64
}

// CreditOutput reports the balance after the credit
type CreditOutput struct {
	Balance int64
}

// DebitInput defines the input for debiting a balance
type DebitInput struct {
	ID     string
	Amount int64
}

// DebitOutput reports the balance after the debit
type DebitOutput struct {
	Balance int64
}

// ConsumeItemInput defines the input for consuming one capture item
type ConsumeItemInput struct {
	ID   string
	Item entities.ItemType
}

// ConsumeItemOutput reports the count after consumption
type ConsumeItemOutput struct {
	Remaining int64
}

// SetItemCountInput defines the input for setting an item count
type SetItemCountInput struct {
	ID    string
	Item  entities.ItemType
	Count int64
}

// SetItemCountOutput defines the output for setting an item count
type SetItemCountOutput struct{}

// SetCompanionInput defines the input for setting the companion
type SetCompanionInput struct {
	ID         string
	InstanceID string
}

// SetCompanionOutput defines the output for setting the companion
type SetCompanionOutput struct{}

// ClearCompanionIfInput defines the input for the conditional clear
type ClearCompanionIfInput struct {
	ID         string
	InstanceID string
}

// ClearCompanionIfOutput reports whether the reference was cleared
type ClearCompanionIfOutput struct {
	Cleared bool
}
