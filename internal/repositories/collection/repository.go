// Package collection defines the interface for creature instance
// persistence: which account owns which instance.
package collection

//go:generate mockgen -destination=mock/mock_repository.go -package=collectionmock github.com/creatureworks/creature-api/internal/repositories/collection Repository

import (
	"context"

	"github.com/creatureworks/creature-api/internal/entities"
)

// Repository owns creature instances and their ownership. An instance
// is owned by exactly one account or listed on the market, never both.
type Repository interface {
	// Add creates an instance and assigns ownership
	// Returns errors.AlreadyExists if the instance ID is taken
	Add(ctx context.Context, input AddInput) (*AddOutput, error)

	// Get retrieves an instance by ID
	// Returns errors.NotFound if it doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByOwner returns every instance owned by an account
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)

	// Transfer moves an instance between accounts atomically
	// Returns errors.FailedPrecondition when FromID doesn't own it
	Transfer(ctx context.Context, input TransferInput) (*TransferOutput, error)

	// Remove deletes an instance owned by the account
	// Returns errors.FailedPrecondition when the account doesn't own it
	Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error)
}

// AddInput defines the input for adding an instance
type AddInput struct {
	Instance *entities.CreatureInstance
}

// AddOutput defines the output for adding an instance
type AddOutput struct {
	Instance *entities.CreatureInstance
}

// GetInput defines the input for getting an instance
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an instance
type GetOutput struct {
	Instance *entities.CreatureInstance
}

// ListByOwnerInput defines the input for listing an account's creatures
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing an account's creatures
type ListByOwnerOutput struct {
	Instances []*entities.CreatureInstance
}

// TransferInput defines the input for transferring ownership
type TransferInput struct {
	InstanceID string
	FromID     string
	ToID       string
}

// TransferOutput defines the output for transferring ownership
type TransferOutput struct {
	Instance *entities.CreatureInstance
}

// RemoveInput defines the input for removing an instance
type RemoveInput struct {
	OwnerID    string
	InstanceID string
}

// RemoveOutput defines the output for removing an instance
type RemoveOutput struct{}
