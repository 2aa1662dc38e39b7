package pos

import "fmt"

// ValidationError means the caller sent a bad request; fixing the input
// makes it recoverable.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError means a referenced entity does not exist (anymore).
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// PartialFailureError is returned when a store without rollback support
// failed midway through a checkout: some stock decrements were applied,
// the rest were not. It must reach the caller so the damage is visible.
// Transactional stores never produce it.
type PartialFailureError struct {
	Applied []uint // product IDs whose stock was already mutated
	Err     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("checkout failed after mutating %d product(s): %v", len(e.Applied), e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
