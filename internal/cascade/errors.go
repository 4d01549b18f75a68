package cascade

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	// ErrSourceNotFound means the scope document was missing at invocation.
	ErrSourceNotFound = errors.New("cascade source document not found")
	// ErrOwnershipMismatch means the source document's owner differs from the
	// caller. Checked on duplication only; see Deleter for the asymmetry.
	ErrOwnershipMismatch = errors.New("cascade source is not owned by the caller")
	// ErrInvalidScope means zero or more than one of week/workout/exercise was
	// supplied as the operation scope.
	ErrInvalidScope = errors.New("scope must identify exactly one of week, workout, or exercise")
)

// BatchCommitError wraps a store error raised while committing one of the
// chunked transactions. Batches committed before the failure stay committed;
// there is no compensation, so the caller must treat the subtree as partially
// written.
type BatchCommitError struct {
	Committed int // batches that had already committed successfully
	Err       error
}

func (e *BatchCommitError) Error() string {
	return fmt.Sprintf("batch commit failed after %d committed batch(es): %v", e.Committed, e.Err)
}

func (e *BatchCommitError) Unwrap() error {
	return e.Err
}
