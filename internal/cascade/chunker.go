package cascade

import (
	"fittrack/fitness-tracker/internal/repository"
	"context"
	"sync"

	"go.uber.org/multierr"
)

const (
	// HardBatchLimit is the store's per-transaction operation ceiling.
	HardBatchLimit = 500
	// DefaultMaxOpsPerBatch keeps a 10% safety margin below the ceiling.
	DefaultMaxOpsPerBatch = 450
)

// Chunker accumulates staged operations and commits them in fixed-size
// batches. Each full batch is dispatched asynchronously so traversal can keep
// staging while earlier commits are in flight; Finish flushes the remainder
// and fan-in awaits every outstanding commit.
//
// Atomicity holds per batch only. If batch 2 of 3 fails, batch 1 stays
// committed and Finish reports the failure without rolling anything back.
type Chunker struct {
	store repository.BatchStore
	limit int

	ops []repository.Op
	wg  sync.WaitGroup

	mu        sync.Mutex
	committed int
	errs      error

	staged int
}

// NewChunker creates a Chunker committing through store. A non-positive limit
// falls back to DefaultMaxOpsPerBatch.
func NewChunker(store repository.BatchStore, limit int) *Chunker {
	if limit <= 0 || limit > HardBatchLimit {
		limit = DefaultMaxOpsPerBatch
	}
	return &Chunker{store: store, limit: limit}
}

// Stage adds one operation to the current batch, dispatching the batch when
// it reaches the configured size.
func (c *Chunker) Stage(ctx context.Context, op repository.Op) {
	c.ops = append(c.ops, op)
	c.staged++
	if len(c.ops) >= c.limit {
		c.dispatch(ctx)
	}
}

// Staged returns the total number of operations staged so far.
func (c *Chunker) Staged() int {
	return c.staged
}

// dispatch sends the current batch to the store without waiting for it.
func (c *Chunker) dispatch(ctx context.Context) {
	batch := c.ops
	c.ops = nil

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.store.CommitBatch(ctx, batch); err != nil {
			batchCommitFailures.Inc()
			c.mu.Lock()
			c.errs = multierr.Append(c.errs, err)
			c.mu.Unlock()
			return
		}
		batchCommitsTotal.Inc()
		c.mu.Lock()
		c.committed++
		c.mu.Unlock()
	}()
}

// Finish commits any partially-filled final batch and waits for all
// previously-issued commits. It returns the number of batches that committed
// successfully; on any commit failure the error is a *BatchCommitError and the
// already-committed batches remain in the store.
func (c *Chunker) Finish(ctx context.Context) (int, error) {
	if len(c.ops) > 0 {
		c.dispatch(ctx)
	}
	c.wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errs != nil {
		return c.committed, &BatchCommitError{Committed: c.committed, Err: c.errs}
	}
	return c.committed, nil
}
