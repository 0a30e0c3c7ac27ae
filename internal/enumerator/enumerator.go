// Package enumerator hands out batches of candidate indices to workers,
// desynchronizing their progress by alternating which half of the node's
// subrange each batch comes from.
package enumerator

import "sync"

// Enumerator is the shared, mutex-guarded batch counter: the counter is
// monotonic, and dispatch alternates around a center to spread
// contention and cache effects across workers.
type Enumerator struct {
	mu     sync.Mutex
	next   uint64
	rang   uint64 // batches per node ("range" is a keyword)
	offset uint64 // node_id * range
	total  uint64 // node_count * range
}

// New builds an Enumerator for one node: nodeID and nodeCount partition
// the batch space with no communication between nodes.
func New(nodeID, nodeCount, batchesPerNode uint64) *Enumerator {
	return &Enumerator{
		rang:   batchesPerNode,
		offset: nodeID * batchesPerNode,
		total:  nodeCount * batchesPerNode,
	}
}

// Done reports whether every batch has already been claimed.
func (e *Enumerator) Done() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next >= e.rang
}

// NextBatch hands out the next batch index: callers consume batches
// alternately from the upper and lower halves of the node's subrange.
// Returns the batch index and false once the range is exhausted.
func (e *Enumerator) NextBatch() (uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.next >= e.rang {
		return 0, false
	}

	half := e.offset + (e.next >> 1) + 1
	var batch uint64
	if e.next%2 == 0 {
		batch = e.total - half
	} else {
		batch = half
	}
	e.next++
	return batch, true
}

// BatchRange converts a batch index into the half-open interval of
// wheel-space indices it covers, given how many wheel positions make up
// one batch.
func BatchRange(batch, entriesPerBatch uint64) (start, end uint64) {
	return batch * entriesPerBatch, (batch + 1) * entriesPerBatch
}
