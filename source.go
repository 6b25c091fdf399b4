package salad

import "context"

// Source is the pull-callback input interface: Recv invokes sink once per
// batch of up to batchSize inputs, in order, until the source is
// exhausted or sink (or the source itself) returns an error. Concrete
// Sources (line files, glob-filtered directory trees, archive readers)
// live in internal/input, outside the core.
type Source interface {
	Recv(ctx context.Context, batchSize int, sink func(batch [][]byte) error) error
}

// DefaultBatchSize is the batch size used when a caller has no reason to
// pick another.
const DefaultBatchSize = 128
