package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch sizing limits.
const (
	DefaultBatchSize = 50
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

// Processor errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilItemFunc      = errors.New("item function cannot be nil")
)

// ItemFunc handles one item. index is the item's position in the input.
type ItemFunc[T any] func(ctx context.Context, index int, item T) error

// ProgressFunc is called after each batch completes. It may be called from
// several goroutines, but never concurrently.
type ProgressFunc func(snapshot Snapshot)

// Processor splits items into batches and runs an ItemFunc over them.
type Processor[T any] struct {
	batchSize   int
	concurrency int
	onProgress  ProgressFunc
}

// Option configures a Processor.
type Option func(*options)

type options struct {
	concurrency int
	onProgress  ProgressFunc
}

// WithConcurrency sets how many batches may run at once. Values below 1
// mean sequential processing.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.onProgress = fn }
}

// NewProcessor returns a processor with the given batch size.
func NewProcessor[T any](batchSize int, opts ...Option) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}

	o := options{concurrency: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	return &Processor[T]{
		batchSize:   batchSize,
		concurrency: o.concurrency,
		onProgress:  o.onProgress,
	}, nil
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int { return p.batchSize }

// Concurrency returns the configured batch concurrency.
func (p *Processor[T]) Concurrency() int { return p.concurrency }

// Run applies fn to every item. The first error returned by fn cancels the
// remaining batches and is returned, wrapped with the item index. An empty
// slice is a no-op.
func (p *Processor[T]) Run(ctx context.Context, items []T, fn ItemFunc[T]) error {
	if fn == nil {
		return ErrNilItemFunc
	}
	if len(items) == 0 {
		return nil
	}

	bounds := Bounds(len(items), p.batchSize)
	progress := NewProgress(len(items), len(bounds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, b := range bounds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			for i := b[0]; i < b[1]; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := fn(gctx, i, items[i]); err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
			}
			snap := progress.Add(b[1] - b[0])
			if p.onProgress != nil {
				progress.notify(p.onProgress, snap)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Bounds returns the [start, end) index pairs that split total items into
// batches of at most size.
func Bounds(total, size int) [][2]int {
	if total <= 0 || size <= 0 {
		return nil
	}
	n := (total + size - 1) / size
	out := make([][2]int, 0, n)
	for start := 0; start < total; start += size {
		out = append(out, [2]int{start, min(start+size, total)})
	}
	return out
}
