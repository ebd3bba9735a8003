package quadsplit

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// ErrInvalidBuffer indicates a nil or zero-dimension Pixmap was passed to
// Reset. The engine's state is unchanged when this is returned.
var ErrInvalidBuffer = errors.New("quadsplit: buffer has zero width or height")

// Engine drives the adaptive subdivision of a single image.
//
// It owns a priority queue of active fragments ordered by weighted score
// (highest first) and refines the decomposition one Step at a time: pop the
// worst-approximated fragment, replace it with its four quadrants. The
// active fragments exactly partition the image after every operation, and
// their count never exceeds the configured maximum.
//
// An Engine is not safe for concurrent mutation: Reset, Step, and
// SelectSource must be serialized by the caller (a single owning goroutine
// or an external lock). Snapshots from Fragments are copies and remain valid
// across later mutations.
type Engine struct {
	opts      engineOptions
	buf       *Pixmap
	imageArea float64
	queue     fragmentQueue
	nextID    uint64
}

// New creates an Engine. The engine holds no buffer until Reset or
// SelectSource is called; Step on a fresh engine reports no progress.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{opts: o}
}

// StepResult describes the outcome of a single refinement step.
// When Progressed is false the engine made no structural change and Removed
// and Added are zero values.
type StepResult struct {
	// Progressed reports whether a split occurred.
	Progressed bool

	// Removed is the fragment popped for splitting.
	Removed Fragment

	// Added holds the four replacement fragments in split order:
	// top-left, top-right, bottom-left, bottom-right.
	Added [4]Fragment
}

// Reset discards the current decomposition and restarts from a single root
// fragment covering the whole of p.
//
// A nil or zero-dimension buffer returns ErrInvalidBuffer and leaves the
// engine untouched, including any decomposition of a previous buffer.
func (e *Engine) Reset(p *Pixmap) error {
	if p == nil || p.width <= 0 || p.height <= 0 {
		return ErrInvalidBuffer
	}

	root := p.Bounds()
	stats, err := ComputeStats(p, root)
	if err != nil {
		return fmt.Errorf("quadsplit: root statistics: %w", err)
	}

	e.buf = p
	e.imageArea = root.Area()
	e.nextID = 0
	e.queue = e.queue[:0]

	// Root covers the full image, so its area fraction is exactly 1.
	heap.Push(&e.queue, Fragment{
		ID:       e.allocID(),
		Region:   root,
		Stats:    stats,
		Weighted: stats.Score,
	})

	Logger().Info("quadsplit: reset",
		"width", p.width, "height", p.height, "rootScore", stats.Score)
	return nil
}

// Step performs one unit of progressive work: pop the highest-weighted
// fragment and replace it with its four quadrants. The net fragment count
// change of a successful step is +3.
//
// Step reports no progress — a no-op, not an error — when the engine holds
// no buffer, the queue is empty, or a split would push the fragment count
// past the configured maximum. The count grows in +3 increments, so the
// guard is "would overshoot", keeping the bound exact; once it trips, Step
// stays a no-op until Reset.
//
// If a child region encloses no sample pixels (possible once a fragment
// shrinks below one pixel per quadrant), Step returns ErrEmptyRegion wrapped
// and the queue is left exactly as it was: all mutation is deferred until
// every child's statistics have been computed.
func (e *Engine) Step() (StepResult, error) {
	if e.buf == nil || len(e.queue) == 0 || len(e.queue)+3 > e.opts.maxFragments {
		return StepResult{}, nil
	}

	top := e.queue[0]
	children := top.Region.Split()

	var stats [4]Stats
	if err := e.computeChildStats(children, &stats); err != nil {
		return StepResult{}, fmt.Errorf("quadsplit: child statistics: %w", err)
	}

	heap.Pop(&e.queue)

	res := StepResult{Progressed: true, Removed: top}
	for i, r := range children {
		f := Fragment{
			ID:       e.allocID(),
			Region:   r,
			Stats:    stats[i],
			Weighted: stats[i].Score * math.Sqrt(r.Area()/e.imageArea),
		}
		heap.Push(&e.queue, f)
		res.Added[i] = f
	}

	Logger().Debug("quadsplit: step",
		"removed", top.ID, "weighted", top.Weighted, "fragments", len(e.queue))
	return res, nil
}

// computeChildStats fills stats for the four children, serially or on four
// goroutines depending on configuration. The children read disjoint
// rectangles of the immutable buffer, so the parallel path needs no locking.
func (e *Engine) computeChildStats(children [4]Region, stats *[4]Stats) error {
	if !e.opts.parallelStats {
		for i, r := range children {
			s, err := ComputeStats(e.buf, r)
			if err != nil {
				return err
			}
			stats[i] = s
		}
		return nil
	}

	var (
		wg   sync.WaitGroup
		errs [4]error
	)
	for i := range children {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats[i], errs[i] = ComputeStats(e.buf, children[i])
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Fragments returns a snapshot of the active fragments ordered by ID
// (creation order). The snapshot is a copy: later steps do not modify it.
// The returned fragments exactly partition the image.
func (e *Engine) Fragments() []Fragment {
	out := make([]Fragment, len(e.queue))
	copy(out, e.queue)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the current active-fragment count.
func (e *Engine) Len() int {
	return len(e.queue)
}

// MaxFragments returns the configured active-fragment bound.
func (e *Engine) MaxFragments() int {
	return e.opts.maxFragments
}

// allocID returns the next fragment sequence number. IDs start at 1 after
// each Reset so the zero value never collides with a live fragment.
func (e *Engine) allocID() uint64 {
	e.nextID++
	return e.nextID
}

// fragmentQueue is a max-heap over weighted score with the fragment sequence
// number as tie-break (older first). The tie-break makes replay from the
// same buffer reproduce the same subdivision sequence bit for bit.
type fragmentQueue []Fragment

func (q fragmentQueue) Len() int { return len(q) }

func (q fragmentQueue) Less(i, j int) bool {
	if q[i].Weighted != q[j].Weighted {
		return q[i].Weighted > q[j].Weighted
	}
	return q[i].ID < q[j].ID
}

func (q fragmentQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *fragmentQueue) Push(x any) {
	*q = append(*q, x.(Fragment))
}

func (q *fragmentQueue) Pop() any {
	old := *q
	n := len(old)
	f := old[n-1]
	*q = old[:n-1]
	return f
}
