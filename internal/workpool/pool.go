// Package workpool implements the fork-join parallel executor described in
// spec.md §4.10 and §5: a fixed pool of OS-backed goroutines driven by a
// `ParallelFor(n, body)` primitive, synchronized with a mutex/condition-
// variable pair for dispatch and another for finalization, and an atomic
// cursor for work distribution. See SPEC_FULL.md §3 for why this stays on
// `sync`/`sync/atomic` rather than a higher-level task-group library: the
// spec names this exact mutex+cond+atomic-cursor design, and no existing
// task-group abstraction models a persistent fixed-worker pool with
// per-iteration per-thread memory reset.
package workpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gogpu/vraster/internal/memory"
)

// MaxWorkers caps the pool size regardless of hardware_concurrency (spec.md
// §4.10).
const MaxWorkers = 128

// Body is one parallel-for iteration. It must be synchronous and must not
// call ParallelFor itself (spec.md §4.10's no-reentrancy rule).
type Body func(index int, mem *memory.ThreadMemory)

// Pool is a fixed-size worker pool plus one memory domain for the
// submitting goroutine (spec.md §5's "MallocMain" role). The pool is
// created lazily on first ParallelFor and persists until Close, matching
// spec.md §9's "only process-wide state... initialize lazily" note (scoped
// here to the Pool value rather than truly global, so tests can create
// independent pools).
type Pool struct {
	workers int

	mainMemory memory.ThreadMemory
	workerMem  []*memory.ThreadMemory

	mu         sync.Mutex
	dispatch   sync.Cond
	finalize   sync.Cond
	cursor     atomic.Int64
	total      int64
	body       Body
	batchSize  int64
	generation uint64
	wanted     int
	finalized  int
	closed     bool

	once sync.Once
}

// New creates a pool sized to min(workers, MaxWorkers); workers<=0 selects
// runtime.GOMAXPROCS(0).
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	p := &Pool{workers: workers}
	p.dispatch.L = &p.mu
	p.finalize.L = &p.mu
	return p
}

// Workers returns the number of pooled worker goroutines (not counting the
// submitting goroutine).
func (p *Pool) Workers() int {
	return p.workers
}

// MainMemory returns the submitting goroutine's own thread memory, used for
// single-threaded setup steps run outside any ParallelFor (spec.md §5).
func (p *Pool) MainMemory() *memory.ThreadMemory {
	return &p.mainMemory
}

func (p *Pool) start() {
	p.once.Do(func() {
		p.workerMem = make([]*memory.ThreadMemory, p.workers)
		for i := range p.workerMem {
			p.workerMem[i] = &memory.ThreadMemory{}
		}
		for i := 0; i < p.workers; i++ {
			go p.workerLoop(i)
		}
	})
}

func (p *Pool) workerLoop(id int) {
	myGen := uint64(0)
	for {
		p.mu.Lock()
		for !p.closed && p.generation == myGen {
			p.dispatch.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		myGen = p.generation
		body := p.body
		batch := p.batchSize
		total := p.total
		p.mu.Unlock()

		mem := p.workerMem[id]
		for {
			start := p.cursor.Add(batch) - batch
			if start >= total {
				break
			}
			end := start + batch
			if end > total {
				end = total
			}
			for idx := start; idx < end; idx++ {
				body(int(idx), mem)
				mem.ResetTask()
			}
		}

		p.mu.Lock()
		p.finalized++
		if p.finalized == p.wanted {
			p.finalize.Broadcast()
		}
		p.mu.Unlock()
	}
}

// ParallelFor runs body(i, threadMemory) for i in [0, count), across the
// pool's workers, and blocks until every participating worker has finished
// and reset its task memory. If count<=1 the submitter runs the body inline
// on its own (main) thread memory (spec.md §4.10).
func (p *Pool) ParallelFor(count int, body Body) {
	if count <= 0 {
		return
	}
	if count == 1 {
		body(0, &p.mainMemory)
		p.mainMemory.ResetTask()
		return
	}

	p.start()

	batch := count / (p.workers * 32)
	if batch > 64 {
		batch = 64
	}
	if batch < 1 {
		batch = 1
	}

	p.mu.Lock()
	p.cursor.Store(0)
	p.total = int64(count)
	p.batchSize = int64(batch)
	p.body = body
	p.finalized = 0
	p.wanted = p.workers
	p.generation++
	p.dispatch.Broadcast()
	for p.finalized != p.wanted {
		p.finalize.Wait()
	}
	p.mu.Unlock()
}

// ResetFrameMemory reclaims frame-lifetime and line-block memory on every
// memory domain the pool owns: the submitting goroutine's own memory and,
// if the worker goroutines have ever been started, every worker's memory
// (spec.md §4.9 step 6). Call once per frame, after the frame's last
// ParallelFor call has returned.
func (p *Pool) ResetFrameMemory() {
	p.mainMemory.ResetFrame()
	for _, m := range p.workerMem {
		m.ResetFrame()
	}
}

// Close stops all worker goroutines. The pool must not be used after Close.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.dispatch.Broadcast()
	p.mu.Unlock()
}
