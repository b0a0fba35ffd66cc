package vraster

import "github.com/gogpu/vraster/internal/workpool"

// Pool is the fixed fork-join worker pool [Rasterize] runs its parallel
// stages on (spec.md §4.10, §5). A Pool is safe to reuse across many
// [Rasterize] calls — the worker goroutines and their per-thread memory
// persist between frames; only per-frame and per-task arenas are reset.
type Pool = workpool.Pool

// NewPool creates a Pool sized to min(workers, [workpool.MaxWorkers]).
// workers<=0 selects runtime.GOMAXPROCS(0).
func NewPool(workers int) *Pool {
	return workpool.New(workers)
}
