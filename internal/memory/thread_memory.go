// Package memory bundles the three arenas each worker (and the submitting
// goroutine) owns for the duration of a frame (spec.md §4.5): a
// frame-lifetime bump arena, a task-lifetime bump arena, and a line-block
// slab.
package memory

import (
	"github.com/gogpu/vraster/internal/arena"
	"github.com/gogpu/vraster/internal/lineblock"
)

// ThreadMemory is the per-worker (or per-submitting-goroutine) memory
// domain. It is never shared across goroutines; the parallel executor hands
// each worker its own instance (spec.md §5).
type ThreadMemory struct {
	Frame arena.Bump
	Task  arena.Bump
	Lines lineblock.Slab
}

// FrameAlloc carves n zeroed T values from the frame-lifetime arena. Valid
// until the next ResetFrame.
func FrameAlloc[T any](m *ThreadMemory, n int) []T {
	return arena.Alloc[T](&m.Frame, n)
}

// FrameNew carves space for one T from the frame-lifetime arena.
func FrameNew[T any](m *ThreadMemory) *T {
	return arena.New[T](&m.Frame)
}

// TaskAlloc carves n zeroed T values from the task-lifetime arena. Valid
// only until the next ResetTask, which the parallel executor calls after
// every iteration body (spec.md §4.10).
func TaskAlloc[T any](m *ThreadMemory, n int) []T {
	return arena.Alloc[T](&m.Task, n)
}

// TaskNew carves space for one T from the task-lifetime arena.
func TaskNew[T any](m *ThreadMemory) *T {
	return arena.New[T](&m.Task)
}

// NewLineBlock carves one fixed-size line block (BlockNarrow or BlockWide)
// from the slab allocator.
func NewLineBlock[T any](m *ThreadMemory) *T {
	return lineblock.NewBlock[T](&m.Lines)
}

// ResetTask reclaims all task-lifetime memory. Called by the parallel
// executor after each iteration body runs.
func (m *ThreadMemory) ResetTask() {
	m.Task.Reset()
}

// ResetFrame reclaims all frame-lifetime and line-block memory. Called by
// the frame driver once, after a frame completes.
func (m *ThreadMemory) ResetFrame() {
	m.Frame.Reset()
	m.Lines.Clear()
}
