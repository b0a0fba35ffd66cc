// Package rowbin implements the binning stage between linearization and
// rasterization: for every tile row a geometry touches, record which of
// its local line-array rows fall there, in painter's-algorithm (insertion)
// order (spec.md §4.7).
package rowbin

import "github.com/gogpu/vraster/internal/arena"

// Item is one geometry's contribution to a single tile row: which
// geometry (by index into the frame's geometry list) and which local tile
// row within that geometry's own tile-row range.
type Item struct {
	GeometryIndex int32
	LocalRow      int32
}

const itemsPerBlock = 32

// block is a fixed-capacity, singly linked chunk of Items, mirroring the
// line-block allocator's shape (spec.md §4.7 calls this RowItemList).
type block struct {
	items [itemsPerBlock]Item
	next  *block
}

// List is an intrusive per-tile-row linked list of Items, built by
// successive calls to Append as geometries are binned in painter's-algorithm
// order and walked front-to-back by the rasterizer.
type List struct {
	head  *block
	tail  *block
	count int
}

// Append adds one item to the end of the list, allocating a new block from
// bump when the tail block is full. The frame driver passes the frame
// arena, so the list survives from binning into rasterization and is
// reclaimed at the frame's reset.
func (l *List) Append(bump *arena.Bump, geometryIndex, localRow int32) {
	if l.tail == nil || (l.count%itemsPerBlock == 0 && l.count > 0) {
		b := arena.New[block](bump)
		if l.head == nil {
			l.head = b
		} else {
			l.tail.next = b
		}
		l.tail = b
	}
	l.tail.items[l.count%itemsPerBlock] = Item{GeometryIndex: geometryIndex, LocalRow: localRow}
	l.count++
}

// Len reports the total number of items appended.
func (l *List) Len() int {
	return l.count
}

// ForEach walks items in insertion (painter's-algorithm) order.
func (l *List) ForEach(fn func(Item)) {
	remaining := l.count
	for b := l.head; b != nil && remaining > 0; b = b.next {
		n := itemsPerBlock
		if remaining < n {
			n = remaining
		}
		for i := 0; i < n; i++ {
			fn(b.items[i])
		}
		remaining -= n
	}
}
