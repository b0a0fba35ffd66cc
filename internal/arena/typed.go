package arena

import "unsafe"

// Alloc carves a slice of n zeroed T values off the front block of b. The
// returned slice is valid only until the next Reset (spec.md §3's "Lifecycle"
// invariant); callers must not retain it past their task/frame boundary.
//
// Reinterpreting a byte block as a typed slice via unsafe.Slice is the same
// trick arena-style allocators throughout the Go ecosystem use to avoid one
// GC-tracked allocation per object; it is safe here because Bump.Bytes
// already aligns to 16 bytes, which covers the alignment requirement of
// every type used by this package (int32, pointers, and structs built from
// them).
func Alloc[T any](b *Bump, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero)) * n
	raw := b.Bytes(size)
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
}

// New carves space for one T and returns a pointer to it, zero-initialized.
func New[T any](b *Bump) *T {
	s := Alloc[T](b, 1)
	return &s[0]
}
