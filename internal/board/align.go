package board

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the cache line size of the target platform.
const CacheLineSize = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// alignedBytes returns size bytes whose first byte sits on a cache line
// boundary. The backing array is a pointer-free allocation, so callers
// may only overlay pointer-free types on it.
func alignedBytes(size int) unsafe.Pointer {
	buf := make([]byte, size+CacheLineSize)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(&buf[0])) % uintptr(CacheLineSize)); rem != 0 {
		off = CacheLineSize - rem
	}
	return unsafe.Pointer(&buf[off])
}

// AlignedNew allocates a zeroed T starting on a cache line boundary.
// T must not contain pointers.
func AlignedNew[T any]() *T {
	var zero T
	return (*T)(alignedBytes(int(unsafe.Sizeof(zero))))
}

// AlignedSlice allocates a zeroed slice of n elements whose first element
// starts on a cache line boundary. T must not contain pointers.
func AlignedSlice[T any](n int) []T {
	var zero T
	return unsafe.Slice((*T)(alignedBytes(n*int(unsafe.Sizeof(zero)))), n)
}

// IsAligned reports whether p sits on a cache line boundary.
func IsAligned(p unsafe.Pointer) bool {
	return uintptr(p)%uintptr(CacheLineSize) == 0
}
