package batch

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/fgantt/yse-sub003/internal/board"
)

// ops is one implementation strategy for the batch operations.
// Every strategy must produce bit-identical results; scalarOps is the
// reference.
type ops interface {
	and(dst, a, c Batch)
	or(dst, a, c Batch)
	xor(dst, a, c Batch)
	combine(a Batch) board.Bitboard
}

// Kernel is a batch strategy for one vector width.
type Kernel struct {
	name  string
	width int // bits processed per step
	impl  ops
}

// Kernels, widest last.
var (
	Scalar   = &Kernel{name: "scalar", width: 64, impl: scalarOps{}}
	Width128 = &Kernel{name: "vec128", width: 128, impl: vec128{}}
	Width256 = &Kernel{name: "vec256", width: 256, impl: vec256{}}
	Width512 = &Kernel{name: "vec512", width: 512, impl: vec512{}}
)

// Name returns the kernel name.
func (k *Kernel) Name() string { return k.name }

// Width returns the number of bits the kernel processes per step.
func (k *Kernel) Width() int { return k.width }

func (k *Kernel) String() string { return k.name }

// And stores a[i] & c[i] into dst[i]. Panics on length mismatch.
func (k *Kernel) And(dst, a, c Batch) {
	checkLen(dst, a, c)
	k.impl.and(dst, a, c)
}

// Or stores a[i] | c[i] into dst[i]. Panics on length mismatch.
func (k *Kernel) Or(dst, a, c Batch) {
	checkLen(dst, a, c)
	k.impl.or(dst, a, c)
}

// Xor stores a[i] ^ c[i] into dst[i]. Panics on length mismatch.
func (k *Kernel) Xor(dst, a, c Batch) {
	checkLen(dst, a, c)
	k.impl.xor(dst, a, c)
}

// CombineAll returns the union of every bitboard in a.
func (k *Kernel) CombineAll(a Batch) board.Bitboard {
	return k.impl.combine(a)
}

// Kernels returns every kernel, narrowest first. All of them run on any
// CPU; the probe only decides which one is fastest.
func Kernels() []*Kernel {
	return []*Kernel{Scalar, Width128, Width256, Width512}
}

// detect picks the widest vector width the CPU reports.
func detect() *Kernel {
	switch {
	case cpu.X86.HasAVX512F:
		return Width512
	case cpu.X86.HasAVX2:
		return Width256
	case cpu.X86.HasSSE2, cpu.ARM64.HasASIMD:
		return Width128
	default:
		return Scalar
	}
}

var (
	detected = sync.OnceValue(detect)
	forced   atomic.Pointer[Kernel]
)

// Detected returns the kernel chosen by the cached capability probe.
func Detected() *Kernel {
	return detected()
}

// Active returns the kernel used by the package-level operations.
func Active() *Kernel {
	if k := forced.Load(); k != nil {
		return k
	}
	return detected()
}

// Force makes k the active kernel until the returned function is called.
// Intended for benchmarks and tests.
func Force(k *Kernel) (restore func()) {
	prev := forced.Swap(k)
	return func() { forced.Store(prev) }
}
