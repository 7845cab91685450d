package bacf

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf/internal/arch/generic"
	archregistry "github.com/cwbudde/algo-tuner/dsp/pitch/bacf/internal/arch/registry"
	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf/internal/arch/wide"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// ErrUnknownKernel is returned for kernel names or values that do not exist.
var ErrUnknownKernel = errors.New("bacf: unknown correlation kernel")

// Kernel selects how the bitstream autocorrelation is computed. Every kernel
// produces the same correlation table for the same bitstream.
type Kernel int

const (
	// KernelAuto picks the fastest popcount kernel for the running CPU.
	KernelAuto Kernel = iota
	// KernelWord32 compares one 32-bit word per popcount.
	KernelWord32
	// KernelWord64 compares two packed words per 64-bit popcount.
	KernelWord64
	// KernelFFT correlates the ±1 form of the stream with an FFT and converts
	// the result back to bit distances.
	KernelFFT
)

var kernelNames = map[Kernel]string{
	KernelAuto:   "auto",
	KernelWord32: "word32",
	KernelWord64: "word64",
	KernelFFT:    "fft",
}

// String returns the kernel name as accepted by ParseKernel.
func (k Kernel) String() string {
	if name, ok := kernelNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kernel(%d)", int(k))
}

func (k Kernel) valid() bool {
	_, ok := kernelNames[k]
	return ok
}

// ParseKernel maps a kernel name to its value. Matching is case-insensitive.
func ParseKernel(name string) (Kernel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return KernelAuto, nil
	}
	for k, n := range kernelNames {
		if n == name {
			return k, nil
		}
	}
	return KernelAuto, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}

var (
	autoKernel         *archregistry.OpEntry
	autoKernelInitOnce sync.Once
)

func initAutoKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("bacf: no correlation kernel registered (missing generic fallback?)")
	}

	if entry.Correlate == nil {
		panic("bacf: selected kernel missing Correlate")
	}

	autoKernel = entry
}

// ResolvedKernel reports the concrete kernel KernelAuto maps to on this CPU.
func ResolvedKernel() Kernel {
	autoKernelInitOnce.Do(initAutoKernel)

	k, err := ParseKernel(autoKernel.Name)
	if err != nil {
		return KernelWord32
	}
	return k
}

// popcountKernel returns the popcount implementation for k. KernelFFT is
// stateful and handled by the caller.
func popcountKernel(k Kernel) archregistry.CorrelateFn {
	switch k {
	case KernelWord32:
		return generic.Correlate
	case KernelWord64:
		return wide.Correlate
	default:
		autoKernelInitOnce.Do(initAutoKernel)
		return autoKernel.Correlate
	}
}
