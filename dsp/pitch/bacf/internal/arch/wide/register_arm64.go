//go:build arm64 && !purego

package wide

import (
	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "word64",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  10,
		Correlate: Correlate,
	})
}
