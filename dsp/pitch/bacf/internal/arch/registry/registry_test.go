package registry

import (
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func TestRegistryLookupPrefersHigherPriority(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(OpEntry{Name: "word32", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(OpEntry{Name: "word64", SIMDLevel: cpu.SIMDSSE2, Priority: 10})

	entry := reg.Lookup(cpu.Features{HasSSE2: true})
	if entry == nil || entry.Name != "word64" {
		t.Fatalf("expected word64, got %#v", entry)
	}

	entry = reg.Lookup(cpu.Features{})
	if entry == nil || entry.Name != "word32" {
		t.Fatalf("expected word32, got %#v", entry)
	}
}

func TestRegistryLookupForceGeneric(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(OpEntry{Name: "word32", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(OpEntry{Name: "word64", SIMDLevel: cpu.SIMDNEON, Priority: 10})

	entry := reg.Lookup(cpu.Features{HasNEON: true, ForceGeneric: true})
	if entry == nil || entry.Name != "word32" {
		t.Fatalf("expected word32 with ForceGeneric, got %#v", entry)
	}
}

func TestRegistryLookupName(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(OpEntry{Name: "word32"})
	reg.Register(OpEntry{Name: "word64", Priority: 10})

	if e := reg.LookupName("word64"); e == nil || e.Name != "word64" {
		t.Fatalf("LookupName(word64) = %#v", e)
	}
	if e := reg.LookupName("missing"); e != nil {
		t.Fatalf("LookupName(missing) = %#v, want nil", e)
	}
}

func TestRegistryEmptyLookup(t *testing.T) {
	reg := &OpRegistry{}
	if e := reg.Lookup(cpu.Features{}); e != nil {
		t.Fatalf("Lookup on empty registry = %#v, want nil", e)
	}

	reg.Register(OpEntry{Name: "word32"})
	reg.Reset()
	if n := len(reg.ListEntries()); n != 0 {
		t.Fatalf("entries after Reset = %d, want 0", n)
	}
}
