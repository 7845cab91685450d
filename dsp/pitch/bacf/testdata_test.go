package bacf

import (
	"testing"

	"github.com/cwbudde/algo-tuner/internal/testutil"
)

const middleC = testutil.MiddleC

func mustConfig(t testing.TB, opts ...Option) Config {
	t.Helper()
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}
