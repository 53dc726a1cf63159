package profile

import (
	"slices"
	"testing"
)

func TestProfiler_Start_NoMode(t *testing.T) {
	t.Parallel()

	stop := Profiler{}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("expected a no-op stopper, got %T", stop)
	}

	stop.Stop()
}

func TestProfiler_Start_UnknownMode(t *testing.T) {
	t.Parallel()

	if slices.Contains(Modes(), "bogus") {
		t.Fatal("unexpected mode")
	}

	stop := Profiler{Mode: "bogus"}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("expected a no-op stopper, got %T", stop)
	}
}

func TestModes_Sorted(t *testing.T) {
	t.Parallel()

	if !slices.IsSorted(Modes()) {
		t.Errorf("expected sorted modes, got %v", Modes())
	}
}
