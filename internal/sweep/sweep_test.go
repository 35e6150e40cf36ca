package sweep

import (
	"errors"
	"testing"
)

func TestGenerateLorenzRange(t *testing.T) {
	// The lorenz calibration sweep: 4 trajectories over rho in [0, 21].
	got, err := Generate(0.0, 21.0, 4, Float64)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	want := []float64{0.0, 7.0, 14.0, 21.0}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestGenerateProperties(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		count  int
	}{
		{"small", 0.0, 21.0, 7},
		{"large", 0.1, 5.0, 1024},
		{"negative range", -3.0, 3.0, 33},
		{"degenerate range", 2.5, 2.5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.lo, tt.hi, tt.count, Float64)
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("expected length %d, got %d", tt.count, len(got))
			}
			if got[0] != tt.lo {
				t.Errorf("first value: expected %v, got %v", tt.lo, got[0])
			}
			if got[len(got)-1] != tt.hi {
				t.Errorf("last value: expected %v, got %v", tt.hi, got[len(got)-1])
			}
			for i := 1; i < len(got); i++ {
				if got[i] < got[i-1] {
					t.Errorf("not monotonic at %d: %v < %v", i, got[i], got[i-1])
				}
			}
		})
	}
}

func TestGenerateSingleValue(t *testing.T) {
	got, err := Generate(0.0, 21.0, 1, Float64)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(got) != 1 || got[0] != 0.0 {
		t.Errorf("expected [0], got %v", got)
	}
}

func TestGenerateInvalidCount(t *testing.T) {
	for _, count := range []int{0, -1, -128} {
		_, err := Generate(0.0, 1.0, count, Float64)
		if err == nil {
			t.Fatalf("count %d: expected error", count)
		}
		if !errors.Is(err, ErrInvalidCount) {
			t.Errorf("count %d: expected ErrInvalidCount, got %v", count, err)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := Generate(0.1, 5.0, 257, Float32)
	b, _ := Generate(0.1, 5.0, 257, Float32)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("value[%d] differs between identical calls", i)
		}
	}
}

func TestGenerateFloat32Precision(t *testing.T) {
	got, err := Generate(0.1, 5.0, 8, Float32)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for i, v := range got {
		if float64(float32(v)) != v {
			t.Errorf("value[%d] = %v not representable in float32", i, v)
		}
	}
}

func TestParsePrecision(t *testing.T) {
	if p, err := ParsePrecision("float32"); err != nil || p != Float32 {
		t.Errorf("float32: got %v, %v", p, err)
	}
	if p, err := ParsePrecision(""); err != nil || p != Float64 {
		t.Errorf("empty: got %v, %v", p, err)
	}
	if _, err := ParsePrecision("float16"); err == nil {
		t.Error("expected error for float16")
	}
}
