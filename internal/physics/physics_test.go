package physics

import (
	"math"
	"testing"

	"github.com/san-kum/odebench/internal/dynamo"
)

func TestLorenzDerive(t *testing.T) {
	l := NewLorenz(10.0, 8.0/3.0, 28.0)

	// At (1,1,1): dx=0, dy=1*(28-1)-1=26, dz=1-8/3
	d := l.Derive(dynamo.State{1, 1, 1}, 0)
	want := dynamo.State{0, 26, 1 - 8.0/3.0}
	for i := range want {
		if math.Abs(d[i]-want[i]) > 1e-12 {
			t.Errorf("derivative[%d]: expected %v, got %v", i, want[i], d[i])
		}
	}
}

func TestLorenzFixedPointAtOrigin(t *testing.T) {
	l := NewLorenz(10.0, 8.0/3.0, 21.0)
	d := l.Derive(dynamo.State{0, 0, 0}, 0)
	for i, v := range d {
		if v != 0 {
			t.Errorf("origin is a fixed point; derivative[%d] = %v", i, v)
		}
	}
}

func TestVanDerPolDerive(t *testing.T) {
	v := NewVanDerPol(1.0)

	// At (2,0): dx=0, dy=-2 (the benchmark's initial state)
	d := v.Derive(dynamo.State{2, 0}, 0)
	if d[0] != 0 || d[1] != -2 {
		t.Errorf("expected (0, -2), got (%v, %v)", d[0], d[1])
	}
}

func TestRosslerDerive(t *testing.T) {
	r := NewRossler(0.2, 0.2, 5.7)

	d := r.Derive(dynamo.State{1, 1, 1}, 0)
	want := dynamo.State{-2, 1.2, 0.2 + (1 - 5.7)}
	for i := range want {
		if math.Abs(d[i]-want[i]) > 1e-12 {
			t.Errorf("derivative[%d]: expected %v, got %v", i, want[i], d[i])
		}
	}
}

func TestStateDims(t *testing.T) {
	tests := []struct {
		sys  dynamo.System
		want int
	}{
		{NewLorenz(10, 8.0/3.0, 21), 3},
		{NewVanDerPol(1), 2},
		{NewRossler(0.2, 0.2, 5.7), 3},
	}
	for _, tt := range tests {
		if got := tt.sys.StateDim(); got != tt.want {
			t.Errorf("expected dim %d, got %d", tt.want, got)
		}
	}
}
