package arm

import (
	"errors"
	"math"
	"testing"

	"github.com/neoaces/arm/internal/dynamo"
	"github.com/neoaces/arm/internal/motor"
)

func TestLinkMoment(t *testing.T) {
	tests := []struct {
		mass, length float32
		want         float32
	}{
		{0.05, 0.2, 0.0006667},
		{0.5, 0.2, 0.0066667},
		{1, 1, 0.3333333},
	}

	for _, tt := range tests {
		l, err := NewLink(tt.mass, tt.length)
		if err != nil {
			t.Fatalf("NewLink(%v, %v): %v", tt.mass, tt.length, err)
		}
		if got := l.Moment(); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("Moment(%v, %v) = %v, want %v", tt.mass, tt.length, got, tt.want)
		}
	}
}

func TestLinkSettersKeepPriorValue(t *testing.T) {
	l, _ := NewLink(0.05, 0.2)

	nan := float32(math.NaN())
	for _, bad := range []float32{0, -1, nan} {
		if err := l.SetLength(bad); !errors.Is(err, dynamo.ErrInvalidLength) {
			t.Errorf("SetLength(%v) err = %v", bad, err)
		}
		if err := l.SetMass(bad); !errors.Is(err, dynamo.ErrInvalidMass) {
			t.Errorf("SetMass(%v) err = %v", bad, err)
		}
	}
	if l.Length() != 0.2 || l.Mass() != 0.05 {
		t.Errorf("link changed to %v kg, %v m", l.Mass(), l.Length())
	}
}

func TestCoupleDeriveAtRest(t *testing.T) {
	j, err := NewJoint(dynamo.Vec2{}, motor.Default(), 32)
	if err != nil {
		t.Fatal(err)
	}
	l, _ := NewLink(0.05, 0.2)
	c := NewCouple(j, l)

	if got := c.Derive(0, 0); got != 0 {
		t.Errorf("Derive(0, 0) = %v, want 0", got)
	}
	if c.Alpha()(0, 10) != c.Derive(0, 10) {
		t.Error("Alpha and Derive disagree")
	}
}
