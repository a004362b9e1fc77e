package align

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/gpu-layout/errors"
)

func TestTo(t *testing.T) {
	tests := []struct {
		name string
		v, a uint32
		want uint32
	}{
		{"zero", 0, 16, 0},
		{"already aligned", 32, 16, 32},
		{"round up", 20, 16, 32},
		{"one byte align", 7, 1, 7},
		{"vec3 to vec4 footprint", 12, 16, 16},
		{"non power of two", 10, 12, 12},
		{"f64 column", 24, 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := To(tt.v, tt.a)
			if err != nil {
				t.Fatalf("To(%d, %d) error: %v", tt.v, tt.a, err)
			}
			if got != tt.want {
				t.Errorf("To(%d, %d) = %d, want %d", tt.v, tt.a, got, tt.want)
			}
		})
	}
}

func TestTo_ZeroAlignment(t *testing.T) {
	_, err := To(8, 0)
	if err == nil {
		t.Fatal("expected error for zero alignment")
	}
	if !stderrors.Is(err, &errors.Error{Kind: errors.KindInvalidAlignment}) {
		t.Errorf("got %v, want invalid_alignment", err)
	}
}

func TestTo_Overflow(t *testing.T) {
	_, err := To(math.MaxUint32, 16)
	if !stderrors.Is(err, &errors.Error{Kind: errors.KindOverflow}) {
		t.Errorf("got %v, want overflow", err)
	}
}

func TestSafeMul(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint32
		want   uint32
		wantOK bool
	}{
		{"zero * max", 0, math.MaxUint32, 0, true},
		{"max * zero", math.MaxUint32, 0, 0, true},
		{"small", 16, 4, 64, true},
		{"max * one", math.MaxUint32, 1, math.MaxUint32, true},
		{"overflow", math.MaxUint32, 2, 0, false},
		{"edge case overflow", 65536, 65537, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeMul(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Errorf("SafeMul(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SafeMul(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSafeAdd(t *testing.T) {
	if got, ok := SafeAdd(1, 2); !ok || got != 3 {
		t.Errorf("SafeAdd(1, 2) = %d, %v", got, ok)
	}
	if _, ok := SafeAdd(math.MaxUint32, 1); ok {
		t.Error("SafeAdd(max, 1) should overflow")
	}
}

func TestMax(t *testing.T) {
	if Max(8, 16) != 16 || Max(16, 8) != 16 || Max(4, 4) != 4 {
		t.Error("Max returned the wrong operand")
	}
}
