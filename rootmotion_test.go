package spritestudio

import (
	"errors"
	"testing"
)

func TestRootMotion(t *testing.T) {
	b := NewAnimationBuilder(1, 10, 10)
	b.Part(0).PosX.Add(0, InterpolationLinear, 4)
	b.Part(0).PosX.Add(8, InterpolationLinear, 12)
	b.Part(0).PosY.Add(0, InterpolationStep, 1)
	b.Part(0).PosY.Add(5, InterpolationStep, -3)
	anim := b.Build()

	tests := []struct {
		name    string
		prev    int
		hasPrev bool
		cur     int
		wantX   float64
		wantY   float64
	}{
		{"no previous frame measures from origin", 0, false, 0, 4, 1},
		{"same frame", 3, true, 3, 0, 0},
		{"forward", 2, true, 6, 4, -4},
		{"backwards after a loop", 9, true, 1, -7, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy, err := RootMotion(anim, tt.prev, tt.hasPrev, tt.cur)
			if err != nil {
				t.Fatal(err)
			}
			assertNearF(t, "dx", dx, tt.wantX)
			assertNearF(t, "dy", dy, tt.wantY)
		})
	}
}

func TestRootMotionUnsupportedInterpolation(t *testing.T) {
	b := NewAnimationBuilder(1, 10, 10)
	b.Part(0).PosX.Add(0, InterpolationBezier, 0)
	b.Part(0).PosX.Add(8, InterpolationLinear, 8)
	if _, _, err := RootMotion(b.Build(), 0, true, 4); !errors.Is(err, ErrUnsupportedInterpolation) {
		t.Errorf("err = %v, want ErrUnsupportedInterpolation", err)
	}
}
