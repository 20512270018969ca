package containers

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		name           string
		f, low, high   int64
		want           int64
	}{
		{"within range", 5, 0, 10, 5},
		{"below low", -3, 0, 10, 0},
		{"above high", 15, 0, 10, 10},
		{"equal to low", 0, 0, 10, 0},
		{"equal to high", 10, 0, 10, 10},
		{"decrement clamped at zero from zero", -1, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.f, tc.low, tc.high); got != tc.want {
				t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", tc.f, tc.low, tc.high, got, tc.want)
			}
		})
	}
}
