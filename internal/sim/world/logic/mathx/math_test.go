package mathx

import "testing"

func TestModNeverNegative(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 10, 0},
		{7, 10, 7},
		{10, 10, 0},
		{-1, 10, 9},
		{-10, 10, 0},
		{-11, 10, 9},
		{-16, 12, 8},
	}
	for _, c := range cases {
		if got := Mod(c.a, c.b); got != c.want {
			t.Fatalf("Mod(%d,%d)=%d want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestFloorDivMatchesMod(t *testing.T) {
	for a := -50; a <= 50; a++ {
		for _, b := range []int{1, 3, 10, 16} {
			q := FloorDiv(a, b)
			if q*b+Mod(a, b) != a {
				t.Fatalf("FloorDiv(%d,%d)=%d inconsistent with Mod=%d", a, b, q, Mod(a, b))
			}
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 255); got != 0 {
		t.Fatalf("Clamp low: got %d", got)
	}
	if got := Clamp(300, 0, 255); got != 255 {
		t.Fatalf("Clamp high: got %d", got)
	}
	if got := Clamp(64, 0, 255); got != 64 {
		t.Fatalf("Clamp mid: got %d", got)
	}
}
