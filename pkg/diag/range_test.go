package diag

import "testing"

func TestRangings(t *testing.T) {
	if got := PointRanging(3); got != (Ranging{3, 3}) {
		t.Errorf("PointRanging(3) -> %v", got)
	}
	if got := MixedRanging(Ranging{1, 2}, Ranging{5, 9}); got != (Ranging{1, 9}) {
		t.Errorf("MixedRanging -> %v", got)
	}
}
