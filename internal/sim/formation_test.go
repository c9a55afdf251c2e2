package sim

import "testing"

func TestLineOffsets_SymmetricAroundZero(t *testing.T) {
	for _, count := range []int{1, 4, 5} {
		offsets := lineOffsets(count, 11)
		sum := 0.0
		for _, o := range offsets {
			sum += o
		}
		if sum != 0 {
			t.Fatalf("count %d: offsets sum to %.2f, want 0", count, sum)
		}
	}
}

func TestLineOffsets_Spacing(t *testing.T) {
	offsets := lineOffsets(5, 12)
	for i := 1; i < len(offsets); i++ {
		if gap := offsets[i] - offsets[i-1]; gap != 12 {
			t.Fatalf("gap %d = %.2f, want 12", i, gap)
		}
	}
	if offsets[0] != -24 || offsets[4] != 24 {
		t.Fatalf("ends = %.1f..%.1f, want -24..24", offsets[0], offsets[4])
	}
}

func TestLineSlots_DepthAndCentre(t *testing.T) {
	slots := lineSlots(3, 10, 5, -30)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	for i, s := range slots {
		if s.Z != -30 || s.Y != 0 {
			t.Fatalf("slot %d at %+v, want z=-30 y=0", i, s)
		}
	}
	if slots[1].X != 5 {
		t.Fatalf("middle slot x = %.1f, want centre 5", slots[1].X)
	}
}
