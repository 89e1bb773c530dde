package capability

import "testing"

func TestEligible(t *testing.T) {
	areas := []string{"water", "roads"}

	if !Eligible(areas, "water") {
		t.Error("expected eligibility for declared area")
	}
	if Eligible(areas, "parks") {
		t.Error("expected no eligibility for foreign category")
	}
	if Eligible(nil, "water") {
		t.Error("empty focus areas must never be eligible")
	}
}

func TestBatches(t *testing.T) {
	areas := []string{"a", "b", "c", "d", "e"}

	got := Batches(areas, 2)
	if len(got) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(got))
	}
	if len(got[0]) != 2 || len(got[1]) != 2 || len(got[2]) != 1 {
		t.Errorf("expected sizes [2 2 1], got %v", got)
	}

	total := 0
	for _, b := range got {
		total += len(b)
	}
	if total != len(areas) {
		t.Errorf("batches must cover all areas, covered %d of %d", total, len(areas))
	}

	if Batches(nil, 2) != nil {
		t.Error("no areas must yield no batches")
	}
	if Batches(areas, 0) != nil {
		t.Error("non-positive max must yield no batches")
	}
	if got := Batches(areas, 10); len(got) != 1 || len(got[0]) != 5 {
		t.Errorf("max above len must yield one batch, got %v", got)
	}
}
