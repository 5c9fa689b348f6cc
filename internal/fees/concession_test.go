package fees

import (
	"testing"

	"github.com/Spok95/school-admin/internal/models"
)

func TestResolveConcession_MostRecentWins(t *testing.T) {
	list := []models.Concession{
		{ID: 1, StartMonth: "2024-01", Mode: models.ConcessionFixed, Amount: 500},
		{ID: 2, StartMonth: "2024-06", Mode: models.ConcessionFixed, Amount: 800},
	}
	got := ResolveConcession(list, "2024-07")
	if got == nil || got.ID != 2 {
		t.Fatalf("want concession 2 (startMonth 2024-06), got %+v", got)
	}
}

func TestResolveConcession_WindowAndNone(t *testing.T) {
	list := []models.Concession{
		{ID: 1, StartMonth: "2024-01", EndMonth: "2024-04", Mode: models.ConcessionFixed, Amount: 500},
	}
	if got := ResolveConcession(list, "2024-04"); got != nil {
		t.Fatalf("endMonth is exclusive, want nil for 2024-04, got %+v", got)
	}
	if got := ResolveConcession(list, "2024-03"); got == nil {
		t.Fatal("2024-03 is inside [2024-01, 2024-04), want a match")
	}
	if got := ResolveConcession(list, "2023-12"); got != nil {
		t.Fatalf("month before startMonth must not match, got %+v", got)
	}
	if got := ResolveConcession(nil, "2024-01"); got != nil {
		t.Fatalf("no concessions, want nil, got %+v", got)
	}
}

func TestApplyConcession(t *testing.T) {
	fixed := &models.Concession{Mode: models.ConcessionFixed, Amount: 1200}
	pct := &models.Concession{Mode: models.ConcessionPercentage, Amount: 25}
	big := &models.Concession{Mode: models.ConcessionFixed, Amount: 9999}

	if got := ApplyConcession(5000, fixed); got != 3800 {
		t.Errorf("fixed: got %v, want 3800", got)
	}
	if got := ApplyConcession(5000, pct); got != 3750 {
		t.Errorf("percentage: got %v, want 3750", got)
	}
	if got := ApplyConcession(5000, big); got != 0 {
		t.Errorf("clamp: got %v, want 0", got)
	}
	if got := ApplyConcession(5000, nil); got != 5000 {
		t.Errorf("nil: got %v, want 5000", got)
	}
}
