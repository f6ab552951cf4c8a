package onboarding

import "testing"

func TestStepsNoAssignments(t *testing.T) {
	steps := Steps(nil)
	if len(steps) != 5 {
		t.Fatalf("len(steps) = %d, want 5 (4 prefix + completion)", len(steps))
	}
	if steps[0].Key != "welcome" {
		t.Errorf("first step = %s, want welcome", steps[0].Key)
	}
	if steps[len(steps)-1].Key != "completion" {
		t.Errorf("last step = %s, want completion", steps[len(steps)-1].Key)
	}
}

func TestStepsWithBosiet(t *testing.T) {
	steps := Steps([]string{"BOSIET"})
	if len(steps) != 6 {
		t.Fatalf("len(steps) = %d, want 6 (4 prefix + BOSIET + completion)", len(steps))
	}
	if steps[4].Key != "bosiet" {
		t.Errorf("step 5 = %s, want bosiet", steps[4].Key)
	}
}

func TestStepsOrderIndependentOfAssignmentOrder(t *testing.T) {
	a := Steps([]string{"CSER", "BOSIET", "FIRE_WATCH"})
	b := Steps([]string{"BOSIET", "FIRE_WATCH", "CSER"})
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			t.Fatalf("step %d differs: %s vs %s", i, a[i].Key, b[i].Key)
		}
	}
	if a[4].Key != "bosiet" || a[5].Key != "fire_watch" || a[6].Key != "cser" {
		t.Errorf("conditional steps out of canonical order: %v", a)
	}
}

func TestStepsIgnoresUnknownModules(t *testing.T) {
	steps := Steps([]string{"SCUBA"})
	if len(steps) != 5 {
		t.Fatalf("len(steps) = %d, unknown module must add no steps", len(steps))
	}
}

func TestNextAdvancesAndCaps(t *testing.T) {
	steps := Steps(nil)
	if got := Next(steps, 1); got != 2 {
		t.Errorf("Next(1) = %d, want 2", got)
	}
	if got := Next(steps, len(steps)); got != len(steps) {
		t.Errorf("Next at end = %d, want %d", got, len(steps))
	}
}

func TestPreviousFloorsAtOne(t *testing.T) {
	if got := Previous(3); got != 2 {
		t.Errorf("Previous(3) = %d, want 2", got)
	}
	if got := Previous(1); got != 1 {
		t.Errorf("Previous(1) = %d, want 1", got)
	}
}

func TestCurrentClamps(t *testing.T) {
	steps := Steps(nil)
	if Current(steps, 0).Key != "welcome" {
		t.Error("cursor below range must clamp to first step")
	}
	if Current(steps, 99).Key != "completion" {
		t.Error("cursor above range must clamp to last step")
	}
}
