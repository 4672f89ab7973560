package village

import "testing"

// maxNights bounds the probabilistic tests: each night the murderer
// picks the populated direction with p=0.5, so 200 nights failing to
// land is not a flaky test, it is a broken implementation.
const maxNights = 200

func resolveUntilTerminal(t *testing.T, v *Village) {
	t.Helper()
	for i := 0; i < maxNights; i++ {
		if v.Status() != Running {
			return
		}
		v.ResolveNight()
	}
	t.Fatalf("village still running after %d nights", maxNights)
}

func TestLoneNeighborIsEventuallyKilled(t *testing.T) {
	v := NewDeterministic(roster(Murderer, Normal), testRng())

	resolveUntilTerminal(t, v)

	if _, ok := v.Dead(2); !ok {
		t.Error("villager 2 should be dead")
	}
	if _, ok := v.Living(1); !ok {
		t.Error("the murderer should survive the nights")
	}
	if v.Status() != MurderersWon {
		t.Errorf("status = %s, want %s", v.Status(), MurderersWon)
	}
}

func TestNightReportOutcomes(t *testing.T) {
	v := NewDeterministic(roster(Murderer, Normal), testRng())

	killed := false
	for i := 0; i < maxNights && !killed; i++ {
		report := v.ResolveNight()
		if len(report) != 1 {
			t.Fatalf("report length = %d, want 1", len(report))
		}
		ev := report[0]
		if ev.Murderer != 1 {
			t.Fatalf("acting murderer = %d, want 1", ev.Murderer)
		}
		switch ev.Outcome {
		case Missed:
			// The empty downward direction was chosen; the turn is
			// wasted with no fallback.
			if _, ok := v.Living(2); !ok {
				t.Fatal("a missed night must not kill anyone")
			}
		case Killed:
			if ev.Target != 2 {
				t.Fatalf("target = %d, want 2", ev.Target)
			}
			killed = true
		case Resisted:
			t.Fatal("normal villagers cannot resist")
		}
	}
	if !killed {
		t.Fatalf("no kill in %d nights", maxNights)
	}
}

func TestStrongResistsOnceThenDies(t *testing.T) {
	v := NewDeterministic(roster(Murderer, Strong), testRng())

	resisted := false
	for i := 0; i < maxNights; i++ {
		report := v.ResolveNight()
		switch report[0].Outcome {
		case Resisted:
			if resisted {
				t.Fatal("resistance is one-shot, saw it twice")
			}
			resisted = true
			villager, ok := v.Living(2)
			if !ok {
				t.Fatal("villager 2 should survive the resisted attack")
			}
			if !villager.ResistanceUsed() {
				t.Fatal("resistance flag should be used after the attack")
			}
		case Killed:
			if !resisted {
				t.Fatal("strong villager died without spending resistance")
			}
			if _, ok := v.Dead(2); !ok {
				t.Fatal("villager 2 should be dead")
			}
			if v.Status() != MurderersWon {
				t.Fatalf("status = %s, want %s", v.Status(), MurderersWon)
			}
			return
		}
	}
	t.Fatalf("strong villager not killed in %d nights", maxNights)
}

func TestBothDirectionsAlwaysFindSomeone(t *testing.T) {
	v := NewDeterministic(roster(Normal, Murderer, Normal), testRng())

	report := v.ResolveNight()
	if len(report) != 1 {
		t.Fatalf("report length = %d, want 1", len(report))
	}
	if report[0].Outcome != Killed {
		t.Fatalf("outcome = %s, want %s (candidates on both sides)", report[0].Outcome, Killed)
	}
	if target := report[0].Target; target != 1 && target != 3 {
		t.Fatalf("target = %d, want 1 or 3", target)
	}
	if v.LivingCount() != 2 {
		t.Fatalf("living count = %d, want 2", v.LivingCount())
	}
}

func TestMurderersSkipEachOther(t *testing.T) {
	// The nearest non-murderer above murderer 1 is 3; murderer 2 is
	// never a candidate.
	v := NewDeterministic(roster(Murderer, Murderer, Normal), testRng())

	resolveUntilTerminal(t, v)

	if _, ok := v.Dead(3); !ok {
		t.Error("villager 3 should be dead")
	}
	for _, label := range []Label{1, 2} {
		if _, ok := v.Living(label); !ok {
			t.Errorf("murderer %d should still be alive", label)
		}
	}
	if v.Status() != MurderersWon {
		t.Errorf("status = %s, want %s", v.Status(), MurderersWon)
	}
}

func TestVillagersWinWithoutMurderers(t *testing.T) {
	v := NewDeterministic(roster(Normal, Strong), testRng())

	report := v.ResolveNight()
	if len(report) != 0 {
		t.Fatalf("report length = %d, want 0", len(report))
	}
	if v.Status() != VillagersWon {
		t.Errorf("status = %s, want %s", v.Status(), VillagersWon)
	}
}

func TestStatusIsMonotonic(t *testing.T) {
	v := NewDeterministic(roster(Murderer, Normal), testRng())

	resolveUntilTerminal(t, v)
	if v.Status() != MurderersWon {
		t.Fatalf("status = %s, want %s", v.Status(), MurderersWon)
	}

	// Once terminal, nothing moves the status again.
	v.ResolveNight()
	if v.Status() != MurderersWon {
		t.Errorf("status changed after terminal: %s", v.Status())
	}
}

func TestStatusStaysRunningMidGame(t *testing.T) {
	v := NewDeterministic(roster(Murderer, Normal, Normal, Normal, Normal, Normal), testRng())

	v.ResolveNight()
	if v.Status() != Running {
		t.Errorf("status = %s, want %s", v.Status(), Running)
	}
}
