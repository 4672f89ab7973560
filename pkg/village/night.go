package village

// NightOutcome is what a single murderer achieved during one night.
type NightOutcome int

const (
	// Missed means the chosen direction held no living non-murderer.
	Missed NightOutcome = iota
	// Killed means the target died.
	Killed
	// Resisted means the target was Strong and spent its one-shot
	// resistance instead of dying.
	Resisted
)

func (o NightOutcome) String() string {
	switch o {
	case Missed:
		return "missed"
	case Killed:
		return "killed"
	case Resisted:
		return "resisted"
	default:
		return "unknown"
	}
}

// NightEvent records one murderer's attempt.
type NightEvent struct {
	Murderer Label
	Outcome  NightOutcome

	// Target is set unless the outcome is Missed.
	Target Label
}

// NightReport is the full account of one night, in resolution order.
type NightReport []NightEvent

// Deaths returns the labels of villagers killed during the night.
func (r NightReport) Deaths() []Label {
	var deaths []Label
	for _, ev := range r {
		if ev.Outcome == Killed {
			deaths = append(deaths, ev.Target)
		}
	}
	return deaths
}

// ResolveNight lets every living murderer attempt one kill, then
// recomputes the game status. For each murderer the nearest living
// non-murderer is found in each label direction, and one direction is
// chosen with probability 0.5 regardless of whether it holds a
// candidate; a murderer whose chosen direction is empty wastes its
// turn. Strong targets with unused resistance survive and have the
// flag flipped instead.
func (v *Village) ResolveNight() NightReport {
	// Snapshot the acting murderers before any mutation so kills
	// during resolution cannot reorder or skip turns.
	var murderers []Label
	for _, villager := range v.living {
		if villager.Kind() == Murderer {
			murderers = append(murderers, villager.Label())
		}
	}

	report := make(NightReport, 0, len(murderers))
	for _, murderer := range murderers {
		ev := NightEvent{Murderer: murderer, Outcome: Missed}

		var target Label
		var found bool
		if v.rng.Intn(2) == 0 {
			target, found = v.nearestTargetAbove(murderer)
		} else {
			target, found = v.nearestTargetBelow(murderer)
		}

		if found {
			ev.Target = target
			if v.absorbAttack(target) {
				ev.Outcome = Resisted
			} else {
				_ = v.Kill(target) // isTarget confirmed it is living
				ev.Outcome = Killed
			}
		}

		report = append(report, ev)
	}

	v.updateStatus()
	return report
}

// nearestTargetAbove scans ascending labels for the closest living
// non-murderer above the given label.
func (v *Village) nearestTargetAbove(from Label) (Label, bool) {
	for label := from + 1; label <= v.maxLabel && label > from; label++ {
		if v.isTarget(label) {
			return label, true
		}
	}
	return 0, false
}

// nearestTargetBelow scans descending labels for the closest living
// non-murderer below the given label.
func (v *Village) nearestTargetBelow(from Label) (Label, bool) {
	for label := from - 1; label >= 1 && label < from; label-- {
		if v.isTarget(label) {
			return label, true
		}
	}
	return 0, false
}

func (v *Village) isTarget(label Label) bool {
	villager, ok := v.Living(label)
	return ok && villager.Kind() != Murderer
}

// absorbAttack reports whether the attack was absorbed by an unused
// Strong resistance, flipping the flag to used if so.
func (v *Village) absorbAttack(label Label) bool {
	i := v.livingIndex(label)
	if i < 0 {
		return false
	}
	if v.living[i].kind == Strong && !v.living[i].resistanceUsed {
		v.living[i].resistanceUsed = true
		return true
	}
	return false
}
