package village

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Status is the village's game status. It is monotonic: once the
// status leaves Running it never changes again.
type Status int

const (
	Running Status = iota
	VillagersWon
	MurderersWon
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case VillagersWon:
		return "villagers won"
	case MurderersWon:
		return "murderers won"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// NoSuchVillagerError reports an operation against a label that is not
// in the required state (already dead, or never generated).
type NoSuchVillagerError struct {
	Label Label
}

func (e NoSuchVillagerError) Error() string {
	return fmt.Sprintf("villager %d in incorrect state or does not exist", e.Label)
}

// Counts is the per-kind composition of a generated village.
type Counts struct {
	Normal    int
	Strong    int
	Afraid    int
	Murderers int
}

// Total returns the number of villagers the counts describe.
func (c Counts) Total() int {
	return c.Normal + c.Strong + c.Afraid + c.Murderers
}

// LayoutEntry is one villager in the original generated roster.
type LayoutEntry struct {
	Label Label
	Kind  Kind
}

// Village owns the living and dead villager collections. A label
// appears in at most one of the two. Both the mini VM and night
// resolution mutate it, strictly one at a time.
type Village struct {
	living []LivingVillager
	dead   []DeadVillager

	// layout is the original roster, sorted by label, snapshotted
	// before play begins. Used only for end-of-game reporting.
	layout []LayoutEntry

	status   Status
	maxLabel Label
	rng      *rand.Rand
}

// New generates a village with the requested composition. Each
// villager gets a unique label drawn from a shuffled permutation of
// 1..total. The rng drives both the shuffle and night resolution.
func New(counts Counts, rng *rand.Rand) (*Village, error) {
	for _, n := range []int{counts.Normal, counts.Strong, counts.Afraid, counts.Murderers} {
		if n < 0 {
			return nil, errors.New("villager counts must be non-negative")
		}
	}
	total := counts.Total()
	if total == 0 {
		return nil, errors.New("village must have at least one villager")
	}
	if total > math.MaxUint8 {
		return nil, fmt.Errorf("village too large: %d villagers, max %d", total, math.MaxUint8)
	}

	labels := make([]Label, total)
	for i := range labels {
		labels[i] = Label(i + 1)
	}
	rng.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})

	villagers := make([]LivingVillager, 0, total)
	for _, gen := range []struct {
		kind  Kind
		count int
	}{
		{Normal, counts.Normal},
		{Strong, counts.Strong},
		{Afraid, counts.Afraid},
		{Murderer, counts.Murderers},
	} {
		for i := 0; i < gen.count; i++ {
			villagers = append(villagers, NewLivingVillager(gen.kind, labels[len(villagers)]))
		}
	}

	return NewDeterministic(villagers, rng), nil
}

// NewDeterministic builds a village from a pre-labeled roster,
// bypassing the shuffle. The rng is still used for night resolution.
func NewDeterministic(villagers []LivingVillager, rng *rand.Rand) *Village {
	living := make([]LivingVillager, len(villagers))
	copy(living, villagers)

	layout := make([]LayoutEntry, 0, len(living))
	var maxLabel Label
	for _, v := range living {
		layout = append(layout, LayoutEntry{Label: v.Label(), Kind: v.Kind()})
		if v.Label() > maxLabel {
			maxLabel = v.Label()
		}
	}
	sort.Slice(layout, func(i, j int) bool { return layout[i].Label < layout[j].Label })

	return &Village{
		living:   living,
		dead:     make([]DeadVillager, 0, len(living)),
		layout:   layout,
		status:   Running,
		maxLabel: maxLabel,
		rng:      rng,
	}
}

// livingIndex returns the index of the living villager with the given
// label, or -1.
func (v *Village) livingIndex(label Label) int {
	for i, villager := range v.living {
		if villager.Label() == label {
			return i
		}
	}
	return -1
}

// Living returns the living villager with the given label, if any.
func (v *Village) Living(label Label) (LivingVillager, bool) {
	if i := v.livingIndex(label); i >= 0 {
		return v.living[i], true
	}
	return LivingVillager{}, false
}

// Dead returns the dead villager with the given label, if any.
func (v *Village) Dead(label Label) (DeadVillager, bool) {
	for _, villager := range v.dead {
		if villager.Label() == label {
			return villager, true
		}
	}
	return DeadVillager{}, false
}

// Exists reports whether the label was ever generated, living or dead.
func (v *Village) Exists(label Label) bool {
	if _, ok := v.Living(label); ok {
		return true
	}
	_, ok := v.Dead(label)
	return ok
}

// KindOf returns the kind of the villager with the given label,
// checking the living collection first, then the dead.
func (v *Village) KindOf(label Label) (Kind, error) {
	if villager, ok := v.Living(label); ok {
		return villager.Kind(), nil
	}
	if villager, ok := v.Dead(label); ok {
		return villager.Kind(), nil
	}
	return 0, NoSuchVillagerError{Label: label}
}

// Kill moves the villager with the given label from the living
// collection to the dead one. It fails if the label is not currently
// living, leaving both collections unchanged.
func (v *Village) Kill(label Label) error {
	i := v.livingIndex(label)
	if i < 0 {
		return NoSuchVillagerError{Label: label}
	}
	villager := v.living[i]
	v.living = append(v.living[:i], v.living[i+1:]...)
	v.dead = append(v.dead, villager.Kill())
	return nil
}

// Status returns the current game status.
func (v *Village) Status() Status { return v.status }

// Layout returns the original generated roster, sorted by label.
func (v *Village) Layout() []LayoutEntry {
	layout := make([]LayoutEntry, len(v.layout))
	copy(layout, v.layout)
	return layout
}

// LivingCount returns the number of villagers still alive.
func (v *Village) LivingCount() int { return len(v.living) }

// updateStatus recomputes the game status after a night. Terminal
// statuses are sticky.
func (v *Village) updateStatus() {
	if v.status != Running {
		return
	}

	murderers := 0
	for _, villager := range v.living {
		if villager.Kind() == Murderer {
			murderers++
		}
	}

	switch {
	case murderers == 0:
		v.status = VillagersWon
	case murderers == len(v.living):
		v.status = MurderersWon
	}
}
