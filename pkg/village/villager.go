// Package village implements the village state machine: villager
// records with a strict alive/dead lifecycle, label lookups, and the
// nightly murderer resolution.
package village

import "fmt"

// Label identifies a villager. Labels are assigned once at generation
// from the range 1..total and survive death. They fit in a byte so a
// mini's register can address any villager.
type Label byte

// Kind is a villager's category.
type Kind int

const (
	Normal Kind = iota
	// Strong villagers survive one attack before becoming killable.
	Strong
	// Afraid villagers destroy any mini that visits them.
	Afraid
	Murderer
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Strong:
		return "strong"
	case Afraid:
		return "afraid"
	case Murderer:
		return "murderer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// LivingVillager is a villager that has not been killed. The only way
// to obtain a DeadVillager is Kill, which consumes the living record;
// there is no reverse conversion.
type LivingVillager struct {
	label Label
	kind  Kind

	// resistanceUsed is only meaningful for Strong villagers: false
	// means the one-shot resistance is still available.
	resistanceUsed bool
}

// NewLivingVillager creates a living villager. Strong villagers start
// with their resistance unused.
func NewLivingVillager(kind Kind, label Label) LivingVillager {
	return LivingVillager{label: label, kind: kind}
}

func (v LivingVillager) Label() Label { return v.label }
func (v LivingVillager) Kind() Kind   { return v.kind }

// ResistanceUsed reports whether a Strong villager has already spent
// its one-shot resistance. Always false for other kinds.
func (v LivingVillager) ResistanceUsed() bool { return v.resistanceUsed }

// Kill consumes the living record and produces the dead one. The
// label and kind carry over.
func (v LivingVillager) Kill() DeadVillager {
	return DeadVillager{label: v.label, kind: v.kind}
}

// DeadVillager is a villager after the one-way Living→Dead transition.
type DeadVillager struct {
	label Label
	kind  Kind
}

func (v DeadVillager) Label() Label { return v.label }
func (v DeadVillager) Kind() Kind   { return v.kind }
