package mini

import (
	"fmt"
	"math"

	"github.com/mmLang/minim/pkg/village"
)

// Status is the mini's lifecycle state. Running is initial; the other
// three are mutually exclusive terminals and are never left.
type Status int

const (
	Running Status = iota
	// Done: the instruction stack ran dry.
	Done
	// Destroyed: detonated, met a murderer or afraid villager, or
	// overflowed/underflowed the register.
	Destroyed
	// Lost: visited a label that was never generated. The only way
	// Lost occurs.
	Lost
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	case Destroyed:
		return "destroyed"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Mini is a single-use agent. It is created fresh for every day,
// mutates the village while it runs, and is discarded after its log
// has been read.
type Mini struct {
	register byte
	location village.Label

	// stack holds the remaining work; the next instruction is at the
	// end. Repeat continuations on the stack double as loop frame
	// markers for Break.
	stack  []Instruction
	status Status
	log    []Event
}

// New builds a mini from a program in source order and immediately
// visits the starting label. A mini that starts on a murderer or on a
// nonexistent villager is terminal before its first instruction.
func New(start village.Label, program []Instruction, v *village.Village) *Mini {
	m := &Mini{
		stack:  make([]Instruction, 0, len(program)),
		status: Running,
	}
	m.pushBlock(program)
	m.visit(v, start)
	return m
}

// pushBlock pushes a source-ordered block so that popping from the
// end yields the block front to back.
func (m *Mini) pushBlock(block []Instruction) {
	for i := len(block) - 1; i >= 0; i-- {
		m.stack = append(m.stack, block[i])
	}
}

// visit moves the mini to a label and applies the encounter rules.
// A label that was never generated loses the mini. A corpse is always
// safe regardless of its original kind. A living murderer destroys
// the mini and erases its entire log; a living afraid villager
// destroys it but leaves the log; normal and strong villagers ignore
// it.
func (m *Mini) visit(v *village.Village, label village.Label) {
	if !v.Exists(label) {
		m.status = Lost
		return
	}
	m.location = label

	villager, ok := v.Living(label)
	if !ok {
		return
	}
	switch villager.Kind() {
	case village.Murderer:
		m.status = Destroyed
		m.log = nil
	case village.Afraid:
		m.status = Destroyed
	}
}

// Step pops and runs a single instruction. An empty stack completes
// the mini.
func (m *Mini) Step(v *village.Village) {
	if m.status != Running {
		return
	}
	if len(m.stack) == 0 {
		m.status = Done
		return
	}
	in := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]

	switch in.Op {
	case OpPostRegister:
		m.log = append(m.log, PostedRegister(m.register))

	case OpPostFlare:
		m.log = append(m.log, Flare)

	case OpDetonate:
		// A detonation against an absent or dead target is a no-op,
		// not a fault. The mini is spent either way.
		_ = v.Kill(village.Label(m.register))
		m.status = Destroyed

	case OpVisit:
		m.visit(v, village.Label(m.register))

	case OpIncrement:
		if m.register == math.MaxUint8 {
			m.status = Destroyed
		} else {
			m.register++
		}

	case OpDecrement:
		if m.register == 0 {
			m.status = Destroyed
		} else {
			m.register--
		}

	case OpSetValue:
		m.register = in.Value

	case OpIfAlive:
		if _, ok := v.Living(m.location); ok {
			m.pushBlock(in.Body)
		}

	case OpIfDead:
		if _, ok := v.Dead(m.location); ok {
			m.pushBlock(in.Body)
		}

	case OpIfRegisterEq:
		if m.register == in.Value {
			m.pushBlock(in.Body)
		}

	case OpRepeat:
		// An exhausted repeat is a no-op: the iteration count is the
		// language's only loop bound.
		if in.Value != 0 {
			m.stack = append(m.stack, Instruction{Op: OpRepeat, Value: in.Value - 1, Body: in.Body})
			m.pushBlock(in.Body)
		}

	case OpBreak:
		// Discard until the innermost repeat frame goes, or finish if
		// none encloses.
		for {
			if len(m.stack) == 0 {
				m.status = Done
				return
			}
			top := m.stack[len(m.stack)-1]
			m.stack = m.stack[:len(m.stack)-1]
			if top.Op == OpRepeat {
				return
			}
		}
	}
}

// Run executes steps until the mini leaves Running. Only a clean Done
// earns the Finished log entry.
func (m *Mini) Run(v *village.Village) {
	for m.status == Running {
		m.Step(v)
	}
	if m.status == Done {
		m.log = append(m.log, Finished)
	}
}

// Status returns the mini's lifecycle state.
func (m *Mini) Status() Status { return m.status }

// Register returns the working byte.
func (m *Mini) Register() byte { return m.register }

// Location returns the label the mini currently occupies.
func (m *Mini) Location() village.Label { return m.location }

// Log returns the event log accumulated so far.
func (m *Mini) Log() []Event {
	log := make([]Event, len(m.log))
	copy(log, m.log)
	return log
}
