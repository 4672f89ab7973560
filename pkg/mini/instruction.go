// Package mini implements the mini virtual machine: a single-use
// agent that executes a small instruction program against a village,
// one instruction at a time, off an internal stack.
package mini

import "fmt"

// Op identifies an instruction. The set is closed; the parser is the
// only producer of instruction sequences.
type Op int

const (
	// Actions
	OpPostRegister Op = iota // append the register value to the log
	OpPostFlare              // append a flare to the log
	OpDetonate               // kill at the register value, destroy self
	OpVisit                  // travel to the label in the register

	// Register operations
	OpIncrement // register+1; fatal at 255
	OpDecrement // register-1; fatal at 0
	OpSetValue  // register = Value

	// Conditions: push Body when the predicate holds
	OpIfAlive      // a living villager is at the current location
	OpIfDead       // a dead villager is at the current location
	OpIfRegisterEq // register == Value

	// Control
	OpRepeat // run Body up to Value more times
	OpBreak  // unwind to the innermost enclosing repeat
)

func (op Op) String() string {
	switch op {
	case OpPostRegister:
		return "post"
	case OpPostFlare:
		return "flare"
	case OpDetonate:
		return "detonate"
	case OpVisit:
		return "visit"
	case OpIncrement:
		return "incr"
	case OpDecrement:
		return "decr"
	case OpSetValue:
		return "set"
	case OpIfAlive:
		return "if alive"
	case OpIfDead:
		return "if dead"
	case OpIfRegisterEq:
		return "if eq"
	case OpRepeat:
		return "repeat"
	case OpBreak:
		return "break"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Instruction is one unit of work. Value is the operand for OpSetValue
// and OpIfRegisterEq, and the remaining iteration count for OpRepeat.
// Body is the nested block of conditions and repeats, stored in source
// order; it is never mutated after parse.
type Instruction struct {
	Op    Op
	Value byte
	Body  []Instruction
}

// Convenience constructors, mostly for tests and hand-built programs.

func PostRegister() Instruction   { return Instruction{Op: OpPostRegister} }
func PostFlare() Instruction      { return Instruction{Op: OpPostFlare} }
func Detonate() Instruction       { return Instruction{Op: OpDetonate} }
func Visit() Instruction          { return Instruction{Op: OpVisit} }
func Increment() Instruction      { return Instruction{Op: OpIncrement} }
func Decrement() Instruction      { return Instruction{Op: OpDecrement} }
func SetValue(v byte) Instruction { return Instruction{Op: OpSetValue, Value: v} }
func Break() Instruction          { return Instruction{Op: OpBreak} }

func IfAlive(body ...Instruction) Instruction {
	return Instruction{Op: OpIfAlive, Body: body}
}

func IfDead(body ...Instruction) Instruction {
	return Instruction{Op: OpIfDead, Body: body}
}

func IfRegisterEq(v byte, body ...Instruction) Instruction {
	return Instruction{Op: OpIfRegisterEq, Value: v, Body: body}
}

func Repeat(iterations byte, body ...Instruction) Instruction {
	return Instruction{Op: OpRepeat, Value: iterations, Body: body}
}

// EventType tags a log entry.
type EventType int

const (
	EventPostedRegister EventType = iota
	EventPostedFlare
	EventFinished
)

// Event is one append-only log entry. Value is only set for
// EventPostedRegister.
type Event struct {
	Type  EventType
	Value byte
}

func (e Event) String() string {
	switch e.Type {
	case EventPostedRegister:
		return fmt.Sprintf("posted register %d", e.Value)
	case EventPostedFlare:
		return "posted flare"
	case EventFinished:
		return "finished"
	default:
		return fmt.Sprintf("event(%d)", int(e.Type))
	}
}

// PostedRegister builds a register report event.
func PostedRegister(v byte) Event { return Event{Type: EventPostedRegister, Value: v} }

// Flare is the flare event.
var Flare = Event{Type: EventPostedFlare}

// Finished is the terminal event appended after a clean run.
var Finished = Event{Type: EventFinished}
