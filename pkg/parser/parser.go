// Package parser turns .mm source text into mini instruction
// sequences using Participle v2. Grammar is defined as Go structs
// with tags.
package parser

import (
	"errors"
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/mmLang/minim/pkg/mini"
)

// ErrNotText reports a program file whose contents are not plain
// text (invalid UTF-8 or embedded NUL bytes).
var ErrNotText = errors.New("program is not plain text")

// AST node types - parsed from source, lowered to mini.Instruction
// for execution.

// Program is the top-level AST node.
type Program struct {
	Instructions []*Instr `@@*`
}

// Instr is a single statement.
type Instr struct {
	Post     bool   `  @"post"`
	Flare    bool   `| @"flare"`
	Detonate bool   `| @"detonate"`
	Visit    bool   `| @"visit"`
	Incr     bool   `| @("incr" | "increment")`
	Decr     bool   `| @("decr" | "decrement")`
	Set      *int   `| "set" @Number`
	If       *If    `| @@`
	Repeat   *Block `| "repeat" @@`
	Break    bool   `| @"break"`
}

// If: if alive { ... } | if dead { ... } | if eq N { ... }
type If struct {
	Alive bool   `"if" ( @"alive"`
	Dead  bool   `| @"dead"`
	Eq    *int   `| "eq" @Number )`
	Body  *Block `@@`
}

// Block: { instr* }
type Block struct {
	Instructions []*Instr `"{" @@* "}"`
}

// The .mm lexer definition.
var mmLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Skip whitespace and comments
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Comment", Pattern: `%[^\n]*`},

	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[{}]`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})

// Parser is the .mm parser.
var Parser = participle.MustBuild[Program](
	participle.Lexer(mmLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses .mm source code into an instruction sequence in source
// order.
func Parse(source string) ([]mini.Instruction, error) {
	program, err := Parser.ParseString("", source)
	if err != nil {
		return nil, err
	}
	return program.ToInstructions()
}

// ParseFile reads and parses a .mm program file. Errors fall into a
// closed taxonomy, each recoverable by re-prompting: the file is
// absent (matches fs.ErrNotExist), its contents are not text
// (ErrNotText), or the grammar does not parse.
func ParseFile(path string) ([]mini.Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	if !utf8.Valid(data) || hasNUL(data) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotText)
	}
	return Parse(string(data))
}

func hasNUL(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return false
}

// ToInstructions lowers the parsed program to executable form.
func (p *Program) ToInstructions() ([]mini.Instruction, error) {
	return lowerBlock(p.Instructions)
}

func lowerBlock(instrs []*Instr) ([]mini.Instruction, error) {
	out := make([]mini.Instruction, 0, len(instrs))
	for _, in := range instrs {
		lowered, err := in.lower()
		if err != nil {
			return nil, err
		}
		out = append(out, lowered)
	}
	return out, nil
}

func (in *Instr) lower() (mini.Instruction, error) {
	switch {
	case in.Post:
		return mini.PostRegister(), nil
	case in.Flare:
		return mini.PostFlare(), nil
	case in.Detonate:
		return mini.Detonate(), nil
	case in.Visit:
		return mini.Visit(), nil
	case in.Incr:
		return mini.Increment(), nil
	case in.Decr:
		return mini.Decrement(), nil
	case in.Set != nil:
		v, err := operand(*in.Set)
		if err != nil {
			return mini.Instruction{}, fmt.Errorf("set: %w", err)
		}
		return mini.SetValue(v), nil
	case in.If != nil:
		return in.If.lower()
	case in.Repeat != nil:
		body, err := lowerBlock(in.Repeat.Instructions)
		if err != nil {
			return mini.Instruction{}, err
		}
		// Every repeat compiles with the maximum iteration count:
		// the language's only loop bound.
		return mini.Repeat(math.MaxUint8, body...), nil
	case in.Break:
		return mini.Break(), nil
	}
	return mini.Instruction{}, errors.New("empty instruction")
}

func (i *If) lower() (mini.Instruction, error) {
	body, err := lowerBlock(i.Body.Instructions)
	if err != nil {
		return mini.Instruction{}, err
	}
	switch {
	case i.Alive:
		return mini.IfAlive(body...), nil
	case i.Dead:
		return mini.IfDead(body...), nil
	case i.Eq != nil:
		v, err := operand(*i.Eq)
		if err != nil {
			return mini.Instruction{}, fmt.Errorf("if eq: %w", err)
		}
		return mini.IfRegisterEq(v, body...), nil
	}
	return mini.Instruction{}, errors.New("empty condition")
}

func operand(v int) (byte, error) {
	if v < 0 || v > math.MaxUint8 {
		return 0, fmt.Errorf("operand %d out of range 0..%d", v, math.MaxUint8)
	}
	return byte(v), nil
}
