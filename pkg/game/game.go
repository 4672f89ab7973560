// Package game sequences the day/night turn structure: one mini run
// against the village, then one night of murderer resolution, until
// the village reaches a terminal status.
package game

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mmLang/minim/pkg/mini"
	"github.com/mmLang/minim/pkg/village"
)

// ErrGameOver reports an attempt to play a day after the village
// status turned terminal.
var ErrGameOver = errors.New("game is over")

// DayResult is everything that happened during one full day/night
// turn.
type DayResult struct {
	Day        int
	MiniStatus mini.Status
	Events     []mini.Event
	Night      village.NightReport
	Status     village.Status
}

// Report is the end-of-game summary: the original roster with kinds
// revealed, and the final status.
type Report struct {
	Session uuid.UUID
	Days    int
	Layout  []village.LayoutEntry
	Status  village.Status
}

// Game drives one playthrough over a single village.
type Game struct {
	village *village.Village
	session uuid.UUID
	day     int
	log     zerolog.Logger
}

// New starts a game over the given village.
func New(v *village.Village, log zerolog.Logger) *Game {
	session := uuid.New()
	return &Game{
		village: v,
		session: session,
		log:     log.With().Stringer("session", session).Logger(),
	}
}

// Village exposes the underlying village, mainly so the CLI can
// validate starting labels.
func (g *Game) Village() *village.Village { return g.village }

// Session returns the game's session ID.
func (g *Game) Session() uuid.UUID { return g.session }

// Day returns the number of completed days.
func (g *Game) Day() int { return g.day }

// Over reports whether the village status is terminal.
func (g *Game) Over() bool { return g.village.Status() != village.Running }

// PlayDay runs one full turn: a fresh mini executes the program from
// the starting label, then every living murderer takes its night
// action.
func (g *Game) PlayDay(start village.Label, program []mini.Instruction) (DayResult, error) {
	if g.Over() {
		return DayResult{}, ErrGameOver
	}
	g.day++

	log := g.log.With().Int("day", g.day).Logger()
	log.Info().Uint8("start", uint8(start)).Int("instructions", len(program)).Msg("mini deployed")

	m := mini.New(start, program, g.village)
	m.Run(g.village)

	events := m.Log()
	for _, ev := range events {
		log.Info().Stringer("event", ev).Msg("mini posted")
	}
	log.Info().Stringer("status", m.Status()).Msg("mini finished")

	report := g.village.ResolveNight()
	for _, ev := range report {
		e := log.Info().Uint8("murderer", uint8(ev.Murderer)).Stringer("outcome", ev.Outcome)
		if ev.Outcome != village.Missed {
			e = e.Uint8("target", uint8(ev.Target))
		}
		e.Msg("night action")
	}

	status := g.village.Status()
	if status != village.Running {
		log.Info().Stringer("status", status).Msg("game over")
	}

	return DayResult{
		Day:        g.day,
		MiniStatus: m.Status(),
		Events:     events,
		Night:      report,
		Status:     status,
	}, nil
}

// Report returns the end-of-game summary. It is valid at any point,
// but the kinds it reveals only stop mattering once the game is over.
func (g *Game) Report() Report {
	return Report{
		Session: g.session,
		Days:    g.day,
		Layout:  g.village.Layout(),
		Status:  g.village.Status(),
	}
}
