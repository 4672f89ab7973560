package game

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmLang/minim/pkg/mini"
	"github.com/mmLang/minim/pkg/village"
)

func testVillage(kinds ...village.Kind) *village.Village {
	villagers := make([]village.LivingVillager, 0, len(kinds))
	for i, kind := range kinds {
		villagers = append(villagers, village.NewLivingVillager(kind, village.Label(i+1)))
	}
	return village.NewDeterministic(villagers, rand.New(rand.NewSource(42)))
}

func TestVillagersWinByDetonation(t *testing.T) {
	v := testVillage(village.Normal, village.Murderer, village.Normal)
	g := New(v, zerolog.Nop())

	// The player somehow knows: blow up villager 2.
	result, err := g.PlayDay(1, []mini.Instruction{
		mini.PostFlare(),
		mini.SetValue(2),
		mini.Detonate(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Day)
	assert.Equal(t, mini.Destroyed, result.MiniStatus)
	assert.Equal(t, []mini.Event{mini.Flare}, result.Events)
	assert.Empty(t, result.Night, "dead murderers take no night action")
	assert.Equal(t, village.VillagersWon, result.Status)

	assert.True(t, g.Over())
}

func TestMurderersWinEventually(t *testing.T) {
	v := testVillage(village.Murderer, village.Normal)
	g := New(v, zerolog.Nop())

	program := []mini.Instruction{mini.PostRegister()}
	for day := 0; day < 200 && !g.Over(); day++ {
		result, err := g.PlayDay(2, program)
		require.NoError(t, err)
		assert.Equal(t, mini.Done, result.MiniStatus)
	}

	require.True(t, g.Over(), "one murderer and one neighbor must end the game")
	assert.Equal(t, village.MurderersWon, v.Status())
}

func TestPlayDayAfterGameOver(t *testing.T) {
	v := testVillage(village.Normal, village.Murderer)
	g := New(v, zerolog.Nop())

	_, err := g.PlayDay(1, []mini.Instruction{
		mini.SetValue(2),
		mini.Detonate(),
	})
	require.NoError(t, err)
	require.True(t, g.Over())

	_, err = g.PlayDay(1, nil)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 1, g.Day(), "a rejected day must not advance the counter")
}

func TestDayCounterAndStatusProgression(t *testing.T) {
	// Enough normals that a single murderer cannot end the game in
	// three nights.
	v := testVillage(
		village.Murderer,
		village.Normal, village.Normal, village.Normal,
		village.Normal, village.Normal, village.Normal,
	)
	g := New(v, zerolog.Nop())

	for day := 1; day <= 3; day++ {
		result, err := g.PlayDay(2, nil)
		require.NoError(t, err)
		assert.Equal(t, day, result.Day)
		assert.Len(t, result.Night, 1)
	}
	assert.Equal(t, 3, g.Day())
}

func TestMiniLostDoesNotStopTheNight(t *testing.T) {
	v := testVillage(
		village.Murderer,
		village.Normal, village.Normal, village.Normal,
		village.Normal, village.Normal, village.Normal,
	)
	g := New(v, zerolog.Nop())

	result, err := g.PlayDay(200, []mini.Instruction{mini.PostFlare()})
	require.NoError(t, err)

	assert.Equal(t, mini.Lost, result.MiniStatus)
	assert.Empty(t, result.Events)
	assert.Len(t, result.Night, 1, "the night resolves even when the mini is lost")
}

func TestReport(t *testing.T) {
	v := testVillage(village.Normal, village.Murderer)
	g := New(v, zerolog.Nop())

	_, err := g.PlayDay(1, []mini.Instruction{
		mini.SetValue(2),
		mini.Detonate(),
	})
	require.NoError(t, err)

	report := g.Report()
	assert.Equal(t, g.Session(), report.Session)
	assert.Equal(t, 1, report.Days)
	assert.Equal(t, village.VillagersWon, report.Status)
	assert.Equal(t, []village.LayoutEntry{
		{Label: 1, Kind: village.Normal},
		{Label: 2, Kind: village.Murderer},
	}, report.Layout)
}
