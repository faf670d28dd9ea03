package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPlay(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "brute", "dummy")
	st.Player.Energy = 1
	cards := addToHand(st, "dazed", "bash", "strike", "defend")

	a, ok := e.NextPlay(st)
	require.True(t, ok)
	assert.Equal(t, ActionPlayCard, a.Type)
	assert.Equal(t, cards[2].UID, a.Card)
	assert.Equal(t, "dummy_1", a.Target, "attacks aim at the weakest enemy")

	st.Hand = []*CardInstance{cards[3]}
	a, ok = e.NextPlay(st)
	require.True(t, ok)
	assert.Empty(t, a.Target)

	st.Player.Energy = 0
	_, ok = e.NextPlay(st)
	assert.False(t, ok)

	st.Player.Energy = 3
	st.Phase = PhaseEnemyTurn
	_, ok = e.NextPlay(st)
	assert.False(t, ok)
}

func TestAutoTurnSpendsEnergyThenEnds(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, []DeckCard{{Card: "strike", Count: 10}}, nil, "brute")

	run = e.AutoTurn(run)

	st := run.Combat
	assert.Equal(t, PhaseEnemyTurn, st.Phase)
	assert.Equal(t, 32, st.Enemies[0].CurrentHealth)
	assert.Equal(t, 3, st.Stats.CardsPlayed)
	assert.Equal(t, 0, st.Player.Energy)
}

func TestAutoPlayStopsAtTurnLimit(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, []DeckCard{{Card: "defend", Count: 10}}, nil, "boss")

	run = e.AutoPlay(run, 2)

	assert.True(t, run.InCombat())
	assert.Equal(t, 3, run.Combat.Turn)
	assert.Equal(t, PhasePlayerTurn, run.Combat.Phase)
}

func TestAutoPlayFinishesCombat(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, []DeckCard{{Card: "strike", Count: 5}, {Card: "defend", Count: 5}}, nil, "dummy", "twin")

	run = e.AutoPlay(run, 50)

	assert.False(t, run.InCombat())
	assert.True(t, run.Combat.Settled)
	assert.Equal(t, PhaseVictory, run.Combat.Phase)
	assert.Equal(t, 1, run.Stats.Victories)
}

func TestLegalActions(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "brute", "dummy")
	st.Player.Energy = 1
	cards := addToHand(st, "dazed", "bash", "strike", "defend")

	actions := e.LegalActions(st)
	require.Len(t, actions, 4)
	assert.Equal(t, Action{Type: ActionPlayCard, Card: cards[2].UID, Target: "brute_1", Desc: "play Strike (1) at brute_1"}, actions[0])
	assert.Equal(t, "dummy_1", actions[1].Target)
	assert.Equal(t, cards[3].UID, actions[2].Card)
	assert.Empty(t, actions[2].Target)
	assert.Equal(t, ActionEndTurn, actions[3].Type)

	st.Enemies = st.Enemies[:1]
	actions = e.LegalActions(st)
	require.Len(t, actions, 3)
	assert.Empty(t, actions[0].Target, "a single enemy needs no choice")

	st.Phase = PhaseEnemyTurn
	assert.Nil(t, e.LegalActions(st))
}
