package combat

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/cardcrawl/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRun(t *testing.T) {
	e := newTestEngine(t)

	run, err := e.StartRun("knight", 11)
	require.NoError(t, err)
	assert.Equal(t, Hero{Name: "Knight", CurrentHealth: 80, MaxHealth: 80, MaxEnergy: 3}, run.Hero)
	require.Len(t, run.Deck, 10)

	uids := map[string]bool{}
	for _, c := range run.Deck {
		uids[c.UID] = true
	}
	assert.Len(t, uids, 10)
	assert.Nil(t, run.Combat)

	_, err = e.StartRun("wizard", 11)
	assert.True(t, errors.Is(err, ErrUnknownContent))
}

func TestSameSeedSameDeck(t *testing.T) {
	e := newTestEngine(t)
	a, _ := e.StartRun("knight", 5)
	b, _ := e.StartRun("knight", 5)
	c, _ := e.StartRun("knight", 6)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Deck[0].UID, c.Deck[0].UID)
}

func TestStartCombatDealsOpeningHand(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, []DeckCard{{Card: "strike", Count: 8}}, nil, "brute", "dummy")
	st := run.Combat

	assert.Equal(t, PhasePlayerTurn, st.Phase)
	assert.Equal(t, 1, st.Turn)
	assert.Equal(t, 3, st.Player.Energy)
	assert.Len(t, st.Hand, DefaultHandSize)
	assert.Len(t, st.DrawPile, 8-DefaultHandSize)
	assert.Equal(t, []string{"brute_1", "dummy_1"}, enemyIDs(st))
	assert.Equal(t, 10, st.Reward)
	assert.Equal(t, 1, run.Stats.Combats)
	assert.Len(t, eventsOf(st, log.EventCombatStart), 1)
}

func TestHandSizeOption(t *testing.T) {
	e := newTestEngine(t, WithHandSize(3))
	run := newTestRun(t, e, []DeckCard{{Card: "strike", Count: 8}}, nil, "brute")
	assert.Len(t, run.Combat.Hand, 3)
}

func TestStartCombatIgnoresUnknownEnemies(t *testing.T) {
	e := newTestEngine(t)
	run := NewRun(Hero{Name: "Knight", MaxHealth: 80, MaxEnergy: 3}, nil, nil, 1)

	next := e.ApplyAction(run, Action{Type: ActionStartCombat, Enemies: []string{"ghost"}})
	assert.Nil(t, next.Combat)

	next = e.ApplyAction(run, Action{Type: ActionStartCombat, Enemies: []string{"ghost", "dummy"}})
	require.NotNil(t, next.Combat)
	assert.Equal(t, []string{"dummy_1"}, enemyIDs(next.Combat))

	again := e.ApplyAction(next, Action{Type: ActionStartCombat, Enemies: []string{"brute"}})
	assert.Equal(t, []string{"dummy_1"}, enemyIDs(again.Combat), "no second combat while one is running")
}

func TestApplyActionLeavesInputUntouched(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, []DeckCard{{Card: "bash", Count: 6}}, nil, "brute")
	snapshot := run.Clone()

	next := e.ApplyAction(run, Action{Type: ActionPlayCard, Card: run.Combat.Hand[0].UID})
	assert.Equal(t, snapshot, run)
	assert.NotEqual(t, snapshot, next)
	assert.Equal(t, 42, next.Combat.Enemies[0].CurrentHealth)
	assert.Equal(t, 50, run.Combat.Enemies[0].CurrentHealth)

	next = e.ApplyAction(run, Action{Type: ActionEndTurn})
	next = e.ApplyAction(next, Action{Type: ActionEnemyAction, Target: "brute_1"})
	assert.Equal(t, snapshot, run)
	assert.Equal(t, 70, next.Combat.Player.CurrentHealth)
}

func TestRoomFlow(t *testing.T) {
	e := newTestEngine(t)
	run := NewRun(Hero{Name: "Knight", CurrentHealth: 40, MaxHealth: 80, MaxEnergy: 3}, nil, nil, 1)
	camp, _ := e.Registry().Room("camp")
	chest, _ := e.Registry().Room("chest")

	run = e.ApplyAction(run, Action{Type: ActionDealRoomChoices, Rooms: []Room{camp, chest}})
	require.Len(t, run.RoomChoices, 2)

	t.Run("room not on offer", func(t *testing.T) {
		next := e.ApplyAction(run, Action{Type: ActionSelectRoom, Room: "pit"})
		assert.Equal(t, run, next)
	})

	run = e.ApplyAction(run, Action{Type: ActionSelectRoom, Room: "camp"})
	assert.Equal(t, 64, run.Hero.CurrentHealth)
	assert.Equal(t, 1, run.Floor)
	assert.Equal(t, "camp", run.CurrentRoom)
	assert.Nil(t, run.RoomChoices)

	run = e.ApplyAction(run, Action{Type: ActionDealRoomChoices, Rooms: []Room{chest}})
	run = e.ApplyAction(run, Action{Type: ActionSelectRoom, Room: "chest"})
	assert.Equal(t, 50, run.Gold)
	assert.Equal(t, 50, run.Stats.GoldEarned)
	assert.Equal(t, 2, run.Floor)

	assert.Len(t, log.Filter(run.VisualQueue, log.EventRoomChoices), 2)
	selected := log.Filter(run.VisualQueue, log.EventRoomSelected)
	require.Len(t, selected, 2)
	assert.Equal(t, 1, selected[1].Turn, "run events are stamped with the floor")
}

func TestRestHealClampsAtMax(t *testing.T) {
	e := newTestEngine(t)
	run := NewRun(Hero{Name: "Knight", CurrentHealth: 75, MaxHealth: 80, MaxEnergy: 3}, nil, nil, 1)
	run = e.ApplyAction(run, Action{Type: ActionDealRoomChoices, Rooms: []Room{{ID: "camp", Kind: RoomRest}}})
	run = e.ApplyAction(run, Action{Type: ActionSelectRoom, Room: "camp"})
	assert.Equal(t, 80, run.Hero.CurrentHealth)
}

func TestSelectCombatRoom(t *testing.T) {
	e := newTestEngine(t)
	run := NewRun(Hero{Name: "Knight", MaxHealth: 80, MaxEnergy: 3}, []DeckCard{{Card: "strike", Count: 5}}, nil, 1)
	pit, _ := e.Registry().Room("pit")
	elite := Room{ID: "den", Kind: RoomElite, Enemies: []string{"brute"}, Gold: 30}

	run = e.ApplyAction(run, Action{Type: ActionDealRoomChoices, Rooms: []Room{pit, elite}})
	entered := e.ApplyAction(run, Action{Type: ActionSelectRoom, Room: "pit"})
	require.True(t, entered.InCombat())
	assert.Equal(t, "pit", entered.Combat.RoomID)
	assert.Equal(t, []string{"dummy_1", "dummy_2"}, enemyIDs(entered.Combat))

	entered = e.ApplyAction(run, Action{Type: ActionSelectRoom, Room: "den"})
	require.True(t, entered.InCombat())
	assert.Equal(t, 30, entered.Combat.Reward, "room gold overrides enemy gold")

	blocked := e.ApplyAction(entered, Action{Type: ActionDealRoomChoices, Rooms: []Room{pit}})
	assert.Nil(t, blocked.RoomChoices)
}

func TestSettleVictory(t *testing.T) {
	e := newTestEngine(t)
	run := NewRun(Hero{Name: "Knight", CurrentHealth: 50, MaxHealth: 80, MaxEnergy: 3}, nil, []string{"burningBlood"}, 1)
	run = e.ApplyAction(run, Action{Type: ActionStartCombat, Enemies: []string{"brute"}})
	rolls := run.Combat.Dice.Rolls

	run = e.ApplyAction(run, Action{Type: ActionDamage, Target: "brute_1", Amount: 60})
	st := run.Combat

	assert.Equal(t, PhaseVictory, st.Phase)
	assert.True(t, st.Settled)
	assert.False(t, run.InCombat())
	assert.Equal(t, 56, run.Hero.CurrentHealth)
	assert.Equal(t, 10, run.Gold)
	assert.Equal(t, 1, run.Floor)
	assert.Equal(t, RunStats{
		Combats: 1, Victories: 1, DamageDealt: 60, EnemiesKilled: 1, GoldEarned: 10,
	}, run.Stats)
	assert.Equal(t, st.Dice, run.Dice)
	assert.GreaterOrEqual(t, run.Dice.Rolls, rolls)
	assert.Len(t, eventsOf(st, log.EventCombatEnd), 1)

	after := e.ApplyAction(run, Action{Type: ActionEndTurn})
	assert.Equal(t, run, after, "actions after the combat ended are ignored")
}

func TestSettleDefeat(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, []string{"burningBlood"}, "brute")

	run = e.ApplyAction(run, Action{Type: ActionDamage, Target: PlayerID, Amount: 500})

	assert.Equal(t, PhaseDefeat, run.Combat.Phase)
	assert.Equal(t, 0, run.Hero.CurrentHealth)
	assert.Equal(t, 0, run.Gold)
	assert.Equal(t, 0, run.Floor)
	assert.Equal(t, 0, run.Stats.Victories)
	assert.Equal(t, 80, run.Stats.DamageTaken)
	assert.Empty(t, eventsOf(run.Combat, log.EventHeal), "dead heroes are not healed")
}

func TestCombatStartRelic(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, []string{"anchor"}, "brute")

	assert.Equal(t, 10, run.Combat.Player.Block)
	relics := eventsOf(run.Combat, log.EventRelicTriggered)
	require.Len(t, relics, 1)
	assert.Contains(t, relics[0].Details, "anchor")
}

func TestRetainEnergyRelic(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, []string{"iceCream"}, "brute")
	require.Equal(t, 3, run.Combat.Player.Energy)

	run = e.ApplyAction(run, Action{Type: ActionSpendEnergy, Amount: 1})
	run = e.ApplyAction(run, Action{Type: ActionEndTurn})
	run = e.ApplyAction(run, Action{Type: ActionStartTurn})
	assert.Equal(t, 5, run.Combat.Player.Energy)

	plain := newTestRun(t, e, nil, nil, "brute")
	plain = e.ApplyAction(plain, Action{Type: ActionSpendEnergy, Amount: 1})
	plain = e.ApplyAction(plain, Action{Type: ActionEndTurn})
	plain = e.ApplyAction(plain, Action{Type: ActionStartTurn})
	assert.Equal(t, 3, plain.Combat.Player.Energy)
}

func TestApplyPowerAction(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, nil, "brute")

	run = e.ApplyAction(run, Action{Type: ActionApplyPower, Target: "brute_1", Power: PowerVulnerable, Amount: 2})
	run = e.ApplyAction(run, Action{Type: ActionApplyPower, Power: PowerStrength, Amount: 1})
	run = e.ApplyAction(run, Action{Type: ActionApplyPower, Power: "nonsense", Amount: 1})

	assert.Equal(t, 2, run.Combat.Enemies[0].Stacks(PowerVulnerable))
	assert.Equal(t, 1, run.Combat.Player.Stacks(PowerStrength))
	assert.False(t, run.Combat.Player.HasPower("nonsense"))
}

func TestDeterministicReplay(t *testing.T) {
	e := newTestEngine(t)
	play := func(seed int64) *RunState {
		run, err := e.StartRun("knight", seed)
		require.NoError(t, err)
		pit, _ := e.Registry().Room("pit")
		run = e.ApplyAction(run, Action{Type: ActionDealRoomChoices, Rooms: []Room{pit}})
		run = e.ApplyAction(run, Action{Type: ActionSelectRoom, Room: "pit"})
		return e.AutoPlay(run, 20)
	}

	a, b := play(99), play(99)
	assert.Equal(t, a, b)
	assert.Equal(t, PhaseVictory, a.Combat.Phase)
	assert.Equal(t, 1, a.Floor)
	assert.Equal(t, 2, a.Stats.EnemiesKilled)
}

func TestEnemyTurnsThroughActions(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, []DeckCard{{Card: "defend", Count: 10}}, nil, "brute", "twin")

	run = e.ApplyAction(run, Action{Type: ActionEndTurn})
	require.Equal(t, PhaseEnemyTurn, run.Combat.Phase)
	run = e.FinishRound(run)

	st := run.Combat
	assert.Equal(t, PhasePlayerTurn, st.Phase)
	assert.Equal(t, 2, st.Turn)
	assert.Equal(t, 64, st.Player.CurrentHealth)
	assert.Equal(t, 3, st.Player.Energy)
	assert.Len(t, st.Hand, DefaultHandSize)
	assert.Equal(t, IntentDefend, st.Enemies[0].Intent.Type)
}

func TestDealRandomRooms(t *testing.T) {
	e := newTestEngine(t)
	run := NewRun(Hero{Name: "Knight", MaxHealth: 80, MaxEnergy: 3}, nil, nil, 3)

	a := e.ApplyAction(run, Action{Type: ActionDealRoomChoices, Amount: 2})
	b := e.ApplyAction(run, Action{Type: ActionDealRoomChoices, Amount: 2})
	require.Len(t, a.RoomChoices, 2)
	assert.Equal(t, a.RoomChoices, b.RoomChoices)
	assert.NotEqual(t, a.RoomChoices[0].ID, a.RoomChoices[1].ID)

	all := e.ApplyAction(run, Action{Type: ActionDealRoomChoices, Amount: 10})
	assert.Len(t, all.RoomChoices, 3)
}
