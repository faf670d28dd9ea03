package combat

import (
	"testing"

	"github.com/peterkuimelis/cardcrawl/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDamageBlockFirst(t *testing.T) {
	ent := &Entity{ID: "x", CurrentHealth: 80, MaxHealth: 80, Block: 15}
	res := ApplyDamage(ent, 20, DamageOptions{})

	assert.Equal(t, 0, ent.Block)
	assert.Equal(t, 75, ent.CurrentHealth)
	assert.Equal(t, 15, res.Blocked)
	assert.Equal(t, 5, res.AmountToHealth)
	assert.False(t, res.Died)
}

func TestApplyDamageBarrierAfterBlock(t *testing.T) {
	ent := &Entity{ID: "x", CurrentHealth: 50, MaxHealth: 50, Block: 10, Barrier: 10}
	res := ApplyDamage(ent, 25, DamageOptions{})

	assert.Equal(t, 0, ent.Block)
	assert.Equal(t, 0, ent.Barrier)
	assert.Equal(t, 45, ent.CurrentHealth)
	assert.Equal(t, 10, res.Absorbed)
}

func TestApplyDamageBlockOnlyPartiallyUsed(t *testing.T) {
	ent := &Entity{ID: "x", CurrentHealth: 50, MaxHealth: 50, Block: 10, Barrier: 10}
	ApplyDamage(ent, 4, DamageOptions{})

	assert.Equal(t, 6, ent.Block)
	assert.Equal(t, 10, ent.Barrier, "barrier is untouched while block remains")
	assert.Equal(t, 50, ent.CurrentHealth)
}

func TestApplyDamagePiercing(t *testing.T) {
	ent := &Entity{ID: "x", CurrentHealth: 50, MaxHealth: 50, Block: 10, Barrier: 10}
	ApplyDamage(ent, 7, DamageOptions{Piercing: true})

	assert.Equal(t, 10, ent.Block)
	assert.Equal(t, 10, ent.Barrier)
	assert.Equal(t, 43, ent.CurrentHealth)
}

func TestApplyDamageHealthNeverNegative(t *testing.T) {
	ent := &Entity{ID: "x", CurrentHealth: 5, MaxHealth: 50}
	res := ApplyDamage(ent, 30, DamageOptions{})

	assert.Equal(t, 0, ent.CurrentHealth)
	assert.Equal(t, 30, res.Incoming)
	assert.Equal(t, 5, res.AmountToHealth)
	assert.True(t, res.Died)
}

func TestApplyDamageElements(t *testing.T) {
	tests := []struct {
		name    string
		element Element
		want    int
	}{
		{"vulnerable to fire", ElementFire, 15},
		{"resists ice", ElementIce, 5},
		{"neutral lightning", ElementLightning, 10},
		{"no element", ElementNone, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ent := &Entity{
				ID: "x", CurrentHealth: 50, MaxHealth: 50,
				Vulnerabilities: []Element{ElementFire},
				Resistances:     []Element{ElementIce},
			}
			res := ApplyDamage(ent, 10, DamageOptions{Element: tt.element})
			assert.Equal(t, tt.want, res.Incoming)
		})
	}
}

func TestApplyDamageReduction(t *testing.T) {
	ent := &Entity{ID: "x", CurrentHealth: 50, MaxHealth: 50}
	res := ApplyDamage(ent, 3, DamageOptions{Reduction: 5})
	assert.Equal(t, 0, res.Incoming)
	assert.Equal(t, 50, ent.CurrentHealth)
}

func TestDamageActionScenarios(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, nil, "brute")

	run = e.ApplyAction(run, Action{Type: ActionAddBlock, Amount: 15})
	run = e.ApplyAction(run, Action{Type: ActionDamage, Target: PlayerID, Amount: 20})
	assert.Equal(t, 0, run.Combat.Player.Block)
	assert.Equal(t, 75, run.Combat.Player.CurrentHealth)
	assert.Equal(t, 5, run.Combat.Stats.DamageTaken)
}

func TestKillingEveryEnemyWins(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, nil, "dummy", "dummy", "dummy")
	require.Equal(t, []string{"dummy_1", "dummy_2", "dummy_3"}, enemyIDs(run.Combat))

	for _, id := range []string{"dummy_1", "dummy_2", "dummy_3"} {
		run = e.ApplyAction(run, Action{Type: ActionDamage, Target: id, Amount: 15})
	}

	st := run.Combat
	assert.Empty(t, st.Enemies)
	assert.Equal(t, 3, st.Stats.EnemiesKilled)
	assert.Equal(t, PhaseVictory, st.Phase)
	assert.Equal(t, 45, st.Stats.DamageDealt, "overkill counts as damage dealt")
	assert.Len(t, eventsOf(st, log.EventDeath), 3)
	assert.Len(t, eventsOf(st, log.EventVictory), 1)
	assert.True(t, st.Settled)
	assert.Equal(t, 1, run.Stats.Victories)
}

func TestBlockDecaysAtTurnStart(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, nil, "brute")

	run = e.ApplyAction(run, Action{Type: ActionAddBlock, Amount: 20})
	run = e.ApplyAction(run, Action{Type: ActionDamage, Target: PlayerID, Amount: 10})
	require.Equal(t, 10, run.Combat.Player.Block)
	run = e.ApplyAction(run, Action{Type: ActionEndTurn})
	run = e.ApplyAction(run, Action{Type: ActionStartTurn})

	assert.Equal(t, 0, run.Combat.Player.Block)
	assert.Equal(t, 80, run.Combat.Player.CurrentHealth)
	assert.Equal(t, 2, run.Combat.Turn)
}

func TestRetainBlockRelic(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, []string{"calipers"}, "brute")

	run = e.ApplyAction(run, Action{Type: ActionAddBlock, Amount: 12})
	run = e.ApplyAction(run, Action{Type: ActionEndTurn})
	run = e.ApplyAction(run, Action{Type: ActionStartTurn})
	assert.Equal(t, 12, run.Combat.Player.Block)
}

func TestDefeatDominatesVictory(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "dummy")

	e.Execute(st, Sequence{Effects: []Effect{
		Damage{Amount: Literal(50), Target: TargetAllEnemies},
		Damage{Amount: Literal(500), Target: TargetSelf},
	}}, EffectContext{})

	assert.Equal(t, PhaseDefeat, st.Phase)
	assert.Len(t, eventsOf(st, log.EventVictory), 1)
	assert.Len(t, eventsOf(st, log.EventDefeat), 1)
}

func TestThornsCanKillThePlayer(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "dummy")
	st.Player.CurrentHealth = 3

	st.Enemies[0].Powers["thorns"] = &PowerInstance{ID: "thorns", Amount: 5}
	e.Execute(st, Damage{Amount: Literal(4)}, EffectContext{})
	require.Equal(t, 6, st.Enemies[0].CurrentHealth)
	assert.Equal(t, PhaseDefeat, st.Phase)
}

func TestAttackModifiers(t *testing.T) {
	tests := []struct {
		name     string
		attacker map[string]int
		defender map[string]int
		want     int
	}{
		{"plain", nil, nil, 10},
		{"strength", map[string]int{PowerStrength: 3}, nil, 13},
		{"weak", map[string]int{PowerWeak: 1}, nil, 7},
		{"vulnerable", nil, map[string]int{PowerVulnerable: 2}, 15},
		{"strength weak vulnerable", map[string]int{PowerStrength: 2, PowerWeak: 1}, map[string]int{PowerVulnerable: 1}, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := &Entity{Powers: map[string]*PowerInstance{}}
			defender := &Entity{Powers: map[string]*PowerInstance{}}
			for id, n := range tt.attacker {
				attacker.Powers[id] = &PowerInstance{ID: id, Amount: n}
			}
			for id, n := range tt.defender {
				defender.Powers[id] = &PowerInstance{ID: id, Amount: n}
			}
			assert.Equal(t, tt.want, attackAmount(attacker, defender, 10))
		})
	}
}

func TestAttackCardUsesModifiersEffectDamageDoesNot(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "brute")
	e.applyPower(st, PlayerID, PowerStrength, 4)

	e.Execute(st, Damage{Amount: Literal(6)}, EffectContext{Attack: true})
	assert.Equal(t, 40, st.Enemies[0].CurrentHealth)

	e.Execute(st, Damage{Amount: Literal(6)}, EffectContext{})
	assert.Equal(t, 34, st.Enemies[0].CurrentHealth)
}

func TestExplosionCombo(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "brute")
	e.applyPower(st, "brute_1", PowerOiled, 2)

	e.Execute(st, Damage{Amount: Literal(10), Element: ElementFire}, EffectContext{})

	en := st.Enemies[0]
	assert.Equal(t, 30, en.CurrentHealth)
	assert.False(t, en.HasPower(PowerOiled), "the status is consumed")
	assert.Equal(t, 1, st.Stats.Combos)
	combos := eventsOf(st, log.EventCombo)
	require.Len(t, combos, 1)
	assert.Equal(t, 20, combos[0].Amount)
	assert.Contains(t, combos[0].Details, "EXPLOSION")
}

func TestConductedComboChains(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "brute", "brute", "brute")
	e.applyPower(st, "brute_1", PowerWet, 1)
	e.applyPower(st, "brute_2", PowerWet, 1)

	e.Execute(st, Damage{Amount: Literal(10), Element: ElementLightning, Target: "brute_1"}, EffectContext{})

	// brute_2 consumes its own wet on the chained hit but does not chain again.
	assert.Equal(t, 35, st.Enemies[0].CurrentHealth)
	assert.Equal(t, 50-22, st.Enemies[1].CurrentHealth)
	assert.Equal(t, 35, st.Enemies[2].CurrentHealth)
	assert.Equal(t, 2, st.Stats.Combos)
}

func TestShatterExecutes(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "boss", "brute")
	boss := st.Enemies[0]
	boss.CurrentHealth = 30
	e.applyPower(st, boss.ID, PowerFrozen, 1)

	e.Execute(st, Damage{Amount: Literal(10), Target: boss.ID}, EffectContext{})

	assert.Nil(t, st.Enemy("boss_1"))
	assert.Equal(t, 1, st.Stats.EnemiesKilled)
	assert.Equal(t, PhasePlayerTurn, st.Phase)
}

func TestThornsRetaliate(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "spiky")

	e.Execute(st, Damage{Amount: Literal(6)}, EffectContext{Attack: true})

	assert.Equal(t, 34, st.Enemies[0].CurrentHealth)
	assert.Equal(t, 77, st.Player.CurrentHealth)
	triggered := eventsOf(st, log.EventPowerTriggered)
	require.Len(t, triggered, 1)
	assert.Equal(t, "spiky_1", triggered[0].Source)
}

func TestDamageReductionPassive(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "brute")
	e.applyPower(st, "brute_1", "hardened", 1)

	e.Execute(st, Damage{Amount: Literal(10)}, EffectContext{})
	assert.Equal(t, 42, st.Enemies[0].CurrentHealth)
}

func TestTriggerCascadeIsBounded(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "brute")
	st.Player.Powers["echoing"] = &PowerInstance{ID: "echoing", Amount: 1}
	st.Enemies[0].Powers["echoing"] = &PowerInstance{ID: "echoing", Amount: 1}

	e.Execute(st, Damage{Amount: Literal(5)}, EffectContext{})

	assert.Equal(t, 76, st.Player.CurrentHealth)
	assert.Equal(t, 41, st.Enemies[0].CurrentHealth)
}

func TestHealClampsAtMax(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, nil, "brute")

	run = e.ApplyAction(run, Action{Type: ActionDamage, Amount: 10})
	run = e.ApplyAction(run, Action{Type: ActionHeal, Amount: 25})
	assert.Equal(t, 80, run.Combat.Player.CurrentHealth)
	assert.Equal(t, 10, run.Combat.Stats.HealingDone)

	heals := eventsOf(run.Combat, log.EventHeal)
	require.Len(t, heals, 1)
	assert.Equal(t, 10, heals[0].Amount)
}

func TestEnergyBounds(t *testing.T) {
	e := newTestEngine(t)
	run := newTestRun(t, e, nil, nil, "brute")
	require.Equal(t, 3, run.Combat.Player.Energy)

	run = e.ApplyAction(run, Action{Type: ActionSpendEnergy, Amount: 5})
	assert.Equal(t, 0, run.Combat.Player.Energy)

	run = e.ApplyAction(run, Action{Type: ActionGainEnergy, Amount: 10})
	assert.Equal(t, 10, run.Combat.Player.Energy, "energy has no ceiling")
}

func TestKillPowersFireForTheKiller(t *testing.T) {
	e := newTestEngine(t)
	st := newTestCombat(t, e, "dummy", "brute")
	addToDraw(st, "strike", "strike", "strike")
	e.applyPower(st, PlayerID, "drawOnKill", 2)
	e.applyPower(st, PlayerID, "energizeOnKill", 1)

	e.Execute(st, Damage{Amount: Literal(3), Target: TargetFirstEnemy}, EffectContext{})
	assert.Equal(t, 7, st.Enemies[0].CurrentHealth)
	assert.Empty(t, st.Hand, "a hit that does not kill fires nothing")
	assert.Equal(t, 3, st.Player.Energy)

	e.Execute(st, Damage{Amount: Literal(7), Target: TargetFirstEnemy}, EffectContext{})
	require.Equal(t, []string{"brute_1"}, enemyIDs(st))
	assert.Len(t, st.Hand, 2)
	assert.Len(t, st.DrawPile, 1)
	assert.Equal(t, 4, st.Player.Energy)
	assert.Equal(t, PhasePlayerTurn, st.Phase)
	assert.Len(t, eventsOf(st, log.EventPowerTriggered), 2)
}
