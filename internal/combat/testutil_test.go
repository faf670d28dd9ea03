package combat

import (
	"testing"

	"github.com/peterkuimelis/cardcrawl/internal/log"
	"go.uber.org/zap/zaptest"
)

func intPtr(n int) *int { return &n }

// testRegistry is a small, self-contained content set.
func testRegistry() *Registry {
	reg := NewRegistry()

	duration := func(id string) *PowerDefinition {
		return &PowerDefinition{
			ID: id, Name: id, Stack: StackDuration, RemoveAtZero: true, Debuff: true,
			Triggers: []TriggerRegistration{{Event: OnTurnEnd}},
		}
	}
	for _, p := range []*PowerDefinition{
		{ID: PowerStrength, Name: "Strength", Stack: StackIntensity},
		{ID: PowerDexterity, Name: "Dexterity", Stack: StackIntensity},
		duration(PowerVulnerable),
		duration(PowerWeak),
		duration(PowerFrail),
		duration(PowerOiled),
		duration(PowerWet),
		duration(PowerFrozen),
		{ID: "thorns", Name: "Thorns", Stack: StackIntensity, Triggers: []TriggerRegistration{
			{Event: OnDamaged, Effects: []Effect{Damage{Amount: PowerStacks{}, Target: TargetEnemy}}},
		}},
		{ID: "drawOnKill", Name: "Harvest", Stack: StackIntensity, Triggers: []TriggerRegistration{
			{Event: OnKill, Effects: []Effect{Draw{Amount: PowerStacks{}}}},
		}},
		{ID: "energizeOnKill", Name: "Second Wind", Stack: StackIntensity, Triggers: []TriggerRegistration{
			{Event: OnKill, Effects: []Effect{Energy{Amount: PowerStacks{}}}},
		}},
		{ID: "poison", Name: "Poison", Stack: StackDuration, RemoveAtZero: true, Debuff: true, Triggers: []TriggerRegistration{
			{Event: OnTurnStart, Effects: []Effect{Damage{Amount: PowerStacks{}, Target: TargetSelf, Piercing: true}}},
		}},
		{ID: "ritual", Name: "Ritual", Stack: StackIntensity, Triggers: []TriggerRegistration{
			{Event: OnTurnEnd, Effects: []Effect{ApplyPower{Power: PowerStrength, Amount: PowerStacks{}}}},
		}},
		{ID: "fortress", Name: "Fortress", Stack: StackNone, Passive: PowerPassive{RetainBlock: true}},
		{ID: "hardened", Name: "Hardened", Stack: StackIntensity, Passive: PowerPassive{DamageReduction: 2}},
		{ID: "echoing", Name: "Echoing", Stack: StackIntensity, Triggers: []TriggerRegistration{
			{Event: OnDamaged, Effects: []Effect{Damage{Amount: Literal(1), Target: TargetEnemy}}},
		}},
	} {
		reg.Powers[p.ID] = p
	}

	for _, c := range []*CardDefinition{
		{ID: "strike", Name: "Strike", Type: CardTypeAttack, Cost: 1, Effects: []Effect{Damage{Amount: Literal(6)}},
			Upgrade: &CardUpgrade{Effects: []Effect{Damage{Amount: Literal(9)}}}},
		{ID: "defend", Name: "Defend", Type: CardTypeSkill, Cost: 1, Effects: []Effect{Block{Amount: Literal(5)}}},
		{ID: "bash", Name: "Bash", Type: CardTypeAttack, Cost: 2, Effects: []Effect{
			Damage{Amount: Literal(8)},
			ApplyPower{Power: PowerVulnerable, Amount: Literal(2), Target: TargetEnemy},
		}, Upgrade: &CardUpgrade{Cost: intPtr(1)}},
		{ID: "cleave", Name: "Cleave", Type: CardTypeAttack, Cost: 1, Effects: []Effect{Damage{Amount: Literal(8), Target: TargetAllEnemies}}},
		{ID: "firebolt", Name: "Firebolt", Type: CardTypeAttack, Element: ElementFire, Cost: 1, Effects: []Effect{Damage{Amount: Literal(10)}}},
		{ID: "spark", Name: "Spark", Type: CardTypeAttack, Element: ElementLightning, Cost: 1, Effects: []Effect{Damage{Amount: Literal(10)}}},
		{ID: "echo", Name: "Echo", Type: CardTypeAttack, Cost: 2, Effects: []Effect{Damage{Amount: Literal(5)}, ReplayCard{Times: Literal(1)}}},
		{ID: "havoc", Name: "Havoc", Type: CardTypeSkill, Cost: 1, Effects: []Effect{PlayTopCard{Amount: Literal(1), Exhaust: true}}},
		{ID: "inflame", Name: "Inflame", Type: CardTypePower, Cost: 1, Effects: []Effect{ApplyPower{Power: PowerStrength, Amount: Literal(2)}}},
		{ID: "trance", Name: "Trance", Type: CardTypeSkill, Cost: 0, Effects: []Effect{Draw{Amount: Literal(3)}}},
		{ID: "purge", Name: "Purge", Type: CardTypeSkill, Cost: 0, Exhaust: true},
		{ID: "dazed", Name: "Dazed", Type: CardTypeStatus, Unplayable: true, Ethereal: true},
		{ID: "keeper", Name: "Keeper", Type: CardTypeSkill, Cost: 1, Retain: true},
		{ID: "opening", Name: "Opening", Type: CardTypeSkill, Cost: 0, Innate: true},
		{ID: "plunder", Name: "Plunder", Type: CardTypeAttack, Cost: 1, Effects: []Effect{Damage{Amount: Literal(6)}, GainGold{Amount: Literal(5)}}},
	} {
		reg.Cards[c.ID] = c
	}

	for _, en := range []*EnemyDefinition{
		{ID: "dummy", Name: "Dummy", MaxHealth: 10, Pattern: []PatternStep{{Intent: IntentAttack, Value: 5}}},
		{ID: "brute", Name: "Brute", MaxHealth: 50, Gold: 10, Pattern: []PatternStep{
			{Intent: IntentAttack, Value: 10},
			{Intent: IntentDefend, Value: 6},
		}},
		{ID: "twin", Name: "Twin", MaxHealth: 30, Pattern: []PatternStep{{Intent: IntentAttack, Value: 3, Times: 2}}},
		{ID: "cultist", Name: "Cultist", MaxHealth: 40, Pattern: []PatternStep{
			{Intent: IntentBuff, Effects: []Effect{ApplyPower{Power: "ritual", Amount: Literal(3)}}},
			{Intent: IntentAttack, Value: 6},
		}},
		{ID: "mage", Name: "Mage", MaxHealth: 40, EnergyPerTurn: 1,
			Ability: &EnemyAbility{Name: "Fireball", Cost: 2, Cooldown: 2, Effects: []Effect{Damage{Amount: Literal(9), Element: ElementFire}}},
			Pattern: []PatternStep{{Intent: IntentAttack, Value: 2}}},
		{ID: "boss", Name: "Boss", MaxHealth: 100,
			Ultimate: &EnemyUltimate{Name: "Enrage", Trigger: UltimateHealthPercent, Value: 50, Effects: []Effect{ApplyPower{Power: PowerStrength, Amount: Literal(5)}}},
			Pattern:  []PatternStep{{Intent: IntentAttack, Value: 1}}},
		{ID: "spiky", Name: "Spiky", MaxHealth: 40, Powers: map[string]int{"thorns": 3}, Pattern: []PatternStep{{Intent: IntentDefend, Value: 5}}},
		{ID: "slime", Name: "Slime", MaxHealth: 20, Vulnerabilities: []Element{ElementFire}, Resistances: []Element{ElementIce},
			Pattern: []PatternStep{{Intent: IntentAttack, Value: 4}}},
	} {
		reg.Enemies[en.ID] = en
	}

	reg.Relics["anchor"] = &RelicDefinition{ID: "anchor", Name: "Anchor", Triggers: []TriggerRegistration{
		{Event: OnCombatStart, Effects: []Effect{Block{Amount: Literal(10)}}},
	}}
	reg.Relics["burningBlood"] = &RelicDefinition{ID: "burningBlood", Name: "Burning Blood", Triggers: []TriggerRegistration{
		{Event: OnCombatEnd, Effects: []Effect{Heal{Amount: Literal(6)}}},
	}}
	reg.Relics["calipers"] = &RelicDefinition{ID: "calipers", Name: "Calipers", Passive: PowerPassive{RetainBlock: true}}
	reg.Relics["iceCream"] = &RelicDefinition{ID: "iceCream", Name: "Ice Cream", Passive: PowerPassive{RetainEnergy: true}}

	reg.Rooms["pit"] = Room{ID: "pit", Kind: RoomCombat, Enemies: []string{"dummy", "dummy"}}
	reg.Rooms["camp"] = Room{ID: "camp", Kind: RoomRest}
	reg.Rooms["chest"] = Room{ID: "chest", Kind: RoomTreasure, Gold: 50}

	reg.Decks["starter"] = []DeckCard{{Card: "strike", Count: 5}, {Card: "defend", Count: 5}}
	reg.Heroes["knight"] = &HeroDefinition{ID: "knight", Name: "Knight", MaxHealth: 80, MaxEnergy: 3, Deck: "starter"}
	return reg
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return NewEngine(testRegistry(), append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
}

// newTestCombat builds a mid-turn combat state directly: player at 80/80
// with 3 energy, enemies spawned from their definitions.
func newTestCombat(t *testing.T, e *Engine, enemies ...string) *CombatState {
	t.Helper()
	st := &CombatState{
		Phase: PhasePlayerTurn,
		Turn:  1,
		Player: &Player{
			Entity:    Entity{ID: PlayerID, CurrentHealth: 80, MaxHealth: 80, Powers: map[string]*PowerInstance{}},
			Energy:    3,
			MaxEnergy: 3,
		},
		Dice: NewDice(7),
	}
	for _, id := range enemies {
		def, ok := e.reg.Enemy(id)
		if !ok {
			t.Fatalf("unknown enemy %q", id)
		}
		e.spawnEnemy(st, def)
	}
	return st
}

// newTestRun starts a combat through the action interface.
func newTestRun(t *testing.T, e *Engine, deck []DeckCard, relics []string, enemies ...string) *RunState {
	t.Helper()
	run := NewRun(Hero{Name: "Knight", MaxHealth: 80, MaxEnergy: 3}, deck, relics, 42)
	run = e.ApplyAction(run, Action{Type: ActionStartCombat, Enemies: enemies, Room: "test"})
	if run.Combat == nil {
		t.Fatalf("combat did not start")
	}
	return run
}

// addToHand puts fresh copies of cards in the player's hand and returns
// them.
func addToHand(st *CombatState, ids ...string) []*CardInstance {
	var out []*CardInstance
	for _, id := range ids {
		c := NewCard(&st.Dice, id, false)
		st.Hand = append(st.Hand, c)
		out = append(out, c)
	}
	return out
}

// addToDraw puts cards on the draw pile; the last id ends up on top.
func addToDraw(st *CombatState, ids ...string) []*CardInstance {
	var out []*CardInstance
	for _, id := range ids {
		c := NewCard(&st.Dice, id, false)
		st.DrawPile = append(st.DrawPile, c)
		out = append(out, c)
	}
	return out
}

func eventsOf(st *CombatState, t log.EventType) []log.VisualEvent {
	return log.Filter(st.VisualQueue, t)
}

func enemyIDs(st *CombatState) []string {
	ids := make([]string, len(st.Enemies))
	for i, en := range st.Enemies {
		ids[i] = en.ID
	}
	return ids
}
