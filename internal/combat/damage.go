package combat

import (
	"github.com/peterkuimelis/cardcrawl/internal/log"
	"go.uber.org/zap"
)

// Combo names an elemental interaction between incoming damage and a status
// on the target.
type Combo string

const (
	ComboNone      Combo = ""
	ComboExplosion Combo = "explosion" // oiled + fire
	ComboConducted Combo = "conducted" // wet + lightning, chains to the other enemies
	ComboShatter   Combo = "shatter"   // frozen + physical, executes at low health
)

// ShatterExecutePercent is the health percentage at or below which a
// shattered target dies outright.
const ShatterExecutePercent = 15

type comboRule struct {
	status  string
	element Element
	combo   Combo
	num     int // multiplier numerator over 2
}

var comboRules = []comboRule{
	{PowerOiled, ElementFire, ComboExplosion, 4},
	{PowerWet, ElementLightning, ComboConducted, 3},
	{PowerFrozen, ElementPhysical, ComboShatter, 3},
}

// DamageOptions qualify one hit.
type DamageOptions struct {
	Source    string
	Element   Element
	Piercing  bool // skip block and barrier
	Reduction int  // flat passive reduction of the target
	Chained   bool // hit produced by a conducted chain; never chains again
}

// DamageResult reports how one hit was absorbed.
type DamageResult struct {
	Incoming       int // amount after multipliers and reduction
	Blocked        int
	Absorbed       int // taken by barrier
	AmountToHealth int // health actually lost
	Died           bool
	Combo          Combo
	Executed       bool
}

// ApplyDamage runs one hit through the defense layers of an entity:
// vulnerability/resistance, elemental combo, passive reduction, block,
// barrier, health. Consumed combo statuses are removed from the entity.
func ApplyDamage(ent *Entity, amount int, opts DamageOptions) DamageResult {
	var res DamageResult
	if ent == nil || !ent.Alive() {
		return res
	}
	amount = max(0, amount)

	if ent.VulnerableTo(opts.Element) {
		amount = amount * 3 / 2
	}
	if ent.Resists(opts.Element) {
		amount = amount / 2
	}

	element := opts.Element
	if element == ElementNone {
		element = ElementPhysical
	}
	for _, rule := range comboRules {
		if element != rule.element || !ent.HasPower(rule.status) {
			continue
		}
		amount = amount * rule.num / 2
		delete(ent.Powers, rule.status)
		res.Combo = rule.combo
		break
	}

	amount = max(0, amount-opts.Reduction)
	res.Incoming = amount

	if !opts.Piercing {
		res.Blocked = min(ent.Block, amount)
		ent.Block -= res.Blocked
		amount -= res.Blocked

		res.Absorbed = min(ent.Barrier, amount)
		ent.Barrier -= res.Absorbed
		amount -= res.Absorbed
	}

	before := ent.CurrentHealth
	ent.CurrentHealth = max(0, ent.CurrentHealth-amount)

	if res.Combo == ComboShatter && ent.CurrentHealth > 0 &&
		ent.CurrentHealth*100 <= ShatterExecutePercent*ent.MaxHealth {
		ent.CurrentHealth = 0
		res.Executed = true
	}

	res.AmountToHealth = before - ent.CurrentHealth
	res.Died = ent.CurrentHealth <= 0
	return res
}

// attackAmount applies the attacker's and defender's attack modifiers.
func attackAmount(attacker, defender *Entity, amount int) int {
	if attacker != nil {
		amount += attacker.Stacks(PowerStrength)
		if attacker.Stacks(PowerWeak) > 0 {
			amount = amount * 3 / 4
		}
	}
	if defender != nil && defender.Stacks(PowerVulnerable) > 0 {
		amount = amount * 3 / 2
	}
	return max(0, amount)
}

// dealDamage applies a hit to a live entity and runs everything that hangs
// off it: statistics, events, onDamaged, deaths, the outcome check and the
// conducted chain.
func (e *Engine) dealDamage(st *CombatState, target string, amount int, opts DamageOptions, attack bool, depth int) DamageResult {
	ent := st.Entity(target)
	if ent == nil || !ent.Alive() {
		e.skip("damage target missing", zap.String("target", target))
		return DamageResult{}
	}
	if attack {
		amount = attackAmount(st.Entity(opts.Source), ent, amount)
	}
	opts.Reduction = e.passive(st, target).DamageReduction

	before := ent.CurrentHealth
	res := ApplyDamage(ent, amount, opts)

	if target == PlayerID {
		st.Stats.DamageTaken += res.AmountToHealth
	} else {
		st.Stats.DamageDealt += res.Incoming
		if en := st.Enemy(target); en != nil {
			en.DamageTaken += res.AmountToHealth
		}
	}
	st.emit(log.NewDamageEvent(opts.Source, target, res.Incoming, res.AmountToHealth, before, ent.CurrentHealth))

	if res.Combo != ComboNone {
		st.Stats.Combos++
		st.emit(log.NewComboEvent(opts.Source, target, string(res.Combo), res.Incoming))
		for _, rule := range comboRules {
			if rule.combo == res.Combo {
				st.emit(log.NewPowerRemovedEvent(target, rule.status))
			}
		}
	}

	if res.Died {
		e.handleDeath(st, target, opts.Source, depth)
	} else if res.AmountToHealth > 0 && opts.Source != target {
		e.fireTrigger(st, target, OnDamaged, EffectContext{Chosen: opts.Source, Depth: depth})
	}
	e.checkOutcome(st)

	if res.Combo == ComboConducted && !opts.Chained && target != PlayerID {
		for _, other := range st.opponents(PlayerID) {
			if other == target {
				continue
			}
			chained := opts
			chained.Chained = true
			e.dealDamage(st, other, res.Incoming, chained, false, depth)
		}
	}
	return res
}

// handleDeath removes a dead enemy and fires onKill for the killer. Player
// death only feeds the outcome check.
func (e *Engine) handleDeath(st *CombatState, dead, killer string, depth int) {
	if dead == PlayerID {
		return
	}
	st.removeEnemy(dead)
	st.Stats.EnemiesKilled++
	st.emit(log.NewDeathEvent(dead, killer))
	e.checkOutcome(st)
	if killer != "" && killer != dead {
		e.fireTrigger(st, killer, OnKill, EffectContext{Chosen: dead, Depth: depth})
	}
}

// checkOutcome applies the terminal transitions. A dead player always wins
// out over an empty enemy list.
func (e *Engine) checkOutcome(st *CombatState) {
	if st.Player != nil && st.Player.CurrentHealth <= 0 {
		if st.Phase != PhaseDefeat && e.transition(st, eventLose) {
			st.emit(log.NewDefeatEvent())
		}
		return
	}
	if len(st.Enemies) == 0 && !st.Phase.Terminal() {
		if e.transition(st, eventWin) {
			st.emit(log.NewVictoryEvent())
		}
	}
}

// heal restores health up to max.
func (e *Engine) heal(st *CombatState, target string, amount int, depth int) int {
	ent := st.Entity(target)
	if ent == nil || !ent.Alive() || amount <= 0 {
		return 0
	}
	before := ent.CurrentHealth
	ent.CurrentHealth = min(ent.MaxHealth, ent.CurrentHealth+amount)
	gained := ent.CurrentHealth - before
	if gained <= 0 {
		return 0
	}
	if target == PlayerID {
		st.Stats.HealingDone += gained
	}
	st.emit(log.NewHealEvent(target, gained, before, ent.CurrentHealth))
	e.fireTrigger(st, target, OnHeal, EffectContext{Depth: depth})
	return gained
}

// gainBlock adds block. Effect-sourced block is modified by the owner's
// dexterity and frail.
func (e *Engine) gainBlock(st *CombatState, target string, amount int, modified bool) {
	ent := st.Entity(target)
	if ent == nil || !ent.Alive() {
		return
	}
	if modified {
		amount += ent.Stacks(PowerDexterity)
		if ent.Stacks(PowerFrail) > 0 {
			amount = amount * 3 / 4
		}
	}
	if amount <= 0 {
		return
	}
	ent.Block += amount
	if target == PlayerID {
		st.Stats.BlockGained += amount
	}
	st.emit(log.NewBlockEvent(target, amount, ent.Block))
}

func (e *Engine) gainBarrier(st *CombatState, target string, amount int) {
	ent := st.Entity(target)
	if ent == nil || !ent.Alive() || amount <= 0 {
		return
	}
	ent.Barrier += amount
	st.emit(log.NewBarrierEvent(target, amount, ent.Barrier))
}

// changeEnergy adds (or, for negative delta, spends) player energy. Energy
// never drops below 0 and has no ceiling.
func (e *Engine) changeEnergy(st *CombatState, delta int) {
	if st.Player == nil || delta == 0 {
		return
	}
	before := st.Player.Energy
	st.Player.Energy = max(0, st.Player.Energy+delta)
	if st.Player.Energy != before {
		st.emit(log.NewEnergyEvent(st.Player.Energy-before, st.Player.Energy))
	}
}

// gainGold records gold earned during combat; it is paid into the run when
// the combat settles.
func (e *Engine) gainGold(st *CombatState, amount int, ctx EffectContext) {
	if amount <= 0 {
		return
	}
	st.Stats.GoldGained += amount
	st.emit(log.NewGoldEvent(amount))
	e.fireTrigger(st, PlayerID, OnGoldGained, EffectContext{Depth: ctx.Depth})
}
