package combat

import (
	"github.com/peterkuimelis/cardcrawl/internal/log"
	"go.uber.org/zap"
)

// applyPower adds stacks of a power to an entity.
//
// # Stacking
//
// A new power is created with amount stacks. Reapplying adds to the
// existing amount unless the power does not stack, in which case the
// reapplication is ignored. A power whose amount reaches 0 is removed, and
// removeAtZero powers are removed as soon as they are no longer positive.
func (e *Engine) applyPower(st *CombatState, target, power string, amount int) {
	def, ok := e.reg.Power(power)
	if !ok {
		e.skip("unknown power", zap.String("power", power))
		return
	}
	ent := st.Entity(target)
	if ent == nil || !ent.Alive() {
		e.skip("power target missing", zap.String("target", target), zap.String("power", power))
		return
	}
	if amount == 0 {
		return
	}

	inst, held := ent.Powers[power]
	switch {
	case held && def.Stack == StackNone:
		return
	case held:
		inst.Amount += amount
	default:
		if amount < 0 && def.RemoveAtZero {
			return
		}
		if ent.Powers == nil {
			ent.Powers = make(map[string]*PowerInstance)
		}
		inst = &PowerInstance{ID: power, Amount: amount}
		ent.Powers[power] = inst
	}
	st.emit(log.NewPowerAppliedEvent(target, power, amount, inst.Amount))

	if inst.Amount == 0 || (def.RemoveAtZero && inst.Amount < 0) {
		e.removePower(st, target, power)
	}
}

// removePower deletes a power from an entity, if held.
func (e *Engine) removePower(st *CombatState, target, power string) {
	ent := st.Entity(target)
	if ent == nil {
		return
	}
	if _, ok := ent.Powers[power]; !ok {
		return
	}
	delete(ent.Powers, power)
	st.emit(log.NewPowerRemovedEvent(target, power))
}

// fireTrigger runs every registration for the event owned by the entity:
// the player's relics first (in acquisition order), then the owner's powers
// in id order. Each power's effects see powerStacks = its amount. Duration
// powers flagged removeAtZero count down once per registration fired.
func (e *Engine) fireTrigger(st *CombatState, owner string, trig Trigger, base EffectContext) {
	if trig == Passive {
		return
	}
	if base.Depth >= MaxTriggerDepth {
		e.skip("trigger depth exceeded", zap.String("owner", owner), zap.String("trigger", string(trig)))
		return
	}
	if st.Entity(owner) == nil {
		return
	}

	if owner == PlayerID {
		for _, relicID := range st.Relics {
			relic, ok := e.reg.Relic(relicID)
			if !ok {
				continue
			}
			for _, reg := range relic.Triggers {
				if reg.Event != trig {
					continue
				}
				st.emit(log.NewRelicTriggeredEvent(relicID, string(trig)))
				ctx := EffectContext{
					Source:      PlayerID,
					Chosen:      base.Chosen,
					PowerStacks: 1,
					PowerID:     relicID,
					Depth:       base.Depth + 1,
				}
				e.ExecuteAll(st, reg.Effects, ctx)
			}
		}
	}

	ent := st.Entity(owner)
	if ent == nil {
		return
	}
	for _, powerID := range ent.PowerIDs() {
		def, ok := e.reg.Power(powerID)
		if !ok {
			continue
		}
		for _, reg := range def.Triggers {
			if reg.Event != trig {
				continue
			}
			// Earlier effects may have killed the owner or removed the power.
			ent = st.Entity(owner)
			if ent == nil {
				return
			}
			inst, held := ent.Powers[powerID]
			if !held {
				break
			}
			st.emit(log.NewPowerTriggeredEvent(owner, powerID, string(trig), inst.Amount))
			ctx := EffectContext{
				Source:      owner,
				Chosen:      base.Chosen,
				PowerStacks: inst.Amount,
				PowerID:     powerID,
				Depth:       base.Depth + 1,
			}
			e.ExecuteAll(st, reg.Effects, ctx)

			if def.Stack == StackDuration && def.RemoveAtZero {
				e.tickDown(st, owner, powerID)
			}
		}
	}
}

// tickDown decrements a duration power by one, removing it at zero.
func (e *Engine) tickDown(st *CombatState, owner, power string) {
	ent := st.Entity(owner)
	if ent == nil {
		return
	}
	inst, ok := ent.Powers[power]
	if !ok {
		return
	}
	inst.Amount--
	if inst.Amount <= 0 {
		e.removePower(st, owner, power)
	}
}

// passive sums the passive values of the entity's powers and, for the
// player, relics.
func (e *Engine) passive(st *CombatState, owner string) PowerPassive {
	var out PowerPassive
	ent := st.Entity(owner)
	if ent == nil {
		return out
	}
	add := func(p PowerPassive) {
		out.DamageReduction += p.DamageReduction
		out.RetainBlock = out.RetainBlock || p.RetainBlock
		out.RetainEnergy = out.RetainEnergy || p.RetainEnergy
	}
	for id, inst := range ent.Powers {
		if inst.Amount <= 0 {
			continue
		}
		if def, ok := e.reg.Power(id); ok && !def.Passive.zero() {
			add(def.Passive)
		}
	}
	if owner == PlayerID {
		for _, relicID := range st.Relics {
			if relic, ok := e.reg.Relic(relicID); ok && !relic.Passive.zero() {
				add(relic.Passive)
			}
		}
	}
	return out
}
