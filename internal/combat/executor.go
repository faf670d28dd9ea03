package combat

// --- Entity leaves ---

func (d Damage) apply(e *Engine, st *CombatState, ctx EffectContext) {
	amount := e.valueOr(st, d.Amount, ctx, 0)
	element := d.Element
	if element == ElementNone {
		element = ctx.Element
	}
	opts := DamageOptions{Source: ctx.source(), Element: element, Piercing: d.Piercing}
	for range max(1, d.Hits) {
		for _, target := range e.targets(st, d.Target, TargetEnemy, ctx) {
			e.dealDamage(st, target, amount, opts, ctx.Attack, ctx.Depth)
			if ctx.Attack {
				e.fireTrigger(st, ctx.source(), OnAttack, EffectContext{Chosen: target, Depth: ctx.Depth})
			}
		}
	}
}

func (b Block) apply(e *Engine, st *CombatState, ctx EffectContext) {
	amount := e.valueOr(st, b.Amount, ctx, 0)
	for _, target := range e.targets(st, b.Target, TargetSelf, ctx) {
		e.gainBlock(st, target, amount, true)
	}
}

func (b Barrier) apply(e *Engine, st *CombatState, ctx EffectContext) {
	amount := e.valueOr(st, b.Amount, ctx, 0)
	for _, target := range e.targets(st, b.Target, TargetSelf, ctx) {
		e.gainBarrier(st, target, amount)
	}
}

func (h Heal) apply(e *Engine, st *CombatState, ctx EffectContext) {
	amount := e.valueOr(st, h.Amount, ctx, 0)
	for _, target := range e.targets(st, h.Target, TargetSelf, ctx) {
		e.heal(st, target, amount, ctx.Depth)
	}
}

func (d Draw) apply(e *Engine, st *CombatState, ctx EffectContext) {
	e.drawCards(st, e.valueOr(st, d.Amount, ctx, 1))
}

func (en Energy) apply(e *Engine, st *CombatState, ctx EffectContext) {
	if ctx.source() != PlayerID {
		if enemy := st.Enemy(ctx.source()); enemy != nil {
			enemy.Energy = max(0, enemy.Energy+e.valueOr(st, en.Amount, ctx, 0))
		}
		return
	}
	e.changeEnergy(st, e.valueOr(st, en.Amount, ctx, 0))
}

func (a ApplyPower) apply(e *Engine, st *CombatState, ctx EffectContext) {
	amount := e.valueOr(st, a.Amount, ctx, 1)
	for _, target := range e.targets(st, a.Target, TargetSelf, ctx) {
		e.applyPower(st, target, a.Power, amount)
	}
}

func (r RemovePower) apply(e *Engine, st *CombatState, ctx EffectContext) {
	for _, target := range e.targets(st, r.Target, TargetSelf, ctx) {
		e.removePower(st, target, r.Power)
	}
}

func (g GainGold) apply(e *Engine, st *CombatState, ctx EffectContext) {
	e.gainGold(st, e.valueOr(st, g.Amount, ctx, 0), ctx)
}

// --- Card replay leaves ---

func (r ReplayCard) apply(e *Engine, st *CombatState, ctx EffectContext) {
	if ctx.card == nil || ctx.replaying {
		e.skip("replayCard outside a card play")
		return
	}
	def, ok := e.reg.Card(ctx.card.DefinitionID)
	if !ok {
		return
	}
	replay := ctx
	replay.replaying = true
	for range e.valueOr(st, r.Times, ctx, 1) {
		e.ExecuteAll(st, def.EffectsFor(ctx.card.Upgraded), replay)
	}
}

func (p PlayTopCard) apply(e *Engine, st *CombatState, ctx EffectContext) {
	for range e.valueOr(st, p.Amount, ctx, 1) {
		if st.Phase.Terminal() {
			return
		}
		card := e.popTop(st)
		if card == nil {
			e.skip("playTopCard with empty piles")
			return
		}
		target := ctx.Chosen
		if target == "" || st.Enemy(target) == nil {
			target = firstOr(st.opponents(PlayerID), "")
		}
		e.resolveCard(st, card, target, 0, p.Exhaust, ctx.Depth+1)
	}
}

func firstOr(ids []string, def string) string {
	if len(ids) == 0 {
		return def
	}
	return ids[0]
}
