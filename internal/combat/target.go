package combat

import "slices"

// targets resolves the entity ids a leaf affects.
//
// # Precedence
//
// An explicit target on the effect wins. Otherwise a target bound by
// forEach is used; if that entity has died in the meantime the leaf does
// nothing. Otherwise the leaf's default applies.
func (e *Engine) targets(st *CombatState, explicit, def string, ctx EffectContext) []string {
	if explicit != "" {
		return e.resolveKeyword(st, explicit, ctx)
	}
	if ctx.CurrentTarget != "" {
		if ent := st.Entity(ctx.CurrentTarget); ent != nil && ent.Alive() {
			return []string{ctx.CurrentTarget}
		}
		return nil
	}
	return e.resolveKeyword(st, def, ctx)
}

// opponents returns the live entities hostile to the source, in order.
func (st *CombatState) opponents(source string) []string {
	if source != PlayerID {
		if st.Player == nil || !st.Player.Alive() {
			return nil
		}
		return []string{PlayerID}
	}
	ids := make([]string, 0, len(st.Enemies))
	for _, en := range st.Enemies {
		if en.Alive() {
			ids = append(ids, en.ID)
		}
	}
	return ids
}

// resolveKeyword maps a target keyword or entity id to live entity ids.
// Enemy keywords are relative to the source: for an enemy, the player is
// its only enemy.
func (e *Engine) resolveKeyword(st *CombatState, kw string, ctx EffectContext) []string {
	source := ctx.source()
	switch kw {
	case TargetSelf:
		return liveOnly(st, source)
	case TargetPlayer:
		return liveOnly(st, PlayerID)
	case TargetEnemy:
		opp := st.opponents(source)
		if ctx.Chosen != "" && slices.Contains(opp, ctx.Chosen) {
			return []string{ctx.Chosen}
		}
		if len(opp) == 0 {
			return nil
		}
		return opp[:1]
	case TargetFirstEnemy:
		opp := st.opponents(source)
		if len(opp) == 0 {
			return nil
		}
		return opp[:1]
	case TargetAllEnemies:
		return st.opponents(source)
	case TargetRandomEnemy:
		opp := st.opponents(source)
		if len(opp) == 0 {
			return nil
		}
		return []string{opp[st.Dice.Intn(len(opp))]}
	case TargetWeakestEnemy, TargetStrongestEnemy:
		opp := st.opponents(source)
		if len(opp) == 0 {
			return nil
		}
		best := opp[0]
		for _, id := range opp[1:] {
			hp := st.Entity(id).CurrentHealth
			cur := st.Entity(best).CurrentHealth
			if (kw == TargetWeakestEnemy && hp < cur) || (kw == TargetStrongestEnemy && hp > cur) {
				best = id
			}
		}
		return []string{best}
	}
	return liveOnly(st, kw)
}

func liveOnly(st *CombatState, id string) []string {
	if ent := st.Entity(id); ent != nil && ent.Alive() {
		return []string{id}
	}
	return nil
}

// isPile reports whether a target names a card pile.
func isPile(target string) bool {
	switch Pile(target) {
	case PileHand, PileDraw, PileDiscard, PileExhaust:
		return true
	}
	return false
}

// pileOrder returns a pile's cards with the next card to leave first: the
// draw pile top-down, every other pile front to back.
func (st *CombatState) pileOrder(p Pile) []*CardInstance {
	pile := st.pile(p)
	if pile == nil {
		return nil
	}
	out := slices.Clone(*pile)
	if p == PileDraw {
		slices.Reverse(out)
	}
	return out
}
