package combat

import (
	"github.com/peterkuimelis/cardcrawl/internal/log"
)

// Combinators recurse through Engine.Execute, the same entry point leaves
// use, so every nested effect sees the mutations made before it.

func (c Conditional) apply(e *Engine, st *CombatState, ctx EffectContext) {
	if c.If != nil && c.If.holds(e, st, ctx) {
		st.emit(log.NewConditionalTriggerEvent(ctx.source(), "then"))
		e.ExecuteAll(st, c.Then, ctx)
		return
	}
	st.emit(log.NewConditionalTriggerEvent(ctx.source(), "else"))
	e.ExecuteAll(st, c.Else, ctx)
}

func (r Repeat) apply(e *Engine, st *CombatState, ctx EffectContext) {
	times := e.valueOr(st, r.Times, ctx, 0)
	for i := 1; i <= times; i++ {
		st.emit(log.NewRepeatEffectEvent(ctx.source(), times, i))
		e.ExecuteAll(st, r.Effects, ctx)
	}
}

func (r Random) apply(e *Engine, st *CombatState, ctx EffectContext) {
	if len(r.Choices) == 0 {
		return
	}
	var pick int
	if len(r.Weights) == len(r.Choices) {
		pick = st.Dice.Weighted(r.Weights)
	} else {
		pick = st.Dice.Intn(len(r.Choices))
	}
	st.emit(log.NewRandomChoiceEvent(ctx.source(), pick, len(r.Choices)))
	e.ExecuteAll(st, r.Choices[pick], ctx)
}

func (s Sequence) apply(e *Engine, st *CombatState, ctx EffectContext) {
	e.ExecuteAll(st, s.Effects, ctx)
}

// apply snapshots the targets once, then runs the nested effects for each.
// Entities that die part way through are skipped by the leaves themselves.
func (f ForEach) apply(e *Engine, st *CombatState, ctx EffectContext) {
	target := f.Target
	if target == "" {
		target = TargetAllEnemies
	}

	if isPile(target) {
		cards := st.pileOrder(Pile(target))
		uids := make([]string, len(cards))
		for i, c := range cards {
			uids[i] = c.UID
		}
		for _, uid := range uids {
			inner := ctx
			inner.CurrentCard = uid
			e.ExecuteAll(st, f.Effects, inner)
		}
		return
	}

	for _, id := range e.resolveKeyword(st, target, ctx) {
		inner := ctx
		inner.CurrentTarget = id
		e.ExecuteAll(st, f.Effects, inner)
	}
}
