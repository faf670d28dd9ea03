package combat

// Value is a numeric amount resolved against the state at execution time.
// The variants are Literal, Scaled and PowerStacks.
type Value interface {
	resolve(e *Engine, st *CombatState, ctx EffectContext) int
}

// Literal is a fixed amount.
type Literal int

func (l Literal) resolve(*Engine, *CombatState, EffectContext) int {
	return int(l)
}

// Resource names a quantity read from the state for scaling and conditions.
type Resource string

const (
	ResourceEnergy        Resource = "energy"
	ResourceMaxEnergy     Resource = "maxEnergy"
	ResourceHealth        Resource = "health"
	ResourceMaxHealth     Resource = "maxHealth"
	ResourceMissingHealth Resource = "missingHealth"
	ResourceBlock         Resource = "block"
	ResourceBarrier       Resource = "barrier"
	ResourceHand          Resource = "hand"
	ResourceDrawPile      Resource = "drawPile"
	ResourceDiscardPile   Resource = "discardPile"
	ResourceExhaustPile   Resource = "exhaustPile"
	ResourceCardsPlayed   Resource = "cardsPlayed"
	ResourceTurn          Resource = "turn"
	ResourceEnemyCount    Resource = "enemyCount"
)

// Resources lists every known resource.
var Resources = []Resource{
	ResourceEnergy, ResourceMaxEnergy, ResourceHealth, ResourceMaxHealth,
	ResourceMissingHealth, ResourceBlock, ResourceBarrier, ResourceHand,
	ResourceDrawPile, ResourceDiscardPile, ResourceExhaustPile,
	ResourceCardsPlayed, ResourceTurn, ResourceEnemyCount,
}

func (r Resource) Valid() bool {
	for _, known := range Resources {
		if r == known {
			return true
		}
	}
	return false
}

// Scaled is Base + PerUnit × the source's current Resource.
type Scaled struct {
	Resource Resource
	Base     int
	PerUnit  int
}

func (s Scaled) resolve(e *Engine, st *CombatState, ctx EffectContext) int {
	units, _ := resourceValue(st, ctx.source(), s.Resource)
	return s.Base + s.PerUnit*units
}

// PowerStacks reads a power's stack count. An empty Power means the stacks
// of the power whose trigger is executing.
type PowerStacks struct {
	Power      string
	Target     string // entity whose stacks are read; defaults to the source
	Multiplier int    // 0 means 1
}

func (p PowerStacks) resolve(e *Engine, st *CombatState, ctx EffectContext) int {
	mult := p.Multiplier
	if mult == 0 {
		mult = 1
	}
	if p.Power == "" {
		return ctx.PowerStacks * mult
	}
	target := p.Target
	if target == "" {
		target = TargetSelf
	}
	ids := e.resolveKeyword(st, target, ctx)
	if len(ids) == 0 {
		return 0
	}
	ent := st.Entity(ids[0])
	if ent == nil {
		return 0
	}
	return ent.Stacks(p.Power) * mult
}

// resourceValue reads a resource from the point of view of the given entity.
// Pile and turn resources are global to the combat.
func resourceValue(st *CombatState, entityID string, r Resource) (int, bool) {
	switch r {
	case ResourceHand:
		return len(st.Hand), true
	case ResourceDrawPile:
		return len(st.DrawPile), true
	case ResourceDiscardPile:
		return len(st.DiscardPile), true
	case ResourceExhaustPile:
		return len(st.ExhaustPile), true
	case ResourceCardsPlayed:
		return st.CardsPlayedThisTurn, true
	case ResourceTurn:
		return st.Turn, true
	case ResourceEnemyCount:
		return len(st.Enemies), true
	}

	ent := st.Entity(entityID)
	if ent == nil {
		return 0, false
	}
	switch r {
	case ResourceHealth:
		return ent.CurrentHealth, true
	case ResourceMaxHealth:
		return ent.MaxHealth, true
	case ResourceMissingHealth:
		return max(0, ent.MaxHealth-ent.CurrentHealth), true
	case ResourceBlock:
		return ent.Block, true
	case ResourceBarrier:
		return ent.Barrier, true
	case ResourceEnergy:
		if entityID == PlayerID {
			return st.Player.Energy, true
		}
		return st.Enemy(entityID).Energy, true
	case ResourceMaxEnergy:
		if entityID == PlayerID {
			return st.Player.MaxEnergy, true
		}
		return 0, true
	}
	return 0, false
}

// valueOr resolves v, or returns def when v is absent.
func (e *Engine) valueOr(st *CombatState, v Value, ctx EffectContext, def int) int {
	if v == nil {
		return def
	}
	return v.resolve(e, st, ctx)
}
