package combat

import "slices"

// Comparison is the operator of a condition. The zero value means eq.
type Comparison string

const (
	OpLT  Comparison = "lt"
	OpLTE Comparison = "lte"
	OpEQ  Comparison = "eq"
	OpGTE Comparison = "gte"
	OpGT  Comparison = "gt"
	OpNE  Comparison = "ne"
)

func (c Comparison) Valid() bool {
	switch c {
	case "", OpLT, OpLTE, OpEQ, OpGTE, OpGT, OpNE:
		return true
	}
	return false
}

func (c Comparison) compare(a, b int) bool {
	switch c {
	case OpLT:
		return a < b
	case OpLTE:
		return a <= b
	case OpGTE:
		return a >= b
	case OpGT:
		return a > b
	case OpNE:
		return a != b
	default:
		return a == b
	}
}

// Condition is the test of a conditional effect. Each variant carries only
// the fields it compares.
type Condition interface {
	Kind() string
	holds(e *Engine, st *CombatState, ctx EffectContext) bool
}

// conditionSubject resolves the entity a condition inspects with the same
// precedence as leaves: explicit target, then the forEach binding, then the
// effect's source.
func (e *Engine) conditionSubject(st *CombatState, target string, ctx EffectContext) *Entity {
	ids := e.targets(st, target, TargetSelf, ctx)
	if len(ids) == 0 {
		return nil
	}
	return st.Entity(ids[0])
}

// ResourceCondition compares a resource of the subject.
type ResourceCondition struct {
	Resource Resource
	Target   string
	Op       Comparison
	Value    int
}

func (ResourceCondition) Kind() string { return "resource" }

func (c ResourceCondition) holds(e *Engine, st *CombatState, ctx EffectContext) bool {
	id := ctx.source()
	if c.Target != "" || ctx.CurrentTarget != "" {
		ent := e.conditionSubject(st, c.Target, ctx)
		if ent == nil {
			return false
		}
		id = ent.ID
	}
	v, ok := resourceValue(st, id, c.Resource)
	return ok && c.Op.compare(v, c.Value)
}

// HealthPercentCondition compares current health as a percentage of max.
type HealthPercentCondition struct {
	Target string
	Op     Comparison
	Value  int
}

func (HealthPercentCondition) Kind() string { return "healthPercent" }

func (c HealthPercentCondition) holds(e *Engine, st *CombatState, ctx EffectContext) bool {
	ent := e.conditionSubject(st, c.Target, ctx)
	return ent != nil && c.Op.compare(ent.HealthPercent(), c.Value)
}

// BlockCondition compares the subject's block.
type BlockCondition struct {
	Target string
	Op     Comparison
	Value  int
}

func (BlockCondition) Kind() string { return "block" }

func (c BlockCondition) holds(e *Engine, st *CombatState, ctx EffectContext) bool {
	ent := e.conditionSubject(st, c.Target, ctx)
	return ent != nil && c.Op.compare(ent.Block, c.Value)
}

// TurnCondition compares the combat turn number.
type TurnCondition struct {
	Op    Comparison
	Value int
}

func (TurnCondition) Kind() string { return "turn" }

func (c TurnCondition) holds(_ *Engine, st *CombatState, _ EffectContext) bool {
	return c.Op.compare(st.Turn, c.Value)
}

// HasRelicCondition holds when the player owns the relic.
type HasRelicCondition struct {
	Relic string
}

func (HasRelicCondition) Kind() string { return "hasRelic" }

func (c HasRelicCondition) holds(_ *Engine, st *CombatState, _ EffectContext) bool {
	return slices.Contains(st.Relics, c.Relic)
}

// HasPowerCondition holds when the subject has the power. With an Op the
// stack count is compared instead.
type HasPowerCondition struct {
	Power  string
	Target string
	Op     Comparison
	Value  int
}

func (HasPowerCondition) Kind() string { return "hasPower" }

func (c HasPowerCondition) holds(e *Engine, st *CombatState, ctx EffectContext) bool {
	ent := e.conditionSubject(st, c.Target, ctx)
	if ent == nil {
		return false
	}
	if c.Op == "" {
		return ent.HasPower(c.Power)
	}
	return c.Op.compare(ent.Stacks(c.Power), c.Value)
}

// EnemyCountCondition compares the number of live enemies.
type EnemyCountCondition struct {
	Op    Comparison
	Value int
}

func (EnemyCountCondition) Kind() string { return "enemyCount" }

func (c EnemyCountCondition) holds(_ *Engine, st *CombatState, _ EffectContext) bool {
	return c.Op.compare(len(st.Enemies), c.Value)
}
