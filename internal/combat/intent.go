package combat

import (
	"fmt"

	"github.com/peterkuimelis/cardcrawl/internal/log"
	"go.uber.org/zap"
)

// spawnEnemy creates a live enemy from its definition. Ids are
// "<definition>_<n>" with n counting copies of the definition in this
// combat, starting at 1.
func (e *Engine) spawnEnemy(st *CombatState, def *EnemyDefinition) *Enemy {
	n := 1
	for {
		if st.Enemy(fmt.Sprintf("%s_%d", def.ID, n)) == nil {
			break
		}
		n++
	}
	en := &Enemy{
		Entity: Entity{
			ID:              fmt.Sprintf("%s_%d", def.ID, n),
			CurrentHealth:   def.MaxHealth,
			MaxHealth:       def.MaxHealth,
			Powers:          make(map[string]*PowerInstance),
			Element:         def.Element,
			Vulnerabilities: append([]Element(nil), def.Vulnerabilities...),
			Resistances:     append([]Element(nil), def.Resistances...),
		},
		DefinitionID: def.ID,
		Name:         def.Name,
	}
	for power, amount := range def.Powers {
		if _, ok := e.reg.Power(power); ok && amount != 0 {
			en.Powers[power] = &PowerInstance{ID: power, Amount: amount}
		}
	}
	st.Enemies = append(st.Enemies, en)
	e.refreshIntent(st, en, def)
	return en
}

// currentStep returns the pattern step the enemy will execute next.
func currentStep(en *Enemy, def *EnemyDefinition) (PatternStep, bool) {
	if def == nil || len(def.Pattern) == 0 {
		return PatternStep{}, false
	}
	return def.Pattern[en.PatternIndex%len(def.Pattern)], true
}

// refreshIntent exposes the next pattern step as the enemy's intent.
func (e *Engine) refreshIntent(st *CombatState, en *Enemy, def *EnemyDefinition) {
	step, ok := currentStep(en, def)
	if !ok {
		en.Intent = Intent{Type: IntentUnknown}
		return
	}
	times := step.Times
	if step.Intent == IntentAttack && times < 1 {
		times = 1
	}
	en.Intent = Intent{Type: step.Intent, Value: step.Value, Times: times, Label: step.Label}
	st.emit(log.NewIntentEvent(en.ID, string(step.Intent), step.Value, times))
}

// ultimateReady reports whether the enemy's one-shot ultimate should fire.
func (e *Engine) ultimateReady(st *CombatState, en *Enemy, def *EnemyDefinition) bool {
	u := def.Ultimate
	if u == nil || en.UltimateTriggered {
		return false
	}
	switch u.Trigger {
	case UltimateHealthPercent:
		return en.HealthPercent() <= u.Value
	case UltimateDamageTaken:
		return en.DamageTaken >= u.Value
	case UltimateTurn:
		return st.Turn >= u.Value
	}
	return false
}

// enemyTurn runs one enemy's turn: block decay, onTurnStart, then exactly
// one of ultimate, ability or the declared intent, then onTurnEnd. The
// pattern only advances when the intent was executed.
func (e *Engine) enemyTurn(st *CombatState, id string) {
	en := st.Enemy(id)
	if en == nil {
		e.skip("enemyAction for unknown enemy", zap.String("enemy", id))
		return
	}
	def, ok := e.reg.Enemy(en.DefinitionID)
	if !ok {
		e.skip("enemy definition missing", zap.String("definition", en.DefinitionID))
		return
	}

	if !e.passive(st, id).RetainBlock {
		en.Block = 0
	}
	e.fireTrigger(st, id, OnTurnStart, EffectContext{})
	if en = st.Enemy(id); en == nil || st.Phase.Terminal() {
		return
	}

	en.Energy += def.EnergyPerTurn
	if en.AbilityCooldown > 0 {
		en.AbilityCooldown--
	}

	ctx := EffectContext{Source: id, Chosen: PlayerID}
	switch {
	case e.ultimateReady(st, en, def):
		en.UltimateTriggered = true
		st.emit(log.NewEnemyUltimateEvent(id, ultimateName(def.Ultimate)))
		e.ExecuteAll(st, def.Ultimate.Effects, ctx)
	case def.Ability != nil && en.AbilityCooldown == 0 && en.Energy >= def.Ability.Cost:
		en.Energy -= def.Ability.Cost
		en.AbilityCooldown = def.Ability.Cooldown
		st.emit(log.NewEnemyAbilityEvent(id, abilityName(def.Ability)))
		e.ExecuteAll(st, def.Ability.Effects, ctx)
	default:
		step, ok := currentStep(en, def)
		if ok {
			e.executeStep(st, id, step, ctx)
		}
		if en = st.Enemy(id); en != nil {
			en.PatternIndex = (en.PatternIndex + 1) % max(1, len(def.Pattern))
			e.refreshIntent(st, en, def)
		}
	}

	e.fireTrigger(st, id, OnTurnEnd, EffectContext{})
}

// executeStep carries out one pattern step for an enemy.
func (e *Engine) executeStep(st *CombatState, id string, step PatternStep, ctx EffectContext) {
	switch step.Intent {
	case IntentAttack:
		attack := ctx
		attack.Attack = true
		e.Execute(st, Damage{Amount: Literal(step.Value), Target: TargetEnemy, Hits: step.Times}, attack)
	case IntentDefend:
		e.gainBlock(st, id, step.Value, true)
	}
	e.ExecuteAll(st, step.Effects, ctx)
}

func ultimateName(u *EnemyUltimate) string {
	if u.Name != "" {
		return u.Name
	}
	return "ultimate"
}

func abilityName(a *EnemyAbility) string {
	if a.Name != "" {
		return a.Name
	}
	return "ability"
}
