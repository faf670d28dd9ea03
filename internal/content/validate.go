package content

import (
	"fmt"
	"slices"
	"strings"

	"github.com/peterkuimelis/cardcrawl/internal/combat"
)

// Problem is one defect found in loaded content.
type Problem struct {
	Where string
	Err   error
}

func (p Problem) Error() string {
	return p.Where + ": " + p.Err.Error()
}

func (p Problem) Unwrap() error {
	return p.Err
}

// ValidationError aggregates every problem found while loading content.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "content: %d problem(s)", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p
	}
	return errs
}

var (
	cardTypes  = []combat.CardType{combat.CardTypeAttack, combat.CardTypeSkill, combat.CardTypePower, combat.CardTypeStatus, combat.CardTypeCurse}
	rarities   = []combat.Rarity{"", combat.RarityStarter, combat.RarityCommon, combat.RarityUncommon, combat.RarityRare}
	stacks     = []combat.StackBehavior{combat.StackIntensity, combat.StackDuration, combat.StackNone}
	intents    = []combat.IntentType{combat.IntentAttack, combat.IntentDefend, combat.IntentBuff, combat.IntentDebuff, combat.IntentAbility, combat.IntentUnknown}
	roomKinds  = []combat.RoomKind{combat.RoomCombat, combat.RoomElite, combat.RoomBoss, combat.RoomRest, combat.RoomTreasure, combat.RoomShop, combat.RoomEvent}
	piles      = []combat.Pile{"", combat.PileHand, combat.PileDraw, combat.PileDiscard, combat.PileExhaust}
	selections = []combat.Selection{"", combat.SelectFirst, combat.SelectRandom, combat.SelectAll, combat.SelectCurrent}
	ultimates  = []combat.UltimateTrigger{combat.UltimateHealthPercent, combat.UltimateDamageTaken, combat.UltimateTurn}
)

type validator struct {
	reg      *combat.Registry
	problems []Problem
}

// Validate checks a registry for dangling references and out-of-vocabulary
// fields. It returns nil when the content is consistent.
func Validate(reg *combat.Registry) []Problem {
	v := &validator{reg: reg}

	for _, id := range sortedKeys(reg.Cards) {
		c := reg.Cards[id]
		where := "card " + id
		v.check(where, slices.Contains(cardTypes, c.Type), "type %q", c.Type)
		v.check(where, slices.Contains(rarities, c.Rarity), "rarity %q", c.Rarity)
		v.element(where, c.Element)
		v.target(where, c.Target)
		v.effects(where, c.Effects)
		if c.Upgrade != nil {
			v.effects(where+" upgrade", c.Upgrade.Effects)
		}
	}
	for _, id := range sortedKeys(reg.Powers) {
		p := reg.Powers[id]
		where := "power " + id
		v.check(where, slices.Contains(stacks, p.Stack), "stack %q", p.Stack)
		for _, t := range p.Triggers {
			v.effects(where+" "+string(t.Event), t.Effects)
		}
	}
	for _, id := range sortedKeys(reg.Relics) {
		for _, t := range reg.Relics[id].Triggers {
			v.effects("relic "+id+" "+string(t.Event), t.Effects)
		}
	}
	for _, id := range sortedKeys(reg.Enemies) {
		en := reg.Enemies[id]
		where := "enemy " + id
		v.check(where, en.MaxHealth > 0, "maxHealth %d", en.MaxHealth)
		v.check(where, len(en.Pattern) > 0, "empty pattern")
		v.element(where, en.Element)
		for _, el := range en.Vulnerabilities {
			v.element(where, el)
		}
		for _, el := range en.Resistances {
			v.element(where, el)
		}
		for _, power := range sortedKeys(en.Powers) {
			v.power(where, power)
		}
		for i, step := range en.Pattern {
			stepWhere := fmt.Sprintf("%s pattern %d", where, i)
			v.check(stepWhere, slices.Contains(intents, step.Intent), "intent %q", step.Intent)
			v.effects(stepWhere, step.Effects)
		}
		if en.Ability != nil {
			v.effects(where+" ability", en.Ability.Effects)
		}
		if en.Ultimate != nil {
			v.check(where, slices.Contains(ultimates, en.Ultimate.Trigger), "ultimate trigger %q", en.Ultimate.Trigger)
			v.effects(where+" ultimate", en.Ultimate.Effects)
		}
	}
	for _, id := range sortedKeys(reg.Rooms) {
		r := reg.Rooms[id]
		where := "room " + id
		v.check(where, slices.Contains(roomKinds, r.Kind), "kind %q", r.Kind)
		if r.Kind.HasCombat() {
			v.check(where, len(r.Enemies) > 0, "combat room without enemies")
		}
		for _, en := range r.Enemies {
			v.ref(where, "enemy", en, hasKey(reg.Enemies, en))
		}
	}
	for _, id := range sortedKeys(reg.Decks) {
		for _, c := range reg.Decks[id] {
			v.ref("deck "+id, "card", c.Card, hasKey(reg.Cards, c.Card))
		}
	}
	for _, id := range sortedKeys(reg.Heroes) {
		h := reg.Heroes[id]
		where := "hero " + id
		v.check(where, h.MaxHealth > 0, "maxHealth %d", h.MaxHealth)
		v.ref(where, "deck", h.Deck, hasKey(reg.Decks, h.Deck))
		for _, r := range h.Relics {
			v.ref(where, "relic", r, hasKey(reg.Relics, r))
		}
	}
	return v.problems
}

func (v *validator) check(where string, ok bool, format string, args ...any) {
	if !ok {
		v.problems = append(v.problems, Problem{Where: where, Err: fmt.Errorf(format+": %w", append(args, ErrInvalidField)...)})
	}
}

func (v *validator) ref(where, kind, id string, ok bool) {
	if !ok {
		v.problems = append(v.problems, Problem{Where: where, Err: fmt.Errorf("%s %q: %w", kind, id, ErrUnknownReference)})
	}
}

func (v *validator) power(where, id string) {
	v.ref(where, "power", id, hasKey(v.reg.Powers, id))
}

func (v *validator) element(where string, el combat.Element) {
	v.check(where, el.Valid(), "element %q", el)
}

func (v *validator) target(where, target string) {
	v.check(where, target == "" || slices.Contains(combat.TargetKeywords, target), "target %q", target)
}

func (v *validator) selector(where string, sel combat.CardSelector) {
	v.check(where, slices.Contains(piles, sel.From), "pile %q", sel.From)
	v.check(where, slices.Contains(selections, sel.Select), "select %q", sel.Select)
	v.filter(where, sel.Filter)
	v.value(where, sel.Count)
}

func (v *validator) filter(where string, f *combat.CardFilter) {
	if f == nil {
		return
	}
	for _, t := range f.Types {
		v.check(where, slices.Contains(cardTypes, t), "filter type %q", t)
	}
	v.element(where, f.Element)
	for _, id := range f.IDs {
		v.ref(where, "card", id, hasKey(v.reg.Cards, id))
	}
}

func (v *validator) value(where string, val combat.Value) {
	switch x := val.(type) {
	case combat.Scaled:
		v.check(where, x.Resource.Valid(), "resource %q", x.Resource)
	case combat.PowerStacks:
		if x.Power != "" {
			v.power(where, x.Power)
		}
		v.target(where, x.Target)
	}
}

func (v *validator) condition(where string, c combat.Condition) {
	switch x := c.(type) {
	case combat.ResourceCondition:
		v.check(where, x.Resource.Valid(), "resource %q", x.Resource)
		v.check(where, x.Op.Valid(), "op %q", x.Op)
		v.target(where, x.Target)
	case combat.HealthPercentCondition:
		v.check(where, x.Op.Valid(), "op %q", x.Op)
		v.target(where, x.Target)
	case combat.BlockCondition:
		v.check(where, x.Op.Valid(), "op %q", x.Op)
		v.target(where, x.Target)
	case combat.TurnCondition:
		v.check(where, x.Op.Valid(), "op %q", x.Op)
	case combat.HasRelicCondition:
		v.ref(where, "relic", x.Relic, hasKey(v.reg.Relics, x.Relic))
	case combat.HasPowerCondition:
		v.power(where, x.Power)
		v.check(where, x.Op.Valid(), "op %q", x.Op)
		v.target(where, x.Target)
	case combat.EnemyCountCondition:
		v.check(where, x.Op.Valid(), "op %q", x.Op)
	}
}

func (v *validator) effects(where string, effs []combat.Effect) {
	for i, eff := range effs {
		v.effect(fmt.Sprintf("%s effect %d (%s)", where, i, eff.Kind()), eff)
	}
}

func (v *validator) effect(where string, eff combat.Effect) {
	switch x := eff.(type) {
	case combat.Damage:
		v.value(where, x.Amount)
		v.target(where, x.Target)
		v.element(where, x.Element)
		v.check(where, x.Hits >= 0, "hits %d", x.Hits)
	case combat.Block:
		v.value(where, x.Amount)
		v.target(where, x.Target)
	case combat.Barrier:
		v.value(where, x.Amount)
		v.target(where, x.Target)
	case combat.Heal:
		v.value(where, x.Amount)
		v.target(where, x.Target)
	case combat.Draw:
		v.value(where, x.Amount)
	case combat.Energy:
		v.value(where, x.Amount)
	case combat.Discard:
		v.selector(where, x.CardSelector)
	case combat.Exhaust:
		v.selector(where, x.CardSelector)
	case combat.Retain:
		v.selector(where, x.CardSelector)
	case combat.Upgrade:
		v.selector(where, x.CardSelector)
	case combat.ModifyCost:
		v.selector(where, x.CardSelector)
	case combat.Scry:
		v.value(where, x.Amount)
		v.filter(where, x.Filter)
	case combat.Tutor:
		v.check(where, slices.Contains(piles, x.From), "pile %q", x.From)
		v.value(where, x.Amount)
		v.filter(where, x.Filter)
	case combat.Transform:
		v.selector(where, x.CardSelector)
		v.filter(where, x.Pool)
		if x.Into != "" {
			v.ref(where, "card", x.Into, hasKey(v.reg.Cards, x.Into))
		}
	case combat.ApplyPower:
		v.power(where, x.Power)
		v.value(where, x.Amount)
		v.target(where, x.Target)
	case combat.RemovePower:
		v.power(where, x.Power)
		v.target(where, x.Target)
	case combat.ReplayCard:
		v.value(where, x.Times)
	case combat.PlayTopCard:
		v.value(where, x.Amount)
	case combat.GainGold:
		v.value(where, x.Amount)
	case combat.Conditional:
		v.condition(where, x.If)
	case combat.Repeat:
		v.value(where, x.Times)
	case combat.Random:
		v.check(where, len(x.Choices) > 0, "random without choices")
		for _, w := range x.Weights {
			v.check(where, w >= 0, "weight %d", w)
		}
	case combat.ForEach:
		v.target(where, x.Target)
	}
	for i, list := range combat.Children(eff) {
		v.effects(fmt.Sprintf("%s/%d", where, i), list)
	}
}

func hasKey[V any](m map[string]V, k string) bool {
	_, ok := m[k]
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
