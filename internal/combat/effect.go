package combat

import "slices"

// Effect is a node of an effect tree: either a leaf that changes the state
// or a combinator that runs nested effects. The set of types implementing
// apply is closed to this package.
type Effect interface {
	Kind() string
	apply(e *Engine, st *CombatState, ctx EffectContext)
}

// EffectContext travels down an effect tree. It is created per top-level
// dispatch and never stored in the state.
type EffectContext struct {
	Source        string  // entity id that owns the effect; defaults to the player
	CurrentTarget string  // entity id set by forEach
	CurrentCard   string  // card uid set by forEach over a pile
	Chosen        string  // target picked for the card being played, or the counterpart of a trigger
	PowerStacks   int     // stacks of the power whose trigger is executing
	PowerID       string  // power or relic whose trigger is executing
	Card          string  // uid of the card being played
	Element       Element // default element for damage leaves
	Attack        bool    // effects come from an attack card or an enemy attack
	Depth         int     // trigger cascade depth

	card      *CardInstance
	replaying bool
}

func (ctx EffectContext) source() string {
	if ctx.Source == "" {
		return PlayerID
	}
	return ctx.Source
}

// CardFilter is a predicate over card definitions. Zero fields match
// anything.
type CardFilter struct {
	Types       []CardType
	Element     Element
	Rarity      Rarity
	CostAtMost  *int
	CostAtLeast *int
	IDs         []string
	Upgraded    *bool
}

// Matches reports whether a card passes the filter. A nil filter matches
// every card.
func (f *CardFilter) Matches(def *CardDefinition, inst *CardInstance) bool {
	if f == nil {
		return true
	}
	if def == nil {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, def.Type) {
		return false
	}
	if f.Element != ElementNone && def.Element != f.Element {
		return false
	}
	if f.Rarity != "" && def.Rarity != f.Rarity {
		return false
	}
	upgraded := inst != nil && inst.Upgraded
	cost := def.CostFor(upgraded)
	if f.CostAtMost != nil && cost > *f.CostAtMost {
		return false
	}
	if f.CostAtLeast != nil && cost < *f.CostAtLeast {
		return false
	}
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, def.ID) {
		return false
	}
	if f.Upgraded != nil && upgraded != *f.Upgraded {
		return false
	}
	return true
}

// CardSelector chooses which cards of a pile a card leaf touches.
type CardSelector struct {
	From   Pile      // defaults per leaf
	Select Selection // defaults to first
	Filter *CardFilter
	Count  Value // defaults to 1; ignored by all
}

// --- Leaves ---

// Damage hits the target Hits times (at least once).
type Damage struct {
	Amount   Value
	Target   string
	Element  Element
	Piercing bool
	Hits     int
}

type Block struct {
	Amount Value
	Target string
}

type Barrier struct {
	Amount Value
	Target string
}

type Heal struct {
	Amount Value
	Target string
}

type Draw struct {
	Amount Value
}

// Energy gives the player energy. Negative amounts spend it.
type Energy struct {
	Amount Value
}

type Discard struct {
	CardSelector
}

type Exhaust struct {
	CardSelector
}

// Retain marks cards in hand to stay there at the next end of turn.
type Retain struct {
	CardSelector
}

// Scry looks at the top Amount cards of the draw pile and discards the ones
// matching Filter (status and curse cards when Filter is nil).
type Scry struct {
	Amount Value
	Filter *CardFilter
}

// Tutor moves matching cards from a pile to the hand.
type Tutor struct {
	From    Pile // defaults to the draw pile
	Filter  *CardFilter
	Amount  Value // defaults to 1
	Shuffle bool  // reshuffle the draw pile afterwards
}

type Upgrade struct {
	CardSelector
}

// Transform replaces cards with Into, or with a random definition from Pool.
type Transform struct {
	CardSelector
	Into string
	Pool *CardFilter
}

type ApplyPower struct {
	Power  string
	Amount Value
	Target string
}

type RemovePower struct {
	Power  string
	Target string
}

// ReplayCard runs the effects of the card being played again.
type ReplayCard struct {
	Times Value // defaults to 1
}

// PlayTopCard plays cards from the top of the draw pile for free.
type PlayTopCard struct {
	Amount  Value // defaults to 1
	Exhaust bool
}

// ModifyCost changes the cost of cards by Delta, for the rest of combat or
// only this turn.
type ModifyCost struct {
	CardSelector
	Delta    int
	ThisTurn bool
}

type GainGold struct {
	Amount Value
}

// --- Combinators ---

// Conditional runs exactly one branch.
type Conditional struct {
	If   Condition
	Then []Effect
	Else []Effect
}

type Repeat struct {
	Times   Value
	Effects []Effect
}

// Random runs one of Choices. Weights apply only when they line up with
// Choices.
type Random struct {
	Choices [][]Effect
	Weights []int
}

type Sequence struct {
	Effects []Effect
}

// ForEach runs Effects once per resolved target with the target bound in
// the context.
type ForEach struct {
	Target  string
	Effects []Effect
}

func (Damage) Kind() string      { return "damage" }
func (Block) Kind() string       { return "block" }
func (Barrier) Kind() string     { return "barrier" }
func (Heal) Kind() string        { return "heal" }
func (Draw) Kind() string        { return "draw" }
func (Energy) Kind() string      { return "energy" }
func (Discard) Kind() string     { return "discard" }
func (Exhaust) Kind() string     { return "exhaust" }
func (Retain) Kind() string      { return "retain" }
func (Scry) Kind() string        { return "scry" }
func (Tutor) Kind() string       { return "tutor" }
func (Upgrade) Kind() string     { return "upgrade" }
func (Transform) Kind() string   { return "transform" }
func (ApplyPower) Kind() string  { return "applyPower" }
func (RemovePower) Kind() string { return "removePower" }
func (ReplayCard) Kind() string  { return "replayCard" }
func (PlayTopCard) Kind() string { return "playTopCard" }
func (ModifyCost) Kind() string  { return "modifyCost" }
func (GainGold) Kind() string    { return "gainGold" }
func (Conditional) Kind() string { return "conditional" }
func (Repeat) Kind() string      { return "repeat" }
func (Random) Kind() string      { return "random" }
func (Sequence) Kind() string    { return "sequence" }
func (ForEach) Kind() string     { return "forEach" }

// Children returns the nested effect lists of a combinator, or nil for a
// leaf. Content validation walks trees through it.
func Children(eff Effect) [][]Effect {
	switch c := eff.(type) {
	case Conditional:
		return [][]Effect{c.Then, c.Else}
	case Repeat:
		return [][]Effect{c.Effects}
	case Random:
		return c.Choices
	case Sequence:
		return [][]Effect{c.Effects}
	case ForEach:
		return [][]Effect{c.Effects}
	}
	return nil
}
