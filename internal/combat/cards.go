package combat

import (
	"github.com/peterkuimelis/cardcrawl/internal/log"
	"go.uber.org/zap"
)

// scryDefault discards dead draws when a scry names no filter.
var scryDefault = &CardFilter{Types: []CardType{CardTypeStatus, CardTypeCurse}}

func (e *Engine) cardDef(c *CardInstance) *CardDefinition {
	def, _ := e.reg.Card(c.DefinitionID)
	return def
}

func (e *Engine) cardName(c *CardInstance) string {
	return e.reg.CardName(c.DefinitionID)
}

// EffectiveCost returns what playing the card costs right now.
func (e *Engine) EffectiveCost(c *CardInstance) int {
	def := e.cardDef(c)
	if def == nil {
		return 0
	}
	return max(0, def.CostFor(c.Upgraded)+c.CostModifier+c.TurnCostModifier)
}

// NewCard creates a card instance with a fresh uid from the dice.
func NewCard(d *Dice, definitionID string, upgraded bool) *CardInstance {
	return &CardInstance{UID: d.UID(), DefinitionID: definitionID, Upgraded: upgraded}
}

// --- Piles ---

// reshuffle moves the discard pile into the draw pile and shuffles it.
func (e *Engine) reshuffle(st *CombatState) {
	n := len(st.DiscardPile)
	if n == 0 {
		return
	}
	st.DrawPile = append(st.DrawPile, st.DiscardPile...)
	st.DiscardPile = nil
	e.shuffleDraw(st)
	st.emit(log.NewShuffleEvent(n))
}

func (e *Engine) shuffleDraw(st *CombatState) {
	st.Dice.Shuffle(len(st.DrawPile), func(i, j int) {
		st.DrawPile[i], st.DrawPile[j] = st.DrawPile[j], st.DrawPile[i]
	})
}

// popTop removes the top card of the draw pile, reshuffling the discard
// pile in first if the draw pile is empty. Returns nil if both are empty.
func (e *Engine) popTop(st *CombatState) *CardInstance {
	if len(st.DrawPile) == 0 {
		e.reshuffle(st)
	}
	if len(st.DrawPile) == 0 {
		return nil
	}
	card := st.DrawPile[len(st.DrawPile)-1]
	st.DrawPile = st.DrawPile[:len(st.DrawPile)-1]
	return card
}

// toHand puts a card into the hand, or into the discard pile when the hand
// is full.
func (e *Engine) toHand(st *CombatState, card *CardInstance) bool {
	if len(st.Hand) >= MaxHandSize {
		st.DiscardPile = append(st.DiscardPile, card)
		st.emit(log.NewDiscardEvent(card.UID, e.cardName(card), "hand full"))
		return false
	}
	st.Hand = append(st.Hand, card)
	return true
}

// drawCards draws n cards from the top of the draw pile.
func (e *Engine) drawCards(st *CombatState, n int) {
	for range n {
		card := e.popTop(st)
		if card == nil {
			return
		}
		if e.toHand(st, card) {
			st.emit(log.NewDrawEvent(card.UID, e.cardName(card)))
		}
	}
}

// moveCard moves a card from wherever it is to the given pile.
func (st *CombatState) moveCard(card *CardInstance, to Pile) {
	st.takeCard(card.UID)
	pile := st.pile(to)
	*pile = append(*pile, card)
}

// replaceCard swaps a card for another in the same pile position.
func (st *CombatState) replaceCard(uid string, card *CardInstance) bool {
	for _, p := range []Pile{PileHand, PileDraw, PileDiscard, PileExhaust} {
		pile := *st.pile(p)
		for i, c := range pile {
			if c.UID == uid {
				pile[i] = card
				return true
			}
		}
	}
	return false
}

// selectCards resolves a selector to a snapshot of matching cards.
func (e *Engine) selectCards(st *CombatState, sel CardSelector, from Pile, ctx EffectContext) []*CardInstance {
	if sel.From != "" {
		from = sel.From
	}
	var candidates []*CardInstance
	for _, c := range st.pileOrder(from) {
		if sel.Filter.Matches(e.cardDef(c), c) {
			candidates = append(candidates, c)
		}
	}

	switch sel.Select {
	case SelectAll:
		return candidates
	case SelectCurrent:
		for _, c := range candidates {
			if c.UID == ctx.CurrentCard {
				return []*CardInstance{c}
			}
		}
		return nil
	case SelectRandom:
		n := e.valueOr(st, sel.Count, ctx, 1)
		var picked []*CardInstance
		for len(picked) < n && len(candidates) > 0 {
			i := st.Dice.Intn(len(candidates))
			picked = append(picked, candidates[i])
			candidates = append(candidates[:i], candidates[i+1:]...)
		}
		return picked
	default:
		n := max(0, e.valueOr(st, sel.Count, ctx, 1))
		return candidates[:min(n, len(candidates))]
	}
}

// --- Card leaves ---

func (d Discard) apply(e *Engine, st *CombatState, ctx EffectContext) {
	for _, c := range e.selectCards(st, d.CardSelector, PileHand, ctx) {
		st.moveCard(c, PileDiscard)
		st.emit(log.NewDiscardEvent(c.UID, e.cardName(c), "effect"))
	}
}

func (x Exhaust) apply(e *Engine, st *CombatState, ctx EffectContext) {
	for _, c := range e.selectCards(st, x.CardSelector, PileHand, ctx) {
		st.moveCard(c, PileExhaust)
		st.emit(log.NewExhaustEvent(c.UID, e.cardName(c), "effect"))
	}
}

func (r Retain) apply(e *Engine, st *CombatState, ctx EffectContext) {
	sel := r.CardSelector
	sel.From = PileHand
	for _, c := range e.selectCards(st, sel, PileHand, ctx) {
		c.Retain = true
		st.emit(log.NewRetainEvent(c.UID, e.cardName(c)))
	}
}

func (s Scry) apply(e *Engine, st *CombatState, ctx EffectContext) {
	n := max(0, e.valueOr(st, s.Amount, ctx, 1))
	top := st.pileOrder(PileDraw)
	top = top[:min(n, len(top))]
	filter := s.Filter
	if filter == nil {
		filter = scryDefault
	}
	discarded := 0
	for _, c := range top {
		if filter.Matches(e.cardDef(c), c) {
			st.moveCard(c, PileDiscard)
			discarded++
		}
	}
	st.emit(log.NewScryEvent(len(top), discarded))
}

func (t Tutor) apply(e *Engine, st *CombatState, ctx EffectContext) {
	from := t.From
	if from == "" {
		from = PileDraw
	}
	if from == PileHand {
		return
	}
	n := e.valueOr(st, t.Amount, ctx, 1)
	found := 0
	for _, c := range st.pileOrder(from) {
		if found >= n {
			break
		}
		if !t.Filter.Matches(e.cardDef(c), c) {
			continue
		}
		st.takeCard(c.UID)
		if e.toHand(st, c) {
			st.emit(log.NewTutorEvent(c.UID, e.cardName(c), string(from)))
		}
		found++
	}
	if t.Shuffle && len(st.DrawPile) > 1 {
		e.shuffleDraw(st)
		st.emit(log.NewShuffleEvent(len(st.DrawPile)))
	}
}

func (u Upgrade) apply(e *Engine, st *CombatState, ctx EffectContext) {
	sel := u.CardSelector
	if sel.Filter == nil {
		upgraded := false
		sel.Filter = &CardFilter{Upgraded: &upgraded}
	}
	for _, c := range e.selectCards(st, sel, PileHand, ctx) {
		def := e.cardDef(c)
		if c.Upgraded || def == nil || def.Upgrade == nil {
			continue
		}
		c.Upgraded = true
		st.emit(log.NewUpgradeEvent(c.UID, def.Name))
	}
}

func (t Transform) apply(e *Engine, st *CombatState, ctx EffectContext) {
	for _, c := range e.selectCards(st, t.CardSelector, PileHand, ctx) {
		into := t.Into
		if into == "" {
			into = e.randomCard(st, t.Pool, c.DefinitionID)
		}
		if _, ok := e.reg.Card(into); !ok {
			e.skip("transform target unknown", zap.String("card", into))
			continue
		}
		next := NewCard(&st.Dice, into, false)
		if st.replaceCard(c.UID, next) {
			st.emit(log.NewTransformEvent(next.UID, e.cardName(c), e.cardName(next)))
		}
	}
}

// randomCard draws a definition id matching pool, excluding one id.
func (e *Engine) randomCard(st *CombatState, pool *CardFilter, exclude string) string {
	var ids []string
	for _, id := range e.reg.CardIDs() {
		def, _ := e.reg.Card(id)
		if id == exclude || def.Unplayable || !pool.Matches(def, nil) {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ""
	}
	return ids[st.Dice.Intn(len(ids))]
}

func (m ModifyCost) apply(e *Engine, st *CombatState, ctx EffectContext) {
	for _, c := range e.selectCards(st, m.CardSelector, PileHand, ctx) {
		if m.ThisTurn {
			c.TurnCostModifier += m.Delta
		} else {
			c.CostModifier += m.Delta
		}
		st.emit(log.NewCostChangeEvent(c.UID, e.cardName(c), e.EffectiveCost(c)))
	}
}

// --- Playing ---

// resolveCard runs a card that has already left the hand and sends it to
// its destination pile.
func (e *Engine) resolveCard(st *CombatState, card *CardInstance, target string, cost int, exhaust bool, depth int) {
	card.Retain = false
	def := e.cardDef(card)
	if def == nil {
		st.DiscardPile = append(st.DiscardPile, card)
		return
	}

	st.CardsPlayedThisTurn++
	st.Stats.CardsPlayed++
	st.emit(log.NewCardPlayedEvent(card.UID, def.Name, target, cost))

	ctx := EffectContext{
		Source:  PlayerID,
		Chosen:  target,
		Card:    card.UID,
		Element: def.Element,
		Attack:  def.Type == CardTypeAttack,
		Depth:   depth,
		card:    card,
	}
	if depth < MaxTriggerDepth {
		e.ExecuteAll(st, def.EffectsFor(card.Upgraded), ctx)
	}

	switch {
	case def.Type == CardTypePower:
	case def.Exhaust || exhaust:
		st.ExhaustPile = append(st.ExhaustPile, card)
		st.emit(log.NewExhaustEvent(card.UID, def.Name, "played"))
	default:
		st.DiscardPile = append(st.DiscardPile, card)
	}

	trig := EffectContext{Chosen: target, Depth: depth}
	e.fireTrigger(st, PlayerID, OnCardPlayed, trig)
	switch def.Type {
	case CardTypeAttack:
		e.fireTrigger(st, PlayerID, OnAttackPlayed, trig)
	case CardTypeSkill:
		e.fireTrigger(st, PlayerID, OnSkillPlayed, trig)
	}
}
