package combat

import (
	"maps"
	"slices"

	"github.com/peterkuimelis/cardcrawl/internal/log"
)

const (
	PlayerID        = "player"
	DefaultHandSize = 5
	MaxHandSize     = 10
	MaxTriggerDepth = 8
)

// PowerInstance is a stack of a power held by an entity.
type PowerInstance struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// Entity is the shape shared by the player and enemies.
type Entity struct {
	ID              string                    `json:"id"`
	CurrentHealth   int                       `json:"currentHealth"`
	MaxHealth       int                       `json:"maxHealth"`
	Block           int                       `json:"block"`   // decays at owner turn start
	Barrier         int                       `json:"barrier"` // persistent until consumed
	Powers          map[string]*PowerInstance `json:"powers,omitempty"`
	Element         Element                   `json:"element,omitempty"`
	Vulnerabilities []Element                 `json:"vulnerabilities,omitempty"`
	Resistances     []Element                 `json:"resistances,omitempty"`
	InnateStatus    string                    `json:"innateStatus,omitempty"`
}

// Stacks returns the amount of a held power, or 0.
func (e *Entity) Stacks(power string) int {
	if p, ok := e.Powers[power]; ok {
		return p.Amount
	}
	return 0
}

func (e *Entity) HasPower(power string) bool {
	_, ok := e.Powers[power]
	return ok
}

// PowerIDs returns held power ids in the order triggers fire.
func (e *Entity) PowerIDs() []string {
	return slices.Sorted(maps.Keys(e.Powers))
}

func (e *Entity) Alive() bool {
	return e.CurrentHealth > 0
}

// HealthPercent returns current health as a percentage of max, rounded down.
func (e *Entity) HealthPercent() int {
	if e.MaxHealth <= 0 {
		return 0
	}
	return e.CurrentHealth * 100 / e.MaxHealth
}

func (e *Entity) VulnerableTo(el Element) bool {
	return el != ElementNone && slices.Contains(e.Vulnerabilities, el)
}

func (e *Entity) Resists(el Element) bool {
	return el != ElementNone && slices.Contains(e.Resistances, el)
}

func (e Entity) clone() Entity {
	c := e
	if e.Powers != nil {
		c.Powers = make(map[string]*PowerInstance, len(e.Powers))
		for id, p := range e.Powers {
			cp := *p
			c.Powers[id] = &cp
		}
	}
	c.Vulnerabilities = slices.Clone(e.Vulnerabilities)
	c.Resistances = slices.Clone(e.Resistances)
	return c
}

// Player is the hero inside a combat.
type Player struct {
	Entity
	Energy    int `json:"energy"`
	MaxEnergy int `json:"maxEnergy"`
}

// Intent is an enemy's declared next action.
type Intent struct {
	Type  IntentType `json:"type"`
	Value int        `json:"value,omitempty"`
	Times int        `json:"times,omitempty"`
	Label string     `json:"label,omitempty"`
}

// Enemy is a live opponent. Dead enemies are removed from the combat.
type Enemy struct {
	Entity
	DefinitionID      string `json:"definitionId"`
	Name              string `json:"name"`
	Intent            Intent `json:"intent"`
	PatternIndex      int    `json:"patternIndex"`
	Energy            int    `json:"energy,omitempty"`
	AbilityCooldown   int    `json:"abilityCooldown,omitempty"`
	UltimateTriggered bool   `json:"ultimateTriggered,omitempty"`
	DamageTaken       int    `json:"damageTaken,omitempty"`
}

func (e *Enemy) String() string {
	return e.Name
}

// CardInstance is one physical copy of a card.
type CardInstance struct {
	UID              string `json:"uid"`
	DefinitionID     string `json:"definitionId"`
	Upgraded         bool   `json:"upgraded,omitempty"`
	CostModifier     int    `json:"costModifier,omitempty"`
	TurnCostModifier int    `json:"turnCostModifier,omitempty"` // cleared at end of turn
	Retain           bool   `json:"retain,omitempty"`           // kept in hand at the next end of turn
}

func (c *CardInstance) clone() *CardInstance {
	cp := *c
	return &cp
}

func cloneCards(cards []*CardInstance) []*CardInstance {
	if cards == nil {
		return nil
	}
	out := make([]*CardInstance, len(cards))
	for i, c := range cards {
		out[i] = c.clone()
	}
	return out
}

// CombatStats are the per-encounter totals.
type CombatStats struct {
	DamageDealt   int `json:"damageDealt"`
	DamageTaken   int `json:"damageTaken"`
	EnemiesKilled int `json:"enemiesKilled"`
	CardsPlayed   int `json:"cardsPlayed"`
	BlockGained   int `json:"blockGained"`
	HealingDone   int `json:"healingDone"`
	Combos        int `json:"combos"`
	GoldGained    int `json:"goldGained"`
}

// CombatState holds the complete state of one encounter.
type CombatState struct {
	Phase   Phase    `json:"phase"`
	Turn    int      `json:"turn"` // 1-based
	Player  *Player  `json:"player"`
	Enemies []*Enemy `json:"enemies"` // insertion order

	Hand        []*CardInstance `json:"hand"`
	DrawPile    []*CardInstance `json:"drawPile"` // top of pile is last element
	DiscardPile []*CardInstance `json:"discardPile"`
	ExhaustPile []*CardInstance `json:"exhaustPile"`

	CardsPlayedThisTurn int `json:"cardsPlayedThisTurn"`

	// Acted lists the enemies that have taken their action this enemy turn.
	Acted []string `json:"acted,omitempty"`

	// VisualQueue is append-only from the engine's side. Presentation
	// drains it.
	VisualQueue []log.VisualEvent `json:"visualQueue"`
	EventSeq    int               `json:"eventSeq"`

	Stats   CombatStats `json:"stats"`
	Relics  []string    `json:"relics,omitempty"`
	RoomID  string      `json:"roomId,omitempty"`
	Reward  int         `json:"reward,omitempty"` // gold granted on victory
	Dice    Dice        `json:"dice"`
	Settled bool        `json:"settled,omitempty"`
}

// Clone returns a deep copy.
func (cs *CombatState) Clone() *CombatState {
	if cs == nil {
		return nil
	}
	c := *cs
	if cs.Player != nil {
		p := *cs.Player
		p.Entity = cs.Player.Entity.clone()
		c.Player = &p
	}
	c.Enemies = make([]*Enemy, len(cs.Enemies))
	for i, e := range cs.Enemies {
		ce := *e
		ce.Entity = e.Entity.clone()
		c.Enemies[i] = &ce
	}
	c.Hand = cloneCards(cs.Hand)
	c.DrawPile = cloneCards(cs.DrawPile)
	c.DiscardPile = cloneCards(cs.DiscardPile)
	c.ExhaustPile = cloneCards(cs.ExhaustPile)
	c.VisualQueue = slices.Clone(cs.VisualQueue)
	c.Relics = slices.Clone(cs.Relics)
	c.Acted = slices.Clone(cs.Acted)
	return &c
}

// emit appends an event to the visual queue, stamping turn, phase and
// sequence number.
func (cs *CombatState) emit(ev log.VisualEvent) {
	cs.EventSeq++
	ev.Seq = cs.EventSeq
	ev.Turn = cs.Turn
	ev.Phase = cs.Phase.String()
	cs.VisualQueue = append(cs.VisualQueue, ev)
}

// Over reports whether the combat reached a terminal phase. A nil combat
// counts as over.
func (cs *CombatState) Over() bool {
	return cs == nil || cs.Phase.Terminal()
}

// Enemy returns the live enemy with the given id.
func (cs *CombatState) Enemy(id string) *Enemy {
	for _, e := range cs.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Entity returns the player or live enemy with the given id.
func (cs *CombatState) Entity(id string) *Entity {
	if id == PlayerID {
		if cs.Player == nil {
			return nil
		}
		return &cs.Player.Entity
	}
	if e := cs.Enemy(id); e != nil {
		return &e.Entity
	}
	return nil
}

// removeEnemy drops an enemy from the enemies list, preserving order.
func (cs *CombatState) removeEnemy(id string) {
	cs.Enemies = slices.DeleteFunc(cs.Enemies, func(e *Enemy) bool { return e.ID == id })
}

func (cs *CombatState) pile(p Pile) *[]*CardInstance {
	switch p {
	case PileHand:
		return &cs.Hand
	case PileDraw:
		return &cs.DrawPile
	case PileDiscard:
		return &cs.DiscardPile
	case PileExhaust:
		return &cs.ExhaustPile
	}
	return nil
}

// FindCard locates a card by uid across all piles.
func (cs *CombatState) FindCard(uid string) (*CardInstance, Pile) {
	for _, p := range []Pile{PileHand, PileDraw, PileDiscard, PileExhaust} {
		for _, c := range *cs.pile(p) {
			if c.UID == uid {
				return c, p
			}
		}
	}
	return nil, ""
}

// HandCard returns the card in hand with the given uid.
func (cs *CombatState) HandCard(uid string) *CardInstance {
	for _, c := range cs.Hand {
		if c.UID == uid {
			return c
		}
	}
	return nil
}

// takeCard removes a card from whichever pile holds it.
func (cs *CombatState) takeCard(uid string) (*CardInstance, Pile) {
	for _, p := range []Pile{PileHand, PileDraw, PileDiscard, PileExhaust} {
		pile := cs.pile(p)
		for i, c := range *pile {
			if c.UID == uid {
				*pile = slices.Delete(*pile, i, i+1)
				return c, p
			}
		}
	}
	return nil, ""
}

// Room is a node offered to the player between combats.
type Room struct {
	ID      string   `json:"id"`
	Kind    RoomKind `json:"kind"`
	Enemies []string `json:"enemies,omitempty"`
	Gold    int      `json:"gold,omitempty"`
}

// Hero is the part of the player that persists between combats.
type Hero struct {
	Name          string `json:"name"`
	CurrentHealth int    `json:"currentHealth"`
	MaxHealth     int    `json:"maxHealth"`
	MaxEnergy     int    `json:"maxEnergy"`
}

// RunStats accumulate over a whole run.
type RunStats struct {
	Combats       int `json:"combats"`
	Victories     int `json:"victories"`
	DamageDealt   int `json:"damageDealt"`
	DamageTaken   int `json:"damageTaken"`
	EnemiesKilled int `json:"enemiesKilled"`
	CardsPlayed   int `json:"cardsPlayed"`
	Combos        int `json:"combos"`
	GoldEarned    int `json:"goldEarned"`
}

// RunState is the unit the persistence layer snapshots.
type RunState struct {
	Hero        Hero            `json:"hero"`
	Gold        int             `json:"gold"`
	Floor       int             `json:"floor"`
	Deck        []*CardInstance `json:"deck"`
	Relics      []string        `json:"relics,omitempty"`
	RoomChoices []Room          `json:"roomChoices,omitempty"`
	CurrentRoom string          `json:"currentRoom,omitempty"`
	Combat      *CombatState    `json:"combat,omitempty"`
	Stats       RunStats        `json:"stats"`
	Dice        Dice            `json:"dice"`

	// VisualQueue carries room-flow events; combat events go to the
	// combat's own queue.
	VisualQueue []log.VisualEvent `json:"visualQueue,omitempty"`
	EventSeq    int               `json:"eventSeq,omitempty"`
}

// Clone returns a deep copy.
func (rs *RunState) Clone() *RunState {
	if rs == nil {
		return nil
	}
	c := *rs
	c.Deck = cloneCards(rs.Deck)
	c.Relics = slices.Clone(rs.Relics)
	c.RoomChoices = make([]Room, len(rs.RoomChoices))
	for i, r := range rs.RoomChoices {
		r.Enemies = slices.Clone(r.Enemies)
		c.RoomChoices[i] = r
	}
	if rs.RoomChoices == nil {
		c.RoomChoices = nil
	}
	c.Combat = rs.Combat.Clone()
	c.VisualQueue = slices.Clone(rs.VisualQueue)
	return &c
}

// InCombat reports whether an encounter is running.
func (rs *RunState) InCombat() bool {
	return rs.Combat != nil && !rs.Combat.Phase.Terminal()
}
