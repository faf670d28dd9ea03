package combat

import "sort"

// --- Definitions (static content) ---

// CardDefinition is the immutable description of a card.
type CardDefinition struct {
	ID          string
	Name        string
	Description string
	Type        CardType
	Rarity      Rarity
	Element     Element
	Cost        int
	Target      string // default target for the card's effects ("enemy", "self", "allEnemies", ...)
	Effects     []Effect
	Upgrade     *CardUpgrade

	Exhaust    bool // exhausted instead of discarded after play
	Ethereal   bool // exhausted if still in hand at end of turn
	Retain     bool // kept in hand at end of turn
	Innate     bool // starts combat on top of the draw pile
	Unplayable bool
}

// CardUpgrade holds the fields an upgrade replaces. Nil/empty fields keep
// the base value.
type CardUpgrade struct {
	Cost        *int
	Effects     []Effect
	Description string
}

// EffectsFor returns the effect list for a base or upgraded copy.
func (c *CardDefinition) EffectsFor(upgraded bool) []Effect {
	if upgraded && c.Upgrade != nil && len(c.Upgrade.Effects) > 0 {
		return c.Upgrade.Effects
	}
	return c.Effects
}

// CostFor returns the printed cost of a base or upgraded copy.
func (c *CardDefinition) CostFor(upgraded bool) int {
	if upgraded && c.Upgrade != nil && c.Upgrade.Cost != nil {
		return *c.Upgrade.Cost
	}
	return c.Cost
}

func (c *CardDefinition) String() string {
	return c.Name
}

// PowerPassive holds the values formulas read directly from a held power
// or relic. They never fire as triggers.
type PowerPassive struct {
	DamageReduction int
	RetainBlock     bool
	RetainEnergy    bool
}

func (p PowerPassive) zero() bool {
	return p == PowerPassive{}
}

// TriggerRegistration binds effects to a combat event.
type TriggerRegistration struct {
	Event   Trigger
	Effects []Effect
}

type PowerDefinition struct {
	ID           string
	Name         string
	Description  string
	Stack        StackBehavior
	RemoveAtZero bool
	Debuff       bool
	Triggers     []TriggerRegistration
	Passive      PowerPassive
}

type RelicDefinition struct {
	ID          string
	Name        string
	Description string
	Triggers    []TriggerRegistration
	Passive     PowerPassive
}

// PatternStep is one entry of an enemy's behavior loop.
type PatternStep struct {
	Intent  IntentType
	Value   int
	Times   int
	Label   string
	Effects []Effect
}

// EnemyAbility is an activated ability gated by energy and cooldown.
type EnemyAbility struct {
	Name     string
	Cost     int
	Cooldown int
	Effects  []Effect
}

type UltimateTrigger string

const (
	UltimateHealthPercent UltimateTrigger = "healthPercent"
	UltimateDamageTaken   UltimateTrigger = "damageTaken"
	UltimateTurn          UltimateTrigger = "turn"
)

// EnemyUltimate fires once per encounter when its trigger is met.
type EnemyUltimate struct {
	Name    string
	Trigger UltimateTrigger
	Value   int
	Effects []Effect
}

type EnemyDefinition struct {
	ID              string
	Name            string
	MaxHealth       int
	Element         Element
	Vulnerabilities []Element
	Resistances     []Element
	Powers          map[string]int // starting powers
	Pattern         []PatternStep
	Ability         *EnemyAbility
	EnergyPerTurn   int
	Ultimate        *EnemyUltimate
	Gold            int
}

// DeckCard is one entry of a starter deck list.
type DeckCard struct {
	Card     string
	Count    int
	Upgraded bool
}

// HeroDefinition seeds the persistent part of a run.
type HeroDefinition struct {
	ID        string
	Name      string
	MaxHealth int
	MaxEnergy int
	Deck      string
	Relics    []string
}

// Registry is the read-only content lookup handed to the engine. Lookups
// that miss return ok=false; the engine turns those into no-ops.
type Registry struct {
	Cards   map[string]*CardDefinition
	Powers  map[string]*PowerDefinition
	Enemies map[string]*EnemyDefinition
	Relics  map[string]*RelicDefinition
	Rooms   map[string]Room
	Decks   map[string][]DeckCard
	Heroes  map[string]*HeroDefinition
}

// NewRegistry returns an empty registry with all maps allocated.
func NewRegistry() *Registry {
	return &Registry{
		Cards:   make(map[string]*CardDefinition),
		Powers:  make(map[string]*PowerDefinition),
		Enemies: make(map[string]*EnemyDefinition),
		Relics:  make(map[string]*RelicDefinition),
		Rooms:   make(map[string]Room),
		Decks:   make(map[string][]DeckCard),
		Heroes:  make(map[string]*HeroDefinition),
	}
}

func (r *Registry) Card(id string) (*CardDefinition, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.Cards[id]
	return c, ok
}

func (r *Registry) Power(id string) (*PowerDefinition, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.Powers[id]
	return p, ok
}

func (r *Registry) Enemy(id string) (*EnemyDefinition, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.Enemies[id]
	return e, ok
}

func (r *Registry) Relic(id string) (*RelicDefinition, bool) {
	if r == nil {
		return nil, false
	}
	rel, ok := r.Relics[id]
	return rel, ok
}

func (r *Registry) Room(id string) (Room, bool) {
	if r == nil {
		return Room{}, false
	}
	room, ok := r.Rooms[id]
	return room, ok
}

func (r *Registry) Deck(id string) ([]DeckCard, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.Decks[id]
	return d, ok
}

func (r *Registry) Hero(id string) (*HeroDefinition, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.Heroes[id]
	return h, ok
}

// CardIDs returns all card ids in sorted order.
func (r *Registry) CardIDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Cards))
	for id := range r.Cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnemyIDs returns all enemy ids in sorted order.
func (r *Registry) EnemyIDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Enemies))
	for id := range r.Enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RoomIDs returns all room ids in sorted order.
func (r *Registry) RoomIDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Rooms))
	for id := range r.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CardName returns the display name of a definition, or the id if unknown.
func (r *Registry) CardName(id string) string {
	if c, ok := r.Card(id); ok {
		return c.Name
	}
	return id
}
