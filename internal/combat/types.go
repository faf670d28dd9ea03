package combat

import "fmt"

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhasePlayerTurn
	PhaseEnemyTurn
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "playerTurn"
	case PhaseEnemyTurn:
		return "enemyTurn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// Terminal reports whether the phase is absorbing.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	parsed, ok := parsePhase(string(text))
	if !ok {
		return fmt.Errorf("unknown phase %q", text)
	}
	*p = parsed
	return nil
}

func parsePhase(s string) (Phase, bool) {
	switch s {
	case "none", "":
		return PhaseNone, true
	case "playerTurn":
		return PhasePlayerTurn, true
	case "enemyTurn":
		return PhaseEnemyTurn, true
	case "victory":
		return PhaseVictory, true
	case "defeat":
		return PhaseDefeat, true
	}
	return PhaseNone, false
}

// Element is a damage element tag.
type Element string

const (
	ElementNone      Element = ""
	ElementPhysical  Element = "physical"
	ElementFire      Element = "fire"
	ElementIce       Element = "ice"
	ElementLightning Element = "lightning"
	ElementVoid      Element = "void"
)

// Elements lists every known element.
var Elements = []Element{ElementPhysical, ElementFire, ElementIce, ElementLightning, ElementVoid}

func (e Element) Valid() bool {
	if e == ElementNone {
		return true
	}
	for _, known := range Elements {
		if e == known {
			return true
		}
	}
	return false
}

type CardType string

const (
	CardTypeAttack CardType = "attack"
	CardTypeSkill  CardType = "skill"
	CardTypePower  CardType = "power"
	CardTypeStatus CardType = "status"
	CardTypeCurse  CardType = "curse"
)

type Rarity string

const (
	RarityStarter  Rarity = "starter"
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Trigger names a combat event powers and relics can react to.
type Trigger string

const (
	OnCombatStart  Trigger = "onCombatStart"
	OnCombatEnd    Trigger = "onCombatEnd"
	OnTurnStart    Trigger = "onTurnStart"
	OnTurnEnd      Trigger = "onTurnEnd"
	OnCardPlayed   Trigger = "onCardPlayed"
	OnAttackPlayed Trigger = "onAttackPlayed"
	OnSkillPlayed  Trigger = "onSkillPlayed"
	OnAttack       Trigger = "onAttack"
	OnKill         Trigger = "onKill"
	OnDamaged      Trigger = "onDamaged"
	OnHeal         Trigger = "onHeal"
	OnGoldGained   Trigger = "onGoldGained"
	Passive        Trigger = "passive"
)

// Triggers lists every known trigger.
var Triggers = []Trigger{
	OnCombatStart, OnCombatEnd, OnTurnStart, OnTurnEnd, OnCardPlayed,
	OnAttackPlayed, OnSkillPlayed, OnAttack, OnKill, OnDamaged, OnHeal,
	OnGoldGained, Passive,
}

func (t Trigger) Valid() bool {
	for _, known := range Triggers {
		if t == known {
			return true
		}
	}
	return false
}

type StackBehavior string

const (
	StackIntensity StackBehavior = "intensity"
	StackDuration  StackBehavior = "duration"
	StackNone      StackBehavior = "none"
)

type IntentType string

const (
	IntentAttack  IntentType = "attack"
	IntentDefend  IntentType = "defend"
	IntentBuff    IntentType = "buff"
	IntentDebuff  IntentType = "debuff"
	IntentAbility IntentType = "ability"
	IntentUnknown IntentType = "unknown"
)

type RoomKind string

const (
	RoomCombat   RoomKind = "combat"
	RoomElite    RoomKind = "elite"
	RoomBoss     RoomKind = "boss"
	RoomRest     RoomKind = "rest"
	RoomTreasure RoomKind = "treasure"
	RoomShop     RoomKind = "shop"
	RoomEvent    RoomKind = "event"
)

// HasCombat reports whether entering the room starts an encounter.
func (k RoomKind) HasCombat() bool {
	return k == RoomCombat || k == RoomElite || k == RoomBoss
}

// Pile names a card pile.
type Pile string

const (
	PileHand    Pile = "hand"
	PileDraw    Pile = "drawPile"
	PileDiscard Pile = "discardPile"
	PileExhaust Pile = "exhaustPile"
)

// Selection picks which cards of a pile a card leaf touches.
type Selection string

const (
	SelectFirst   Selection = "first"
	SelectRandom  Selection = "random"
	SelectAll     Selection = "all"
	SelectCurrent Selection = "current"
)

// Target keywords understood by the resolver. Anything else is an entity id.
const (
	TargetSelf           = "self"
	TargetPlayer         = "player"
	TargetEnemy          = "enemy"
	TargetFirstEnemy     = "firstEnemy"
	TargetAllEnemies     = "allEnemies"
	TargetRandomEnemy    = "randomEnemy"
	TargetWeakestEnemy   = "weakestEnemy"
	TargetStrongestEnemy = "strongestEnemy"
)

// TargetKeywords lists every reserved target keyword, card piles included.
var TargetKeywords = []string{
	TargetSelf, TargetPlayer, TargetEnemy, TargetFirstEnemy, TargetAllEnemies,
	TargetRandomEnemy, TargetWeakestEnemy, TargetStrongestEnemy,
	string(PileHand), string(PileDraw), string(PileDiscard), string(PileExhaust),
}

// Well-known power ids consulted directly by formulas.
const (
	PowerStrength   = "strength"
	PowerDexterity  = "dexterity"
	PowerVulnerable = "vulnerable"
	PowerWeak       = "weak"
	PowerFrail      = "frail"
	PowerOiled      = "oiled"
	PowerWet        = "wet"
	PowerFrozen     = "frozen"
)

// --- Action types ---

type ActionType int

const (
	ActionSelectRoom ActionType = iota
	ActionDealRoomChoices
	ActionStartCombat
	ActionSpendEnergy
	ActionGainEnergy
	ActionStartTurn
	ActionEndTurn
	ActionDamage
	ActionHeal
	ActionAddBlock
	ActionPlayCard
	ActionDrawCards
	ActionApplyPower
	ActionEnemyAction
)

func (a ActionType) String() string {
	switch a {
	case ActionSelectRoom:
		return "selectRoom"
	case ActionDealRoomChoices:
		return "dealRoomChoices"
	case ActionStartCombat:
		return "startCombat"
	case ActionSpendEnergy:
		return "spendEnergy"
	case ActionGainEnergy:
		return "gainEnergy"
	case ActionStartTurn:
		return "startTurn"
	case ActionEndTurn:
		return "endTurn"
	case ActionDamage:
		return "damage"
	case ActionHeal:
		return "heal"
	case ActionAddBlock:
		return "addBlock"
	case ActionPlayCard:
		return "playCard"
	case ActionDrawCards:
		return "drawCards"
	case ActionApplyPower:
		return "applyPower"
	case ActionEnemyAction:
		return "enemyAction"
	default:
		return "unknown"
	}
}

// Action is one discrete input to the dispatcher. Only the fields relevant
// to Type are read.
type Action struct {
	Type     ActionType
	Target   string   // entity id, enemy id for enemyAction, card target for playCard
	Card     string   // card uid for playCard
	Amount   int      // energy, damage, heal, block, draw count, power stacks, rooms to deal
	Power    string   // power id for applyPower
	Room     string   // room id for selectRoom
	Rooms    []Room   // dealRoomChoices
	Enemies  []string // enemy definition ids for startCombat
	Element  Element  // damage
	Piercing bool     // damage
	Desc     string   // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}
