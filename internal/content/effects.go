package content

import (
	"fmt"
	"strconv"

	"github.com/peterkuimelis/cardcrawl/internal/combat"
	"gopkg.in/yaml.v3"
)

// rawEffect is the YAML shape of every effect node. The type field selects
// which of the other fields are read.
type rawEffect struct {
	Type     string        `yaml:"type"`
	Amount   yaml.Node     `yaml:"amount"`
	Times    yaml.Node     `yaml:"times"`
	Count    yaml.Node     `yaml:"count"`
	Target   string        `yaml:"target"`
	Element  string        `yaml:"element"`
	Piercing bool          `yaml:"piercing"`
	Hits     int           `yaml:"hits"`
	From     string        `yaml:"from"`
	Select   string        `yaml:"select"`
	Filter   *rawFilter    `yaml:"filter"`
	Shuffle  bool          `yaml:"shuffle"`
	Into     string        `yaml:"into"`
	Pool     *rawFilter    `yaml:"pool"`
	Power    string        `yaml:"power"`
	Exhaust  bool          `yaml:"exhaust"`
	Delta    int           `yaml:"delta"`
	ThisTurn bool          `yaml:"thisTurn"`
	If       *rawCondition `yaml:"if"`
	Then     []yaml.Node   `yaml:"then"`
	Else     []yaml.Node   `yaml:"else"`
	Effects  []yaml.Node   `yaml:"effects"`
	Choices  [][]yaml.Node `yaml:"choices"`
	Weights  []int         `yaml:"weights"`
}

type rawFilter struct {
	Types       []string `yaml:"types"`
	Element     string   `yaml:"element"`
	Rarity      string   `yaml:"rarity"`
	CostAtMost  *int     `yaml:"costAtMost"`
	CostAtLeast *int     `yaml:"costAtLeast"`
	IDs         []string `yaml:"ids"`
	Upgraded    *bool    `yaml:"upgraded"`
}

type rawCondition struct {
	Type     string `yaml:"type"`
	Resource string `yaml:"resource"`
	Target   string `yaml:"target"`
	Op       string `yaml:"op"`
	Value    int    `yaml:"value"`
	Relic    string `yaml:"relic"`
	Power    string `yaml:"power"`
}

type rawValue struct {
	StacksOf   string `yaml:"stacksOf"`
	Target     string `yaml:"target"`
	Multiplier int    `yaml:"multiplier"`
	Resource   string `yaml:"resource"`
	Base       int    `yaml:"base"`
	PerUnit    int    `yaml:"perUnit"`
}

// ParseEffects decodes a list of YAML effect nodes.
func ParseEffects(nodes []yaml.Node) ([]combat.Effect, error) {
	effects := make([]combat.Effect, 0, len(nodes))
	for i := range nodes {
		eff, err := parseEffect(&nodes[i])
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		effects = append(effects, eff)
	}
	return effects, nil
}

func parseEffect(n *yaml.Node) (combat.Effect, error) {
	var raw rawEffect
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	amount, err := parseValue(&raw.Amount)
	if err != nil {
		return nil, fmt.Errorf("line %d: amount: %w", n.Line, err)
	}
	count, err := parseValue(&raw.Count)
	if err != nil {
		return nil, fmt.Errorf("line %d: count: %w", n.Line, err)
	}
	times, err := parseValue(&raw.Times)
	if err != nil {
		return nil, fmt.Errorf("line %d: times: %w", n.Line, err)
	}
	sel := combat.CardSelector{
		From:   combat.Pile(raw.From),
		Select: combat.Selection(raw.Select),
		Filter: raw.Filter.build(),
		Count:  count,
	}

	switch raw.Type {
	case "damage":
		return combat.Damage{Amount: amount, Target: raw.Target, Element: combat.Element(raw.Element), Piercing: raw.Piercing, Hits: raw.Hits}, nil
	case "block":
		return combat.Block{Amount: amount, Target: raw.Target}, nil
	case "barrier":
		return combat.Barrier{Amount: amount, Target: raw.Target}, nil
	case "heal":
		return combat.Heal{Amount: amount, Target: raw.Target}, nil
	case "draw":
		return combat.Draw{Amount: amount}, nil
	case "energy":
		return combat.Energy{Amount: amount}, nil
	case "discard":
		return combat.Discard{CardSelector: sel}, nil
	case "exhaust":
		return combat.Exhaust{CardSelector: sel}, nil
	case "retain":
		return combat.Retain{CardSelector: sel}, nil
	case "scry":
		return combat.Scry{Amount: amount, Filter: raw.Filter.build()}, nil
	case "tutor":
		return combat.Tutor{From: combat.Pile(raw.From), Filter: raw.Filter.build(), Amount: amount, Shuffle: raw.Shuffle}, nil
	case "upgrade":
		return combat.Upgrade{CardSelector: sel}, nil
	case "transform":
		return combat.Transform{CardSelector: sel, Into: raw.Into, Pool: raw.Pool.build()}, nil
	case "applyPower":
		return combat.ApplyPower{Power: raw.Power, Amount: amount, Target: raw.Target}, nil
	case "removePower":
		return combat.RemovePower{Power: raw.Power, Target: raw.Target}, nil
	case "replayCard":
		return combat.ReplayCard{Times: times}, nil
	case "playTopCard":
		return combat.PlayTopCard{Amount: amount, Exhaust: raw.Exhaust}, nil
	case "modifyCost":
		return combat.ModifyCost{CardSelector: sel, Delta: raw.Delta, ThisTurn: raw.ThisTurn}, nil
	case "gainGold":
		return combat.GainGold{Amount: amount}, nil

	case "conditional":
		cond, err := raw.If.build()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		then, err := ParseEffects(raw.Then)
		if err != nil {
			return nil, fmt.Errorf("then: %w", err)
		}
		els, err := ParseEffects(raw.Else)
		if err != nil {
			return nil, fmt.Errorf("else: %w", err)
		}
		return combat.Conditional{If: cond, Then: then, Else: els}, nil
	case "repeat":
		effects, err := ParseEffects(raw.Effects)
		if err != nil {
			return nil, err
		}
		return combat.Repeat{Times: times, Effects: effects}, nil
	case "random":
		choices := make([][]combat.Effect, 0, len(raw.Choices))
		for i, choice := range raw.Choices {
			effects, err := ParseEffects(choice)
			if err != nil {
				return nil, fmt.Errorf("choice %d: %w", i, err)
			}
			choices = append(choices, effects)
		}
		return combat.Random{Choices: choices, Weights: raw.Weights}, nil
	case "sequence":
		effects, err := ParseEffects(raw.Effects)
		if err != nil {
			return nil, err
		}
		return combat.Sequence{Effects: effects}, nil
	case "forEach":
		effects, err := ParseEffects(raw.Effects)
		if err != nil {
			return nil, err
		}
		return combat.ForEach{Target: raw.Target, Effects: effects}, nil
	}
	return nil, fmt.Errorf("line %d: %q: %w", n.Line, raw.Type, ErrUnknownEffect)
}

// parseValue decodes an amount: an integer, the word "stacks", or a
// mapping with either stacksOf or resource.
func parseValue(n *yaml.Node) (combat.Value, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if n.Value == "stacks" {
			return combat.PowerStacks{}, nil
		}
		v, err := strconv.Atoi(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", n.Value, ErrInvalidField)
		}
		return combat.Literal(v), nil
	case yaml.MappingNode:
		var raw rawValue
		if err := n.Decode(&raw); err != nil {
			return nil, err
		}
		switch {
		case raw.Resource != "":
			return combat.Scaled{Resource: combat.Resource(raw.Resource), Base: raw.Base, PerUnit: raw.PerUnit}, nil
		case raw.StacksOf != "":
			return combat.PowerStacks{Power: raw.StacksOf, Target: raw.Target, Multiplier: raw.Multiplier}, nil
		}
	}
	return nil, fmt.Errorf("line %d: unsupported value: %w", n.Line, ErrInvalidField)
}

func (f *rawFilter) build() *combat.CardFilter {
	if f == nil {
		return nil
	}
	out := &combat.CardFilter{
		Element:     combat.Element(f.Element),
		Rarity:      combat.Rarity(f.Rarity),
		CostAtMost:  f.CostAtMost,
		CostAtLeast: f.CostAtLeast,
		IDs:         f.IDs,
		Upgraded:    f.Upgraded,
	}
	for _, t := range f.Types {
		out.Types = append(out.Types, combat.CardType(t))
	}
	return out
}

func (c *rawCondition) build() (combat.Condition, error) {
	if c == nil {
		return nil, fmt.Errorf("conditional without if: %w", ErrInvalidField)
	}
	op := combat.Comparison(c.Op)
	switch c.Type {
	case "resource":
		return combat.ResourceCondition{Resource: combat.Resource(c.Resource), Target: c.Target, Op: op, Value: c.Value}, nil
	case "healthPercent":
		return combat.HealthPercentCondition{Target: c.Target, Op: op, Value: c.Value}, nil
	case "block":
		return combat.BlockCondition{Target: c.Target, Op: op, Value: c.Value}, nil
	case "turn":
		return combat.TurnCondition{Op: op, Value: c.Value}, nil
	case "hasRelic":
		return combat.HasRelicCondition{Relic: c.Relic}, nil
	case "hasPower":
		return combat.HasPowerCondition{Power: c.Power, Target: c.Target, Op: op, Value: c.Value}, nil
	case "enemyCount":
		return combat.EnemyCountCondition{Op: op, Value: c.Value}, nil
	}
	return nil, fmt.Errorf("condition %q: %w", c.Type, ErrUnknownEffect)
}
