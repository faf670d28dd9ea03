package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/peterkuimelis/cardcrawl/internal/combat"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownEffect    = errors.New("unknown effect type")
	ErrUnknownReference = errors.New("unknown reference")
	ErrInvalidField     = errors.New("invalid field")
	ErrDuplicateID      = errors.New("duplicate id")
)

//go:embed data/*.yaml
var embedded embed.FS

// Loader reads YAML content into a combat.Registry.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Default loads the content compiled into the binary.
func Default() (*combat.Registry, error) {
	return NewLoader(nil).LoadEmbedded()
}

func (l *Loader) LoadEmbedded() (*combat.Registry, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return l.LoadFS(sub)
}

// LoadDir loads every .yaml file in dir. An empty dir selects the embedded
// content.
func (l *Loader) LoadDir(dir string) (*combat.Registry, error) {
	if dir == "" {
		return l.LoadEmbedded()
	}
	return l.LoadFS(os.DirFS(dir))
}

// LoadFS merges all top-level .yaml and .yml files of fsys, in name order,
// and validates the result. Problems are reported together as a
// *ValidationError.
func (l *Loader) LoadFS(fsys fs.FS) (*combat.Registry, error) {
	var names []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		names = append(names, matches...)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no content files: %w", fs.ErrNotExist)
	}
	sort.Strings(names)

	b := newBuilder()
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		b.add(path.Base(name), &f)
		l.logger.Debug("content file read",
			zap.String("file", name),
			zap.Int("cards", len(f.Cards)),
			zap.Int("powers", len(f.Powers)),
			zap.Int("enemies", len(f.Enemies)),
			zap.Int("relics", len(f.Relics)),
		)
	}

	b.problems = append(b.problems, Validate(b.reg)...)
	if len(b.problems) > 0 {
		l.logger.Warn("content rejected", zap.Int("problems", len(b.problems)))
		return nil, &ValidationError{Problems: b.problems}
	}
	l.logger.Info("content loaded",
		zap.Int("cards", len(b.reg.Cards)),
		zap.Int("powers", len(b.reg.Powers)),
		zap.Int("enemies", len(b.reg.Enemies)),
		zap.Int("relics", len(b.reg.Relics)),
		zap.Int("rooms", len(b.reg.Rooms)),
		zap.Int("heroes", len(b.reg.Heroes)),
	)
	return b.reg, nil
}

// Parse builds a registry from a single YAML document.
func Parse(data []byte) (*combat.Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	b := newBuilder()
	b.add("content", &f)
	b.problems = append(b.problems, Validate(b.reg)...)
	if len(b.problems) > 0 {
		return nil, &ValidationError{Problems: b.problems}
	}
	return b.reg, nil
}

type builder struct {
	reg      *combat.Registry
	problems []Problem
}

func newBuilder() *builder {
	return &builder{reg: combat.NewRegistry()}
}

func (b *builder) fail(where string, err error) {
	b.problems = append(b.problems, Problem{Where: where, Err: err})
}

func (b *builder) effects(where string, nodes []yaml.Node) []combat.Effect {
	effs, err := ParseEffects(nodes)
	if err != nil {
		b.fail(where, err)
		return nil
	}
	return effs
}

func (b *builder) triggers(where string, entries []TriggerEntry) []combat.TriggerRegistration {
	out := make([]combat.TriggerRegistration, 0, len(entries))
	for _, t := range entries {
		trig := combat.Trigger(t.Event)
		if !trig.Valid() {
			b.fail(where, fmt.Errorf("trigger %q: %w", t.Event, ErrInvalidField))
			continue
		}
		out = append(out, combat.TriggerRegistration{
			Event:   trig,
			Effects: b.effects(where+" "+t.Event, t.Effects),
		})
	}
	return out
}

func passive(p PassiveEntry) combat.PowerPassive {
	return combat.PowerPassive{
		DamageReduction: p.DamageReduction,
		RetainBlock:     p.RetainBlock,
		RetainEnergy:    p.RetainEnergy,
	}
}

func elements(names []string) []combat.Element {
	if len(names) == 0 {
		return nil
	}
	out := make([]combat.Element, len(names))
	for i, n := range names {
		out[i] = combat.Element(n)
	}
	return out
}

func (b *builder) add(file string, f *File) {
	for _, c := range f.Cards {
		where := fmt.Sprintf("%s: card %s", file, c.ID)
		if _, dup := b.reg.Cards[c.ID]; dup {
			b.fail(where, ErrDuplicateID)
			continue
		}
		def := &combat.CardDefinition{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Type:        combat.CardType(c.Type),
			Rarity:      combat.Rarity(c.Rarity),
			Element:     combat.Element(c.Element),
			Cost:        c.Cost,
			Target:      c.Target,
			Effects:     b.effects(where, c.Effects),
			Exhaust:     c.Exhaust,
			Ethereal:    c.Ethereal,
			Retain:      c.Retain,
			Innate:      c.Innate,
			Unplayable:  c.Unplayable,
		}
		if def.Name == "" {
			def.Name = c.ID
		}
		if c.Upgrade != nil {
			def.Upgrade = &combat.CardUpgrade{
				Cost:        c.Upgrade.Cost,
				Description: c.Upgrade.Description,
				Effects:     b.effects(where+" upgrade", c.Upgrade.Effects),
			}
		}
		b.reg.Cards[c.ID] = def
	}

	for _, p := range f.Powers {
		where := fmt.Sprintf("%s: power %s", file, p.ID)
		if _, dup := b.reg.Powers[p.ID]; dup {
			b.fail(where, ErrDuplicateID)
			continue
		}
		b.reg.Powers[p.ID] = &combat.PowerDefinition{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Stack:        combat.StackBehavior(p.Stack),
			RemoveAtZero: p.RemoveAtZero,
			Debuff:       p.Debuff,
			Triggers:     b.triggers(where, p.Triggers),
			Passive:      passive(p.Passive),
		}
	}

	for _, r := range f.Relics {
		where := fmt.Sprintf("%s: relic %s", file, r.ID)
		if _, dup := b.reg.Relics[r.ID]; dup {
			b.fail(where, ErrDuplicateID)
			continue
		}
		b.reg.Relics[r.ID] = &combat.RelicDefinition{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Triggers:    b.triggers(where, r.Triggers),
			Passive:     passive(r.Passive),
		}
	}

	for _, en := range f.Enemies {
		where := fmt.Sprintf("%s: enemy %s", file, en.ID)
		if _, dup := b.reg.Enemies[en.ID]; dup {
			b.fail(where, ErrDuplicateID)
			continue
		}
		def := &combat.EnemyDefinition{
			ID:              en.ID,
			Name:            en.Name,
			MaxHealth:       en.MaxHealth,
			Element:         combat.Element(en.Element),
			Vulnerabilities: elements(en.Vulnerabilities),
			Resistances:     elements(en.Resistances),
			Powers:          en.Powers,
			EnergyPerTurn:   en.EnergyPerTurn,
			Gold:            en.Gold,
		}
		if def.Name == "" {
			def.Name = en.ID
		}
		for i, step := range en.Pattern {
			def.Pattern = append(def.Pattern, combat.PatternStep{
				Intent:  combat.IntentType(step.Intent),
				Value:   step.Value,
				Times:   step.Times,
				Label:   step.Label,
				Effects: b.effects(fmt.Sprintf("%s pattern %d", where, i), step.Effects),
			})
		}
		if a := en.Ability; a != nil {
			def.Ability = &combat.EnemyAbility{
				Name:     a.Name,
				Cost:     a.Cost,
				Cooldown: a.Cooldown,
				Effects:  b.effects(where+" ability", a.Effects),
			}
		}
		if u := en.Ultimate; u != nil {
			def.Ultimate = &combat.EnemyUltimate{
				Name:    u.Name,
				Trigger: combat.UltimateTrigger(u.Trigger),
				Value:   u.Value,
				Effects: b.effects(where+" ultimate", u.Effects),
			}
		}
		b.reg.Enemies[en.ID] = def
	}

	for _, r := range f.Rooms {
		where := fmt.Sprintf("%s: room %s", file, r.ID)
		if _, dup := b.reg.Rooms[r.ID]; dup {
			b.fail(where, ErrDuplicateID)
			continue
		}
		b.reg.Rooms[r.ID] = combat.Room{
			ID:      r.ID,
			Kind:    combat.RoomKind(r.Kind),
			Enemies: r.Enemies,
			Gold:    r.Gold,
		}
	}

	for _, d := range f.Decks {
		where := fmt.Sprintf("%s: deck %s", file, d.ID)
		if _, dup := b.reg.Decks[d.ID]; dup {
			b.fail(where, ErrDuplicateID)
			continue
		}
		cards := make([]combat.DeckCard, 0, len(d.Cards))
		for _, c := range d.Cards {
			cards = append(cards, combat.DeckCard{Card: c.Card, Count: c.Count, Upgraded: c.Upgraded})
		}
		b.reg.Decks[d.ID] = cards
	}

	for _, h := range f.Heroes {
		where := fmt.Sprintf("%s: hero %s", file, h.ID)
		if _, dup := b.reg.Heroes[h.ID]; dup {
			b.fail(where, ErrDuplicateID)
			continue
		}
		def := &combat.HeroDefinition{
			ID:        h.ID,
			Name:      h.Name,
			MaxHealth: h.MaxHealth,
			MaxEnergy: h.MaxEnergy,
			Deck:      h.Deck,
			Relics:    h.Relics,
		}
		if def.Name == "" {
			def.Name = h.ID
		}
		b.reg.Heroes[h.ID] = def
	}
}
