package level

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-quest/internal/entity"
	"github.com/vovakirdan/tui-quest/internal/registry"
)

// Character is a resolved character definition: what to build, not a
// live instance. Spawn builds a fresh instance every time.
type Character struct {
	Kind     entity.Kind
	Template entity.Template
}

// Spawn returns a new instance with its own slices.
func (c Character) Spawn() *entity.Character {
	return entity.New(c.Kind, c.Template)
}

// Characters resolves the `class` key of placed characters.
var Characters = registry.New[Character]("character")

// Items resolves the `class` key of weapons, spells and chest contents.
var Items = registry.New[entity.Attack]("item")

// ItemDef is an item reference in level data.
type ItemDef struct {
	Class string    `yaml:"class"`
	Args  yaml.Node `yaml:"args"`
}

// Resolve builds the item through the Items registry.
func (d ItemDef) Resolve() (entity.Attack, error) {
	return Items.Create(d.Class, nodeDecoder(&d.Args))
}

func nodeDecoder(n *yaml.Node) registry.Decoder {
	return func(v any) error {
		if n == nil || n.Kind == 0 {
			return nil
		}
		return n.Decode(v)
	}
}

type characterArgs struct {
	entity.Template `yaml:",inline"`
	Weapons         []ItemDef `yaml:"weapons"`
	Spells          []ItemDef `yaml:"spells"`
}

type itemArgs struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Damage    int    `yaml:"damage"`
	Crit      int    `yaml:"crit"`
	Effect    string `yaml:"effect"`
	Mana      int    `yaml:"mana"`
	MaxFrames int    `yaml:"max_frames"`
	FrameMult int    `yaml:"frame_mult"`
}

var errMissingName = errors.New("missing name")

func init() {
	Characters.Register("Character", characterFactory(entity.KindNPC))
	Characters.Register("NPC", characterFactory(entity.KindNPC))
	Characters.Register("Enemy", characterFactory(entity.KindEnemy))
	Characters.Register("Subplayer", characterFactory(entity.KindArchetype))

	Items.Register("Weapon", weaponFactory)
	Items.Register("PlayerWeapon", weaponFactory)
	Items.Register("Spell", spellFactory)
	Items.Register("PlayerSpell", spellFactory)
}

func characterFactory(kind entity.Kind) registry.Factory[Character] {
	return func(decode registry.Decoder) (Character, error) {
		var args characterArgs
		if err := decode(&args); err != nil {
			return Character{}, err
		}
		if args.Name == "" {
			return Character{}, errMissingName
		}
		if kind != entity.KindNPC && args.MaxHP <= 0 {
			return Character{}, fmt.Errorf("%s: max_hp must be positive", args.Name)
		}
		if args.MaxMana < 0 {
			return Character{}, fmt.Errorf("%s: max_mana must not be negative", args.Name)
		}

		tpl := args.Template
		tpl.Weapons = make([]entity.Attack, 0, len(args.Weapons))
		tpl.Spells = make([]entity.Attack, 0, len(args.Spells))
		for i, w := range args.Weapons {
			a, err := w.Resolve()
			if err != nil {
				return Character{}, fmt.Errorf("%s: weapon %d: %w", args.Name, i, err)
			}
			tpl.Weapons = append(tpl.Weapons, a)
		}
		for i, s := range args.Spells {
			a, err := s.Resolve()
			if err != nil {
				return Character{}, fmt.Errorf("%s: spell %d: %w", args.Name, i, err)
			}
			tpl.Spells = append(tpl.Spells, a)
		}
		return Character{Kind: kind, Template: tpl}, nil
	}
}

func decodeItem(decode registry.Decoder) (itemArgs, error) {
	var args itemArgs
	if err := decode(&args); err != nil {
		return args, err
	}
	if args.Name == "" {
		return args, errMissingName
	}
	if args.Damage < 0 || args.Mana < 0 {
		return args, fmt.Errorf("%s: damage and mana must not be negative", args.Name)
	}
	if args.Crit < 0 || args.Crit > 100 {
		return args, fmt.Errorf("%s: crit must be within 0..100", args.Name)
	}
	return args, nil
}

func weaponFactory(decode registry.Decoder) (entity.Attack, error) {
	args, err := decodeItem(decode)
	if err != nil {
		return entity.Attack{}, err
	}
	kind := entity.AttackMelee
	if t := strings.ToLower(args.Type); t == "arco" || t == "bow" {
		kind = entity.AttackBow
	}
	return entity.Attack{
		Kind:      kind,
		Name:      args.Name,
		Type:      args.Type,
		Damage:    args.Damage,
		Crit:      args.Crit,
		Frames:    defaultInt(args.MaxFrames, 4),
		FrameMult: defaultInt(args.FrameMult, 8),
	}, nil
}

func spellFactory(decode registry.Decoder) (entity.Attack, error) {
	args, err := decodeItem(decode)
	if err != nil {
		return entity.Attack{}, err
	}
	kind := entity.AttackSpell
	if strings.EqualFold(args.Type, "cure") {
		kind = entity.AttackCure
	}
	return entity.Attack{
		Kind:      kind,
		Name:      args.Name,
		Type:      args.Type,
		Damage:    args.Damage,
		Effect:    args.Effect,
		Mana:      args.Mana,
		Frames:    defaultInt(args.MaxFrames, 4),
		FrameMult: defaultInt(args.FrameMult, 8),
	}, nil
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
