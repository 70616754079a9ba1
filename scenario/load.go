package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mgomes/wfl/wfl"
	"gopkg.in/yaml.v3"
)

type fileSpec struct {
	Name         string         `yaml:"name"`
	Map          mapSpec        `yaml:"map"`
	TerrainTypes []terrainSpec  `yaml:"terrain_types"`
	UnitTypes    []unitTypeSpec `yaml:"unit_types"`
	Teams        []teamSpec     `yaml:"teams"`
	Units        []unitSpec     `yaml:"units"`
	Villages     []villageSpec  `yaml:"villages"`
	Config       yaml.Node      `yaml:"config"`
}

type mapSpec struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	BorderSize int      `yaml:"border_size"`
	Default    string   `yaml:"default"`
	Tiles      []string `yaml:"tiles"`
}

type terrainSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	EditorName  string `yaml:"editor_name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Light       int    `yaml:"light"`
	Healing     int    `yaml:"healing"`
	Village     bool   `yaml:"village"`
	Castle      bool   `yaml:"castle"`
	Keep        bool   `yaml:"keep"`
}

type attackSpec struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Type          string   `yaml:"type"`
	Icon          string   `yaml:"icon"`
	Range         string   `yaml:"range"`
	Damage        int      `yaml:"damage"`
	Number        int      `yaml:"number"`
	AttackWeight  *float64 `yaml:"attack_weight"`
	DefenseWeight *float64 `yaml:"defense_weight"`
	Accuracy      int      `yaml:"accuracy"`
	Parry         int      `yaml:"parry"`
	MovementUsed  int      `yaml:"movement_used"`
	Specials      []string `yaml:"specials"`
}

type unitTypeSpec struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	Race       string       `yaml:"race"`
	Alignment  string       `yaml:"alignment"`
	Usage      string       `yaml:"usage"`
	Abilities  []string     `yaml:"abilities"`
	Traits     []string     `yaml:"traits"`
	AdvancesTo []string     `yaml:"advances_to"`
	Attacks    []attackSpec `yaml:"attacks"`
	Cost       int          `yaml:"cost"`
	RecallCost int          `yaml:"recall_cost"`
	Level      int          `yaml:"level"`
	Movement   int          `yaml:"movement"`
	Hitpoints  int          `yaml:"hitpoints"`
	Experience int          `yaml:"experience"`
}

type teamSpec struct {
	Side           int      `yaml:"side"`
	ID             string   `yaml:"id"`
	SaveID         string   `yaml:"save_id"`
	Name           string   `yaml:"name"`
	TeamName       string   `yaml:"team_name"`
	Flag           string   `yaml:"flag"`
	Color          string   `yaml:"color"`
	Controller     string   `yaml:"controller"`
	Gold           int      `yaml:"gold"`
	BaseIncome     int      `yaml:"base_income"`
	VillageGold    *int     `yaml:"village_gold"`
	VillageSupport *int     `yaml:"village_support"`
	RecallCost     int      `yaml:"recall_cost"`
	Fog            bool     `yaml:"fog"`
	Shroud         bool     `yaml:"shroud"`
	Hidden         bool     `yaml:"hidden"`
	Recruit        []string `yaml:"recruit"`
}

type unitSpec struct {
	ID         string    `yaml:"id"`
	Type       string    `yaml:"type"`
	Name       string    `yaml:"name"`
	Gender     string    `yaml:"gender"`
	Side       int       `yaml:"side"`
	X          int       `yaml:"x"`
	Y          int       `yaml:"y"`
	CanRecruit bool      `yaml:"canrecruit"`
	Hitpoints  *int      `yaml:"hitpoints"`
	Experience int       `yaml:"experience"`
	Moves      *int      `yaml:"moves"`
	Attacks    *int      `yaml:"attacks_left"`
	Traits     []string  `yaml:"traits"`
	States     []string  `yaml:"states"`
	Vars       yaml.Node `yaml:"vars"`
}

type villageSpec struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Owner int `yaml:"owner"`
}

// Load reads a scenario file.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Parse builds a World from YAML.
func Parse(data []byte) (*World, error) {
	var spec fileSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return build(spec)
}

func build(spec fileSpec) (*World, error) {
	w := &World{
		Name:      spec.Name,
		terrains:  make(map[string]*wfl.TerrainType),
		unitTypes: make(map[string]*wfl.UnitType),
		villages:  make(map[wfl.Location]int),
	}
	for _, ts := range spec.TerrainTypes {
		if ts.ID == "" {
			return nil, errors.New("terrain type without id")
		}
		w.terrains[ts.ID] = &wfl.TerrainType{
			ID:          ts.ID,
			Name:        ts.Name,
			EditorName:  ts.EditorName,
			Description: ts.Description,
			Icon:        ts.Icon,
			Light:       ts.Light,
			Healing:     ts.Healing,
			Village:     ts.Village,
			Castle:      ts.Castle,
			Keep:        ts.Keep,
		}
	}
	if err := w.buildMap(spec.Map); err != nil {
		return nil, err
	}
	if err := w.buildUnitTypes(spec.UnitTypes); err != nil {
		return nil, err
	}
	for _, ts := range spec.Teams {
		w.teams = append(w.teams, newTeam(w, ts))
	}
	for _, us := range spec.Units {
		if err := w.addUnit(us); err != nil {
			return nil, err
		}
	}
	for _, vs := range spec.Villages {
		loc := wfl.Location{X: vs.X, Y: vs.Y}
		if err := w.CaptureVillage(loc, vs.Owner); err != nil {
			return nil, fmt.Errorf("village %s: %w", loc, err)
		}
	}
	if !spec.Config.IsZero() {
		cfg, err := ConfigFromNode(&spec.Config)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		w.config = cfg
	}
	w.gen = 0
	return w, nil
}

func (w *World) buildMap(ms mapSpec) error {
	if len(ms.Tiles) > 0 {
		ms.Height = len(ms.Tiles)
	}
	if ms.Width <= 0 && len(ms.Tiles) > 0 {
		ms.Width = len(strings.Fields(ms.Tiles[0]))
	}
	if ms.Width <= 0 || ms.Height <= 0 {
		return fmt.Errorf("map dimensions must be positive, got %dx%d", ms.Width, ms.Height)
	}
	w.width, w.height, w.border = ms.Width, ms.Height, ms.BorderSize
	w.tiles = make([][]string, ms.Height)
	for y := range w.tiles {
		row := make([]string, ms.Width)
		if y < len(ms.Tiles) {
			codes := strings.Fields(ms.Tiles[y])
			if len(codes) != ms.Width {
				return fmt.Errorf("map row %d has %d tiles, want %d", y+1, len(codes), ms.Width)
			}
			copy(row, codes)
		} else {
			for x := range row {
				row[x] = ms.Default
			}
		}
		for x, code := range row {
			if _, ok := w.terrains[code]; !ok {
				return fmt.Errorf("map tile %d,%d: unknown terrain %q", x+1, y+1, code)
			}
		}
		w.tiles[y] = row
	}
	return nil
}

func (w *World) buildUnitTypes(specs []unitTypeSpec) error {
	for _, us := range specs {
		if us.ID == "" {
			return errors.New("unit type without id")
		}
		if _, dup := w.unitTypes[us.ID]; dup {
			return fmt.Errorf("duplicate unit type %q", us.ID)
		}
		ut := &wfl.UnitType{
			ID:         us.ID,
			Name:       us.Name,
			Race:       us.Race,
			Alignment:  us.Alignment,
			Usage:      us.Usage,
			Abilities:  us.Abilities,
			Traits:     us.Traits,
			AdvancesTo: us.AdvancesTo,
			Cost:       us.Cost,
			RecallCost: us.RecallCost,
			Level:      us.Level,
			Movement:   us.Movement,
			Hitpoints:  us.Hitpoints,
			Experience: us.Experience,
		}
		if ut.Name == "" {
			ut.Name = ut.ID
		}
		for _, as := range us.Attacks {
			ut.Attacks = append(ut.Attacks, wfl.Share(newAttack(as), nil))
		}
		w.unitTypes[us.ID] = ut
		w.typeOrder = append(w.typeOrder, us.ID)
	}
	for _, id := range w.typeOrder {
		ut := w.unitTypes[id]
		for _, next := range ut.AdvancesTo {
			if target, ok := w.unitTypes[next]; ok {
				target.AdvancesFrom = append(target.AdvancesFrom, ut.ID)
			}
		}
	}
	return nil
}

func newAttack(as attackSpec) *wfl.Attack {
	a := &wfl.Attack{
		Name:          as.Name,
		Description:   as.Description,
		Type:          as.Type,
		Icon:          as.Icon,
		Range:         as.Range,
		Damage:        as.Damage,
		Number:        as.Number,
		AttackWeight:  1,
		DefenseWeight: 1,
		Accuracy:      as.Accuracy,
		Parry:         as.Parry,
		MovementUsed:  as.MovementUsed,
		Specials:      as.Specials,
	}
	if a.Description == "" {
		a.Description = a.Name
	}
	if as.AttackWeight != nil {
		a.AttackWeight = *as.AttackWeight
	}
	if as.DefenseWeight != nil {
		a.DefenseWeight = *as.DefenseWeight
	}
	return a
}

func newTeam(w *World, ts teamSpec) *Team {
	t := &Team{
		side:           ts.Side,
		id:             ts.ID,
		saveID:         ts.SaveID,
		name:           ts.Name,
		teamName:       ts.TeamName,
		flag:           ts.Flag,
		color:          ts.Color,
		controller:     ts.Controller,
		gold:           ts.Gold,
		startGold:      ts.Gold,
		baseIncome:     ts.BaseIncome,
		villageGold:    2,
		villageSupport: 1,
		recallCost:     ts.RecallCost,
		fog:            ts.Fog,
		shroud:         ts.Shroud,
		hidden:         ts.Hidden,
		recruits:       ts.Recruit,
		world:          w,
	}
	if t.controller == "" {
		t.controller = "ai"
	}
	if t.saveID == "" {
		t.saveID = t.id
	}
	if ts.VillageGold != nil {
		t.villageGold = *ts.VillageGold
	}
	if ts.VillageSupport != nil {
		t.villageSupport = *ts.VillageSupport
	}
	return t
}

func (w *World) addUnit(us unitSpec) error {
	ut, ok := w.unitTypes[us.Type]
	if !ok {
		return fmt.Errorf("unit %q: unknown type %q", us.ID, us.Type)
	}
	if _, dup := w.Unit(us.ID); dup {
		return fmt.Errorf("duplicate unit %q", us.ID)
	}
	loc := wfl.Location{X: us.X, Y: us.Y}
	if !w.Map().OnBoard(loc) {
		return fmt.Errorf("unit %q at %s: %w", us.ID, loc, wfl.ErrOffMap)
	}
	if other, occupied := w.UnitAt(loc); occupied {
		return fmt.Errorf("unit %q at %s: occupied by %q", us.ID, loc, other.ID())
	}
	w.nextUID++
	u := &Unit{
		uid:        w.nextUID,
		id:         us.ID,
		unitType:   ut,
		name:       us.Name,
		gender:     us.Gender,
		side:       us.Side,
		loc:        loc,
		canRecruit: us.CanRecruit,
		hitpoints:  ut.Hitpoints,
		experience: us.Experience,
		movesLeft:  ut.Movement,
		attacksLft: 1,
		maxAttacks: 1,
		traits:     us.Traits,
		states:     us.States,
		vars:       wfl.NewConfig(),
	}
	if u.gender == "" {
		u.gender = "male"
	}
	if us.Hitpoints != nil {
		u.hitpoints = *us.Hitpoints
	}
	if us.Moves != nil {
		u.movesLeft = *us.Moves
	}
	if us.Attacks != nil {
		u.attacksLft = *us.Attacks
	}
	if !us.Vars.IsZero() {
		vars, err := ConfigFromNode(&us.Vars)
		if err != nil {
			return fmt.Errorf("unit %q vars: %w", us.ID, err)
		}
		u.vars = vars
	}
	w.units = append(w.units, u)
	return nil
}
