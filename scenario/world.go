// Package scenario provides an in-memory game state that satisfies the host
// read contracts consumed by package wfl. Worlds are loaded from YAML.
package scenario

import (
	"fmt"
	"slices"

	"github.com/mgomes/wfl/wfl"
)

var (
	_ wfl.Board   = (*World)(nil)
	_ wfl.GameMap = (*worldMap)(nil)
	_ wfl.Team    = (*Team)(nil)
	_ wfl.Unit    = (*Unit)(nil)
)

// World is a board: map, terrain catalog, unit types, teams and units.
// Every mutation advances the world generation, so adapters borrowing the
// world notice the change.
type World struct {
	Name      string
	width     int
	height    int
	border    int
	tiles     [][]string
	terrains  map[string]*wfl.TerrainType
	unitTypes map[string]*wfl.UnitType
	typeOrder []string
	teams     []*Team
	units     []*Unit
	villages  map[wfl.Location]int
	config    *wfl.Config
	gen       uint64
	nextUID   uint64
}

func (w *World) Generation() uint64 { return w.gen }

func (w *World) Map() wfl.GameMap { return (*worldMap)(w) }

func (w *World) Teams() []wfl.Team {
	out := make([]wfl.Team, len(w.teams))
	for i, t := range w.teams {
		out[i] = t
	}
	return out
}

func (w *World) Units() []wfl.Unit {
	out := make([]wfl.Unit, len(w.units))
	for i, u := range w.units {
		out[i] = u
	}
	return out
}

func (w *World) UnitAt(loc wfl.Location) (wfl.Unit, bool) {
	for _, u := range w.units {
		if u.loc == loc {
			return u, true
		}
	}
	return nil, false
}

func (w *World) VillageOwner(loc wfl.Location) int {
	return w.villages[loc]
}

func (w *World) Config() *wfl.Config { return w.config }

func (w *World) UnitType(id string) (*wfl.UnitType, bool) {
	ut, ok := w.unitTypes[id]
	return ut, ok
}

// UnitTypes returns unit types in declaration order.
func (w *World) UnitTypes() []*wfl.UnitType {
	out := make([]*wfl.UnitType, 0, len(w.typeOrder))
	for _, id := range w.typeOrder {
		out = append(out, w.unitTypes[id])
	}
	return out
}

func (w *World) Team(side int) (*Team, bool) {
	for _, t := range w.teams {
		if t.side == side {
			return t, true
		}
	}
	return nil, false
}

func (w *World) Unit(id string) (*Unit, bool) {
	for _, u := range w.units {
		if u.id == id {
			return u, true
		}
	}
	return nil, false
}

// MoveUnit relocates a unit and spends one movement point per call.
func (w *World) MoveUnit(id string, to wfl.Location) error {
	u, ok := w.Unit(id)
	if !ok {
		return fmt.Errorf("unit %q not found", id)
	}
	if !w.Map().OnBoard(to) {
		return fmt.Errorf("move %q to %s: %w", id, to, wfl.ErrOffMap)
	}
	if other, occupied := w.UnitAt(to); occupied && other.ID() != id {
		return fmt.Errorf("move %q to %s: occupied by %q", id, to, other.ID())
	}
	u.loc = to
	if u.movesLeft > 0 {
		u.movesLeft--
	}
	u.gen++
	w.gen++
	return nil
}

// CaptureVillage assigns a village to side; side 0 clears ownership.
func (w *World) CaptureVillage(loc wfl.Location, side int) error {
	t, err := w.Map().TerrainAt(loc)
	if err != nil {
		return err
	}
	if !t.Village {
		return fmt.Errorf("%s is not a village", loc)
	}
	if side == 0 {
		delete(w.villages, loc)
	} else {
		w.villages[loc] = side
	}
	w.gen++
	return nil
}

func (w *World) SetGold(side, gold int) error {
	t, ok := w.Team(side)
	if !ok {
		return fmt.Errorf("side %d not found", side)
	}
	t.gold = gold
	t.gen++
	w.gen++
	return nil
}

// worldMap is the GameMap view of a World.
type worldMap World

func (m *worldMap) Width() int      { return m.width }
func (m *worldMap) Height() int     { return m.height }
func (m *worldMap) BorderSize() int { return m.border }

func (m *worldMap) OnBoard(loc wfl.Location) bool {
	return loc.X >= 1 && loc.Y >= 1 && loc.X <= m.width && loc.Y <= m.height
}

func (m *worldMap) TerrainAt(loc wfl.Location) (*wfl.TerrainType, error) {
	if !m.OnBoard(loc) {
		return nil, fmt.Errorf("%s: %w", loc, wfl.ErrOffMap)
	}
	code := m.tiles[loc.Y-1][loc.X-1]
	t, ok := m.terrains[code]
	if !ok {
		return nil, fmt.Errorf("unknown terrain %q at %s", code, loc)
	}
	return t, nil
}

// Villages lists village tiles in row-major order.
func (m *worldMap) Villages() []wfl.Location {
	var out []wfl.Location
	for y := 1; y <= m.height; y++ {
		for x := 1; x <= m.width; x++ {
			if t, ok := m.terrains[m.tiles[y-1][x-1]]; ok && t.Village {
				out = append(out, wfl.Location{X: x, Y: y})
			}
		}
	}
	return out
}

// Bindings builds the root evaluation scope for formulas run against w.
// When me is non-empty the named unit is bound as "me".
func (w *World) Bindings(me string) (*wfl.Vars, error) {
	vars := wfl.NewVars()
	vars.Add("map", wfl.NewCallable(wfl.NewMapCallable(w)))

	teams := make([]wfl.Value, len(w.teams))
	for i, t := range w.teams {
		teams[i] = wfl.NewCallable(wfl.NewTeamCallable(t))
	}
	vars.Add("teams", wfl.NewArray(teams))

	units := make([]wfl.Value, len(w.units))
	for i, u := range w.units {
		units[i] = wfl.NewCallable(wfl.NewUnitCallable(u))
	}
	vars.Add("units", wfl.NewArray(units))

	types := make(map[string]wfl.Value, len(w.unitTypes))
	for id, ut := range w.unitTypes {
		types[id] = wfl.NewCallable(wfl.NewUnitTypeCallable(ut))
	}
	vars.Add("unit_types", wfl.NewHash(types))

	if w.config != nil {
		vars.Add("config", wfl.NewCallable(wfl.NewConfigCallable(w.config)))
	}
	if me != "" {
		u, ok := w.Unit(me)
		if !ok {
			return nil, fmt.Errorf("unit %q not found", me)
		}
		vars.Add("me", wfl.NewCallable(wfl.NewUnitCallable(u)))
	}
	return vars, nil
}

// Team is a side in the world.
type Team struct {
	side           int
	id             string
	saveID         string
	name           string
	teamName       string
	flag           string
	color          string
	controller     string
	gold           int
	startGold      int
	baseIncome     int
	villageGold    int
	villageSupport int
	recallCost     int
	fog            bool
	shroud         bool
	hidden         bool
	recruits       []string
	world          *World
	gen            uint64
}

// Generation folds in the world's, since income and upkeep depend on
// villages and units the team does not own directly.
func (t *Team) Generation() uint64 {
	if t.world == nil {
		return t.gen
	}
	return t.gen + t.world.gen
}

func (t *Team) Side() int           { return t.side }
func (t *Team) ID() string          { return t.id }
func (t *Team) SaveID() string      { return t.saveID }
func (t *Team) Name() string        { return t.name }
func (t *Team) TeamName() string    { return t.teamName }
func (t *Team) Flag() string        { return t.flag }
func (t *Team) Color() string       { return t.color }
func (t *Team) Controller() string  { return t.controller }
func (t *Team) Gold() int           { return t.gold }
func (t *Team) StartGold() int      { return t.startGold }
func (t *Team) BaseIncome() int     { return t.baseIncome }
func (t *Team) VillageGold() int    { return t.villageGold }
func (t *Team) VillageSupport() int { return t.villageSupport }
func (t *Team) RecallCost() int     { return t.recallCost }
func (t *Team) Fog() bool           { return t.fog }
func (t *Team) Shroud() bool        { return t.shroud }
func (t *Team) Hidden() bool        { return t.hidden }
func (t *Team) Recruits() []string  { return slices.Clone(t.recruits) }

// TotalIncome is base income plus village income, less upkeep not covered
// by village support.
func (t *Team) TotalIncome() int {
	villages := 0
	for _, side := range t.world.villages {
		if side == t.side {
			villages++
		}
	}
	upkeep := 0
	for _, u := range t.world.units {
		if u.side == t.side && !u.canRecruit {
			upkeep += u.Upkeep()
		}
	}
	support := villages * t.villageSupport
	return t.baseIncome + villages*t.villageGold - max(0, upkeep-support)
}

// Unit is a unit instance in the world.
type Unit struct {
	uid        uint64
	id         string
	unitType   *wfl.UnitType
	name       string
	gender     string
	side       int
	loc        wfl.Location
	canRecruit bool
	hitpoints  int
	experience int
	movesLeft  int
	attacksLft int
	maxAttacks int
	traits     []string
	states     []string
	vars       *wfl.Config
	gen        uint64
}

func (u *Unit) Generation() uint64     { return u.gen }
func (u *Unit) UnderlyingID() uint64   { return u.uid }
func (u *Unit) ID() string             { return u.id }
func (u *Unit) TypeID() string         { return u.unitType.ID }
func (u *Unit) Name() string           { return u.name }
func (u *Unit) Usage() string          { return u.unitType.Usage }
func (u *Unit) Race() string           { return u.unitType.Race }
func (u *Unit) Alignment() string      { return u.unitType.Alignment }
func (u *Unit) Gender() string         { return u.gender }
func (u *Unit) Side() int              { return u.side }
func (u *Unit) Level() int             { return u.unitType.Level }
func (u *Unit) Location() wfl.Location { return u.loc }
func (u *Unit) CanRecruit() bool       { return u.canRecruit }
func (u *Unit) Hitpoints() int         { return u.hitpoints }
func (u *Unit) MaxHitpoints() int      { return u.unitType.Hitpoints }
func (u *Unit) Experience() int        { return u.experience }
func (u *Unit) MaxExperience() int     { return u.unitType.Experience }
func (u *Unit) MovementLeft() int      { return u.movesLeft }
func (u *Unit) TotalMovement() int     { return u.unitType.Movement }
func (u *Unit) AttacksLeft() int       { return u.attacksLft }
func (u *Unit) MaxAttacks() int        { return u.maxAttacks }
func (u *Unit) Cost() int              { return u.unitType.Cost }
func (u *Unit) Abilities() []string    { return slices.Clone(u.unitType.Abilities) }
func (u *Unit) Traits() []string       { return slices.Clone(u.traits) }
func (u *Unit) AdvancesTo() []string   { return slices.Clone(u.unitType.AdvancesTo) }
func (u *Unit) States() []string       { return slices.Clone(u.states) }
func (u *Unit) Variables() *wfl.Config { return u.vars }
func (u *Unit) Type() *wfl.UnitType    { return u.unitType }
func (u *Unit) Attacks() []wfl.Shared[*wfl.Attack] {
	return slices.Clone(u.unitType.Attacks)
}

// Upkeep is the unit level, waived for loyal units and leaders.
func (u *Unit) Upkeep() int {
	if u.canRecruit || slices.Contains(u.traits, "loyal") {
		return 0
	}
	return u.unitType.Level
}
