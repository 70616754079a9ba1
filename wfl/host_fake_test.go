package wfl

import "fmt"

type fakeBoard struct {
	w, h     int
	tiles    map[Location]*TerrainType
	plain    *TerrainType
	owners   map[Location]int
	units    []*fakeUnit
	teams    []*fakeTeam
	gen      uint64
	mapCalls int
}

func newFakeBoard() *fakeBoard {
	grass := &TerrainType{ID: "Gg", Name: "Grassland", EditorName: "Green", Icon: "grass"}
	village := &TerrainType{ID: "Vh", Name: "Village", Village: true, Healing: 8}
	keep := &TerrainType{ID: "Kh", Name: "Keep", Castle: true, Keep: true, Light: 25}
	b := &fakeBoard{
		w:      3,
		h:      2,
		plain:  grass,
		tiles:  map[Location]*TerrainType{{X: 2, Y: 1}: village, {X: 1, Y: 2}: keep},
		owners: map[Location]int{{X: 2, Y: 1}: 1},
	}
	spear := Share(&Attack{Name: "spear", Type: "pierce", Range: "melee", Damage: 7, Number: 3, Specials: []string{"firststrike"}}, nil)
	vars := NewConfig()
	vars.SetAttr("mood", "brave")
	b.units = []*fakeUnit{
		{uid: 7, id: "konrad", typeID: "Spearman", loc: Location{X: 1, Y: 2}, side: 1, leader: true, hp: 36, attacks: []Shared[*Attack]{spear}, vars: vars},
		{uid: 9, id: "bones", typeID: "Skeleton", race: "undead", loc: Location{X: 3, Y: 2}, side: 2, hp: 34},
	}
	b.teams = []*fakeTeam{
		{side: 1, id: "Loyalists", controller: "human", gold: 100},
		{side: 2, id: "Undead", controller: "ai", gold: 80},
	}
	return b
}

func (b *fakeBoard) Generation() uint64 { return b.gen }

func (b *fakeBoard) Map() GameMap {
	b.mapCalls++
	return fakeMap{b}
}

func (b *fakeBoard) Teams() []Team {
	out := make([]Team, len(b.teams))
	for i, t := range b.teams {
		out[i] = t
	}
	return out
}

func (b *fakeBoard) Units() []Unit {
	out := make([]Unit, len(b.units))
	for i, u := range b.units {
		out[i] = u
	}
	return out
}

func (b *fakeBoard) UnitAt(loc Location) (Unit, bool) {
	for _, u := range b.units {
		if u.loc == loc {
			return u, true
		}
	}
	return nil, false
}

func (b *fakeBoard) VillageOwner(loc Location) int { return b.owners[loc] }

type fakeMap struct{ b *fakeBoard }

func (m fakeMap) Width() int      { return m.b.w }
func (m fakeMap) Height() int     { return m.b.h }
func (m fakeMap) BorderSize() int { return 1 }

func (m fakeMap) OnBoard(loc Location) bool {
	return loc.X >= 1 && loc.Y >= 1 && loc.X <= m.b.w && loc.Y <= m.b.h
}

func (m fakeMap) TerrainAt(loc Location) (*TerrainType, error) {
	if !m.OnBoard(loc) {
		return nil, fmt.Errorf("%s: %w", loc, ErrOffMap)
	}
	if t, ok := m.b.tiles[loc]; ok {
		return t, nil
	}
	return m.b.plain, nil
}

func (m fakeMap) Villages() []Location {
	var out []Location
	for y := 1; y <= m.b.h; y++ {
		for x := 1; x <= m.b.w; x++ {
			loc := Location{X: x, Y: y}
			if t, _ := m.TerrainAt(loc); t.Village {
				out = append(out, loc)
			}
		}
	}
	return out
}

type fakeUnit struct {
	uid     uint64
	id      string
	typeID  string
	race    string
	loc     Location
	side    int
	leader  bool
	hp      int
	states  []string
	attacks []Shared[*Attack]
	vars    *Config
	gen     uint64
}

func (u *fakeUnit) Generation() uint64         { return u.gen }
func (u *fakeUnit) UnderlyingID() uint64       { return u.uid }
func (u *fakeUnit) ID() string                 { return u.id }
func (u *fakeUnit) TypeID() string             { return u.typeID }
func (u *fakeUnit) Name() string               { return u.id }
func (u *fakeUnit) Usage() string              { return "fighter" }
func (u *fakeUnit) Race() string               { return u.race }
func (u *fakeUnit) Alignment() string          { return "lawful" }
func (u *fakeUnit) Gender() string             { return "male" }
func (u *fakeUnit) Side() int                  { return u.side }
func (u *fakeUnit) Level() int                 { return 1 }
func (u *fakeUnit) Location() Location         { return u.loc }
func (u *fakeUnit) CanRecruit() bool           { return u.leader }
func (u *fakeUnit) Hitpoints() int             { return u.hp }
func (u *fakeUnit) MaxHitpoints() int          { return 36 }
func (u *fakeUnit) Experience() int            { return 0 }
func (u *fakeUnit) MaxExperience() int         { return 42 }
func (u *fakeUnit) MovementLeft() int          { return 5 }
func (u *fakeUnit) TotalMovement() int         { return 5 }
func (u *fakeUnit) AttacksLeft() int           { return 1 }
func (u *fakeUnit) MaxAttacks() int            { return 1 }
func (u *fakeUnit) Cost() int                  { return 14 }
func (u *fakeUnit) Upkeep() int                { return 1 }
func (u *fakeUnit) Abilities() []string        { return nil }
func (u *fakeUnit) Traits() []string           { return []string{"quick"} }
func (u *fakeUnit) AdvancesTo() []string       { return []string{"Pikeman"} }
func (u *fakeUnit) States() []string           { return u.states }
func (u *fakeUnit) Attacks() []Shared[*Attack] { return u.attacks }
func (u *fakeUnit) Variables() *Config         { return u.vars }

type fakeTeam struct {
	side       int
	id         string
	controller string
	gold       int
	gen        uint64
}

func (t *fakeTeam) Generation() uint64  { return t.gen }
func (t *fakeTeam) Side() int           { return t.side }
func (t *fakeTeam) ID() string          { return t.id }
func (t *fakeTeam) SaveID() string      { return t.id }
func (t *fakeTeam) Name() string        { return t.id }
func (t *fakeTeam) TeamName() string    { return "north" }
func (t *fakeTeam) Flag() string        { return "" }
func (t *fakeTeam) Color() string       { return "red" }
func (t *fakeTeam) Controller() string  { return t.controller }
func (t *fakeTeam) Gold() int           { return t.gold }
func (t *fakeTeam) StartGold() int      { return 100 }
func (t *fakeTeam) BaseIncome() int     { return 2 }
func (t *fakeTeam) TotalIncome() int    { return 4 }
func (t *fakeTeam) VillageGold() int    { return 2 }
func (t *fakeTeam) VillageSupport() int { return 1 }
func (t *fakeTeam) RecallCost() int     { return 20 }
func (t *fakeTeam) Fog() bool           { return false }
func (t *fakeTeam) Shroud() bool        { return false }
func (t *fakeTeam) Hidden() bool        { return false }
func (t *fakeTeam) Recruits() []string  { return []string{"Spearman"} }

func testUnitType() *UnitType {
	return &UnitType{
		ID:         "Spearman",
		Name:       "Spearman",
		Race:       "human",
		Alignment:  "lawful",
		Usage:      "fighter",
		AdvancesTo: []string{"Pikeman"},
		Attacks:    []Shared[*Attack]{Share(&Attack{Name: "spear", Type: "pierce", Range: "melee", Damage: 7, Number: 3}, nil)},
		Cost:       14,
		Level:      1,
		Movement:   5,
		Hitpoints:  36,
		Experience: 42,
	}
}

func testConfig() *Config {
	cfg := NewConfig()
	cfg.SetAttr("id", "crossroads")
	cfg.SetAttr("turns", 12)
	cfg.SetAttr("ratio", 0.5)
	cfg.SetAttr("fog", true)
	cfg.AddChild("event").SetAttr("name", "prestart")
	cfg.AddChild("event").SetAttr("name", "turn 2")
	cfg.AddChild("side").SetAttr("side", 1)
	return cfg
}
