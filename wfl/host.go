package wfl

import "fmt"

// Location is a 1-based map coordinate. The zero value is the null location.
type Location struct {
	X int
	Y int
}

func (l Location) Valid() bool { return l.X > 0 && l.Y > 0 }

func (l Location) String() string { return fmt.Sprintf("%d,%d", l.X, l.Y) }

// Versioned is implemented by host objects that can change while adapters
// borrow them. Every mutation must advance Generation.
type Versioned interface {
	Generation() uint64
}

// Board is the read contract for the game state a formula runs against.
type Board interface {
	Map() GameMap
	Teams() []Team
	Units() []Unit
	UnitAt(loc Location) (Unit, bool)
	// VillageOwner returns the owning side number, or 0 when unowned.
	VillageOwner(loc Location) int
}

type GameMap interface {
	Width() int
	Height() int
	BorderSize() int
	OnBoard(loc Location) bool
	TerrainAt(loc Location) (*TerrainType, error)
	Villages() []Location
}

// TerrainType describes one terrain definition from the host's catalog.
type TerrainType struct {
	ID          string
	Name        string
	EditorName  string
	Description string
	Icon        string
	Light       int
	Healing     int
	Village     bool
	Castle      bool
	Keep        bool
}

// Attack is a weapon descriptor. Units and unit types hand them out through
// Shared handles.
type Attack struct {
	Name          string
	Description   string
	Type          string
	Icon          string
	Range         string
	Damage        int
	Number        int
	AttackWeight  float64
	DefenseWeight float64
	Accuracy      int
	Parry         int
	MovementUsed  int
	Specials      []string
}

type UnitType struct {
	ID           string
	Name         string
	Race         string
	Alignment    string
	Usage        string
	Abilities    []string
	Traits       []string
	AdvancesTo   []string
	AdvancesFrom []string
	Attacks      []Shared[*Attack]
	Cost         int
	RecallCost   int
	Level        int
	Movement     int
	Hitpoints    int
	Experience   int
}

// Unit is the read contract for a unit instance.
type Unit interface {
	UnderlyingID() uint64
	ID() string
	TypeID() string
	Name() string
	Usage() string
	Race() string
	Alignment() string
	Gender() string
	Side() int
	Level() int
	Location() Location
	CanRecruit() bool
	Hitpoints() int
	MaxHitpoints() int
	Experience() int
	MaxExperience() int
	MovementLeft() int
	TotalMovement() int
	AttacksLeft() int
	MaxAttacks() int
	Cost() int
	Upkeep() int
	Abilities() []string
	Traits() []string
	AdvancesTo() []string
	States() []string
	Attacks() []Shared[*Attack]
	Variables() *Config
}

// Team is the read contract for a side.
type Team interface {
	Side() int
	ID() string
	SaveID() string
	Name() string
	TeamName() string
	Flag() string
	Color() string
	Controller() string
	Gold() int
	StartGold() int
	BaseIncome() int
	TotalIncome() int
	VillageGold() int
	VillageSupport() int
	RecallCost() int
	Fog() bool
	Shroud() bool
	Hidden() bool
	Recruits() []string
}

// borrow records the generation of a host object at adapter construction so
// later reads can detect that the object changed underneath the adapter.
type borrow struct {
	src Versioned
	gen uint64
}

func borrowOf(v any) borrow {
	if src, ok := v.(Versioned); ok && src != nil {
		return borrow{src: src, gen: src.Generation()}
	}
	return borrow{}
}

func (b borrow) check(kind CallableType) error {
	if b.src != nil && b.src.Generation() != b.gen {
		return fmt.Errorf("%s: %w (generation %d, now %d)", kind, ErrStaleReference, b.gen, b.src.Generation())
	}
	return nil
}
