package wfl

import "fmt"

// TerrainCallable is a snapshot of one map tile. The terrain type and the
// village owner are resolved at construction and never re-read.
type TerrainCallable struct {
	loc     Location
	terrain TerrainType
	owner   int
}

func NewTerrainCallable(board Board, loc Location) (*TerrainCallable, error) {
	m := board.Map()
	if !m.OnBoard(loc) {
		return nil, fmt.Errorf("terrain at %s: %w", loc, ErrOffMap)
	}
	t, err := m.TerrainAt(loc)
	if err != nil {
		return nil, fmt.Errorf("terrain at %s: %w", loc, err)
	}
	if t == nil {
		return nil, fmt.Errorf("terrain at %s: %w", loc, ErrAttributeNotFound)
	}
	return &TerrainCallable{loc: loc, terrain: *t, owner: board.VillageOwner(loc)}, nil
}

var terrainAttrs = newAttrTable(TypeTerrain,
	attr("x", func(c *TerrainCallable) Value { return newIntValue(c.loc.X) }),
	attr("y", func(c *TerrainCallable) Value { return newIntValue(c.loc.Y) }),
	attr("loc", func(c *TerrainCallable) Value { return locationValue(c.loc) }),
	attr("id", func(c *TerrainCallable) Value { return NewString(c.terrain.ID) }),
	attr("name", func(c *TerrainCallable) Value { return NewString(c.terrain.Name) }),
	attr("editor_name", func(c *TerrainCallable) Value { return NewString(c.terrain.EditorName) }),
	attr("description", func(c *TerrainCallable) Value { return NewString(c.terrain.Description) }),
	attr("icon", func(c *TerrainCallable) Value { return NewString(c.terrain.Icon) }),
	attr("light", func(c *TerrainCallable) Value { return newIntValue(c.terrain.Light) }),
	attr("village", func(c *TerrainCallable) Value { return NewBool(c.terrain.Village) }),
	attr("castle", func(c *TerrainCallable) Value { return NewBool(c.terrain.Castle) }),
	attr("keep", func(c *TerrainCallable) Value { return NewBool(c.terrain.Keep) }),
	attr("healing", func(c *TerrainCallable) Value { return newIntValue(c.terrain.Healing) }),
	attr("owner_side", func(c *TerrainCallable) Value { return newIntValue(c.owner) }),
)

func (c *TerrainCallable) Location() Location { return c.loc }

func (c *TerrainCallable) Type() CallableType { return TypeTerrain }

func (c *TerrainCallable) Get(key string) (Value, error) { return terrainAttrs.get(c, key) }

func (c *TerrainCallable) Set(key string, _ Value) error { return terrainAttrs.set(key) }

func (c *TerrainCallable) Inputs() []Input { return terrainAttrs.list() }

func (c *TerrainCallable) Duplicate() Callable {
	dup := *c
	return &dup
}

func (c *TerrainCallable) CompareCallable(other Callable) Ordering {
	o, ok := other.(*TerrainCallable)
	if !ok {
		return Incomparable
	}
	return compareLocations(c.loc, o.loc)
}
