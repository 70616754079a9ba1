package wfl

import (
	"cmp"
	"math"
	"slices"
)

// UnitCallable owns the coordinate it was created at and borrows the unit.
type UnitCallable struct {
	loc  Location
	unit Unit
	ref  borrow
}

// NewUnitCallable snapshots the unit's current location.
func NewUnitCallable(u Unit) *UnitCallable {
	return NewUnitCallableAt(u.Location(), u)
}

func NewUnitCallableAt(loc Location, u Unit) *UnitCallable {
	return &UnitCallable{loc: loc, unit: u, ref: borrowOf(u)}
}

var unitAttrs = newAttrTable(TypeUnit,
	attr("x", func(c *UnitCallable) Value { return newIntValue(c.loc.X) }),
	attr("y", func(c *UnitCallable) Value { return newIntValue(c.loc.Y) }),
	attr("loc", func(c *UnitCallable) Value { return locationValue(c.loc) }),
	attr("id", func(c *UnitCallable) Value { return NewString(c.unit.ID()) }),
	attr("underlying_id", func(c *UnitCallable) Value { return NewInt(int64(min(c.unit.UnderlyingID(), math.MaxInt64))) }),
	attr("type", func(c *UnitCallable) Value { return NewString(c.unit.TypeID()) }),
	attr("name", func(c *UnitCallable) Value { return NewString(c.unit.Name()) }),
	attr("usage", func(c *UnitCallable) Value { return NewString(c.unit.Usage()) }),
	attr("leader", func(c *UnitCallable) Value { return NewBool(c.unit.CanRecruit()) }),
	attr("undead", func(c *UnitCallable) Value {
		return NewBool(c.unit.Race() == "undead" || slices.Contains(c.unit.States(), "not_living"))
	}),
	attr("attacks", func(c *UnitCallable) Value { return attackList(c.unit.Attacks()) }),
	attr("abilities", func(c *UnitCallable) Value { return newStringList(c.unit.Abilities()) }),
	attr("hitpoints", func(c *UnitCallable) Value { return newIntValue(c.unit.Hitpoints()) }),
	attr("max_hitpoints", func(c *UnitCallable) Value { return newIntValue(c.unit.MaxHitpoints()) }),
	attr("experience", func(c *UnitCallable) Value { return newIntValue(c.unit.Experience()) }),
	attr("max_experience", func(c *UnitCallable) Value { return newIntValue(c.unit.MaxExperience()) }),
	attr("level", func(c *UnitCallable) Value { return newIntValue(c.unit.Level()) }),
	attr("total_movement", func(c *UnitCallable) Value { return newIntValue(c.unit.TotalMovement()) }),
	attr("movement_left", func(c *UnitCallable) Value { return newIntValue(c.unit.MovementLeft()) }),
	attr("attacks_left", func(c *UnitCallable) Value { return newIntValue(c.unit.AttacksLeft()) }),
	attr("max_attacks", func(c *UnitCallable) Value { return newIntValue(c.unit.MaxAttacks()) }),
	attr("traits", func(c *UnitCallable) Value { return newStringList(c.unit.Traits()) }),
	attr("advances_to", func(c *UnitCallable) Value { return newStringList(c.unit.AdvancesTo()) }),
	attr("states", func(c *UnitCallable) Value { return newStringList(c.unit.States()) }),
	attr("side", func(c *UnitCallable) Value { return newIntValue(c.unit.Side()) }),
	attr("cost", func(c *UnitCallable) Value { return newIntValue(c.unit.Cost()) }),
	attr("upkeep", func(c *UnitCallable) Value { return newIntValue(c.unit.Upkeep()) }),
	attr("race", func(c *UnitCallable) Value { return NewString(c.unit.Race()) }),
	attr("alignment", func(c *UnitCallable) Value { return NewString(c.unit.Alignment()) }),
	attr("gender", func(c *UnitCallable) Value { return NewString(c.unit.Gender()) }),
	attr("vars", func(c *UnitCallable) Value {
		vars := c.unit.Variables()
		if vars == nil {
			return NewNil()
		}
		return NewCallable(NewConfigCallable(vars))
	}),
)

func (c *UnitCallable) Unit() Unit { return c.unit }

func (c *UnitCallable) Location() Location { return c.loc }

func (c *UnitCallable) Type() CallableType { return TypeUnit }

func (c *UnitCallable) Get(key string) (Value, error) { return unitAttrs.get(c, key, c.ref) }

func (c *UnitCallable) Set(key string, _ Value) error { return unitAttrs.set(key) }

func (c *UnitCallable) Inputs() []Input { return unitAttrs.list() }

func (c *UnitCallable) Duplicate() Callable {
	dup := *c
	return &dup
}

func (c *UnitCallable) CompareCallable(other Callable) Ordering {
	o, ok := other.(*UnitCallable)
	if !ok {
		return Incomparable
	}
	return Ordering(cmp.Compare(c.unit.UnderlyingID(), o.unit.UnderlyingID()))
}
