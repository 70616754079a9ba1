package wfl

// UnitTypeCallable borrows a unit type definition.
type UnitTypeCallable struct {
	ut *UnitType
}

func NewUnitTypeCallable(ut *UnitType) *UnitTypeCallable {
	return &UnitTypeCallable{ut: ut}
}

var unitTypeAttrs = newAttrTable(TypeUnitType,
	attr("id", func(c *UnitTypeCallable) Value { return NewString(c.ut.ID) }),
	attr("type", func(c *UnitTypeCallable) Value { return NewString(c.ut.Name) }),
	attr("race", func(c *UnitTypeCallable) Value { return NewString(c.ut.Race) }),
	attr("alignment", func(c *UnitTypeCallable) Value { return NewString(c.ut.Alignment) }),
	attr("abilities", func(c *UnitTypeCallable) Value { return newStringList(c.ut.Abilities) }),
	attr("traits", func(c *UnitTypeCallable) Value { return newStringList(c.ut.Traits) }),
	attr("attacks", func(c *UnitTypeCallable) Value { return attackList(c.ut.Attacks) }),
	attr("cost", func(c *UnitTypeCallable) Value { return newIntValue(c.ut.Cost) }),
	attr("recall_cost", func(c *UnitTypeCallable) Value { return newIntValue(c.ut.RecallCost) }),
	attr("usage", func(c *UnitTypeCallable) Value { return NewString(c.ut.Usage) }),
	attr("level", func(c *UnitTypeCallable) Value { return newIntValue(c.ut.Level) }),
	attr("total_movement", func(c *UnitTypeCallable) Value { return newIntValue(c.ut.Movement) }),
	attr("max_hitpoints", func(c *UnitTypeCallable) Value { return newIntValue(c.ut.Hitpoints) }),
	attr("max_experience", func(c *UnitTypeCallable) Value { return newIntValue(c.ut.Experience) }),
	attr("advances_to", func(c *UnitTypeCallable) Value { return newStringList(c.ut.AdvancesTo) }),
	attr("advances_from", func(c *UnitTypeCallable) Value { return newStringList(c.ut.AdvancesFrom) }),
)

func (c *UnitTypeCallable) UnitType() *UnitType { return c.ut }

func (c *UnitTypeCallable) Type() CallableType { return TypeUnitType }

func (c *UnitTypeCallable) Get(key string) (Value, error) { return unitTypeAttrs.get(c, key) }

func (c *UnitTypeCallable) Set(key string, _ Value) error { return unitTypeAttrs.set(key) }

func (c *UnitTypeCallable) Inputs() []Input { return unitTypeAttrs.list() }

func (c *UnitTypeCallable) Duplicate() Callable { return &UnitTypeCallable{ut: c.ut} }

func (c *UnitTypeCallable) CompareCallable(other Callable) Ordering {
	o, ok := other.(*UnitTypeCallable)
	if !ok {
		return Incomparable
	}
	return orderStrings(c.ut.ID, o.ut.ID)
}
