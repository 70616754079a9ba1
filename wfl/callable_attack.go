package wfl

// AttackCallable wraps a shared attack descriptor. An owning callable holds
// its own reference and must be Released; a view borrows the owner's.
type AttackCallable struct {
	att   Shared[*Attack]
	owned bool
}

// NewAttackCallable retains h; the caller keeps its own reference.
func NewAttackCallable(h Shared[*Attack]) *AttackCallable {
	return &AttackCallable{att: h.Retain(), owned: true}
}

// attackView wraps h without taking a reference. The unit or unit type
// that lists the attack keeps it alive.
func attackView(h Shared[*Attack]) *AttackCallable {
	return &AttackCallable{att: h}
}

var attackAttrs = newAttrTable(TypeAttack,
	attr("id", func(c *AttackCallable) Value { return NewString(c.attack().Name) }),
	attr("name", func(c *AttackCallable) Value { return NewString(c.attack().Name) }),
	attr("description", func(c *AttackCallable) Value { return NewString(c.attack().Description) }),
	attr("type", func(c *AttackCallable) Value { return NewString(c.attack().Type) }),
	attr("icon", func(c *AttackCallable) Value { return NewString(c.attack().Icon) }),
	attr("range", func(c *AttackCallable) Value { return NewString(c.attack().Range) }),
	attr("damage", func(c *AttackCallable) Value { return newIntValue(c.attack().Damage) }),
	attr("number", func(c *AttackCallable) Value { return newIntValue(c.attack().Number) }),
	attr("attack_weight", func(c *AttackCallable) Value { return NewFloat(c.attack().AttackWeight) }),
	attr("defense_weight", func(c *AttackCallable) Value { return NewFloat(c.attack().DefenseWeight) }),
	attr("accuracy", func(c *AttackCallable) Value { return newIntValue(c.attack().Accuracy) }),
	attr("parry", func(c *AttackCallable) Value { return newIntValue(c.attack().Parry) }),
	attr("movement_used", func(c *AttackCallable) Value { return newIntValue(c.attack().MovementUsed) }),
	attr("specials", func(c *AttackCallable) Value { return newStringList(c.attack().Specials) }),
)

func (c *AttackCallable) attack() *Attack {
	if a := c.att.Value(); a != nil {
		return a
	}
	return &Attack{}
}

func (c *AttackCallable) Attack() Shared[*Attack] { return c.att }

// Release drops this callable's reference to the descriptor. Views and
// already released callables hold none.
func (c *AttackCallable) Release() bool {
	if !c.owned {
		return false
	}
	c.owned = false
	return c.att.Release()
}

func (c *AttackCallable) Type() CallableType { return TypeAttack }

func (c *AttackCallable) Get(key string) (Value, error) { return attackAttrs.get(c, key) }

func (c *AttackCallable) Set(key string, _ Value) error { return attackAttrs.set(key) }

func (c *AttackCallable) Inputs() []Input { return attackAttrs.list() }

// Duplicate of a view is another view; Retain the Attack handle to keep a
// listed attack beyond its owner.
func (c *AttackCallable) Duplicate() Callable {
	if !c.owned {
		return attackView(c.att)
	}
	return NewAttackCallable(c.att)
}

func (c *AttackCallable) CompareCallable(other Callable) Ordering {
	o, ok := other.(*AttackCallable)
	if !ok {
		return Incomparable
	}
	a, b := c.attack(), o.attack()
	if a == b {
		return Equal
	}
	return thenBy(
		func() Ordering { return orderStrings(a.Name, b.Name) },
		func() Ordering { return orderStrings(a.Type, b.Type) },
		func() Ordering { return orderStrings(a.Range, b.Range) },
		func() Ordering { return orderInts(int64(a.Damage), int64(b.Damage)) },
		func() Ordering { return orderInts(int64(a.Number), int64(b.Number)) },
	)
}

func attackList(attacks []Shared[*Attack]) Value {
	out := make([]Value, len(attacks))
	for i, h := range attacks {
		out[i] = NewCallable(attackView(h))
	}
	return NewArray(out)
}
