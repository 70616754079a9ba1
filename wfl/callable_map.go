package wfl

// MapCallable borrows the board and answers map-wide queries.
type MapCallable struct {
	board Board
	ref   borrow
}

func NewMapCallable(board Board) *MapCallable {
	return &MapCallable{board: board, ref: borrowOf(board)}
}

var mapAttrs = newAttrTable(TypeMap,
	attr("w", func(c *MapCallable) Value { return newIntValue(c.board.Map().Width()) }),
	attr("h", func(c *MapCallable) Value { return newIntValue(c.board.Map().Height()) }),
	attr("border_size", func(c *MapCallable) Value { return newIntValue(c.board.Map().BorderSize()) }),
	attrErr("terrain", (*MapCallable).terrain),
	attr("villages", func(c *MapCallable) Value {
		villages := c.board.Map().Villages()
		out := make([]Value, len(villages))
		for i, loc := range villages {
			out[i] = locationValue(loc)
		}
		return NewArray(out)
	}),
)

func (c *MapCallable) Board() Board { return c.board }

func (c *MapCallable) Type() CallableType { return TypeMap }

func (c *MapCallable) Get(key string) (Value, error) { return mapAttrs.get(c, key, c.ref) }

func (c *MapCallable) Set(key string, _ Value) error { return mapAttrs.set(key) }

func (c *MapCallable) Inputs() []Input { return mapAttrs.list() }

func (c *MapCallable) Duplicate() Callable {
	dup := *c
	return &dup
}

// TerrainAt is the single-tile query backing the terrain attribute.
func (c *MapCallable) TerrainAt(loc Location) (*TerrainCallable, error) {
	if err := c.ref.check(TypeMap); err != nil {
		return nil, err
	}
	return NewTerrainCallable(c.board, loc)
}

func (c *MapCallable) terrain() (Value, error) {
	m := c.board.Map()
	w, h := m.Width(), m.Height()
	out := make([]Value, 0, w*h)
	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			t, err := NewTerrainCallable(c.board, Location{X: x, Y: y})
			if err != nil {
				return NewNil(), err
			}
			out = append(out, NewCallable(t))
		}
	}
	return NewArray(out), nil
}
