package wfl

// TeamCallable borrows a side. Teams compare by identity.
type TeamCallable struct {
	team Team
	ref  borrow
}

func NewTeamCallable(t Team) *TeamCallable {
	return &TeamCallable{team: t, ref: borrowOf(t)}
}

var teamAttrs = newAttrTable(TypeTeam,
	attr("side", func(c *TeamCallable) Value { return newIntValue(c.team.Side()) }),
	attr("id", func(c *TeamCallable) Value { return NewString(c.team.ID()) }),
	attr("save_id", func(c *TeamCallable) Value { return NewString(c.team.SaveID()) }),
	attr("name", func(c *TeamCallable) Value { return NewString(c.team.Name()) }),
	attr("team_name", func(c *TeamCallable) Value { return NewString(c.team.TeamName()) }),
	attr("gold", func(c *TeamCallable) Value { return newIntValue(c.team.Gold()) }),
	attr("start_gold", func(c *TeamCallable) Value { return newIntValue(c.team.StartGold()) }),
	attr("base_income", func(c *TeamCallable) Value { return newIntValue(c.team.BaseIncome()) }),
	attr("total_income", func(c *TeamCallable) Value { return newIntValue(c.team.TotalIncome()) }),
	attr("village_gold", func(c *TeamCallable) Value { return newIntValue(c.team.VillageGold()) }),
	attr("village_support", func(c *TeamCallable) Value { return newIntValue(c.team.VillageSupport()) }),
	attr("recall_cost", func(c *TeamCallable) Value { return newIntValue(c.team.RecallCost()) }),
	attr("is_human", func(c *TeamCallable) Value { return NewBool(c.team.Controller() == "human") }),
	attr("is_ai", func(c *TeamCallable) Value { return NewBool(c.team.Controller() == "ai") }),
	attr("is_network", func(c *TeamCallable) Value { return NewBool(c.team.Controller() == "network") }),
	attr("fog", func(c *TeamCallable) Value { return NewBool(c.team.Fog()) }),
	attr("shroud", func(c *TeamCallable) Value { return NewBool(c.team.Shroud()) }),
	attr("hidden", func(c *TeamCallable) Value { return NewBool(c.team.Hidden()) }),
	attr("flag", func(c *TeamCallable) Value { return NewString(c.team.Flag()) }),
	attr("color", func(c *TeamCallable) Value { return NewString(c.team.Color()) }),
	attr("recruit", func(c *TeamCallable) Value { return newStringList(c.team.Recruits()) }),
)

func (c *TeamCallable) Team() Team { return c.team }

func (c *TeamCallable) Type() CallableType { return TypeTeam }

func (c *TeamCallable) Get(key string) (Value, error) { return teamAttrs.get(c, key, c.ref) }

func (c *TeamCallable) Set(key string, _ Value) error { return teamAttrs.set(key) }

func (c *TeamCallable) Inputs() []Input { return teamAttrs.list() }

func (c *TeamCallable) Duplicate() Callable {
	dup := *c
	return &dup
}
