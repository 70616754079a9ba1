package wfl

const (
	configAttributesKey  = "__attributes"
	configChildrenKey    = "__children"
	configAllChildrenKey = "__all_children"
)

// ConfigCallable borrows a config blob and exposes its attribute keys
// directly, plus three reserved keys describing the whole blob.
type ConfigCallable struct {
	cfg *Config
	ref borrow
}

func NewConfigCallable(cfg *Config) *ConfigCallable {
	return &ConfigCallable{cfg: cfg, ref: borrowOf(cfg)}
}

func (c *ConfigCallable) Config() *Config { return c.cfg }

func (c *ConfigCallable) Type() CallableType { return TypeConfig }

func (c *ConfigCallable) Get(key string) (Value, error) {
	if !c.has(key) {
		return NewNil(), notFound(TypeConfig, key)
	}
	if err := c.ref.check(TypeConfig); err != nil {
		return NewNil(), &AttributeError{Type: TypeConfig, Key: key, Err: err}
	}
	switch key {
	case configAttributesKey:
		attrs := make(map[string]Value, len(c.cfg.attrs))
		for k, v := range c.cfg.attrs {
			attrs[k] = configValue(v)
		}
		return NewHash(attrs), nil
	case configChildrenKey:
		grouped := make(map[string]Value)
		for _, ch := range c.cfg.children {
			list := grouped[ch.Name].Array()
			grouped[ch.Name] = NewArray(append(list, NewCallable(NewConfigCallable(ch.Config))))
		}
		return NewHash(grouped), nil
	case configAllChildrenKey:
		out := make([]Value, len(c.cfg.children))
		for i, ch := range c.cfg.children {
			out[i] = NewHash(map[string]Value{
				"child": NewString(ch.Name),
				"value": NewCallable(NewConfigCallable(ch.Config)),
			})
		}
		return NewArray(out), nil
	}
	return configValue(c.cfg.attrs[key]), nil
}

func (c *ConfigCallable) Set(key string, _ Value) error {
	if !c.has(key) {
		return notFound(TypeConfig, key)
	}
	return notSupported(TypeConfig, key)
}

func (c *ConfigCallable) has(key string) bool {
	switch key {
	case configAttributesKey, configChildrenKey, configAllChildrenKey:
		return true
	}
	_, ok := c.cfg.attrs[key]
	return ok
}

func (c *ConfigCallable) Inputs() []Input {
	inputs := make([]Input, 0, len(c.cfg.order)+3)
	for _, key := range c.cfg.order {
		switch key {
		case configAttributesKey, configChildrenKey, configAllChildrenKey:
			continue
		}
		inputs = append(inputs, Input{Name: key})
	}
	return append(inputs,
		Input{Name: configAttributesKey},
		Input{Name: configChildrenKey},
		Input{Name: configAllChildrenKey},
	)
}

func (c *ConfigCallable) Duplicate() Callable {
	dup := *c
	return &dup
}

// CompareCallable orders configs by their canonical text form.
func (c *ConfigCallable) CompareCallable(other Callable) Ordering {
	o, ok := other.(*ConfigCallable)
	if !ok {
		return Incomparable
	}
	if c.cfg == o.cfg {
		return Equal
	}
	return orderStrings(c.cfg.String(), o.cfg.String())
}
