package wfl

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Config is a structured key/value blob with ordered attributes and named
// child blocks. Mutations advance its generation.
type Config struct {
	attrs    map[string]any
	order    []string
	children []ConfigChild
	parent   *Config
	gen      uint64
}

type ConfigChild struct {
	Name   string
	Config *Config
}

func NewConfig() *Config {
	return &Config{attrs: make(map[string]any)}
}

func (c *Config) Generation() uint64 { return c.gen }

// SetAttr stores an attribute. Supported values are bool, ints, floats and
// strings; anything else is stored by its fmt representation.
func (c *Config) SetAttr(key string, val any) {
	if _, ok := c.attrs[key]; !ok {
		c.order = append(c.order, key)
	}
	c.attrs[key] = normalizeConfigValue(val)
	c.touch()
}

// touch advances the generation of c and every enclosing block.
func (c *Config) touch() {
	for p := c; p != nil; p = p.parent {
		p.gen++
	}
}

func (c *Config) Attr(key string) (any, bool) {
	v, ok := c.attrs[key]
	return v, ok
}

// Keys returns attribute keys in insertion order.
func (c *Config) Keys() []string {
	return append([]string(nil), c.order...)
}

func (c *Config) AddChild(name string) *Config {
	child := NewConfig()
	child.parent = c
	c.children = append(c.children, ConfigChild{Name: name, Config: child})
	c.touch()
	return child
}

func (c *Config) Children() []ConfigChild {
	return append([]ConfigChild(nil), c.children...)
}

func (c *Config) ChildrenNamed(name string) []*Config {
	var out []*Config
	for _, ch := range c.children {
		if ch.Name == name {
			out = append(out, ch.Config)
		}
	}
	return out
}

// String renders the canonical WML-like text form: attributes sorted by key,
// then children in order.
func (c *Config) String() string {
	var b strings.Builder
	c.write(&b, 0)
	return b.String()
}

func (c *Config) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, key := range slices.Sorted(maps.Keys(c.attrs)) {
		fmt.Fprintf(b, "%s%s=%s\n", indent, key, formatConfigValue(c.attrs[key]))
	}
	for _, ch := range c.children {
		fmt.Fprintf(b, "%s[%s]\n", indent, ch.Name)
		ch.Config.write(b, depth+1)
		fmt.Fprintf(b, "%s[/%s]\n", indent, ch.Name)
	}
}

func normalizeConfigValue(val any) any {
	switch v := val.(type) {
	case bool, string, float64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint32:
		return int64(v)
	case uint:
		return normalizeConfigValue(uint64(v))
	case uint64:
		if v > math.MaxInt64 {
			return strconv.FormatUint(v, 10)
		}
		return int64(v)
	case float32:
		return float64(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		if strings.ContainsAny(v, "\n\"=") || strings.TrimSpace(v) != v {
			return strconv.Quote(v)
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

func configValue(val any) Value {
	switch v := val.(type) {
	case bool:
		return NewBool(v)
	case int64:
		return NewInt(v)
	case float64:
		return NewFloat(v)
	case string:
		return NewString(v)
	default:
		return NewString(fmt.Sprint(v))
	}
}
