package w3cdid

import "github.com/pkg/errors"

const (
	DefaultContext = "https://www.w3.org/ns/did/v1"
)

// Context is an ordered set of unique context URIs
type Context struct {
	items []string
}

func NewContext(items ...string) *Context {
	c := &Context{}
	for _, i := range items {
		c.Add(i)
	}
	return c
}

// Add appends uri unless it is already present
func (c *Context) Add(uri string) {
	if uri == "" || c.Has(uri) {
		return
	}

	c.items = append(c.items, uri)
}

func (c *Context) Has(uri string) bool {
	for _, i := range c.items {
		if i == uri {
			return true
		}
	}

	return false
}

func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

func (c *Context) Items() []string {
	if c == nil {
		return nil
	}

	l := make([]string, len(c.items))
	copy(l, c.items)
	return l
}

// Value is nil when empty, a bare string for a single entry and a list
// otherwise
func (c *Context) Value() interface{} {
	switch c.Len() {
	case 0:
		return nil
	case 1:
		return c.items[0]
	default:
		return c.Items()
	}
}

func parseContext(raw interface{}) (*Context, error) {
	c := NewContext()

	switch t := raw.(type) {
	case nil:
	case string:
		c.Add(t)
	case []string:
		for _, s := range t {
			c.Add(s)
		}
	case []interface{}:
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidDocumentFormat, "@context entry of type %T", e)
			}
			c.Add(s)
		}
	default:
		return nil, errors.Wrapf(ErrInvalidDocumentFormat, "@context of type %T", raw)
	}

	return c, nil
}
