package model

import "strings"

// Context carries the state of a single build pass: the object under
// inspection, the property path it lives at, and pass-scoped values that
// stateful builders and processors reset at the start of each pass.
//
// A Context is not safe for concurrent use. Each pass owns its own.
type Context struct {
	// ToInspect is the object whose properties are being rendered.
	ToInspect any
	// Path is the dotted property path of ToInspect, e.g. "customer.address".
	Path string
	// ReadOnly marks every field of the pass as read-only.
	ReadOnly bool

	values map[any]any
}

// NewContext constructs a Context for the supplied object and path.
func NewContext(toInspect any, path string) *Context {
	return &Context{
		ToInspect: toInspect,
		Path:      strings.TrimSpace(path),
	}
}

// Child returns a context for the nested property name holding value. The
// read-only flag is inherited; pass-scoped values are not.
func (c *Context) Child(name string, value any) *Context {
	child := NewContext(value, JoinPath(c.path(), name))
	if c != nil {
		child.ReadOnly = c.ReadOnly
	}
	return child
}

// IsReadOnly reports whether the field described by attrs should render as
// read-only, either because it says so or because the whole pass is.
func (c *Context) IsReadOnly(attrs Attributes) bool {
	if attrs.IsTrue(AttrReadOnly) {
		return true
	}
	return c != nil && c.ReadOnly
}

// Segments splits Path on dots.
func (c *Context) Segments() []string {
	path := c.path()
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Store saves a pass-scoped value under key.
func (c *Context) Store(key, value any) {
	if c == nil {
		return
	}
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

// Load fetches a pass-scoped value.
func (c *Context) Load(key any) (any, bool) {
	if c == nil || c.values == nil {
		return nil, false
	}
	value, ok := c.values[key]
	return value, ok
}

// Delete removes a pass-scoped value.
func (c *Context) Delete(key any) {
	if c == nil || c.values == nil {
		return
	}
	delete(c.values, key)
}

func (c *Context) path() string {
	if c == nil {
		return ""
	}
	return c.Path
}

// JoinPath appends child to a dotted parent path.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
