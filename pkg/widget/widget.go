// Package widget wraps golang.org/x/net/html element nodes so builders can
// construct form controls and processors can mutate them in place. A Widget
// is the unit handed between the widget builder, the widget processors and
// the binding layer; rendering is plain html.Render.
package widget

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-widgetgen/pkg/model"
)

// Element tags produced by the built-in builders.
const (
	TagStub      = "stub"
	TagOutput    = "output"
	TagSelect    = "select"
	TagOption    = "option"
	TagButton    = "button"
	TagInput     = "input"
	TagTextarea  = "textarea"
	TagContainer = "div"
)

// Input types produced by the built-in builders.
const (
	InputText     = "text"
	InputPassword = "password"
	InputNumber   = "number"
	InputRange    = "range"
	InputCheckbox = "checkbox"
	InputDate     = "date"
)

// Widget is a handle on a single element node.
type Widget struct {
	node   *nethtml.Node
	nested *model.Context
}

// New creates a detached element with the given tag.
func New(tag string) *Widget {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &Widget{node: &nethtml.Node{
		Type:     nethtml.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

// Wrap returns a Widget for an existing element node. It returns nil for
// nil or non-element nodes.
func Wrap(node *nethtml.Node) *Widget {
	if node == nil || node.Type != nethtml.ElementNode {
		return nil
	}
	return &Widget{node: node}
}

// Stub returns a non-interactive placeholder.
func Stub() *Widget { return New(TagStub) }

// Output returns a text display element.
func Output() *Widget { return New(TagOutput) }

// Select returns an empty choice element.
func Select() *Widget { return New(TagSelect) }

// Textarea returns a multi-line text input.
func Textarea() *Widget { return New(TagTextarea) }

// Container returns an element used to hold the widgets of a nested pass.
func Container() *Widget { return New(TagContainer) }

// Input returns an input element of the given type.
func Input(inputType string) *Widget {
	w := New(TagInput)
	w.SetAttr("type", inputType)
	return w
}

// Button returns a trigger element with a text label.
func Button(label string) *Widget {
	w := New(TagButton)
	w.SetText(label)
	return w
}

// Option returns a choice entry. An empty value leaves the value attribute
// unset so the label doubles as the submitted value.
func Option(value, label string) *Widget {
	w := New(TagOption)
	if value != "" {
		w.SetAttr("value", value)
	}
	if label != "" {
		w.SetText(label)
	}
	return w
}

// Node exposes the underlying element.
func (w *Widget) Node() *nethtml.Node {
	if w == nil {
		return nil
	}
	return w.node
}

// Tag returns the lower-case element name.
func (w *Widget) Tag() string {
	if w == nil || w.node == nil {
		return ""
	}
	return w.node.Data
}

// Is reports whether the element carries the given tag.
func (w *Widget) Is(tag string) bool {
	return w.Tag() == tag
}

// Attr returns the value of an attribute and whether it is present.
func (w *Widget) Attr(key string) (string, bool) {
	if w == nil || w.node == nil {
		return "", false
	}
	for _, attr := range w.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute, preserving insertion order.
func (w *Widget) SetAttr(key, value string) {
	if w == nil || w.node == nil {
		return
	}
	for idx, attr := range w.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			w.node.Attr[idx].Val = value
			return
		}
	}
	w.node.Attr = append(w.node.Attr, nethtml.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes an attribute when present.
func (w *Widget) RemoveAttr(key string) {
	if w == nil || w.node == nil {
		return
	}
	kept := w.node.Attr[:0]
	for _, attr := range w.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		kept = append(kept, attr)
	}
	w.node.Attr = kept
}

// ID returns the id attribute.
func (w *Widget) ID() string {
	id, _ := w.Attr("id")
	return id
}

// Type returns the type attribute of an input element.
func (w *Widget) Type() string {
	if !w.Is(TagInput) {
		return ""
	}
	value, _ := w.Attr("type")
	return value
}

// Text returns the concatenated text content of the element.
func (w *Widget) Text() string {
	if w == nil || w.node == nil {
		return ""
	}
	var out strings.Builder
	collectText(w.node, &out)
	return out.String()
}

// SetText replaces all children with a single text node.
func (w *Widget) SetText(text string) {
	if w == nil || w.node == nil {
		return
	}
	w.clearChildren()
	if text == "" {
		return
	}
	w.node.AppendChild(&nethtml.Node{Type: nethtml.TextNode, Data: text})
}

// Append adds child as the last child element.
func (w *Widget) Append(child *Widget) {
	if w == nil || w.node == nil || child == nil || child.node == nil {
		return
	}
	if parent := child.node.Parent; parent != nil {
		parent.RemoveChild(child.node)
	}
	w.node.AppendChild(child.node)
}

// Children returns the direct element children.
func (w *Widget) Children() []*Widget {
	if w == nil || w.node == nil {
		return nil
	}
	var out []*Widget
	for child := w.node.FirstChild; child != nil; child = child.NextSibling {
		if wrapped := Wrap(child); wrapped != nil {
			out = append(out, wrapped)
		}
	}
	return out
}

// Options returns the option children of a select element.
func (w *Widget) Options() []*Widget {
	var out []*Widget
	for _, child := range w.Children() {
		if child.Is(TagOption) {
			out = append(out, child)
		}
	}
	return out
}

// SetNested attaches the context of the nested build pass whose widgets this
// container holds.
func (w *Widget) SetNested(ctx *model.Context) {
	if w == nil {
		return
	}
	w.nested = ctx
}

// Nested returns the nested pass context, or nil for ordinary widgets.
func (w *Widget) Nested() *model.Context {
	if w == nil {
		return nil
	}
	return w.nested
}

// HTML renders the element and its subtree.
func (w *Widget) HTML() (string, error) {
	if w == nil || w.node == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := nethtml.Render(&buf, w.node); err != nil {
		return "", fmt.Errorf("widget: render %s: %w", w.Tag(), err)
	}
	return buf.String(), nil
}

// Describe returns the tag followed by its attributes in insertion order,
// e.g. `input type="range" min="2" max="4"`. It is meant for logs and tests.
func (w *Widget) Describe() string {
	if w == nil || w.node == nil {
		return ""
	}
	var out strings.Builder
	out.WriteString(w.node.Data)
	for _, attr := range w.node.Attr {
		out.WriteByte(' ')
		out.WriteString(attr.Key)
		out.WriteString(`="`)
		out.WriteString(html.EscapeString(attr.Val))
		out.WriteByte('"')
	}
	return out.String()
}

// String implements fmt.Stringer using Describe.
func (w *Widget) String() string {
	return w.Describe()
}

func (w *Widget) clearChildren() {
	for child := w.node.FirstChild; child != nil; {
		next := child.NextSibling
		w.node.RemoveChild(child)
		child = next
	}
}

func collectText(node *nethtml.Node, out *strings.Builder) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case nethtml.TextNode:
			out.WriteString(child.Data)
		case nethtml.ElementNode:
			collectText(child, out)
		}
	}
}
