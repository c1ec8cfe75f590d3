package widget

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	nethtml "golang.org/x/net/html"
)

// Find returns every element in the subtree rooted at w, w included, that
// matches the CSS selector.
func (w *Widget) Find(selector string) ([]*Widget, error) {
	if w == nil || w.node == nil {
		return nil, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("widget: compile selector %q: %w", selector, err)
	}
	matches := sel.MatchAll(w.node)
	out := make([]*Widget, 0, len(matches))
	for _, node := range matches {
		if wrapped := Wrap(node); wrapped != nil {
			out = append(out, wrapped)
		}
	}
	return out, nil
}

// FindByID returns the first element in the subtree with the given id. Ids
// are compared verbatim, so values that are awkward to express as CSS (such
// as "$root") still resolve.
func (w *Widget) FindByID(id string) *Widget {
	if w == nil || w.node == nil || id == "" {
		return nil
	}
	return Wrap(findByID(w.node, id))
}

func findByID(node *nethtml.Node, id string) *nethtml.Node {
	if node.Type == nethtml.ElementNode {
		for _, attr := range node.Attr {
			if attr.Namespace == "" && attr.Key == "id" && attr.Val == id {
				return node
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}
