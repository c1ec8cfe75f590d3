package widget

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// SetInnerHTML replaces the element's children with markup. The markup is
// sanitized down to inline formatting before it is parsed, so labels sourced
// from metadata cannot inject scripts or event handlers.
func (w *Widget) SetInnerHTML(markup string) error {
	if w == nil || w.node == nil {
		return nil
	}
	w.clearChildren()

	cleaned := strings.TrimSpace(labelSanitizer().Sanitize(markup))
	if cleaned == "" {
		return nil
	}

	nodes, err := nethtml.ParseFragment(strings.NewReader(cleaned), w.node)
	if err != nil {
		return fmt.Errorf("widget: parse markup for %s: %w", w.Tag(), err)
	}
	for _, node := range nodes {
		w.node.AppendChild(node)
	}
	return nil
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "small", "sub", "sup", "mark", "code", "br", "span", "abbr")
		policy.AllowAttrs("class").OnElements("span")
		policy.AllowAttrs("title").OnElements("abbr")
		labelPolicy = policy
	})
	return labelPolicy
}
