package widget

import (
	"strings"

	"github.com/spf13/cast"
)

// IsButton reports whether the widget is a trigger element.
func (w *Widget) IsButton() bool { return w.Is(TagButton) }

// IsOutput reports whether the widget is a text display element.
func (w *Widget) IsOutput() bool { return w.Is(TagOutput) }

// IsStub reports whether the widget is a placeholder.
func (w *Widget) IsStub() bool { return w.Is(TagStub) }

// IsCheckbox reports whether the widget is a toggle input.
func (w *Widget) IsCheckbox() bool { return w.Type() == InputCheckbox }

// IsBindable reports whether the widget holds a value a user can edit: text,
// choice and toggle inputs.
func (w *Widget) IsBindable() bool {
	switch w.Tag() {
	case TagInput, TagSelect, TagTextarea:
		return true
	default:
		return false
	}
}

// Value returns the widget's current value. Checkboxes report "true" or
// "false", selects report the value of the selected option (the first one
// when nothing is selected), textareas and outputs report their text.
func (w *Widget) Value() string {
	switch {
	case w.IsCheckbox():
		_, checked := w.Attr("checked")
		return cast.ToString(checked)
	case w.Is(TagInput):
		value, _ := w.Attr("value")
		return value
	case w.Is(TagSelect):
		options := w.Options()
		for _, option := range options {
			if _, selected := option.Attr("selected"); selected {
				return option.OptionValue()
			}
		}
		if len(options) > 0 {
			return options[0].OptionValue()
		}
		return ""
	case w.Is(TagTextarea), w.Is(TagOutput):
		return w.Text()
	default:
		return ""
	}
}

// SetValue writes value into the widget's display or value slot. Buttons,
// stubs and containers ignore it.
func (w *Widget) SetValue(value string) {
	switch {
	case w.IsCheckbox():
		if isChecked(value) {
			w.SetAttr("checked", "checked")
		} else {
			w.RemoveAttr("checked")
		}
	case w.Is(TagInput):
		w.SetAttr("value", value)
	case w.Is(TagSelect):
		for _, option := range w.Options() {
			if option.OptionValue() == value {
				option.SetAttr("selected", "selected")
			} else {
				option.RemoveAttr("selected")
			}
		}
	case w.Is(TagTextarea), w.Is(TagOutput):
		w.SetText(value)
	}
}

// OptionValue returns the value an option submits: its value attribute, or
// its text when the attribute is absent.
func (w *Widget) OptionValue() string {
	if value, ok := w.Attr("value"); ok {
		return value
	}
	return w.Text()
}

func isChecked(value string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "on" || trimmed == "checked" {
		return true
	}
	return cast.ToBool(trimmed)
}
