// Package tui fills a built form from the terminal. It walks the form's
// bindings in build order, prompts for each bound widget according to its
// kind and writes the answers back into the widgets, ready for Form.Save.
package tui

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/goliatone/go-widgetgen/pkg/logging"
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/orchestrator"
	"github.com/goliatone/go-widgetgen/pkg/property"
	"github.com/goliatone/go-widgetgen/pkg/widget"
	"github.com/goliatone/go-widgetgen/pkg/widgetprocessor"
)

const emptyChoiceLabel = "(none)"

var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Filler prompts for the bound widgets of a form.
type Filler struct {
	driver  PromptDriver
	out     io.Writer
	labeler func(string) string
	theme   Theme
	logger  logging.Logger
}

// New constructs a Filler. Without WithPromptDriver it prompts through
// survey on the current terminal.
func New(options ...Option) *Filler {
	f := &Filler{
		labeler: model.Humanize,
		logger:  logging.NoOp(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(f.out)
	}
	return f
}

// Fill prompts for every binding of form, recursing into nested containers.
func (f *Filler) Fill(ctx context.Context, form *orchestrator.Form) error {
	if ctx == nil {
		return fmt.Errorf("tui: context is required")
	}
	binder := form.Binder()
	if binder == nil {
		return orchestrator.ErrNoBinder
	}
	return f.fill(ctx, binder, form.Context)
}

func (f *Filler) fill(ctx context.Context, binder widgetprocessor.Binder, pass *model.Context) error {
	for _, binding := range binder.Bindings(pass) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if nested := binding.Nested(); nested != nil {
			if err := f.driver.Info(ctx, f.theme.SectionPrefix+f.labeler(binding.Name)); err != nil {
				return err
			}
			if err := f.fill(ctx, binder, nested); err != nil {
				return err
			}
			continue
		}
		if err := f.prompt(ctx, binding); err != nil {
			return fmt.Errorf("tui: %s: %w", model.JoinPath(pass.Path, binding.Name), err)
		}
		f.logger.Debug("tui.field.filled", "path", pass.Path, "name", binding.Name)
	}
	return nil
}

func (f *Filler) prompt(ctx context.Context, binding widgetprocessor.Binding) error {
	w := binding.Widget
	message := f.theme.PromptPrefix + f.labeler(binding.Name)
	_, required := w.Attr("required")

	switch {
	case w.IsCheckbox():
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: w.Value() == "true"})
		if err != nil {
			return err
		}
		w.SetValue(strconv.FormatBool(answer))
	case w.Is(widget.TagSelect):
		return f.promptSelect(ctx, w, message)
	case w.Is(widget.TagTextarea):
		answer, err := f.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: w.Value(), Required: required})
		if err != nil {
			return err
		}
		w.SetValue(answer)
	case w.Type() == widget.InputPassword:
		answer, err := f.driver.Password(ctx, InputConfig{
			Message:   message,
			Default:   w.Value(),
			Required:  required,
			Validator: validatorFor(w),
		})
		if err != nil {
			return err
		}
		w.SetValue(answer)
	default:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   w.Value(),
			Help:      helpFor(w),
			Required:  required,
			Validator: validatorFor(w),
		})
		if err != nil {
			return err
		}
		w.SetValue(answer)
	}
	return nil
}

func (f *Filler) promptSelect(ctx context.Context, w *widget.Widget, message string) error {
	options := w.Options()
	labels := make([]string, len(options))
	current := w.Value()
	defaultIndex := 0
	for i, option := range options {
		label := option.Text()
		if label == "" {
			label = emptyChoiceLabel
		}
		labels[i] = label
		if option.OptionValue() == current {
			defaultIndex = i
		}
	}

	idx, err := f.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIndex})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("%w: %d", ErrInvalidChoice, idx)
	}
	w.SetValue(options[idx].OptionValue())
	return nil
}

func helpFor(w *widget.Widget) string {
	switch w.Type() {
	case widget.InputRange:
		minimum, _ := w.Attr("min")
		maximum, _ := w.Attr("max")
		return fmt.Sprintf("between %s and %s", minimum, maximum)
	case widget.InputDate:
		return "format " + property.DateLayout
	}
	return ""
}

// validatorFor derives an answer validator from the widget's attributes.
// Empty answers pass; required fields are enforced by the driver.
func validatorFor(w *widget.Widget) func(string) error {
	var rules []validation.Rule

	if raw, ok := w.Attr("maxlength"); ok {
		if limit, err := cast.ToIntE(raw); err == nil && limit > 0 {
			rules = append(rules, validation.RuneLength(0, limit))
		}
	}

	switch w.Type() {
	case widget.InputNumber:
		rules = append(rules, validation.Match(numberPattern).Error("must be a number"))
	case widget.InputRange:
		rules = append(rules, validation.Match(numberPattern).Error("must be a number"), bounds(w))
	case widget.InputDate:
		rules = append(rules, validation.Date(property.DateLayout).Error("must be a date in "+property.DateLayout+" format"))
	}

	if len(rules) == 0 {
		return nil
	}
	return func(answer string) error {
		return validation.Validate(answer, rules...)
	}
}

func bounds(w *widget.Widget) validation.Rule {
	rawMin, _ := w.Attr("min")
	rawMax, _ := w.Attr("max")
	return validation.By(func(value any) error {
		text, _ := value.(string)
		if text == "" {
			return nil
		}
		number, err := cast.ToFloat64E(text)
		if err != nil {
			return nil
		}
		if minimum, err := cast.ToFloat64E(rawMin); err == nil && number < minimum {
			return validation.NewError("tui.range_min", "must be at least "+rawMin)
		}
		if maximum, err := cast.ToFloat64E(rawMax); err == nil && number > maximum {
			return validation.NewError("tui.range_max", "must be at most "+rawMax)
		}
		return nil
	})
}
