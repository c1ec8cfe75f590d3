package inspection

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-widgetgen/pkg/model"
)

var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

var booleanKeys = []string{
	model.AttrRequired,
	model.AttrHidden,
	model.AttrReadOnly,
	model.AttrMasked,
	model.AttrLarge,
	model.AttrDontExpand,
}

var numericKeys = []string{
	model.AttrMinimumValue,
	model.AttrMaximumValue,
	model.AttrMaximumLength,
}

// Validate checks every attribute set: a name is required, flags are "true"
// or "false" and bounds are numeric. Errors are keyed by "path[index]".
func (d *Document) Validate() error {
	if d == nil {
		return nil
	}
	errs := validation.Errors{}
	for _, path := range d.Paths() {
		if path == "" {
			errs["paths"] = validation.NewError("inspection.path_required", "path keys must not be empty")
			continue
		}
		for index, attrs := range d.paths[path] {
			if err := ValidateAttributes(attrs); err != nil {
				errs[fmt.Sprintf("%s[%d]", path, index)] = err
			}
		}
	}
	return errs.Filter()
}

// ValidateAttributes validates a single attribute set.
func ValidateAttributes(attrs model.Attributes) error {
	rules := []*validation.KeyRules{
		validation.Key(model.AttrName, validation.Required, validation.By(notBlank)),
	}
	for _, key := range booleanKeys {
		rules = append(rules, validation.Key(key,
			validation.In("true", "false").Error("must be true or false"),
		).Optional())
	}
	for _, key := range numericKeys {
		rules = append(rules, validation.Key(key,
			validation.Match(numberPattern).Error("must be numeric"),
		).Optional())
	}
	return validation.Validate(map[string]string(attrs), validation.Map(rules...).AllowExtraKeys())
}

func notBlank(value any) error {
	text, _ := value.(string)
	if strings.TrimSpace(text) == "" {
		return validation.NewError("inspection.name_blank", "name must not be blank")
	}
	return nil
}
