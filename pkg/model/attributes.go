package model

import "strings"

// Attribute keys understood by the built-in widget builders and processors.
const (
	AttrName          = "name"
	AttrType          = "type"
	AttrRequired      = "required"
	AttrHidden        = "hidden"
	AttrReadOnly      = "readOnly"
	AttrLookup        = "lookup"
	AttrLookupLabels  = "lookupLabels"
	AttrMasked        = "masked"
	AttrLarge         = "large"
	AttrMinimumValue  = "minimumValue"
	AttrMaximumValue  = "maximumValue"
	AttrMaximumLength = "maximumLength"
	AttrDontExpand    = "dontExpand"
	AttrLabel         = "label"
)

// Field types recognised by the default builder.
const (
	TypeString   = "string"
	TypeNumber   = "number"
	TypeBoolean  = "boolean"
	TypeDate     = "date"
	TypeFunction = "function"
)

// RootName identifies the inspected object itself rather than one of its
// properties.
const RootName = "$root"

const trueValue = "true"

// Attributes maps metadata keys to string values for a single field.
type Attributes map[string]string

// Get returns the raw value stored for key.
func (a Attributes) Get(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// Has reports whether key is present with a non-empty value.
func (a Attributes) Has(key string) bool {
	return a.Get(key) != ""
}

// IsTrue reports whether key holds the literal "true".
func (a Attributes) IsTrue(key string) bool {
	return a.Get(key) == trueValue
}

// Name returns the field name.
func (a Attributes) Name() string {
	return a.Get(AttrName)
}

// Type returns the field type.
func (a Attributes) Type() string {
	return a.Get(AttrType)
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for key, value := range a {
		out[key] = value
	}
	return out
}

// SplitList splits a comma separated attribute value, trimming surrounding
// whitespace from each entry. An empty value yields nil.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for idx, part := range parts {
		parts[idx] = strings.TrimSpace(part)
	}
	return parts
}
