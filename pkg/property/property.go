package property

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"github.com/goliatone/go-widgetgen/pkg/model"
)

// DateLayout is the wire format shared by date inputs and time.Time values.
const DateLayout = "2006-01-02"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Get returns the named property of target. The root name (or an empty name)
// returns target itself.
func Get(target any, name string) (any, error) {
	if name == "" || name == model.RootName {
		return target, nil
	}

	value, ok := indirect(reflect.ValueOf(target))
	if !ok {
		return nil, notFound(name)
	}

	switch value.Kind() {
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return nil, unsupported(target)
		}
		entry := value.MapIndex(reflect.ValueOf(name).Convert(value.Type().Key()))
		if !entry.IsValid() {
			return nil, notFound(name)
		}
		return entry.Interface(), nil
	case reflect.Struct:
		field, ok := lookupField(value.Type(), name)
		if !ok {
			return nil, notFound(name)
		}
		fieldValue, err := value.FieldByIndexErr(field.Index)
		if err != nil {
			return nil, notFound(name)
		}
		return fieldValue.Interface(), nil
	default:
		return nil, unsupported(target)
	}
}

// Ref behaves like Get but returns struct-valued fields of an addressable
// struct as pointers, so writes made through the result reach target. A nil
// struct pointer field is allocated first, and a map missing name (or holding
// nil under it) is seeded with an empty value of its element type, so nested
// passes always have somewhere to save into.
func Ref(target any, name string) (any, error) {
	if name == "" || name == model.RootName {
		return target, nil
	}
	value, ok := indirect(reflect.ValueOf(target))
	if !ok {
		return Get(target, name)
	}

	switch value.Kind() {
	case reflect.Map:
		return refMapEntry(target, value, name)
	case reflect.Struct:
		if !value.CanAddr() {
			return Get(target, name)
		}
	default:
		return Get(target, name)
	}

	field, found := lookupField(value.Type(), name)
	if !found {
		return nil, notFound(name)
	}
	fieldValue, err := value.FieldByIndexErr(field.Index)
	if err != nil {
		return nil, notFound(name)
	}
	if fieldValue.Kind() == reflect.Pointer && fieldValue.IsNil() &&
		fieldValue.Type().Elem().Kind() == reflect.Struct && fieldValue.CanSet() {
		fieldValue.Set(reflect.New(fieldValue.Type().Elem()))
	}
	if fieldValue.Kind() == reflect.Struct && fieldValue.CanAddr() {
		return fieldValue.Addr().Interface(), nil
	}
	return fieldValue.Interface(), nil
}

func refMapEntry(target any, value reflect.Value, name string) (any, error) {
	mapType := value.Type()
	if mapType.Key().Kind() != reflect.String || value.IsNil() {
		return Get(target, name)
	}
	key := reflect.ValueOf(name).Convert(mapType.Key())
	entry := value.MapIndex(key)
	if entry.IsValid() && !isNil(entry) {
		return entry.Interface(), nil
	}

	seed, ok := seedFor(mapType.Elem())
	if !ok {
		return Get(target, name)
	}
	value.SetMapIndex(key, seed)
	return seed.Interface(), nil
}

func isNil(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Interface, reflect.Map, reflect.Pointer:
		return value.IsNil()
	}
	return false
}

// seedFor returns an empty value able to hold nested properties, stored as
// elemType.
func seedFor(elemType reflect.Type) (reflect.Value, bool) {
	switch {
	case elemType.Kind() == reflect.Interface:
		seed := reflect.ValueOf(map[string]any{})
		if !seed.Type().AssignableTo(elemType) {
			return reflect.Value{}, false
		}
		return seed, true
	case elemType.Kind() == reflect.Map && elemType.Key().Kind() == reflect.String:
		return reflect.MakeMap(elemType), true
	case elemType.Kind() == reflect.Pointer && elemType.Elem().Kind() == reflect.Struct:
		return reflect.New(elemType.Elem()), true
	}
	return reflect.Value{}, false
}

// Set decodes raw into the named property of target. Struct targets must be
// passed by pointer; maps are written in place.
func Set(target any, name, raw string) error {
	if name == "" || name == model.RootName {
		return unsupported(target)
	}

	root := reflect.ValueOf(target)
	value, ok := indirect(root)
	if !ok {
		return unsupported(target)
	}

	switch value.Kind() {
	case reflect.Map:
		mapType := value.Type()
		if mapType.Key().Kind() != reflect.String {
			return unsupported(target)
		}
		if value.IsNil() {
			return unsupported(target)
		}
		decoded, err := decode(name, raw, mapType.Elem())
		if err != nil {
			return err
		}
		value.SetMapIndex(reflect.ValueOf(name).Convert(mapType.Key()), decoded)
		return nil
	case reflect.Struct:
		if !value.CanAddr() {
			return unsupported(target)
		}
		field, ok := lookupField(value.Type(), name)
		if !ok {
			return notFound(name)
		}
		fieldValue, err := value.FieldByIndexErr(field.Index)
		if err != nil || !fieldValue.CanSet() {
			return notFound(name)
		}
		decoded, err := decode(name, raw, fieldValue.Type())
		if err != nil {
			return err
		}
		fieldValue.Set(decoded)
		return nil
	default:
		return unsupported(target)
	}
}

// Invoke calls the method matching name (first rune upper-cased) on target.
// Map targets may hold func() or func() error values under name. A non-nil
// error result is returned to the caller.
func Invoke(target any, name string) error {
	if target == nil || name == "" {
		return invokeFailed(name, ErrNotFound)
	}

	fn := reflect.ValueOf(target).MethodByName(exportedName(name))
	if !fn.IsValid() {
		if value, ok := indirect(reflect.ValueOf(target)); ok && value.Kind() == reflect.Map && value.Type().Key().Kind() == reflect.String {
			fn = value.MapIndex(reflect.ValueOf(name).Convert(value.Type().Key()))
			if fn.IsValid() && fn.Kind() == reflect.Interface {
				fn = fn.Elem()
			}
		}
	}
	if !fn.IsValid() {
		return invokeFailed(name, ErrNotFound)
	}
	if fn.Kind() != reflect.Func || fn.IsNil() || fn.Type().NumIn() != 0 {
		return invokeFailed(name, ErrNotCallable)
	}

	results := fn.Call(nil)
	if len(results) == 0 {
		return nil
	}
	last := results[len(results)-1]
	if !last.Type().Implements(errorType) {
		return nil
	}
	if (last.Kind() == reflect.Interface || last.Kind() == reflect.Pointer) && last.IsNil() {
		return nil
	}
	return invokeFailed(name, last.Interface().(error))
}

// String formats a property value for display inside a widget. Dates use
// DateLayout and nil values render as the empty string.
func String(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	}
	out, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return out
}

func decode(name, raw string, target reflect.Type) (reflect.Value, error) {
	out := reflect.New(target)
	if target.Kind() == reflect.Interface {
		if !reflect.TypeOf(raw).AssignableTo(target) {
			return reflect.Value{}, decodeFailed(name, fmt.Errorf("string is not assignable to %s", target))
		}
		out.Elem().Set(reflect.ValueOf(raw))
		return out.Elem(), nil
	}
	if raw == "" && target.Kind() != reflect.String {
		return out.Elem(), nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out.Interface(),
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(DateLayout),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return reflect.Value{}, decodeFailed(name, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return reflect.Value{}, decodeFailed(name, err)
	}
	return out.Elem(), nil
}

func indirect(value reflect.Value) (reflect.Value, bool) {
	for value.IsValid() && (value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface) {
		if value.IsNil() {
			return reflect.Value{}, false
		}
		value = value.Elem()
	}
	return value, value.IsValid()
}

func lookupField(structType reflect.Type, name string) (reflect.StructField, bool) {
	fields := reflect.VisibleFields(structType)

	for _, field := range fields {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		if tag := jsonName(field); tag != "" && tag == name {
			return field, true
		}
	}
	for _, field := range fields {
		if field.IsExported() && !field.Anonymous && field.Name == name {
			return field, true
		}
	}
	for _, field := range fields {
		if field.IsExported() && !field.Anonymous && strings.EqualFold(field.Name, name) {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

func exportedName(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(first)) + name[size:]
}
