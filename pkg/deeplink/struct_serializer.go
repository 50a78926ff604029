package deeplink

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// StructSerializer derives a Serializer from `route` struct tags.
//
//	type UserProfile struct {
//	    deeplink.Base
//	    Principal string `route:"userPrincipalId"`
//	    Username  string `route:"username,optional"`
//	    Verified  *bool  `route:"verified"`
//	}
//
// Tagged fields must be strings, integers, floats, bools or pointers to them.
// A field is required unless its tag carries ",optional" or it is a pointer.
// Untagged fields, fields tagged "-" and unknown map keys are ignored. Nil
// pointers are not encoded.
type StructSerializer[T Route] struct {
	id     string
	fields []structField
}

// structField describes one tagged field.
type structField struct {
	index    int
	name     string
	optional bool
	pointer  bool
	kind     reflect.Kind
}

// NewStructSerializer inspects T's tags. It fails when T is not a struct or
// a tagged field has an unsupported type.
func NewStructSerializer[T Route]() (*StructSerializer[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("route type %v must be a struct, got %s", t, t.Kind())
	}

	s := &StructSerializer[T]{id: routeNameOf(t)}
	seen := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("route")
		if tag == "" || tag == "-" || !field.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		if seen[name] {
			return nil, fmt.Errorf("route type %v: field name %q declared twice", t, name)
		}
		seen[name] = true

		sf := structField{
			index:    i,
			name:     name,
			optional: opts == "optional",
		}
		ft := field.Type
		if ft.Kind() == reflect.Pointer {
			sf.pointer = true
			sf.optional = true
			ft = ft.Elem()
		}
		if !supportedKind(ft.Kind()) {
			return nil, fmt.Errorf("route type %v: field %s has unsupported type %v", t, field.Name, field.Type)
		}
		sf.kind = ft.Kind()
		s.fields = append(s.fields, sf)
	}
	return s, nil
}

// RouteID implements Serializer.
func (s *StructSerializer[T]) RouteID() string {
	return s.id
}

// RouteType implements Serializer.
func (s *StructSerializer[T]) RouteType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// FieldNames returns the encoded field names in declaration order.
func (s *StructSerializer[T]) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Encode implements Serializer.
func (s *StructSerializer[T]) Encode(r Route) (map[string]string, error) {
	route, ok := r.(T)
	if !ok {
		return nil, fmt.Errorf("%w: got %T, want %v", ErrRouteType, r, s.RouteType())
	}

	v := reflect.ValueOf(route)
	out := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		fv := v.Field(f.index)
		if f.pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		out[f.name] = formatValue(fv)
	}
	return out, nil
}

// Decode implements Serializer.
func (s *StructSerializer[T]) Decode(fields map[string]string) (Route, error) {
	var route T
	v := reflect.ValueOf(&route).Elem()

	for _, f := range s.fields {
		raw, ok := fields[f.name]
		if !ok {
			if !f.optional {
				return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
			}
			continue
		}

		fv := v.Field(f.index)
		if f.pointer {
			ptr := reflect.New(fv.Type().Elem())
			fv.Set(ptr)
			fv = ptr.Elem()
		}
		if err := setField(fv, raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidField, f.name, err)
		}
	}
	return route, nil
}

// supportedKind reports whether a field kind can be encoded.
func supportedKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// formatValue renders a field value as a string.
func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits())
	default:
		return fmt.Sprint(v.Interface())
	}
}

// setField sets a field value from a string.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float: %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %q", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}

	return nil
}
