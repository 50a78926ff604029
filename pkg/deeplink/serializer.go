package deeplink

import (
	"errors"
	"fmt"
	"reflect"
)

// RouteIDKey is the reserved parameter naming the target route in map input.
const RouteIDKey = "route_id"

// Serializer errors.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field value")
	ErrRouteType    = errors.New("route has wrong type for serializer")
)

// Serializer converts between one route type and its flat field map.
type Serializer interface {
	// RouteID is the stable name used for explicit lookups (the route_id
	// parameter of push payloads).
	RouteID() string

	// RouteType is the Go type of the routes this serializer handles.
	RouteType() reflect.Type

	// Encode returns the route's fields.
	Encode(r Route) (map[string]string, error)

	// Decode builds a route from fields. It fails when a required field is
	// missing or a value cannot be parsed.
	Decode(fields map[string]string) (Route, error)
}

// Codec is a Serializer made from hand-written functions.
//
//	deeplink.Codec[Wallet]{
//	    ID:         "wallet",
//	    EncodeFunc: func(Wallet) map[string]string { return nil },
//	    DecodeFunc: func(map[string]string) (Wallet, error) { return Wallet{}, nil },
//	}
type Codec[T Route] struct {
	// ID is the route id. Defaults to the type's RouteName() or Go type name.
	ID string

	// EncodeFunc returns the route's fields. Nil encodes no fields.
	EncodeFunc func(T) map[string]string

	// DecodeFunc builds the route from fields. Nil decodes the zero value.
	DecodeFunc func(map[string]string) (T, error)
}

// RouteID implements Serializer.
func (c Codec[T]) RouteID() string {
	if c.ID != "" {
		return c.ID
	}
	return routeNameOf(reflect.TypeOf((*T)(nil)).Elem())
}

// RouteType implements Serializer.
func (c Codec[T]) RouteType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Encode implements Serializer.
func (c Codec[T]) Encode(r Route) (map[string]string, error) {
	v, ok := r.(T)
	if !ok {
		return nil, fmt.Errorf("%w: got %T, want %v", ErrRouteType, r, c.RouteType())
	}
	if c.EncodeFunc == nil {
		return map[string]string{}, nil
	}
	fields := c.EncodeFunc(v)
	if fields == nil {
		fields = map[string]string{}
	}
	return fields, nil
}

// Decode implements Serializer.
func (c Codec[T]) Decode(fields map[string]string) (Route, error) {
	if c.DecodeFunc == nil {
		var zero T
		return zero, nil
	}
	v, err := c.DecodeFunc(fields)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Required returns fields[name] or ErrMissingField. It is meant for
// hand-written DecodeFunc implementations.
func Required(fields map[string]string, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return v, nil
}

// routeNameOf returns the route id declared by t's RouteName method, or the
// Go type name.
func routeNameOf(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if n, ok := zeroValue(t).(namer); ok {
		if name := n.RouteName(); name != "" {
			return name
		}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// isInternalType reports whether t embeds Internal.
func isInternalType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	_, ok := zeroValue(t).(internalMarker)
	return ok
}

// zeroValue returns a usable zero value of t. Pointer types get a pointer to
// a zero element so value-receiver methods can be called on it.
func zeroValue(t reflect.Type) any {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.Zero(t).Interface()
}
