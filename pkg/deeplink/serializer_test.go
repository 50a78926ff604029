package deeplink

import (
	"errors"
	"reflect"
	"testing"
)

type typedRoute struct {
	Base
	Name    string  `route:"name"`
	Count   int     `route:"count"`
	Small   int8    `route:"small,optional"`
	Size    uint32  `route:"size,optional"`
	Ratio   float64 `route:"ratio,optional"`
	Enabled bool    `route:"enabled,optional"`
	Verbose *bool   `route:"verbose"`
	Limit   *int    `route:"limit"`
	Ignored string
	Skipped string `route:"-"`
	Default string `route:",optional"`
}

func TestStructSerializerRoundTrip(t *testing.T) {
	s, err := NewStructSerializer[typedRoute]()
	if err != nil {
		t.Fatalf("NewStructSerializer() error = %v", err)
	}

	wantNames := []string{"name", "count", "small", "size", "ratio", "enabled", "verbose", "limit", "Default"}
	if got := s.FieldNames(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("FieldNames() = %v, want %v", got, wantNames)
	}

	verbose := true
	in := typedRoute{Name: "a b", Count: -3, Small: 7, Size: 9, Ratio: 0.5, Enabled: true, Verbose: &verbose, Ignored: "x", Skipped: "y"}
	fields, err := s.Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	wantFields := map[string]string{
		"name": "a b", "count": "-3", "small": "7", "size": "9",
		"ratio": "0.5", "enabled": "true", "verbose": "true", "Default": "",
	}
	if !reflect.DeepEqual(fields, wantFields) {
		t.Errorf("Encode() = %v, want %v", fields, wantFields)
	}

	out, err := s.Decode(fields)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got := out.(typedRoute)
	in.Ignored, in.Skipped = "", ""
	if got.Verbose == nil || *got.Verbose != true || got.Limit != nil {
		t.Errorf("Decode() pointers = %v, %v", got.Verbose, got.Limit)
	}
	got.Verbose, in.Verbose = nil, nil
	if got != in {
		t.Errorf("Decode() = %+v, want %+v", got, in)
	}
}

func TestStructSerializerDecodeErrors(t *testing.T) {
	s, err := NewStructSerializer[typedRoute]()
	if err != nil {
		t.Fatalf("NewStructSerializer() error = %v", err)
	}

	tests := []struct {
		name   string
		fields map[string]string
		want   error
	}{
		{"missing required", map[string]string{"name": "a"}, ErrMissingField},
		{"bad int", map[string]string{"name": "a", "count": "x"}, ErrInvalidField},
		{"int overflow", map[string]string{"name": "a", "count": "1", "small": "300"}, ErrInvalidField},
		{"negative uint", map[string]string{"name": "a", "count": "1", "size": "-1"}, ErrInvalidField},
		{"bad bool", map[string]string{"name": "a", "count": "1", "enabled": "maybe"}, ErrInvalidField},
		{"bad float", map[string]string{"name": "a", "count": "1", "ratio": "half"}, ErrInvalidField},
		{"bad pointer", map[string]string{"name": "a", "count": "1", "limit": "many"}, ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Decode(tt.fields); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStructSerializerWrongRoute(t *testing.T) {
	s, _ := NewStructSerializer[userRoute]()
	if _, err := s.Encode(homeRoute{}); !errors.Is(err, ErrRouteType) {
		t.Errorf("Encode(homeRoute) error = %v, want ErrRouteType", err)
	}
}

type duplicateTagRoute struct {
	Base
	A string `route:"id"`
	B string `route:"id"`
}

func TestNewStructSerializerErrors(t *testing.T) {
	if _, err := NewStructSerializer[duplicateTagRoute](); err == nil {
		t.Error("duplicate field name accepted")
	}
	if _, err := NewStructSerializer[badTagRoute](); err == nil {
		t.Error("slice field accepted")
	}
	if _, err := NewStructSerializer[*userRoute](); err == nil {
		t.Error("pointer route type accepted")
	}
}

func TestCodec(t *testing.T) {
	c := Codec[userRoute]{
		EncodeFunc: func(r userRoute) map[string]string {
			return map[string]string{"userId": r.UserID}
		},
		DecodeFunc: func(f map[string]string) (userRoute, error) {
			id, err := Required(f, "userId")
			return userRoute{UserID: id}, err
		},
	}

	if got := c.RouteID(); got != "userRoute" {
		t.Errorf("RouteID() = %q, want userRoute", got)
	}
	if got := c.RouteType(); got != reflect.TypeOf(userRoute{}) {
		t.Errorf("RouteType() = %v", got)
	}

	fields, err := c.Encode(userRoute{UserID: "7"})
	if err != nil || fields["userId"] != "7" {
		t.Errorf("Encode() = %v, %v", fields, err)
	}
	if _, err := c.Encode(homeRoute{}); !errors.Is(err, ErrRouteType) {
		t.Errorf("Encode(homeRoute) error = %v", err)
	}
	if _, err := c.Decode(map[string]string{}); !errors.Is(err, ErrMissingField) {
		t.Errorf("Decode({}) error = %v, want ErrMissingField", err)
	}
}

func TestCodecDefaults(t *testing.T) {
	c := Codec[postDetailsRoute]{}

	if got := c.RouteID(); got != "PostDetails" {
		t.Errorf("RouteID() = %q, want PostDetails", got)
	}
	fields, err := c.Encode(postDetailsRoute{PostID: "1"})
	if err != nil || fields == nil || len(fields) != 0 {
		t.Errorf("Encode() = %v, %v, want empty map", fields, err)
	}
	r, err := c.Decode(nil)
	if err != nil || r != (postDetailsRoute{}) {
		t.Errorf("Decode(nil) = %#v, %v", r, err)
	}
}

func TestIsUnknown(t *testing.T) {
	if !IsUnknown(Unknown) || !IsUnknown(nil) {
		t.Error("Unknown and nil must be unknown")
	}
	if IsUnknown(homeRoute{}) {
		t.Error("homeRoute reported unknown")
	}
}
