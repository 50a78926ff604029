package routepattern

import (
	"reflect"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		pattern string
		want    []Token
	}{
		{"/", nil},
		{"", nil},
		{"//", nil},
		{"/product/{productId}", []Token{StaticToken("product"), ParamToken("productId")}},
		{"product/{productId}/", []Token{StaticToken("product"), ParamToken("productId")}},
		{"/post/details/{postId}", []Token{StaticToken("post"), StaticToken("details"), ParamToken("postId")}},
		{"/a//b", []Token{StaticToken("a"), StaticToken("b")}},
		{"/{}/x", []Token{StaticToken("{}"), StaticToken("x")}},
		{"/{a}/{b}", []Token{ParamToken("a"), ParamToken("b")}},
		{"/pre{a}", []Token{StaticToken("pre{a}")}},
	}

	for _, tt := range tests {
		got := Parse(tt.pattern).Tokens
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q).Tokens = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestParseQueryAbsent(t *testing.T) {
	for _, pattern := range []string{"/x/{id}", "/x/{id}?", "/x/{id}?   "} {
		if q := Parse(pattern).Query; q != nil {
			t.Errorf("Parse(%q).Query = %v, want nil", pattern, q.Keys())
		}
	}
}

func TestParseQueryTemplate(t *testing.T) {
	spec := Parse("/x/{id}? a={alpha} & b && c = { gamma } &")
	if spec.Query == nil {
		t.Fatal("expected query template")
	}

	wantKeys := []string{"a", "b", "c"}
	if got := spec.Query.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}

	fields := map[string]string{"a": "alpha", "b": "b", "c": "gamma"}
	for key, want := range fields {
		if got := spec.Query.Field(key); got != want {
			t.Errorf("Field(%q) = %q, want %q", key, got, want)
		}
	}

	if spec.Query.Has("d") {
		t.Error("Has(d) = true, want false")
	}
}

func TestParseQueryDuplicateLastMappingWins(t *testing.T) {
	spec := Parse("/x?a={first}&b&a={second}")

	if got, want := spec.Query.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := spec.Query.Field("a"); got != "second" {
		t.Errorf("Field(a) = %q, want %q", got, "second")
	}
}

func TestParseQueryOnlyBlankEntries(t *testing.T) {
	spec := Parse("/x?&&  &")
	if spec.Query == nil {
		t.Fatal("expected a present template for a non-empty query portion")
	}
	if spec.Query.Len() != 0 {
		t.Errorf("Len() = %d, want 0", spec.Query.Len())
	}
}

func TestSpecHelpers(t *testing.T) {
	spec := Parse("/profile/{userId}/posts/{postId}?tab")

	if got := spec.SegmentCount(); got != 4 {
		t.Errorf("SegmentCount() = %d, want 4", got)
	}
	if got, want := spec.ParamNames(), []string{"userId", "postId"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ParamNames() = %v, want %v", got, want)
	}
	if !spec.HasQuery() {
		t.Error("HasQuery() = false, want true")
	}
}

func TestSpecString(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"/", "/"},
		{"product/{productId}/", "/product/{productId}"},
		{"/x/{id}?a={alpha}&b", "/x/{id}?a={alpha}&b"},
		{"/x?b={b}", "/x?b"},
	}

	for _, tt := range tests {
		if got := Parse(tt.pattern).String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestBuildComponents(t *testing.T) {
	t.Run("template maps keys and ignores extra fields", func(t *testing.T) {
		spec := Parse("/x/{id}?a={alpha}&b")
		segments, query := spec.BuildComponents(map[string]string{
			"id":    "1",
			"alpha": "foo",
			"b":     "bar",
			"extra": "x",
		})

		if want := []string{"x", "1"}; !reflect.DeepEqual(segments, want) {
			t.Errorf("segments = %v, want %v", segments, want)
		}
		if want := map[string]string{"a": "foo", "b": "bar"}; !reflect.DeepEqual(query, want) {
			t.Errorf("query = %v, want %v", query, want)
		}
	})

	t.Run("absent mapped fields are omitted", func(t *testing.T) {
		spec := Parse("/x?a={alpha}&b")
		_, query := spec.BuildComponents(map[string]string{"b": ""})

		if want := map[string]string{"b": ""}; !reflect.DeepEqual(query, want) {
			t.Errorf("query = %v, want %v", query, want)
		}
	})

	t.Run("no template yields no query params", func(t *testing.T) {
		spec := Parse("/product/{productId}")
		segments, query := spec.BuildComponents(map[string]string{"productId": "123", "category": "books"})

		if want := []string{"product", "123"}; !reflect.DeepEqual(segments, want) {
			t.Errorf("segments = %v, want %v", segments, want)
		}
		if len(query) != 0 {
			t.Errorf("query = %v, want empty", query)
		}
	})

	t.Run("home pattern has no segments", func(t *testing.T) {
		segments, _ := Parse("/").BuildComponents(nil)
		if len(segments) != 0 {
			t.Errorf("segments = %v, want empty", segments)
		}
	})
}

func TestNewQueryTemplate(t *testing.T) {
	tmpl := NewQueryTemplate([2]string{"a", "alpha"}, [2]string{"b", ""}, [2]string{"", "skip"}, [2]string{"a", "again"})

	if got, want := tmpl.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := tmpl.Field("a"); got != "again" {
		t.Errorf("Field(a) = %q, want %q", got, "again")
	}
	if field, ok := tmpl.Lookup("b"); !ok || field != "b" {
		t.Errorf("Lookup(b) = %q, %v, want %q, true", field, ok, "b")
	}

	var nilTmpl *QueryTemplate
	if nilTmpl.Len() != 0 || nilTmpl.Has("a") || nilTmpl.Keys() != nil {
		t.Error("nil template should behave as empty")
	}
}
