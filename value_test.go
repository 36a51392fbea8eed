package jsonlit

import (
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want Value
	}{
		{
			name: "null",
			doc:  "null",
			want: Null(),
		},
		{
			name: "scalar_string",
			doc:  ` "hi" `,
			want: String("hi"),
		},
		{
			name: "key_order_preserved",
			doc:  `{"b": 1, "a": 2, "c": 3}`,
			want: Mapping(
				Member{Key: "b", Value: Number("1")},
				Member{Key: "a", Value: Number("2")},
				Member{Key: "c", Value: Number("3")},
			),
		},
		{
			name: "number_lexemes_preserved",
			doc:  `[1.50, -0, 1e3, 12345678901234567890]`,
			want: Sequence(Number("1.50"), Number("-0"), Number("1e3"), Number("12345678901234567890")),
		},
		{
			name: "duplicate_keys_kept",
			doc:  `{"a": 1, "a": 2}`,
			want: Mapping(
				Member{Key: "a", Value: Number("1")},
				Member{Key: "a", Value: Number("2")},
			),
		},
		{
			name: "nested",
			doc:  `{"list": [true, false, null, {}], "s": "x\ny"}`,
			want: Mapping(
				Member{Key: "list", Value: Sequence(Bool(true), Bool(false), Null(), Mapping())},
				Member{Key: "s", Value: String("x\ny")},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("Decode(%q) mismatch, rendered: %s", tt.doc, renderJSON(got))
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	docs := []string{
		"",
		"   ",
		"{",
		"[1,]",
		`{"a" 1}`,
		`{"a": 1,}`,
		"nul",
		"{} {}",
		"[1] x",
		"'single'",
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			t.Parallel()

			if _, err := Decode(strings.NewReader(doc)); err == nil {
				t.Errorf("Decode(%q) expected error, got nil", doc)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "null", a: Null(), b: Null(), want: true},
		{name: "zero_is_null", a: Value{}, b: Null(), want: true},
		{name: "bool_differs", a: Bool(true), b: Bool(false), want: false},
		{name: "kind_differs", a: String("1"), b: Number("1"), want: false},
		{name: "number_lexeme_differs", a: Number("1.0"), b: Number("1"), want: false},
		{
			name: "sequence_length_differs",
			a:    Sequence(Null()),
			b:    Sequence(Null(), Null()),
			want: false,
		},
		{
			name: "mapping_order_matters",
			a:    Mapping(Member{Key: "a", Value: Null()}, Member{Key: "b", Value: Null()}),
			b:    Mapping(Member{Key: "b", Value: Null()}, Member{Key: "a", Value: Null()}),
			want: false,
		},
		{
			name: "deep_equal",
			a:    Mapping(Member{Key: "a", Value: Sequence(String("x"))}),
			b:    Mapping(Member{Key: "a", Value: Sequence(String("x"))}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	if got := Sequence().Kind().String(); got != "sequence" {
		t.Errorf("got %q, want %q", got, "sequence")
	}
	if got := Kind(42).String(); got != "kind(42)" {
		t.Errorf("got %q, want %q", got, "kind(42)")
	}
}
