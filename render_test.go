package jsonlit

import (
	"errors"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	t.Parallel()

	nested := Sequence(
		Number("1"),
		Mapping(Member{Key: "k", Value: String("v")}),
	)

	tests := []struct {
		name    string
		value   Value
		dialect Dialect
		want    string
	}{
		{
			name:    "python_nested",
			value:   nested,
			dialect: DialectPython,
			want:    "[\n    1,\n    {\n        \"k\": \"v\"\n    }\n]",
		},
		{
			name:    "python_null",
			value:   Null(),
			dialect: DialectPython,
			want:    "None",
		},
		{
			name:    "python_true",
			value:   Bool(true),
			dialect: DialectPython,
			want:    "True",
		},
		{
			name:    "python_false",
			value:   Bool(false),
			dialect: DialectPython,
			want:    "False",
		},
		{
			name:    "python_string_uses_json_quoting",
			value:   String("it's \"quoted\""),
			dialect: DialectPython,
			want:    `"it's \"quoted\""`,
		},
		{
			name: "python_mapping_keys_quoted",
			value: Mapping(
				Member{Key: "enabled", Value: Bool(true)},
				Member{Key: "parent", Value: Null()},
			),
			dialect: DialectPython,
			want:    "{\n    \"enabled\": True,\n    \"parent\": None\n}",
		},
		{
			name:    "python_empty_sequence",
			value:   Sequence(),
			dialect: DialectPython,
			want:    "[\n    \n]",
		},
		{
			name:    "python_empty_mapping",
			value:   Mapping(),
			dialect: DialectPython,
			want:    "{\n    \n}",
		},
		{
			name:    "javascript_string_escaping",
			value:   String(`a\b'c`),
			dialect: DialectJavaScript,
			want:    `'a\\b\'c'`,
		},
		{
			name:    "javascript_newline_closes_quote",
			value:   String("x\ny"),
			dialect: DialectJavaScript,
			want:    `'x\n'y'`,
		},
		{
			// Literal carry-over: the quote is not reopened after \n.
			name:    "javascript_multiline_with_quote",
			value:   String("it's\nok"),
			dialect: DialectJavaScript,
			want:    `'it\'s\n'ok'`,
		},
		{
			name: "javascript_keys_unquoted",
			value: Mapping(
				Member{Key: "name", Value: String("x")},
				Member{Key: "tags", Value: Sequence(String("a"), Number("2"))},
			),
			dialect: DialectJavaScript,
			want:    "{\n    name: 'x',\n    tags: [\n        'a',\n        2\n    ]\n}",
		},
		{
			name:    "javascript_null_and_bool_are_json",
			value:   Sequence(Null(), Bool(true), Bool(false), Number("1.5")),
			dialect: DialectJavaScript,
			want:    "[\n    null,\n    true,\n    false,\n    1.5\n]",
		},
		{
			name: "json_nested",
			value: Mapping(
				Member{Key: "a", Value: Sequence(Number("1"), Mapping())},
				Member{Key: "b", Value: String("<&>")},
			),
			dialect: DialectJSON,
			want:    "{\n  \"a\": [\n    1,\n    {}\n  ],\n  \"b\": \"<&>\"\n}",
		},
		{
			name:    "json_empty_sequence",
			value:   Sequence(),
			dialect: DialectJSON,
			want:    "[]",
		},
		{
			name:    "json_string_escaping",
			value:   String("a\"b\\c\n"),
			dialect: DialectJSON,
			want:    `"a\"b\\c\n"`,
		},
		{
			name:    "json_number_lexeme_kept",
			value:   Number("1.50e+3"),
			dialect: DialectJSON,
			want:    "1.50e+3",
		},
		{
			name:    "alias_py",
			value:   Null(),
			dialect: "py",
			want:    "None",
		},
		{
			name:    "alias_structured",
			value:   Null(),
			dialect: "structured",
			want:    "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render(tt.value, tt.dialect, "")
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRender_IndentPrefix(t *testing.T) {
	t.Parallel()

	value := Mapping(
		Member{Key: "list", Value: Sequence(Number("1"), Sequence(Bool(true)))},
		Member{Key: "text", Value: String("line1\nline2")},
		Member{Key: "none", Value: Null()},
	)
	prefixes := []string{"", " ", "    ", "\t", "> ", "// "}

	for _, d := range Dialects() {
		for _, prefix := range prefixes {
			t.Run(string(d)+"/"+prefix, func(t *testing.T) {
				t.Parallel()

				plain, err := Render(value, d, "")
				if err != nil {
					t.Fatal(err)
				}
				got, err := Render(value, d, prefix)
				if err != nil {
					t.Fatal(err)
				}

				want := strings.ReplaceAll(plain, "\n", "\n"+prefix)
				if got != want {
					t.Errorf("prefixed output =\n%q\nwant:\n%q", got, want)
				}
				if prefix != "" && strings.HasPrefix(got, prefix) {
					t.Errorf("first line should not be prefixed: %q", got)
				}
			})
		}
	}
}

func TestRender_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	docs := []string{
		`null`,
		`"plain"`,
		`[]`,
		`{}`,
		`{"z": 1, "a": [true, false, null], "m": {"nested": "x\ny", "q": "\"'\\"}}`,
		`[1, -2.5, 3e10, 0.000, {"k": []}]`,
		`{"unicode": "héllo ☃", "html": "<a href=\"x\">&</a>"}`,
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			t.Parallel()

			orig, err := Decode(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("Decode(%q) error: %v", doc, err)
			}
			out, err := Render(orig, DialectJSON, "")
			if err != nil {
				t.Fatal(err)
			}
			again, err := Decode(strings.NewReader(out))
			if err != nil {
				t.Fatalf("re-decode of %q error: %v", out, err)
			}
			if !Equal(orig, again) {
				t.Errorf("round trip changed value:\n%s", out)
			}
		})
	}
}

func TestRender_UnknownDialect(t *testing.T) {
	t.Parallel()

	got, err := Render(Sequence(Number("1")), "xml", "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got != "" {
		t.Errorf("got partial output %q", got)
	}
	if !errors.Is(err, ErrUnknownDialect) {
		t.Errorf("errors.Is(err, ErrUnknownDialect) = false for %v", err)
	}
	var de *UnknownDialectError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not *UnknownDialectError", err)
	}
	if de.Dialect != "xml" {
		t.Errorf("Dialect = %q, want %q", de.Dialect, "xml")
	}
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{in: "json", want: DialectJSON},
		{in: "structured", want: DialectJSON},
		{in: "python", want: DialectPython},
		{in: "py", want: DialectPython},
		{in: "javascript", want: DialectJavaScript},
		{in: "js", want: DialectJavaScript},
		{in: "JSON", wantErr: true},
		{in: "", wantErr: true},
		{in: "ruby", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDialect(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDialect) {
					t.Errorf("ParseDialect(%q) error = %v, want ErrUnknownDialect", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDialect(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReindent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		s      string
		prefix string
		want   string
	}{
		{name: "no_newline", s: "abc", prefix: "  ", want: "abc"},
		{name: "each_newline", s: "a\nb\nc", prefix: "> ", want: "a\n> b\n> c"},
		{name: "trailing_newline", s: "a\n", prefix: "  ", want: "a\n  "},
		{name: "empty_prefix", s: "a\nb", prefix: "", want: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Reindent(tt.s, tt.prefix); got != tt.want {
				t.Errorf("Reindent(%q, %q) = %q, want %q", tt.s, tt.prefix, got, tt.want)
			}
		})
	}
}
