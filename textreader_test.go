package toon

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	test := func(name, text string, expected Value) {
		t.Run(name, func(t *testing.T) {
			actual, err := Decode(text)
			require.NoError(t, err)
			if diff := cmp.Diff(expected, actual); diff != "" {
				t.Errorf("mismatch (-expected +actual):\n%s", diff)
			}
		})
	}

	test("scalar", "42", Int(42))
	test("string", "hello world", String("hello world"))
	test("quoted string", `"a:b"`, String("a:b"))
	test("null", "null", Null{})
	test("empty map", "{}", &Map{})
	test("empty list", "[]", List{})

	test("flat map", "name: Ada\nage: 36\nactive: true\nnothing: null", mapOf(
		"name", String("Ada"),
		"age", Int(36),
		"active", Bool(true),
		"nothing", Null{},
	))

	test("nested map", "user:\n  name: Alice\n  email: alice@example.com", mapOf(
		"user", mapOf("name", String("Alice"), "email", String("alice@example.com")),
	))

	test("tabular", "annotations[2]{id,label}\n  1,tiger\n  2,elephant", mapOf("annotations", List{
		mapOf("id", Int(1), "label", String("tiger")),
		mapOf("id", Int(2), "label", String("elephant")),
	}))

	test("list", "tags[3]:\n  - a\n  - 1\n  - true", mapOf(
		"tags", List{String("a"), Int(1), Bool(true)},
	))

	test("inline list", "tags[3]: a, b ,\"c,d\"", mapOf(
		"tags", List{String("a"), String("b"), String("c,d")},
	))

	test("nested items", "items[3]:\n  -\n    a: 1\n    b: 2\n  - [2]:\n    - x\n    - y\n  - {}", mapOf(
		"items", List{
			mapOf("a", Int(1), "b", Int(2)),
			List{String("x"), String("y")},
			&Map{},
		},
	))

	test("top-level list", "[2]:\n  - 1\n  - 2", List{Int(1), Int(2)})
	test("top-level table", "[2]{a,b}\n  1,2\n  3,4", List{
		mapOf("a", Int(1), "b", Int(2)),
		mapOf("a", Int(3), "b", Int(4)),
	})

	test("empty values", "a: {}\nb: []", mapOf("a", &Map{}, "b", List{}))
	test("key without children", "a:\nb: 1", mapOf("a", &Map{}, "b", Int(1)))

	test("quoted keys", "\"my key\": 1\n\"x:y\": 2\n\"\": 3", mapOf(
		"my key", Int(1),
		"x:y", Int(2),
		"", Int(3),
	))

	test("quoted header fields", "[1]{\"a,b\",c}\n  1,2", List{
		mapOf("a,b", Int(1), "c", Int(2)),
	})

	test("indent four", "a:\n    b:\n        c: 1", mapOf("a", mapOf("b", mapOf("c", Int(1)))))

	test("blank lines and trailing space", "\na: 1  \n\n  \nb: 2\n", mapOf("a", Int(1), "b", Int(2)))
	test("crlf", "a: 1\r\nb: 2\r\n", mapOf("a", Int(1), "b", Int(2)))

	test("dedent several levels", "a:\n  b:\n    c: 1\nd: 2", mapOf(
		"a", mapOf("b", mapOf("c", Int(1))),
		"d", Int(2),
	))

	test("number literals", "[3]:\n  - 3.0\n  - -1e10\n  - 007", List{
		MustNumber("3.0"),
		MustNumber("-1e10"),
		MustNumber("007"),
	})

	test("escapes", `s: "tab\there \"q\" \u00e9"`, mapOf("s", String("tab\there \"q\" é")))
}

func TestDecodeErrors(t *testing.T) {
	test := func(name, text string, kind ErrorKind, line, column int) {
		t.Run(name, func(t *testing.T) {
			v, err := Decode(text)
			require.Error(t, err)
			assert.Nil(t, v)

			de, ok := err.(*DecodeError)
			require.True(t, ok, "expected a *DecodeError, got %T: %v", err, err)
			assert.Equal(t, kind, de.Kind, de.Error())
			assert.Equal(t, line, de.Line, de.Error())
			assert.Equal(t, column, de.Column, de.Error())
		})
	}

	test("empty document", "", UnrecognizedLine, 1, 1)
	test("blank document", "\n  \n", UnrecognizedLine, 1, 1)

	test("unexpected indent", "a: 1\n  b: 2", UnexpectedIndent, 2, 3)
	test("indented first line", "  a: 1", UnexpectedIndent, 1, 3)
	test("skipped level", "a:\n  b:\n      c: 1", UnexpectedIndent, 3, 7)

	test("odd indent", "a:\n  b: 1\n   c: 2", IndentationError, 3, 4)
	test("tab indent", "a:\n\tb: 1", IndentationError, 2, 1)

	test("too few rows", "users[3]{id,name}\n  1,a\n  2,b", TabularCountMismatch, 1, 6)
	test("too many rows", "users[1]{id,name}\n  1,a\n  2,b", TabularCountMismatch, 3, 3)
	test("short row", "users[2]{id,name}\n  1,a\n  2", TabularArityMismatch, 3, 3)
	test("long row", "users[1]{id,name}\n  1,a,b", TabularArityMismatch, 2, 3)

	test("too few items", "tags[3]:\n  - a", ListCountMismatch, 1, 5)
	test("too many items", "tags[1]:\n  - a\n  - b", ListCountMismatch, 3, 3)
	test("inline count", "tags[3]: a,b", ListCountMismatch, 1, 5)

	test("duplicate key", "a: 1\na: 2", DuplicateKey, 2, 1)
	test("duplicate nested key", "a:\n  x: 1\na: 2", DuplicateKey, 3, 1)
	test("duplicate field", "[2]{a,a}\n  1,2\n  3,4", DuplicateKey, 1, 1)

	test("unterminated string", "a: \"abc", LexErrorKind, 1, 8)
	test("bad escape", "a: \"a\\qb\"", LexErrorKind, 1, 6)
	test("reserved in bare value", "a: b]c", LexErrorKind, 1, 5)
	test("bad cell", "[1]{a,b}\n  1,x:y", LexErrorKind, 2, 6)

	test("not an entry", "a: 1\nnot an entry", UnrecognizedLine, 2, 1)
	test("not an item", "tags[2]:\n  - a\n  b", UnrecognizedLine, 3, 3)
	test("item in map", "a:\n  - x", UnrecognizedLine, 2, 3)
	test("trailing content", "42\n43", UnrecognizedLine, 2, 1)
	test("bad length", "a[x]:\n  - 1", UnrecognizedLine, 1, 2)

	test("item at top level", "- 1", UnrecognizedLine, 1, 1)
	test("bare marker at top level", "-", UnrecognizedLine, 1, 1)
	test("dash scalar at top level", "-x", LexErrorKind, 1, 1)
	test("item as table row", "[1]{a}\n  - 3", LexErrorKind, 2, 3)
	test("dash value", "a: -x", LexErrorKind, 1, 4)
	test("dash cell", "[1]{a,b}\n  1,-x", LexErrorKind, 2, 5)
	test("dash in inline list", "a[2]: 1,- x", LexErrorKind, 1, 9)
	test("dash key", "a: 1\n-k: 2", LexErrorKind, 2, 1)
	test("dash field", "[1]{a,-b}\n  1,2", LexErrorKind, 1, 7)
}

func TestDecoder(t *testing.T) {
	v, err := NewDecoder(strings.NewReader("a: 1\nb:\n  c: x")).Decode()
	require.NoError(t, err)
	assert.True(t, Equal(mapOf("a", Int(1), "b", mapOf("c", String("x"))), v))
}

func TestDecodeErrorMessage(t *testing.T) {
	_, err := Decode("a: 1\na: 2")
	require.Error(t, err)
	assert.Equal(t, `toon: DuplicateKey at line 2, column 1: duplicate key "a"`, err.Error())
}
