package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabularFields(t *testing.T) {
	test := func(name string, l List, expected []string) {
		t.Run(name, func(t *testing.T) {
			fields, ok := TabularFields(l)
			assert.Equal(t, expected != nil, ok)
			assert.Equal(t, expected, fields)
		})
	}

	test("uniform", List{
		mapOf("id", Int(1), "label", String("tiger")),
		mapOf("id", Int(2), "label", String("elephant")),
	}, []string{"id", "label"})

	test("single row", List{mapOf("a", Null{})}, []string{"a"})

	test("empty list", List{}, nil)
	test("scalars", List{Int(1), Int(2)}, nil)
	test("empty map", List{&Map{}}, nil)

	test("different order", List{
		mapOf("a", Int(1), "b", Int(2)),
		mapOf("b", Int(3), "a", Int(4)),
	}, nil)

	test("different keys", List{
		mapOf("a", Int(1)),
		mapOf("b", Int(2)),
	}, nil)

	test("extra key", List{
		mapOf("a", Int(1)),
		mapOf("a", Int(2), "b", Int(3)),
	}, nil)

	test("nested value", List{
		mapOf("a", Int(1)),
		mapOf("a", List{Int(2)}),
	}, nil)

	test("mixed elements", List{
		mapOf("a", Int(1)),
		Int(2),
	}, nil)
}
