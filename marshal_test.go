package toon

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	test := func(v interface{}, eval string) {
		t.Run(eval, func(t *testing.T) {
			val, err := Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, eval, string(val))
		})
	}

	test(nil, "null")
	test(true, "true")
	test(false, "false")

	test(byte(42), "42")
	test(-42, "-42")
	test(uint64(math.MaxUint64), "18446744073709551615")
	test(math.MinInt64, "-9223372036854775808")

	test(42.0, "42")
	test(float32(0.1), "0.1")
	test(math.Inf(1), "null")
	test(math.NaN(), "null")
	test(decimal.RequireFromString("1.50"), "1.5")

	test("hello", "hello")
	test("hello\tworld", "\"hello\\tworld\"")
	test("12", "\"12\"")

	test(struct{ A, B int }{42, 0}, "A: 42\nB: 0")
	test(struct {
		A int `json:"val,ignoreme"`
		B int `json:"-"`
		C int `json:",omitempty"`
		d int
	}{42, 0, 0, 0}, "val: 42")

	test(struct{ V interface{} }{}, "V: null")
	test(struct{ V interface{} }{"42"}, "V: \"42\"")

	fourtytwo := 42

	test(struct{ V *int }{}, "V: null")
	test(struct{ V *int }{&fourtytwo}, "V: 42")

	test(map[string]int{"b": 2, "a": 1}, "a: 1\nb: 2")
	test(map[string]int{}, "{}")

	test(struct{ V []int }{}, "V: null")
	test(struct{ V []int }{[]int{}}, "V: []")
	test(struct{ V []int }{[]int{4, 2}}, "V[2]:\n  - 4\n  - 2")
	test(struct{ V [2]string }{[2]string{"a", "b"}}, "V[2]:\n  - a\n  - b")

	test(struct{ V []byte }{}, "V: null")
	test(struct{ V []byte }{[]byte{4, 2}}, "V: BAI=")

	test(struct{ V Value }{}, "V: null")
	test(struct{ V Value }{Int(3)}, "V: 3")
	test(struct{ M *Map }{mapOf("x", Int(1))}, "M:\n  x: 1")
	test(struct{ D *decimal.Decimal }{}, "D: null")

	test(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), "\"2020-01-02T03:04:05Z\"")
}

func TestMarshalNestedStructs(t *testing.T) {
	type annotation struct {
		ID    int    `json:"id"`
		Label string `json:"label"`
	}
	type image struct {
		Name        string       `json:"name"`
		Size        [2]int       `json:"size"`
		Annotations []annotation `json:"annotations"`
		Extra       *image       `json:"extra,omitempty"`
	}

	val, err := Marshal(image{
		Name: "zoo.png",
		Size: [2]int{640, 480},
		Annotations: []annotation{
			{1, "tiger"},
			{2, "elephant"},
		},
	})
	require.NoError(t, err)

	eval := "name: zoo.png\n" +
		"size[2]:\n" +
		"  - 640\n" +
		"  - 480\n" +
		"annotations[2]{id,label}\n" +
		"  1,tiger\n" +
		"  2,elephant"
	assert.Equal(t, eval, string(val))
}

func TestMarshalIndent(t *testing.T) {
	val, err := MarshalIndent(map[string]interface{}{"a": map[string]int{"b": 1}}, 4)
	require.NoError(t, err)
	assert.Equal(t, "a:\n    b: 1", string(val))
}

func TestMarshalErrors(t *testing.T) {
	test := func(name string, v interface{}) {
		t.Run(name, func(t *testing.T) {
			_, err := Marshal(v)
			assert.Error(t, err)
		})
	}

	test("chan", make(chan int))
	test("func", func() {})
	test("int keys", map[int]string{1: "a"})
	test("nested", struct{ C chan int }{make(chan int)})
	test("complex", complex(1, 2))
}
