package toon_test

import (
	"fmt"

	"github.com/toon-format/toon-go"
)

func ExampleEncode() {
	v := toon.MustMap(
		toon.Field{Key: "annotations", Value: toon.List{
			toon.MustMap(toon.Field{Key: "id", Value: toon.Int(1)}, toon.Field{Key: "label", Value: toon.String("tiger")}),
			toon.MustMap(toon.Field{Key: "id", Value: toon.Int(2)}, toon.Field{Key: "label", Value: toon.String("elephant")}),
		}},
	)
	fmt.Println(toon.Encode(v))
	// Output:
	// annotations[2]{id,label}
	//   1,tiger
	//   2,elephant
}

func ExampleDecode() {
	v, err := toon.Decode("user:\n  name: Ada\n  tags[2]:\n    - math\n    - engines")
	if err != nil {
		panic(err)
	}

	js, err := toon.ToJSON(v)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(js))
	// Output: {"user":{"name":"Ada","tags":["math","engines"]}}
}

func ExampleDecode_error() {
	_, err := toon.Decode("users[3]{id,name}\n  1,a\n  2,b")
	fmt.Println(err)
	// Output: toon: TabularCountMismatch at line 1, column 6: table declares 3 rows but has 2
}

func ExampleMarshal() {
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	out, err := toon.Marshal(map[string][]point{"points": {{1, 2}, {3, 4}}})
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
	// Output:
	// points[2]{x,y}
	//   1,2
	//   3,4
}
