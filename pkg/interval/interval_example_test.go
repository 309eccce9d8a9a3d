package interval_test

import (
	"fmt"

	"github.com/gitrdm/ctcnet/pkg/interval"
)

// ExampleInterval_Intersect demonstrates narrowing one interval by another.
func ExampleInterval_Intersect() {
	y := interval.New(0, 10)
	x := interval.New(0, 10)

	// y = x + 1
	y = y.Intersect(x.Offset(1))
	x = x.Intersect(y.Offset(-1))

	fmt.Println("x =", x)
	fmt.Println("y =", y)

	// Output:
	// x = [0, 9]
	// y = [1, 10]
}

// ExampleNewVector demonstrates boxes and their size measure.
func ExampleNewVector() {
	box := interval.NewVector(interval.New(0, 1), interval.New(-2, 2))
	fmt.Println(box, box.Size())

	// Output:
	// ([0, 1] ; [-2, 2]) 5
}
