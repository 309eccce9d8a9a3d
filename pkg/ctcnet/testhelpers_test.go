package ctcnet

import (
	"fmt"
	"math"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// testInterval is a minimal Value used to test the engine without the
// interval package.
type testInterval struct{ lo, hi float64 }

func (i testInterval) IsEmpty() bool { return i.lo > i.hi }

func (i testInterval) Size() float64 {
	if i.IsEmpty() {
		return 0
	}
	return i.hi - i.lo
}

func (i testInterval) Dim() int { return 1 }

func (i testInterval) Subset(o testInterval) bool {
	return i.IsEmpty() || (!o.IsEmpty() && o.lo <= i.lo && i.hi <= o.hi)
}

func (i testInterval) Equal(o testInterval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return i.IsEmpty() && o.IsEmpty()
	}
	return i == o
}

func (i testInterval) Intersect(o testInterval) testInterval {
	return testInterval{math.Max(i.lo, o.lo), math.Min(i.hi, o.hi)}
}

func (i testInterval) Empty() testInterval { return testInterval{posInf, negInf} }

func (i testInterval) String() string { return fmt.Sprintf("[%g, %g]", i.lo, i.hi) }
