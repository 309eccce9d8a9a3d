package ctcnet_test

import (
	"fmt"
	"os"
	"time"

	"github.com/gitrdm/ctcnet/pkg/ctc"
	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

func ExampleNetwork_Contract() {
	x := ctcnet.NewVarWithName(interval.New(0, 10), "x")
	y := ctcnet.NewVarWithName(interval.New(0, 10), "y")

	n := ctcnet.New()
	if err := n.Add(ctc.NewOffset(1), x, y); err != nil {
		fmt.Println(err)
		return
	}
	res := n.Contract(true)

	fmt.Println(x, y)
	fmt.Println(res.State, res.Empty)
	// Output:
	// x=[0, 9] y=[1, 10]
	// fixpoint false
}

func ExampleNetwork_Add_configurationError() {
	x := ctc.NewScalar(0, 1)
	n := ctcnet.New()
	err := n.Add(ctc.NewAdd(), x, x)
	fmt.Println(err)
	// Output:
	// ARITY_MISMATCH: c = a + b: expected 3 domains, got 2 domains
}

func ExampleCreateIntermVar() {
	// Distances between a robot position x and three landmarks.
	x := ctc.NewScalar(-10, 10)
	landmarks := []float64{2, 4, 7}
	n := ctcnet.New()

	dists := make([]*ctc.Scalar, len(landmarks))
	for i, l := range landmarks {
		d := ctcnet.CreateIntermVar(n, interval.New(0, 3))
		if err := n.Add(ctc.NewFunc("d = |x - l|", 2, func(v []interval.Interval) []interval.Interval {
			diff := v[0].Offset(-l)
			dist := v[1].Intersect(diff.Abs())
			back := diff.Intersect(dist).Hull(diff.Intersect(dist.Neg())).Offset(l)
			return []interval.Interval{back, dist}
		}), x, d); err != nil {
			fmt.Println(err)
			return
		}
		dists[i] = d
	}
	n.Contract(true)
	fmt.Println("x:", x.Value())
	// Output:
	// x: [4, 5]
}

func ExampleNetwork_ContractDuring() {
	n := ctcnet.New()
	xs := make([]*ctc.Scalar, 100)
	for i := range xs {
		xs[i] = ctc.NewScalar(0, 500)
	}
	for i := 0; i+1 < len(xs); i++ {
		_ = n.Add(ctc.NewOffset(1), xs[i], xs[i+1])
	}

	// Interleave propagation with other work, e.g. one frame of a
	// control loop.
	for n.State() != ctcnet.StateFixpoint {
		n.ContractDuring(50 * time.Microsecond)
	}
	fmt.Println(xs[0].Value(), xs[99].Value())
	// Output:
	// [0, 401] [99, 500]
}

func ExampleNetwork_WriteDOT() {
	x := ctcnet.NewVarWithName(interval.New(0, 1), "x")
	y := ctcnet.NewVarWithName(interval.New(0, 1), "y")
	n := ctcnet.New()
	_ = n.Add(ctc.NewEqual(), x, y)
	_ = n.WriteDOT(os.Stdout, "eq")
	// Output:
	// graph "eq" {
	//   overlap="prism"
	//   splines="compound"
	//
	//   // domains
	//   dom0 [shape=box, label="x"];
	//   dom1 [shape=box, label="y"];
	//
	//   // contractors
	//   ctc0 [shape=circle, label="x = y"];
	//
	//   // relations
	//   ctc0 -- dom0;
	//   ctc0 -- dom1;
	// }
}
