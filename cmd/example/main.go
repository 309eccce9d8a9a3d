// Package main walks through the basic operations of a contractor network.
//
// Each section builds a small network, contracts it and prints the
// domains before and after.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gitrdm/ctcnet/pkg/ctc"
	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

func main() {
	fmt.Println("=== Contractor Network Examples ===")
	fmt.Println()

	basicContraction()
	infeasibleProblem()
	configurationErrors()
	fixedPointRatio()
	timeBudget()
	subnetworks()
	graphExport()
}

// basicContraction narrows two linked domains.
func basicContraction() {
	fmt.Println("1. Basic Contraction:")

	x := ctcnet.NewVarWithName(interval.New(0, 10), "x")
	y := ctcnet.NewVarWithName(interval.New(0, 10), "y")
	z := ctcnet.NewVarWithName(interval.New(0, 15), "z")

	n := ctcnet.New()
	must(n.Add(ctc.NewOffset(1), x, y))
	must(n.Add(ctc.NewAdd(), x, y, z))
	fmt.Printf("   before: %s %s %s\n", x, y, z)

	res := n.Contract(true)
	fmt.Printf("   after:  %s %s %s\n", x, y, z)
	fmt.Printf("   state %s after %d calls\n", res.State, res.Calls)
	fmt.Println()
}

// infeasibleProblem shows emptiness reaching every connected domain.
func infeasibleProblem() {
	fmt.Println("2. Infeasible Problem:")

	x := ctcnet.NewVarWithName(interval.New(0, 1), "x")
	y := ctcnet.NewVarWithName(interval.New(0, 1), "y")
	w := ctcnet.NewVarWithName(interval.New(-5, 5), "w")

	n := ctcnet.New()
	must(n.Add(ctc.NewOffset(5), x, y))
	must(n.Add(ctc.NewEqual(), y, w))

	res := n.Contract(true)
	fmt.Printf("   y = x + 5 with x, y in [0, 1]: empty=%v\n", res.Empty)
	fmt.Printf("   %s %s %s\n", x, y, w)
	fmt.Println()
}

// configurationErrors triggers the checks made when a contractor is added.
func configurationErrors() {
	fmt.Println("3. Configuration Errors:")

	n := ctcnet.New()
	x := ctc.NewScalar(0, 1)
	box := ctc.NewBox(interval.New(0, 1), interval.New(0, 1))

	for _, try := range []struct {
		what string
		c    ctcnet.Contractor
		doms []ctcnet.Domain
	}{
		{"add with two domains", ctc.NewAdd(), []ctcnet.Domain{x, x}},
		{"offset on a vector", ctc.NewOffset(1), []ctcnet.Domain{x, box}},
		{"no domains", ctc.NewSum(), nil},
	} {
		err := n.Add(try.c, try.doms...)
		var cfgErr *ctcnet.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Printf("   %-22s => %s\n", try.what, cfgErr.Code)
		}
	}
	fmt.Printf("   network still has %d contractors\n", n.ContractorCount())
	fmt.Println()
}

// fixedPointRatio compares an exact fixpoint with an early stop.
func fixedPointRatio() {
	fmt.Println("4. Fixed-Point Ratio:")

	for _, ratio := range []float64{0, 0.5} {
		x := ctc.NewScalar(0, 1000)
		y := ctc.NewScalar(0, 1000)
		n := ctcnet.New()
		must(n.SetFixedPointRatio(ratio))
		must(n.Add(ctc.NewScale(0.5), x, y))
		must(n.Add(ctc.NewEqual(), x, y))

		res := n.Contract(true)
		fmt.Printf("   ratio %.1f: x = %-12s %3d calls\n", ratio, x.Value(), res.Calls)
	}
	fmt.Println()
}

// timeBudget interleaves contraction with other work.
func timeBudget() {
	fmt.Println("5. Time Budget:")

	n := ctcnet.New()
	xs := make([]*ctc.Scalar, 1000)
	for i := range xs {
		xs[i] = ctc.NewScalar(0, 5000)
	}
	for i := 0; i+1 < len(xs); i++ {
		must(n.Add(ctc.NewOffset(1), xs[i], xs[i+1]))
	}

	slices := 0
	for n.State() != ctcnet.StateFixpoint {
		n.ContractDuring(20 * time.Microsecond)
		slices++
	}
	fmt.Printf("   %d slices until fixpoint, x0 = %s\n", slices, xs[0].Value())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	must(n.Add(ctc.NewIn(interval.New(0, 10)), xs[0]))
	_, err := n.ContractContext(ctx)
	fmt.Printf("   cancelled context: %v, %d pending\n", err, n.PendingCount())
	fmt.Println()
}

// subnetworks composes two networks.
func subnetworks() {
	fmt.Println("6. Subnetworks:")

	x := ctcnet.NewVarWithName(interval.New(0, 10), "x")
	y := ctcnet.NewVarWithName(interval.New(0, 10), "y")

	inner := ctcnet.New()
	must(inner.Add(ctc.NewOffset(3), x, y))

	outer := ctcnet.New()
	must(outer.Add(ctc.NewIn(interval.New(6, 20)), x))
	must(outer.AddNetwork(inner))

	outer.Contract(true)
	fmt.Printf("   %s %s\n", x, y)
	fmt.Printf("   outer: %s\n", outer)
	fmt.Println()
}

// graphExport writes a network in DOT format.
func graphExport() {
	fmt.Println("7. Graph Export:")

	x := ctcnet.NewVarWithName(interval.New(0, 10), "x")
	y := ctcnet.NewVarWithName(interval.New(0, 10), "y")
	n := ctcnet.New()
	must(n.Add(ctc.NewOffset(1), x, y))
	tmp := ctcnet.CreateIntermVar(n, interval.Entire())
	must(n.Add(ctc.NewSub(), y, x, tmp))

	if err := n.WriteDOT(os.Stdout, "example"); err != nil {
		fmt.Println("   error:", err)
	}
	fmt.Println()
}

func must(err error) {
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
