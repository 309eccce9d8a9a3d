package ctc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

func iv(lo, hi float64) interval.Interval { return interval.New(lo, hi) }

func doms(vs ...*Scalar) []ctcnet.Domain {
	out := make([]ctcnet.Domain, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func TestScalarContractors(t *testing.T) {
	inf := math.Inf(1)

	tests := []struct {
		name string
		c    ctcnet.Contractor
		in   []interval.Interval
		want []interval.Interval
	}{
		{"offset", NewOffset(1), []interval.Interval{iv(0, 10), iv(0, 10)}, []interval.Interval{iv(0, 9), iv(1, 10)}},
		{"offset_negative", NewOffset(-2), []interval.Interval{iv(0, 10), iv(5, 20)}, []interval.Interval{iv(7, 10), iv(5, 8)}},
		{"scale", NewScale(2), []interval.Interval{iv(0, 10), iv(-4, 6)}, []interval.Interval{iv(0, 3), iv(0, 6)}},
		{"scale_zero", NewScale(0), []interval.Interval{iv(-1, 1), iv(-5, 5)}, []interval.Interval{iv(-1, 1), iv(0, 0)}},
		{"add", NewAdd(), []interval.Interval{iv(0, 10), iv(2, 8), iv(0, 5)}, []interval.Interval{iv(0, 3), iv(2, 5), iv(2, 5)}},
		{"sub", NewSub(), []interval.Interval{iv(0, 10), iv(2, 8), iv(5, 20)}, []interval.Interval{iv(7, 10), iv(2, 5), iv(5, 8)}},
		{"mul", NewMul(), []interval.Interval{iv(1, 4), iv(2, 3), iv(0, 6)}, []interval.Interval{iv(1, 3), iv(2, 3), iv(2, 6)}},
		{"mul_zero_straddle", NewMul(), []interval.Interval{iv(-1, 1), iv(-2, 2), iv(-inf, inf)}, []interval.Interval{iv(-1, 1), iv(-2, 2), iv(-2, 2)}},
		{"abs", NewAbs(), []interval.Interval{iv(-5, 3), iv(4, 10)}, []interval.Interval{iv(-5, -4), iv(4, 5)}},
		{"sqr", NewSqr(), []interval.Interval{iv(-3, 1), iv(4, 16)}, []interval.Interval{iv(-3, -2), iv(4, 9)}},
		{"in", NewIn(iv(2, 3)), []interval.Interval{iv(0, 10)}, []interval.Interval{iv(2, 3)}},
		{"sum", NewSum(), []interval.Interval{iv(0, 10), iv(0, 10), iv(0, 10), iv(25, 30)}, []interval.Interval{iv(5, 10), iv(5, 10), iv(5, 10), iv(25, 30)}},
		{"equal", NewEqual(), []interval.Interval{iv(0, 5), iv(3, 9)}, []interval.Interval{iv(3, 5), iv(3, 5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := make([]*Scalar, len(tt.in))
			for i, v := range tt.in {
				vars[i] = ctcnet.NewVar(v)
			}
			d := doms(vars...)
			if checker, ok := tt.c.(ctcnet.DomainChecker); ok {
				require.NoError(t, checker.CheckDomains(d))
			}

			assert.True(t, tt.c.Contract(d))
			for i, v := range vars {
				assert.True(t, v.Value().Equal(tt.want[i]), "domain %d = %s, want %s", i, v.Value(), tt.want[i])
				assert.True(t, v.Value().Subset(tt.in[i]))
			}
			assert.False(t, tt.c.Contract(d), "second call must not change anything")
		})
	}
}

func TestContractors_InfeasibleEmptiesEverything(t *testing.T) {
	tests := []struct {
		name string
		c    ctcnet.Contractor
		in   []interval.Interval
	}{
		{"offset", NewOffset(100), []interval.Interval{iv(0, 1), iv(0, 1)}},
		{"add", NewAdd(), []interval.Interval{iv(0, 1), iv(0, 1), iv(5, 6)}},
		{"mul", NewMul(), []interval.Interval{iv(0, 0), iv(1, 2), iv(3, 4)}},
		{"sqr", NewSqr(), []interval.Interval{iv(0, 1), iv(-5, -1)}},
		{"in", NewIn(iv(5, 6)), []interval.Interval{iv(0, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := make([]*Scalar, len(tt.in))
			for i, v := range tt.in {
				vars[i] = ctcnet.NewVar(v)
			}
			assert.True(t, tt.c.Contract(doms(vars...)))
			for i, v := range vars {
				assert.True(t, v.IsEmpty(), "domain %d = %s", i, v.Value())
			}
		})
	}
}

func TestMul_ZeroDivisorWithNonZeroProduct(t *testing.T) {
	a, b, c := NewScalar(-5, 5), NewScalar(0, 0), NewScalar(1, 2)
	NewMul().Contract(doms(a, b, c))
	assert.True(t, c.IsEmpty())
	assert.True(t, a.IsEmpty())
}

func TestEqual_Vectors(t *testing.T) {
	x := NewBox(iv(0, 5), iv(0, 5))
	y := NewBox(iv(1, 9), iv(-1, 2))
	e := NewEqual()
	require.NoError(t, e.CheckDomains([]ctcnet.Domain{x, y}))
	assert.True(t, e.Contract([]ctcnet.Domain{x, y}))
	want := interval.NewVector(iv(1, 5), iv(0, 2))
	assert.True(t, x.Value().Equal(want), "x = %s", x.Value())
	assert.True(t, y.Value().Equal(want), "y = %s", y.Value())

	z := NewBox(iv(0, 1))
	assert.ErrorIs(t, e.CheckDomains([]ctcnet.Domain{x, z}), ctcnet.ErrConfiguration)
	assert.ErrorIs(t, e.CheckDomains([]ctcnet.Domain{x, NewScalar(0, 1)}), ctcnet.ErrConfiguration)
}

func TestComponentVar(t *testing.T) {
	v := NewBox(iv(0, 10), iv(0, 10))
	v.SetName("p")
	n := ctcnet.New()

	x0, err := ComponentVar(n, v, 0)
	require.NoError(t, err)
	x1, err := ComponentVar(n, v, 1)
	require.NoError(t, err)
	assert.Equal(t, "p[1]", x1.Name())

	y := NewScalar(0, 10)
	require.NoError(t, n.Add(NewOffset(3), x0, x1))
	require.NoError(t, n.Add(NewEqual(), x1, y))
	require.NoError(t, y.Set(iv(0, 5)))
	n.Contract(true)

	assert.True(t, v.Value().Equal(interval.NewVector(iv(0, 2), iv(3, 5))), "v = %s", v.Value())
	assert.True(t, x0.Value().Equal(iv(0, 2)))

	_, err = ComponentVar(n, v, 2)
	assert.ErrorIs(t, err, ctcnet.ErrConfiguration)
}

func TestComponent_EmptyComponentEmptiesVector(t *testing.T) {
	v := NewBox(iv(0, 1), iv(0, 1))
	x := NewScalar(5, 6)
	assert.True(t, NewComponent(1).Contract([]ctcnet.Domain{v, x}))
	assert.True(t, v.IsEmpty())
	assert.True(t, x.IsEmpty())
}

func TestInBox(t *testing.T) {
	v := NewBox(iv(0, 10), iv(0, 10))
	c := NewInBox(interval.NewVector(iv(2, 3), iv(-1, 1)))
	require.NoError(t, c.CheckDomains([]ctcnet.Domain{v}))
	assert.True(t, c.Contract([]ctcnet.Domain{v}))
	assert.Equal(t, "([2, 3] ; [0, 1])", v.Value().String())

	assert.Error(t, c.CheckDomains([]ctcnet.Domain{NewBox(iv(0, 1))}))
	assert.Error(t, c.CheckDomains([]ctcnet.Domain{NewScalar(0, 1)}))
}

func TestFunc_CannotEnlarge(t *testing.T) {
	x := NewScalar(0, 1)
	f := NewFunc("widen", 1, func(in []interval.Interval) []interval.Interval {
		return []interval.Interval{iv(-10, 0.5)}
	})
	assert.True(t, f.Contract([]ctcnet.Domain{x}))
	assert.True(t, x.Value().Equal(iv(0, 0.5)))
	assert.Equal(t, "widen", f.String())

	bad := NewFunc("bad", 1, func(in []interval.Interval) []interval.Interval { return nil })
	assert.False(t, bad.Contract([]ctcnet.Domain{x}))
}

func TestCheckDomains_RejectsVectors(t *testing.T) {
	box := NewBox(iv(0, 1))
	for _, c := range []ctcnet.DomainChecker{NewOffset(1), NewScale(1), NewAbs(), NewSqr(), NewIn(iv(0, 1))} {
		d := []ctcnet.Domain{box, box}
		if c.(ctcnet.Contractor).Arity() == 1 {
			d = d[:1]
		}
		err := c.CheckDomains(d)
		var cfgErr *ctcnet.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, ctcnet.CodeKindMismatch, cfgErr.Code)
		assert.Zero(t, cfgErr.Position)
	}
}
