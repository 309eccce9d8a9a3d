package interval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Canonical(t *testing.T) {
	tests := []struct {
		name  string
		lo    float64
		hi    float64
		empty bool
	}{
		{"regular", 0, 10, false},
		{"degenerate", 3, 3, false},
		{"reversed", 2, 1, true},
		{"nan", math.NaN(), 1, true},
		{"only +inf", math.Inf(1), math.Inf(1), true},
		{"only -inf", math.Inf(-1), math.Inf(-1), true},
		{"half line", 0, math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, New(tt.lo, tt.hi).IsEmpty())
		})
	}
}

func TestInterval_SetOperations(t *testing.T) {
	a := New(0, 10)
	b := New(5, 15)

	assert.True(t, a.Intersect(b).Equal(New(5, 10)))
	assert.True(t, a.Hull(b).Equal(New(0, 15)))
	assert.True(t, a.Intersect(New(11, 12)).IsEmpty())
	assert.True(t, EmptyInterval().Subset(a))
	assert.False(t, a.Subset(EmptyInterval()))
	assert.True(t, New(1, 2).Subset(a))
	assert.False(t, b.Subset(a))
	assert.True(t, EmptyInterval().Equal(New(3, 1)))
	assert.True(t, EmptyInterval().Hull(a).Equal(a))
}

func TestInterval_Size(t *testing.T) {
	assert.Equal(t, 10.0, New(0, 10).Size())
	assert.Equal(t, 0.0, EmptyInterval().Size())
	assert.True(t, math.IsInf(New(0, math.Inf(1)).Size(), 1))
	assert.Equal(t, 1, New(0, 1).Dim())
}

func TestInterval_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Interval
		want Interval
	}{
		{"add", New(1, 2).Add(New(10, 20)), New(11, 22)},
		{"sub", New(1, 2).Sub(New(10, 20)), New(-19, -8)},
		{"neg", New(1, 2).Neg(), New(-2, -1)},
		{"offset", New(0, 9).Offset(1), New(1, 10)},
		{"scale negative", New(1, 2).Scale(-2), New(-4, -2)},
		{"mul mixed", New(-1, 2).Mul(New(3, 4)), New(-4, 8)},
		{"mul zero by entire", Point(0).Mul(Entire()), Point(0)},
		{"div positive", New(1, 2).Div(New(2, 4)), New(0.25, 1)},
		{"div spanning zero", New(1, 2).Div(New(-1, 1)), Entire()},
		{"div by zero point", New(1, 2).Div(Point(0)), EmptyInterval()},
		{"div by [0,d]", New(1, 2).Div(New(0, 4)), New(0.25, math.Inf(1))},
		{"div by [-d,0]", New(1, 2).Div(New(-4, 0)), New(math.Inf(-1), -0.25)},
		{"abs", New(-3, 2).Abs(), New(0, 3)},
		{"sqr", New(-3, 2).Sqr(), New(0, 9)},
		{"sqrt", New(-4, 9).Sqrt(), New(0, 3)},
		{"empty add", EmptyInterval().Add(New(0, 1)), EmptyInterval()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Truef(t, tt.got.Equal(tt.want), "got %v, want %v", tt.got, tt.want)
		})
	}
}

func TestInterval_String(t *testing.T) {
	assert.Equal(t, "[0, 10]", New(0, 10).String())
	assert.Equal(t, "∅", EmptyInterval().String())
	assert.Equal(t, "[-Inf, +Inf]", Entire().String())
}

func TestInterval_Mid(t *testing.T) {
	assert.Equal(t, 5.0, New(0, 10).Mid())
	assert.Equal(t, 0.0, Entire().Mid())
	assert.Equal(t, 3.0, New(3, math.Inf(1)).Mid())
	assert.True(t, math.IsNaN(EmptyInterval().Mid()))
}

func TestVector_Basics(t *testing.T) {
	v := NewVector(New(0, 1), New(0, 2))
	require.Equal(t, 2, v.Dim())
	assert.Equal(t, 3.0, v.Size())
	assert.Equal(t, 2.0, v.Volume())
	assert.Equal(t, "([0, 1] ; [0, 2])", v.String())

	w := v.With(1, New(1, 2))
	assert.True(t, w.Subset(v))
	assert.False(t, v.Subset(w))
	assert.True(t, v.At(1).Equal(New(0, 2)), "With must not alias the receiver")
}

func TestVector_EmptyComponentEmptiesBox(t *testing.T) {
	v := NewVector(New(0, 1), EmptyInterval())
	assert.True(t, v.IsEmpty())
	assert.True(t, v.At(0).IsEmpty())
	assert.Equal(t, 0.0, v.Size())

	w := NewVector(New(0, 1), New(0, 1)).Intersect(NewVector(New(0, 1), New(2, 3)))
	assert.True(t, w.IsEmpty())
	assert.True(t, w.Equal(EmptyVector(2)))
}

func TestVector_DimensionMismatch(t *testing.T) {
	a := NewVector(New(0, 1))
	b := NewVector(New(0, 1), New(0, 1))
	assert.False(t, a.Subset(b))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Intersect(b).IsEmpty())
	assert.Equal(t, 1, a.Intersect(b).Dim())
	assert.True(t, a.Hull(b).IsEmpty())
	assert.Equal(t, 1, a.Hull(b).Dim())
	assert.True(t, EmptyVector(2).Hull(a).IsEmpty())
	assert.Equal(t, 2, EmptyVector(2).Hull(a).Dim())
}

func TestVector_SizeDegenerateComponent(t *testing.T) {
	a := NewVector(Point(1), New(0, 4))
	b := NewVector(Point(1), New(0, 2))
	assert.Equal(t, 0.0, a.Volume())
	assert.Less(t, b.Size(), a.Size())
	assert.True(t, math.IsInf(EntireVector(2).Size(), 1))
}
