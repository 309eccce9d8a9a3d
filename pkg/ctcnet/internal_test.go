package ctcnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklist(t *testing.T) {
	w := newWorklist()
	for i := 0; i < 40; i++ {
		w.pushBack(i)
	}
	w.pushFront(-1)
	require.Equal(t, 41, w.len())

	v, ok := w.popFront()
	require.True(t, ok)
	assert.Equal(t, -1, v)
	for i := 0; i < 40; i++ {
		v, ok = w.popFront()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok = w.popFront()
	assert.False(t, ok)

	w.pushBack(1)
	w.clear()
	assert.Zero(t, w.len())
}

func TestWorklist_WrapAround(t *testing.T) {
	w := newWorklist()
	for round := 0; round < 100; round++ {
		w.pushBack(round)
		w.pushFront(-round)
		a, _ := w.popFront()
		b, _ := w.popFront()
		assert.Equal(t, -round, a)
		assert.Equal(t, round, b)
	}
}

func TestArena_PointersAreStable(t *testing.T) {
	var a arena[domNode]
	first, idx := a.alloc()
	first.label = "first"
	require.Zero(t, idx)

	for i := 1; i < 10*arenaChunk; i++ {
		_, idx = a.alloc()
		assert.Equal(t, i, idx)
	}
	assert.Same(t, first, a.at(0))
	assert.Equal(t, "first", first.label)
	assert.Equal(t, 10*arenaChunk, a.len())
}

func TestSignificant(t *testing.T) {
	d := NewVar(testInterval{0, 100})
	n := New()
	node := &domNode{dom: d, baseline: 100}

	require.NoError(t, n.SetFixedPointRatio(0.1))
	d.Narrow(testInterval{0, 95})
	assert.False(t, n.significant(node))
	d.Narrow(testInterval{0, 89})
	assert.True(t, n.significant(node))

	require.NoError(t, n.SetFixedPointRatio(0))
	assert.True(t, n.significant(node))

	require.NoError(t, n.SetFixedPointRatio(0.5))
	node.baseline = posInf
	assert.True(t, n.significant(node))
	d.SetEmpty()
	node.baseline = 0
	assert.True(t, n.significant(node))
}

func TestSignificant_UnboundedStaysQuiet(t *testing.T) {
	d := NewVar(testInterval{negInf, posInf})
	n := New()
	node := &domNode{dom: d, baseline: posInf}
	d.Narrow(testInterval{0, posInf})
	assert.False(t, n.significant(node))
}
