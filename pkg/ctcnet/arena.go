package ctcnet

// arenaChunk is the number of nodes per arena block.
const arenaChunk = 64

// arena stores nodes in fixed-size blocks that are never reallocated, so a
// *T returned by alloc stays valid for the arena's whole lifetime and the
// index returned with it is a stable address.
type arena[T any] struct {
	chunks [][]T
	n      int
}

func (a *arena[T]) alloc() (*T, int) {
	if a.n%arenaChunk == 0 {
		a.chunks = append(a.chunks, make([]T, arenaChunk))
	}
	idx := a.n
	a.n++
	return &a.chunks[idx/arenaChunk][idx%arenaChunk], idx
}

func (a *arena[T]) at(idx int) *T {
	return &a.chunks[idx/arenaChunk][idx%arenaChunk]
}

func (a *arena[T]) len() int { return a.n }
