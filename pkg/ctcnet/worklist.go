package ctcnet

// worklist is a double-ended ring buffer of contractor indices. FIFO
// networks push at the back; LIFO networks push newly activated
// contractors at the front so they run next.
type worklist struct {
	buf  []int
	head int
	size int
}

func newWorklist() *worklist {
	return &worklist{buf: make([]int, 16)}
}

func (w *worklist) len() int { return w.size }

func (w *worklist) grow() {
	if w.size < len(w.buf) {
		return
	}
	nb := make([]int, len(w.buf)*2)
	for i := 0; i < w.size; i++ {
		nb[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	w.buf = nb
	w.head = 0
}

func (w *worklist) pushBack(v int) {
	w.grow()
	w.buf[(w.head+w.size)%len(w.buf)] = v
	w.size++
}

func (w *worklist) pushFront(v int) {
	w.grow()
	w.head = (w.head - 1 + len(w.buf)) % len(w.buf)
	w.buf[w.head] = v
	w.size++
}

// popFront removes and returns the front element. ok is false when empty.
func (w *worklist) popFront() (v int, ok bool) {
	if w.size == 0 {
		return 0, false
	}
	v = w.buf[w.head]
	w.head = (w.head + 1) % len(w.buf)
	w.size--
	if w.size == 0 {
		w.head = 0
	}
	return v, true
}

func (w *worklist) clear() {
	w.head = 0
	w.size = 0
}
